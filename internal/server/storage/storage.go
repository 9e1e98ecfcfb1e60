package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
)

const (
	metaFile    = "world.json"
	paramsFile  = "params.json"
	overlayFile = "overlay.json.zst"
)

// FileStore keeps a save as plain files in one directory: world.json,
// params.json and the compressed overlay. world.json is written last, marks a
// complete save and carries the hash of every other part, so Load detects a
// crash that left parts of two different saves behind.
type FileStore struct {
	dir string
	log *slog.Logger
}

// NewFileStore creates a FileStore rooted at dir, creating it as needed.
func NewFileStore(dir string, log *slog.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create directory %s: %w", dir, err)
	}
	if log == nil {
		log = slog.Default()
	}
	return &FileStore{dir: dir, log: log}, nil
}

// Dir returns the save directory.
func (s *FileStore) Dir() string { return s.dir }

// Save writes every part of snap atomically.
func (s *FileStore) Save(snap *Snapshot) error {
	params, err := encodeParams(snap.Params)
	if err != nil {
		return err
	}
	ov, err := overlayBlob(snap.Overlay)
	if err != nil {
		return fmt.Errorf("encode overlay: %w", err)
	}
	if err := s.atomicWriteBytes(filepath.Join(s.dir, overlayFile), ov); err != nil {
		return fmt.Errorf("save overlay: %w", err)
	}
	if err := s.atomicWriteBytes(filepath.Join(s.dir, paramsFile), params); err != nil {
		return fmt.Errorf("save params: %w", err)
	}
	m := meta{
		WorldID:     snap.WorldID,
		SavedAt:     snap.SavedAt,
		Edits:       snap.Overlay.Len(),
		ParamsHash:  partHash(params),
		OverlayHash: partHash(ov),
	}
	if err := s.atomicWriteJSON(filepath.Join(s.dir, metaFile), &m); err != nil {
		return fmt.Errorf("save world: %w", err)
	}

	s.log.Info("saved world", "dir", s.dir, "world_id", snap.WorldID, "edits", m.Edits)
	return nil
}

// Load reads the save. It returns ErrNoSave when the directory holds none and
// ErrTornSave when a part does not match the hash recorded in world.json.
func (s *FileStore) Load() (*Snapshot, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, metaFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoSave
		}
		return nil, fmt.Errorf("read world: %w", err)
	}
	var m meta
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse world: %w", err)
	}

	data, err = s.readPart(paramsFile, m.ParamsHash)
	if err != nil {
		return nil, err
	}
	params, err := decodeParams(data)
	if err != nil {
		return nil, err
	}

	data, err = s.readPart(overlayFile, m.OverlayHash)
	if err != nil {
		return nil, err
	}
	ov, err := readOverlay(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("load overlay: %w", err)
	}

	s.log.Info("loaded world", "dir", s.dir, "world_id", m.WorldID, "edits", ov.Len())
	return &Snapshot{WorldID: m.WorldID, SavedAt: m.SavedAt, Params: params, Overlay: ov}, nil
}

// readPart reads one save file and checks it against the recorded hash.
func (s *FileStore) readPart(name, want string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	if got := partHash(data); got != want {
		return nil, fmt.Errorf("%s: hash %s, world.json records %q: %w", name, got, want, ErrTornSave)
	}
	return data, nil
}

func partHash(data []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}

// Close is a no-op; files are not held open between calls.
func (s *FileStore) Close() error { return nil }

// atomicWriteJSON marshals v to JSON and writes it atomically.
func (s *FileStore) atomicWriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	data = append(data, '\n')
	return s.atomicWriteBytes(path, data)
}

func (s *FileStore) atomicWriteBytes(path string, data []byte) error {
	return s.atomicWrite(path, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

// atomicWrite fills a temp file through write and renames it over path.
func (s *FileStore) atomicWrite(path string, write func(io.Writer) error) error {
	tmp := path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := write(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
