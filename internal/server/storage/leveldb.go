package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/syndtr/goleveldb/leveldb"
)

var (
	keyMeta    = []byte("world_id")
	keyParams  = []byte("params")
	keyOverlay = []byte("overlay")
)

// LevelStore keeps a save in a LevelDB database. All parts are written in
// one batch.
type LevelStore struct {
	db  *leveldb.DB
	dir string
	log *slog.Logger
}

// OpenLevelStore opens or creates the database at dir.
func OpenLevelStore(dir string, log *slog.Logger) (*LevelStore, error) {
	db, err := leveldb.OpenFile(dir, nil)
	if err != nil {
		return nil, fmt.Errorf("open leveldb %s: %w", dir, err)
	}
	if log == nil {
		log = slog.Default()
	}
	return &LevelStore{db: db, dir: dir, log: log}, nil
}

// Dir returns the database directory.
func (s *LevelStore) Dir() string { return s.dir }

func (s *LevelStore) Save(snap *Snapshot) error {
	params, err := encodeParams(snap.Params)
	if err != nil {
		return err
	}
	ov, err := overlayBlob(snap.Overlay)
	if err != nil {
		return fmt.Errorf("save overlay: %w", err)
	}
	m, err := json.Marshal(meta{WorldID: snap.WorldID, SavedAt: snap.SavedAt, Edits: snap.Overlay.Len()})
	if err != nil {
		return fmt.Errorf("marshal world: %w", err)
	}

	batch := new(leveldb.Batch)
	batch.Put(keyParams, params)
	batch.Put(keyOverlay, ov)
	batch.Put(keyMeta, m)
	if err := s.db.Write(batch, nil); err != nil {
		return fmt.Errorf("write batch: %w", err)
	}

	s.log.Info("saved world", "dir", s.dir, "world_id", snap.WorldID, "edits", snap.Overlay.Len())
	return nil
}

func (s *LevelStore) Load() (*Snapshot, error) {
	data, err := s.db.Get(keyMeta, nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return nil, ErrNoSave
		}
		return nil, fmt.Errorf("read world: %w", err)
	}
	var m meta
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse world: %w", err)
	}

	data, err = s.db.Get(keyParams, nil)
	if err != nil {
		return nil, fmt.Errorf("read params: %w", err)
	}
	params, err := decodeParams(data)
	if err != nil {
		return nil, err
	}

	data, err = s.db.Get(keyOverlay, nil)
	if err != nil {
		return nil, fmt.Errorf("read overlay: %w", err)
	}
	ov, err := readOverlay(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("load overlay: %w", err)
	}

	s.log.Info("loaded world", "dir", s.dir, "world_id", m.WorldID, "edits", ov.Len())
	return &Snapshot{WorldID: m.WorldID, SavedAt: m.SavedAt, Params: params, Overlay: ov}, nil
}

func (s *LevelStore) Close() error { return s.db.Close() }
