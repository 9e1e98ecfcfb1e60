package storage

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/OCharnyshevich/voxel-world/internal/server/world"
	"github.com/OCharnyshevich/voxel-world/pkg/world/gen"
	"github.com/OCharnyshevich/voxel-world/pkg/world/overlay"
)

var (
	// ErrNoSave is returned by Load when the store holds no saved world.
	ErrNoSave = errors.New("storage: no saved world")
	// ErrTornSave is returned by Load when the parts on disk belong to
	// different saves.
	ErrTornSave = errors.New("storage: save parts do not match")
)

// Snapshot is everything needed to rebuild a world: the generation
// parameters and the recorded edits.
type Snapshot struct {
	WorldID uuid.UUID
	SavedAt time.Time
	Params  gen.Params
	Overlay *overlay.Store
}

// Store persists snapshots. Load either returns a complete snapshot or an
// error; it never hands back partially decoded state.
type Store interface {
	Save(s *Snapshot) error
	Load() (*Snapshot, error)
	Close() error
}

// Backend selects a Store implementation.
type Backend string

const (
	BackendFile    Backend = "file"
	BackendLevelDB Backend = "leveldb"
)

// ParseBackend maps a config or flag value to a Backend.
func ParseBackend(s string) (Backend, error) {
	switch b := Backend(s); b {
	case BackendFile, BackendLevelDB:
		return b, nil
	case "":
		return BackendFile, nil
	default:
		return "", fmt.Errorf("unknown storage backend %q", s)
	}
}

// Open opens the store for backend rooted at dir.
func Open(backend Backend, dir string, log *slog.Logger) (Store, error) {
	switch backend {
	case BackendFile, "":
		return NewFileStore(dir, log)
	case BackendLevelDB:
		return OpenLevelStore(dir, log)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}

// meta is the small record identifying a save. The file store also keeps the
// xxhash of each part it wrote.
type meta struct {
	WorldID     uuid.UUID `json:"worldId"`
	SavedAt     time.Time `json:"savedAt"`
	Edits       int       `json:"edits"`
	ParamsHash  string    `json:"paramsHash,omitempty"`
	OverlayHash string    `json:"overlayHash,omitempty"`
}

// Capture snapshots the live world under id. The overlay is copied, so
// later edits do not leak into the snapshot.
func Capture(w *world.World, id uuid.UUID) *Snapshot {
	if id == uuid.Nil {
		id = uuid.New()
	}
	return &Snapshot{
		WorldID: id,
		SavedAt: time.Now().UTC(),
		Params:  w.Params(),
		Overlay: w.Overlay().Clone(),
	}
}

// Apply restores the snapshot into w and regenerates it. On error w is left
// untouched.
func (s *Snapshot) Apply(w *world.World) error {
	return w.Restore(s.Params, s.Overlay.Clone())
}
