package source

import (
	"fmt"
	"sync"

	"fortio.org/safecast"
)

// Files maps source paths reported by the front end to FileIDs.
// Registration happens while a document is loaded; afterwards the registry is
// only read and may be shared between translation workers.
type Files struct {
	mu     sync.RWMutex
	paths  []string // index -> path (paths[0] = "" for NoFileID)
	byPath map[string]FileID
}

// NewFiles creates an empty registry.
func NewFiles() *Files {
	return &Files{
		paths:  []string{""},
		byPath: make(map[string]FileID),
	}
}

// Add registers path and returns its ID. Registering the same path twice
// returns the existing ID.
func (f *Files) Add(path string) FileID {
	if path == "" {
		return NoFileID
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if id, ok := f.byPath[path]; ok {
		return id
	}
	n, err := safecast.Conv[uint32](len(f.paths))
	if err != nil {
		panic(fmt.Errorf("len(paths) overflow: %w", err))
	}
	id := FileID(n)
	f.paths = append(f.paths, path)
	f.byPath[path] = id
	return id
}

// Path returns the path registered for id.
func (f *Files) Path(id FileID) (string, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if id == NoFileID || int(id) >= len(f.paths) {
		return "", false
	}
	return f.paths[id], true
}

// Len returns the number of registered files.
func (f *Files) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.paths) - 1
}
