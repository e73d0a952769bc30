package imaging

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/ironsheep/pixelsum-mcp/internal/pixelsum"
)

var (
	// ErrIndexNotFound is returned by Get when no index is stored under the name.
	ErrIndexNotFound = errors.New("index not found")

	// ErrStoreFull is returned by Put when the store is at capacity.
	ErrStoreFull = errors.New("index store is full")

	// ErrEmptyName is returned by Put for an empty index name.
	ErrEmptyName = errors.New("index name must not be empty")
)

// IndexStore provides thread-safe storage of built region indexes, keyed by a
// caller-chosen name.
//
// Building an index costs a full pass over the pixel grid, so the server keeps
// each one around for every later query that names it. Stored indexes are never
// modified; concurrent Get callers can query the same index without locking.
//
// # Memory Management
//
// A 4095x4095 index holds roughly 150MB. The store refuses new names once it
// holds capacity indexes; callers free slots with Evict or Clear. Replacing an
// existing name never fails.
//
// # Example Usage
//
//	store := imaging.NewIndexStore(16)
//	ix, err := pixelsum.New(buf, w, h)
//	if err != nil {
//	    return err
//	}
//	if err := store.Put("frame-1", ix); err != nil {
//	    return err
//	}
//	ix, err = store.Get("frame-1")
type IndexStore struct {
	mu       sync.RWMutex
	indexes  map[string]*pixelsum.Index
	capacity int
}

// NewIndexStore creates an empty store that holds at most capacity indexes.
// A capacity below 1 is treated as 1.
func NewIndexStore(capacity int) *IndexStore {
	if capacity < 1 {
		capacity = 1
	}
	return &IndexStore{
		indexes:  make(map[string]*pixelsum.Index),
		capacity: capacity,
	}
}

// Put stores ix under name, replacing any index already stored there.
//
// # Errors
//
//   - ErrEmptyName if name is empty
//   - ErrStoreFull if name is new and the store is at capacity
func (s *IndexStore) Put(name string, ix *pixelsum.Index) error {
	if name == "" {
		return ErrEmptyName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.indexes[name]; !ok && len(s.indexes) >= s.capacity {
		return fmt.Errorf("%w: capacity %d, drop an index first", ErrStoreFull, s.capacity)
	}
	s.indexes[name] = ix
	return nil
}

// Get returns the index stored under name.
func (s *IndexStore) Get(name string) (*pixelsum.Index, error) {
	s.mu.RLock()
	ix, ok := s.indexes[name]
	s.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrIndexNotFound, name)
	}
	return ix, nil
}

// Evict removes the index stored under name and reports whether it existed.
func (s *IndexStore) Evict(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.indexes[name]
	delete(s.indexes, name)
	return ok
}

// Clear removes every stored index.
func (s *IndexStore) Clear() {
	s.mu.Lock()
	s.indexes = make(map[string]*pixelsum.Index)
	s.mu.Unlock()
}

// Names returns the stored index names in sorted order.
func (s *IndexStore) Names() []string {
	s.mu.RLock()
	names := make([]string, 0, len(s.indexes))
	for name := range s.indexes {
		names = append(names, name)
	}
	s.mu.RUnlock()

	sort.Strings(names)
	return names
}

// Len returns the number of stored indexes.
func (s *IndexStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.indexes)
}

// Capacity returns the maximum number of indexes the store holds.
func (s *IndexStore) Capacity() int {
	return s.capacity
}
