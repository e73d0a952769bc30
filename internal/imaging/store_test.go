package imaging

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/ironsheep/pixelsum-mcp/internal/pixelsum"
)

func newTestIndex(t *testing.T, buf []byte, w, h int) *pixelsum.Index {
	t.Helper()
	ix, err := pixelsum.New(buf, w, h)
	if err != nil {
		t.Fatalf("pixelsum.New failed: %v", err)
	}
	return ix
}

func TestIndexStore_PutGet(t *testing.T) {
	store := NewIndexStore(4)
	ix := newTestIndex(t, []byte{1, 2, 3, 4}, 2, 2)

	if err := store.Put("a", ix); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, err := store.Get("a")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != ix {
		t.Error("Get returned a different index")
	}
}

func TestIndexStore_GetMissing(t *testing.T) {
	store := NewIndexStore(4)

	_, err := store.Get("nope")
	if !errors.Is(err, ErrIndexNotFound) {
		t.Errorf("expected ErrIndexNotFound, got %v", err)
	}
}

func TestIndexStore_EmptyName(t *testing.T) {
	store := NewIndexStore(4)
	ix := newTestIndex(t, []byte{1}, 1, 1)

	if err := store.Put("", ix); !errors.Is(err, ErrEmptyName) {
		t.Errorf("expected ErrEmptyName, got %v", err)
	}
}

func TestIndexStore_Capacity(t *testing.T) {
	store := NewIndexStore(2)
	ix := newTestIndex(t, []byte{1}, 1, 1)

	if err := store.Put("a", ix); err != nil {
		t.Fatalf("Put a: %v", err)
	}
	if err := store.Put("b", ix); err != nil {
		t.Fatalf("Put b: %v", err)
	}
	if err := store.Put("c", ix); !errors.Is(err, ErrStoreFull) {
		t.Errorf("Put c: expected ErrStoreFull, got %v", err)
	}

	// Replacing an existing name is allowed at capacity.
	replacement := newTestIndex(t, []byte{9}, 1, 1)
	if err := store.Put("a", replacement); err != nil {
		t.Errorf("replace a: %v", err)
	}
	got, _ := store.Get("a")
	if got != replacement {
		t.Error("replace a: store still holds the old index")
	}

	if !store.Evict("b") {
		t.Error("Evict b: expected true")
	}
	if err := store.Put("c", ix); err != nil {
		t.Errorf("Put c after evict: %v", err)
	}
}

func TestIndexStore_ZeroCapacity(t *testing.T) {
	store := NewIndexStore(0)
	if store.Capacity() != 1 {
		t.Errorf("Capacity: got %d, want 1", store.Capacity())
	}
}

func TestIndexStore_EvictClearNames(t *testing.T) {
	store := NewIndexStore(8)
	ix := newTestIndex(t, []byte{1}, 1, 1)

	for _, name := range []string{"zeta", "alpha", "mid"} {
		if err := store.Put(name, ix); err != nil {
			t.Fatalf("Put %s: %v", name, err)
		}
	}

	names := store.Names()
	want := []string{"alpha", "mid", "zeta"}
	if len(names) != len(want) {
		t.Fatalf("Names: got %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Names[%d]: got %s, want %s", i, names[i], want[i])
		}
	}

	if store.Evict("missing") {
		t.Error("Evict missing: expected false")
	}
	if !store.Evict("mid") {
		t.Error("Evict mid: expected true")
	}
	if store.Len() != 2 {
		t.Errorf("Len after evict: got %d, want 2", store.Len())
	}

	store.Clear()
	if store.Len() != 0 {
		t.Errorf("Len after clear: got %d, want 0", store.Len())
	}
}

func TestIndexStore_Concurrent(t *testing.T) {
	store := NewIndexStore(100)
	ix := newTestIndex(t, []byte{1, 2, 3, 4}, 2, 2)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := fmt.Sprintf("ix-%d", i%5)
			if err := store.Put(name, ix); err != nil {
				t.Errorf("Put %s: %v", name, err)
				return
			}
			got, err := store.Get(name)
			if err != nil {
				t.Errorf("Get %s: %v", name, err)
				return
			}
			if s := got.PixelSum(0, 0, 1, 1); s != 10 {
				t.Errorf("PixelSum: got %d, want 10", s)
			}
		}(i)
	}
	wg.Wait()

	if store.Len() != 5 {
		t.Errorf("Len: got %d, want 5", store.Len())
	}
}
