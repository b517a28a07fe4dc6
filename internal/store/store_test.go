package store

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/ironsheep/image-wizard/internal/raster"
)

// newRaster creates a 1x1 RGB raster filled with v.
func newRaster(t *testing.T, v int) *raster.Raster {
	t.Helper()
	r, err := raster.New(1, 1, [][][]int{{{v, v, v}}})
	if err != nil {
		t.Fatalf("raster.New failed: %v", err)
	}
	return r
}

func TestNew(t *testing.T) {
	s := New()
	if s == nil {
		t.Fatal("New returned nil")
	}
	if s.images == nil {
		t.Fatal("New did not initialize images map")
	}
	if s.Len() != 0 {
		t.Errorf("Len: got %d, want 0", s.Len())
	}
}

func TestStore_PutGet(t *testing.T) {
	s := New()
	r := newRaster(t, 10)

	s.Put("cat", r)
	got, err := s.Get("cat")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != r {
		t.Error("Get did not return the stored raster")
	}
}

func TestStore_PutOverwrites(t *testing.T) {
	s := New()
	first := newRaster(t, 10)
	second := newRaster(t, 20)

	s.Put("cat", first)
	s.Put("cat", second)

	got, err := s.Get("cat")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != second {
		t.Error("Put should replace an existing binding")
	}
	if s.Len() != 1 {
		t.Errorf("Len: got %d, want 1", s.Len())
	}
}

func TestStore_Get_NotFound(t *testing.T) {
	s := New()

	_, err := s.Get("ghost")
	if !errors.Is(err, ErrImageNotFound) {
		t.Fatalf("Get error: got %v, want ErrImageNotFound", err)
	}
	if !strings.Contains(err.Error(), "ghost") {
		t.Errorf("error should name the missing image: %v", err)
	}
}

func TestStore_Delete(t *testing.T) {
	s := New()
	s.Put("cat", newRaster(t, 1))

	s.Delete("cat")
	if _, err := s.Get("cat"); !errors.Is(err, ErrImageNotFound) {
		t.Errorf("Get after Delete: got %v, want ErrImageNotFound", err)
	}

	// Should not panic
	s.Delete("never-stored")
}

func TestStore_Clear(t *testing.T) {
	s := New()
	s.Put("a", newRaster(t, 1))
	s.Put("b", newRaster(t, 2))

	s.Clear()

	if s.Len() != 0 {
		t.Errorf("Clear did not empty store: %d images remain", s.Len())
	}
}

func TestStore_Names(t *testing.T) {
	s := New()
	for _, name := range []string{"zebra", "apple", "mango"} {
		s.Put(name, newRaster(t, 0))
	}

	got := s.Names()
	want := []string{"apple", "mango", "zebra"}
	if len(got) != len(want) {
		t.Fatalf("Names: got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names[%d]: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := New()
	r := newRaster(t, 128)
	s.Put("shared", r)

	var wg sync.WaitGroup
	errs := make(chan error, 100)

	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			s.Put(fmt.Sprintf("img-%d", i), r)
		}(i)
		go func() {
			defer wg.Done()
			if _, err := s.Get("shared"); err != nil {
				errs <- err
			}
		}()
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent Get error: %v", err)
	}
	if s.Len() != 51 {
		t.Errorf("Len: got %d, want 51", s.Len())
	}
}
