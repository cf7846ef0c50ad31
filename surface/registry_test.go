package surface

import (
	"context"
	"sync"
	"testing"

	"github.com/ysmood/gson"
)

type stubSurface struct{ name string }

func (s *stubSurface) Info(context.Context) (Info, error) { return Info{}, nil }
func (s *stubSurface) Eval(context.Context, string) (gson.JSON, error) {
	return gson.New(nil), nil
}
func (s *stubSurface) Navigate(context.Context, string) error  { return nil }
func (s *stubSurface) Screenshot(context.Context) ([]byte, error) { return nil, nil }

func TestRegistry_SetAndClear(t *testing.T) {
	r := NewRegistry()

	if r.Current() != nil {
		t.Fatal("empty registry should return nil")
	}

	a := &stubSurface{name: "a"}
	r.SetActive(a)
	if got := r.Current(); got != Surface(a) {
		t.Fatalf("Current: got %v, want a", got)
	}

	b := &stubSurface{name: "b"}
	r.SetActive(b)
	if got := r.Current(); got != Surface(b) {
		t.Fatalf("Current after replace: got %v, want b", got)
	}

	r.SetActive(nil)
	if r.Current() != nil {
		t.Fatal("Current after clear: want nil")
	}
}

func TestRegistry_ConcurrentReads(t *testing.T) {
	r := NewRegistry()
	s := &stubSurface{}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				_ = r.Current()
			}
		}()
	}
	for j := 0; j < 1000; j++ {
		if j%2 == 0 {
			r.SetActive(s)
		} else {
			r.SetActive(nil)
		}
	}
	wg.Wait()
}
