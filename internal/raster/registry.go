package raster

import (
	"fmt"
	"sort"
	"sync"
)

// Backend describes an encoder program and its default arguments.
type Backend struct {
	Name    string
	Command string
	Args    []string
}

var (
	backends = make(map[string]Backend)
	mu       sync.RWMutex
)

func init() {
	Register(Backend{
		Name:    "img2sixel",
		Command: "img2sixel",
		Args:    []string{"-d", "atkinson", "-q", "low"},
	})
	Register(Backend{
		Name:    "magick",
		Command: "magick",
		Args:    []string{"png:-", "-dither", "FloydSteinberg", "sixel:-"},
	})
}

// Register adds an encoder backend.
// Panics if a backend with the same name is already registered.
func Register(b Backend) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := backends[b.Name]; exists {
		panic(fmt.Sprintf("raster: backend %q already registered", b.Name))
	}
	backends[b.Name] = b
}

// List returns the names of all registered backends, sorted.
func List() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the backend registered under name.
func Lookup(name string) (Backend, error) {
	mu.RLock()
	defer mu.RUnlock()

	b, ok := backends[name]
	if !ok {
		return Backend{}, fmt.Errorf("raster: unknown backend %q", name)
	}
	return b, nil
}

// New builds an Exec rasterizer for the named backend. A non-empty path
// replaces the backend's command and non-nil args replace its arguments.
func New(name, path string, args []string) (*Exec, error) {
	b, err := Lookup(name)
	if err != nil {
		return nil, err
	}

	e := &Exec{Path: b.Command, Args: append([]string(nil), b.Args...)}
	if path != "" {
		e.Path = path
	}
	if args != nil {
		e.Args = append([]string(nil), args...)
	}
	return e, nil
}
