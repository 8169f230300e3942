package models

import (
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
)

// FallbackSegments is the resolution of the sphere returned when a model
// cannot be loaded.
const FallbackSegments = 16

// Cache loads each model once and hands out the shared mesh afterwards.
// Meshes returned by Get must be treated as read-only.
type Cache struct {
	log *slog.Logger

	mu     sync.Mutex
	meshes map[string]*Mesh
}

// NewCache creates an empty cache. A nil logger discards messages.
func NewCache(log *slog.Logger) *Cache {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Cache{
		log:    log,
		meshes: make(map[string]*Mesh),
	}
}

// Put stores mesh under name, replacing any earlier entry.
func (c *Cache) Put(name string, mesh *Mesh) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.meshes[name] = mesh
}

// Lookup returns the mesh stored under name without loading anything.
func (c *Cache) Lookup(name string) (*Mesh, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	m, ok := c.meshes[name]
	return m, ok
}

// Get returns the mesh for path, loading it on first use. The loader is
// picked from the extension (.obj, .glb, .gltf) and the result is
// normalized to the unit sphere. If loading fails, a unit sphere is cached
// in its place and the failure is logged once.
func (c *Cache) Get(path string) *Mesh {
	c.mu.Lock()
	defer c.mu.Unlock()

	if m, ok := c.meshes[path]; ok {
		return m
	}

	m, err := Load(path)
	if err != nil {
		c.log.Warn("model load failed, using sphere", "path", path, "err", err)
		m = GenerateSphere(1, FallbackSegments)
	} else {
		m.Normalize()
		c.log.Debug("model loaded", "path", path,
			"vertices", m.VertexCount(), "triangles", m.TriangleCount())
	}

	c.meshes[path] = m
	return m
}

// Len returns the number of cached meshes.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.meshes)
}

// Load reads a model file, choosing the loader from its extension.
func Load(path string) (*Mesh, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".glb", ".gltf":
		return LoadGLB(path)
	default:
		return LoadOBJ(path)
	}
}
