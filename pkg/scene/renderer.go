package scene

import (
	"fmt"

	"github.com/taigrr/orrery/pkg/models"
	"github.com/taigrr/orrery/pkg/render"
)

const (
	// SphereMesh is the cache key of the built-in body mesh.
	SphereMesh = "builtin:sphere"
	// SphereSegments is the resolution of the built-in sphere.
	SphereSegments = 24
)

// Options control what a frame contains.
type Options struct {
	Orbits     bool
	Axes       bool
	Stars      bool
	OrbitColor render.Color
	// FOV is the horizontal field of view in radians; 0 means 90°.
	FOV float64
}

// DefaultOptions draws stars and orbits with a 90° field of view.
func DefaultOptions() Options {
	return Options{
		Orbits:     true,
		Stars:      true,
		OrbitColor: render.ColorOrbit,
	}
}

// FrameStats counts the work done for one frame.
type FrameStats struct {
	render.RasterStats
	// Meshes drawn and meshes skipped because their bounding sphere lay
	// outside the view.
	Drawn, Skipped int
}

// Renderer draws a System into a framebuffer. Meshes come from the cache;
// procedural ones are generated once and stored there.
type Renderer struct {
	cache *models.Cache
	stars *Starfield

	// Stats of the last frame.
	Stats FrameStats
}

// NewRenderer creates a renderer using cache for meshes and stars for the
// sky. A nil cache gets a private one; a nil starfield draws no stars.
func NewRenderer(cache *models.Cache, stars *Starfield) *Renderer {
	if cache == nil {
		cache = models.NewCache(nil)
	}
	if _, ok := cache.Lookup(SphereMesh); !ok {
		cache.Put(SphereMesh, models.GenerateSphere(1, SphereSegments))
	}
	return &Renderer{cache: cache, stars: stars}
}

// Cache returns the renderer's mesh cache.
func (r *Renderer) Cache() *models.Cache {
	return r.cache
}

// Projector returns the projector used for fb with the given options.
func Projector(fb *render.Framebuffer, cam *Camera, opts Options) render.Projector {
	p := render.NewProjector(fb.Width, fb.Height)
	p.Bias = cam.Bias
	if opts.FOV > 0 {
		p.Scale = render.ScaleForFOV(opts.FOV)
	}
	return p
}

// Frame clears fb and draws the sky, the orbit overlay and every body of
// sys as seen from cam. Bodies wholly outside the view are skipped.
func (r *Renderer) Frame(fb *render.Framebuffer, sys *System, cam *Camera, opts Options) FrameStats {
	fb.Clear()

	rast := render.NewRasterizer(fb)
	rast.Projector = Projector(fb, cam, opts)

	if opts.Stars && r.stars != nil {
		r.stars.Draw(fb, cam, rast.Projector, sys.Time)
	}
	if opts.Orbits || opts.Axes {
		ov := NewOverlay(cam, fb)
		ov.SetProjector(rast.Projector)
		if opts.Orbits {
			ov.DrawOrbits(sys, opts.OrbitColor)
		}
		if opts.Axes {
			ov.DrawAxes(5)
		}
	}

	var stats FrameStats
	frustum := rast.Projector.Frustum(nearPlane)
	view := cam.ViewMatrix()

	for _, b := range sys.Bodies {
		mesh := r.bodyMesh(b)
		model := view.Mul(b.Model())
		box := render.NewAABB(mesh.BoundsMin, mesh.BoundsMax).Transform(model)
		if frustum.IntersectAABB(box) {
			rast.FillMesh(mesh.Vertices, mesh.Faces, model, b.Material, sys.Time)
			stats.Drawn++
		} else {
			stats.Skipped++
		}

		if b.Rings == nil {
			continue
		}
		rings := r.ringMesh(b.Rings)
		if frustum.IntersectsSphere(cam.ToView(b.Position), b.Rings.Outer*b.Scale) {
			rast.FillMesh(rings.Vertices, rings.Faces, view.Mul(b.RingModel()), b.Rings.Material, sys.Time)
			stats.Drawn++
		} else {
			stats.Skipped++
		}
	}

	stats.RasterStats = rast.Stats
	r.Stats = stats
	return stats
}

func (r *Renderer) bodyMesh(b *Body) *models.Mesh {
	if b.Mesh == "" {
		m, _ := r.cache.Lookup(SphereMesh)
		return m
	}
	return r.cache.Get(b.Mesh)
}

func (r *Renderer) ringMesh(ring *Ring) *models.Mesh {
	key := fmt.Sprintf("builtin:rings:%g:%g:%d", ring.Inner, ring.Outer, ring.Segments)
	if m, ok := r.cache.Lookup(key); ok {
		return m
	}
	m := models.GenerateRings(ring.Inner, ring.Outer, ring.Segments)
	r.cache.Put(key, m)
	return m
}
