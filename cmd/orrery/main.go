// orrery - Procedural planets in your terminal
// Renders a shaded solar system (or a single showcase planet) with a CPU
// rasterizer, either live in the terminal or to image files.
//
// Controls:
//
//	1-5         - Showcase planet: rocky, gas, crystal, lava, ice
//	Tab         - Switch between system and showcase
//	Space       - Pause/resume orbits and spin
//	Arrows/WASD - Orbit the camera
//	+/-, Scroll - Zoom
//	Q/E         - Grow/shrink the showcase planet
//	O           - Toggle orbit rings
//	X           - Toggle axes
//	P           - Save a snapshot (PNG)
//	?           - Toggle HUD overlay
//	Esc         - Quit
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"syscall"

	"github.com/taigrr/orrery/internal/config"
	"github.com/taigrr/orrery/pkg/math3d"
	"github.com/taigrr/orrery/pkg/models"
	"github.com/taigrr/orrery/pkg/scene"
	"github.com/taigrr/orrery/pkg/shader"
)

var (
	configPath = flag.String("config", "", "Path to a YAML config file")
	modeFlag   = flag.String("mode", "", "Scene: system or showcase")
	material   = flag.String("material", "", "Showcase material: rocky, gas, crystal, lava, ice")
	meshPath   = flag.String("mesh", "", "Model (.obj/.glb) for the showcase planet")
	width      = flag.Int("width", 0, "Output width in pixels (headless)")
	height     = flag.Int("height", 0, "Output height in pixels (headless)")
	targetFPS  = flag.Int("fps", 0, "Target FPS (also the time step of a sequence)")
	bgColor    = flag.String("bg", "", "Background color (R,G,B)")
	fov        = flag.Float64("fov", 0, "Field of view in degrees")
	stars      = flag.Int("stars", 0, "Number of background stars")
	orbits     = flag.Bool("orbits", true, "Draw orbit rings")
	outPath    = flag.String("out", "", "Render headless to this image, or directory with -frames")
	frames     = flag.Int("frames", 0, "Number of frames to render headless")
	scale      = flag.Int("scale", 0, "Upscale factor for exported images")
	verbose    = flag.Bool("v", false, "Verbose (debug) logging")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "orrery - Procedural planets in your terminal\n\n")
		fmt.Fprintf(os.Stderr, "Usage: orrery [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  1-5         - Showcase planet (rocky, gas, crystal, lava, ice)\n")
		fmt.Fprintf(os.Stderr, "  Tab         - Switch system/showcase\n")
		fmt.Fprintf(os.Stderr, "  Space       - Pause orbits\n")
		fmt.Fprintf(os.Stderr, "  Arrows/WASD - Orbit camera\n")
		fmt.Fprintf(os.Stderr, "  +/-         - Zoom\n")
		fmt.Fprintf(os.Stderr, "  Q/E         - Grow/shrink planet\n")
		fmt.Fprintf(os.Stderr, "  O           - Toggle orbits\n")
		fmt.Fprintf(os.Stderr, "  X           - Toggle axes\n")
		fmt.Fprintf(os.Stderr, "  P           - Save snapshot\n")
		fmt.Fprintf(os.Stderr, "  ?           - Toggle HUD overlay\n")
		fmt.Fprintf(os.Stderr, "  Esc         - Quit\n")
	}
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg, log); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file (if any) and applies flag overrides.
func loadConfig() (config.Config, error) {
	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			return config.Config{}, err
		}
	}

	flags := config.Flags{
		Width:      *width,
		Height:     *height,
		FPS:        *targetFPS,
		Mode:       *modeFlag,
		Material:   *material,
		Mesh:       *meshPath,
		Background: *bgColor,
		FOV:        *fov,
		Stars:      *stars,
		Output:     *outPath,
		Frames:     *frames,
		Scale:      *scale,
	}
	// Booleans only override the file when given explicitly.
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "orbits" {
			flags.Orbits = orbits
		}
	})

	if err := cfg.Resolve(flags); err != nil {
		return config.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// Session is everything needed to draw frames of one scene.
type Session struct {
	cfg      config.Config
	log      *slog.Logger
	cache    *models.Cache
	renderer *scene.Renderer
	system   *scene.System
	camera   *scene.Camera
	mode     string
	material shader.Material
}

// NewSession builds the scene described by cfg.
func NewSession(cfg config.Config, log *slog.Logger) *Session {
	cache := models.NewCache(log)
	var sf *scene.Starfield
	if cfg.Stars > 0 {
		sf = scene.NewStarfield(cfg.Stars)
	}
	s := &Session{
		cfg:      cfg,
		log:      log,
		cache:    cache,
		renderer: scene.NewRenderer(cache, sf),
		mode:     cfg.Mode,
		material: cfg.MaterialValue(),
	}
	s.rebuild()
	return s
}

// rebuild recreates the system and camera for the current mode and material.
func (s *Session) rebuild() {
	s.camera = scene.NewCamera(s.cfg.FPS)

	if s.mode == config.ModeShowcase {
		s.system = scene.NewShowcase(s.material)
		if s.cfg.Mesh != "" {
			s.system.Bodies[0].Mesh = s.cfg.Mesh
		}
		s.camera.Frame(math3d.Zero3(), s.system.Extent())
	} else {
		s.system = scene.NewSolarSystem()
	}

	s.log.Debug("scene ready", "mode", s.mode, "material", s.material, "bodies", len(s.system.Bodies))
}

// Options returns the frame options from the config.
func (s *Session) Options() scene.Options {
	opts := scene.DefaultOptions()
	opts.Orbits = s.cfg.ShowOrbits
	opts.Axes = s.cfg.ShowAxes
	opts.Stars = s.cfg.Stars > 0
	opts.FOV = s.cfg.FOV * math.Pi / 180
	return opts
}

func run(cfg config.Config, log *slog.Logger) error {
	// Context for clean shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	s := NewSession(cfg, log)
	if cfg.Output != "" {
		if cfg.Frames > 1 {
			return s.RenderSequence(ctx, cfg.Output, cfg.Frames)
		}
		return s.RenderSnapshot(cfg.Output)
	}
	return s.RunViewer(ctx, cancel)
}
