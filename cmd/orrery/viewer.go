package main

import (
	"context"
	"fmt"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/taigrr/orrery/internal/config"
	"github.com/taigrr/orrery/pkg/scene"
	"github.com/taigrr/orrery/pkg/shader"
)

const (
	orbitStep = 0.15 // radians of yaw per key press
	pitchStep = 0.05
	zoomStep  = 1.1
	sizeStep  = 1.05
)

// HUD renders an overlay with scene info and toggles
type HUD struct {
	ShowHUD   bool
	status    string
	statusAt  time.Time
	fps       float64
	fpsFrames int
	fpsTime   time.Time
}

// NewHUD creates a new HUD
func NewHUD() *HUD {
	return &HUD{
		ShowHUD: true,
		fpsTime: time.Now(),
	}
}

// UpdateFPS updates the FPS counter (call once per frame)
func (h *HUD) UpdateFPS() {
	h.fpsFrames++
	elapsed := time.Since(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = time.Now()
	}
}

// SetStatus shows msg on the bottom line for a few seconds.
func (h *HUD) SetStatus(msg string) {
	h.status = msg
	h.statusAt = time.Now()
}

// Render draws the HUD overlay directly to the terminal
func (h *HUD) Render(width, height int, s *Session, stats scene.FrameStats) {
	// ANSI escape codes for positioning and styling
	const (
		reset     = "\x1b[0m"
		bold      = "\x1b[1m"
		dim       = "\x1b[2m"
		bgBlack   = "\x1b[40m"
		fgWhite   = "\x1b[97m"
		fgGreen   = "\x1b[92m"
		fgYellow  = "\x1b[93m"
		fgCyan    = "\x1b[96m"
		clearLine = "\x1b[2K"
	)

	moveTo := func(row, col int) string {
		return fmt.Sprintf("\x1b[%d;%dH", row, col)
	}

	// Always clear the HUD rows (so toggling off works)
	fmt.Print(moveTo(1, 1) + clearLine)
	fmt.Print(moveTo(height, 1) + clearLine)

	if h.status != "" && time.Since(h.statusAt) < 3*time.Second {
		msg := fmt.Sprintf("%s%s%s %s %s", bgBlack, bold, fgYellow, h.status, reset)
		fmt.Print(moveTo(height, 1) + msg)
		return
	}

	if !h.ShowHUD {
		return
	}

	// Top left: FPS
	fmt.Printf("%s%s%s %.0f FPS %s", moveTo(1, 1), bgBlack, fgGreen, h.fps, reset)

	// Top middle: scene title
	title := "Solar system"
	if s.mode == config.ModeShowcase {
		title = fmt.Sprintf("%s (%s)", s.system.Bodies[0].Name, s.material)
	}
	titleCol := max((width-len(title)-2)/2, 1)
	fmt.Print(moveTo(1, titleCol) + fmt.Sprintf("%s%s%s %s %s", bold, bgBlack, fgWhite, title, reset))

	// Top right: triangles drawn
	tris := fmt.Sprintf("%d tris, %d/%d meshes", stats.Submitted-stats.Culled-stats.Offscreen-stats.Degenerate,
		stats.Drawn, stats.Drawn+stats.Skipped)
	fmt.Print(moveTo(1, max(width-len(tris)-1, 1)) + fmt.Sprintf("%s%s%s %s %s", bgBlack, fgCyan, bold, tris, reset))

	check := func(on bool) string {
		if on {
			return "[✓]"
		}
		return "[ ]"
	}
	modeStr := fmt.Sprintf("%s%s %s Orbits  %s Axes  %s Paused %s",
		bgBlack, fgWhite, check(s.cfg.ShowOrbits), check(s.cfg.ShowAxes), check(s.system.Paused), reset)
	fmt.Print(moveTo(height, 1) + modeStr)

	hint := fmt.Sprintf("%s%s%s 1-5 planets, Tab system %s", bgBlack, dim, fgYellow, reset)
	fmt.Print(moveTo(height, max(width-26, 1)) + hint)
}

// Preload loads the configured mesh before the terminal takes over, so
// load warnings reach the log instead of the alt screen.
func (s *Session) Preload() {
	if s.cfg.Mesh != "" {
		s.cache.Get(s.cfg.Mesh)
	}
}

// showcase switches to the showcase planet of material m.
func (s *Session) showcase(m shader.Material) {
	s.mode = config.ModeShowcase
	s.material = m
	s.rebuild()
}

func (s *Session) toggleMode() {
	if s.mode == config.ModeShowcase {
		s.mode = config.ModeSystem
	} else {
		s.mode = config.ModeShowcase
	}
	s.rebuild()
}

// RunViewer shows the scene in the terminal until ctx is cancelled or the
// user quits.
func (s *Session) RunViewer(ctx context.Context, cancel context.CancelFunc) error {
	s.Preload()

	// Create terminal
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	// Two pixels per cell (half blocks)
	fb := s.newFramebuffer(width, height*2)
	hud := NewHUD()

	cleanup := func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}

	handle := func(ev uv.Event) {
		switch ev := ev.(type) {
		case uv.WindowSizeEvent:
			width, height = ev.Width, ev.Height
			term.Erase()
			term.Resize(width, height)
			fb = s.newFramebuffer(width, height*2)

		case uv.KeyPressEvent:
			switch {
			case ev.MatchString("escape", "ctrl+c"):
				cancel()
			case ev.MatchString("1"):
				s.showcase(shader.Rocky)
			case ev.MatchString("2"):
				s.showcase(shader.Gas)
			case ev.MatchString("3"):
				s.showcase(shader.Crystal)
			case ev.MatchString("4"):
				s.showcase(shader.Lava)
			case ev.MatchString("5"):
				s.showcase(shader.Ice)
			case ev.MatchString("tab"):
				s.toggleMode()
			case ev.MatchString("space"):
				s.system.Paused = !s.system.Paused
			case ev.MatchString("left", "a"):
				s.camera.Orbit(-orbitStep, 0)
			case ev.MatchString("right", "d"):
				s.camera.Orbit(orbitStep, 0)
			case ev.MatchString("up", "w"):
				s.camera.Orbit(0, pitchStep)
			case ev.MatchString("down", "s"):
				s.camera.Orbit(0, -pitchStep)
			case ev.MatchString("+", "="):
				s.camera.Zoom(1 / zoomStep)
			case ev.MatchString("-", "_"):
				s.camera.Zoom(zoomStep)
			case ev.MatchString("q"):
				if s.mode == config.ModeShowcase {
					s.system.ScaleBy(sizeStep)
				}
			case ev.MatchString("e"):
				if s.mode == config.ModeShowcase {
					s.system.ScaleBy(1 / sizeStep)
				}
			case ev.MatchString("o"):
				s.cfg.ShowOrbits = !s.cfg.ShowOrbits
			case ev.MatchString("x"):
				s.cfg.ShowAxes = !s.cfg.ShowAxes
			case ev.MatchString("p"):
				path := fmt.Sprintf("orrery_%s.png", time.Now().Format("20060102_150405"))
				if err := fb.Export(path); err != nil {
					hud.SetStatus("snapshot failed: " + err.Error())
				} else {
					hud.SetStatus("saved " + path)
				}
			case ev.MatchString("?"), ev.MatchString("shift+/"):
				hud.ShowHUD = !hud.ShowHUD
			}

		case uv.MouseWheelEvent:
			switch ev.Button {
			case uv.MouseWheelUp:
				s.camera.Zoom(1 / zoomStep)
			case uv.MouseWheelDown:
				s.camera.Zoom(zoomStep)
			}
		}
	}

	// Main loop
	targetDuration := time.Second / time.Duration(s.cfg.FPS)
	ticker := time.NewTicker(targetDuration)
	defer ticker.Stop()
	lastFrame := time.Now()
	events := term.Events()

	for {
		select {
		case <-ctx.Done():
			cleanup()
			return nil
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			handle(ev)
			continue
		case <-ticker.C:
		}

		now := time.Now()
		dt := now.Sub(lastFrame).Seconds()
		lastFrame = now

		if dt > 0.1 {
			dt = 0.1
		}

		s.system.Update(dt)
		s.camera.Update()

		stats := s.renderer.Frame(fb, s.system, s.camera, s.Options())

		// Display
		term.Draw(fb)
		if err := term.Display(); err != nil {
			cleanup()
			return fmt.Errorf("display: %w", err)
		}

		hud.UpdateFPS()
		hud.Render(width, height, s, stats)
	}
}
