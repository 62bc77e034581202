// Package game wires the window, input, audio and world together and runs
// the main loop.
package game

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/wirebox/internal/config"
	"github.com/Faultbox/wirebox/internal/engine/audio"
	"github.com/Faultbox/wirebox/internal/engine/debug"
	"github.com/Faultbox/wirebox/internal/engine/input"
	"github.com/Faultbox/wirebox/internal/engine/renderer"
	"github.com/Faultbox/wirebox/internal/engine/window"
	"github.com/Faultbox/wirebox/internal/events"
	"github.com/Faultbox/wirebox/internal/game/states"
	"github.com/Faultbox/wirebox/internal/game/world"
	"github.com/Faultbox/wirebox/internal/logger"
	"github.com/Faultbox/wirebox/internal/physics"
	"github.com/Faultbox/wirebox/internal/wireframe"
	"github.com/Faultbox/wirebox/pkg/math"
)

// Title is the window title prefix.
const Title = "Wirebox"

// Bus layers of the handlers owned by the game.
const (
	hotkeyLayer = -1
	soundLayer  = 1
	renderLayer = 0
)

// Game is the main game instance.
type Game struct {
	cfg     *config.Config
	running bool

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	audio    *audio.Manager

	bus        *events.Bus
	world      *world.World
	controller *states.Controller
	stats      *world.Stats
	screenshot *debug.ScreenshotCapture

	wantShot bool
	mode     states.State
}

// New creates a new game instance.
func New(cfg *config.Config) (*Game, error) {
	logger.Info("initializing game",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
	)

	g := &Game{
		cfg:        cfg,
		bus:        events.NewBus(),
		stats:      &world.Stats{},
		screenshot: debug.NewScreenshotCapture(cfg.Data.ScreenshotDir, "wirebox"),
	}

	var err error
	g.window, err = window.New(window.Config{
		Title:      Title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	g.renderer = renderer.New(g.window.Renderer())

	g.input = input.New(g.bus)
	g.bus.Register(g.input)

	width, height := g.window.GetSize()
	g.world = world.New(worldConfig(cfg, width, height), g.bus)

	ctx := &states.Context{
		World: g.world,
		Pointer: func() math.Vec2 {
			x, y := g.input.Mouse()
			return math.Vec2{X: float64(x), Y: float64(y)}
		},
		Controls: controls(cfg),
		Log:      logger.Named("states"),
	}
	if player := g.initAudio(); player != nil {
		ctx.Sound = player
		g.bus.Register(audio.NewSounds(player, soundLayer))
	}

	g.controller = states.NewController(ctx, cfg.Data.SavePath)
	g.bus.Register(g.controller)
	g.bus.Register(g.stats)
	g.bus.Register(events.Func(hotkeyLayer, g.hotkey))
	g.bus.Register(events.Func(renderLayer, g.draw))

	logger.Info("game initialized successfully")
	return g, nil
}

// initAudio starts the mixer. Sound is optional: failures are logged and
// the game runs silent.
func (g *Game) initAudio() audio.Player {
	if g.cfg.Audio.Muted {
		return nil
	}
	g.audio = audio.New()
	if err := g.audio.Init(g.cfg.Audio.SampleRate); err != nil {
		logger.Warn("audio disabled", zap.Error(err))
		g.audio = nil
		return nil
	}
	g.audio.SetMasterVolume(float64(g.cfg.Audio.MasterVolume))
	g.audio.SetSFXVolume(float64(g.cfg.Audio.SFXVolume))
	return g.audio
}

func worldConfig(cfg *config.Config, width, height int) world.Config {
	return world.Config{
		Physics: physics.Config{
			Friction:  cfg.Physics.Friction,
			Bounce:    cfg.Physics.Bounce,
			Precision: cfg.Physics.Precision,
			Gravity:   cfg.Physics.Gravity.Vec3(),
			Box:       cfg.Physics.Box.Vec3(),
		},
		FOV:            cfg.Camera.FOVRadians(),
		CameraDistance: cfg.Camera.Distance,
		Width:          width,
		Height:         height,
		GridStep:       cfg.Scene.GridStep,
		Outline:        cfg.Scene.Outline,
	}
}

func controls(cfg *config.Config) states.Controls {
	c := cfg.Controls.FaceColor
	return states.Controls{
		LookSpeed:  cfg.Controls.LookSpeed,
		MoveSpeed:  cfg.Controls.MoveSpeed,
		PickRadius: cfg.Scene.PickRadius,
		FaceColor:  wireframe.RGB{R: channel(c[0]), G: channel(c[1]), B: channel(c[2])},
	}
}

func channel(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// Run starts the main loop.
func (g *Game) Run() error {
	g.running = true

	var frame time.Duration
	if g.cfg.Graphics.FPSLimit > 0 {
		frame = time.Second / time.Duration(g.cfg.Graphics.FPSLimit)
	}

	frameCount := 0
	fpsTimer := time.Now()

	logger.Info("starting game loop")
	g.bus.Publish(events.Begin())

	for g.running {
		start := time.Now()

		// Input runs first on the tick and may request quit.
		g.bus.Publish(events.Tick())
		if g.input.QuitRequested() {
			break
		}
		if w, h, ok := g.input.Resized(); ok {
			g.world.Camera.Resize(w, h)
		}
		g.updateTitle()

		g.bus.Publish(events.Render())
		g.window.Present()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			logger.Debug("fps", zap.Int("count", frameCount))
			frameCount = 0
			fpsTimer = time.Now()
		}

		if elapsed := time.Since(start); elapsed < frame {
			time.Sleep(frame - elapsed)
		}
	}

	logger.Info("session stats", g.stats.Fields()...)
	return nil
}

// hotkey handles keys that belong to the application rather than a mode.
func (g *Game) hotkey(ev events.Event) bool {
	if ev.Kind != events.KindKey || ev.Action != events.Press {
		return false
	}
	switch ev.Key {
	case "ESCAPE":
		g.input.RequestQuit()
		return true
	case "F12":
		g.wantShot = true
		return true
	}
	return false
}

// draw renders the scene on Render and takes any pending screenshot.
func (g *Game) draw(ev events.Event) bool {
	if ev.Kind != events.KindRender {
		return false
	}
	if err := g.renderer.Begin(); err != nil {
		logger.Error("begin frame", zap.Error(err))
		return false
	}
	if err := g.renderer.Draw(g.controller.RenderOrder(), g.world.Camera); err != nil {
		logger.Error("draw frame", zap.Error(err))
	}

	if g.wantShot {
		g.wantShot = false
		g.takeScreenshot()
	}
	return false
}

func (g *Game) takeScreenshot() {
	pixels, w, h, err := g.renderer.ReadPixels()
	if err != nil {
		logger.Error("screenshot failed", zap.Error(err))
		return
	}
	path, err := g.screenshot.CaptureFromPixels(pixels, w, h)
	if err != nil {
		logger.Error("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}

func (g *Game) updateTitle() {
	mode := g.controller.Current()
	if mode == g.mode {
		return
	}
	g.mode = mode

	name := "design"
	if g.world.Simulating() {
		name = "simulate"
	}
	g.window.SetTitle(Title + " - " + name)
}

// Close releases game resources.
func (g *Game) Close() {
	logger.Info("closing game")

	if g.audio != nil {
		g.audio.Close()
	}
	if g.window != nil {
		g.window.Close()
	}
}
