package gui

import (
	"context"
	"errors"
	"log"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/boxdrop/internal/config"
	"github.com/san-kum/boxdrop/internal/physics"
	"github.com/san-kum/boxdrop/internal/sim"
)

var (
	ColBg    = rl.Black
	ColBody  = rl.White
	ColDebug = rl.Red
	ColPair  = rl.Yellow
	ColText  = rl.NewColor(140, 140, 140, 255)
)

// App is the native window playground. It owns the window for its
// lifetime and must be driven from the main goroutine.
type App struct {
	Cfg       *config.Config
	World     *sim.World
	ShowBoxes bool
	Pressed   bool

	hud *hudStats
}

// initWindow opens the window at the configured size and rate. Escape is
// bound to the debug overlay, so raylib's default exit key is disabled.
func initWindow(cfg *config.Config) error {
	rl.InitWindow(int32(cfg.Width), int32(cfg.Height), cfg.Title)
	if !rl.IsWindowReady() {
		return &physics.SystemError{Op: "create window", Err: errors.New("raylib window not ready")}
	}
	rl.SetTargetFPS(int32(cfg.FPS))
	rl.SetExitKey(0)
	return nil
}

func NewApp(cfg *config.Config) *App {
	world := sim.New(cfg.Tuning())
	world.SetWorkers(cfg.Workers)
	hud := &hudStats{}
	world.AddObserver(hud)
	return &App{Cfg: cfg, World: world, hud: hud}
}

// Run opens the window and blocks until it is closed.
func Run(ctx context.Context, cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := initWindow(cfg); err != nil {
		return err
	}
	defer rl.CloseWindow()

	app := NewApp(cfg)
	log.Printf("window %dx%d at %.0f fps", cfg.Width, cfg.Height, cfg.FPS)
	return app.RunLoop(ctx)
}

// RunLoop ticks the world once per frame, then handles input and draws.
// The world is as large as the window.
func (a *App) RunLoop(ctx context.Context) error {
	bounds := func() physics.Bounds {
		return physics.NewBounds(float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight()))
	}
	err := a.World.RunWithCallback(ctx, a.Cfg.Dt(), bounds, func(w *sim.World) bool {
		if rl.WindowShouldClose() {
			return false
		}
		a.Update()
		a.Draw()
		return true
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (a *App) Update() {
	if rl.IsKeyPressed(rl.KeyEscape) {
		a.ShowBoxes = !a.ShowBoxes
	}

	pos := rl.GetMousePosition()
	a.pointer(rl.IsMouseButtonPressed(rl.MouseLeftButton), rl.IsMouseButtonReleased(rl.MouseLeftButton), pos.X, pos.Y)
}

// pointer applies one frame of left-button state. A press and release can
// land in the same frame, so the release is checked on its own.
func (a *App) pointer(pressed, released bool, x, y float32) {
	if pressed {
		s := a.Cfg.Spawn
		if _, err := a.World.SpawnRectangle(x, y, s.Width, s.Height, s.Mass); err != nil {
			log.Printf("spawn at (%.0f, %.0f): %v", x, y, err)
			return
		}
		a.Pressed = true
	} else if a.Pressed {
		a.World.Drag(x, y)
	}

	if released && a.Pressed {
		a.Pressed = false
		a.World.Release()
		log.Printf("release at (%.0f, %.0f), %d bodies", x, y, a.World.Len())
	}
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	a.drawBodies()
	a.DrawHUD()

	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	rl.DrawText(a.hud.String(), 10, 10, 10, ColText)
	if a.ShowBoxes {
		rl.DrawText("[ESC] boxes", 10, 24, 10, ColDebug)
	}
}
