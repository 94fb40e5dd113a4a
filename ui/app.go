package ui

import (
	"log/slog"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/wildloop/game"
	"github.com/pthm-cable/wildloop/telemetry"
	"github.com/pthm-cable/wildloop/world"
)

type screen int

const (
	screenMenu screen = iota
	screenSimulation
)

// Layout constants.
const (
	hudHeight  = 90
	sideWidth  = 280
	sideMargin = 10
)

// App is the window front-end: a start menu and a simulation screen.
// The caller owns the raylib window and calls Update and Draw once per frame.
type App struct {
	game      *game.Game
	pacer     *game.Pacer
	screen    screen
	selected  *world.Animal
	quit      bool
	statusErr string

	menu      *StartMenu
	grid      *GridView
	hud       *HUD
	inspector *Inspector
	overlays  *OverlayRegistry
	controls  *ControlsPanel
	theme     Theme
}

// NewApp creates the window front-end with the menu preset to size, prey and predators.
func NewApp(g *game.Game, size, prey, predators int) *App {
	return &App{
		game:      g,
		pacer:     game.NewPacer(g.Config().Simulation.TickInterval),
		menu:      NewStartMenu(size, prey, predators),
		grid:      NewGridView(rl.Rectangle{}),
		hud:       NewHUD(),
		inspector: NewInspector(0, 0, sideWidth),
		overlays:  NewOverlayRegistry(),
		controls:  NewControlsPanel(0, 0, sideWidth),
		theme:     DefaultTheme(),
	}
}

// StartSimulation skips the menu and begins a run immediately.
func (a *App) StartSimulation(size, prey, predators int) error {
	if err := a.game.Start(size, prey, predators); err != nil {
		return err
	}
	a.selected = nil
	a.statusErr = ""
	a.pacer.Reset()
	a.screen = screenSimulation
	return nil
}

// ShouldQuit reports whether the user asked to leave.
func (a *App) ShouldQuit() bool { return a.quit }

// Update handles input and plays the turns that came due since the last frame.
func (a *App) Update() {
	a.game.RecordFrame()
	a.layout()

	if a.screen != screenSimulation {
		return
	}

	a.handleInput()

	for range a.pacer.Due(time.Now()) {
		ended, err := a.game.Step()
		if err != nil {
			slog.Error("simulation step failed", "error", err)
			a.statusErr = err.Error()
		}
		if ended || err != nil {
			break
		}
	}
}

func (a *App) handleInput() {
	if rl.IsKeyPressed(rl.KeySpace) {
		a.togglePause()
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		a.pacer.SetSpeed(a.pacer.Speed() + 1)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		a.pacer.SetSpeed(a.pacer.Speed() - 1)
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		a.controls.Toggle()
	}
	a.overlays.HandleKeys()
	a.grid.HandleInput()

	w := a.game.World()
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		if pos, ok := a.grid.CellAt(w, rl.GetMousePosition()); ok {
			if animal, found := w.At(pos); found {
				a.selected = animal
			}
		}
	}
	if rl.IsMouseButtonPressed(rl.MouseButtonRight) {
		a.selected = nil
	}
}

func (a *App) togglePause() {
	if err := a.game.TogglePause(); err != nil {
		slog.Error("toggling pause failed", "error", err)
	}
	a.pacer.Reset()
}

// layout fits the panels to the current window size.
func (a *App) layout() {
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	a.grid.SetBounds(rl.Rectangle{
		X:      sideMargin,
		Y:      sideMargin,
		Width:  w - sideWidth - 3*sideMargin,
		Height: h - hudHeight - 2*sideMargin,
	})
	sideX := int32(w) - sideWidth - sideMargin
	a.inspector.SetPosition(sideX, sideMargin)
}

// Draw renders the current screen.
func (a *App) Draw() {
	rl.BeginDrawing()
	defer rl.EndDrawing()
	rl.ClearBackground(a.theme.Background)

	screenW := int32(rl.GetScreenWidth())
	screenH := int32(rl.GetScreenHeight())

	if a.screen == screenMenu {
		switch a.menu.Draw(screenW, screenH) {
		case MenuStart:
			if err := a.StartSimulation(a.menu.Values()); err != nil {
				slog.Error("failed to start simulation", "error", err)
			}
		case MenuExit:
			a.quit = true
		}
		return
	}

	w := a.game.World()
	a.grid.Draw(w, a.overlays, a.selected)

	var lifetime *telemetry.LifetimeStats
	if a.selected != nil {
		lifetime = a.game.Lifetimes().Get(a.selected.ID())
	}
	bottom := a.inspector.Draw(InspectorData{Animal: a.selected, Lifetime: lifetime})
	a.controls.SetPosition(screenW-sideWidth-sideMargin, bottom+sideMargin)
	a.controls.Draw(a.overlays, a.game.Profile())

	if a.statusErr != "" {
		rl.DrawText(a.statusErr, sideMargin, screenH-hudHeight-24, 14, a.theme.BarFillLow)
	}

	action := a.hud.Draw(HUDData{
		StatsLine: a.game.StatsLine(),
		Speed:     a.pacer.Speed(),
		FPS:       int32(a.game.Profile().FPS),
		Paused:    a.game.Paused(),
		Ended:     a.game.Ended(),
	}, rl.Rectangle{X: 0, Y: float32(screenH - hudHeight), Width: float32(screenW), Height: hudHeight})

	switch action {
	case HUDTogglePause:
		a.togglePause()
	case HUDBackToMenu:
		if err := a.game.Stop(); err != nil {
			slog.Error("failed to stop simulation", "error", err)
		}
		a.selected = nil
		a.screen = screenMenu
	}
}
