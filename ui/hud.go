package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds all the data needed to render the status bar.
type HUDData struct {
	StatsLine string
	Speed     int
	FPS       int32
	Paused    bool
	Ended     bool
}

// HUDAction is a button press reported by the status bar.
type HUDAction int

const (
	HUDNone HUDAction = iota
	HUDTogglePause
	HUDBackToMenu
)

// HUD renders the status bar along the bottom of the window.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the bar inside bounds and reports which button, if any, was pressed.
func (h *HUD) Draw(data HUDData, bounds rl.Rectangle) HUDAction {
	t := h.renderer.Theme
	x, y := int32(bounds.X), int32(bounds.Y)
	h.renderer.DrawPanel(x, y, int32(bounds.Width), int32(bounds.Height))

	rl.DrawText(data.StatsLine, x+t.Padding, y+t.Padding, 20, rl.White)

	status := "Running"
	statusColor := t.BarFillHigh
	switch {
	case data.Ended:
		status, statusColor = "Simulation ended", rl.Gray
	case data.Paused:
		status, statusColor = "PAUSED", rl.Yellow
	}
	rl.DrawText(fmt.Sprintf("%s | Speed: %dx | FPS: %d", status, data.Speed, data.FPS),
		x+t.Padding, y+t.Padding+26, t.FontSize, statusColor)
	rl.DrawText("[Space] pause  [+/-] speed  [Tab] controls  [click] inspect  [wheel] zoom  [C] reset view",
		x+t.Padding, y+t.Padding+46, 12, rl.Gray)

	const buttonW, buttonH = 130, 34
	bx := bounds.X + bounds.Width - 2*buttonW - 20
	by := bounds.Y + (bounds.Height-buttonH)/2

	action := HUDNone
	pauseLabel := "Pause"
	if data.Paused {
		pauseLabel = "Resume"
	}
	if !data.Ended && gui.Button(rl.Rectangle{X: bx, Y: by, Width: buttonW, Height: buttonH}, pauseLabel) {
		action = HUDTogglePause
	}
	if gui.Button(rl.Rectangle{X: bx + buttonW + 10, Y: by, Width: buttonW, Height: buttonH}, "Back to menu") {
		action = HUDBackToMenu
	}
	return action
}
