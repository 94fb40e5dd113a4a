package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Slider limits for the start menu.
const (
	minWorldSize = 5
	maxWorldSize = 60
)

// MenuAction is a button press reported by the start menu.
type MenuAction int

const (
	MenuNone MenuAction = iota
	MenuStart
	MenuExit
)

// StartMenu lets the user pick world size and initial populations.
type StartMenu struct {
	renderer  *Renderer
	size      int
	prey      int
	predators int
}

// NewStartMenu creates a menu preset to the given values.
func NewStartMenu(size, prey, predators int) *StartMenu {
	m := &StartMenu{renderer: NewRenderer()}
	m.size = min(max(size, minWorldSize), maxWorldSize)
	m.prey, m.predators = m.clampCount(prey), m.clampCount(predators)
	return m
}

// Values returns the chosen world size and populations.
func (m *StartMenu) Values() (size, prey, predators int) {
	return m.size, m.prey, m.predators
}

// clampCount keeps a population within the number of cells.
func (m *StartMenu) clampCount(n int) int {
	return min(max(n, 0), m.size*m.size)
}

// Draw renders the menu centered on screen and reports the pressed button.
func (m *StartMenu) Draw(screenW, screenH int32) MenuAction {
	t := m.renderer.Theme
	const panelW, panelH = 460, 330
	px := float32(screenW-panelW) / 2
	py := float32(screenH-panelH) / 2
	m.renderer.DrawPanel(int32(px), int32(py), panelW, panelH)

	m.renderer.DrawCenteredText("WildLoop", int32(px)+panelW/2, int32(py)+30, 32, rl.White)

	y := py + 70
	sliderW := float32(panelW - 140)
	row := func(label string, value, lo, hi int) int {
		rl.DrawText(label, int32(px)+20, int32(y), t.FontSize, t.LabelColor)
		y += 18
		v := gui.SliderBar(
			rl.Rectangle{X: px + 20, Y: y, Width: sliderW, Height: 20},
			fmt.Sprint(lo), fmt.Sprint(hi),
			float32(value), float32(lo), float32(hi),
		)
		rl.DrawText(fmt.Sprint(int(v)), int32(px+sliderW)+60, int32(y)+2, 16, t.ValueColor)
		y += 38
		return int(v)
	}

	m.size = row("World size", m.size, minWorldSize, maxWorldSize)
	cells := m.size * m.size
	m.prey = row("Prey", m.clampCount(m.prey), 0, cells)
	m.predators = row("Predators", m.clampCount(m.predators), 0, cells)

	action := MenuNone
	if gui.Button(rl.Rectangle{X: px + 20, Y: y + 6, Width: 200, Height: 36}, "Start simulation") {
		action = MenuStart
	}
	if gui.Button(rl.Rectangle{X: px + panelW - 140, Y: y + 6, Width: 120, Height: 36}, "Exit") {
		action = MenuExit
	}
	return action
}
