package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/wildloop/components"
	"github.com/pthm-cable/wildloop/telemetry"
	"github.com/pthm-cable/wildloop/world"
)

// InspectorData holds everything the inspector panel shows for one animal.
type InspectorData struct {
	Animal   *world.Animal             // nil when nothing is selected
	Lifetime *telemetry.LifetimeStats // nil once the animal has died
}

// Inspector renders the selected animal's info panel.
type Inspector struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewInspector creates a new inspector panel.
func NewInspector(x, y, width int32) *Inspector {
	return &Inspector{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the inspector position.
func (ins *Inspector) SetPosition(x, y int32) {
	ins.x = x
	ins.y = y
}

// Draw renders the panel and returns the Y below it.
func (ins *Inspector) Draw(data InspectorData) int32 {
	r := ins.renderer
	padding := r.Theme.Padding
	contentWidth := ins.width - padding*2

	r.DrawPanel(ins.x, ins.y, ins.width, ins.height(data))

	x := ins.x + padding
	y := r.DrawSectionHeader(x, ins.y+padding, "Animal Info")

	if data.Animal == nil {
		rl.DrawText("No animal selected", x, y, r.Theme.FontSize, r.Theme.LabelColor)
		return y + r.Theme.LineHeight + padding
	}

	snap := data.Animal.Snapshot()
	if snap.Dead {
		rl.DrawText(snap.Summary(), x, y, r.Theme.FontSize, rl.Gray)
		return y + r.Theme.LineHeight + padding
	}

	for _, group := range components.AnimalGroups() {
		for _, fd := range components.AnimalFieldDescriptors() {
			if fd.Group != group {
				continue
			}
			value := components.FormatAnimalValue(&snap, fd)
			if fd.IsBar {
				y = r.DrawRatioBar(x, y, fd.Label, components.GetAnimalValue(&snap, fd.ID), value, contentWidth)
			} else {
				y = r.DrawLabelValue(x, y, fd.Label, value)
			}
		}
		y += 4
	}

	if lt := data.Lifetime; lt != nil {
		y = r.DrawSectionHeader(x, y, "Lifetime")
		if snap.Kind == components.KindPredator {
			y = r.DrawLabelValue(x, y, "Hunts", fmt.Sprintf("%d (%d kills)", lt.Hunts, lt.Kills))
		} else {
			y = r.DrawLabelValue(x, y, "Grazes", fmt.Sprintf("%d (%d flees)", lt.Grazes, lt.Flees))
		}
		y = r.DrawLabelValue(x, y, "Children", fmt.Sprintf("%d", lt.Children))
		y = r.DrawLabelValue(x, y, "Moves", fmt.Sprintf("%d", lt.Moves))
		y = r.DrawLabelValue(x, y, "Born", fmt.Sprintf("turn %d", lt.BirthTurn))
	}
	return y + padding
}

// height estimates the panel height for the rows Draw will produce.
func (ins *Inspector) height(data InspectorData) int32 {
	t := ins.renderer.Theme
	h := t.Padding*2 + t.LineHeight + 2
	if data.Animal == nil || data.Animal.IsDead() {
		return h + t.LineHeight
	}
	for _, fd := range components.AnimalFieldDescriptors() {
		if fd.IsBar {
			h += t.LineHeight + 2
		} else {
			h += t.LineHeight
		}
	}
	h += 4 * int32(len(components.AnimalGroups()))
	if data.Lifetime != nil {
		h += t.LineHeight + 2 + 4*t.LineHeight
	}
	return h
}
