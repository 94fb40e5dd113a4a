package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/wildloop/components"
	"github.com/pthm-cable/wildloop/telemetry"
	"github.com/pthm-cable/wildloop/world"
)

// legendRow is one line of the controls panel. Rows with an overlay draw as a
// clickable checkbox.
type legendRow struct {
	overlay OverlayID
	label   string
	value   string
}

type legendSection struct {
	title string
	rows  []legendRow
}

// Mouse and keyboard bindings outside the overlay keys.
var bindingRows = []legendRow{
	{label: "Pause", value: "Space"},
	{label: "Speed", value: "+ / -"},
	{label: "Zoom", value: "Wheel"},
	{label: "Pan", value: "Middle drag"},
	{label: "Reset view", value: "C"},
	{label: "Inspect", value: "Click"},
	{label: "Deselect", value: "Right click"},
}

// ControlsPanel shows overlay checkboxes, the key bindings and where the
// engine spends its turn time. Tab shows or hides it.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{renderer: NewRenderer(), x: x, y: y, width: width}
}

func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x, c.y = x, y
}

// Toggle switches visibility and returns the new state.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Draw renders the panel, applies checkbox clicks to overlays and returns the Y below it.
func (c *ControlsPanel) Draw(overlays *OverlayRegistry, profile telemetry.ProfileStats) int32 {
	if !c.visible {
		return c.y
	}
	t := c.renderer.Theme
	sections := legend(overlays, profile)

	rows := 0
	for _, s := range sections {
		rows += len(s.rows) + 1
	}
	height := int32(rows)*t.LineHeight + int32(len(sections))*4 + 2*t.Padding
	c.renderer.DrawPanel(c.x, c.y, c.width, height)

	x := c.x + t.Padding
	inner := c.width - 2*t.Padding
	y := c.y + t.Padding
	for _, s := range sections {
		y = c.renderer.DrawSectionHeader(x, y, s.title) - 2
		for _, row := range s.rows {
			c.drawRow(overlays, row, x, y, inner)
			y += t.LineHeight
		}
		y += 4
	}
	return c.y + height
}

func (c *ControlsPanel) drawRow(overlays *OverlayRegistry, row legendRow, x, y, width int32) {
	t := c.renderer.Theme
	if row.overlay != "" {
		on := overlays.IsEnabled(row.overlay)
		box := rl.Rectangle{X: float32(x), Y: float32(y + 2), Width: 12, Height: 12}
		if gui.CheckBox(box, row.label, on) != on {
			overlays.Toggle(row.overlay)
		}
	} else {
		rl.DrawText(row.label, x, y, t.FontSize, t.LabelColor)
	}
	if row.value != "" {
		w := rl.MeasureText(row.value, t.FontSize)
		rl.DrawText(row.value, x+width-w, y, t.FontSize, t.ValueColor)
	}
}

// legend lays out the panel: one section per overlay category, the bindings,
// then the turn profile once a turn has been played.
func legend(overlays *OverlayRegistry, profile telemetry.ProfileStats) []legendSection {
	var sections []legendSection
	for _, cat := range overlays.Categories() {
		s := legendSection{title: categoryTitle(cat)}
		for _, desc := range overlays.ByCategory(cat) {
			row := legendRow{overlay: desc.ID, label: desc.Name}
			if desc.KeyLabel != "" {
				row.value = "[" + desc.KeyLabel + "]"
			}
			s.rows = append(s.rows, row)
		}
		sections = append(sections, s)
	}
	sections = append(sections, legendSection{title: "Keys", rows: bindingRows})

	if profile.Turns > 0 {
		s := legendSection{title: "Turn Profile"}
		for _, k := range components.Kinds {
			s.rows = append(s.rows, legendRow{
				label: fmt.Sprintf("%s update", k),
				value: profile.UpdateCost(k).String(),
			})
		}
		for _, st := range world.Steps {
			s.rows = append(s.rows, legendRow{label: st.String(), value: fmt.Sprintf("%.1f%%", profile.StepShare(st))})
		}
		s.rows = append(s.rows,
			legendRow{label: "telemetry", value: fmt.Sprintf("%.1f%%", profile.TelemetryPct)},
			legendRow{label: "turns/sec", value: fmt.Sprintf("%.0f", profile.TurnsPerSecond)},
		)
		sections = append(sections, s)
	}
	return sections
}

func categoryTitle(cat string) string {
	switch cat {
	case "cells":
		return "Cell Overlays"
	case "selection":
		return "Selection Overlays"
	}
	return cat
}
