// Package ui draws the simulation in a raylib window: the grid, a status line,
// the animal inspector, overlay toggles and the start menu.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Theme holds UI styling constants.
type Theme struct {
	Background    rl.Color
	PanelBg       rl.Color
	PanelBorder   rl.Color
	SectionHeader rl.Color
	LabelColor    rl.Color
	ValueColor    rl.Color
	BarBg         rl.Color
	BarFillLow    rl.Color
	BarFillMedium rl.Color
	BarFillHigh   rl.Color

	// Grid
	CellBg        rl.Color
	CellBorder    rl.Color
	EmptyMark     rl.Color
	PredatorColor rl.Color
	PreyColor     rl.Color
	Highlight     rl.Color
	HuntRangeFill rl.Color
	FleeRangeFill rl.Color

	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		Background:    rl.Color{R: 20, G: 25, B: 30, A: 255},
		PanelBg:       rl.Color{R: 20, G: 25, B: 30, A: 240},
		PanelBorder:   rl.Color{R: 60, G: 70, B: 80, A: 255},
		SectionHeader: rl.Yellow,
		LabelColor:    rl.LightGray,
		ValueColor:    rl.RayWhite,
		BarBg:         rl.Color{R: 40, G: 40, B: 40, A: 255},
		BarFillLow:    rl.Color{R: 200, G: 100, B: 100, A: 255},
		BarFillMedium: rl.Color{R: 200, G: 180, B: 100, A: 255},
		BarFillHigh:   rl.Color{R: 100, G: 200, B: 100, A: 255},

		CellBg:        rl.White,
		CellBorder:    rl.LightGray,
		EmptyMark:     rl.Gray,
		PredatorColor: rl.Color{R: 200, G: 40, B: 40, A: 255},
		PreyColor:     rl.Color{R: 30, G: 150, B: 60, A: 255},
		Highlight:     rl.Color{R: 255, G: 220, B: 0, A: 255},
		HuntRangeFill: rl.Color{R: 255, G: 120, B: 120, A: 70},
		FleeRangeFill: rl.Color{R: 120, G: 200, B: 255, A: 70},

		Padding:        10,
		LineHeight:     18,
		LabelWidth:     70,
		BarHeight:      12,
		FontSize:       14,
		HeaderFontSize: 16,
	}
}
