// Package tui renders a running simulation in the terminal with tcell.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/wildloop/components"
	"github.com/pthm-cable/wildloop/events"
	"github.com/pthm-cable/wildloop/game"
)

const (
	frameInterval = 33 * time.Millisecond // ~30 FPS
	feedSize      = 12                    // event lines kept for the side feed
	cellWidth     = 2                     // terminal columns per grid cell
)

var (
	styleDefault  = tcell.StyleDefault
	styleTitle    = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleEmpty    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	stylePredator = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	stylePrey     = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleStatus   = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleFeed     = tcell.StyleDefault.Foreground(tcell.ColorSilver)
)

// Terminal draws the grid, a status line and a feed of recent events.
type Terminal struct {
	screen tcell.Screen
	game   *game.Game
	pacer  *game.Pacer
	feed   []string
}

// New creates a terminal front-end on an initialized screen. It subscribes to the
// game's events, so it must be created before the run is started.
func New(screen tcell.Screen, g *game.Game) *Terminal {
	t := &Terminal{
		screen: screen,
		game:   g,
		pacer:  game.NewPacer(g.Config().Simulation.TickInterval),
	}
	g.AddListener(t.record)
	return t
}

// record keeps the newest animal and lifecycle events for the feed.
func (t *Terminal) record(e events.Event) {
	if e.Kind() == events.Turn {
		return
	}
	line := fmt.Sprintf("T%-4d %s", e.Turn(), e.Description())
	t.feed = append(t.feed, line)
	if len(t.feed) > feedSize {
		t.feed = t.feed[len(t.feed)-feedSize:]
	}
}

// Run plays the current run until the user quits or ctx is cancelled.
// The run stays on screen after it ends so the final state can be read.
// The event reader exits with Run once its pending event is dropped, or when
// the screen is finalized.
func (t *Terminal) Run(ctx context.Context) error {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go pollEvents(t.screen, eventChan, done)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev := <-eventChan:
			if !t.HandleEvent(ev) {
				return nil
			}

		case now := <-ticker.C:
			t.advance(now)
			t.Draw()
		}
	}
}

// pollEvents forwards screen events to out until the screen is finalized or
// done is closed.
func pollEvents(screen tcell.Screen, out chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case out <- ev:
		case <-done:
			return
		}
	}
}

func (t *Terminal) advance(now time.Time) {
	for range t.pacer.Due(now) {
		ended, err := t.game.Step()
		if err != nil {
			slog.Error("simulation step failed", "error", err)
			return
		}
		if ended {
			return
		}
	}
}

// HandleEvent applies one terminal event and returns false when the user quits.
func (t *Terminal) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return t.handleKey(ev.Key(), ev.Rune())
	case *tcell.EventResize:
		t.screen.Sync()
	}
	return true
}

func (t *Terminal) handleKey(key tcell.Key, r rune) bool {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRune:
		switch r {
		case 'q', 'Q':
			return false
		case ' ':
			if err := t.game.TogglePause(); err != nil {
				slog.Error("toggling pause failed", "error", err)
			}
			t.pacer.Reset()
		case '+', '=':
			t.pacer.SetSpeed(t.pacer.Speed() + 1)
		case '-', '_':
			t.pacer.SetSpeed(t.pacer.Speed() - 1)
		}
	}
	return true
}

// Draw renders one frame.
func (t *Terminal) Draw() {
	t.screen.Clear()

	t.drawText(0, 0, styleTitle, "WildLoop  "+t.game.StatsLine())

	w := t.game.World()
	if w == nil {
		t.screen.Show()
		return
	}

	grid := w.Grid()
	for x := range grid {
		for y, a := range grid[x] {
			r, style := '.', styleEmpty
			if a != nil {
				r = a.Kind().Symbol()
				style = stylePrey
				if a.Kind() == components.KindPredator {
					style = stylePredator
				}
			}
			t.screen.SetContent(x*cellWidth, y+2, r, nil, style)
		}
	}

	feedX := w.Width()*cellWidth + 2
	t.drawText(feedX, 2, styleTitle, "Recent events")
	for i, line := range t.feed {
		t.drawText(feedX, 3+i, styleFeed, line)
	}

	statusY := max(w.Height(), feedSize+1) + 3
	t.drawText(0, statusY, styleStatus, t.statusLine())
	t.drawText(0, statusY+1, styleDefault, "[space] pause  [+/-] speed  [q/Esc] quit")

	t.screen.Show()
}

func (t *Terminal) statusLine() string {
	status := "Running"
	switch {
	case t.game.Ended():
		status = "Simulation ended"
	case t.game.Paused():
		status = "Paused"
	}
	return fmt.Sprintf("%s | Speed: %dx", status, t.pacer.Speed())
}

func (t *Terminal) drawText(x, y int, style tcell.Style, text string) {
	for i, r := range []rune(text) {
		t.screen.SetContent(x+i, y, r, nil, style)
	}
}
