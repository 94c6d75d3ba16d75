// Package main runs the grid demos (life, ants) in a terminal.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/menagerie/config"
	"github.com/pthm-cable/menagerie/gallery"
)

const maxStepsPerFrame = 64

var styleStatus = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver)

// app owns the runner and the terminal.
type app struct {
	screen tcell.Screen
	runner *gallery.Runner
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	demoName := flag.String("demo", gallery.DemoLife, "Demo to run: life or ants")
	seed := flag.Int64("seed", 0, "RNG seed (0 = use config, then time-based)")
	fps := flag.Int("fps", 20, "Frames per second")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg := config.Cfg()

	runner, err := newRunner(cfg, *demoName, *seed)
	if err != nil {
		log.Fatal(err)
	}
	defer runner.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("failed to create screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("failed to init screen: %v", err)
	}

	a := &app{screen: screen, runner: runner}
	a.run(time.Second / time.Duration(max(*fps, 1)))
	screen.Fini()
}

// newRunner builds a grid demo. Only life and ants render as character cells.
func newRunner(cfg *config.Config, name string, seed int64) (*gallery.Runner, error) {
	if name != gallery.DemoLife && name != gallery.DemoAnts {
		return nil, fmt.Errorf("%w: %q (terminal supports life and ants)", gallery.ErrUnknownDemo, name)
	}
	if seed == 0 {
		seed = cfg.Gallery.Seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	demo, err := gallery.New(name, cfg, nil, seed)
	if err != nil {
		return nil, err
	}
	return gallery.NewRunner(demo, gallery.Options{
		StepsPerUpdate:      cfg.Gallery.StepsPerUpdate,
		WindowTicks:         cfg.Telemetry.WindowTicks,
		BookmarkHistorySize: cfg.Telemetry.BookmarkHistorySize,
		PerfCollectorWindow: cfg.Telemetry.PerfCollectorWindow,
	})
}

func (a *app) run(frame time.Duration) {
	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	a.render()
	for {
		select {
		case ev := <-eventChan:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if a.handleKey(ev) {
					return
				}
			case *tcell.EventResize:
				a.screen.Sync()
			}
			a.render()
		case <-ticker.C:
			a.runner.Update()
			a.runner.RecordFrame()
			a.render()
		}
	}
}

// handleKey applies one key press and reports whether to quit.
func (a *app) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
	default:
		return false
	}

	switch ev.Rune() {
	case 'q':
		return true
	case ' ':
		a.runner.TogglePause()
	case 'n':
		if a.runner.Paused() {
			a.runner.StepOnce()
		}
	case 'r':
		a.runner.Reset()
	case 'c':
		switch d := a.runner.Demo().(type) {
		case *gallery.LifeDemo:
			d.Simulation().Clear()
		case *gallery.AntsDemo:
			d.Colony().Clear()
		}
		a.runner.ResetTelemetry()
	case '+', '=':
		a.runner.SetStepsPerUpdate(min(a.runner.StepsPerUpdate()*2, maxStepsPerFrame))
	case '-':
		a.runner.SetStepsPerUpdate(max(a.runner.StepsPerUpdate()/2, 1))
	}
	return false
}

func (a *app) render() {
	a.screen.Clear()
	w, h := a.screen.Size()
	draw(a.screen, a.frame(w, h-1))
	drawText(a.screen, 0, h-1, styleStatus, statusLine(a.runner, w))
	a.screen.Show()
}

// frame renders the demo into a w x h view.
func (a *app) frame(w, h int) *frame {
	switch d := a.runner.Demo().(type) {
	case *gallery.LifeDemo:
		return renderLife(d.Simulation().Grid(), w, h)
	case *gallery.AntsDemo:
		c := d.Colony()
		return renderAnts(c.Grid(), c.Ants(), c.Settings().PheromoneCap, w, h)
	}
	return newFrame(w, h)
}

// statusLine summarizes the run, padded to width w.
func statusLine(r *gallery.Runner, w int) string {
	d := r.Demo()
	state := "running"
	if r.Paused() {
		state = "paused"
	}
	s := fmt.Sprintf(" %s | tick %s | %s %s | x%d %s | space pause  n step  r reset  c clear  +/- speed  q quit",
		d.Name(), humanize.Comma(int64(r.Tick())), d.MetricName(),
		humanize.CommafWithDigits(d.Metric(), 1), r.StepsPerUpdate(), state)
	for len(s) < w {
		s += " "
	}
	return s
}
