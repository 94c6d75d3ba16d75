package viewer

import (
	"fmt"
	"log/slog"
	"math"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/menagerie/ants"
	"github.com/pthm-cable/menagerie/gallery"
	"github.com/pthm-cable/menagerie/geom"
	"github.com/pthm-cable/menagerie/ui"
)

var (
	groundColor   = rl.Color{R: 30, G: 26, B: 22, A: 255}
	obstacleColor = rl.Color{R: 110, G: 110, B: 110, A: 255}
	foodColor     = rl.Color{R: 90, G: 200, B: 80, A: 255}
	nestColor     = rl.Color{R: 160, G: 100, B: 50, A: 255}
	antColor      = rl.Color{R: 230, G: 230, B: 230, A: 255}
	carrierColor  = rl.Color{R: 255, G: 200, B: 60, A: 255}
	pathColor     = rl.Color{R: 255, G: 255, B: 255, A: 50}
)

// antsView draws the pheromone grid and the foragers. Left drag places food,
// right click toggles an obstacle.
type antsView struct {
	demo *gallery.AntsDemo
	last ants.CellPos // last cell food was dropped on during a drag
	hint string
}

func newAntsView(d *gallery.AntsDemo) *antsView {
	return &antsView{demo: d, last: ants.CellPos{X: -1, Y: -1}}
}

func (v *antsView) World() (float64, float64, bool) {
	n := float64(v.demo.Colony().Settings().GridSize)
	return n, n, false
}

func (v *antsView) Draw(vw *Viewer) {
	cam := vw.Camera()
	colony := v.demo.Colony()
	grid := colony.Grid()
	n := grid.Size()
	limit := colony.Settings().PheromoneCap

	rl.DrawRectangleRec(worldRect(cam, 0, 0, float64(n), float64(n)), groundColor)

	showPheromone := vw.Overlays().IsEnabled(ui.OverlayPheromones)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			cell := grid.At(x, y)
			var c rl.Color
			switch {
			case cell.Nest:
				c = nestColor
			case cell.Obstacle:
				c = obstacleColor
			case cell.HasFood():
				c = foodColor
			case showPheromone:
				c = pheromoneColor(cell.Home, cell.Food, limit)
			}
			if c.A == 0 {
				continue
			}
			rl.DrawRectangleRec(worldRect(cam, float64(x), float64(y), 1, 1), c)
		}
	}

	showPaths := vw.Overlays().IsEnabled(ui.OverlayPaths)
	radius := float32(math.Max(1.5, 0.4*cam.Zoom))
	for _, a := range colony.Ants() {
		if showPaths {
			for i := 1; i < len(a.Path); i++ {
				rl.DrawLineV(toVector2(cam.WorldToScreen(a.Path[i-1])), toVector2(cam.WorldToScreen(a.Path[i])), pathColor)
			}
		}
		c := antColor
		if a.HasFood {
			c = carrierColor
		}
		rl.DrawCircleV(toVector2(cam.WorldToScreen(a.Pos)), radius, c)
	}
	drawWorldBorder(cam)
}

func (v *antsView) HandleInput(vw *Viewer, mouse geom.Vec, ok bool) {
	colony := v.demo.Colony()

	if ok && rl.IsMouseButtonDown(rl.MouseButtonLeft) {
		cell := ants.CellPos{X: int(mouse.X), Y: int(mouse.Y)}
		if cell != v.last {
			if err := colony.PlaceFood(cell.X, cell.Y); err != nil {
				slog.Debug("food placement ignored", "error", err)
			}
			v.last = cell
		}
	}
	if rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
		v.last = ants.CellPos{X: -1, Y: -1}
	}
	if ok && rl.IsMouseButtonPressed(rl.MouseButtonRight) {
		if err := colony.ToggleObstacle(int(mouse.X), int(mouse.Y)); err != nil {
			slog.Debug("obstacle toggle ignored", "error", err)
		}
	}
	if ok && rl.IsKeyPressed(rl.KeyF) {
		colony.PlaceFoodPile(int(mouse.X), int(mouse.Y), 3)
	}
	if rl.IsKeyPressed(rl.KeyC) {
		colony.Clear()
	}
}

func (v *antsView) suggest() {
	colony := v.demo.Colony()
	s, changed := ants.SuggestParameters(colony.LastStats(), colony.Settings())
	if len(changed) == 0 {
		v.hint = "no changes suggested"
		return
	}
	colony.SetSettings(s)
	v.hint = "tuned " + strings.Join(changed, ", ")
	slog.Info("applied suggested parameters", "changed", changed)
}

func (v *antsView) Sliders(*Viewer) []ui.SliderDescriptor {
	colony := v.demo.Colony()
	update := func(f func(*ants.Settings)) {
		s := colony.Settings()
		f(&s)
		colony.SetSettings(s)
	}
	return []ui.SliderDescriptor{
		{
			Label: "Pheromone strength", Min: 0.1, Max: 2,
			Get: func() float64 { return colony.Settings().PheromoneStrength },
			Set: func(x float64) { update(func(s *ants.Settings) { s.PheromoneStrength = x }) },
		},
		{
			Label: "Evaporation", Min: 0.001, Max: 0.1, Format: "%.3f",
			Get: func() float64 { return colony.Settings().Evaporation },
			Set: func(x float64) { update(func(s *ants.Settings) { s.Evaporation = x }) },
		},
		{
			Label: "Ant speed", Min: 0.5, Max: 2,
			Get: func() float64 { return colony.Settings().AntSpeed },
			Set: func(x float64) { update(func(s *ants.Settings) { s.AntSpeed = x }) },
		},
		{
			Label: "Sensor distance", Min: 10, Max: 50, Step: 1, Format: "%.0f",
			Get: func() float64 { return colony.Settings().SensorDistance },
			Set: func(x float64) { update(func(s *ants.Settings) { s.SensorDistance = x }) },
		},
		{
			Label: "Sensor angle (deg)", Min: 15, Max: 90, Step: 1, Format: "%.0f",
			Get: func() float64 { return colony.Settings().SensorAngle * 180 / math.Pi },
			Set: func(x float64) { update(func(s *ants.Settings) { s.SensorAngle = x * math.Pi / 180 }) },
		},
		{
			Label: "Ants (on reset)", Min: 10, Max: 200, Step: 1, Format: "%.0f",
			Get: func() float64 { return float64(colony.Settings().NumAnts) },
			Set: func(x float64) { update(func(s *ants.Settings) { s.NumAnts = int(x) }) },
		},
	}
}

func (v *antsView) Buttons(vw *Viewer) []ui.ButtonDescriptor {
	return []ui.ButtonDescriptor{
		{Label: "Clear", OnClick: v.demo.Colony().Clear},
		{Label: "Suggest", OnClick: v.suggest},
		{Label: "Respawn", OnClick: vw.Runner().Reset},
	}
}

func (v *antsView) Stats() []ui.SectionDescriptor {
	colony := v.demo.Colony()
	st := colony.LastStats
	eff := v.demo.Efficiency
	return []ui.SectionDescriptor{
		{
			Title: "Colony",
			Fields: []ui.FieldDescriptor{
				{Label: "Carriers", Widget: ui.WidgetText, Format: "%.0f", Getter: func() float64 { return float64(st().FoodCarriers) }},
				{Label: "Active", Widget: ui.WidgetText, Format: "%.0f", Getter: func() float64 { return float64(st().ActiveAnts) }},
				{Label: "Deliveries", Widget: ui.WidgetText, Format: "%.0f", Getter: func() float64 { return float64(st().Deliveries) }},
				{Label: "Food cells", Widget: ui.WidgetText, Format: "%.0f", Getter: func() float64 { return float64(st().FoodCells) }},
				{Label: "Avg path", Widget: ui.WidgetText, Format: "%.1f", Getter: func() float64 { return st().AveragePathLength }},
				{Label: "Pheromone", Widget: ui.WidgetText, Format: "%.1f", Getter: func() float64 { return st().TotalPheromone }},
				{Label: "Efficiency", Widget: ui.WidgetBar, Range: ui.DefaultRange(), Getter: func() float64 { return eff().Score }},
			},
		},
		{
			Title:   "Hints",
			Visible: func() bool { return len(eff().Suggestions) > 0 },
			Fields: []ui.FieldDescriptor{
				{Label: "1", Widget: ui.WidgetText, TextGetter: func() string { return suggestion(eff(), 0) }},
				{Label: "2", Widget: ui.WidgetText, TextGetter: func() string { return suggestion(eff(), 1) },
					Visible: func() bool { return len(eff().Suggestions) > 1 }},
			},
		},
	}
}

// suggestion returns the i-th hint shortened to fit a panel line.
func suggestion(e ants.Efficiency, i int) string {
	if i >= len(e.Suggestions) {
		return ""
	}
	s := e.Suggestions[i]
	if dot := strings.IndexByte(s, '.'); dot > 0 {
		s = s[:dot]
	}
	const maxLen = 24
	if len(s) > maxLen {
		s = s[:maxLen-3] + "..."
	}
	return s
}

func (v *antsView) Status() string {
	s := "drag: food | right click: obstacle | F: food pile | C: clear"
	if v.hint != "" {
		s = fmt.Sprintf("%s | %s", s, v.hint)
	}
	return s
}

func (v *antsView) Unload() {}
