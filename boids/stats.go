package boids

import (
	"log/slog"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/pthm-cable/menagerie/geom"
)

// Stats summarises the regular (non-predator) boids.
type Stats struct {
	Tick         int     `csv:"tick"`
	Boids        int     `csv:"boids"`
	Predators    int     `csv:"predators"`
	AverageSpeed float64 `csv:"avg_speed"`
	Alignment    float64 `csv:"alignment"` // |mean unit heading|, 1 when all fly the same way
	Groups       int     `csv:"groups"`
}

// LogValue implements slog.LogValuer for structured logging.
func (s Stats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("tick", s.Tick),
		slog.Int("boids", s.Boids),
		slog.Int("predators", s.Predators),
		slog.Float64("avg_speed", s.AverageSpeed),
		slog.Float64("alignment", s.Alignment),
		slog.Int("groups", s.Groups),
	)
}

// Stats computes the current flock statistics. An empty flock reports zeros.
func (f *Flock) Stats() Stats {
	f.snapshot()
	st := Stats{Tick: f.tick}

	regular := make([]int, 0, len(f.agents))
	for i, a := range f.agents {
		if a.Predator {
			st.Predators++
			continue
		}
		regular = append(regular, i)
	}
	st.Boids = len(regular)
	if st.Boids == 0 {
		return st
	}

	var speed float64
	var heading geom.Vec
	for _, i := range regular {
		v := f.agents[i].Vel
		speed += geom.Magnitude(v)
		heading = geom.Add(heading, geom.Unit(v))
	}
	n := float64(st.Boids)
	st.AverageSpeed = speed / n
	st.Alignment = geom.Clamp01(geom.Magnitude(heading) / n)
	st.Groups = f.countGroups(regular)
	return st
}

// countGroups returns the number of connected components in the graph
// linking regular boids closer than GroupRadius.
func (f *Flock) countGroups(regular []int) int {
	g := simple.NewUndirectedGraph()
	for _, i := range regular {
		g.AddNode(simple.Node(i))
	}
	var near []int
	for _, i := range regular {
		near = f.grid.QueryRadiusInto(near[:0], f.agents[i].Pos, f.settings.GroupRadius, i, f.agents)
		for _, j := range near {
			if j <= i || f.agents[j].Predator {
				continue
			}
			g.SetEdge(g.NewEdge(simple.Node(i), simple.Node(j)))
		}
	}
	return len(topo.ConnectedComponents(g))
}
