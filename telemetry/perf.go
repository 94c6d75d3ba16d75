package telemetry

import (
	"log/slog"
	"time"
)

// Phase is one timed section of a gallery tick.
type Phase int

const (
	PhaseStep      Phase = iota // advancing the demo
	PhaseStats                  // recording the metric and events
	PhaseTelemetry              // window flush, CSV rows, bookmarks
	numPhases
)

var phaseNames = [numPhases]string{"step", "stats", "telemetry"}

func (p Phase) String() string {
	if p < 0 || p >= numPhases {
		return "unknown"
	}
	return phaseNames[p]
}

// Phases lists the tick phases in execution order.
var Phases = []Phase{PhaseStep, PhaseStats, PhaseTelemetry}

// tickTiming is the timing of one completed tick.
type tickTiming struct {
	total  time.Duration
	phases [numPhases]time.Duration
}

// PerfCollector times ticks and their phases over a rolling window, plus
// the interval between rendered frames.
type PerfCollector struct {
	window *History[tickTiming]

	current    tickTiming
	tickStart  time.Time
	phaseStart time.Time
	phase      Phase
	inPhase    bool

	lastFrame time.Time
	frame     time.Duration
}

// NewPerfCollector keeps the last windowSize ticks (60 when windowSize < 1).
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{window: NewHistory[tickTiming](windowSize)}
}

// StartTick begins timing a tick.
func (p *PerfCollector) StartTick() {
	p.tickStart = time.Now()
	p.current = tickTiming{}
	p.inPhase = false
}

// StartPhase closes the open phase, if any, and starts timing phase.
func (p *PerfCollector) StartPhase(phase Phase) {
	now := time.Now()
	p.closePhase(now)
	p.phase = phase
	p.phaseStart = now
	p.inPhase = true
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.inPhase && p.phase >= 0 && p.phase < numPhases {
		p.current.phases[p.phase] += now.Sub(p.phaseStart)
	}
	p.inPhase = false
}

// EndTick closes the open phase and records the tick.
func (p *PerfCollector) EndTick() {
	now := time.Now()
	p.closePhase(now)
	p.current.total = now.Sub(p.tickStart)
	p.window.Push(p.current)
}

// RecordFrame marks a rendered frame. Only the graphical and terminal
// viewers call it; headless runs report no FPS.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrame.IsZero() {
		p.frame = now.Sub(p.lastFrame)
	}
	p.lastFrame = now
}

// PerfStats summarizes the window.
type PerfStats struct {
	Ticks int // ticks in the window

	AvgTick time.Duration
	P90Tick time.Duration
	MaxTick time.Duration

	PhaseAvg [numPhases]time.Duration
	PhasePct [numPhases]float64 // share of the average tick, 0-100

	TicksPerSecond float64

	FrameDuration time.Duration
	FPS           float64
}

// Phase returns the average duration and tick share of one phase.
func (s PerfStats) Phase(p Phase) (time.Duration, float64) {
	if p < 0 || p >= numPhases {
		return 0, 0
	}
	return s.PhaseAvg[p], s.PhasePct[p]
}

// Stats computes the window summary.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{FrameDuration: p.frame}
	if p.frame > 0 {
		s.FPS = float64(time.Second) / float64(p.frame)
	}

	ticks := p.window.Items()
	if len(ticks) == 0 {
		return s
	}
	s.Ticks = len(ticks)

	totals := make([]float64, len(ticks))
	var phaseSum [numPhases]time.Duration
	for i, t := range ticks {
		totals[i] = float64(t.total)
		for ph, d := range t.phases {
			phaseSum[ph] += d
		}
	}

	sum := Summarize(totals)
	s.AvgTick = time.Duration(sum.Mean)
	s.P90Tick = time.Duration(sum.P90)
	s.MaxTick = time.Duration(sum.Max)

	for ph := range phaseSum {
		s.PhaseAvg[ph] = phaseSum[ph] / time.Duration(len(ticks))
		if s.AvgTick > 0 {
			s.PhasePct[ph] = float64(s.PhaseAvg[ph]) / float64(s.AvgTick) * 100
		}
	}
	if s.AvgTick > 0 {
		s.TicksPerSecond = float64(time.Second) / float64(s.AvgTick)
	}
	return s
}

// LogStats logs the summary at info level.
func (s PerfStats) LogStats() {
	slog.Info("perf", "perf", s)
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("ticks", s.Ticks),
		slog.Int64("avg_tick_us", s.AvgTick.Microseconds()),
		slog.Int64("p90_tick_us", s.P90Tick.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTick.Microseconds()),
		slog.Int("ticks_per_sec", int(s.TicksPerSecond)),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Int("fps", int(s.FPS)))
	}
	for _, ph := range Phases {
		if pct := s.PhasePct[ph]; pct > 0.1 {
			attrs = append(attrs, slog.Float64(ph.String()+"_pct", float64(int(pct*10))/10))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfRow is one perf.csv row.
type PerfRow struct {
	Demo         string  `csv:"demo"`
	WindowEnd    int     `csv:"window_end"`
	Ticks        int     `csv:"ticks"`
	AvgTickUS    int64   `csv:"avg_tick_us"`
	P90TickUS    int64   `csv:"p90_tick_us"`
	MaxTickUS    int64   `csv:"max_tick_us"`
	TicksPerSec  float64 `csv:"ticks_per_sec"`
	FPS          float64 `csv:"fps"`
	StepPct      float64 `csv:"step_pct"`
	StatsPct     float64 `csv:"stats_pct"`
	TelemetryPct float64 `csv:"telemetry_pct"`
}

// Row flattens the summary for CSV output.
func (s PerfStats) Row(demo string, windowEnd int) PerfRow {
	return PerfRow{
		Demo:         demo,
		WindowEnd:    windowEnd,
		Ticks:        s.Ticks,
		AvgTickUS:    s.AvgTick.Microseconds(),
		P90TickUS:    s.P90Tick.Microseconds(),
		MaxTickUS:    s.MaxTick.Microseconds(),
		TicksPerSec:  s.TicksPerSecond,
		FPS:          s.FPS,
		StepPct:      s.PhasePct[PhaseStep],
		StatsPct:     s.PhasePct[PhaseStats],
		TelemetryPct: s.PhasePct[PhaseTelemetry],
	}
}
