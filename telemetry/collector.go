package telemetry

// Collector accumulates per-tick samples of one metric and produces WindowStats.
type Collector struct {
	demo        string
	metric      string
	windowTicks int

	// Current window tracking
	windowStartTick int
	samples         []float64
	events          int
}

// NewCollector creates a collector flushing every windowTicks ticks.
func NewCollector(demo, metric string, windowTicks int) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{
		demo:        demo,
		metric:      metric,
		windowTicks: windowTicks,
		samples:     make([]float64, 0, windowTicks),
	}
}

// Record adds the metric value observed on the current tick.
func (c *Collector) Record(value float64) {
	c.samples = append(c.samples, value)
}

// RecordEvents adds n discrete events to the current window.
func (c *Collector) RecordEvents(n int) {
	c.events += n
}

// WindowTicks returns the flush interval.
func (c *Collector) WindowTicks() int {
	return c.windowTicks
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int) bool {
	return currentTick-c.windowStartTick >= c.windowTicks
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int) WindowStats {
	sum := Summarize(c.samples)

	var last float64
	if n := len(c.samples); n > 0 {
		last = c.samples[n-1]
	}

	stats := WindowStats{
		Demo:            c.demo,
		Metric:          c.metric,
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		Last:            last,
		Mean:            sum.Mean,
		Std:             sum.Std,
		Min:             sum.Min,
		Max:             sum.Max,
		P10:             sum.P10,
		P50:             sum.P50,
		P90:             sum.P90,
		Events:          c.events,
	}

	c.windowStartTick = currentTick
	c.samples = c.samples[:0]
	c.events = 0

	return stats
}

// Reset discards the current window and restarts counting at tick.
func (c *Collector) Reset(tick int) {
	c.windowStartTick = tick
	c.samples = c.samples[:0]
	c.events = 0
}
