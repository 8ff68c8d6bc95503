package monitor

// WindowSize is the number of recent latency samples the rolling average covers.
const WindowSize = 10

// LatencyWindow is a fixed-size FIFO of latency samples in milliseconds.
// The zero value is an empty window ready for use.
type LatencyWindow struct {
	samples [WindowSize]float64
	next    int
	count   int
}

// Push appends a sample, evicting the oldest once the window is full.
func (w *LatencyWindow) Push(ms float64) {
	w.samples[w.next] = ms
	w.next = (w.next + 1) % WindowSize
	if w.count < WindowSize {
		w.count++
	}
}

// Len returns the number of samples held.
func (w *LatencyWindow) Len() int {
	return w.count
}

// Full reports whether the window holds WindowSize samples.
func (w *LatencyWindow) Full() bool {
	return w.count == WindowSize
}

// Average returns the mean of the held samples, 0 for an empty window.
func (w *LatencyWindow) Average() float64 {
	if w.count == 0 {
		return 0
	}
	var sum float64
	for _, v := range w.Values() {
		sum += v
	}
	return sum / float64(w.count)
}

// Values returns a copy of the samples, oldest first.
func (w *LatencyWindow) Values() []float64 {
	out := make([]float64, 0, w.count)
	start := (w.next - w.count + WindowSize) % WindowSize
	for i := 0; i < w.count; i++ {
		out = append(out, w.samples[(start+i)%WindowSize])
	}
	return out
}
