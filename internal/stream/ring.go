package stream

// seriesRing is a fixed-capacity circular buffer of (value, timestamp)
// pairs for one channel. Values append at the tail; when full, the
// oldest pair is overwritten, giving O(1) eviction at sustained
// sampling rates.
type seriesRing struct {
	vals  []float32
	ts    []int32
	head  int // index of the oldest element
	count int
}

func newSeriesRing(capacity int) *seriesRing {
	if capacity < 1 {
		capacity = 1
	}
	return &seriesRing{
		vals: make([]float32, capacity),
		ts:   make([]int32, capacity),
	}
}

// push appends a pair, evicting the oldest one when full.
func (r *seriesRing) push(v float32, t int32) {
	tail := (r.head + r.count) % len(r.vals)
	if r.count == len(r.vals) {
		// full: overwrite the head slot and advance
		r.vals[r.head] = v
		r.ts[r.head] = t
		r.head = (r.head + 1) % len(r.vals)
		return
	}
	r.vals[tail] = v
	r.ts[tail] = t
	r.count++
}

// snapshot returns independent copies of the contents in chronological
// order.
func (r *seriesRing) snapshot() ([]float32, []int32) {
	vals := make([]float32, r.count)
	ts := make([]int32, r.count)
	for i := 0; i < r.count; i++ {
		j := (r.head + i) % len(r.vals)
		vals[i] = r.vals[j]
		ts[i] = r.ts[j]
	}
	return vals, ts
}

// resize rebuilds the ring with a new capacity, keeping the newest
// min(count, capacity) pairs.
func (r *seriesRing) resize(capacity int) {
	if capacity < 1 {
		capacity = 1
	}
	if capacity == len(r.vals) {
		return
	}

	keep := r.count
	if keep > capacity {
		keep = capacity
	}
	vals := make([]float32, capacity)
	ts := make([]int32, capacity)
	// copy the newest `keep` pairs
	start := r.count - keep
	for i := 0; i < keep; i++ {
		j := (r.head + start + i) % len(r.vals)
		vals[i] = r.vals[j]
		ts[i] = r.ts[j]
	}
	r.vals = vals
	r.ts = ts
	r.head = 0
	r.count = keep
}

// clear empties the ring in place without reallocating.
func (r *seriesRing) clear() {
	r.head = 0
	r.count = 0
}

// minMax folds the buffered values into a running min/max. ok reports
// whether any value was seen (here or by a previous fold).
func (r *seriesRing) minMax(min, max float64, ok bool) (float64, float64, bool) {
	for i := 0; i < r.count; i++ {
		v := float64(r.vals[(r.head+i)%len(r.vals)])
		if !ok {
			min, max, ok = v, v, true
			continue
		}
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max, ok
}

func (r *seriesRing) len() int { return r.count }
