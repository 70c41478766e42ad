package expression

// Smoother suppresses single-frame jitter by keeping the label sets of the
// last few frames and reporting only labels that recur.
type Smoother struct {
	capacity int
	minCount int
	window   [][]string
}

// NewSmoother returns a smoother over the last capacity frames that treats a
// label as stable once it appears minCount times.
func NewSmoother(capacity, minCount int) *Smoother {
	if capacity < 1 {
		capacity = 1
	}
	if minCount < 1 {
		minCount = 1
	}
	return &Smoother{capacity: capacity, minCount: minCount}
}

// StableCount is how many frames of a window a label must appear in to be
// reported by a session's smoother.
const StableCount = 2

// Push adds one frame's labels and returns the stable labels in order of
// first appearance within the window, or ["Neutral"] when none are stable.
func (s *Smoother) Push(labels []string) []string {
	frame := append([]string(nil), labels...)
	s.window = append(s.window, frame)
	if len(s.window) > s.capacity {
		s.window = s.window[len(s.window)-s.capacity:]
	}

	counts := make(map[string]int)
	var order []string
	for _, set := range s.window {
		for _, l := range set {
			if counts[l] == 0 {
				order = append(order, l)
			}
			counts[l]++
		}
	}

	stable := make([]string, 0, len(order))
	for _, l := range order {
		if counts[l] >= s.minCount {
			stable = append(stable, l)
		}
	}
	if len(stable) == 0 {
		return []string{LabelNeutral}
	}
	return stable
}

// Len returns the number of frames currently buffered.
func (s *Smoother) Len() int {
	return len(s.window)
}
