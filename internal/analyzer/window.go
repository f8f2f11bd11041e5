package analyzer

// Window is a contiguous page range sent to the external analyzer as one
// unit. Consecutive windows overlap so that a chapter boundary crossing a
// window edge is seen by at least two windows.
type Window struct {
	Start int
	End   int
}

// Pages returns the window's inclusive page count.
func (w Window) Pages() int {
	return w.End - w.Start + 1
}

// Default window geometry. Smaller windows give more detailed answers but
// cost more calls against a rate-limited backend.
const (
	DefaultWindowSize = 50
	DefaultOverlap    = 5
)

// PlanWindows partitions [1, totalPages] into overlapping windows. A
// trailing window shorter than max(overlap+1, 5) pages is folded into its
// predecessor instead of standing alone.
func PlanWindows(totalPages, windowSize, overlap int) []Window {
	if totalPages <= 0 {
		return nil
	}
	if windowSize <= 0 {
		windowSize = DefaultWindowSize
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= windowSize {
		overlap = windowSize - 1
	}

	minTail := overlap + 1
	if minTail < 5 {
		minTail = 5
	}

	var windows []Window
	step := windowSize - overlap
	for start := 1; start <= totalPages; start += step {
		end := start + windowSize - 1
		if end > totalPages {
			end = totalPages
		}
		if end-start+1 < minTail && len(windows) > 0 {
			windows[len(windows)-1].End = end
			break
		}
		windows = append(windows, Window{Start: start, End: end})
		if end == totalPages {
			break
		}
	}
	return windows
}
