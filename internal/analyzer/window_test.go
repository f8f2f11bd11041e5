package analyzer

import "testing"

func TestPlanWindows(t *testing.T) {
	t.Run("100 pages, size 30, overlap 5", func(t *testing.T) {
		windows := PlanWindows(100, 30, 5)
		want := []Window{{1, 30}, {26, 55}, {51, 80}, {76, 100}}
		if len(windows) != len(want) {
			t.Fatalf("expected %d windows, got %d: %v", len(want), len(windows), windows)
		}
		for i, w := range want {
			if windows[i] != w {
				t.Errorf("window %d = %v, want %v", i, windows[i], w)
			}
		}
	})

	t.Run("short trailing window folds into predecessor", func(t *testing.T) {
		// Starts 1, 29, 57: the 57-60 tail is 4 pages, shorter than
		// max(overlap+1, 5) = 5, so it extends the second window instead
		// of standing alone.
		windows := PlanWindows(60, 30, 2)
		want := []Window{{1, 30}, {29, 60}}
		if len(windows) != len(want) {
			t.Fatalf("expected %d windows, got %d: %v", len(want), len(windows), windows)
		}
		for i, w := range want {
			if windows[i] != w {
				t.Errorf("window %d = %v, want %v", i, windows[i], w)
			}
		}
	})

	t.Run("final window clamps to the last page", func(t *testing.T) {
		windows := PlanWindows(54, 30, 5)
		want := []Window{{1, 30}, {26, 54}}
		if len(windows) != len(want) {
			t.Fatalf("expected %d windows, got %d: %v", len(want), len(windows), windows)
		}
		for i, w := range want {
			if windows[i] != w {
				t.Errorf("window %d = %v, want %v", i, windows[i], w)
			}
		}
	})

	t.Run("document smaller than one window", func(t *testing.T) {
		windows := PlanWindows(12, 30, 5)
		if len(windows) != 1 || windows[0] != (Window{1, 12}) {
			t.Errorf("expected single window (1,12), got %v", windows)
		}
	})

	t.Run("windows cover every page", func(t *testing.T) {
		for _, total := range []int{1, 7, 49, 50, 51, 100, 333, 987} {
			windows := PlanWindows(total, 50, 5)
			covered := make([]bool, total+1)
			for _, w := range windows {
				for p := w.Start; p <= w.End; p++ {
					covered[p] = true
				}
			}
			for p := 1; p <= total; p++ {
				if !covered[p] {
					t.Errorf("total=%d: page %d not covered by %v", total, p, windows)
					break
				}
			}
		}
	})

	t.Run("consecutive windows share the overlap", func(t *testing.T) {
		windows := PlanWindows(200, 40, 4)
		for i := 1; i < len(windows); i++ {
			shared := windows[i-1].End - windows[i].Start + 1
			if shared != 4 && i != len(windows)-1 {
				t.Errorf("windows %d/%d share %d pages, want 4", i-1, i, shared)
			}
		}
	})

	t.Run("zero pages yields no windows", func(t *testing.T) {
		if windows := PlanWindows(0, 30, 5); windows != nil {
			t.Errorf("expected nil, got %v", windows)
		}
	})
}

func TestWindowPages(t *testing.T) {
	if got := (Window{26, 55}).Pages(); got != 30 {
		t.Errorf("Pages() = %d, want 30", got)
	}
}
