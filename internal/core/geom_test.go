package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
		{"outside right", 35, 15, false},
		{"outside top", 15, 5, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := r.Contains(tc.x, tc.y)
			if result != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, result, tc.expected)
			}
		})
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}
}

func TestRectInset(t *testing.T) {
	r := NewRect(0, 0, 10, 6).Inset(1)
	if r != NewRect(1, 1, 8, 4) {
		t.Errorf("Inset(1) = %+v, expected {1 1 8 4}", r)
	}

	tiny := NewRect(0, 0, 1, 1).Inset(2)
	if tiny.W != 0 || tiny.H != 0 {
		t.Errorf("Inset on tiny rect should clamp to zero size, got %+v", tiny)
	}
}

func TestCenteredRect(t *testing.T) {
	r := CenteredRect(80, 24, 20, 10)
	if r.X != 30 || r.Y != 7 {
		t.Errorf("CenteredRect() origin = (%d, %d), expected (30, 7)", r.X, r.Y)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, lo, hi, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.lo, tc.hi)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.lo, tc.hi, result, tc.expected)
		}
	}
}

func TestActionIsMovement(t *testing.T) {
	for _, a := range []Action{ActionUp, ActionDown, ActionLeft, ActionRight} {
		if !a.IsMovement() {
			t.Errorf("%s should be a movement action", a)
		}
	}
	for _, a := range []Action{ActionNone, ActionPause, ActionRestart, ActionHelp, ActionQuit} {
		if a.IsMovement() {
			t.Errorf("%s should not be a movement action", a)
		}
	}
}
