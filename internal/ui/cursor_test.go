package ui

import "testing"

func TestCursorDownRoundTrip(t *testing.T) {
	for rows := 1; rows <= 6; rows++ {
		for start := 0; start < rows; start++ {
			c := at(start)
			for i := 0; i < rows; i++ {
				c = c.down(rows)
			}
			if c.index != start {
				t.Fatalf("rows=%d start=%d: got %d after %d downs", rows, start, c.index, rows)
			}
		}
	}
}

func TestCursorWraparound(t *testing.T) {
	if c := at(2).down(3); c.index != 0 {
		t.Fatalf("down past last = %d, want 0", c.index)
	}
	if c := at(0).up(3); c.index != 2 {
		t.Fatalf("up past first = %d, want 2", c.index)
	}
	if c := (cursor{}).down(0); c.index != 0 || !c.active {
		t.Fatalf("down on empty = %+v, want row 0", c)
	}
	if c := (cursor{}).up(4); c.index != 0 {
		t.Fatalf("up from no selection = %d, want 0", c.index)
	}
}

func TestCursorClampAndSelected(t *testing.T) {
	if c := at(7).clamp(3); c.index != 2 {
		t.Fatalf("clamp = %d, want 2", c.index)
	}
	if c := at(7).clamp(0); c.index != 0 {
		t.Fatalf("clamp to empty = %d, want 0", c.index)
	}
	if got := (cursor{index: 5}).selected(); got != 0 {
		t.Fatalf("inactive selected() = %d, want 0", got)
	}
}
