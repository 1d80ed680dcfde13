package ui

// cursor is a table selection that may be empty.
type cursor struct {
	index  int
	active bool
}

// down selects the next row, wrapping to the first. An empty selection
// moves to the first row.
func (c cursor) down(rows int) cursor {
	if !c.active || rows <= 0 || c.index >= rows-1 {
		return cursor{index: 0, active: true}
	}
	return cursor{index: c.index + 1, active: true}
}

// up selects the previous row, wrapping to the last.
func (c cursor) up(rows int) cursor {
	if rows <= 0 {
		return cursor{index: 0, active: true}
	}
	if !c.active {
		return cursor{index: 0, active: true}
	}
	if c.index <= 0 {
		return cursor{index: rows - 1, active: true}
	}
	return cursor{index: c.index - 1, active: true}
}

// at selects row i.
func at(i int) cursor {
	return cursor{index: i, active: true}
}

// clamp keeps the selection inside a view of rows entries.
func (c cursor) clamp(rows int) cursor {
	if rows <= 0 {
		c.index = 0
		return c
	}
	if c.index >= rows {
		c.index = rows - 1
	}
	if c.index < 0 {
		c.index = 0
	}
	return c
}

// selected returns the selected index, or 0 when nothing is selected.
func (c cursor) selected() int {
	if !c.active {
		return 0
	}
	return c.index
}
