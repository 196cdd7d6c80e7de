package pixelpipe

// lineHistory keeps the two most recently completed scanlines.
// rows[0] holds row y-1 and rows[1] holds row y-2 relative to the row being read.
type lineHistory struct {
	rows [2][Width]Pixel
}

// taps returns the column x values of row y-1 and row y-2.
func (lh *lineHistory) taps(x int) (mid, top Pixel) {
	return lh.rows[0][x], lh.rows[1][x]
}

// reset zeroes both rows.
func (lh *lineHistory) reset() {
	lh.rows = [2][Width]Pixel{}
}

// historyWrite is a pending line history update, applied at the end of a step.
type historyWrite struct {
	x        int
	mid, top Pixel
}

func (lh *lineHistory) apply(w historyWrite) {
	lh.rows[1][w.x] = w.top
	lh.rows[0][w.x] = w.mid
}

// window is the 3x3 sliding grid, indexed [row][col] with row 0 on top and
// column 2 holding the most recently shifted in column.
type window [3][3]Pixel

// shift drops the leftmost column and appends (top, mid, bottom) on the right.
func (w window) shift(top, mid, bottom Pixel) window {
	for row := 0; row < 3; row++ {
		w[row][0] = w[row][1]
		w[row][1] = w[row][2]
	}
	w[0][2] = top
	w[1][2] = mid
	w[2][2] = bottom
	return w
}
