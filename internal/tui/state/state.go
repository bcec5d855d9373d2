package state

import "strconv"

func ClampCursor(cursor, size int) int {
	if size <= 0 {
		return 0
	}
	if cursor >= size {
		return size - 1
	}
	if cursor < 0 {
		return 0
	}
	return cursor
}

func CenteredWindow(totalRows, cursor, height int) (int, int) {
	if totalRows <= 0 {
		return 0, 0
	}
	if height <= 0 || totalRows <= height {
		return 0, totalRows
	}
	cursor = ClampCursor(cursor, totalRows)
	start := cursor - height/2
	if start < 0 {
		start = 0
	}
	maxStart := totalRows - height
	if start > maxStart {
		start = maxStart
	}
	return start, start + height
}

// PageButtons returns at most limit page numbers from 1..total, centered on
// current where possible.
func PageButtons(total, current, limit int) []int {
	if total <= 0 {
		return nil
	}
	if limit <= 0 || limit > total {
		limit = total
	}
	start, end := CenteredWindow(total, current-1, limit)
	out := make([]int, 0, end-start)
	for i := start; i < end; i++ {
		out = append(out, i+1)
	}
	return out
}

// DigitPage maps a single digit key to a page number. "0" means page 10.
func DigitPage(key string) (int, bool) {
	if len(key) != 1 {
		return 0, false
	}
	n, err := strconv.Atoi(key)
	if err != nil {
		return 0, false
	}
	if n == 0 {
		n = 10
	}
	return n, true
}
