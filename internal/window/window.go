// Package window computes which rows of a long list intersect a scroll
// viewport, so the UI renders a bounded number of rows whatever the list
// length. Sizes and offsets are in terminal lines.
package window

import "sort"

// Item is one materialized row.
type Item struct {
	Index int
	// Start is the absolute offset of the row from the top of the list.
	Start int
	Size  int
}

// End returns the offset just past the row.
func (it Item) End() int { return it.Start + it.Size }

// Options configures a Virtualizer.
type Options struct {
	Count int
	// EstimateSize returns the size of row i until Measure records one.
	// Nil means one line per row.
	EstimateSize func(i int) int
	// Overscan rows are materialized on each side of the viewport.
	Overscan     int
	ViewportSize int
}

// Virtualizer tracks row sizes and a scroll offset. It is not safe for
// concurrent use; the UI owns it.
type Virtualizer struct {
	count    int
	estimate func(int) int
	overscan int
	viewport int
	offset   int

	measured map[int]int
	// starts[i] is the offset of row i; starts[count] is the total size.
	starts []int
	dirty  bool
}

// New returns a Virtualizer scrolled to the top.
func New(opts Options) *Virtualizer {
	v := &Virtualizer{
		estimate: opts.EstimateSize,
		overscan: max(opts.Overscan, 0),
		viewport: max(opts.ViewportSize, 0),
		measured: make(map[int]int),
		dirty:    true,
	}
	if v.estimate == nil {
		v.estimate = func(int) int { return 1 }
	}
	v.count = max(opts.Count, 0)
	return v
}

func (v *Virtualizer) Count() int        { return v.count }
func (v *Virtualizer) ViewportSize() int { return v.viewport }
func (v *Virtualizer) ScrollOffset() int { return v.offset }
func (v *Virtualizer) Overscan() int     { return v.overscan }

// SetCount changes the row count. Measurements past the new end are
// dropped and the scroll offset is clamped.
func (v *Virtualizer) SetCount(n int) {
	n = max(n, 0)
	if n == v.count {
		return
	}
	for i := range v.measured {
		if i >= n {
			delete(v.measured, i)
		}
	}
	v.count = n
	v.dirty = true
	v.ScrollTo(v.offset)
}

// SetViewportSize changes the visible height and clamps the offset.
func (v *Virtualizer) SetViewportSize(n int) {
	v.viewport = max(n, 0)
	v.ScrollTo(v.offset)
}

// Measure records the actual size of row i.
func (v *Virtualizer) Measure(i, size int) {
	if i < 0 || i >= v.count {
		return
	}
	size = max(size, 1)
	if old, ok := v.measured[i]; ok && old == size {
		return
	}
	v.measured[i] = size
	v.dirty = true
}

// Size returns the measured or estimated size of row i.
func (v *Virtualizer) Size(i int) int {
	if s, ok := v.measured[i]; ok {
		return s
	}
	return max(v.estimate(i), 1)
}

func (v *Virtualizer) layout() []int {
	if !v.dirty && len(v.starts) == v.count+1 {
		return v.starts
	}
	if cap(v.starts) >= v.count+1 {
		v.starts = v.starts[:v.count+1]
	} else {
		v.starts = make([]int, v.count+1)
	}
	pos := 0
	for i := 0; i < v.count; i++ {
		v.starts[i] = pos
		pos += v.Size(i)
	}
	v.starts[v.count] = pos
	v.dirty = false
	return v.starts
}

// Start returns the absolute offset of row i.
func (v *Virtualizer) Start(i int) int {
	starts := v.layout()
	if i <= 0 {
		return 0
	}
	if i >= v.count {
		return starts[v.count]
	}
	return starts[i]
}

// TotalSize is the height of the whole list.
func (v *Virtualizer) TotalSize() int {
	return v.layout()[v.count]
}

func (v *Virtualizer) maxOffset() int {
	return max(v.TotalSize()-v.viewport, 0)
}

// ScrollTo moves the viewport top to offset, clamped to the list.
func (v *Virtualizer) ScrollTo(offset int) {
	v.offset = min(max(offset, 0), v.maxOffset())
}

// ScrollBy moves the viewport by delta lines.
func (v *Virtualizer) ScrollBy(delta int) {
	v.ScrollTo(v.offset + delta)
}

// ScrollToIndex scrolls the least distance that makes row i fully visible.
// A row taller than the viewport is aligned to the top.
func (v *Virtualizer) ScrollToIndex(i int) {
	if v.count == 0 {
		v.offset = 0
		return
	}
	i = min(max(i, 0), v.count-1)
	start := v.Start(i)
	end := start + v.Size(i)
	switch {
	case start < v.offset:
		v.ScrollTo(start)
	case end > v.offset+v.viewport:
		if end-start > v.viewport {
			v.ScrollTo(start)
		} else {
			v.ScrollTo(end - v.viewport)
		}
	}
}

// IndexAt returns the row covering offset, clamped to valid rows. It
// returns -1 for an empty list.
func (v *Virtualizer) IndexAt(offset int) int {
	if v.count == 0 {
		return -1
	}
	starts := v.layout()
	// First row whose end is past offset.
	i := sort.Search(v.count, func(i int) bool { return starts[i+1] > offset })
	return min(i, v.count-1)
}

// Range returns the half-open row range intersecting the viewport,
// without overscan.
func (v *Virtualizer) Range() (first, last int) {
	if v.count == 0 || v.viewport == 0 {
		return 0, 0
	}
	starts := v.layout()
	first = v.IndexAt(v.offset)
	bottom := v.offset + v.viewport
	last = sort.Search(v.count, func(i int) bool { return starts[i] >= bottom })
	return first, max(last, first+1)
}

// Items returns the rows to render: those intersecting the viewport plus
// Overscan rows on each side.
func (v *Virtualizer) Items() []Item {
	first, last := v.Range()
	if first == last {
		return nil
	}
	first = max(first-v.overscan, 0)
	last = min(last+v.overscan, v.count)

	starts := v.layout()
	items := make([]Item, 0, last-first)
	for i := first; i < last; i++ {
		items = append(items, Item{Index: i, Start: starts[i], Size: starts[i+1] - starts[i]})
	}
	return items
}
