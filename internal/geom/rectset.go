package geom

// RectSet is a set of pairwise disjoint rectangles.
type RectSet struct {
	rects []Rect
}

// NewRectSet builds a set from possibly overlapping rects.
func NewRectSet(rects ...Rect) RectSet {
	var s RectSet
	for _, r := range rects {
		s.Add(r)
	}
	return s
}

// Add inserts the parts of r not already covered by the set.
func (s *RectSet) Add(r Rect) {
	if r.IsEmpty() {
		return
	}
	pending := []Rect{r}
	for _, existing := range s.rects {
		var next []Rect
		for _, p := range pending {
			next = append(next, p.Shatter(existing)...)
		}
		pending = next
		if len(pending) == 0 {
			return
		}
	}
	s.rects = append(s.rects, pending...)
}

// AddMany adds every rect in rs.
func (s *RectSet) AddMany(rs []Rect) {
	for _, r := range rs {
		s.Add(r)
	}
}

// Rects returns the disjoint pieces. The slice must not be modified.
func (s RectSet) Rects() []Rect {
	return s.rects
}

func (s RectSet) IsEmpty() bool {
	return len(s.rects) == 0
}

// Area is the total covered area.
func (s RectSet) Area() int {
	total := 0
	for _, r := range s.rects {
		total += r.Area()
	}
	return total
}

// Shatter removes hole from every member.
func (s RectSet) Shatter(hole Rect) RectSet {
	var out RectSet
	for _, r := range s.rects {
		out.rects = append(out.rects, r.Shatter(hole)...)
	}
	return out
}

// Intersected clips every member to r.
func (s RectSet) Intersected(r Rect) RectSet {
	var out RectSet
	for _, m := range s.rects {
		if isect := m.Intersected(r); !isect.IsEmpty() {
			out.rects = append(out.rects, isect)
		}
	}
	return out
}

// Contains reports whether p is covered by any member.
func (s RectSet) Contains(p Point) bool {
	for _, r := range s.rects {
		if r.Contains(p) {
			return true
		}
	}
	return false
}

// Clear drops all members.
func (s *RectSet) Clear() {
	s.rects = nil
}
