package model

import "github.com/udp-planner/course-scheduler/internal/groups"

// window is a contiguous run of term numbers treated as a single unit by
// the credit-cap families: a singleton for a non-summer term, or the run of
// consecutive summer slots (S1/S2/ST, or the part of it that lies inside
// 1..Smax) for a summer sequence.
type window []int

// summerWindows partitions 1..Smax into per-term windows, collapsing each
// run of consecutive summer slots into one window per spec §4.6 families 11
// and 18 ("evaluated once, then the window is skipped").
func (b *Builder) summerWindows() []window {
	var out []window
	for s := 1; s <= b.Par.Smax; {
		if b.Cal.HappensDuringSummer(s) {
			w := window{s}
			for w[len(w)-1]+1 <= b.Par.Smax && b.Cal.HappensDuringSummer(w[len(w)-1]+1) {
				w = append(w, w[len(w)-1]+1)
			}
			out = append(out, w)
			s += len(w)
			continue
		}
		out = append(out, window{s})
		s++
	}
	return out
}

// levelSet returns the member codes of a named level band together with
// every band whose name carries it as a dashed prefix (e.g. "L5" plus every
// "L5-*" elective sub-band).
func (b *Builder) levelSet(name string) []string {
	var codes []string
	seen := make(map[string]bool)
	add := func(g *groups.CourseGroup) {
		for _, c := range g.Members {
			if !seen[c] {
				seen[c] = true
				codes = append(codes, c)
			}
		}
	}
	for _, g := range b.Reg.All() {
		if g.Name == name || hasPrefix(g.Name, name+"-") {
			add(g)
		}
	}
	return codes
}

// idsOf resolves a set of codes to catalog ids, silently skipping any code
// absent from the catalog (integrity is already checked by Build).
func (b *Builder) idsOf(codes []string) []int {
	ids := make([]int, 0, len(codes))
	for _, code := range codes {
		if id, ok := b.idOf(code); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

func (b *Builder) isPassedCode(code string) bool {
	return b.In.IsPassed(code)
}

func countPassed(codes []string, passed func(string) bool) int {
	n := 0
	for _, c := range codes {
		if passed(c) {
			n++
		}
	}
	return n
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
