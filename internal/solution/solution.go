// Package solution defines the typed result of a solve: a course-id-to-term
// map plus derived summary views. It is produced by the solverdriver and is
// read-only thereafter.
package solution

import (
	"sort"

	"github.com/udp-planner/course-scheduler/internal/catalog"
)

// Solution maps a course id to the term number it was scheduled in. Absence
// of an id means the course was not scheduled at all.
type Solution struct {
	terms map[int]int
	cat   *catalog.Catalog
}

// New wraps a raw id->term assignment with catalog context for the derived
// views below.
func New(cat *catalog.Catalog, terms map[int]int) *Solution {
	return &Solution{terms: terms, cat: cat}
}

// TermOf returns the term a course id was scheduled in, and whether it was
// scheduled at all.
func (s *Solution) TermOf(courseID int) (int, bool) {
	t, ok := s.terms[courseID]
	return t, ok
}

// IsScheduled reports whether a course id appears anywhere in the solution.
func (s *Solution) IsScheduled(courseID int) bool {
	_, ok := s.terms[courseID]
	return ok
}

// CreditsTakenSoFar sums the credits of every course assigned to term 0
// (historical/passed).
func (s *Solution) CreditsTakenSoFar() int {
	total := 0
	for id, term := range s.terms {
		if term == 0 {
			total += s.creditsOf(id)
		}
	}
	return total
}

// CreditsToTake sums the credits of every course assigned to a future term
// (term >= 1).
func (s *Solution) CreditsToTake() int {
	total := 0
	for id, term := range s.terms {
		if term >= 1 {
			total += s.creditsOf(id)
		}
	}
	return total
}

func (s *Solution) creditsOf(courseID int) int {
	if c, ok := s.cat.ByID(courseID); ok {
		return c.Credits
	}
	return 0
}

// PerTerm returns an ordered list of course ids for a given term, ordered by
// course id for determinism.
func (s *Solution) PerTerm(term int) []int {
	var ids []int
	for id, t := range s.terms {
		if t == term {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids
}

// MaxTerm returns the latest term number used by any scheduled course (0 if
// nothing beyond historical courses was scheduled).
func (s *Solution) MaxTerm() int {
	max := 0
	for _, t := range s.terms {
		if t > max {
			max = t
		}
	}
	return max
}

// RequiredByDesired reports whether the course at courseID is a
// prerequisite or co-requisite (transitively) of any desired course code,
// per the catalog's requirement closure.
func (s *Solution) RequiredByDesired(courseID int, desiredCodes []string) bool {
	c, ok := s.cat.ByID(courseID)
	if !ok {
		return false
	}
	for _, desired := range desiredCodes {
		if s.cat.RequiresCourse(desired, c.Code) {
			return true
		}
	}
	return false
}

// All returns the raw id->term map, for serialization.
func (s *Solution) All() map[int]int {
	return s.terms
}
