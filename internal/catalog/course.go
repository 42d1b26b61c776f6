// Package catalog holds the in-memory course table: codes, credits, CNF
// prerequisites, co-requisites, offering rules, difficulty, and optional
// estimated grades. It is populated once at process start and treated as
// read-only for the duration of a solve.
package catalog

import (
	"sort"
	"strings"

	"github.com/udp-planner/course-scheduler/internal/calendar"
)

// Clause is a disjunctive set of course codes: at least one must be
// satisfied for the clause to hold.
type Clause []string

// CNF is a conjunction of Clauses: every clause must be satisfied.
type CNF []Clause

// Course is one catalog entry. Id is a dense, 0-based integer assigned at
// load time; Code is the stable, unique string identifier used everywhere
// else (groups, prerequisites, student input).
type Course struct {
	ID            int
	Code          string
	Title         string
	DisplayName   string // used when a hidden distribution slot is scheduled
	Credits       int
	Difficulty    int // 0..10
	Prerequisites CNF
	Corequisites  []string
	OfferingSpec  string
	EstimatedGrade float64 // in [0, 4.0], default 0.0
}

// Catalog is the read-only, process-wide course table.
type Catalog struct {
	courses   []*Course
	byCode    map[string]*Course
	idOfCode  map[string]int
}

// New builds a Catalog from courses, assigning dense ids in slice order.
func New(courses []*Course) *Catalog {
	c := &Catalog{
		courses:  courses,
		byCode:   make(map[string]*Course, len(courses)),
		idOfCode: make(map[string]int, len(courses)),
	}
	for i, course := range courses {
		course.ID = i
		c.byCode[course.Code] = course
		c.idOfCode[course.Code] = i
	}
	return c
}

// Courses returns all courses in dense-id order.
func (c *Catalog) Courses() []*Course { return c.courses }

// ByCode looks up a course by its string code.
func (c *Catalog) ByCode(code string) (*Course, bool) {
	course, ok := c.byCode[code]
	return course, ok
}

// IDOf returns the dense id for a code.
func (c *Catalog) IDOf(code string) (int, bool) {
	id, ok := c.idOfCode[code]
	return id, ok
}

// ByID looks up a course by its dense id.
func (c *Catalog) ByID(id int) (*Course, bool) {
	if id < 0 || id >= len(c.courses) {
		return nil, false
	}
	return c.courses[id], true
}

// Len is the number of courses in the catalog.
func (c *Catalog) Len() int { return len(c.courses) }

// OfferingTerms resolves a course's offeringSpec into the sorted, duplicate-
// free list of term numbers in {1..Smax} at which it may be scheduled. It is
// re-evaluated on every solve so that a change in the current date refreshes
// offerings. "-" means offered nowhere.
func (c *Catalog) OfferingTerms(course *Course, cal *calendar.Calendar, smax int) []int {
	if course.OfferingSpec == "-" {
		return nil
	}

	set := make(map[int]bool)
	for _, tok := range strings.Fields(course.OfferingSpec) {
		switch tok {
		case "alltimes":
			for s := 1; s <= smax; s++ {
				set[s] = true
			}
		case "everyfall":
			for s := 1; s <= smax; s++ {
				if cal.IsFallTerm(s) {
					set[s] = true
				}
			}
		case "everyspring":
			for s := 1; s <= smax; s++ {
				if cal.TermName(s)[:2] == "SP" {
					set[s] = true
				}
			}
		case "everysummerterm":
			for s := 1; s <= smax; s++ {
				if cal.IsSummerTerm(s) {
					set[s] = true
				}
			}
		case "next2terms":
			for s := 1; s <= 2 && s <= smax; s++ {
				set[s] = true
			}
		case "next4terms":
			for s := 1; s <= 4 && s <= smax; s++ {
				set[s] = true
			}
		default:
			// explicit term token, e.g. FA2023
			if n, err := cal.TermNo(tok); err == nil && n >= 1 && n <= smax {
				set[n] = true
			}
		}
	}

	terms := make([]int, 0, len(set))
	for s := range set {
		terms = append(terms, s)
	}
	sort.Ints(terms)
	return terms
}
