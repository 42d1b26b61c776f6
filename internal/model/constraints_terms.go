package model

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/udp-planner/course-scheduler/internal/plannererr"
)

// c10LELatestTerm forbids any "LE" (last-elective) distribution group
// member from being scheduled later than MaxLETerm.
func (b *Builder) c10LELatestTerm(m *LPModel) error {
	for _, g := range b.Reg.All() {
		if g.Name != "LE" && !hasPrefix(g.Name, "LE-") {
			continue
		}
		for _, id := range b.idsOf(g.Members) {
			for s := b.Par.MaxLETerm + 1; s <= b.Par.Smax; s++ {
				expr := NewExpr().Add(1, VarX(id, s))
				m.AddConstraint(fmt.Sprintf("le_latest_%d_%d", id, s), expr, EQ, 0)
			}
		}
	}
	return nil
}

// c11PerTermCreditCap bounds credits taken per term (or per collapsed
// summer window) by the student's Cmax/SummerCmax.
func (b *Builder) c11PerTermCreditCap(m *LPModel) error {
	for _, w := range b.summerWindows() {
		expr := NewExpr()
		for _, c := range b.Cat.Courses() {
			for _, s := range w {
				expr.Add(float64(c.Credits), VarX(c.ID, s))
			}
		}
		cap := b.Par.CmaxFor(b.In.Honors)
		if b.Cal.HappensDuringSummer(w[0]) {
			cap = b.Par.SummerCmaxFor(b.In.Honors)
		}
		name := fmt.Sprintf("credit_cap_%d", w[0])
		m.AddConstraint(name, expr, LE, float64(cap))
	}
	return nil
}

// c12FreshmanPerTermCap applies the stricter first-term course cap to a
// student who has passed fewer than MinNumCourses4Sophomore courses, but only when the student
// gave no explicit per-term override for term 1. Preserved bug-compatible
// with the source: the override check looks only at key 1, regardless of
// which term the freshman cap itself targets (see DESIGN.md).
func (b *Builder) c12FreshmanPerTermCap(m *LPModel) error {
	if b.Par.FreshmanMaxNumCoursesPerTerm <= 0 {
		return nil
	}
	if len(b.In.Passed) >= b.Par.MinNumCourses4Sophomore {
		return nil
	}
	if _, overridden := b.In.PerTermCounts[1]; overridden {
		return nil
	}
	expr := NewExpr()
	for _, c := range b.Cat.Courses() {
		expr.Add(1, VarX(c.ID, 1))
	}
	m.AddConstraint("freshman_cap", expr, LE, float64(b.Par.FreshmanMaxNumCoursesPerTerm))
	return nil
}

// c13StudentPerTermCap applies the student's general per-term course-count
// preference to every term without an explicit override.
func (b *Builder) c13StudentPerTermCap(m *LPModel) error {
	if b.In.MaxNumCrsPerSem <= 0 {
		return nil
	}
	for s := 1; s <= b.Par.Smax; s++ {
		if _, overridden := b.In.PerTermCounts[s]; overridden {
			continue
		}
		expr := NewExpr()
		for _, c := range b.Cat.Courses() {
			expr.Add(1, VarX(c.ID, s))
		}
		m.AddConstraint(fmt.Sprintf("student_cap_%d", s), expr, LE, float64(b.In.MaxNumCrsPerSem))
	}
	return nil
}

// c14PerTermUserExpressions emits the explicit per-term course-count
// overrides: "N" (exact), "=N", "<=N", ">=N", "<N", ">N" (strict bounds
// clamped to the nearest satisfiable integer).
func (b *Builder) c14PerTermUserExpressions(m *LPModel) error {
	terms := make([]int, 0, len(b.In.PerTermCounts))
	for s := range b.In.PerTermCounts {
		terms = append(terms, s)
	}
	sort.Ints(terms)
	for _, s := range terms {
		op, rhs, err := parseTermCountExpr(b.In.PerTermCounts[s])
		if err != nil {
			msg := errors.Wrapf(err, "per-term count expression for term %d", s).Error()
			return plannererr.NewInputParse(msg, s, "per_term_counts")
		}
		expr := NewExpr()
		for _, c := range b.Cat.Courses() {
			expr.Add(1, VarX(c.ID, s))
		}
		m.AddConstraint(fmt.Sprintf("term_expr_%d", s), expr, op, rhs)
	}
	return nil
}

func parseTermCountExpr(raw string) (Op, float64, error) {
	expr := strings.TrimSpace(raw)
	switch {
	case strings.HasPrefix(expr, "<="):
		n, err := strconv.Atoi(strings.TrimSpace(expr[2:]))
		return LE, float64(n), err
	case strings.HasPrefix(expr, ">="):
		n, err := strconv.Atoi(strings.TrimSpace(expr[2:]))
		return GE, float64(n), err
	case strings.HasPrefix(expr, "="):
		n, err := strconv.Atoi(strings.TrimSpace(expr[1:]))
		return EQ, float64(n), err
	case strings.HasPrefix(expr, "<"):
		n, err := strconv.Atoi(strings.TrimSpace(expr[1:]))
		return LE, float64(n - 1), err
	case strings.HasPrefix(expr, ">"):
		n, err := strconv.Atoi(strings.TrimSpace(expr[1:]))
		return GE, float64(n + 1), err
	default:
		n, err := strconv.Atoi(expr)
		return EQ, float64(n), err
	}
}

// c15ThesisWorkload limits the load of any term carrying the thesis course:
// every other course taken that term displaces thesis workload capacity.
func (b *Builder) c15ThesisWorkload(m *LPModel) error {
	thesisID, ok := b.idOf(b.Par.ThesisCourseCode)
	if !ok {
		return nil
	}
	sigma := b.In.MaxNumCrsDurThesis - 1
	cmax := b.Par.CmaxFor(b.In.Honors)
	for s := 1; s <= b.Par.Smax; s++ {
		expr := NewExpr()
		for _, c := range b.Cat.Courses() {
			if c.ID == thesisID {
				continue
			}
			expr.Add(1, VarX(c.ID, s))
		}
		expr.Add(float64(cmax-sigma), VarX(thesisID, s))
		m.AddConstraint(fmt.Sprintf("thesis_load_%d", s), expr, LE, float64(cmax))
	}
	return nil
}

// c16SummerConcurrencyCap bounds how many courses overlap across the
// S1/S2/ST sub-terms of a single summer sequence.
func (b *Builder) c16SummerConcurrencyCap(m *LPModel) error {
	for s := 1; s <= b.Par.Smax; s++ {
		if !b.Cal.IsSummer1Term(s) {
			continue
		}
		if s+2 > b.Par.Smax {
			continue
		}
		expr1 := NewExpr()
		expr2 := NewExpr()
		for _, c := range b.Cat.Courses() {
			expr1.Add(1, VarX(c.ID, s)).Add(1, VarX(c.ID, s+2))
			expr2.Add(1, VarX(c.ID, s+1)).Add(1, VarX(c.ID, s+2))
		}
		m.AddConstraint(fmt.Sprintf("summer_conc_a_%d", s), expr1, LE, float64(b.Par.SummerConcNMax))
		m.AddConstraint(fmt.Sprintf("summer_conc_b_%d", s), expr2, LE, float64(b.Par.SummerConcNMax))
	}
	return nil
}

// c17Linking ties the per-term binaries to the course-level binary:
// sum_s x_{i,s} - xi_i = 0.
func (b *Builder) c17Linking(m *LPModel) error {
	for _, c := range b.Cat.Courses() {
		expr := NewExpr()
		for s := 0; s <= b.Par.Smax; s++ {
			expr.Add(1, VarX(c.ID, s))
		}
		expr.Add(-1, VarXi(c.ID))
		m.AddConstraint(fmt.Sprintf("link_%d", c.ID), expr, EQ, 0)
	}
	return nil
}
