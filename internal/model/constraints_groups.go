package model

import (
	"fmt"
	"strings"

	"github.com/udp-planner/course-scheduler/internal/groups"
)

// c18GroupFamilies applies the overloaded count/credit semantics of spec
// §4.3 to every plain distribution group. Concentration, capstone,
// soft-order, and OU-annual groups are handled by their own families below.
// CreditDisciplines is reserved and intentionally not enforced (see
// DESIGN.md).
func (b *Builder) c18GroupFamilies(m *LPModel) error {
	for _, g := range b.Reg.Distribution() {
		if g.IsConcentrationArea {
			continue
		}
		if err := b.emitGroupCount(m, g); err != nil {
			return err
		}
		if g.CreditKind == groups.CreditAtLeast && g.Credits > 0 {
			expr := NewExpr()
			for _, id := range b.idsOf(g.Members) {
				expr.Add(float64(b.creditsOf(id)), VarXi(id))
			}
			m.AddConstraint(fmt.Sprintf("group_credits_%s", g.Name), expr, GE, float64(g.Credits))
		}
	}
	return nil
}

func (b *Builder) emitGroupCount(m *LPModel, g *groups.CourseGroup) error {
	switch g.CountKind {
	case groups.CountAtLeast:
		if g.Count <= 0 {
			return nil
		}
		expr := NewExpr()
		for _, id := range b.idsOf(g.Members) {
			expr.Add(1, VarXi(id))
		}
		m.AddConstraint(fmt.Sprintf("group_count_%s", g.Name), expr, GE, float64(g.Count))

	case groups.CountExact:
		remain := maxInt(g.Count-countPassed(g.Members, b.isPassedCode), 0)
		expr := NewExpr()
		for _, code := range g.Members {
			if b.isPassedCode(code) {
				continue
			}
			if id, ok := b.idOf(code); ok {
				expr.Add(1, VarXi(id))
			}
		}
		m.AddConstraint(fmt.Sprintf("group_exact_%s", g.Name), expr, EQ, float64(remain))

	case groups.CountAtMostNet:
		remain := maxInt(g.Count-countPassed(g.Members, b.isPassedCode), 0)
		if remain == 0 {
			return nil
		}
		expr := NewExpr()
		for _, code := range g.Members {
			if b.isPassedCode(code) {
				continue
			}
			if id, ok := b.idOf(code); ok {
				expr.Add(1, VarXi(id))
			}
		}
		m.AddConstraint(fmt.Sprintf("group_atmost_%s", g.Name), expr, LE, float64(remain))

	case groups.CountPerSemester:
		ids := b.idsOf(g.Members)
		for _, w := range b.summerWindows() {
			expr := NewExpr()
			for _, id := range ids {
				for _, s := range w {
					expr.Add(1, VarX(id, s))
				}
			}
			m.AddConstraint(fmt.Sprintf("group_persem_%s_%d", g.Name, w[0]), expr, LE, float64(g.Count))
		}
	}
	return nil
}

func (b *Builder) creditsOf(courseID int) int {
	if c, ok := b.Cat.ByID(courseID); ok {
		return c.Credits
	}
	return 0
}

// c19PassedCourses pins the historical slot: x_{i,0}=1 for every passed
// course, x_{i,0}=0 for every other course.
func (b *Builder) c19PassedCourses(m *LPModel) error {
	passed := make(map[int]bool, len(b.In.Passed))
	for _, code := range b.In.Passed {
		if id, ok := b.idOf(code); ok {
			passed[id] = true
		}
	}
	for _, c := range b.Cat.Courses() {
		rhs := 0.0
		if passed[c.ID] {
			rhs = 1
		}
		expr := NewExpr().Add(1, VarX(c.ID, 0))
		m.AddConstraint(fmt.Sprintf("passed_%d", c.ID), expr, EQ, rhs)
	}
	return nil
}

// c20DesiredCourses encodes the three cases of spec §4.6 family 20: a
// desired course resolved to the full term range is only pinned scheduled
// (xi=1); one resolved to the empty range is pinned NOT-TO-TAKE (xi=0);
// anything else is pinned scheduled and locked to its resolved subset of
// terms.
func (b *Builder) c20DesiredCourses(m *LPModel) error {
	for _, d := range b.In.Desired {
		id, ok := b.idOf(d.Code)
		if !ok {
			continue
		}
		allowed := b.resolveDesiredTerms(d.AllowedTerms)

		switch {
		case len(allowed) == 0:
			m.AddConstraint(fmt.Sprintf("desired_skip_%d", id), NewExpr().Add(1, VarXi(id)), EQ, 0)
		case len(allowed) == b.Par.Smax:
			m.AddConstraint(fmt.Sprintf("desired_take_%d", id), NewExpr().Add(1, VarXi(id)), EQ, 1)
		default:
			m.AddConstraint(fmt.Sprintf("desired_take_%d", id), NewExpr().Add(1, VarXi(id)), EQ, 1)
			set := make(map[int]bool, len(allowed))
			for _, s := range allowed {
				set[s] = true
			}
			for s := 1; s <= b.Par.Smax; s++ {
				if set[s] {
					continue
				}
				m.AddConstraint(fmt.Sprintf("desired_lock_%d_%d", id, s), NewExpr().Add(1, VarX(id, s)), EQ, 0)
			}
		}
	}
	return nil
}

// resolveDesiredTerms expands a desired-course allowed-term expression:
// empty means NOT-TO-TAKE, "allterms" the full horizon, "allotherterms"
// the full horizon except the nearest upcoming term, anything else a
// space-separated list of explicit term tokens.
func (b *Builder) resolveDesiredTerms(expr string) []int {
	expr = strings.TrimSpace(expr)
	switch expr {
	case "":
		return nil
	case "allterms":
		all := make([]int, b.Par.Smax)
		for i := range all {
			all[i] = i + 1
		}
		return all
	case "allotherterms":
		var out []int
		for s := 1; s <= b.Par.Smax; s++ {
			if s != 1 {
				out = append(out, s)
			}
		}
		return out
	default:
		var out []int
		for _, tok := range strings.Fields(expr) {
			if n, err := b.Cal.TermNo(tok); err == nil && n >= 1 && n <= b.Par.Smax {
				out = append(out, n)
			}
		}
		return out
	}
}

// c21SessionToggles forbids every slot of a summer sub-season the student
// opted out of.
func (b *Builder) c21SessionToggles(m *LPModel) error {
	for s := 1; s <= b.Par.Smax; s++ {
		off := (b.In.S1Off && b.Cal.IsSummer1Term(s)) ||
			(b.In.S2Off && b.Cal.HappensDuringSummer(s) && !b.Cal.IsSummer1Term(s) && !b.Cal.IsSummerTerm(s)) ||
			(b.In.STOff && b.Cal.IsSummerTerm(s))
		if !off {
			continue
		}
		for _, c := range b.Cat.Courses() {
			m.AddConstraint(fmt.Sprintf("session_off_%d_%d", c.ID, s), NewExpr().Add(1, VarX(c.ID, s)), EQ, 0)
		}
	}
	return nil
}

// c22Concentration layers the chosen concentration's own count/credit
// requirements on top of the generic group families.
func (b *Builder) c22Concentration(m *LPModel) error {
	for _, g := range b.Reg.ConcentrationGroups(b.In.Concentration) {
		if g.CountKind != groups.CountNone && g.Count > 0 {
			expr := NewExpr()
			for _, id := range b.idsOf(g.Members) {
				expr.Add(1, VarXi(id))
			}
			m.AddConstraint(fmt.Sprintf("concentration_count_%s", g.Name), expr, GE, float64(g.Count))
		}
		if g.CreditKind == groups.CreditAtLeast && g.Credits > 0 {
			expr := NewExpr()
			for _, id := range b.idsOf(g.Members) {
				expr.Add(float64(b.creditsOf(id)), VarXi(id))
			}
			m.AddConstraint(fmt.Sprintf("concentration_credits_%s", g.Name), expr, GE, float64(g.Credits))
		}
	}
	return nil
}

// c23CapstoneGates requires a capstone course to wait for both enough
// earned credit and enough concentration-area courses completed.
func (b *Builder) c23CapstoneGates(m *LPModel) error {
	concentrationIDs := b.idsOf(concentrationMembers(b.Reg.ConcentrationGroups(b.In.Concentration)))

	for _, g := range b.Reg.OfKind(groups.KindCapstone) {
		if len(g.Members) != 1 {
			continue
		}
		kappa, ok := b.idOf(g.Members[0])
		if !ok {
			continue
		}
		for s := 1; s <= b.Par.Smax; s++ {
			ks := b.Cal.GateSlots(s)
			if s < ks {
				continue
			}

			creditExpr := NewExpr().Add(float64(g.Credits), VarX(kappa, s))
			for _, c := range b.Cat.Courses() {
				if c.ID == kappa {
					continue
				}
				for t := 0; t <= s-ks; t++ {
					creditExpr.Add(-float64(c.Credits), VarX(c.ID, t))
				}
			}
			m.AddConstraint(fmt.Sprintf("capstone_credit_%d_%d", kappa, s), creditExpr, LE, 0)

			concExpr := NewExpr().Add(float64(g.Count), VarX(kappa, s))
			for _, id := range concentrationIDs {
				if id == kappa {
					continue
				}
				for t := 0; t <= s-ks; t++ {
					concExpr.Add(-1, VarX(id, t))
				}
			}
			m.AddConstraint(fmt.Sprintf("capstone_conc_%d_%d", kappa, s), concExpr, LE, 0)
		}
	}
	return nil
}

func concentrationMembers(gs []*groups.CourseGroup) []string {
	seen := make(map[string]bool)
	var out []string
	for _, g := range gs {
		for _, code := range g.Members {
			if !seen[code] {
				seen[code] = true
				out = append(out, code)
			}
		}
	}
	return out
}

// c24SoftOrder enforces a soft precedence between two courses: the second
// member may not be scheduled at s unless the first is scheduled within N
// terms before s (N==0 means unbounded lookback) or is never taken at all.
func (b *Builder) c24SoftOrder(m *LPModel) error {
	for _, g := range b.Reg.OfKind(groups.KindSoftOrder) {
		if len(g.Members) != 2 {
			continue
		}
		a, ok1 := b.idOf(g.Members[0])
		bb, ok2 := b.idOf(g.Members[1])
		if !ok1 || !ok2 {
			continue
		}
		for s := 1; s <= b.Par.Smax; s++ {
			lo := 0
			if g.Count > 0 {
				lo = maxInt(0, s-g.Count)
			}
			expr := NewExpr().Add(1, VarX(bb, s))
			for t := lo; t <= s-1; t++ {
				expr.Add(-1, VarX(a, t))
			}
			expr.Add(1, VarXi(a))
			m.AddConstraint(fmt.Sprintf("softorder_%s_%d", g.Name, s), expr, LE, 1)
		}
	}
	return nil
}

// c25OUAnnualCap bounds how many out-of-unit courses a student takes per
// academic year (a Fall slot through the following four slots), with a
// partial-window allowance for the first, possibly-already-in-progress
// year.
func (b *Builder) c25OUAnnualCap(m *LPModel) error {
	for _, g := range b.Reg.OfKind(groups.KindOUAnnual) {
		ids := b.idsOf(g.Members)

		for s := 1; s <= b.Par.Smax; s++ {
			if !b.Cal.IsFallTerm(s) {
				continue
			}
			upper := minInt(s+4, b.Par.Smax)
			expr := NewExpr()
			for _, id := range ids {
				for t := s; t <= upper; t++ {
					expr.Add(1, VarX(id, t))
				}
			}
			m.AddConstraint(fmt.Sprintf("ou_cap_%s_%d", g.Name, s), expr, LE, float64(g.Count))
		}

		nextFall := b.Cal.NextFallTerm(1)
		if nextFall > 1 {
			upper := minInt(nextFall-1, b.Par.Smax)
			expr := NewExpr()
			for _, id := range ids {
				for t := 1; t <= upper; t++ {
					expr.Add(1, VarX(id, t))
				}
			}
			m.AddConstraint(fmt.Sprintf("ou_cap_%s_partial", g.Name), expr, LE, float64(g.Count-b.In.NumOUThisYear))
		}
	}
	return nil
}

// c26HonorsRestriction locks every not-yet-passed honors-track course out
// of the plan for a non-honors student.
func (b *Builder) c26HonorsRestriction(m *LPModel) error {
	if b.In.Honors {
		return nil
	}
	g, ok := b.Reg.Honors()
	if !ok {
		return nil
	}
	for _, code := range g.Members {
		if b.isPassedCode(code) {
			continue
		}
		id, ok := b.idOf(code)
		if !ok {
			continue
		}
		m.AddConstraint(fmt.Sprintf("honors_lock_%d", id), NewExpr().Add(1, VarXi(id)), EQ, 0)
	}
	return nil
}
