package model

import "fmt"

// c1CompletionProxy: s*x_{i,s} - D <= 0 for every (i,s). D ends up bounding
// the latest term any scheduled course occupies.
func (b *Builder) c1CompletionProxy(m *LPModel) error {
	for _, c := range b.Cat.Courses() {
		for s := 0; s <= b.Par.Smax; s++ {
			expr := NewExpr().Add(float64(s), VarX(c.ID, s)).Add(-1, VarD)
			m.AddConstraint(fmt.Sprintf("completion_%d_%d", c.ID, s), expr, LE, 0)
		}
	}
	return nil
}

// c2DifficultyBound: for every s, sum_i difficulty_i*x_{i,s} - DL <= 0.
func (b *Builder) c2DifficultyBound(m *LPModel) error {
	for s := 0; s <= b.Par.Smax; s++ {
		expr := NewExpr()
		for _, c := range b.Cat.Courses() {
			expr.Add(float64(c.Difficulty), VarX(c.ID, s))
		}
		expr.Add(-1, VarDL)
		m.AddConstraint(fmt.Sprintf("difficulty_%d", s), expr, LE, 0)
	}
	return nil
}

// c3OfferingAvailability: x_{i,s} <= o_{i,s} for every future slot s.
// Historical slot s=0 is governed entirely by family 19 (passed courses).
func (b *Builder) c3OfferingAvailability(m *LPModel) error {
	for _, c := range b.Cat.Courses() {
		allowed := make(map[int]bool, len(b.offering[c.ID]))
		for _, s := range b.offering[c.ID] {
			allowed[s] = true
		}
		for s := 1; s <= b.Par.Smax; s++ {
			if allowed[s] {
				continue
			}
			expr := NewExpr().Add(1, VarX(c.ID, s))
			m.AddConstraint(fmt.Sprintf("offering_%d_%d", c.ID, s), expr, LE, 0)
		}
	}
	return nil
}

// c4Prerequisites: CNF prerequisite clauses, gated by GateSlots(s). For
// each course i, clause P, and slot s with s >= k_s := GateSlots(s):
//
//	x_{i,s} - sum_{j in P} sum_{t=0..s-k_s} x_{j,t} <= 0
func (b *Builder) c4Prerequisites(m *LPModel) error {
	for _, c := range b.Cat.Courses() {
		if len(c.Prerequisites) == 0 {
			continue
		}
		for s := 1; s <= b.Par.Smax; s++ {
			ks := b.Cal.GateSlots(s)
			if s < ks {
				continue
			}
			for clauseIdx, clause := range c.Prerequisites {
				expr := NewExpr().Add(1, VarX(c.ID, s))
				for _, depID := range b.idsOf(clause) {
					for t := 0; t <= s-ks; t++ {
						expr.Add(-1, VarX(depID, t))
					}
				}
				name := fmt.Sprintf("prereq_%d_%d_%d", c.ID, clauseIdx, s)
				m.AddConstraint(name, expr, LE, 0)
			}
		}
	}
	return nil
}

// c5Corequisites: the flat co-requisite set behaves like one CNF clause
// whose window extends through the target slot itself, per spec §4.6
// family 5 ("disjuncts may also be taken in the same slot s").
func (b *Builder) c5Corequisites(m *LPModel) error {
	for _, c := range b.Cat.Courses() {
		if len(c.Corequisites) == 0 {
			continue
		}
		for s := 1; s <= b.Par.Smax; s++ {
			ks := b.Cal.GateSlots(s)
			if s < ks {
				continue
			}
			expr := NewExpr().Add(1, VarX(c.ID, s))
			for _, depID := range b.idsOf(c.Corequisites) {
				for t := 0; t <= s; t++ {
					expr.Add(-1, VarX(depID, t))
				}
			}
			m.AddConstraint(fmt.Sprintf("coreq_%d_%d", c.ID, s), expr, LE, 0)
		}
	}
	return nil
}

// c6L5Gate: a level-5 course requires at least 4 level-4 courses completed
// strictly before it.
func (b *Builder) c6L5Gate(m *LPModel) error {
	l4 := b.idsOf(b.levelSet("L4"))
	l5 := b.idsOf(b.levelSet("L5"))
	for _, i := range l5 {
		for s := 1; s <= b.Par.Smax; s++ {
			ks := b.Cal.GateSlots(s)
			if s < ks {
				continue
			}
			expr := NewExpr().Add(4, VarX(i, s))
			for _, j := range l4 {
				for t := 0; t <= s-ks; t++ {
					expr.Add(-1, VarX(j, t))
				}
			}
			m.AddConstraint(fmt.Sprintf("l5gate_%d_%d", i, s), expr, LE, 0)
		}
	}
	return nil
}

// c7L6GateFullL4: a level-6 course requires every level-4 course completed
// strictly before it.
func (b *Builder) c7L6GateFullL4(m *LPModel) error {
	l4 := b.idsOf(b.levelSet("L4"))
	l6 := b.idsOf(b.levelSet("L6"))
	for _, i := range l6 {
		for s := 1; s <= b.Par.Smax; s++ {
			ks := b.Cal.GateSlots(s)
			if s < ks {
				continue
			}
			expr := NewExpr().Add(float64(len(l4)), VarX(i, s))
			for _, j := range l4 {
				for t := 0; t <= s-ks; t++ {
					expr.Add(-1, VarX(j, t))
				}
			}
			m.AddConstraint(fmt.Sprintf("l6gate_l4_%d_%d", i, s), expr, LE, 0)
		}
	}
	return nil
}

// c8L6GateL5: a level-6 course additionally requires at least 4 level-5
// courses completed strictly before it.
func (b *Builder) c8L6GateL5(m *LPModel) error {
	l5 := b.idsOf(b.levelSet("L5"))
	l6 := b.idsOf(b.levelSet("L6"))
	for _, i := range l6 {
		for s := 1; s <= b.Par.Smax; s++ {
			ks := b.Cal.GateSlots(s)
			if s < ks {
				continue
			}
			expr := NewExpr().Add(4, VarX(i, s))
			for _, j := range l5 {
				for t := 0; t <= s-ks; t++ {
					expr.Add(-1, VarX(j, t))
				}
			}
			m.AddConstraint(fmt.Sprintf("l6gate_l5_%d_%d", i, s), expr, LE, 0)
		}
	}
	return nil
}

// c9TotalCredits: sum_i credits_i*xi_i >= Tc.
func (b *Builder) c9TotalCredits(m *LPModel) error {
	expr := NewExpr()
	for _, c := range b.Cat.Courses() {
		expr.Add(float64(c.Credits), VarXi(c.ID))
	}
	m.AddConstraint("total_credits", expr, GE, float64(b.Par.Tc))
	return nil
}
