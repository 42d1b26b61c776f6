package model

import (
	"github.com/rs/zerolog/log"

	"github.com/udp-planner/course-scheduler/internal/calendar"
	"github.com/udp-planner/course-scheduler/internal/catalog"
	"github.com/udp-planner/course-scheduler/internal/groups"
	"github.com/udp-planner/course-scheduler/internal/params"
	"github.com/udp-planner/course-scheduler/internal/plannererr"
	"github.com/udp-planner/course-scheduler/internal/student"
)

// Builder assembles the MILP for one solve. Catalog, Registry, and Params
// are treated as immutable for the duration of Build; Input is the fresh
// per-run student data.
type Builder struct {
	Cal *calendar.Calendar
	Cat *catalog.Catalog
	Reg *groups.Registry
	Par *params.Params
	In  *student.Input

	offering map[int][]int // course id -> allowed future term numbers
}

// NewBuilder wires the four read-only collaborators and one run's input.
func NewBuilder(cal *calendar.Calendar, cat *catalog.Catalog, reg *groups.Registry, par *params.Params, in *student.Input) *Builder {
	return &Builder{Cal: cal, Cat: cat, Reg: reg, Par: par, In: in}
}

// Build emits the complete LPModel for this run, or a *plannererr.PlannerError
// if the catalog/registry fail integrity checks or the student input cannot
// be parsed.
func (b *Builder) Build() (*LPModel, error) {
	if err := b.Cat.ValidateIntegrity(); err != nil {
		return nil, plannererr.NewCatalogIntegrity(err.Error())
	}
	if err := b.Reg.ValidateIntegrity(); err != nil {
		return nil, plannererr.NewCatalogIntegrity(err.Error())
	}

	b.precomputeOfferings()

	m := NewLPModel()
	b.declareVariables(m)
	if err := b.emitObjective(m); err != nil {
		return nil, err
	}

	families := []func(*LPModel) error{
		b.c1CompletionProxy,
		b.c2DifficultyBound,
		b.c3OfferingAvailability,
		b.c4Prerequisites,
		b.c5Corequisites,
		b.c6L5Gate,
		b.c7L6GateFullL4,
		b.c8L6GateL5,
		b.c9TotalCredits,
		b.c10LELatestTerm,
		b.c11PerTermCreditCap,
		b.c12FreshmanPerTermCap,
		b.c13StudentPerTermCap,
		b.c14PerTermUserExpressions,
		b.c15ThesisWorkload,
		b.c16SummerConcurrencyCap,
		b.c17Linking,
		b.c18GroupFamilies,
		b.c19PassedCourses,
		b.c20DesiredCourses,
		b.c21SessionToggles,
		b.c22Concentration,
		b.c23CapstoneGates,
		b.c24SoftOrder,
		b.c25OUAnnualCap,
		b.c26HonorsRestriction,
	}
	for _, fn := range families {
		if err := fn(m); err != nil {
			return nil, err
		}
	}

	log.Debug().Int("vars", len(m.Vars)).Int("constraints", len(m.Constraints)).Msg("model assembled")
	return m, nil
}

func (b *Builder) precomputeOfferings() {
	b.offering = make(map[int][]int, b.Cat.Len())
	for _, c := range b.Cat.Courses() {
		b.offering[c.ID] = b.Cat.OfferingTerms(c, b.Cal, b.Par.Smax)
	}
}

func (b *Builder) declareVariables(m *LPModel) {
	for _, c := range b.Cat.Courses() {
		for s := 0; s <= b.Par.Smax; s++ {
			m.DeclareVar(VarX(c.ID, s), Binary)
		}
		m.DeclareVar(VarXi(c.ID), Binary)
	}
	m.DeclareVar(VarD, Continuous)
	m.DeclareVar(VarDL, Continuous)
}

// emitObjective implements spec §4.5:
//
//	minimize  DN*D + DL_c*DL + sum_i c_i * x_i
//	c_i = Cr*credits_i + delta_i(program) + Gr*estGrade_i[if >= threshold]
//
// delta_i is the -0.001 home-department tie-break bias (see DESIGN.md for
// why the sign is applied directly rather than via the spec's literal
// double-negative).
func (b *Builder) emitObjective(m *LPModel) error {
	obj := m.Objective
	obj.Add(b.In.Objective.DN, VarD)
	obj.Add(b.In.Objective.DL, VarDL)

	exceptionMembers := b.programExceptionMembers()

	for _, c := range b.Cat.Courses() {
		coeff := b.In.Objective.Cr * float64(c.Credits)

		if delta := b.programBias(c.Code, exceptionMembers); delta != 0 {
			coeff += delta
		}
		if c.EstimatedGrade >= b.Par.MinGradeThres {
			coeff += b.In.Objective.Gr * c.EstimatedGrade
		}

		obj.Add(coeff, VarXi(c.ID))
	}
	return nil
}

func (b *Builder) programExceptionMembers() map[string]bool {
	exempt := make(map[string]bool)
	for _, rule := range b.Par.ProgramCodes2Maximize {
		if rule.ExceptionGroup == "" {
			continue
		}
		if g, ok := b.Reg.ByName(rule.ExceptionGroup); ok {
			for _, code := range g.Members {
				exempt[code] = true
			}
		}
	}
	return exempt
}

func (b *Builder) programBias(code string, exceptionMembers map[string]bool) float64 {
	if exceptionMembers[code] {
		return 0
	}
	for _, rule := range b.Par.ProgramCodes2Maximize {
		if hasPrefix(code, rule.Code) {
			return -0.001
		}
	}
	return 0
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}

func (b *Builder) idOf(code string) (int, bool) {
	return b.Cat.IDOf(code)
}
