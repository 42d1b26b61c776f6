package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udp-planner/course-scheduler/internal/calendar"
	"github.com/udp-planner/course-scheduler/internal/catalog"
	"github.com/udp-planner/course-scheduler/internal/groups"
	"github.com/udp-planner/course-scheduler/internal/params"
	"github.com/udp-planner/course-scheduler/internal/student"
)

// requiredLevelBands returns the empty L4/L5/L6 bands ValidateIntegrity
// requires to exist, regardless of what a given test actually exercises.
func requiredLevelBands() []*groups.CourseGroup {
	return []*groups.CourseGroup{
		{Name: "L4", Kind: groups.KindLevelBand},
		{Name: "L5", Kind: groups.KindLevelBand},
		{Name: "L6", Kind: groups.KindLevelBand},
	}
}

func basicParams() *params.Params {
	return &params.Params{
		Tc:               3,
		Cmax:             18,
		CmaxHonor:        21,
		SummerCmax:       9,
		SummerCmaxHonor:  12,
		Smax:             6,
		MaxLETerm:        6,
		SummerConcNMax:   2,
		ThesisCourseCode: "CS499",
		MinGradeThres:    3.0,
	}
}

func testCalendar() *calendar.Calendar {
	return calendar.New(time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC))
}

func findConstraint(m *LPModel, name string) (Constraint, bool) {
	for _, c := range m.Constraints {
		if c.Name == name {
			return c, true
		}
	}
	return Constraint{}, false
}

func countConstraintsWithPrefix(m *LPModel, prefix string) int {
	n := 0
	for _, c := range m.Constraints {
		if len(c.Name) >= len(prefix) && c.Name[:len(prefix)] == prefix {
			n++
		}
	}
	return n
}

// Scenario 1: a trivial plan with a single course and no groups beyond the
// mandatory level bands builds without error.
func TestBuildTrivialPlan(t *testing.T) {
	cat := catalog.New([]*catalog.Course{
		{Code: "CS101", Credits: 3},
	})
	reg := groups.New(requiredLevelBands())
	par := basicParams()
	par.Tc = 3
	in := &student.Input{MaxNumCrsDurThesis: 1}

	b := NewBuilder(testCalendar(), cat, reg, par, in)
	m, err := b.Build()
	require.NoError(t, err)
	assert.NotEmpty(t, m.Vars)
	assert.NotEmpty(t, m.Constraints)

	_, ok := findConstraint(m, "total_credits")
	assert.True(t, ok)
}

// Scenario 2: a co-requisite may be satisfied in the same term as the
// course that requires it, unlike a strict prerequisite.
func TestBuildCorequisiteSameTerm(t *testing.T) {
	cat := catalog.New([]*catalog.Course{
		{Code: "CS201", Credits: 3, Corequisites: []string{"CS201L"}},
		{Code: "CS201L", Credits: 1},
	})
	reg := groups.New(requiredLevelBands())
	par := basicParams()
	in := &student.Input{MaxNumCrsDurThesis: 1}

	b := NewBuilder(testCalendar(), cat, reg, par, in)
	m, err := b.Build()
	require.NoError(t, err)

	cs201, _ := cat.ByCode("CS201")
	cs201l, _ := cat.ByCode("CS201L")

	c, ok := findConstraint(m, "coreq_"+itoa(cs201.ID)+"_1")
	require.True(t, ok)

	foundSameTerm := false
	for _, term := range c.Expr.Terms() {
		if term.Var == VarX(cs201l.ID, 1) {
			foundSameTerm = true
		}
	}
	assert.True(t, foundSameTerm, "corequisite window must include the same slot s")
}

// Scenario 3: an "exactly one of" style distribution group (CountExact)
// resolves the remaining count net of what the student already passed.
func TestBuildGroupExactCountNetOfPassed(t *testing.T) {
	cat := catalog.New([]*catalog.Course{
		{Code: "ART101", Credits: 3},
		{Code: "ART102", Credits: 3},
		{Code: "ART103", Credits: 3},
	})
	gs := append(requiredLevelBands(), &groups.CourseGroup{
		Name:       "FineArtsChoice",
		Kind:       groups.KindDistribution,
		Members:    []string{"ART101", "ART102", "ART103"},
		CountKind:  groups.CountExact,
		Count:      1,
	})
	reg := groups.New(gs)
	par := basicParams()
	in := &student.Input{
		Passed:             []string{"ART101"},
		MaxNumCrsDurThesis: 1,
	}
	in.Normalize()

	b := NewBuilder(testCalendar(), cat, reg, par, in)
	m, err := b.Build()
	require.NoError(t, err)

	c, ok := findConstraint(m, "group_exact_FineArtsChoice")
	require.True(t, ok)
	assert.Equal(t, EQ, c.Op)
	assert.Equal(t, 0.0, c.RHS) // 1 required - 1 already passed = 0 remaining
}

// Scenario 4: a per-semester group cap (CountPerSemester) is evaluated once
// per collapsed summer window rather than once per summer slot.
func TestBuildGroupPerSemesterCapCollapsesSummerWindow(t *testing.T) {
	cat := catalog.New([]*catalog.Course{
		{Code: "PE101", Credits: 1},
	})
	gs := append(requiredLevelBands(), &groups.CourseGroup{
		Name:      "PECap",
		Kind:      groups.KindDistribution,
		Members:   []string{"PE101"},
		CountKind: groups.CountPerSemester,
		Count:     1,
	})
	reg := groups.New(gs)
	par := basicParams()
	par.Smax = 6 // terms 1..6: S1 S2 ST FA SP S1 given current=SP2024 => 1=S1,2=S2,3=ST,4=FA,5=SP,6=S1
	in := &student.Input{MaxNumCrsDurThesis: 1}

	b := NewBuilder(testCalendar(), cat, reg, par, in)
	m, err := b.Build()
	require.NoError(t, err)

	// terms 1,2,3 collapse into one summer window; 4 (FA) and 5 (SP) are each
	// their own singleton window; 6 (S1 again) starts a fresh summer window.
	got := countConstraintsWithPrefix(m, "group_persem_PECap_")
	assert.Equal(t, 4, got) // windows starting at 1, 4, 5, 6
}

// Scenario 5: soft ordering must let a course passed in term 0 (historical)
// satisfy the precedence, not just one scheduled in a future term.
func TestBuildSoftOrderIncludesTermZero(t *testing.T) {
	cat := catalog.New([]*catalog.Course{
		{Code: "CS101", Credits: 3},
		{Code: "CS102", Credits: 3},
	})
	gs := append(requiredLevelBands(), &groups.CourseGroup{
		Name:    "softorderIntro",
		Kind:    groups.KindSoftOrder,
		Members: []string{"CS101", "CS102"},
		Count:   2,
	})
	reg := groups.New(gs)
	par := basicParams()
	in := &student.Input{MaxNumCrsDurThesis: 1}

	b := NewBuilder(testCalendar(), cat, reg, par, in)
	m, err := b.Build()
	require.NoError(t, err)

	cs101, _ := cat.ByCode("CS101")

	c, ok := findConstraint(m, "softorder_softorderIntro_1")
	require.True(t, ok)

	foundTermZero := false
	for _, term := range c.Expr.Terms() {
		if term.Var == VarX(cs101.ID, 0) {
			foundTermZero = true
		}
	}
	assert.True(t, foundTermZero, "soft order lookback at s=1 must reach back to term 0")
}

// Scenario 6: a capstone course's credit and concentration gates only
// apply once the slot reaches the prerequisite gate width for that slot.
func TestBuildCapstoneGateRespectsGateSlots(t *testing.T) {
	cat := catalog.New([]*catalog.Course{
		{Code: "CS490", Credits: 3},
		{Code: "AI410", Credits: 3},
	})
	gs := append(requiredLevelBands(),
		&groups.CourseGroup{
			Name:                "AI-Core",
			Kind:                groups.KindDistribution,
			IsConcentrationArea: true,
			Members:             []string{"AI410"},
		},
		&groups.CourseGroup{
			Name:    "capstoneSeminar",
			Kind:    groups.KindCapstone,
			Members: []string{"CS490"},
			Count:   1,
			Credits: 60,
		},
	)
	reg := groups.New(gs)
	par := basicParams()
	par.Smax = 6
	in := &student.Input{Concentration: "AI", MaxNumCrsDurThesis: 1}

	b := NewBuilder(testCalendar(), cat, reg, par, in)
	m, err := b.Build()
	require.NoError(t, err)

	cs490, _ := cat.ByCode("CS490")

	// Term 3 is ST (GateSlots==3): should be gated.
	_, gatedAtST := findConstraint(m, "capstone_credit_"+itoa(cs490.ID)+"_3")
	assert.True(t, gatedAtST)

	// Term 1 (S1): k_s=1 so 1>=1 still gated, also present.
	_, gatedAtS1 := findConstraint(m, "capstone_credit_"+itoa(cs490.ID)+"_1")
	assert.True(t, gatedAtS1)
}

func TestBuildFailsOnBadCatalogIntegrity(t *testing.T) {
	cat := catalog.New([]*catalog.Course{
		{Code: "CS201", Credits: 3, Prerequisites: catalog.CNF{{"CS999"}}},
	})
	reg := groups.New(requiredLevelBands())
	par := basicParams()
	in := &student.Input{MaxNumCrsDurThesis: 1}

	b := NewBuilder(testCalendar(), cat, reg, par, in)
	_, err := b.Build()
	assert.Error(t, err)
}

func TestBuildFailsOnMissingLevelBand(t *testing.T) {
	cat := catalog.New([]*catalog.Course{{Code: "CS101", Credits: 3}})
	reg := groups.New(nil) // no L4/L5/L6
	par := basicParams()
	in := &student.Input{MaxNumCrsDurThesis: 1}

	b := NewBuilder(testCalendar(), cat, reg, par, in)
	_, err := b.Build()
	assert.Error(t, err)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
