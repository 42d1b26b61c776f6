package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExprAddAccumulatesSameVariable(t *testing.T) {
	e := NewExpr().Add(1, "x_0_1").Add(2, "x_0_1").Add(0, "x_1_1")
	terms := e.Terms()
	require.Len(t, terms, 1)
	assert.Equal(t, "x_0_1", terms[0].Var)
	assert.Equal(t, 3.0, terms[0].Coeff)
}

func TestExprTermsSortedByVarName(t *testing.T) {
	e := NewExpr().Add(1, "x_1_0").Add(1, "x_0_0").Add(1, "D")
	terms := e.Terms()
	require.Len(t, terms, 3)
	assert.Equal(t, "D", terms[0].Var)
	assert.Equal(t, "x_0_0", terms[1].Var)
	assert.Equal(t, "x_1_0", terms[2].Var)
}

func TestDeclareVarIdempotent(t *testing.T) {
	m := NewLPModel()
	m.DeclareVar("x_0_0", Binary)
	m.DeclareVar("x_0_0", Binary)
	assert.Len(t, m.Vars, 1)
}

func TestWriteLPIncludesSections(t *testing.T) {
	m := NewLPModel()
	m.DeclareVar(VarX(0, 1), Binary)
	m.DeclareVar(VarD, Continuous)
	m.Objective.Add(1, VarX(0, 1))
	m.AddConstraint("c1", NewExpr().Add(1, VarX(0, 1)), LE, 1)

	var buf strings.Builder
	require.NoError(t, m.WriteLP(&buf))
	out := buf.String()

	assert.Contains(t, out, "Minimize")
	assert.Contains(t, out, "Subject To")
	assert.Contains(t, out, "c1:")
	assert.Contains(t, out, "Bounds")
	assert.Contains(t, out, "Binary")
	assert.Contains(t, out, "End")
}

func TestWriteLPDeterministicAcrossRuns(t *testing.T) {
	build := func() string {
		m := NewLPModel()
		m.DeclareVar(VarX(2, 1), Binary)
		m.DeclareVar(VarX(1, 1), Binary)
		m.DeclareVar(VarX(0, 1), Binary)
		m.Objective.Add(1, VarX(2, 1)).Add(2, VarX(0, 1)).Add(3, VarX(1, 1))
		m.AddConstraint("c1", NewExpr().Add(1, VarX(2, 1)).Add(1, VarX(0, 1)), LE, 1)
		var buf strings.Builder
		_ = m.WriteLP(&buf)
		return buf.String()
	}
	assert.Equal(t, build(), build())
}

func TestOpString(t *testing.T) {
	assert.Equal(t, "<=", LE.String())
	assert.Equal(t, ">=", GE.String())
	assert.Equal(t, "=", EQ.String())
}
