package groups

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyKind(t *testing.T) {
	cases := map[string]Kind{
		"capstoneSeminar": KindCapstone,
		"softorderAB":     KindSoftOrder,
		"OUAnnual":        KindOUAnnual,
		"HonorGroup":      KindHonors,
		"L4":              KindLevelBand,
		"L5":              KindLevelBand,
		"L5-Intro":        KindLevelBand,
		"L6":              KindLevelBand,
		"ScienceDist":      KindDistribution,
	}
	for name, want := range cases {
		assert.Equal(t, want, ClassifyKind(name), "name=%s", name)
	}
}

func TestParseCountExpr(t *testing.T) {
	kind, n, err := parseCountExpr("3")
	require.NoError(t, err)
	assert.Equal(t, CountAtLeast, kind)
	assert.Equal(t, 3, n)

	kind, n, err = parseCountExpr("=2")
	require.NoError(t, err)
	assert.Equal(t, CountExact, kind)
	assert.Equal(t, 2, n)

	kind, n, err = parseCountExpr("<=1")
	require.NoError(t, err)
	assert.Equal(t, CountPerSemester, kind)
	assert.Equal(t, 1, n)

	kind, n, err = parseCountExpr("-4")
	require.NoError(t, err)
	assert.Equal(t, CountAtMostNet, kind)
	assert.Equal(t, 4, n)

	kind, n, err = parseCountExpr("")
	require.NoError(t, err)
	assert.Equal(t, CountNone, kind)
	assert.Equal(t, 0, n)
}

func TestParseCountExprInvalid(t *testing.T) {
	_, _, err := parseCountExpr("abc")
	assert.Error(t, err)
}

func TestParseCreditsExpr(t *testing.T) {
	kind, n, err := parseCreditsExpr("12")
	require.NoError(t, err)
	assert.Equal(t, CreditAtLeast, kind)
	assert.Equal(t, 12, n)

	kind, n, err = parseCreditsExpr("-2")
	require.NoError(t, err)
	assert.Equal(t, CreditDisciplines, kind)
	assert.Equal(t, 2, n)

	kind, n, err = parseCreditsExpr("")
	require.NoError(t, err)
	assert.Equal(t, CreditNone, kind)
}

func TestDiscipline(t *testing.T) {
	assert.Equal(t, "CS", Discipline("CS101"))
	assert.Equal(t, "CS", Discipline("/CS101"))
	assert.Equal(t, "MATH", Discipline("MATH301"))
	assert.Equal(t, "", Discipline("101"))
}
