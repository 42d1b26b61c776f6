package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeasonFromDate(t *testing.T) {
	cases := []struct {
		month time.Month
		want  Season
	}{
		{time.January, Spring},
		{time.May, Spring},
		{time.June, Summer1},
		{time.July, Summer2},
		{time.August, SummerTerm},
		{time.September, Fall},
		{time.December, Fall},
	}
	for _, c := range cases {
		got := seasonFromDate(time.Date(2024, c.month, 15, 0, 0, 0, 0, time.UTC))
		assert.Equal(t, c.want, got, "month %s", c.month)
	}
}

func TestTermNoRoundTrip(t *testing.T) {
	cal := New(time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC))

	for n := 1; n <= 10; n++ {
		name := cal.TermName(n)
		got, err := cal.TermNo(name)
		require.NoError(t, err)
		assert.Equal(t, n, got, "termName(%d)=%s", n, name)
	}
}

func TestTermNoPastIsZero(t *testing.T) {
	cal := New(time.Date(2024, time.September, 1, 0, 0, 0, 0, time.UTC))
	n, err := cal.TermNo("SP2024")
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestIsSummerTerm(t *testing.T) {
	cal := New(time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC))
	// current = SP2024, so SP=0, S1=1, S2=2, ST=3, FA=4
	assert.False(t, cal.IsSummerTerm(1))
	assert.False(t, cal.IsSummerTerm(2))
	assert.True(t, cal.IsSummerTerm(3))
	assert.False(t, cal.IsSummerTerm(4))
}

func TestHappensDuringSummer(t *testing.T) {
	cal := New(time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC))
	assert.True(t, cal.HappensDuringSummer(1))
	assert.True(t, cal.HappensDuringSummer(2))
	assert.True(t, cal.HappensDuringSummer(3))
	assert.False(t, cal.HappensDuringSummer(4))
}

func TestIsFallTermAndNextFallTerm(t *testing.T) {
	cal := New(time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC))
	assert.True(t, cal.IsFallTerm(4))
	assert.False(t, cal.IsFallTerm(1))
	assert.Equal(t, 4, cal.NextFallTerm(1))
	assert.Equal(t, 4, cal.NextFallTerm(4))
}

func TestGateSlots(t *testing.T) {
	cal := New(time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, 1, cal.GateSlots(1))
	assert.Equal(t, 3, cal.GateSlots(3)) // ST
	assert.Equal(t, 1, cal.GateSlots(4))
}

func TestParseTokenMalformed(t *testing.T) {
	_, _, err := parseToken("X")
	assert.Error(t, err)
	_, _, err = parseToken("ZZ2024")
	assert.Error(t, err)
	_, _, err = parseToken("FAxxxx")
	assert.Error(t, err)
}
