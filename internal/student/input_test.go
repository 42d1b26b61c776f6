package student

import "testing"

import "github.com/stretchr/testify/assert"

func TestNormalizeRemovesPassedFromDesired(t *testing.T) {
	in := &Input{
		Passed: []string{"CS101"},
		Desired: []Desired{
			{Code: "CS101"},
			{Code: "CS201"},
		},
	}
	in.Normalize()

	require := assert.New(t)
	require.Len(in.Desired, 1)
	require.Equal("CS201", in.Desired[0].Code)
}

func TestIsPassed(t *testing.T) {
	in := &Input{Passed: []string{"CS101", "MATH101"}}
	assert.True(t, in.IsPassed("CS101"))
	assert.False(t, in.IsPassed("CS999"))
}

func TestNormalizeEmptyDesired(t *testing.T) {
	in := &Input{Passed: []string{"CS101"}}
	in.Normalize()
	assert.Empty(t, in.Desired)
}
