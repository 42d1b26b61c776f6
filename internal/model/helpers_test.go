package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/udp-planner/course-scheduler/internal/calendar"
	"github.com/udp-planner/course-scheduler/internal/groups"
	"github.com/udp-planner/course-scheduler/internal/params"
)

func TestSummerWindowsStartingFromSpring(t *testing.T) {
	b := &Builder{
		Cal: calendar.New(time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)),
		Par: &params.Params{Smax: 6},
	}
	windows := b.summerWindows()
	// terms: 1=S1 2=S2 3=ST 4=FA 5=SP 6=S1
	assert := assert.New(t)
	assert.Len(windows, 4)
	assert.Equal(window{1, 2, 3}, windows[0])
	assert.Equal(window{4}, windows[1])
	assert.Equal(window{5}, windows[2])
	assert.Equal(window{6}, windows[3])
}

func TestSummerWindowsStartingMidSummer(t *testing.T) {
	// current date is in Summer1, so term 1 = S2, term 2 = ST, term 3 = FA.
	b := &Builder{
		Cal: calendar.New(time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)),
		Par: &params.Params{Smax: 4},
	}
	windows := b.summerWindows()
	assert := assert.New(t)
	assert.Equal(window{1, 2}, windows[0]) // S2, ST only -- must NOT swallow FA
	assert.Equal(window{3}, windows[1])    // FA
	assert.Equal(window{4}, windows[2])    // SP
}

func TestLevelSetUnionsDashedSubBands(t *testing.T) {
	b := &Builder{
		Reg: groups.New([]*groups.CourseGroup{
			{Name: "L5", Members: []string{"CS301", "CS302"}},
			{Name: "L5-AI", Members: []string{"AI310", "CS301"}}, // CS301 duplicated
		}),
	}
	got := b.levelSet("L5")
	assert.ElementsMatch(t, []string{"CS301", "CS302", "AI310"}, got)
}

func TestCountPassed(t *testing.T) {
	passed := map[string]bool{"CS101": true, "CS102": true}
	n := countPassed([]string{"CS101", "CS102", "CS103"}, func(c string) bool { return passed[c] })
	assert.Equal(t, 2, n)
}

func TestMaxIntMinInt(t *testing.T) {
	assert.Equal(t, 5, maxInt(5, 3))
	assert.Equal(t, 3, maxInt(1, 3))
	assert.Equal(t, 1, minInt(1, 3))
	assert.Equal(t, 3, minInt(5, 3))
}
