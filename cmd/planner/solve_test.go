package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/udp-planner/course-scheduler/internal/catalog"
)

func TestCourseCodesFor(t *testing.T) {
	cat := catalog.New([]*catalog.Course{
		{Code: "CS101", Credits: 3},
		{Code: "CS201", Credits: 3},
	})
	loaded := &loadedInputs{cat: cat}

	cs101, _ := cat.ByCode("CS101")
	cs201, _ := cat.ByCode("CS201")

	codes := courseCodesFor(loaded, []int{cs101.ID, cs201.ID})
	assert.Equal(t, []string{"CS101", "CS201"}, codes)
}

func TestCourseCodesForSkipsUnknownID(t *testing.T) {
	cat := catalog.New([]*catalog.Course{{Code: "CS101", Credits: 3}})
	loaded := &loadedInputs{cat: cat}

	codes := courseCodesFor(loaded, []int{0, 99})
	assert.Equal(t, []string{"CS101"}, codes)
}
