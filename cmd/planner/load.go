package main

import (
	"path/filepath"
	"time"

	"github.com/pkg/errors"

	"github.com/udp-planner/course-scheduler/internal/calendar"
	"github.com/udp-planner/course-scheduler/internal/catalog"
	"github.com/udp-planner/course-scheduler/internal/groups"
	"github.com/udp-planner/course-scheduler/internal/params"
	"github.com/udp-planner/course-scheduler/internal/student"
)

// loadedInputs is everything a solve or a validation pass needs to
// construct a Builder.
type loadedInputs struct {
	cal *calendar.Calendar
	cat *catalog.Catalog
	reg *groups.Registry
	par *params.Params
	in  *student.Input
}

func loadInputs(f *rootFlags) (*loadedInputs, error) {
	par, err := params.Load(f.paramsPath)
	if err != nil {
		return nil, errors.Wrap(err, "loading params")
	}

	courses, err := catalog.LoadCSV(f.catalogPath)
	if err != nil {
		return nil, errors.Wrap(err, "loading catalog")
	}
	cat := catalog.New(courses)
	if err := cat.LoadEstimatedGrades(f.gradesPath, par.MinGradeThres); err != nil {
		return nil, errors.Wrap(err, "loading estimated grades")
	}

	grpFiles, err := filepath.Glob(filepath.Join(f.groupsDir, "*.grp"))
	if err != nil {
		return nil, errors.Wrap(err, "globbing group files")
	}
	var groupList []*groups.CourseGroup
	for _, path := range grpFiles {
		g, err := groups.LoadGRP(path)
		if err != nil {
			return nil, errors.Wrapf(err, "loading group file %s", path)
		}
		groupList = append(groupList, g)
	}
	reg := groups.New(groupList)

	knownCodes := make(map[string]bool, cat.Len())
	for _, c := range cat.Courses() {
		knownCodes[c.Code] = true
	}
	if err := reg.ValidateReferences(knownCodes); err != nil {
		return nil, errors.Wrap(err, "validating group references")
	}

	in, err := student.Load(f.passedPath, f.desiredPath, f.prefsPath)
	if err != nil {
		return nil, errors.Wrap(err, "loading student input")
	}

	cal := calendar.New(time.Now())

	return &loadedInputs{cal: cal, cat: cat, reg: reg, par: par, in: in}, nil
}
