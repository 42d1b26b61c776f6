// Package params holds the program-wide scalar configuration read from
// params.props: credit minimums, per-term caps, the planning horizon, the
// thesis course, and the tuning knobs that don't vary per student.
package params

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// Params is populated once at process start and treated as read-only
// thereafter, mirroring Catalog and Registry.
type Params struct {
	Tc                        int     `validate:"required,gt=0"`
	Cmax                      int     `validate:"required,gt=0"`
	CmaxHonor                 int     `validate:"required,gt=0"`
	SummerCmax                int     `validate:"required,gt=0"`
	SummerCmaxHonor           int     `validate:"required,gt=0"`
	Smax                      int     `validate:"required,gt=0"`
	MaxLETerm                 int     `validate:"required,gt=0"`
	SummerConcNMax            int     `validate:"required,gt=0"`
	ThesisCourseCode          string  `validate:"required"`
	FreshmanMaxNumCoursesPerTerm int
	MinNumCourses4Sophomore   int
	ProgramCodes2Maximize     []ProgramCodeRule
	ProgramCode               string
	CourseCSVFileHeader       bool
	MinGradeThres             float64
	AllowEdit                 bool
}

// ProgramCodeRule is one "CODE\EXCEPTION_GROUP" entry of
// ProgramCodes2Maximize: courses whose code starts with Code earn the
// tie-breaking objective bonus unless they're also a member of
// ExceptionGroup (empty if none was given).
type ProgramCodeRule struct {
	Code           string
	ExceptionGroup string
}

var validate = validator.New()

// defaults applied before parsing overrides them.
func defaults() Params {
	return Params{
		FreshmanMaxNumCoursesPerTerm: 0,
		MinNumCourses4Sophomore:      0,
		MinGradeThres:                3.0,
		AllowEdit:                    false,
	}
}

// Load parses a params.props key=value file (one per non-comment line) and
// validates the required keys are present and well-formed.
func Load(path string) (*Params, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening params file %s", path)
	}
	defer f.Close()

	p := defaults()
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, errors.Errorf("%s:%d: expected key=value", path, lineNo)
		}
		if err := applyKey(&p, strings.TrimSpace(key), strings.TrimSpace(value)); err != nil {
			return nil, errors.Wrapf(err, "%s:%d", path, lineNo)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "reading params file %s", path)
	}

	if err := validate.Struct(p); err != nil {
		return nil, errors.Wrap(err, "params validation failed")
	}
	return &p, nil
}

func applyKey(p *Params, key, value string) error {
	var err error
	switch key {
	case "Tc":
		p.Tc, err = strconv.Atoi(value)
	case "Cmax":
		p.Cmax, err = strconv.Atoi(value)
	case "CmaxHonor":
		p.CmaxHonor, err = strconv.Atoi(value)
	case "SummerCmax":
		p.SummerCmax, err = strconv.Atoi(value)
	case "SummerCmaxHonor":
		p.SummerCmaxHonor, err = strconv.Atoi(value)
	case "Smax":
		p.Smax, err = strconv.Atoi(value)
	case "MaxLETerm":
		p.MaxLETerm, err = strconv.Atoi(value)
	case "SummerConcNMax":
		p.SummerConcNMax, err = strconv.Atoi(value)
	case "ThesisCourseCode":
		p.ThesisCourseCode = value
	case "FreshmanMaxNumCoursesPerTerm":
		p.FreshmanMaxNumCoursesPerTerm, err = strconv.Atoi(value)
	case "MinNumCourses4Sophomore":
		p.MinNumCourses4Sophomore, err = strconv.Atoi(value)
	case "ProgramCodes2Maximize":
		p.ProgramCodes2Maximize = parseProgramCodes(value)
	case "ProgramCode":
		p.ProgramCode = value
	case "CourseCSVFileHeader":
		p.CourseCSVFileHeader, err = strconv.ParseBool(value)
	case "MinGradeThres":
		p.MinGradeThres, err = strconv.ParseFloat(value, 64)
	case "AllowEdit":
		p.AllowEdit, err = strconv.ParseBool(value)
	default:
		// unrecognized keys are ignored, per spec's "all optional unless marked"
	}
	return err
}

func parseProgramCodes(value string) []ProgramCodeRule {
	var rules []ProgramCodeRule
	for _, item := range strings.Split(value, ";") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		code, exception, _ := strings.Cut(item, "\\")
		rules = append(rules, ProgramCodeRule{Code: code, ExceptionGroup: exception})
	}
	return rules
}

// CmaxFor returns the per-term credit cap for an honors/non-honors student.
func (p *Params) CmaxFor(honors bool) int {
	if honors {
		return p.CmaxHonor
	}
	return p.Cmax
}

// SummerCmaxFor returns the summer-window credit cap for an honors/non-honors student.
func (p *Params) SummerCmaxFor(honors bool) int {
	if honors {
		return p.SummerCmaxHonor
	}
	return p.SummerCmax
}
