// Package groups implements the GroupRegistry: typed course groups
// (distribution, concentration, capstone, soft-order, OU annual cap, honors,
// level bands) with the overloaded count/credit semantics of spec §4.3.
package groups

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// CountKind tags which of the overloaded meanings a group's count field
// carries, disambiguated by the textual form read from the .grp file.
type CountKind int

const (
	CountAtLeast      CountKind = iota // positive N: at least N courses
	CountExact                        // "=N": exactly N of the remaining-to-take
	CountPerSemester                  // "<=N": at most N share the same term
	CountAtMostNet                    // "-N": at most N net of passed
	CountNone                         // no count constraint given
)

// CreditKind tags the overloaded credits field.
type CreditKind int

const (
	CreditAtLeast     CreditKind = iota // positive: at least this many credits
	CreditDisciplines                  // negative: minimum distinct disciplines
	CreditNone
)

// Kind classifies a CourseGroup by its name prefix, per spec §4.3 design
// notes: a tagged variant standing in for the source's string-prefixed,
// signed-integer-sentinel encoding.
type Kind int

const (
	KindDistribution Kind = iota
	KindCapstone
	KindSoftOrder
	KindOUAnnual
	KindHonors
	KindLevelBand
)

// CourseGroup is one entry from a .grp file, classified into its Kind and
// with its count/credit fields resolved into the forms above.
type CourseGroup struct {
	Name                string
	Kind                Kind
	IsConcentrationArea bool
	Members             []string // order matters only for soft-order groups

	CountKind CountKind
	Count     int // magnitude; sign/operator captured by CountKind

	CreditKind CreditKind
	Credits    int // magnitude

	MinNumDisciplines int // positive, only meaningful when CreditKind == CreditDisciplines
}

// ClassifyKind derives a group's Kind from its name prefix.
func ClassifyKind(name string) Kind {
	switch {
	case strings.HasPrefix(name, "capstone"):
		return KindCapstone
	case strings.HasPrefix(name, "softorder"):
		return KindSoftOrder
	case strings.HasPrefix(name, "OU"):
		return KindOUAnnual
	case name == "HonorGroup":
		return KindHonors
	case name == "L4", name == "L5", name == "L6", strings.HasPrefix(name, "L5-"):
		return KindLevelBand
	default:
		return KindDistribution
	}
}

// parseCountExpr disambiguates the textual count form per spec §4.3:
//
//	"N"    -> CountAtLeast, N
//	"=N"   -> CountExact, N
//	"<=N"  -> CountPerSemester, N
//	"-N"   -> CountAtMostNet, N (magnitude)
func parseCountExpr(expr string) (CountKind, int, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return CountNone, 0, nil
	}
	switch {
	case strings.HasPrefix(expr, "<="):
		n, err := strconv.Atoi(strings.TrimSpace(expr[2:]))
		if err != nil {
			return 0, 0, errors.Wrapf(err, "count expr %q", expr)
		}
		return CountPerSemester, n, nil
	case strings.HasPrefix(expr, "="):
		n, err := strconv.Atoi(strings.TrimSpace(expr[1:]))
		if err != nil {
			return 0, 0, errors.Wrapf(err, "count expr %q", expr)
		}
		return CountExact, n, nil
	case strings.HasPrefix(expr, "-"):
		n, err := strconv.Atoi(strings.TrimSpace(expr[1:]))
		if err != nil {
			return 0, 0, errors.Wrapf(err, "count expr %q", expr)
		}
		return CountAtMostNet, n, nil
	default:
		n, err := strconv.Atoi(expr)
		if err != nil {
			return 0, 0, errors.Wrapf(err, "count expr %q", expr)
		}
		return CountAtLeast, n, nil
	}
}

// parseCreditsExpr: positive -> minimum credits; negative -> minimum
// distinct disciplines.
func parseCreditsExpr(expr string) (CreditKind, int, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return CreditNone, 0, nil
	}
	n, err := strconv.Atoi(expr)
	if err != nil {
		return 0, 0, errors.Wrapf(err, "credits expr %q", expr)
	}
	if n < 0 {
		return CreditDisciplines, -n, nil
	}
	return CreditAtLeast, n, nil
}

// Discipline returns the alphabetic-prefix discipline indicator of a course
// code, with any leading "/" stripped, per spec §4.3.
func Discipline(code string) string {
	code = strings.TrimPrefix(code, "/")
	i := 0
	for i < len(code) && code[i] >= 'A' && code[i] <= 'Z' {
		i++
	}
	if i == 0 {
		for i < len(code) && code[i] >= 'a' && code[i] <= 'z' {
			i++
		}
	}
	return code[:i]
}
