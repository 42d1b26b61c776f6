// Package calendar maps between term tokens (e.g. "FA2023") and the term
// numbers {0..Smax} every other component speaks in, and classifies term
// numbers by season. It is the single source of truth for the five-season
// yearly cycle: Spring, Summer-1, Summer-2, Summer-Term, Fall.
package calendar

import (
	"fmt"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// Season is one of the five recurring terms in the academic year cycle.
type Season int

const (
	Spring Season = iota
	Summer1
	Summer2
	SummerTerm
	Fall

	seasonsPerYear = 5
)

var seasonTokens = [seasonsPerYear]string{"SP", "S1", "S2", "ST", "FA"}

func (s Season) String() string {
	if s < Spring || s > Fall {
		return "UNKNOWN"
	}
	return seasonTokens[s]
}

func parseSeasonToken(tok string) (Season, bool) {
	for i, t := range seasonTokens {
		if t == tok {
			return Season(i), true
		}
	}
	return 0, false
}

// Calendar is the read-only, process-wide source of truth for term-number
// arithmetic. It is constructed once from the current date and never
// mutated afterward.
type Calendar struct {
	currentAbsolute int
}

// New builds a Calendar anchored at the given "current" date, classifying it
// into one of the five seasons per the fixed day/month ranges below:
//
//	Spring       Jan 1 – May 31
//	Summer-1     Jun 1 – Jun 30
//	Summer-2     Jul 1 – Jul 31
//	Summer-Term  Aug 1 – Aug 31
//	Fall         Sep 1 – Dec 31
func New(now time.Time) *Calendar {
	season := seasonFromDate(now)
	return &Calendar{currentAbsolute: now.Year()*seasonsPerYear + int(season)}
}

func seasonFromDate(t time.Time) Season {
	switch t.Month() {
	case time.January, time.February, time.March, time.April, time.May:
		return Spring
	case time.June:
		return Summer1
	case time.July:
		return Summer2
	case time.August:
		return SummerTerm
	default:
		return Fall
	}
}

// parseToken parses a 2-letter season + 4-digit year token, e.g. "FA2023".
func parseToken(token string) (season Season, year int, err error) {
	if len(token) < 3 {
		return 0, 0, errors.Errorf("malformed term token %q: too short", token)
	}
	season, ok := parseSeasonToken(token[:2])
	if !ok {
		return 0, 0, errors.Errorf("malformed term token %q: unknown season %q", token, token[:2])
	}
	year, err = strconv.Atoi(token[2:])
	if err != nil {
		return 0, 0, errors.Wrapf(err, "malformed term token %q: bad year", token)
	}
	return season, year, nil
}

// TermNo returns 0 if token lies at or before the current term (already
// passed), else the 1-based offset from the current term in the five-season
// cycle.
func (c *Calendar) TermNo(token string) (int, error) {
	season, year, err := parseToken(token)
	if err != nil {
		return 0, err
	}
	absolute := year*seasonsPerYear + int(season)
	offset := absolute - c.currentAbsolute
	if offset <= 0 {
		return 0, nil
	}
	return offset, nil
}

// TermName is the inverse of TermNo for n in {1..Smax}.
func (c *Calendar) TermName(n int) string {
	absolute := c.currentAbsolute + n
	year := absolute / seasonsPerYear
	season := Season(((absolute % seasonsPerYear) + seasonsPerYear) % seasonsPerYear)
	return fmt.Sprintf("%s%d", season, year)
}

func (c *Calendar) seasonOf(n int) Season {
	absolute := c.currentAbsolute + n
	return Season(((absolute % seasonsPerYear) + seasonsPerYear) % seasonsPerYear)
}

// IsSummerTerm reports whether n is the Summer-Term (ST) slot.
func (c *Calendar) IsSummerTerm(n int) bool {
	return c.seasonOf(n) == SummerTerm
}

// IsSummer1Term reports whether n is the Summer-1 (S1) slot, the first of
// the three-slot summer sequence.
func (c *Calendar) IsSummer1Term(n int) bool {
	return c.seasonOf(n) == Summer1
}

// HappensDuringSummer reports whether n is S1, S2, or ST.
func (c *Calendar) HappensDuringSummer(n int) bool {
	switch c.seasonOf(n) {
	case Summer1, Summer2, SummerTerm:
		return true
	default:
		return false
	}
}

// IsFallTerm reports whether n is a Fall slot.
func (c *Calendar) IsFallTerm(n int) bool {
	return c.seasonOf(n) == Fall
}

// NextFallTerm returns the smallest m >= n that is a Fall slot.
func (c *Calendar) NextFallTerm(n int) int {
	m := n
	for !c.IsFallTerm(m) {
		m++
	}
	return m
}

// GateSlots returns the minimum prerequisite distance k_s for slot s: 3 for a
// summer term (ST), 1 otherwise. Prerequisites completed through S1/S2/ST
// must be fully finished — not merely started — before an ST-slot course, so
// the gate is wider for ST targets.
func (c *Calendar) GateSlots(s int) int {
	if c.IsSummerTerm(s) {
		return 3
	}
	return 1
}
