package catalog

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// LoadCSV parses a cls.csv file: one course per non-comment line ('#'
// prefixed lines are comments), semicolon-separated fields:
//
//	code ; title ; synonyms ; credits ; prereqsCNF ; coreqs ; offeringSpec ; [displayName] ; [difficultyLevel]
//
// prereqsCNF is comma-separated clauses, each clause '+'-separated codes; an
// empty field means no prerequisites. Synonyms and coreqs are space
// separated. displayName and difficultyLevel are optional trailing fields.
func LoadCSV(path string) ([]*Course, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening catalog file %s", path)
	}
	defer f.Close()

	var courses []*Course
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		course, err := parseCourseLine(line)
		if err != nil {
			return nil, errors.Wrapf(err, "%s:%d: malformed course row", path, lineNo)
		}
		courses = append(courses, course)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "reading catalog file %s", path)
	}
	return courses, nil
}

func parseCourseLine(line string) (*Course, error) {
	fields := strings.Split(line, ";")
	if len(fields) < 7 {
		return nil, errors.Errorf("expected at least 7 semicolon-separated fields, got %d", len(fields))
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	credits, err := strconv.Atoi(fields[3])
	if err != nil {
		return nil, errors.Wrapf(err, "credits field %q", fields[3])
	}

	course := &Course{
		Code:          fields[0],
		Title:         fields[1],
		Credits:       credits,
		Prerequisites: parseCNF(fields[4]),
		Corequisites:  fieldsOrNil(fields[5]),
		OfferingSpec:  fields[6],
	}

	if len(fields) > 7 && fields[7] != "" {
		course.DisplayName = fields[7]
	}
	if len(fields) > 8 && fields[8] != "" {
		diff, err := strconv.Atoi(fields[8])
		if err != nil {
			return nil, errors.Wrapf(err, "difficulty field %q", fields[8])
		}
		course.Difficulty = diff
	}

	return course, nil
}

func parseCNF(field string) CNF {
	if field == "" {
		return nil
	}
	var cnf CNF
	for _, clauseStr := range strings.Split(field, ",") {
		clauseStr = strings.TrimSpace(clauseStr)
		if clauseStr == "" {
			continue
		}
		var clause Clause
		for _, code := range strings.Split(clauseStr, "+") {
			code = strings.TrimSpace(code)
			if code != "" {
				clause = append(clause, code)
			}
		}
		if len(clause) > 0 {
			cnf = append(cnf, clause)
		}
	}
	return cnf
}

func fieldsOrNil(field string) []string {
	fs := strings.Fields(field)
	if len(fs) == 0 {
		return nil
	}
	return fs
}

// LoadEstimatedGrades parses "code,grade" lines from an estimated-grades
// file and applies them to the matching catalog entries. Grades strictly
// below minGradeThres are ignored (left at the default 0.0), per spec.
func (c *Catalog) LoadEstimatedGrades(path string, minGradeThres float64) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(err, "opening estimated grades file %s", path)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Split(line, ",")
		if len(parts) != 2 {
			return errors.Errorf("%s:%d: expected \"code,grade\"", path, lineNo)
		}
		code := strings.TrimSpace(parts[0])
		grade, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return errors.Wrapf(err, "%s:%d: bad grade value", path, lineNo)
		}
		if grade < minGradeThres {
			continue
		}
		if course, ok := c.byCode[code]; ok {
			course.EstimatedGrade = grade
		}
	}
	return scanner.Err()
}

// ValidateIntegrity checks that every code referenced by any prerequisite,
// co-requisite clause exists in the catalog. Group-level references are
// validated by the groups package, which holds the group data.
func (c *Catalog) ValidateIntegrity() error {
	var missing []string
	for _, course := range c.courses {
		for _, clause := range course.Prerequisites {
			for _, code := range clause {
				if _, ok := c.byCode[code]; !ok {
					missing = append(missing, course.Code+" prereq -> "+code)
				}
			}
		}
		for _, code := range course.Corequisites {
			if _, ok := c.byCode[code]; !ok {
				missing = append(missing, course.Code+" coreq -> "+code)
			}
		}
	}
	if len(missing) > 0 {
		return errors.Errorf("catalog integrity: unknown codes referenced: %s", strings.Join(missing, "; "))
	}
	return nil
}
