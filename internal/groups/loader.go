package groups

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// LoadGRP parses one .grp file. Two significant lines, then optional '#'
// comments:
//
//	groupName ; isConcentration(bool) ; countExpr ; creditsExpr
//	code;code;code;...
func LoadGRP(path string) (*CourseGroup, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening group file %s", path)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	var significant []string
	for scanner.Scan() && len(significant) < 2 {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		significant = append(significant, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "reading group file %s", path)
	}
	if len(significant) < 2 {
		return nil, errors.Errorf("%s: expected a header line and a members line", path)
	}

	return parseGroup(path, significant[0], significant[1])
}

func parseGroup(path, header, membersLine string) (*CourseGroup, error) {
	fields := strings.Split(header, ";")
	if len(fields) != 4 {
		return nil, errors.Errorf("%s: header expects 4 fields, got %d", path, len(fields))
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	name := fields[0]
	isConcentration, err := strconv.ParseBool(fields[1])
	if err != nil {
		return nil, errors.Wrapf(err, "%s: isConcentration field %q", path, fields[1])
	}
	countKind, count, err := parseCountExpr(fields[2])
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	creditKind, credits, err := parseCreditsExpr(fields[3])
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}

	var members []string
	for _, code := range strings.Split(membersLine, ";") {
		code = strings.TrimSpace(code)
		if code != "" {
			members = append(members, code)
		}
	}

	g := &CourseGroup{
		Name:                name,
		Kind:                ClassifyKind(name),
		IsConcentrationArea: isConcentration,
		Members:             members,
		CountKind:           countKind,
		Count:               count,
		CreditKind:          creditKind,
		Credits:             credits,
	}
	if creditKind == CreditDisciplines {
		g.MinNumDisciplines = credits
	}
	return g, nil
}
