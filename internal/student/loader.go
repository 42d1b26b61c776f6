package student

import (
	"bufio"
	"encoding/json"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// LoadPassed parses passedcourses.txt: semicolon-separated codes.
func LoadPassed(path string) ([]string, error) {
	line, err := readFirstSignificantLine(path)
	if err != nil {
		return nil, err
	}
	return splitCodes(line), nil
}

// LoadDesired parses desiredcourses.txt: one desired course per non-comment
// line, semicolon-separated fields "code;allowedTerms". allowedTerms is a
// space-separated expression ("allterms", "allotherterms", explicit term
// tokens) or empty to mean NOT-TO-TAKE.
func LoadDesired(path string) ([]Desired, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()

	var out []Desired
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.SplitN(line, ";", 2)
		code := strings.TrimSpace(fields[0])
		if code == "" {
			return nil, errors.Errorf("%s:%d: empty desired course code", path, lineNo)
		}
		d := Desired{Code: code}
		if len(fields) == 2 {
			d.AllowedTerms = strings.TrimSpace(fields[1])
		}
		out = append(out, d)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return out, nil
}

func readFirstSignificantLine(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		return line, nil
	}
	return "", scanner.Err()
}

func splitCodes(line string) []string {
	var codes []string
	for _, code := range strings.Split(line, ";") {
		code = strings.TrimSpace(code)
		if code != "" {
			codes = append(codes, code)
		}
	}
	return codes
}

// Preferences carries the per-run knobs that spec §3 assigns to StudentInput
// but that have no dedicated file format in spec §6 (honors flag, session
// toggles, per-term caps, concentration choice, objective weights). They are
// read from a small JSON side file, in the teacher's encoding/json idiom.
type Preferences struct {
	Honors             bool             `json:"honors"`
	S1Off              bool             `json:"s1_off"`
	S2Off              bool             `json:"s2_off"`
	STOff              bool             `json:"st_off"`
	MaxNumCrsPerSem    int              `json:"max_num_crs_per_sem"`
	MaxNumCrsDurThesis int              `json:"max_num_crs_dur_thesis"`
	Concentration      string           `json:"concentration"`
	NumOUThisYear      int              `json:"num_ou_this_year"`
	PerTermCounts      map[string]string `json:"per_term_counts"`
	Objective          ObjectiveWeights `json:"objective"`
}

// LoadPreferences reads the JSON preferences side file. Absence is not an
// error: an empty Preferences is returned with MaxNumCrsDurThesis defaulted
// to 1 per spec's ">= 1" invariant.
func LoadPreferences(path string) (*Preferences, error) {
	prefs := &Preferences{MaxNumCrsDurThesis: 1}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return prefs, nil
		}
		return nil, errors.Wrapf(err, "opening preferences file %s", path)
	}
	if err := json.Unmarshal(data, prefs); err != nil {
		return nil, errors.Wrapf(err, "parsing preferences file %s", path)
	}
	if prefs.MaxNumCrsDurThesis < 1 {
		prefs.MaxNumCrsDurThesis = 1
	}
	return prefs, nil
}

// Load assembles a full Input from the three documented/supplemented
// sources and applies the derived normalization rule.
func Load(passedPath, desiredPath, prefsPath string) (*Input, error) {
	passed, err := LoadPassed(passedPath)
	if err != nil {
		return nil, err
	}
	desired, err := LoadDesired(desiredPath)
	if err != nil {
		return nil, err
	}
	prefs, err := LoadPreferences(prefsPath)
	if err != nil {
		return nil, err
	}

	perTerm := make(map[int]string, len(prefs.PerTermCounts))
	for k, v := range prefs.PerTermCounts {
		term, err := parseTermKey(k)
		if err != nil {
			return nil, err
		}
		perTerm[term] = v
	}

	in := &Input{
		Passed:             passed,
		Desired:            desired,
		PerTermCounts:      perTerm,
		Honors:             prefs.Honors,
		S1Off:              prefs.S1Off,
		S2Off:              prefs.S2Off,
		STOff:              prefs.STOff,
		MaxNumCrsPerSem:    prefs.MaxNumCrsPerSem,
		MaxNumCrsDurThesis: prefs.MaxNumCrsDurThesis,
		Concentration:      prefs.Concentration,
		NumOUThisYear:      prefs.NumOUThisYear,
		Objective:          prefs.Objective,
	}
	in.Normalize()
	return in, nil
}

func parseTermKey(k string) (int, error) {
	term, err := strconv.Atoi(strings.TrimSpace(k))
	if err != nil {
		return 0, errors.Wrapf(err, "per_term_counts key %q", k)
	}
	return term, nil
}
