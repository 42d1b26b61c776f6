package groups

import "github.com/pkg/errors"

// Registry is the read-only, process-wide collection of course groups.
type Registry struct {
	groups []*CourseGroup
	byName map[string]*CourseGroup
}

// New builds a Registry from parsed groups.
func New(gs []*CourseGroup) *Registry {
	r := &Registry{groups: gs, byName: make(map[string]*CourseGroup, len(gs))}
	for _, g := range gs {
		r.byName[g.Name] = g
	}
	return r
}

// All returns every group in the registry.
func (r *Registry) All() []*CourseGroup { return r.groups }

// ByName looks up a group by its unique name.
func (r *Registry) ByName(name string) (*CourseGroup, bool) {
	g, ok := r.byName[name]
	return g, ok
}

// OfKind returns every group of the given Kind, in registration order.
func (r *Registry) OfKind(k Kind) []*CourseGroup {
	var out []*CourseGroup
	for _, g := range r.groups {
		if g.Kind == k {
			out = append(out, g)
		}
	}
	return out
}

// Distribution returns every plain distribution group: neither a capstone,
// soft-order, OU-annual, honors, nor level-band group. Concentration-flagged
// groups are included. Per spec §4.6 family 18, the ones not flagged as
// concentration areas are folded into the general group-family constraints
// (concentration/capstone/soft-order/OU are handled by their own families).
func (r *Registry) Distribution() []*CourseGroup {
	return r.OfKind(KindDistribution)
}

// ConcentrationGroups returns every group, of any Kind, flagged as part of a
// concentration area whose name starts with the given chosen-concentration
// string, per spec §4.6 family 22.
func (r *Registry) ConcentrationGroups(concentration string) []*CourseGroup {
	var out []*CourseGroup
	for _, g := range r.groups {
		if g.IsConcentrationArea && len(concentration) > 0 && hasPrefix(g.Name, concentration) {
			out = append(out, g)
		}
	}
	return out
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}

// Honors returns the single HonorGroup, if present.
func (r *Registry) Honors() (*CourseGroup, bool) {
	g, ok := r.byName["HonorGroup"]
	return g, ok
}

// LevelBand returns the L4/L5/L6 band by exact name.
func (r *Registry) LevelBand(name string) (*CourseGroup, bool) {
	g, ok := r.byName[name]
	if !ok || g.Kind != KindLevelBand {
		return nil, false
	}
	return g, true
}

// ValidateIntegrity checks the structural invariants of spec §3: a capstone
// group has exactly one member, a soft-order group has exactly two, and
// L4/L5/L6 must all exist. Referential integrity against the catalog is the
// caller's job (it has both the catalog and this registry).
func (r *Registry) ValidateIntegrity() error {
	var problems []string

	for _, g := range r.groups {
		switch g.Kind {
		case KindCapstone:
			if len(g.Members) != 1 {
				problems = append(problems, g.Name+": capstone group must have exactly one member")
			}
		case KindSoftOrder:
			if len(g.Members) != 2 {
				problems = append(problems, g.Name+": soft-order group must have exactly two members")
			}
		}
	}

	for _, required := range []string{"L4", "L5", "L6"} {
		if _, ok := r.byName[required]; !ok {
			problems = append(problems, required+": required level band is missing")
		}
	}

	if len(problems) > 0 {
		msg := problems[0]
		for _, p := range problems[1:] {
			msg += "; " + p
		}
		return errors.Errorf("group registry integrity: %s", msg)
	}
	return nil
}

// ValidateReferences checks that every member code of every group exists in
// the given set of known catalog codes.
func (r *Registry) ValidateReferences(knownCodes map[string]bool) error {
	var missing []string
	for _, g := range r.groups {
		for _, code := range g.Members {
			if !knownCodes[code] {
				missing = append(missing, g.Name+" -> "+code)
			}
		}
	}
	if len(missing) > 0 {
		msg := missing[0]
		for _, m := range missing[1:] {
			msg += "; " + m
		}
		return errors.Errorf("group registry integrity: unknown codes referenced: %s", msg)
	}
	return nil
}
