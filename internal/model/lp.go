// Package model implements the ModelBuilder: it emits the MILP decision
// variables, objective, and all constraint families of spec §4.4–§4.6 as an
// LP-format model for an external solver to consume.
package model

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// VarKind distinguishes the two variable domains the model uses.
type VarKind int

const (
	Binary VarKind = iota
	Continuous
)

// Var is one LP-model decision variable.
type Var struct {
	Name string
	Kind VarKind
}

// Op is a constraint's relational operator.
type Op int

const (
	LE Op = iota
	GE
	EQ
)

func (o Op) String() string {
	switch o {
	case LE:
		return "<="
	case GE:
		return ">="
	default:
		return "="
	}
}

// Expr is a linear expression accumulated by variable name, so repeated
// additions to the same variable combine into a single coefficient.
type Expr struct {
	coeffs map[string]float64
}

// NewExpr returns an empty linear expression.
func NewExpr() *Expr {
	return &Expr{coeffs: make(map[string]float64)}
}

// Add accumulates coeff*variable into the expression.
func (e *Expr) Add(coeff float64, variable string) *Expr {
	if coeff == 0 {
		return e
	}
	e.coeffs[variable] += coeff
	return e
}

// Terms returns the expression's (coefficient, variable) pairs sorted by
// variable name, for deterministic emission.
func (e *Expr) Terms() []Term {
	terms := make([]Term, 0, len(e.coeffs))
	for v, c := range e.coeffs {
		if c == 0 {
			continue
		}
		terms = append(terms, Term{Coeff: c, Var: v})
	}
	sort.Slice(terms, func(i, j int) bool { return terms[i].Var < terms[j].Var })
	return terms
}

// Term is one coefficient-variable pair of a linear expression.
type Term struct {
	Coeff float64
	Var   string
}

// Constraint is one named row of the model.
type Constraint struct {
	Name string
	Expr *Expr
	Op   Op
	RHS  float64
}

// LPModel is the full assembled MILP: variables, objective, and constraints,
// ready to be written in standard LP format.
type LPModel struct {
	Vars        []Var
	varSeen     map[string]bool
	Objective   *Expr
	Constraints []Constraint
}

// NewLPModel returns an empty model with a zero objective.
func NewLPModel() *LPModel {
	return &LPModel{varSeen: make(map[string]bool), Objective: NewExpr()}
}

// DeclareVar registers a variable with the model if not already present.
// Declaration is idempotent so constraint-building code can declare a
// variable the first time it references it.
func (m *LPModel) DeclareVar(name string, kind VarKind) {
	if m.varSeen[name] {
		return
	}
	m.varSeen[name] = true
	m.Vars = append(m.Vars, Var{Name: name, Kind: kind})
}

// AddConstraint appends a constraint row. Every variable referenced must
// already have been declared via DeclareVar.
func (m *LPModel) AddConstraint(name string, expr *Expr, op Op, rhs float64) {
	m.Constraints = append(m.Constraints, Constraint{Name: name, Expr: expr, Op: op, RHS: rhs})
}

// WriteLP renders the model in a standard CPLEX-style LP format: an
// objective section, a "Subject To" section, a "Bounds" section giving each
// continuous variable a lower bound of 0, and a "Binary" section.
func (m *LPModel) WriteLP(w io.Writer) error {
	var b strings.Builder

	b.WriteString("\\ course-schedule optimization model\n")
	b.WriteString("Minimize\n obj: ")
	writeExpr(&b, m.Objective.Terms())
	b.WriteString("\n")

	b.WriteString("Subject To\n")
	for _, c := range m.Constraints {
		b.WriteString(" ")
		b.WriteString(c.Name)
		b.WriteString(": ")
		writeExpr(&b, c.Expr.Terms())
		b.WriteString(" ")
		b.WriteString(c.Op.String())
		b.WriteString(" ")
		b.WriteString(strconv.FormatFloat(c.RHS, 'g', -1, 64))
		b.WriteString("\n")
	}

	var binaries, generals []string
	for _, v := range m.Vars {
		switch v.Kind {
		case Binary:
			binaries = append(binaries, v.Name)
		case Continuous:
			generals = append(generals, v.Name)
		}
	}

	if len(generals) > 0 {
		b.WriteString("Bounds\n")
		for _, v := range generals {
			fmt.Fprintf(&b, " %s >= 0\n", v)
		}
	}
	if len(binaries) > 0 {
		b.WriteString("Binary\n")
		for _, v := range binaries {
			b.WriteString(" ")
			b.WriteString(v)
			b.WriteString("\n")
		}
	}
	b.WriteString("End\n")

	_, err := w.Write([]byte(b.String()))
	return err
}

func writeExpr(b *strings.Builder, terms []Term) {
	if len(terms) == 0 {
		b.WriteString("0")
		return
	}
	for i, t := range terms {
		coeff := t.Coeff
		sign := "+"
		if coeff < 0 {
			sign = "-"
			coeff = -coeff
		}
		if i == 0 {
			if sign == "-" {
				b.WriteString("-")
			}
		} else {
			b.WriteString(" ")
			b.WriteString(sign)
			b.WriteString(" ")
		}
		fmt.Fprintf(b, "%s %s", strconv.FormatFloat(coeff, 'g', -1, 64), t.Var)
	}
}
