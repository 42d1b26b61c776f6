// Package plannererr defines the core's typed error kinds: catalog and
// group integrity failures, input-parse failures, solver infeasibility, and
// solver invocation failures. Modeled after the domain-error-struct shape
// used across the retrieved pack for business-rule errors.
package plannererr

import "fmt"

// Kind distinguishes the error families of spec §7.
type Kind string

const (
	KindCatalogIntegrity   Kind = "CATALOG_INTEGRITY"
	KindInputParse         Kind = "INPUT_PARSE"
	KindInfeasible         Kind = "INFEASIBLE"
	KindSolverInvocation   Kind = "SOLVER_INVOCATION"
)

// PlannerError is the single error type the core returns for any of the
// kinds above. Details carries kind-specific diagnostic context (offending
// row, model path, etc.).
type PlannerError struct {
	Kind    Kind
	Message string
	Details map[string]any
}

func (e *PlannerError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NewCatalogIntegrity reports an unknown code referenced by a prerequisite,
// co-requisite, or group. Fatal — the core refuses to emit a model.
func NewCatalogIntegrity(msg string) *PlannerError {
	return &PlannerError{Kind: KindCatalogIntegrity, Message: msg}
}

// NewInputParse reports a malformed term token or count/credits expression,
// identifying the offending row.
func NewInputParse(msg string, row int, source string) *PlannerError {
	return &PlannerError{
		Kind:    KindInputParse,
		Message: msg,
		Details: map[string]any{"row": row, "source": source},
	}
}

// NewInfeasible reports a non-optimal solver status. Not an exception, not
// retried — surfaced as a typed result.
func NewInfeasible(status string) *PlannerError {
	return &PlannerError{
		Kind:    KindInfeasible,
		Message: "model infeasible or unsolvable",
		Details: map[string]any{"solver_status": status},
	}
}

// NewSolverInvocation reports an environment/licensing failure invoking the
// external solver, with a hint at the assembled model path.
func NewSolverInvocation(cause error, modelPath string) *PlannerError {
	return &PlannerError{
		Kind:    KindSolverInvocation,
		Message: cause.Error(),
		Details: map[string]any{"model_path": modelPath},
	}
}

// Is allows errors.Is(err, &plannererr.PlannerError{Kind: plannererr.KindInfeasible})
// style checks: any *PlannerError target with the same Kind matches.
func (e *PlannerError) Is(target error) bool {
	other, ok := target.(*PlannerError)
	if !ok {
		return false
	}
	return e.Kind == other.Kind
}
