// Package solverdriver hands an assembled model to an external MILP
// solver and parses its solution artifact back into a term-assignment
// map. The core never embeds a solver; it only speaks the LP/solution
// file contract of spec §6.
package solverdriver

import (
	"bufio"
	"context"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/udp-planner/course-scheduler/internal/catalog"
	"github.com/udp-planner/course-scheduler/internal/model"
	"github.com/udp-planner/course-scheduler/internal/plannererr"
	"github.com/udp-planner/course-scheduler/internal/solution"
)

// Solver is the boundary the core depends on: given the path of the model
// file the Driver already wrote, solve it and write the raw solution
// artifact to solutionPath. A test double can satisfy this without spawning
// anything.
type Solver interface {
	Solve(ctx context.Context, modelPath, solutionPath string) error
}

// ExternalProcess invokes a command-line MILP solver, passing the model
// and solution paths as the last two arguments.
type ExternalProcess struct {
	Command string
	Args    []string
}

// NewExternalProcess wires a solver binary (e.g. "cbc", "glpsol") with any
// fixed flags that precede the model/solution path arguments.
func NewExternalProcess(command string, args ...string) *ExternalProcess {
	return &ExternalProcess{Command: command, Args: args}
}

// Solve runs the configured binary as `command args... modelPath solutionPath`.
func (p *ExternalProcess) Solve(ctx context.Context, modelPath, solutionPath string) error {
	args := append(append([]string{}, p.Args...), modelPath, solutionPath)
	cmd := exec.CommandContext(ctx, p.Command, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		log.Error().Err(err).Str("output", string(out)).Msg("solver process failed")
		return errors.Wrapf(err, "running solver %s", p.Command)
	}
	return nil
}

// Driver writes the model artifact, invokes the Solver, and parses the
// solution artifact back into a typed Solution.
type Driver struct {
	Solver       Solver
	ArtifactsDir string
}

// New wires a Solver implementation with the directory audit artifacts are
// written to.
func New(solver Solver, artifactsDir string) *Driver {
	return &Driver{Solver: solver, ArtifactsDir: artifactsDir}
}

// Run writes m to "<runID>.lp" under ArtifactsDir, solves it, parses the
// resulting "<runID>.sol" artifact, and returns the typed Solution.
func (d *Driver) Run(ctx context.Context, runID string, m *model.LPModel, cat *catalog.Catalog) (*solution.Solution, error) {
	modelPath := d.artifactPath(runID, "lp")
	solutionPath := d.artifactPath(runID, "sol")

	f, err := os.Create(modelPath)
	if err != nil {
		return nil, plannererr.NewSolverInvocation(errors.Wrapf(err, "creating model artifact"), modelPath)
	}
	if err := m.WriteLP(f); err != nil {
		f.Close()
		return nil, plannererr.NewSolverInvocation(errors.Wrapf(err, "writing model artifact"), modelPath)
	}
	if err := f.Close(); err != nil {
		return nil, plannererr.NewSolverInvocation(errors.Wrapf(err, "closing model artifact"), modelPath)
	}

	log.Info().Str("run_id", runID).Str("model_path", modelPath).Msg("invoking solver")
	if err := d.Solver.Solve(ctx, modelPath, solutionPath); err != nil {
		return nil, plannererr.NewSolverInvocation(err, modelPath)
	}

	values, err := parseSolutionFile(solutionPath)
	if err != nil {
		return nil, plannererr.NewSolverInvocation(errors.Wrapf(err, "parsing solution artifact"), modelPath)
	}
	if len(values) == 0 {
		return nil, plannererr.NewInfeasible("empty solution artifact")
	}

	terms := make(map[int]int)
	for name, v := range values {
		if v < 0.5 {
			continue
		}
		courseID, term, ok := parseXVar(name)
		if ok {
			terms[courseID] = term
		}
	}

	return solution.New(cat, terms), nil
}

func (d *Driver) artifactPath(runID, ext string) string {
	return d.ArtifactsDir + "/" + runID + "." + ext
}

// parseSolutionFile reads the "name=value" solution artifact of spec §6.
func parseSolutionFile(path string) (map[string]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening solution artifact %s", path)
	}
	defer f.Close()

	values := make(map[string]float64)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		name, raw, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing solution value %q", line)
		}
		values[strings.TrimSpace(name)] = v
	}
	return values, scanner.Err()
}

// parseXVar extracts (courseID, term) from an "x_<id>_<term>" variable
// name; "xi_<id>" and the continuous auxiliaries are ignored here since
// Solution is rebuilt entirely from the per-slot assignment.
func parseXVar(name string) (int, int, bool) {
	if !strings.HasPrefix(name, "x_") {
		return 0, 0, false
	}
	rest := strings.TrimPrefix(name, "x_")
	parts := strings.SplitN(rest, "_", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	id, err1 := strconv.Atoi(parts[0])
	term, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return id, term, true
}
