package main

import (
	"github.com/spf13/cobra"
)

// rootFlags carries the directory layout shared by every subcommand.
type rootFlags struct {
	catalogPath string
	groupsDir   string
	paramsPath  string
	passedPath  string
	desiredPath string
	prefsPath   string
	gradesPath  string

	artifactsDir string
	jsonLogs     bool
	verbose      bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "planner",
		Short: "Course-schedule optimization core",
		Long: `planner loads a course catalog, group registry, program parameters, and
per-student input, then either validates them or emits and solves the
resulting MILP for an optimal multi-term schedule.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configureLogging(flags.jsonLogs, flags.verbose)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.catalogPath, "catalog", "cls.csv", "course catalog CSV file")
	pf.StringVar(&flags.groupsDir, "groups-dir", "groups", "directory of .grp group files")
	pf.StringVar(&flags.paramsPath, "params", "params.props", "program parameters file")
	pf.StringVar(&flags.passedPath, "passed", "passedcourses.txt", "passed-courses file")
	pf.StringVar(&flags.desiredPath, "desired", "desiredcourses.txt", "desired-courses file")
	pf.StringVar(&flags.prefsPath, "prefs", "preferences.json", "student preferences side file")
	pf.StringVar(&flags.gradesPath, "grades", "estimated_grades.txt", "estimated grades file")
	pf.StringVar(&flags.artifactsDir, "artifacts-dir", ".", "directory for .lp/.sol audit artifacts")
	pf.BoolVar(&flags.jsonLogs, "json-logs", false, "emit structured JSON logs instead of console output")
	pf.BoolVar(&flags.verbose, "verbose", false, "enable debug-level logging")

	cmd.AddCommand(newValidateCmd(flags))
	cmd.AddCommand(newSolveCmd(flags))
	return cmd
}
