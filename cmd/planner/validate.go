package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/udp-planner/course-scheduler/internal/model"
)

// newValidateCmd builds "planner validate": load everything and attempt to
// assemble the model without writing or solving it, surfacing catalog,
// group, and input errors up front.
func newValidateCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Load inputs and assemble the model without solving",
		RunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := loadInputs(flags)
			if err != nil {
				return err
			}

			b := model.NewBuilder(loaded.cal, loaded.cat, loaded.reg, loaded.par, loaded.in)
			m, err := b.Build()
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d variables, %d constraints\n", len(m.Vars), len(m.Constraints))
			return nil
		},
	}
}
