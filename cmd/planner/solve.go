package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/udp-planner/course-scheduler/internal/model"
	"github.com/udp-planner/course-scheduler/internal/solverdriver"
)

func newSolveCmd(flags *rootFlags) *cobra.Command {
	var solverCommand string

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Emit the model, invoke the solver, and print the resulting schedule",
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

			runID := "run-" + uuid.New().String()
			driver := solverdriver.New(solverdriver.NewExternalProcess(solverCommand), flags.artifactsDir)

			sol, err := driver.Run(cmd.Context(), runID, m, loaded.cat)
			if err != nil {
				return err
			}

			log.Info().Str("run_id", runID).Msg("solve complete")
			for term := 0; term <= sol.MaxTerm(); term++ {
				ids := sol.PerTerm(term)
				if len(ids) == 0 {
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "term %d: %v\n", term, courseCodesFor(loaded, ids))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "credits taken so far: %d, credits to take: %d\n",
				sol.CreditsTakenSoFar(), sol.CreditsToTake())
			return nil
		},
	}

	cmd.Flags().StringVar(&solverCommand, "solver", "cbc", "external MILP solver binary")
	return cmd
}

func courseCodesFor(loaded *loadedInputs, ids []int) []string {
	codes := make([]string, 0, len(ids))
	for _, id := range ids {
		if c, ok := loaded.cat.ByID(id); ok {
			codes = append(codes, c.Code)
		}
	}
	return codes
}
