package main

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"mangabatch/internal/models"
	"mangabatch/internal/organizer"
	"mangabatch/internal/util"
)

func newPlanCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "plan <series-dir>",
		Short: "Print the full batch plan without changing any files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := ctx.organizer()
			if err != nil {
				return err
			}
			seriesDir, err := util.ResolveSeriesDir(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			result, err := o.Run(organizer.ActionPreview, seriesDir, func(line string) {
				fmt.Fprintln(out, line)
			})
			if err != nil {
				return err
			}

			// The per-batch table is a terminal nicety; piped output
			// keeps the stable line format only.
			if result.Plan != nil && shouldRenderTable(out) {
				fmt.Fprintln(out, planSummaryTable(result.Plan))
			}
			return nil
		},
	}
}

func planSummaryTable(plan *models.Plan) string {
	rows := make([][]string, 0, len(plan.Batches))
	for _, b := range plan.Batches {
		coverCell := ""
		if b.MakeCover {
			coverCell = "numbered"
		}
		rows = append(rows, []string{
			strconv.Itoa(b.Index),
			filepath.Base(b.Dir),
			strconv.Itoa(len(b.Moves)),
			coverCell,
		})
	}
	return renderTable(
		[]string{"Batch", "Folder", "Volumes", "Cover"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignRight, alignLeft},
	)
}
