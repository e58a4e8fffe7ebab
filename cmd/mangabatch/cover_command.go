package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mangabatch/internal/organizer"
	"mangabatch/internal/util"
)

func newCoverCommand(ctx *commandContext) *cobra.Command {
	var openFlag bool

	cmd := &cobra.Command{
		Use:   "cover <series-dir>",
		Short: "Resolve the series cover, ensure cover.jpg exists and print its path",
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
			result, err := o.Run(organizer.ActionShowCover, seriesDir, func(line string) {
				fmt.Fprintln(out, line)
			})
			if err != nil {
				return err
			}

			if openFlag {
				fmt.Fprintf(out, "[COVER-CHECK] Opening: %s\n", result.CoverPath)
				return openImage(result.CoverPath)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&openFlag, "open", false, "Open the cover in the system image viewer")
	return cmd
}
