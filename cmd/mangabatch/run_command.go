package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"mangabatch/internal/models"
	"mangabatch/internal/organizer"
	"mangabatch/internal/util"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "run <series-dir>...",
		Short: "Organize series folders into numbered batch folders",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := ctx.organizer()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if !yes {
				// One reader across prompts so a second series does not
				// lose input buffered by the first.
				stdin := bufio.NewReader(cmd.InOrStdin())
				o.Confirm = func(*models.Plan) bool {
					ok, err := promptConfirm(stdin, out,
						"\nProceed and execute everything now? [y/N]: ")
					return err == nil && ok
				}
			}

			runner := organizer.NewRunner()
			for _, arg := range args {
				seriesDir, err := util.ResolveSeriesDir(arg)
				if err != nil {
					return err
				}

				if !yes {
					// Interactive runs stay on this goroutine so the
					// prompt and its answer interleave correctly.
					if _, err := o.Run(organizer.ActionProcess, seriesDir, func(line string) {
						fmt.Fprintln(out, line)
					}); err != nil {
						return err
					}
					continue
				}

				events, err := runner.Start(o.Task(organizer.ActionProcess, seriesDir))
				if err != nil {
					return err
				}
				for ev := range events {
					if ev.Done {
						if ev.Err != nil {
							return ev.Err
						}
						continue
					}
					fmt.Fprintln(out, ev.Line)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Execute all planned actions without confirmation")
	return cmd
}

// promptConfirm prints prompt and reads one line. Only "y" or "yes"
// accepts; end of input declines.
func promptConfirm(in *bufio.Reader, out io.Writer, prompt string) (bool, error) {
	fmt.Fprint(out, prompt)
	line, err := in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("failed to read user input: %w", err)
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}
