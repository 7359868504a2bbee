package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/busybox/internal/history"
)

// HistoryResult is the JSON payload of the history command.
type HistoryResult struct {
	Rows    []history.Row `json:"rows"`
	Skipped int           `json:"skipped,omitempty"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List every press, then every shake",
		Long: `List the press log followed by the shake log, each in recorded order.

Malformed log entries are skipped and reported as warnings on stderr.

Example:
  busybox history
  busybox history --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(commandContext(cmd), rootOpts, cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			p, err := s.service.History(commandContext(cmd))
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to read history", err)
			}

			f := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
			return f.Success(HistoryResult{Rows: p.Rows, Skipped: len(p.Issues)}, func(w io.Writer) {
				if len(p.Rows) == 0 {
					fmt.Fprintln(w, "No history yet.")
					return
				}
				for _, line := range p.Lines() {
					fmt.Fprintln(w, line)
				}
			})
		},
	}
}
