package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/busybox/internal/counter"
)

// ShakeResult is the JSON payload of the shake command.
type ShakeResult struct {
	At int64 `json:"at"`
}

// ShakeOptions holds flags for the shake command.
type ShakeOptions struct {
	*RootOptions
	At int64
}

// NewShakeCommand creates the shake command.
func NewShakeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ShakeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "shake",
		Short: "Log a shake without the detector",
		Long: `Append a shake to the shake log directly, bypassing motion detection.

Use "busybox sense" to run recorded accelerometer samples through the detector.

Example:
  busybox shake
  busybox shake --at 1700000000000`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			s, err := openSession(ctx, opts.RootOptions, cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			at := opts.At
			if at == 0 {
				at = counter.SystemClock{}.Now().UnixMilli()
			}
			if err := s.service.RecordShake(ctx, at); err != nil {
				return WrapExitError(ExitCommandError, "failed to record shake", err)
			}

			f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
			return f.Success(ShakeResult{At: at}, func(w io.Writer) {
				fmt.Fprintf(w, "shake logged at %d\n", at)
			})
		},
	}

	cmd.Flags().Int64Var(&opts.At, "at", 0, "epoch milliseconds (default now)")

	return cmd
}
