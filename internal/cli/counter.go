package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// CounterResult is the JSON payload of press, reset and show.
type CounterResult struct {
	Counter int `json:"counter"`
}

// PressOptions holds flags for the press command.
type PressOptions struct {
	*RootOptions
	Times int
}

// NewPressCommand creates the press command.
func NewPressCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PressOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "press",
		Short: "Increment the counter and log the press",
		Long: `Increment the counter and append a timestamped press to the press log.

Example:
  busybox press
  busybox press -n 3 --db ./busybox.db`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPress(opts, cmd)
		},
	}

	cmd.Flags().IntVarP(&opts.Times, "times", "n", 1, "number of presses")

	return cmd
}

func runPress(opts *PressOptions, cmd *cobra.Command) error {
	if opts.Times < 1 {
		return NewExitError(ExitCommandError, fmt.Sprintf("--times must be at least 1, got %d", opts.Times))
	}

	ctx := commandContext(cmd)
	s, err := openSession(ctx, opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	value := s.service.Value()
	for i := 0; i < opts.Times; i++ {
		value, err = s.service.Increment(ctx)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to record press", err)
		}
	}

	return printCounter(opts.RootOptions, cmd, value)
}

// NewResetCommand creates the reset command.
func NewResetCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Set the counter to zero",
		Long: `Set the counter to zero. The press and shake logs are kept.

Example:
  busybox reset`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			s, err := openSession(ctx, rootOpts, cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.service.Reset(ctx); err != nil {
				return WrapExitError(ExitCommandError, "failed to reset counter", err)
			}
			return printCounter(rootOpts, cmd, s.service.Value())
		},
	}
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "show",
		Short:         "Print the counter",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(commandContext(cmd), rootOpts, cmd)
			if err != nil {
				return err
			}
			defer s.Close()
			return printCounter(rootOpts, cmd, s.service.Value())
		},
	}
}

func printCounter(opts *RootOptions, cmd *cobra.Command, value int) error {
	f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	return f.Success(CounterResult{Counter: value}, func(w io.Writer) {
		fmt.Fprintln(w, value)
	})
}
