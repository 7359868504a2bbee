package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/busybox/internal/counter"
	"github.com/roach88/busybox/internal/motion"
	"github.com/roach88/busybox/internal/tui"
)

// UIOptions holds flags for the ui command.
type UIOptions struct {
	*RootOptions
	Samples string
}

// NewUICommand creates the ui command.
func NewUICommand(rootOpts *RootOptions) *cobra.Command {
	opts := &UIOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive counter screen",
		Long: `Open the counter screen in the terminal.

Shake detection runs only when --samples names a sample source (a file or a
named pipe with "x,y,z[,at]" lines). Without it the screen reports that
shake detection is off.

Example:
  busybox ui
  busybox ui --samples /tmp/accel.fifo`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUI(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Samples, "samples", "", "accelerometer sample source")

	return cmd
}

func runUI(opts *UIOptions, cmd *cobra.Command) error {
	ctx, cancel := context.WithCancel(commandContext(cmd))
	defer cancel()

	s, err := openSession(ctx, opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	var samples <-chan motion.Sample
	if opts.Samples != "" {
		f, err := os.Open(opts.Samples)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open samples", err)
		}
		defer f.Close()
		samples = streamSamples(ctx, s, f)
	} else {
		s.logger.Info("no sample source, shake detection disabled")
	}

	if err := tui.Run(ctx, s.service, samples); err != nil {
		return WrapExitError(ExitCommandError, "screen failed", err)
	}
	return nil
}

// streamSamples reads samples from f on its own goroutine. The channel is
// closed when f is exhausted, a line is malformed, or ctx ends.
func streamSamples(ctx context.Context, s *session, f *os.File) <-chan motion.Sample {
	ch := make(chan motion.Sample)
	now := func() int64 { return counter.SystemClock{}.Now().UnixMilli() }
	go func() {
		defer close(ch)
		err := scanSamples(ctx, f, now, func(sample motion.Sample) error {
			select {
			case ch <- sample:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
		if err != nil && ctx.Err() == nil {
			s.logger.Warn("sample source stopped", "error", err)
		}
	}()
	return ch
}
