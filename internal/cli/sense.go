package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/busybox/internal/counter"
	"github.com/roach88/busybox/internal/motion"
)

// SenseResult is the JSON payload of the sense command.
type SenseResult struct {
	Samples int     `json:"samples"`
	Shakes  []int64 `json:"shakes"`
}

// NewSenseCommand creates the sense command.
func NewSenseCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sense [samples-file]",
		Short: "Feed accelerometer samples through the shake detector",
		Long: `Read accelerometer samples and log every shake the detector reports.

Each line is "x,y,z,at" where at is the arrival time in epoch milliseconds.
When at is omitted the current time is used. Blank lines and lines starting
with '#' are ignored. With no file argument, samples are read from stdin.

Example:
  busybox sense ./samples.csv
  cat samples.csv | busybox sense --format json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return WrapExitError(ExitCommandError, "failed to open samples", err)
				}
				defer f.Close()
				in = f
			}
			return runSense(rootOpts, cmd, in)
		},
	}
}

func runSense(opts *RootOptions, cmd *cobra.Command, in io.Reader) error {
	ctx := commandContext(cmd)
	s, err := openSession(ctx, opts, cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	result := SenseResult{Shakes: []int64{}}
	now := func() int64 { return counter.SystemClock{}.Now().UnixMilli() }
	err = scanSamples(ctx, in, now, func(sample motion.Sample) error {
		result.Samples++
		values := []float32{sample.X, sample.Y, sample.Z}
		recorded, err := s.service.HandleSensor(ctx, motion.SensorAccelerometer, values, sample.At)
		if err != nil {
			return err
		}
		if recorded {
			result.Shakes = append(result.Shakes, sample.At)
		}
		return nil
	})
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to process samples", err)
	}

	s.logger.Debug("samples processed", "samples", result.Samples, "shakes", len(result.Shakes))

	f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	return f.Success(result, func(w io.Writer) {
		for _, at := range result.Shakes {
			fmt.Fprintf(w, "shake at %d\n", at)
		}
		fmt.Fprintf(w, "%d samples, %d shakes\n", result.Samples, len(result.Shakes))
	})
}
