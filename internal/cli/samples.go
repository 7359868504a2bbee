package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/roach88/busybox/internal/motion"
)

// parseSample parses one "x,y,z[,at]" line. When at is omitted, now supplies
// the arrival time.
func parseSample(line string, now func() int64) (motion.Sample, error) {
	fields := strings.Split(line, ",")
	if len(fields) != 3 && len(fields) != 4 {
		return motion.Sample{}, fmt.Errorf("want x,y,z[,at], got %d fields", len(fields))
	}

	var axes [3]float32
	for i := range axes {
		v, err := strconv.ParseFloat(strings.TrimSpace(fields[i]), 32)
		if err != nil {
			return motion.Sample{}, fmt.Errorf("axis %d: %w", i, err)
		}
		axes[i] = float32(v)
	}

	var at int64
	if len(fields) == 4 {
		v, err := strconv.ParseInt(strings.TrimSpace(fields[3]), 10, 64)
		if err != nil {
			return motion.Sample{}, fmt.Errorf("timestamp: %w", err)
		}
		at = v
	} else {
		at = now()
	}

	return motion.Sample{X: axes[0], Y: axes[1], Z: axes[2], At: at}, nil
}

// scanSamples calls fn for each sample line in r. Blank lines and lines
// starting with '#' are ignored.
func scanSamples(ctx context.Context, r io.Reader, now func() int64, fn func(motion.Sample) error) error {
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		s, err := parseSample(line, now)
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
		if err := fn(s); err != nil {
			return err
		}
	}
	return sc.Err()
}
