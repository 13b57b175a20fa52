package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/deadsy/sdfx/sdf"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/letterswarm/particle"
	"github.com/lixenwraith/letterswarm/shape"
)

var (
	previewFlag bool
	previewCols int
	previewRows int
)

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Run the particle sampler only and report acceptance",
	RunE:  runSample,
}

func init() {
	sampleCmd.Flags().BoolVar(&previewFlag, "preview", false, "Print an ASCII density map of the sampled cloud")
	sampleCmd.Flags().IntVar(&previewCols, "cols", 80, "Preview width in characters")
	sampleCmd.Flags().IntVar(&previewRows, "rows", 20, "Preview height in characters")
	rootCmd.AddCommand(sampleCmd)
}

func runSample(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	opts := cfg.Engine()

	field, err := shape.NewField(opts.Layout)
	if err != nil {
		return fmt.Errorf("build shape field: %w", err)
	}

	start := time.Now()
	ps, st := particle.Sample(field, particle.SamplerConfig{
		Count:       opts.Count,
		Bounds:      field.Bounds(),
		Thickness:   opts.Thickness,
		MaxAttempts: opts.MaxAttempts,
	}, particle.NewRand(opts.Seed))
	elapsed := time.Since(start)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("letterswarm sample: %q", opts.Layout.Text)))
	row(out, "strokes", "%d", field.Strokes())
	row(out, "particles", "%d / %d", st.Accepted, opts.Count)
	row(out, "attempts", "%d", st.Attempts)
	row(out, "acceptance", "%.2f%%", st.Ratio()*100)
	row(out, "elapsed", "%v", elapsed.Round(time.Microsecond))
	if st.Exhausted {
		fmt.Fprintln(out, warnStyle.Render(fmt.Sprintf("attempt budget %d exhausted", opts.MaxAttempts)))
	}

	if previewFlag {
		fmt.Fprintln(out)
		fmt.Fprint(out, previewMap(ps, field.Bounds(), previewCols, previewRows))
	}
	return nil
}

// previewRamp orders glyphs by density
const previewRamp = " .:-=+*#%@"

// previewMap bins particle x/y over bounds into a cols×rows density map, +Y up
func previewMap(ps *particle.Set, b sdf.Box2, cols, rows int) string {
	if cols <= 0 || rows <= 0 {
		return ""
	}
	counts := make([]int, cols*rows)
	peak := 0
	w, h := b.Max.X-b.Min.X, b.Max.Y-b.Min.Y

	for i := 0; i < ps.Len(); i++ {
		x, y, _ := ps.At(i)
		cx := int((float64(x) - b.Min.X) / w * float64(cols))
		cy := int((b.Max.Y - float64(y)) / h * float64(rows))
		if cx < 0 || cx >= cols || cy < 0 || cy >= rows {
			continue
		}
		idx := cy*cols + cx
		counts[idx]++
		peak = max(peak, counts[idx])
	}

	var sb strings.Builder
	sb.Grow((cols + 1) * rows)
	top := len(previewRamp) - 1
	for cy := 0; cy < rows; cy++ {
		for cx := 0; cx < cols; cx++ {
			n := counts[cy*cols+cx]
			level := 0
			if n > 0 {
				// Any occupied cell is at least the faintest mark
				level = max(1, n*top/peak)
			}
			sb.WriteByte(previewRamp[level])
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
