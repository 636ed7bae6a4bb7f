package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-drift/tickring/cmd/tickring/internal/config"
	"github.com/go-drift/tickring/pkg/animation"
	tickerrors "github.com/go-drift/tickring/pkg/errors"
	"github.com/go-drift/tickring/pkg/raster"
	"github.com/go-drift/tickring/pkg/widgets"
)

func init() {
	RegisterCommand(&Command{
		Name:  "render",
		Short: "Write the animation as PNG frames",
		Long: `Play the configured animation on a synthetic clock and write one PNG
per frame, from the start value through completion.

Flags:
  --config FILE   Read settings from FILE instead of ./tickring.yaml
  --out DIR       Output directory (default: frames)
  --frames N      Stop after N frames even if the animation is not done`,
		Usage: "tickring render [--config FILE] [--out DIR] [--frames N]",
		Run:   runRender,
	})
}

type renderOptions struct {
	configPath string
	outDir     string
	maxFrames  int
}

func parseRenderArgs(args []string) (renderOptions, error) {
	opts := renderOptions{outDir: "frames"}
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--config":
			v, err := flagValue(args, i)
			if err != nil {
				return opts, err
			}
			opts.configPath = v
			i++
		case "--out":
			v, err := flagValue(args, i)
			if err != nil {
				return opts, err
			}
			opts.outDir = v
			i++
		case "--frames":
			v, err := flagValue(args, i)
			if err != nil {
				return opts, err
			}
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				return opts, fmt.Errorf("--frames must be a positive integer (got %q)", v)
			}
			opts.maxFrames = n
			i++
		default:
			return opts, fmt.Errorf("unknown flag %q\n\nUsage: tickring render [--config FILE] [--out DIR] [--frames N]", args[i])
		}
	}
	return opts, nil
}

func runRender(args []string) error {
	opts, err := parseRenderArgs(args)
	if err != nil {
		return err
	}
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	cfg, err := config.LoadResolved(opts.configPath, wd)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	n, err := renderFrames(cfg, opts.outDir, opts.maxFrames)
	if err != nil {
		return err
	}
	fmt.Printf("Wrote %d frames to %s\n", n, opts.outDir)
	return nil
}

// renderFrames writes frames until the animation completes or maxFrames
// (when positive) is reached. Returns the number of frames written.
func renderFrames(cfg *config.Resolved, outDir string, maxFrames int) (int, error) {
	clk := newFrameClock()
	scheduler := animation.NewScheduler(clk)

	ind := widgets.NewTickProgressIndicator(scheduler)
	defer ind.Dispose()
	ind.Style = cfg.Style
	ind.SetValue(cfg.From)

	done := false
	ind.SetProgress(cfg.To, cfg.Duration, func() { done = true })

	var last []byte
	frame := 0
	for {
		if ind.NeedsPaint() || last == nil {
			data, err := encodeFrame(ind, cfg)
			if err != nil {
				return frame, err
			}
			last = data
		}
		path := filepath.Join(outDir, fmt.Sprintf("frame_%04d.png", frame))
		if err := os.WriteFile(path, last, 0o644); err != nil {
			return frame, &tickerrors.TickError{
				Op:   "render.writeFrame",
				Kind: tickerrors.KindRender,
				Path: path,
				Err:  err,
			}
		}
		frame++

		if done || (maxFrames > 0 && frame >= maxFrames) {
			return frame, nil
		}
		clk.advance(cfg.FrameInterval())
		var panicked any
		stepFrame(scheduler, func(r any) { panicked = r })
		if panicked != nil {
			return frame, &tickerrors.TickError{
				Op:   "render.stepFrame",
				Kind: tickerrors.KindPanic,
				Err:  fmt.Errorf("frame %d: %v", frame, panicked),
			}
		}
	}
}

func encodeFrame(ind *widgets.TickProgressIndicator, cfg *config.Resolved) ([]byte, error) {
	canvas := raster.NewCanvas(cfg.Size, cfg.Size)
	canvas.Clear(cfg.Background)
	ind.Paint(canvas, canvas.Size())

	var buf bytes.Buffer
	if err := canvas.EncodePNG(&buf); err != nil {
		return nil, &tickerrors.TickError{
			Op:   "render.encodeFrame",
			Kind: tickerrors.KindRender,
			Err:  err,
		}
	}
	return buf.Bytes(), nil
}

// stepFrame advances the scheduler one frame. A panic in a ticker or
// completion callback is reported and handed to onPanic instead of tearing
// down the host loop.
func stepFrame(scheduler *animation.Scheduler, onPanic func(r any)) {
	defer tickerrors.RecoverWithCallback("tickring.frame", onPanic)
	scheduler.Step()
}
