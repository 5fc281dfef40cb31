// danmaku-snapshot replays a chat transcript through the scheduler headlessly
// and writes periodic PNG frames of the overlay.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/lixenwraith/danmaku/config"
	"github.com/lixenwraith/danmaku/engine"
	"github.com/lixenwraith/danmaku/logging"
	"github.com/lixenwraith/danmaku/render/raster"
	"github.com/lixenwraith/danmaku/source"
	"github.com/lixenwraith/danmaku/status"
)

var (
	inFlag     = flag.String("in", "-", "Transcript file, one message per line; - reads stdin")
	configFlag = flag.String("config", "", "Settings file (TOML); empty uses defaults")
	widthFlag  = flag.Int("width", 800, "Canvas width in pixels")
	heightFlag = flag.Int("height", 240, "Canvas height in pixels")
	framesFlag = flag.Int("frames", 600, "Number of frames to simulate")
	fpsFlag    = flag.Int("fps", 60, "Simulated frame rate")
	gapFlag    = flag.Int("gap", 6, "Frames between consecutive arrivals")
	everyFlag  = flag.Int("every", 30, "Write a PNG every N frames")
	outFlag    = flag.String("out", "frames", "Output directory")
	debugFlag  = flag.Bool("debug", false, "Write diagnostics to logs/danmaku.log")
)

// options drive one deterministic replay
type options struct {
	Width, Height int
	Frames, FPS   int
	Gap, Every    int
	OutDir        string
}

func main() {
	flag.Parse()

	logFile := logging.Setup(*debugFlag)
	if logFile != nil {
		defer logFile.Close()
	}

	cfg := config.Default()
	if *configFlag != "" {
		loaded, err := config.LoadFile(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if err := config.ApplyEnv(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Environment: %v\n", err)
	}

	var in io.Reader = os.Stdin
	if *inFlag != "-" {
		f, err := os.Open(*inFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Input: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		in = f
	}

	arrivals, err := readArrivals(context.Background(), in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Input: %v\n", err)
		os.Exit(1)
	}

	opts := options{
		Width: *widthFlag, Height: *heightFlag,
		Frames: *framesFlag, FPS: *fpsFlag,
		Gap: *gapFlag, Every: *everyFlag,
		OutDir: *outFlag,
	}
	stats, written, err := replay(cfg, opts, arrivals)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Replay: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("frames=%d written=%d arrived=%d placed=%d retired=%d dropped=%d waiting=%d\n",
		stats.Frames, written, stats.Arrived, stats.Placed, stats.Retired, stats.Dropped, stats.Backlog)
}

// readArrivals drains a transcript without pacing
func readArrivals(ctx context.Context, r io.Reader) ([]source.Arrival, error) {
	ch := make(chan source.Arrival)
	errCh := make(chan error, 1)
	go func() {
		errCh <- source.NewLines(r, 0).Run(ctx, ch)
		close(ch)
	}()

	var out []source.Arrival
	for a := range ch {
		out = append(out, a)
	}
	return out, <-errCh
}

// replay steps a scheduler on a mock clock at a fixed delta
// Arrival i is delivered before frame i*Gap
func replay(cfg config.Config, opts options, arrivals []source.Arrival) (engine.Stats, int, error) {
	if opts.FPS <= 0 {
		return engine.Stats{}, 0, fmt.Errorf("fps must be positive, got %d", opts.FPS)
	}
	if opts.Gap < 0 {
		opts.Gap = 0
	}

	canvas, err := raster.New(opts.Width, opts.Height)
	if err != nil {
		return engine.Stats{}, 0, err
	}
	defer canvas.Close()

	if opts.Every > 0 {
		if err := os.MkdirAll(opts.OutDir, 0755); err != nil {
			return engine.Stats{}, 0, fmt.Errorf("create output dir: %w", err)
		}
	}

	clock := engine.NewMockTimeProvider(time.Unix(0, 0))
	sched := engine.NewScheduler(canvas, clock, status.NewRegistry())

	frameDt := 1 / float64(opts.FPS)
	next := 0
	written := 0

	for frame := 0; frame < opts.Frames; frame++ {
		for next < len(arrivals) && next*opts.Gap <= frame {
			if source.Filter(cfg, arrivals[next]) {
				sched.Push(cfg, arrivals[next].Text)
			}
			next++
		}

		dt := clock.Step(frameDt)
		canvas.Draw(sched.Frame(cfg, dt, canvas.Geometry()))

		if opts.Every > 0 && frame%opts.Every == 0 {
			if err := writeFrame(canvas, opts.OutDir, frame); err != nil {
				return sched.Stats(), written, err
			}
			written++
		}
	}

	return sched.Stats(), written, nil
}

func writeFrame(canvas *raster.Canvas, dir string, frame int) error {
	path := filepath.Join(dir, fmt.Sprintf("frame-%05d.png", frame))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := canvas.WritePNG(f); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
