package source

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/lixenwraith/danmaku/logging"
)

// Lines reads one arrival per line, optionally pacing them
type Lines struct {
	r        io.Reader
	interval time.Duration
}

// NewLines paces arrivals interval apart; zero sends as fast as the consumer reads
func NewLines(r io.Reader, interval time.Duration) *Lines {
	return &Lines{r: r, interval: interval}
}

// Run sends arrivals to out until EOF or ctx is cancelled
// Blank and undecodable lines are skipped
func (l *Lines) Run(ctx context.Context, out chan<- Arrival) error {
	scanner := bufio.NewScanner(l.r)
	var pace *time.Ticker
	if l.interval > 0 {
		pace = time.NewTicker(l.interval)
		defer pace.Stop()
	}

	for scanner.Scan() {
		a, err := Decode(scanner.Bytes())
		if err != nil {
			logging.Logger().Warn("skipping line", "err", err)
			continue
		}
		if a.Text == "" {
			continue
		}

		if pace != nil {
			select {
			case <-pace.C:
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		select {
		case out <- a:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read lines: %w", err)
	}
	return nil
}
