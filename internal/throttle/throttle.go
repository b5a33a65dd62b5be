// Package throttle spaces out requests to stay under the site's rate limit
// (roughly 20 requests per minute).
package throttle

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
)

// Pauser blocks between requests, optionally showing a spinner while it waits
type Pauser struct {
	progress io.Writer
}

// New returns a Pauser. When progress is non-nil a spinner is drawn on it during pauses.
func New(progress io.Writer) *Pauser {
	return &Pauser{progress: progress}
}

// Pause blocks for d or until ctx is done. A non-positive d returns immediately.
func (p *Pauser) Pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	if p.progress != nil {
		s := spinner.New(spinner.CharSets[9], 100*time.Millisecond, spinner.WithWriter(p.progress))
		s.Suffix = fmt.Sprintf(" waiting %s before next request", d)
		s.Start()
		defer s.Stop()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Seconds converts a delay in (possibly fractional) seconds to a duration
func Seconds(secs float64) time.Duration {
	return time.Duration(secs * float64(time.Second))
}
