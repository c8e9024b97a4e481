package cue

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/alexander-akhmetov/hangtimer/internal/workout"
)

const bel = "\a"

// bellPattern is how many terminal bells each cue rings.
var bellPattern = map[workout.Cue]int{
	workout.CueBegin:  1,
	workout.CueActive: 2,
	workout.CueRest:   1,
}

// BellPlayer rings the terminal bell.
type BellPlayer struct {
	mu  sync.Mutex
	out io.Writer
}

var _ Player = (*BellPlayer)(nil)

// NewBellPlayer creates a BellPlayer writing to out.
func NewBellPlayer(out io.Writer) *BellPlayer {
	return &BellPlayer{out: out}
}

// Play writes the bell pattern for c.
func (p *BellPlayer) Play(ctx context.Context, c workout.Cue) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	n, ok := bellPattern[c]
	if !ok {
		return fmt.Errorf("%s: %w", c, ErrNoSound)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, err := io.WriteString(p.out, strings.Repeat(bel, n)); err != nil {
		return fmt.Errorf("ring bell: %w", err)
	}
	return nil
}

// Unlock is a no-op; the terminal bell needs no preparation.
func (p *BellPlayer) Unlock(ctx context.Context) error {
	return ctx.Err()
}
