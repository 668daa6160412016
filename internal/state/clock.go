package state

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Sequencer stamps local operations with this session's site id and a
// Lamport timestamp.
type Sequencer struct {
	site    string
	lamport atomic.Uint64
	now     func() time.Time
}

func NewSequencer() *Sequencer {
	return &Sequencer{site: uuid.NewString(), now: time.Now}
}

// Site returns the session's site id.
func (s *Sequencer) Site() string { return s.site }

// Stamp assigns the next Lamport value and the local site to op.
func (s *Sequencer) Stamp(op Op) Op {
	op.Lamport = s.lamport.Add(1)
	op.Site = s.site
	return op
}

// Observe moves the clock forward to at least l.
func (s *Sequencer) Observe(l uint64) {
	for {
		cur := s.lamport.Load()
		if l <= cur || s.lamport.CompareAndSwap(cur, l) {
			return
		}
	}
}

// NewStroke wraps points into a stroke owned by this site.
func (s *Sequencer) NewStroke(points []Point) Stroke {
	return Stroke{
		ID:     uuid.NewString(),
		Site:   s.site,
		Points: points,
		Time:   s.now(),
	}
}
