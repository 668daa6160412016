// Package capture turns pointer input into strokes stored in a fixed pool
// of reusable stroke buffers.
//
// A StrokeCapture is driven from a single goroutine (the host's input or
// frame loop) and performs no locking. Each stroke is a pointer-down, any
// number of pointer-moves and a pointer-up. Moves closer than MinDistance
// to the last accepted point are dropped; on release a stroke with more
// than MinPoints points is committed and the cursor advances, anything
// shorter is discarded. When every buffer holds a committed stroke, the
// next pointer-down clears the whole pool and starts over at buffer 0.
package capture

import (
	"fmt"

	"StrokeBoard/internal/state"
)

var (
	ErrConfig = state.ErrConfig
	ErrIndex  = state.ErrIndex
)

type State int

const (
	// Idle means no pointer-down is open.
	Idle State = iota
	// Drawing means the buffer at the cursor is accumulating points.
	Drawing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Drawing:
		return "drawing"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Projector maps a raw pointer position to canvas space.
type Projector interface {
	Project(raw state.Point) state.Point
}

// ProjectorFunc adapts a function to the Projector interface.
type ProjectorFunc func(raw state.Point) state.Point

func (f ProjectorFunc) Project(raw state.Point) state.Point { return f(raw) }

// Frame is one tick of polled pointer state for the primary button.
type Frame struct {
	Pressed  bool // went down this tick
	Held     bool // is down this tick
	Released bool // went up this tick
	Pos      state.Point
}

type StrokeCapture struct {
	cfg     Config
	project Projector
	pool    *state.StrokePool
	setup   error
	state   State
	enabled bool

	// OnCommit is called after a stroke is committed with the index of its
	// buffer and a copy of its points.
	OnCommit func(index int, points []state.Point)
	// OnClear is called whenever the pool is emptied: by ClearAll and by
	// the wrap when a stroke starts on a full pool.
	OnClear func()
}

// New builds a capture over cfg.PoolSize buffers bound to targets, one
// target per buffer. Construction never fails; problems with cfg, project
// or targets are reported by Validate. Input starts enabled.
func New(cfg Config, project Projector, targets []state.LineRenderer) *StrokeCapture {
	c := &StrokeCapture{cfg: cfg, project: project, enabled: true}
	if err := cfg.Validate(); err != nil {
		c.setup = err
		return c
	}
	pool, err := state.NewStrokePool(cfg.PoolSize)
	if err != nil {
		c.setup = err
		return c
	}
	c.pool = pool
	if len(targets) == 0 {
		c.setup = fmt.Errorf("%w: no render targets", ErrConfig)
		return c
	}
	c.setup = pool.Bind(targets)
	return c
}

// Validate reports whether the capture has everything it needs to accept
// input. Every failure wraps ErrConfig.
func (c *StrokeCapture) Validate() error {
	if c.project == nil {
		return fmt.Errorf("%w: no canvas projection", ErrConfig)
	}
	return c.setup
}

// Start validates the capture and disables input when validation fails.
// The host keeps running either way.
func (c *StrokeCapture) Start() error {
	err := c.Validate()
	if err != nil {
		Logger().Error("stroke capture disabled", "err", err)
		c.SetInputEnabled(false)
	}
	return err
}

// SetInputEnabled turns the pointer handlers on or off. Disabling keeps any
// stroke in progress as it is.
func (c *StrokeCapture) SetInputEnabled(enabled bool) {
	if c.enabled != enabled {
		Logger().Info("stroke input toggled", "enabled", enabled)
	}
	c.enabled = enabled
}

func (c *StrokeCapture) InputEnabled() bool { return c.enabled }

// State returns the current capture state.
func (c *StrokeCapture) State() State { return c.state }

// Config returns the settings the capture was built with.
func (c *StrokeCapture) Config() Config { return c.cfg }

// Pool returns the stroke pool, or nil when it could not be allocated.
func (c *StrokeCapture) Pool() *state.StrokePool { return c.pool }

func (c *StrokeCapture) accepting() bool {
	return c.enabled && c.pool != nil && c.project != nil
}

// OnPointerDown starts a stroke at raw. It is ignored while a stroke is
// already open.
func (c *StrokeCapture) OnPointerDown(raw state.Point) {
	if !c.accepting() || c.state != Idle {
		return
	}
	if c.pool.Full() {
		Logger().Info("stroke pool full, clearing", "size", c.pool.Size())
		c.clear()
	}
	b, err := c.pool.Current()
	if err != nil {
		Logger().Error("pointer down", "err", err)
		return
	}
	b.Show()
	b.Append(c.project.Project(raw))
	c.state = Drawing
}

// OnPointerMove appends raw to the open stroke when it lies farther than
// MinDistance from the last accepted point.
func (c *StrokeCapture) OnPointerMove(raw state.Point) {
	if !c.accepting() || c.state != Drawing {
		return
	}
	b, err := c.pool.Current()
	if err != nil {
		Logger().Error("pointer move", "err", err)
		return
	}
	last, ok := b.Last()
	if !ok {
		// ClearAll emptied the open stroke.
		return
	}
	p := c.project.Project(raw)
	if p.Dist(last) > c.cfg.MinDistance {
		b.Append(p)
		Logger().Debug("point accepted", "x", p.X, "y", p.Y, "count", b.Len())
	}
}

// OnPointerUp closes the open stroke, committing it when it has more than
// MinPoints points and discarding it otherwise. raw is not recorded.
func (c *StrokeCapture) OnPointerUp(raw state.Point) {
	if !c.accepting() || c.state != Drawing {
		return
	}
	c.state = Idle

	b, err := c.pool.Current()
	if err != nil {
		Logger().Error("pointer up", "err", err)
		return
	}
	if b.Len() <= c.cfg.MinPoints {
		Logger().Debug("stroke discarded", "points", b.Len(), "min", c.cfg.MinPoints)
		if err := c.pool.ResetCurrent(); err != nil {
			Logger().Error("pointer up", "err", err)
		}
		return
	}

	index, points := c.pool.Cursor(), b.Points()
	if err := c.pool.Advance(); err != nil {
		Logger().Error("pointer up", "err", err)
		return
	}
	Logger().Info("stroke committed", "index", index, "points", len(points))
	if c.OnCommit != nil {
		c.OnCommit(index, points)
	}
}

// Tick applies one frame of polled input: down, then move, then up, each
// checked on its own.
func (c *StrokeCapture) Tick(f Frame) {
	if f.Pressed {
		c.OnPointerDown(f.Pos)
	}
	if f.Held {
		c.OnPointerMove(f.Pos)
	}
	if f.Released {
		c.OnPointerUp(f.Pos)
	}
}

// ClearAll hides and empties every buffer and moves the cursor to 0. The
// capture state is left untouched, so a stroke open at the time keeps
// Drawing into an empty, hidden buffer.
func (c *StrokeCapture) ClearAll() {
	if c.pool == nil {
		return
	}
	Logger().Info("strokes cleared", "state", c.state)
	c.clear()
}

func (c *StrokeCapture) clear() {
	c.pool.ResetAll()
	if c.OnClear != nil {
		c.OnClear()
	}
}

// ResetCurrent discards whatever the buffer at the cursor holds.
func (c *StrokeCapture) ResetCurrent() error {
	if c.pool == nil {
		return fmt.Errorf("%w: no stroke pool", ErrIndex)
	}
	return c.pool.ResetCurrent()
}

// Committed returns copies of the committed strokes still in the pool, in
// the order they were drawn.
func (c *StrokeCapture) Committed() [][]state.Point {
	if c.pool == nil {
		return nil
	}
	out := make([][]state.Point, 0, c.pool.Cursor())
	for i := 0; i < c.pool.Cursor(); i++ {
		b, err := c.pool.Buffer(i)
		if err != nil {
			break
		}
		out = append(out, b.Points())
	}
	return out
}
