package state

import (
	"errors"
	"math"
	"time"
)

var (
	// ErrConfig reports a missing collaborator or an invalid capture setting.
	ErrConfig = errors.New("state: invalid configuration")
	// ErrIndex reports a cursor outside the pool. It signals a programming
	// defect, never a user-recoverable condition.
	ErrIndex = errors.New("state: pool index out of range")
)

// Point is a 2D coordinate in canvas space.
type Point struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

// Dist returns the euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(float64(p.X-q.X), float64(p.Y-q.Y))
}

// Stroke is a finished stroke as seen outside the pool: a committed
// buffer snapshot or a stroke received from a peer.
type Stroke struct {
	ID     string    `json:"id"`
	Site   string    `json:"site"`
	Points []Point   `json:"points"`
	Time   time.Time `json:"time"`
}

type OpType string

const (
	OpInsertStroke OpType = "insert_stroke"
	OpClear        OpType = "clear"
)

type Op struct {
	Type    OpType  `json:"type"`
	Stroke  *Stroke `json:"stroke,omitempty"`
	Lamport uint64  `json:"lamport"`
	Site    string  `json:"site"`
}
