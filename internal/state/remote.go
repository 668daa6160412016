package state

import (
	"log"
	"sync"
)

// RemoteStrokes holds the strokes committed by peers. Remote strokes never
// enter the local StrokePool.
type RemoteStrokes struct {
	order []string
	byID  map[string]Stroke
	mu    sync.RWMutex
}

func NewRemoteStrokes() *RemoteStrokes {
	return &RemoteStrokes{byID: make(map[string]Stroke)}
}

// Add stores s and reports whether it was new.
func (rs *RemoteStrokes) Add(s Stroke) bool {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if _, exists := rs.byID[s.ID]; exists {
		log.Printf("[REMOTE] Stroke %s already exists, ignoring", s.ID)
		return false
	}
	rs.byID[s.ID] = s
	rs.order = append(rs.order, s.ID)
	return true
}

// ClearSite removes every stroke owned by site and returns how many were
// dropped.
func (rs *RemoteStrokes) ClearSite(site string) int {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	kept := rs.order[:0]
	removed := 0
	for _, id := range rs.order {
		if rs.byID[id].Site == site {
			delete(rs.byID, id)
			removed++
			continue
		}
		kept = append(kept, id)
	}
	rs.order = kept
	return removed
}

// All returns the stored strokes in arrival order.
func (rs *RemoteStrokes) All() []Stroke {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	out := make([]Stroke, 0, len(rs.order))
	for _, id := range rs.order {
		out = append(out, rs.byID[id])
	}
	return out
}

// Len returns the number of stored strokes.
func (rs *RemoteStrokes) Len() int {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	return len(rs.order)
}
