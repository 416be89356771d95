// Package lifecycle implements the soft-delete state machine for objects
// that disappear from the identity directory. Objects are marked on every
// cycle they stay missing; after enough marks they become eligible for
// deactivation, and after a grace period for deletion. Reappearing objects
// are reactivated and their counter reset. The tracker holds no file or
// database handle; callers persist Snapshot output themselves.
package lifecycle

import "time"

// Status is the lifecycle state of a tracked item.
type Status string

const (
	// StatusActive marks items that reappeared after being marked.
	StatusActive Status = "active"
	// StatusMarked marks items currently missing from the directory.
	StatusMarked Status = "marked"
	// StatusDeactivated marks items already deactivated downstream.
	StatusDeactivated Status = "deactivated"
	// StatusDeleted marks items already deleted downstream.
	StatusDeleted Status = "deleted"
)

// Item is one tracked object.
type Item struct {
	Identifier  string            `json:"identifier"`
	Kind        string            `json:"kind"`
	FirstMarked time.Time         `json:"first_marked"`
	LastMarked  time.Time         `json:"last_marked"`
	MarkCount   int               `json:"mark_count"`
	Status      Status            `json:"status"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// Config tunes the tracker thresholds.
type Config struct {
	// MarkThreshold is the number of marks before deactivation is due.
	MarkThreshold int
	// GracePeriod is the time after deactivation before deletion is due.
	GracePeriod time.Duration
	// SoftDeleteEnabled gates marking and deactivation entirely.
	SoftDeleteEnabled bool
	// DeleteEnabled gates final deletion.
	DeleteEnabled bool
	// Now overrides the clock, mainly for tests. Defaults to time.Now.
	Now func() time.Time
}

// Tracker is the soft-delete state machine. Not safe for concurrent
// mutation.
type Tracker struct {
	cfg   Config
	items map[string]*Item
}

// NewTracker creates an empty tracker.
func NewTracker(cfg Config) *Tracker {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Tracker{cfg: cfg, items: make(map[string]*Item)}
}

func trackingKey(kind, identifier string) string {
	return kind + ":" + identifier
}

// Mark records that an object is missing from the directory this cycle,
// creating the tracking entry or incrementing its counter.
func (t *Tracker) Mark(identifier, kind string, metadata map[string]string) {
	if !t.cfg.SoftDeleteEnabled {
		return
	}

	now := t.cfg.Now()
	k := trackingKey(kind, identifier)

	if item, ok := t.items[k]; ok {
		item.LastMarked = now
		item.MarkCount++
		for mk, mv := range metadata {
			if item.Metadata == nil {
				item.Metadata = make(map[string]string)
			}
			item.Metadata[mk] = mv
		}
		return
	}

	t.items[k] = &Item{
		Identifier:  identifier,
		Kind:        kind,
		FirstMarked: now,
		LastMarked:  now,
		MarkCount:   1,
		Status:      StatusMarked,
		Metadata:    metadata,
	}
}

// Unmark reactivates an object that reappeared in the directory and
// resets its counter.
func (t *Tracker) Unmark(identifier, kind string) {
	if item, ok := t.items[trackingKey(kind, identifier)]; ok {
		item.Status = StatusActive
		item.MarkCount = 0
	}
}

// Remove drops an object from tracking entirely.
func (t *Tracker) Remove(identifier, kind string) {
	delete(t.items, trackingKey(kind, identifier))
}

// ShouldDeactivate reports whether an object has been missing long enough
// to deactivate: soft delete enabled, not already deactivated, and mark
// count at or past the threshold.
func (t *Tracker) ShouldDeactivate(identifier, kind string) bool {
	if !t.cfg.SoftDeleteEnabled {
		return false
	}
	item, ok := t.items[trackingKey(kind, identifier)]
	if !ok || item.Status == StatusDeactivated {
		return false
	}
	return item.MarkCount >= t.cfg.MarkThreshold
}

// ShouldDelete reports whether a deactivated object's grace period has
// elapsed and deletion is enabled.
func (t *Tracker) ShouldDelete(identifier, kind string) bool {
	if !t.cfg.DeleteEnabled {
		return false
	}
	item, ok := t.items[trackingKey(kind, identifier)]
	if !ok || item.Status != StatusDeactivated {
		return false
	}
	return t.cfg.Now().Sub(item.LastMarked) >= t.cfg.GracePeriod
}

// MarkDeactivated records that the caller deactivated the object
// downstream; the grace period towards deletion starts here.
func (t *Tracker) MarkDeactivated(identifier, kind string) {
	if item, ok := t.items[trackingKey(kind, identifier)]; ok {
		item.Status = StatusDeactivated
		item.LastMarked = t.cfg.Now()
	}
}

// MarkDeleted records that the caller deleted the object downstream.
func (t *Tracker) MarkDeleted(identifier, kind string) {
	if item, ok := t.items[trackingKey(kind, identifier)]; ok {
		item.Status = StatusDeleted
	}
}

// Status returns the lifecycle state of an object, or false if untracked.
func (t *Tracker) Status(identifier, kind string) (Status, bool) {
	item, ok := t.items[trackingKey(kind, identifier)]
	if !ok {
		return "", false
	}
	return item.Status, true
}

// MarkCount returns the object's mark counter, zero when untracked.
func (t *Tracker) MarkCount(identifier, kind string) int {
	if item, ok := t.items[trackingKey(kind, identifier)]; ok {
		return item.MarkCount
	}
	return 0
}

// ItemsToDeactivate lists tracked items due for deactivation. An empty
// kind matches every kind.
func (t *Tracker) ItemsToDeactivate(kind string) []Item {
	return t.filter(kind, t.ShouldDeactivate)
}

// ItemsToDelete lists tracked items due for deletion. An empty kind
// matches every kind.
func (t *Tracker) ItemsToDelete(kind string) []Item {
	return t.filter(kind, t.ShouldDelete)
}

func (t *Tracker) filter(kind string, due func(identifier, kind string) bool) []Item {
	var out []Item
	for _, item := range t.items {
		if kind != "" && item.Kind != kind {
			continue
		}
		if due(item.Identifier, item.Kind) {
			out = append(out, *item)
		}
	}
	return out
}

// Stats summarizes the tracking state for operator visibility.
type Stats struct {
	TotalTracked        int            `json:"total_tracked"`
	ByStatus            map[Status]int `json:"by_status"`
	ByKind              map[string]int `json:"by_kind"`
	PendingDeactivation int            `json:"pending_deactivation"`
	PendingDeletion     int            `json:"pending_deletion"`
}

// GetStats computes tracking statistics.
func (t *Tracker) GetStats() Stats {
	stats := Stats{
		TotalTracked: len(t.items),
		ByStatus:     make(map[Status]int),
		ByKind:       make(map[string]int),
	}
	for _, item := range t.items {
		stats.ByStatus[item.Status]++
		stats.ByKind[item.Kind]++
		if t.ShouldDeactivate(item.Identifier, item.Kind) {
			stats.PendingDeactivation++
		}
		if t.ShouldDelete(item.Identifier, item.Kind) {
			stats.PendingDeletion++
		}
	}
	return stats
}

// CleanupDeleted drops items already deleted downstream and returns how
// many were removed.
func (t *Tracker) CleanupDeleted() int {
	removed := 0
	for k, item := range t.items {
		if item.Status == StatusDeleted {
			delete(t.items, k)
			removed++
		}
	}
	return removed
}

// Reset forgets all tracked items, discarding every pending deactivation
// and deletion.
func (t *Tracker) Reset() {
	t.items = make(map[string]*Item)
}

// Snapshot exports the tracking state for persistence by the caller.
func (t *Tracker) Snapshot() []Item {
	out := make([]Item, 0, len(t.items))
	for _, item := range t.items {
		out = append(out, *item)
	}
	return out
}

// RestoreTracker seeds a tracker from a previously exported snapshot.
func RestoreTracker(cfg Config, items []Item) *Tracker {
	t := NewTracker(cfg)
	for i := range items {
		item := items[i]
		t.items[trackingKey(item.Kind, item.Identifier)] = &item
	}
	return t
}
