// Package detect implements hash-based change detection for directory
// records. The detector hashes a configurable field subset of each record
// and remembers the digest, so a sync cycle can skip records whose
// relevant fields did not move. Persistence of the hash state is the
// caller's job via Snapshot and Restore.
package detect

import (
	"crypto/md5" //nolint:gosec // change detection, not security
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Detector tracks content hashes per object. Not safe for concurrent
// mutation; callers own synchronization like they do for the rest of a
// sync cycle.
type Detector struct {
	hashes map[string]string
}

// New creates an empty detector.
func New() *Detector {
	return &Detector{hashes: make(map[string]string)}
}

// Restore seeds the detector with a previously exported snapshot.
func Restore(snapshot map[string]string) *Detector {
	d := New()
	for k, v := range snapshot {
		d.hashes[k] = v
	}
	return d
}

// Hash computes the digest of the selected fields of obj. Fields absent
// from obj are left out, so adding an always-empty field to the list does
// not invalidate existing hashes. json.Marshal emits map keys in sorted
// order, which keeps the digest canonical.
func Hash(obj map[string]any, fields []string) string {
	selected := make(map[string]any, len(fields))
	for _, f := range fields {
		if v, ok := obj[f]; ok && v != nil {
			selected[f] = v
		}
	}
	data, err := json.Marshal(selected)
	if err != nil {
		// Only unmarshalable values (channels, funcs) land here; fall back
		// to a representation that still changes when the value changes.
		data = []byte(fmt.Sprintf("%v", selected))
	}
	sum := md5.Sum(data) //nolint:gosec // change detection, not security
	return hex.EncodeToString(sum[:])
}

func key(kind, id string) string {
	return kind + ":" + id
}

// HasChanged reports whether obj is new or its selected fields changed
// since the last call, and records the new digest either way.
func (d *Detector) HasChanged(kind, id string, obj map[string]any, fields []string) bool {
	k := key(kind, id)
	newHash := Hash(obj, fields)
	if d.hashes[k] == newHash {
		return false
	}
	d.hashes[k] = newHash
	return true
}

// MarkDeleted drops the stored digest for a removed object.
func (d *Detector) MarkDeleted(kind, id string) {
	delete(d.hashes, key(kind, id))
}

// Snapshot exports the hash state for persistence by the caller.
func (d *Detector) Snapshot() map[string]string {
	out := make(map[string]string, len(d.hashes))
	for k, v := range d.hashes {
		out[k] = v
	}
	return out
}

// Len returns the number of tracked objects.
func (d *Detector) Len() int {
	return len(d.hashes)
}

// Reset forgets all stored digests, forcing a full resync.
func (d *Detector) Reset() {
	d.hashes = make(map[string]string)
}
