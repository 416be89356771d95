package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testClock is a manually advanced clock for deterministic grace periods.
type testClock struct {
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time          { return c.now }
func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func testTracker(clock *testClock) *Tracker {
	return NewTracker(Config{
		MarkThreshold:     3,
		GracePeriod:       7 * 24 * time.Hour,
		SoftDeleteEnabled: true,
		DeleteEnabled:     true,
		Now:               clock.Now,
	})
}

func TestTracker_MarkAndUnmark(t *testing.T) {
	clock := newTestClock()
	tr := testTracker(clock)

	tr.Mark("10a-students", "group", map[string]string{"course": "K10A"})
	status, ok := tr.Status("10a-students", "group")
	require.True(t, ok)
	assert.Equal(t, StatusMarked, status)
	assert.Equal(t, 1, tr.MarkCount("10a-students", "group"))

	clock.Advance(24 * time.Hour)
	tr.Mark("10a-students", "group", map[string]string{"seen": "cycle2"})
	assert.Equal(t, 2, tr.MarkCount("10a-students", "group"))

	tr.Unmark("10a-students", "group")
	status, _ = tr.Status("10a-students", "group")
	assert.Equal(t, StatusActive, status)
	assert.Equal(t, 0, tr.MarkCount("10a-students", "group"))
}

func TestTracker_DeactivationThreshold(t *testing.T) {
	clock := newTestClock()
	tr := testTracker(clock)

	for i := 0; i < 2; i++ {
		tr.Mark("10a-students", "group", nil)
		clock.Advance(24 * time.Hour)
	}
	assert.False(t, tr.ShouldDeactivate("10a-students", "group"), "below threshold")

	tr.Mark("10a-students", "group", nil)
	assert.True(t, tr.ShouldDeactivate("10a-students", "group"))

	tr.MarkDeactivated("10a-students", "group")
	assert.False(t, tr.ShouldDeactivate("10a-students", "group"), "already deactivated")
	status, _ := tr.Status("10a-students", "group")
	assert.Equal(t, StatusDeactivated, status)
}

func TestTracker_DeletionGracePeriod(t *testing.T) {
	clock := newTestClock()
	tr := testTracker(clock)

	for i := 0; i < 3; i++ {
		tr.Mark("10a-students", "group", nil)
	}
	assert.False(t, tr.ShouldDelete("10a-students", "group"), "not deactivated yet")

	tr.MarkDeactivated("10a-students", "group")

	clock.Advance(6 * 24 * time.Hour)
	assert.False(t, tr.ShouldDelete("10a-students", "group"), "grace period still running")

	clock.Advance(24 * time.Hour)
	assert.True(t, tr.ShouldDelete("10a-students", "group"))

	tr.MarkDeleted("10a-students", "group")
	assert.False(t, tr.ShouldDelete("10a-students", "group"))
	status, _ := tr.Status("10a-students", "group")
	assert.Equal(t, StatusDeleted, status)
}

func TestTracker_DisabledGates(t *testing.T) {
	clock := newTestClock()

	t.Run("soft delete disabled ignores marks", func(t *testing.T) {
		tr := NewTracker(Config{SoftDeleteEnabled: false, Now: clock.Now})
		tr.Mark("10a-students", "group", nil)
		_, ok := tr.Status("10a-students", "group")
		assert.False(t, ok)
		assert.False(t, tr.ShouldDeactivate("10a-students", "group"))
	})

	t.Run("delete disabled never schedules deletion", func(t *testing.T) {
		tr := NewTracker(Config{
			MarkThreshold:     1,
			SoftDeleteEnabled: true,
			DeleteEnabled:     false,
			Now:               clock.Now,
		})
		tr.Mark("10a-students", "group", nil)
		tr.MarkDeactivated("10a-students", "group")
		clock.Advance(365 * 24 * time.Hour)
		assert.False(t, tr.ShouldDelete("10a-students", "group"))
	})
}

func TestTracker_ItemsToDeactivateAndDelete(t *testing.T) {
	clock := newTestClock()
	tr := testTracker(clock)

	for i := 0; i < 3; i++ {
		tr.Mark("10a-students", "group", nil)
		tr.Mark("jdoe", "user", nil)
	}
	tr.Mark("p_theater", "group", nil)

	due := tr.ItemsToDeactivate("group")
	require.Len(t, due, 1)
	assert.Equal(t, "10a-students", due[0].Identifier)

	assert.Len(t, tr.ItemsToDeactivate(""), 2, "empty kind matches every kind")

	tr.MarkDeactivated("jdoe", "user")
	clock.Advance(8 * 24 * time.Hour)
	deletable := tr.ItemsToDelete("")
	require.Len(t, deletable, 1)
	assert.Equal(t, "jdoe", deletable[0].Identifier)
}

func TestTracker_Stats(t *testing.T) {
	clock := newTestClock()
	tr := testTracker(clock)

	for i := 0; i < 3; i++ {
		tr.Mark("10a-students", "group", nil)
	}
	tr.Mark("jdoe", "user", nil)
	tr.Mark("p_theater", "group", nil)
	tr.MarkDeactivated("p_theater", "group")

	stats := tr.GetStats()
	assert.Equal(t, 3, stats.TotalTracked)
	assert.Equal(t, 2, stats.ByStatus[StatusMarked])
	assert.Equal(t, 1, stats.ByStatus[StatusDeactivated])
	assert.Equal(t, 2, stats.ByKind["group"])
	assert.Equal(t, 1, stats.PendingDeactivation)
	assert.Equal(t, 0, stats.PendingDeletion)
}

func TestTracker_CleanupDeleted(t *testing.T) {
	clock := newTestClock()
	tr := testTracker(clock)

	tr.Mark("10a-students", "group", nil)
	tr.Mark("jdoe", "user", nil)
	tr.MarkDeleted("jdoe", "user")

	assert.Equal(t, 1, tr.CleanupDeleted())
	_, ok := tr.Status("jdoe", "user")
	assert.False(t, ok)
	_, ok = tr.Status("10a-students", "group")
	assert.True(t, ok)
}

func TestTracker_Reset(t *testing.T) {
	clock := newTestClock()
	tr := testTracker(clock)

	for i := 0; i < 3; i++ {
		tr.Mark("10a-students", "group", nil)
	}
	tr.Mark("jdoe", "user", nil)
	require.True(t, tr.ShouldDeactivate("10a-students", "group"))

	tr.Reset()

	assert.Zero(t, tr.GetStats().TotalTracked)
	_, ok := tr.Status("10a-students", "group")
	assert.False(t, ok)
	assert.False(t, tr.ShouldDeactivate("10a-students", "group"))
	assert.Empty(t, tr.Snapshot())

	// The tracker stays usable after a reset.
	tr.Mark("jdoe", "user", nil)
	assert.Equal(t, 1, tr.MarkCount("jdoe", "user"))
}

func TestTracker_SnapshotRestore(t *testing.T) {
	clock := newTestClock()
	tr := testTracker(clock)

	for i := 0; i < 3; i++ {
		tr.Mark("10a-students", "group", map[string]string{"course": "K10A"})
	}

	restored := RestoreTracker(Config{
		MarkThreshold:     3,
		GracePeriod:       7 * 24 * time.Hour,
		SoftDeleteEnabled: true,
		DeleteEnabled:     true,
		Now:               clock.Now,
	}, tr.Snapshot())

	assert.Equal(t, 3, restored.MarkCount("10a-students", "group"))
	assert.True(t, restored.ShouldDeactivate("10a-students", "group"))

	item := restored.Snapshot()[0]
	assert.Equal(t, "K10A", item.Metadata["course"])
	assert.Equal(t, StatusMarked, item.Status)
}
