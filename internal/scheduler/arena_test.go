package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArena_AddIsIdempotentPerID(t *testing.T) {
	a := newArena()
	base := monday.Add(time.Hour)

	a.add(blockAt("x-0", "x", base, 30))
	a.add(blockAt("x-0", "x", base.Add(time.Hour), 30)) // same id, new placement

	assert.Equal(t, 1, a.len())
	b, ok := a.get("x-0")
	require.True(t, ok)
	assert.Equal(t, base.Add(time.Hour), b.Start, "re-add replaces the placement")
	assert.Len(t, a.forTask("x"), 1)
}

func TestArena_RemoveTask(t *testing.T) {
	a := newArena()
	base := monday.Add(time.Hour)

	a.add(blockAt("x-0", "x", base, 30))
	a.add(blockAt("x-1", "x", base.Add(time.Hour), 30))
	a.add(blockAt("y-0", "y", base.Add(2*time.Hour), 30))

	assert.Equal(t, 2, a.removeTask("x"))
	assert.Equal(t, 1, a.len())
	assert.Empty(t, a.forTask("x"))
	assert.Len(t, a.forTask("y"), 1)

	assert.Zero(t, a.removeTask("x"))
	assert.Zero(t, a.removeTask("never"))
}

func TestArena_InRangeIsHalfOpen(t *testing.T) {
	a := newArena()
	base := monday.Add(time.Hour) // 09:00
	a.add(blockAt("x-0", "x", base, 60))

	// Query ending exactly at the block start excludes it; query starting
	// exactly at the block end excludes it too.
	assert.Empty(t, a.inRange(base.Add(-time.Hour), base))
	assert.Empty(t, a.inRange(base.Add(time.Hour), base.Add(2*time.Hour)))
	assert.Len(t, a.inRange(base.Add(30*time.Minute), base.Add(31*time.Minute)), 1)
	assert.Len(t, a.inRange(base.Add(-time.Minute), base.Add(time.Minute)), 1)
}

func TestArena_AllSortedByStart(t *testing.T) {
	a := newArena()
	base := monday.Add(time.Hour)

	a.add(blockAt("late", "x", base.Add(3*time.Hour), 30))
	a.add(blockAt("early", "y", base, 30))
	a.add(blockAt("mid", "z", base.Add(time.Hour), 30))

	all := a.all()
	require.Len(t, all, 3)
	assert.Equal(t, "early", all[0].ID)
	assert.Equal(t, "mid", all[1].ID)
	assert.Equal(t, "late", all[2].ID)
}

func TestArena_MarkCompleted(t *testing.T) {
	a := newArena()
	a.add(blockAt("x-0", "x", monday, 30))

	assert.True(t, a.markCompleted("x-0"))
	b, _ := a.get("x-0")
	assert.True(t, b.IsCompleted)

	assert.False(t, a.markCompleted("missing"))
}
