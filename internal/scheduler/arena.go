package scheduler

import (
	"sort"
	"time"

	"github.com/timeblock-app/timeblock/internal/models"
)

// arena is the schedule cache: an indexed store of TimeBlockInfo keyed by
// block id with a secondary index by task id. It is the single source of
// truth for what is already busy. The owning Scheduler serializes access;
// the arena itself does no locking.
type arena struct {
	blocks map[string]models.TimeBlockInfo
	byTask map[string][]string
	order  []string // insertion order of block ids
}

func newArena() *arena {
	return &arena{
		blocks: make(map[string]models.TimeBlockInfo),
		byTask: make(map[string][]string),
	}
}

func (a *arena) add(b models.TimeBlockInfo) {
	if _, exists := a.blocks[b.ID]; !exists {
		a.order = append(a.order, b.ID)
		a.byTask[b.TaskID] = append(a.byTask[b.TaskID], b.ID)
	}
	a.blocks[b.ID] = b
}

func (a *arena) get(id string) (models.TimeBlockInfo, bool) {
	b, ok := a.blocks[id]
	return b, ok
}

// countForTask returns how many blocks the task currently has cached. New
// block ids continue from this count so a repeated scheduling call never
// collides with an earlier placement.
func (a *arena) countForTask(taskID string) int {
	return len(a.byTask[taskID])
}

// removeTask deletes every block belonging to the task and returns how many
// were removed. Removal by task id is the only supported bulk deletion.
func (a *arena) removeTask(taskID string) int {
	ids := a.byTask[taskID]
	if len(ids) == 0 {
		return 0
	}
	removed := make(map[string]bool, len(ids))
	for _, id := range ids {
		delete(a.blocks, id)
		removed[id] = true
	}
	delete(a.byTask, taskID)

	kept := a.order[:0]
	for _, id := range a.order {
		if !removed[id] {
			kept = append(kept, id)
		}
	}
	a.order = kept
	return len(ids)
}

func (a *arena) markCompleted(id string) bool {
	b, ok := a.blocks[id]
	if !ok {
		return false
	}
	b.IsCompleted = true
	a.blocks[id] = b
	return true
}

func (a *arena) forTask(taskID string) []models.TimeBlockInfo {
	ids := a.byTask[taskID]
	out := make([]models.TimeBlockInfo, 0, len(ids))
	for _, id := range ids {
		out = append(out, a.blocks[id])
	}
	sortByStart(out)
	return out
}

// inRange returns all blocks overlapping [start, end), sorted by start.
func (a *arena) inRange(start, end time.Time) []models.TimeBlockInfo {
	var out []models.TimeBlockInfo
	for _, id := range a.order {
		b := a.blocks[id]
		if b.Start.Before(end) && start.Before(b.End) {
			out = append(out, b)
		}
	}
	sortByStart(out)
	return out
}

func (a *arena) all() []models.TimeBlockInfo {
	out := make([]models.TimeBlockInfo, 0, len(a.order))
	for _, id := range a.order {
		out = append(out, a.blocks[id])
	}
	sortByStart(out)
	return out
}

func (a *arena) len() int { return len(a.blocks) }

func sortByStart(blocks []models.TimeBlockInfo) {
	sort.SliceStable(blocks, func(i, j int) bool {
		return blocks[i].Start.Before(blocks[j].Start)
	})
}
