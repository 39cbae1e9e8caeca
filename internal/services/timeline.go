package services

import (
	"sort"

	types "github.com/ngocanhdo/engkids-backend/internal/domain"
)

// Timeline holds a lesson version's checkpoints sorted non-decreasing by
// TimeSec. Sorting is the container's invariant: every mutation restores it,
// so window scans never need a defensive re-sort.
type Timeline struct {
	items []types.CheckpointItem
}

func NewTimeline(items []types.CheckpointItem) *Timeline {
	t := &Timeline{items: append([]types.CheckpointItem(nil), items...)}
	t.restore()
	return t
}

func (t *Timeline) restore() {
	sort.SliceStable(t.items, func(i, j int) bool {
		return t.items[i].TimeSec < t.items[j].TimeSec
	})
}

func (t *Timeline) Len() int { return len(t.items) }

// Items returns a copy; callers cannot break the ordering invariant.
func (t *Timeline) Items() []types.CheckpointItem {
	return append([]types.CheckpointItem(nil), t.items...)
}

func (t *Timeline) Get(token string) (types.CheckpointItem, bool) {
	for _, it := range t.items {
		if it.Token == token {
			return it, true
		}
	}
	return types.CheckpointItem{}, false
}

// Upsert replaces the checkpoint with the same token or inserts a new one,
// then restores ordering.
func (t *Timeline) Upsert(item types.CheckpointItem) {
	for i := range t.items {
		if t.items[i].Token == item.Token {
			t.items[i] = item
			t.restore()
			return
		}
	}
	t.items = append(t.items, item)
	t.restore()
}

func (t *Timeline) Remove(token string) bool {
	for i := range t.items {
		if t.items[i].Token == token {
			t.items = append(t.items[:i], t.items[i+1:]...)
			return true
		}
	}
	return false
}

// NextInWindow returns the first checkpoint inside the half-open playback
// window (after, until], skipping the one identified by skipToken. Relies on
// the ordering invariant: the first hit is the earliest.
func (t *Timeline) NextInWindow(after, until float64, skipToken string) (types.CheckpointItem, bool) {
	for _, it := range t.items {
		if it.TimeSec <= after {
			continue
		}
		if it.TimeSec > until {
			break
		}
		if it.Token == skipToken {
			continue
		}
		return it, true
	}
	return types.CheckpointItem{}, false
}
