package services

import (
	"testing"

	types "github.com/ngocanhdo/engkids-backend/internal/domain"
)

func cp(token string, at float64) types.CheckpointItem {
	return types.CheckpointItem{Token: token, TimeSec: at, Kind: types.CheckpointVocab}
}

func assertSorted(t *testing.T, tl *Timeline) {
	t.Helper()
	items := tl.Items()
	for i := 1; i < len(items); i++ {
		if items[i-1].TimeSec > items[i].TimeSec {
			t.Fatalf("timeline out of order at %d: %f > %f", i, items[i-1].TimeSec, items[i].TimeSec)
		}
	}
}

func TestTimelineStaysSorted(t *testing.T) {
	tl := NewTimeline([]types.CheckpointItem{cp("c", 30), cp("a", 5), cp("b", 12)})
	assertSorted(t, tl)

	tl.Upsert(cp("d", 1))
	assertSorted(t, tl)
	if tl.Items()[0].Token != "d" {
		t.Fatalf("expected d first, got %s", tl.Items()[0].Token)
	}

	// moving an existing checkpoint re-sorts
	tl.Upsert(cp("a", 40))
	assertSorted(t, tl)
	items := tl.Items()
	if items[len(items)-1].Token != "a" {
		t.Fatalf("expected a last after move, got %s", items[len(items)-1].Token)
	}
	if tl.Len() != 4 {
		t.Fatalf("upsert by existing token must replace, want len=4 got=%d", tl.Len())
	}
}

func TestTimelineNextInWindow(t *testing.T) {
	tl := NewTimeline([]types.CheckpointItem{cp("a", 5), cp("b", 10), cp("c", 10.2)})

	// half-open window: checkpoint exactly at the lower bound is excluded
	if _, ok := tl.NextInWindow(5, 9, ""); ok {
		t.Fatal("checkpoint at lower bound must not match")
	}

	hit, ok := tl.NextInWindow(9, 10.25, "")
	if !ok || hit.Token != "b" {
		t.Fatalf("want b, got ok=%v token=%s", ok, hit.Token)
	}

	// skip token steps to the next checkpoint in the window
	hit, ok = tl.NextInWindow(9, 10.25, "b")
	if !ok || hit.Token != "c" {
		t.Fatalf("want c when b is skipped, got ok=%v token=%s", ok, hit.Token)
	}

	if _, ok := tl.NextInWindow(11, 12, ""); ok {
		t.Fatal("empty window must not match")
	}
}

func TestTimelineRemove(t *testing.T) {
	tl := NewTimeline([]types.CheckpointItem{cp("a", 5), cp("b", 10)})
	if !tl.Remove("a") {
		t.Fatal("expected remove to report true for existing token")
	}
	if tl.Remove("a") {
		t.Fatal("expected remove to report false for missing token")
	}
	if tl.Len() != 1 {
		t.Fatalf("want len=1 got=%d", tl.Len())
	}
	if _, ok := tl.Get("a"); ok {
		t.Fatal("a should be gone")
	}
}
