package callouts

import "testing"

type recordingHistoryDelegate struct {
	inserted []Callout
	removed  []Callout
	cleared  int
}

func (d *recordingHistoryDelegate) OnCalloutInserted(callout Callout) {
	d.inserted = append(d.inserted, callout)
}

func (d *recordingHistoryDelegate) OnCalloutRemoved(callout Callout) {
	d.removed = append(d.removed, callout)
}

func (d *recordingHistoryDelegate) OnHistoryCleared() { d.cleared++ }

func TestHistoryEvictsOldestFirst(t *testing.T) {
	delegate := &recordingHistoryDelegate{}
	history := NewHistory(3, WithHistoryDelegate(delegate))

	a := NewAnnouncementCallout("A", WithHistory())
	b := NewAnnouncementCallout("B", WithHistory())
	c := NewAnnouncementCallout("C", WithHistory())
	d := NewAnnouncementCallout("D", WithHistory())

	for _, callout := range []Callout{a, b, c, d} {
		history.Insert(callout)
	}

	entries := history.Callouts()
	if len(entries) != 3 {
		t.Fatalf("expected history length 3, got %d", len(entries))
	}
	for i, expected := range []Callout{b, c, d} {
		if entries[i].ID() != expected.ID() {
			t.Fatalf("expected entry %d to be %q, got %q", i, expected.ID(), entries[i].ID())
		}
	}

	if len(delegate.removed) != 1 || delegate.removed[0].ID() != a.ID() {
		t.Fatalf("expected exactly one removal notification for the oldest entry")
	}
	if len(delegate.inserted) != 4 {
		t.Fatalf("expected 4 insertion notifications, got %d", len(delegate.inserted))
	}
}

func TestHistoryNeverExceedsBound(t *testing.T) {
	history := NewHistory(2)

	for i := 0; i < 10; i++ {
		history.Insert(NewAnnouncementCallout("x", WithHistory()))
		if history.Len() > 2 {
			t.Fatalf("history exceeded bound after insert %d: %d entries", i, history.Len())
		}
	}
}

func TestHistoryAllowsDuplicates(t *testing.T) {
	history := NewHistory(5)
	callout := NewAnnouncementCallout("repeat me", WithHistory())

	history.Insert(callout)
	history.Insert(callout)

	if history.Len() != 2 {
		t.Fatalf("expected duplicates to both be recorded, got %d entries", history.Len())
	}
}

func TestHistoryClearNotifiesOnce(t *testing.T) {
	delegate := &recordingHistoryDelegate{}
	history := NewHistory(3, WithHistoryDelegate(delegate))

	history.Clear()
	if delegate.cleared != 0 {
		t.Fatalf("expected no clear notification on an empty history")
	}

	history.Insert(NewAnnouncementCallout("A", WithHistory()))
	history.Clear()

	if delegate.cleared != 1 {
		t.Fatalf("expected one clear notification, got %d", delegate.cleared)
	}
	if history.Len() != 0 {
		t.Fatalf("expected empty history after clear, got %d entries", history.Len())
	}
}
