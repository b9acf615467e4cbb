package realtime

import (
	"testing"
	"time"
)

func TestTrackerKeepsOneEntryPerConnection(t *testing.T) {
	tr := NewTracker()
	t0 := time.Now()
	t1 := t0.Add(time.Second)

	tr.RecordEdit("x", "c1", "Alice", t0)
	tr.RecordEdit("x", "c1", "Alice", t1)

	got := tr.Snapshot("x")
	if len(got) != 1 {
		t.Fatalf("snapshot length = %d, want 1", len(got))
	}
	if !got[0].Timestamp.Equal(t1) {
		t.Fatalf("entry timestamp = %v, want the later edit %v", got[0].Timestamp, t1)
	}
}

func TestTrackerOrdersByMostRecentEdit(t *testing.T) {
	tr := NewTracker()
	t0 := time.Now()

	tr.RecordEdit("x", "c1", "Alice", t0)
	tr.RecordEdit("x", "c2", "Bob", t0.Add(time.Second))

	got := tr.Snapshot("x")
	if len(got) != 2 {
		t.Fatalf("snapshot length = %d, want 2", len(got))
	}
	if got[0].SocketID != "c1" || got[1].SocketID != "c2" {
		t.Fatalf("order = [%s, %s], want [c1, c2]", got[0].SocketID, got[1].SocketID)
	}

	// A second edit moves the connection's entry to the end.
	tr.RecordEdit("x", "c1", "Alice", t0.Add(2*time.Second))
	got = tr.Snapshot("x")
	if len(got) != 2 {
		t.Fatalf("snapshot length after re-edit = %d, want 2", len(got))
	}
	if got[0].SocketID != "c2" || got[1].SocketID != "c1" {
		t.Fatalf("order after re-edit = [%s, %s], want [c2, c1]", got[0].SocketID, got[1].SocketID)
	}
}

func TestTrackerRoomsAreIndependent(t *testing.T) {
	tr := NewTracker()
	now := time.Now()

	tr.RecordEdit("x", "c1", "Alice", now)
	tr.RecordEdit("y", "c1", "Alice", now)

	if len(tr.Snapshot("x")) != 1 || len(tr.Snapshot("y")) != 1 {
		t.Fatal("edits leaked across rooms")
	}
	if got := tr.Snapshot("unknown"); len(got) != 0 {
		t.Fatalf("unknown room snapshot = %v", got)
	}
}

func TestTrackerSnapshotIsACopy(t *testing.T) {
	tr := NewTracker()
	tr.RecordEdit("x", "c1", "Alice", time.Now())

	snap := tr.Snapshot("x")
	snap[0].SocketID = "mutated"

	if got := tr.Snapshot("x"); got[0].SocketID != "c1" {
		t.Fatal("snapshot aliases internal state")
	}
}

func TestTrackerDropRoom(t *testing.T) {
	tr := NewTracker()
	tr.RecordEdit("x", "c1", "Alice", time.Now())

	tr.DropRoom("x")
	if got := tr.Snapshot("x"); len(got) != 0 {
		t.Fatalf("snapshot after drop = %v", got)
	}
}
