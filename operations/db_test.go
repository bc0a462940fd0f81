package operations_test

import (
	"testing"
	"time"

	"github.com/CorrelAid/function_relay/inits"
	"github.com/CorrelAid/function_relay/models"
	"github.com/CorrelAid/function_relay/operations"
	"github.com/hashicorp/go-memdb"
)

func newDB(t *testing.T) *memdb.MemDB {
	t.Helper()
	db, err := inits.DBInit()
	if err != nil {
		t.Fatalf("DBInit: %v", err)
	}
	return db
}

func TestInsertRelay(t *testing.T) {
	db := newDB(t)
	now := time.Date(2026, 2, 25, 12, 0, 0, 0, time.UTC)

	relay, err := operations.InsertRelay(db, models.OperationImage, "cat.png", models.OutcomeRelayed, now, 2*time.Hour)
	if err != nil {
		t.Fatalf("InsertRelay: %v", err)
	}

	if relay.ID == "" {
		t.Error("expected an ID")
	}
	if relay.Time != "2026-02-25T12:00:00.000000000Z" {
		t.Errorf("Time = %q", relay.Time)
	}
	if want := now.Add(2 * time.Hour).Format(time.RFC1123); relay.Expiry != want {
		t.Errorf("Expiry = %q, want %q", relay.Expiry, want)
	}

	relays, err := operations.RecentRelays(db, 10)
	if err != nil {
		t.Fatalf("RecentRelays: %v", err)
	}
	if len(relays) != 1 || *relays[0] != *relay {
		t.Errorf("RecentRelays = %+v, want [%+v]", relays, relay)
	}
}

func TestRecentRelaysNewestFirstAndLimited(t *testing.T) {
	db := newDB(t)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	// Out of order on purpose; a sub-second gap must still sort correctly.
	offsets := []time.Duration{3 * time.Second, 500 * time.Millisecond, 2 * time.Second, time.Second}
	for i, off := range offsets {
		target := string(rune('a' + i))
		if _, err := operations.InsertRelay(db, models.OperationOrder, target, models.OutcomeRelayed, base.Add(off), time.Hour); err != nil {
			t.Fatalf("InsertRelay: %v", err)
		}
	}

	relays, err := operations.RecentRelays(db, 3)
	if err != nil {
		t.Fatalf("RecentRelays: %v", err)
	}
	want := []string{"a", "c", "d"}
	if len(relays) != len(want) {
		t.Fatalf("expected %d relays, got %d", len(want), len(relays))
	}
	for i, target := range want {
		if relays[i].Target != target {
			t.Errorf("relay %d target = %q, want %q", i, relays[i].Target, target)
		}
	}
}

func TestDeleteExpired(t *testing.T) {
	db := newDB(t)
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	old, err := operations.InsertRelay(db, models.OperationImage, "old", models.OutcomeRelayed, now.Add(-48*time.Hour), 24*time.Hour)
	if err != nil {
		t.Fatalf("InsertRelay: %v", err)
	}
	if _, err := operations.InsertRelay(db, models.OperationImage, "fresh", models.OutcomeRelayed, now.Add(-time.Hour), 24*time.Hour); err != nil {
		t.Fatalf("InsertRelay: %v", err)
	}

	n, err := operations.DeleteExpired(db, now)
	if err != nil {
		t.Fatalf("DeleteExpired: %v", err)
	}
	if n != 1 {
		t.Errorf("deleted %d, want 1", n)
	}

	relays, err := operations.RecentRelays(db, -1)
	if err != nil {
		t.Fatalf("RecentRelays: %v", err)
	}
	if len(relays) != 1 || relays[0].Target != "fresh" {
		t.Errorf("remaining relays = %+v", relays)
	}
	for _, r := range relays {
		if r.ID == old.ID {
			t.Errorf("expired relay %s still present", old.ID)
		}
	}
}
