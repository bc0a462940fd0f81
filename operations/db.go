package operations

import (
	"fmt"
	"sort"
	"time"

	"github.com/CorrelAid/function_relay/inits"
	"github.com/CorrelAid/function_relay/models"
	"github.com/google/uuid"
	"github.com/hashicorp/go-memdb"
)

// InsertRelay records one relay attempt and returns the stored entry.
func InsertRelay(db *memdb.MemDB, operation, target, outcome string, now time.Time, retention time.Duration) (*models.Relay, error) {
	relay := &models.Relay{
		ID:        uuid.NewString(),
		Operation: operation,
		Target:    target,
		Outcome:   outcome,
		Time:      now.UTC().Format(models.TimeLayout),
		Expiry:    now.Add(retention).UTC().Format(time.RFC1123),
	}

	txn := db.Txn(true)
	defer txn.Abort()

	if err := txn.Insert(inits.RelayTable, relay); err != nil {
		return nil, fmt.Errorf("insert relay: %w", err)
	}

	txn.Commit()
	return relay, nil
}

// RecentRelays returns up to limit entries, newest first.
func RecentRelays(db *memdb.MemDB, limit int) ([]*models.Relay, error) {
	txn := db.Txn(false)
	defer txn.Abort()

	it, err := txn.Get(inits.RelayTable, "time")
	if err != nil {
		return nil, err
	}

	var relays []*models.Relay
	for obj := it.Next(); obj != nil; obj = it.Next() {
		relays = append(relays, obj.(*models.Relay))
	}
	sort.SliceStable(relays, func(i, j int) bool {
		return relays[i].Time > relays[j].Time
	})
	if limit >= 0 && len(relays) > limit {
		relays = relays[:limit]
	}
	return relays, nil
}

// DeleteExpired removes entries whose expiry is before now and reports how
// many were removed. Entries with an unparsable expiry are removed too.
func DeleteExpired(db *memdb.MemDB, now time.Time) (int, error) {
	txn := db.Txn(true)
	defer txn.Abort()

	it, err := txn.Get(inits.RelayTable, "expiry")
	if err != nil {
		return 0, err
	}

	var expired []*models.Relay
	for obj := it.Next(); obj != nil; obj = it.Next() {
		relay := obj.(*models.Relay)
		expiry, err := time.Parse(time.RFC1123, relay.Expiry)
		if err != nil || expiry.Before(now) {
			expired = append(expired, relay)
		}
	}

	for _, relay := range expired {
		if err := txn.Delete(inits.RelayTable, relay); err != nil {
			return 0, fmt.Errorf("delete relay %s: %w", relay.ID, err)
		}
	}

	txn.Commit()
	return len(expired), nil
}
