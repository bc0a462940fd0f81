package inits

import (
	"github.com/hashicorp/go-memdb"
)

// RelayTable holds models.Relay journal entries.
const RelayTable = "relay"

func DBInit() (*memdb.MemDB, error) {
	schema := &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			RelayTable: {
				Name: RelayTable,
				Indexes: map[string]*memdb.IndexSchema{
					"id": {
						Name:         "id",
						Unique:       true,
						Indexer:      &memdb.StringFieldIndex{Field: "ID"},
						AllowMissing: false,
					},
					"time": {
						Name:         "time",
						Unique:       false,
						Indexer:      &memdb.StringFieldIndex{Field: "Time"},
						AllowMissing: false,
					},
					"expiry": {
						Name:         "expiry",
						Unique:       false,
						Indexer:      &memdb.StringFieldIndex{Field: "Expiry"},
						AllowMissing: false,
					},
				},
			},
		},
	}

	return memdb.NewMemDB(schema)
}
