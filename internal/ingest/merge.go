package ingest

import "routine-tracker/internal/database"

// Merge combines the stored history with a freshly ingested one under the
// remote-wins policy: an incoming record replaces the local one for its date
// as a whole unit, dates only present locally are preserved. Pure and total;
// merging the same incoming history twice is a no-op the second time.
func Merge(local, incoming database.History) database.History {
	merged := make(database.History, len(local)+len(incoming))
	for date, rec := range local {
		merged[date] = rec
	}
	for date, rec := range incoming {
		merged[date] = rec
	}
	return merged
}
