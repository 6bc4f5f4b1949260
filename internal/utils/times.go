package utils

import (
	"time"
)

var saoPauloLocation *time.Location

func init() {
	var err error
	saoPauloLocation, err = time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		// Fallback: UTC-3
		saoPauloLocation = time.FixedZone("BRT", -3*60*60)
	}
}

// Location returns the timezone the tracker lives in. Day boundaries follow
// São Paulo time, not UTC, so a task checked at 23h still counts for today.
func Location() *time.Location {
	return saoPauloLocation
}

// TodayKey returns the current date key (YYYY-MM-DD) in São Paulo time.
func TodayKey() string {
	return time.Now().In(saoPauloLocation).Format("2006-01-02")
}

// DisplayDate renders a canonical date key as DD/MM/YYYY for messages.
// Unparseable keys are shown as-is.
func DisplayDate(dateKey string) string {
	t, err := time.Parse("2006-01-02", dateKey)
	if err != nil {
		return dateKey
	}
	return t.Format("02/01/2006")
}
