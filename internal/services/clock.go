package services

import "time"

// TimestampLayout is the fixed format used for issue and audit timestamps,
// e.g. "25/12/2025, 14:03:07". Kept from the previous system so existing
// rows stay readable alongside new ones.
const TimestampLayout = "02/01/2006, 15:04:05"

// timestamps are rendered in the office timezone, not the server's.
var timeLocation = loadTimeLocation()

func loadTimeLocation() *time.Location {
	loc, err := time.LoadLocation("Asia/Makassar")
	if err != nil {
		// Hosts without a tz database still get the right offset.
		return time.FixedZone("WITA", 8*60*60)
	}
	return loc
}

// now is a variable so tests can pin the clock.
var now = time.Now

func timestamp() string {
	return now().In(timeLocation).Format(TimestampLayout)
}
