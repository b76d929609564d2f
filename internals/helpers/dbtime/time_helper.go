// file: internals/helpers/dbtime/time_helper.go
package dbtime

import (
	"sync/atomic"
	"time"
)

var defaultLoc atomic.Pointer[time.Location]

// SetDefaultLocation dipanggil sekali saat boot dari config APP_TIMEZONE.
func SetDefaultLocation(loc *time.Location) {
	if loc != nil {
		defaultLoc.Store(loc)
	}
}

// DefaultLocation: zona dari config, fallback Asia/Jakarta, lalu UTC.
func DefaultLocation() *time.Location {
	if loc := defaultLoc.Load(); loc != nil {
		return loc
	}
	if loc, err := time.LoadLocation("Asia/Jakarta"); err == nil {
		return loc
	}
	return time.UTC
}

// TodayIn: tanggal kalender hari ini di loc.
func TodayIn(loc *time.Location) Date {
	if loc == nil {
		loc = DefaultLocation()
	}
	return DateOf(time.Now().In(loc))
}

// Today: tanggal hari ini di zona default.
func Today() Date { return TodayIn(DefaultLocation()) }
