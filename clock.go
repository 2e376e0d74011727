package chrono

import "time"

// NowFunc is a function that generates the current time. Intentionally
// exported so that it can be overridden, for example by applications that
// require their scripts to be fully deterministic.
var NowFunc = time.Now

// LocalFunc returns the location "local" refers to, both for NowLocal and
// for timezone resolution. It defaults to the host's local zone.
var LocalFunc = func() *time.Location { return time.Local }

// now reads NowFunc, falling back to the system clock when a host has
// cleared it.
func now() time.Time {
	if NowFunc == nil {
		return time.Now()
	}
	return NowFunc()
}
