package clock

import "time"

// Clock provides time to the application. Services take a Clock instead of
// calling time.Now so tests can control timestamps deterministically.
type Clock interface {
	Now() time.Time
}
