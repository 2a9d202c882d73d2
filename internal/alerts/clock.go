package alerts

import "time"

type systemClock struct{}

// Now return current UTC time.
func (c systemClock) Now() time.Time {
	return time.Now().UTC()
}
