// Package session holds the idle-timeout rule for CLI sessions.
package session

import "time"

// DefaultTimeoutMinutes is the idle timeout used when none is configured.
const DefaultTimeoutMinutes = 120

// IsExpired reports whether more than timeoutMinutes have elapsed since
// lastActivity. A non-positive timeout falls back to the default.
func IsExpired(lastActivity, now time.Time, timeoutMinutes int) bool {
	if timeoutMinutes <= 0 {
		timeoutMinutes = DefaultTimeoutMinutes
	}
	return now.Sub(lastActivity) > time.Duration(timeoutMinutes)*time.Minute
}
