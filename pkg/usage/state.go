// Package usage implements daily Hi-Rez API quota accounting and request
// gating. Developer credentials allow a fixed number of requests and
// sessions per UTC day; the tracker counts both so the endpoint can stop
// issuing calls before the service starts rejecting them.
package usage

import (
	"time"
)

// Redis keys for shared usage state. The day suffix is the UTC date in
// DayFormat, so counters roll over naturally at midnight UTC.
const (
	RedisKeyRequests = "hirez:usage:requests"
	RedisKeySessions = "hirez:usage:sessions"
)

// DayFormat is the time layout used for day-scoped counter keys.
const DayFormat = "2006-01-02"

// Default daily limits for Hi-Rez developer credentials.
const (
	// DefaultRequestLimit is the number of API requests allowed per day.
	DefaultRequestLimit = 7500

	// DefaultSessionLimit is the number of sessions allowed per day.
	DefaultSessionLimit = 500
)

// nearLimitFraction is the used-quota fraction at which NearLimit trips.
const nearLimitFraction = 0.8

// State represents the usage counters for one UTC day.
type State struct {
	// Day is the UTC date these counters apply to, in DayFormat.
	Day string `json:"day"`

	// Requests is the number of API requests issued today.
	Requests int `json:"requests"`

	// Sessions is the number of sessions created today.
	Sessions int `json:"sessions"`

	// RequestLimit is the daily request quota.
	RequestLimit int `json:"request_limit"`

	// SessionLimit is the daily session quota.
	SessionLimit int `json:"session_limit"`
}

// Today returns the day key for the given instant.
func Today(now time.Time) string {
	return now.UTC().Format(DayFormat)
}

// RequestsRemaining returns the number of requests left today.
// Returns 0 when the quota is exceeded.
func (s *State) RequestsRemaining() int {
	remaining := s.RequestLimit - s.Requests
	if remaining < 0 {
		return 0
	}
	return remaining
}

// SessionsRemaining returns the number of sessions left today.
// Returns 0 when the quota is exceeded.
func (s *State) SessionsRemaining() int {
	remaining := s.SessionLimit - s.Sessions
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Exhausted reports whether either daily quota is used up.
func (s *State) Exhausted() bool {
	return s.Requests >= s.RequestLimit || s.Sessions >= s.SessionLimit
}

// NearLimit reports whether request usage has reached 80% of the quota.
// Used for warning logs before Exhausted starts blocking calls.
func (s *State) NearLimit() bool {
	return float64(s.Requests) >= float64(s.RequestLimit)*nearLimitFraction
}
