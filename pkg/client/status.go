package client

// PlatformStatus is the health of one platform environment.
type PlatformStatus struct {
	// Platform this status is for (e.g. "pc", "ps4", "xbox", "switch").
	Platform string

	// Environment is "live" or "pts".
	Environment string

	// Up reports whether the platform is up.
	Up bool

	// LimitedAccess reports whether the platform runs with limited
	// access.
	LimitedAccess bool

	// Version is the game version deployed on the platform.
	Version string
}

// ServerStatus is a snapshot of the service's health across platforms.
// Snapshots handed out by the status cache are read-only shared data.
type ServerStatus struct {
	// AllUp reports whether every live platform is up.
	AllUp bool

	// LimitedAccess reports whether any live platform runs with
	// limited access.
	LimitedAccess bool

	// Statuses lists the per-platform statuses, live and PTS.
	Statuses []PlatformStatus
}

func newServerStatus(records []serverStatusRecord) *ServerStatus {
	status := &ServerStatus{AllUp: true}

	for _, rec := range records {
		platform := PlatformStatus{
			Platform:      rec.Platform,
			Environment:   rec.Environment,
			Up:            rec.Status == "UP",
			LimitedAccess: rec.LimitedAccess,
			Version:       rec.Version,
		}
		status.Statuses = append(status.Statuses, platform)

		if rec.Environment == "live" {
			if !platform.Up {
				status.AllUp = false
			}
			if platform.LimitedAccess {
				status.LimitedAccess = true
			}
		}
	}

	return status
}

// Platform returns the live status entry for the given platform name.
func (s *ServerStatus) Platform(name string) (PlatformStatus, bool) {
	for _, p := range s.Statuses {
		if p.Platform == name && p.Environment == "live" {
			return p, true
		}
	}
	return PlatformStatus{}, false
}

// PlayerStatus is a player's current in-game status.
type PlayerStatus struct {
	// Player this status is for.
	Player *PartialPlayer

	// MatchID is the live match ID, or 0 when not in a match.
	MatchID int

	// Queue of the live match, when in one.
	Queue Queue

	// Status is the player's activity.
	Status Activity
}

func newPlayerStatus(player *PartialPlayer, rec playerStatusRecord) *PlayerStatus {
	return &PlayerStatus{
		Player:  player,
		MatchID: rec.Match.Int(),
		Queue:   Queue(rec.MatchQueueID),
		Status:  Activity(rec.Status),
	}
}
