package client

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
)

// PartialPlayer is a minimal player reference: an ID, and optionally a
// name and platform, depending on how it was obtained. It can be
// upgraded to a full Player with Expand.
//
// An ID of 0 marks a private profile; every fetch on a private profile
// fails with ErrPrivate before any request is made.
type PartialPlayer struct {
	client *Client

	// ID of the player. 0 for private profiles.
	ID int

	// Name of the player. May be empty.
	Name string

	// Platform of the player. May be PlatformUnknown.
	Platform Platform
}

// Private reports whether this profile is private. Fetching anything
// for a private profile fails with ErrPrivate.
func (p *PartialPlayer) Private() bool {
	return p.ID == 0
}

// Equal reports whether two references point at the same player.
// Two players are equal only when both IDs are non-zero and match; a
// private (zero-ID) reference equals nothing, itself included.
func (p *PartialPlayer) Equal(other *PartialPlayer) bool {
	return other != nil && p.ID != 0 && other.ID != 0 && p.ID == other.ID
}

func (p *PartialPlayer) String() string {
	return fmt.Sprintf("%s(%d / %s)", p.Name, p.ID, p.Platform)
}

// arg formats the player's ID as a request argument.
func (p *PartialPlayer) arg() string {
	return strconv.Itoa(p.ID)
}

// Expand upgrades this reference into a full Player, refreshing all of
// its fields. Issues one request; the result is never cached, so every
// call returns freshly fetched data.
//
// Returns ErrPrivate without issuing a request when the profile is
// private, and ErrNotFound when the player does not exist.
func (p *PartialPlayer) Expand(ctx context.Context) (*Player, error) {
	if p.Private() {
		return nil, ErrPrivate
	}

	body, err := p.client.api.Request(ctx, "getplayer", p.arg())
	if err != nil {
		return nil, err
	}

	var records []playerRecord
	if err := sonic.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("decode getplayer response: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrNotFound
	}

	return newPlayer(p.client, records[0]), nil
}

// GetStatus fetches the player's current status. Issues one request.
//
// Returns ErrNotFound when the service does not know the player.
func (p *PartialPlayer) GetStatus(ctx context.Context) (*PlayerStatus, error) {
	if p.Private() {
		return nil, ErrPrivate
	}

	body, err := p.client.api.Request(ctx, "getplayerstatus", p.arg())
	if err != nil {
		return nil, err
	}

	var records []playerStatusRecord
	if err := sonic.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("decode getplayerstatus response: %w", err)
	}
	if len(records) == 0 || Activity(records[0].Status) == ActivityUnknown {
		return nil, ErrNotFound
	}

	return newPlayerStatus(p, records[0]), nil
}

// GetFriends fetches the player's friend list. Issues one request.
func (p *PartialPlayer) GetFriends(ctx context.Context) ([]*PartialPlayer, error) {
	if p.Private() {
		return nil, ErrPrivate
	}

	body, err := p.client.api.Request(ctx, "getfriends", p.arg())
	if err != nil {
		return nil, err
	}

	var records []friendRecord
	if err := sonic.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("decode getfriends response: %w", err)
	}
	if isEmptySignal(records) {
		return nil, nil
	}

	friends := make([]*PartialPlayer, 0, len(records))
	for _, rec := range records {
		friends = append(friends, p.client.partialPlayer(rec.PlayerID.Int(), rec.Name, PlatformUnknown))
	}
	return friends, nil
}

// GetLoadouts fetches the player's loadouts. Issues one request, plus
// the reference-data refresh when the bundle for the language is stale.
func (p *PartialPlayer) GetLoadouts(ctx context.Context, language Language) ([]*Loadout, error) {
	if p.Private() {
		return nil, ErrPrivate
	}

	info, _ := p.client.GetChampionInfo(ctx, language, false)

	body, err := p.client.api.Request(ctx, "getplayerloadouts", p.arg(), strconv.Itoa(int(language)))
	if err != nil {
		return nil, err
	}

	var records []loadoutRecord
	if err := sonic.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("decode getplayerloadouts response: %w", err)
	}
	// The service signals "no loadouts" with a single record carrying a
	// zero player ID.
	if len(records) == 0 || records[0].PlayerID == 0 {
		return nil, nil
	}

	loadouts := make([]*Loadout, 0, len(records))
	for _, rec := range records {
		loadouts = append(loadouts, newLoadout(p, language, info, rec))
	}
	return loadouts, nil
}

// GetChampionStats fetches the player's per-champion statistics.
// Issues one request, plus the reference-data refresh when the bundle
// for the language is stale.
func (p *PartialPlayer) GetChampionStats(ctx context.Context, language Language) ([]*ChampionStats, error) {
	if p.Private() {
		return nil, ErrPrivate
	}

	info, _ := p.client.GetChampionInfo(ctx, language, false)

	body, err := p.client.api.Request(ctx, "getgodranks", p.arg())
	if err != nil {
		return nil, err
	}

	var records []championStatsRecord
	if err := sonic.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("decode getgodranks response: %w", err)
	}
	if isEmptySignal(records) {
		return nil, nil
	}

	stats := make([]*ChampionStats, 0, len(records))
	for _, rec := range records {
		stats = append(stats, newChampionStats(p, language, info, rec))
	}
	return stats, nil
}

// GetMatchHistory fetches the player's recent matches, with statistics
// for this player only. Issues one request, plus the reference-data
// refresh when the bundle for the language is stale.
func (p *PartialPlayer) GetMatchHistory(ctx context.Context, language Language) ([]*PartialMatch, error) {
	if p.Private() {
		return nil, ErrPrivate
	}

	info, _ := p.client.GetChampionInfo(ctx, language, false)

	body, err := p.client.api.Request(ctx, "getmatchhistory", p.arg())
	if err != nil {
		return nil, err
	}

	var records []matchHistoryRecord
	if err := sonic.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("decode getmatchhistory response: %w", err)
	}
	if isEmptySignal(records) {
		return nil, nil
	}

	matches := make([]*PartialMatch, 0, len(records))
	for _, rec := range records {
		matches = append(matches, newPartialMatch(p, language, info, rec))
	}
	return matches, nil
}

// Player is a full player profile. It embeds PartialPlayer, so a Player
// is accepted anywhere a PartialPlayer is.
type Player struct {
	PartialPlayer

	// ActivePlayer is the active profile among merged profiles, when it
	// differs from this one. Nil when this profile is the active one.
	ActivePlayer *PartialPlayer

	// MergedPlayers lists all profiles merged into this one.
	MergedPlayers []*PartialPlayer

	// CreatedAt is when the profile was created.
	CreatedAt time.Time

	// LastLogin is the last successful in-game login.
	LastLogin time.Time

	// Level is the profile's in-game level.
	Level int

	// Playtime is the time spent playing on this profile.
	Playtime time.Duration

	// ChampionCount is the number of champions the player unlocked.
	ChampionCount int

	// Region the player plays in.
	Region Region

	// TotalAchievements is the number of achievements earned.
	TotalAchievements int

	// TotalXP is the profile's total experience.
	TotalXP int

	// GamerTag is the Hi-Rez gamer tag linked to the profile.
	GamerTag string

	// PlayerName is the Hi-Rez player name linked to the profile.
	PlayerName string

	// Casual holds the casual queue statistics.
	Casual Stats

	// RankedKeyboard and RankedController hold the competitive
	// statistics per input method.
	RankedKeyboard   RankedStats
	RankedController RankedStats
}

func newPlayer(c *Client, rec playerRecord) *Player {
	player := &Player{
		PartialPlayer: PartialPlayer{
			client:   c,
			ID:       rec.ID.Int(),
			Name:     rec.Name,
			Platform: ParsePlatform(rec.Platform),
		},
		CreatedAt:         parseTimestamp(rec.CreatedDatetime),
		LastLogin:         parseTimestamp(rec.LastLoginDatetime),
		Level:             rec.Level,
		Playtime:          time.Duration(rec.HoursPlayed) * time.Hour,
		ChampionCount:     rec.MasteryLevel,
		Region:            ParseRegion(rec.Region),
		TotalAchievements: rec.TotalAchievements,
		TotalXP:           rec.TotalWorshippers,
		GamerTag:          rec.HzGamerTag,
		PlayerName:        rec.HzPlayerName,
		Casual: Stats{
			Wins:   rec.Wins,
			Losses: rec.Losses,
			Leaves: rec.Leaves,
		},
		RankedKeyboard:   newRankedStats("Keyboard", rec.RankedKBM),
		RankedController: newRankedStats("Controller", rec.RankedController),
	}

	if active := rec.ActivePlayerID.Int(); active != 0 && active != player.ID {
		player.ActivePlayer = c.partialPlayer(active, "", PlatformUnknown)
	}
	for _, merged := range rec.MergedPlayers {
		player.MergedPlayers = append(player.MergedPlayers,
			c.partialPlayer(merged.PlayerID.Int(), "", Platform(merged.PortalID)))
	}

	return player
}

// RankedBest returns the better of the keyboard and controller ranked
// stats, by rank, then by winrate when the ranks are equal.
func (p *Player) RankedBest() RankedStats {
	kb, cn := p.RankedKeyboard, p.RankedController
	if kb.Rank == cn.Rank {
		if cn.Winrate() > kb.Winrate() {
			return cn
		}
		return kb
	}
	if cn.Rank > kb.Rank {
		return cn
	}
	return kb
}
