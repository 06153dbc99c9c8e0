package client

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// Stats holds a player's win/loss record.
type Stats struct {
	Wins   int
	Losses int

	// Leaves is the number of matches the player left or disconnected
	// from.
	Leaves int
}

// MatchesPlayed returns the total number of matches played.
func (s Stats) MatchesPlayed() int {
	return s.Wins + s.Losses
}

// Winrate returns the winrate as a fraction.
// NaN is returned when no matches were played.
func (s Stats) Winrate() float64 {
	played := s.MatchesPlayed()
	if played == 0 {
		return math.NaN()
	}
	return float64(s.Wins) / float64(played)
}

// WinrateText returns the winrate as a percentage string like "48.213%",
// or "N/A" when no matches were played.
func (s Stats) WinrateText() string {
	if s.MatchesPlayed() == 0 {
		return "N/A"
	}
	// Round to three decimal places, trimming trailing zeros.
	percent := math.Round(s.Winrate()*100*1000) / 1000
	return strconv.FormatFloat(percent, 'f', -1, 64) + "%"
}

// RankedStats holds a player's competitive record for one input method.
type RankedStats struct {
	Stats

	// Input is the input method these stats are for: "Keyboard" or
	// "Controller".
	Input string

	// Rank is the player's current competitive rank.
	Rank Rank

	// Points is the amount of TP the player currently has.
	Points int

	// Season is the current ranked season.
	Season int

	// MMR, PrevMMR and Trend are currently always zero in API responses.
	MMR     int
	PrevMMR int
	Trend   int
}

func newRankedStats(input string, rec rankedRecord) RankedStats {
	return RankedStats{
		Stats: Stats{
			Wins:   rec.Wins,
			Losses: rec.Losses,
			Leaves: rec.Leaves,
		},
		Input:   input,
		Rank:    Rank(rec.Tier),
		Points:  rec.Points,
		Season:  rec.Season,
		MMR:     rec.Rank,
		PrevMMR: rec.PrevRank,
		Trend:   rec.Trend,
	}
}

// KDA holds kills, deaths and assists.
type KDA struct {
	Kills   int
	Deaths  int
	Assists int
}

// Ratio returns the KDA as (kills + assists/2) / deaths.
// NaN is returned when there were no deaths.
func (k KDA) Ratio() float64 {
	if k.Deaths == 0 {
		return math.NaN()
	}
	return (float64(k.Kills) + float64(k.Assists)/2) / float64(k.Deaths)
}

// Text returns the KDA as a "kills/deaths/assists" string.
func (k KDA) Text() string {
	return fmt.Sprintf("%d/%d/%d", k.Kills, k.Deaths, k.Assists)
}

// ChampionStats holds a player's lifetime statistics for one champion.
type ChampionStats struct {
	Stats
	KDA

	// Player is the player these stats belong to.
	Player *PartialPlayer

	// Language is the language the champion reference was resolved in.
	Language Language

	// Champion is the champion these stats are for. Nil when the
	// reference bundle for the language was unavailable.
	Champion *Champion

	// Level is the champion's mastery level.
	Level int

	// LastPlayed is when this champion was last played.
	LastPlayed time.Time

	// Experience is the champion's total experience.
	Experience int

	// CreditsEarned is the amount of credits earned playing this
	// champion.
	CreditsEarned int

	// Playtime is the time spent playing this champion.
	Playtime time.Duration
}

func newChampionStats(player *PartialPlayer, language Language, info *ChampionInfo, rec championStatsRecord) *ChampionStats {
	stats := &ChampionStats{
		Stats: Stats{
			Wins:   rec.Wins,
			Losses: rec.Losses,
		},
		KDA: KDA{
			Kills:   rec.Kills,
			Deaths:  rec.Deaths,
			Assists: rec.Assists,
		},
		Player:        player,
		Language:      language,
		Level:         rec.Rank,
		LastPlayed:    parseTimestamp(rec.LastPlayed),
		Experience:    rec.Worshippers,
		CreditsEarned: rec.Gold,
		Playtime:      time.Duration(rec.Minutes) * time.Minute,
	}
	if info != nil {
		stats.Champion, _ = info.ChampionByID(rec.ChampionID.Int())
	}
	return stats
}
