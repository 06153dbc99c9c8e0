package client

import (
	"math"
	"testing"
)

func TestStats_Winrate(t *testing.T) {
	tests := []struct {
		name  string
		stats Stats
		want  float64
	}{
		{"even", Stats{Wins: 10, Losses: 10}, 0.5},
		{"all wins", Stats{Wins: 5}, 1},
		{"leaves not counted", Stats{Wins: 4, Losses: 4, Leaves: 2}, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.stats.Winrate(); got != tt.want {
				t.Errorf("Winrate() = %v, want %v", got, tt.want)
			}
		})
	}

	if got := (Stats{}).Winrate(); !math.IsNaN(got) {
		t.Errorf("Winrate() with no matches = %v, want NaN", got)
	}
}

func TestStats_WinrateText(t *testing.T) {
	tests := []struct {
		name  string
		stats Stats
		want  string
	}{
		{"no matches", Stats{}, "N/A"},
		{"whole", Stats{Wins: 1, Losses: 1}, "50%"},
		{"repeating", Stats{Wins: 2, Losses: 1}, "66.667%"},
		{"thirds", Stats{Wins: 1, Losses: 2}, "33.333%"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.stats.WinrateText(); got != tt.want {
				t.Errorf("WinrateText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKDA_Ratio(t *testing.T) {
	kda := KDA{Kills: 10, Deaths: 5, Assists: 4}
	if got, want := kda.Ratio(), 2.4; got != want {
		t.Errorf("Ratio() = %v, want %v", got, want)
	}
	if got := (KDA{Kills: 3}).Ratio(); !math.IsNaN(got) {
		t.Errorf("Ratio() with no deaths = %v, want NaN", got)
	}
	if got, want := kda.Text(), "10/5/4"; got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
}

func TestNewRankedStats(t *testing.T) {
	rec := rankedRecord{
		Wins: 90, Losses: 60, Leaves: 1,
		Tier: 17, Season: 6, Points: 44, Rank: 120, PrevRank: 130, Trend: 2,
	}
	stats := newRankedStats("Keyboard", rec)

	if stats.Input != "Keyboard" {
		t.Errorf("Input = %q, want Keyboard", stats.Input)
	}
	if stats.Rank != RankPlatinumIV {
		t.Errorf("Rank = %v, want Platinum IV", stats.Rank)
	}
	if stats.Season != 6 || stats.Points != 44 {
		t.Errorf("Season/Points = %d/%d, want 6/44", stats.Season, stats.Points)
	}
	if stats.MMR != 120 || stats.PrevMMR != 130 || stats.Trend != 2 {
		t.Errorf("MMR/PrevMMR/Trend = %d/%d/%d, want 120/130/2", stats.MMR, stats.PrevMMR, stats.Trend)
	}
	if got := stats.MatchesPlayed(); got != 150 {
		t.Errorf("MatchesPlayed() = %d, want 150", got)
	}
}
