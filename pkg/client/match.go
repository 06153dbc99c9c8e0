package client

import (
	"context"
	"time"
)

// MatchItem is a shop item bought during a match, with its upgrade level.
type MatchItem struct {
	// Item bought. Nil when it could not be resolved against the
	// reference bundle.
	Item *Device

	// Level the item was upgraded to.
	Level int
}

// MatchLoadout is the loadout a player used in a match: up to five cards
// and one talent.
type MatchLoadout struct {
	Cards  []LoadoutCard
	Talent *Device
}

// matchStats are the per-player performance fields shared by history
// entries and match detail players.
type matchStats struct {
	KDA

	// Credits earned during the match.
	Credits int

	DamageDealt int
	DamageTaken int

	// DamageBot is damage dealt by the bot that replaced the player
	// after a disconnect.
	DamageBot int

	HealingDone int
	HealingSelf int

	// HealingBot is healing done by the bot that replaced the player.
	HealingBot int

	// ObjectiveTime is the objective time the player got, in seconds.
	ObjectiveTime int

	// MultikillMax is the biggest multikill the player got.
	MultikillMax int
}

// Disconnected reports whether the player disconnected during the match,
// judged by bot activity on their champion.
func (s *matchStats) Disconnected() bool {
	return s.DamageBot > 0 || s.HealingBot > 0
}

// PartialMatch is one entry of a player's match history: match metadata
// plus that player's own performance. It can be expanded into a full
// Match with all ten players.
type PartialMatch struct {
	matchStats

	client *Client

	// ID of the match.
	ID int

	// Player whose history this entry comes from.
	Player *PartialPlayer

	// Language the reference data was resolved in.
	Language Language

	// Champion the player played. Nil when the reference bundle was
	// unavailable.
	Champion *Champion

	Queue    Queue
	Region   Region
	Duration time.Duration

	// Timestamp is when the match was played.
	Timestamp time.Time

	// MapName is the name of the map played.
	MapName string

	// Score is the player's team score followed by the enemy score.
	Score [2]int

	// Won reports whether the player's team won.
	Won bool

	// Items bought during the match.
	Items []MatchItem

	// Loadout used in the match.
	Loadout MatchLoadout
}

func newPartialMatch(player *PartialPlayer, language Language, info *ChampionInfo, rec matchHistoryRecord) *PartialMatch {
	enemyTeam := 1
	if rec.TaskForce == 1 {
		enemyTeam = 2
	}
	myScore, enemyScore := rec.Team1Score, rec.Team2Score
	if enemyTeam == 1 {
		myScore, enemyScore = rec.Team2Score, rec.Team1Score
	}

	match := &PartialMatch{
		matchStats: matchStats{
			KDA:           KDA{Kills: rec.Kills, Deaths: rec.Deaths, Assists: rec.Assists},
			Credits:       rec.Gold,
			DamageDealt:   rec.Damage,
			DamageTaken:   rec.DamageTaken,
			DamageBot:     rec.DamageBot,
			HealingDone:   rec.Healing,
			HealingSelf:   rec.HealingPlayerSelf,
			HealingBot:    rec.HealingBot,
			ObjectiveTime: rec.ObjectiveAssists,
			MultikillMax:  rec.MultiKillMax,
		},
		client:    player.client,
		ID:        rec.Match.Int(),
		Player:    player,
		Language:  language,
		Queue:     Queue(rec.MatchQueueID),
		Region:    ParseRegion(rec.Region),
		Duration:  time.Duration(rec.TimeInMatchSeconds) * time.Second,
		Timestamp: parseTimestamp(rec.MatchTime),
		MapName:   rec.MapGame,
		Score:     [2]int{myScore, enemyScore},
		Won:       rec.TaskForce == rec.WinningTaskForce,
	}

	if info != nil {
		match.Champion, _ = info.ChampionByID(rec.ChampionID.Int())
	}

	// History entries report item levels as 0-based quarters.
	match.Items = mapMatchItems(info, rec.activeIDs(), rec.activeLevels(), func(level int) int {
		return level/4 + 1
	})
	match.Loadout = mapMatchLoadout(info, rec.cardIDs(), rec.cardLevels(), rec.ItemID6.Int())

	return match
}

// Expand fetches the full match this history entry belongs to, with all
// players' statistics. Issues one request.
func (m *PartialMatch) Expand(ctx context.Context) (*Match, error) {
	return m.client.GetMatch(ctx, m.ID, m.Language)
}

// MatchPlayer is one player's performance inside a full match.
type MatchPlayer struct {
	matchStats

	// Player reference. The ID can be 0 for private profiles.
	Player *PartialPlayer

	// Champion the player played. Nil when the reference bundle was
	// unavailable.
	Champion *Champion

	// Won reports whether the player's team won.
	Won bool

	// KillsBot is the number of bot kills.
	KillsBot int

	DoubleKills int
	TripleKills int
	QuadraKills int
	PentaKills  int

	// Items bought during the match.
	Items []MatchItem

	// Loadout used in the match.
	Loadout MatchLoadout
}

func newMatchPlayer(c *Client, language Language, info *ChampionInfo, rec matchDetailRecord) *MatchPlayer {
	player := &MatchPlayer{
		matchStats: matchStats{
			KDA:           KDA{Kills: rec.KillsPlayer, Deaths: rec.Deaths, Assists: rec.Assists},
			Credits:       rec.GoldEarned,
			DamageDealt:   rec.DamageDonePhysical,
			DamageTaken:   rec.DamageTaken,
			DamageBot:     rec.DamageBot,
			HealingDone:   rec.Healing,
			HealingSelf:   rec.HealingPlayerSelf,
			HealingBot:    rec.HealingBot,
			ObjectiveTime: rec.ObjectiveAssists,
			MultikillMax:  rec.MultiKillMax,
		},
		Player:      c.partialPlayer(rec.PlayerID.Int(), rec.PlayerName, Platform(rec.PlayerPortalID)),
		Won:         rec.TaskForce == rec.WinningTaskForce,
		KillsBot:    rec.KillsBot,
		DoubleKills: rec.KillsDouble,
		TripleKills: rec.KillsTriple,
		QuadraKills: rec.KillsQuadra,
		PentaKills:  rec.KillsPenta,
	}

	if info != nil {
		player.Champion, _ = info.ChampionByID(rec.ChampionID.Int())
	}

	// Detail records report item levels 0-based.
	player.Items = mapMatchItems(info, rec.activeIDs(), rec.activeLevels(), func(level int) int {
		return level + 1
	})
	player.Loadout = mapMatchLoadout(info, rec.cardIDs(), rec.cardLevels(), rec.ItemID6.Int())

	return player
}

// Match is a full match with all players' statistics.
type Match struct {
	// ID of the match.
	ID int

	// Language the reference data was resolved in.
	Language Language

	Queue    Queue
	Region   Region
	Duration time.Duration

	// MapName is the name of the map played.
	MapName string

	// Score is team 1's score followed by team 2's score.
	Score [2]int

	// WinningTeam is the task force number of the winning team (1 or 2).
	WinningTeam int

	// Bans lists the champions banned in the match. Ranked only.
	Bans []*Champion

	// Team1 and Team2 hold the players by task force.
	Team1 []*MatchPlayer
	Team2 []*MatchPlayer
}

func newMatch(c *Client, language Language, info *ChampionInfo, records []matchDetailRecord) *Match {
	first := records[0]

	match := &Match{
		ID:          first.Match.Int(),
		Language:    language,
		Queue:       Queue(first.MatchQueueID),
		Region:      ParseRegion(first.Region),
		Duration:    time.Duration(first.TimeInMatchSeconds) * time.Second,
		MapName:     first.MapGame,
		Score:       [2]int{first.Team1Score, first.Team2Score},
		WinningTeam: first.WinningTaskForce,
	}

	if info != nil {
		for _, banID := range first.banIDs() {
			if banID == 0 {
				continue
			}
			if champion, ok := info.ChampionByID(banID.Int()); ok {
				match.Bans = append(match.Bans, champion)
			}
		}
	}

	for _, rec := range records {
		player := newMatchPlayer(c, language, info, rec)
		if rec.TaskForce == 2 {
			match.Team2 = append(match.Team2, player)
		} else {
			match.Team1 = append(match.Team1, player)
		}
	}

	return match
}

// Players returns all players of the match, team 1 first.
func (m *Match) Players() []*MatchPlayer {
	players := make([]*MatchPlayer, 0, len(m.Team1)+len(m.Team2))
	players = append(players, m.Team1...)
	return append(players, m.Team2...)
}

// mapMatchItems resolves the four active-item slots of a match record.
// Empty slots and items missing from the bundle are skipped.
func mapMatchItems(info *ChampionInfo, ids [4]FlexInt, levels [4]int, level func(int) int) []MatchItem {
	var items []MatchItem
	for i, id := range ids {
		if id == 0 || info == nil {
			continue
		}
		item, ok := info.ItemByID(id.Int())
		if !ok {
			continue
		}
		items = append(items, MatchItem{Item: item, Level: level(levels[i])})
	}
	return items
}

// mapMatchLoadout resolves the five card slots and the talent slot of a
// match record.
func mapMatchLoadout(info *ChampionInfo, cardIDs [5]FlexInt, cardLevels [5]int, talentID int) MatchLoadout {
	var loadout MatchLoadout
	for i, id := range cardIDs {
		if id == 0 {
			continue
		}
		var card *Device
		if info != nil {
			card, _ = info.CardByID(id.Int())
		}
		loadout.Cards = append(loadout.Cards, LoadoutCard{Card: card, Points: cardLevels[i]})
	}
	if info != nil && talentID != 0 {
		loadout.Talent, _ = info.TalentByID(talentID)
	}
	return loadout
}
