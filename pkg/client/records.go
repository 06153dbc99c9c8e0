package client

import (
	"bytes"
	"strconv"
	"time"
)

// FlexInt is an integer the API serves inconsistently: sometimes as a
// JSON number, sometimes as a decimal string, sometimes null or "".
// Anything unparseable decodes to 0, matching the "unknown id" sentinel.
type FlexInt int

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}
	if n, err := strconv.Atoi(string(data)); err == nil {
		*f = FlexInt(n)
		return nil
	}
	if v, err := strconv.ParseFloat(string(data), 64); err == nil {
		*f = FlexInt(int(v))
		return nil
	}
	*f = 0
	return nil
}

// Int returns the value as a plain int.
func (f FlexInt) Int() int {
	return int(f)
}

// timestampLayout matches the API's timestamp format, e.g.
// "5/1/2023 3:04:05 PM". Timestamps are in UTC.
const timestampLayout = "1/2/2006 3:04:05 PM"

// parseTimestamp converts an API timestamp to time.Time.
// A blank timestamp yields the zero time.
func parseTimestamp(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	t, err := time.ParseInLocation(timestampLayout, value, time.UTC)
	if err != nil {
		return time.Time{}
	}
	return t
}

// retMsgCarrier is implemented by wire records carrying the ret_msg
// field the API uses for error and no-data signals.
type retMsgCarrier interface {
	retMsg() string
}

// isEmptySignal reports whether a response is the service's "no data"
// signal: a single record whose ret_msg is non-empty. Such responses are
// an empty result, not a value and not an error.
func isEmptySignal[T retMsgCarrier](records []T) bool {
	return len(records) == 1 && records[0].retMsg() != ""
}

// mergedPlayerRecord is one entry of a player's merged profiles list.
type mergedPlayerRecord struct {
	PlayerID FlexInt `json:"playerId"`
	PortalID FlexInt `json:"portalId"`
}

// rankedRecord is the nested ranked-stats object in a player record.
type rankedRecord struct {
	Wins     int `json:"Wins"`
	Losses   int `json:"Losses"`
	Leaves   int `json:"Leaves"`
	Tier     int `json:"Tier"`
	Season   int `json:"Season"`
	Points   int `json:"Points"`
	Rank     int `json:"Rank"`
	PrevRank int `json:"PrevRank"`
	Trend    int `json:"Trend"`
}

// playerRecord is the getplayer response record.
type playerRecord struct {
	RetMsg            string               `json:"ret_msg"`
	ID                FlexInt              `json:"Id"`
	ActivePlayerID    FlexInt              `json:"ActivePlayerId"`
	Name              string               `json:"Name"`
	Platform          string               `json:"Platform"`
	MergedPlayers     []mergedPlayerRecord `json:"MergedPlayers"`
	CreatedDatetime   string               `json:"Created_Datetime"`
	LastLoginDatetime string               `json:"Last_Login_Datetime"`
	Level             int                  `json:"Level"`
	HoursPlayed       int                  `json:"HoursPlayed"`
	MasteryLevel      int                  `json:"MasteryLevel"`
	Region            string               `json:"Region"`
	TotalAchievements int                  `json:"Total_Achievements"`
	TotalWorshippers  int                  `json:"Total_Worshippers"`
	HzGamerTag        string               `json:"hz_gamer_tag"`
	HzPlayerName      string               `json:"hz_player_name"`
	Wins              int                  `json:"Wins"`
	Losses            int                  `json:"Losses"`
	Leaves            int                  `json:"Leaves"`
	RankedKBM         rankedRecord         `json:"RankedKBM"`
	RankedController  rankedRecord         `json:"RankedController"`
}

func (r playerRecord) retMsg() string { return r.RetMsg }

// partialPlayerRecord covers the player-reference records returned by
// the search and platform-lookup methods, which spell the id, name and
// platform fields three different ways between generations.
type partialPlayerRecord struct {
	RetMsg string `json:"ret_msg"`

	ID        FlexInt `json:"Id"`
	PlayerID  FlexInt `json:"player_id"`
	PlayerID2 FlexInt `json:"playerId"`

	Name        string `json:"Name"`
	NameLower   string `json:"name"`
	PlayerName  string `json:"playerName"`

	Platform  string  `json:"Platform"`
	PortalID  FlexInt `json:"portal_id"`
	PortalID2 FlexInt `json:"portalId"`
}

func (r partialPlayerRecord) retMsg() string { return r.RetMsg }

// id returns the first non-zero spelling of the player id.
func (r partialPlayerRecord) id() int {
	for _, id := range []FlexInt{r.ID, r.PlayerID, r.PlayerID2} {
		if id != 0 {
			return id.Int()
		}
	}
	return 0
}

// name returns the first non-empty spelling of the player name.
func (r partialPlayerRecord) name() string {
	for _, name := range []string{r.Name, r.NameLower, r.PlayerName} {
		if name != "" {
			return name
		}
	}
	return ""
}

// platform returns the record's platform, whichever spelling carries it.
func (r partialPlayerRecord) platform() Platform {
	if r.Platform != "" {
		return ParsePlatform(r.Platform)
	}
	if r.PortalID != 0 {
		return Platform(r.PortalID)
	}
	return Platform(r.PortalID2)
}

// playerStatusRecord is the getplayerstatus response record.
type playerStatusRecord struct {
	RetMsg       string  `json:"ret_msg"`
	Match        FlexInt `json:"Match"`
	MatchQueueID FlexInt `json:"match_queue_id"`
	Status       int     `json:"status"`
}

func (r playerStatusRecord) retMsg() string { return r.RetMsg }

// serverStatusRecord is one per-platform entry of gethirezserverstatus.
type serverStatusRecord struct {
	RetMsg        string `json:"ret_msg"`
	Environment   string `json:"environment"`
	Platform      string `json:"platform"`
	Status        string `json:"status"`
	LimitedAccess bool   `json:"limited_access"`
	Version       string `json:"version"`
}

func (r serverStatusRecord) retMsg() string { return r.RetMsg }

// abilityRecord is a nested champion ability object.
type abilityRecord struct {
	Summary         string  `json:"Summary"`
	ID              FlexInt `json:"Id"`
	Description     string  `json:"Description"`
	DamageType      string  `json:"damageType"`
	RechargeSeconds int     `json:"rechargeSeconds"`
	URL             string  `json:"URL"`
}

// championRecord is the getgods response record.
type championRecord struct {
	RetMsg   string  `json:"ret_msg"`
	Name     string  `json:"Name"`
	ID       FlexInt `json:"id"`
	Title    string  `json:"Title"`
	Roles    string  `json:"Roles"`
	IconURL  string  `json:"ChampionIcon_URL"`
	Lore     string  `json:"Lore"`
	Health   int     `json:"Health"`
	Speed    int     `json:"Speed"`
	Ability1 abilityRecord `json:"Ability_1"`
	Ability2 abilityRecord `json:"Ability_2"`
	Ability3 abilityRecord `json:"Ability_3"`
	Ability4 abilityRecord `json:"Ability_4"`
	Ability5 abilityRecord `json:"Ability_5"`
}

func (r championRecord) retMsg() string { return r.RetMsg }

// deviceRecord is the getitems response record.
type deviceRecord struct {
	RetMsg            string  `json:"ret_msg"`
	ItemID            FlexInt `json:"ItemId"`
	ChampionID        FlexInt `json:"champion_id"`
	DeviceName        string  `json:"DeviceName"`
	Description       string  `json:"Description"`
	ItemType          string  `json:"item_type"`
	IconURL           string  `json:"itemIcon_URL"`
	RechargeSeconds   int     `json:"recharge_seconds"`
	Price             int     `json:"Price"`
	TalentRewardLevel int     `json:"talent_reward_level"`
}

func (r deviceRecord) retMsg() string { return r.RetMsg }

// friendRecord is the getfriends response record.
type friendRecord struct {
	RetMsg   string  `json:"ret_msg"`
	PlayerID FlexInt `json:"player_id"`
	Name     string  `json:"name"`
}

func (r friendRecord) retMsg() string { return r.RetMsg }

// loadoutItemRecord is one card slot of a loadout record.
type loadoutItemRecord struct {
	ItemID FlexInt `json:"ItemId"`
	Points int     `json:"Points"`
}

// loadoutRecord is the getplayerloadouts response record.
type loadoutRecord struct {
	RetMsg       string              `json:"ret_msg"`
	PlayerID     FlexInt             `json:"playerId"`
	DeckID       FlexInt             `json:"DeckId"`
	DeckName     string              `json:"DeckName"`
	ChampionID   FlexInt             `json:"ChampionId"`
	LoadoutItems []loadoutItemRecord `json:"LoadoutItems"`
}

func (r loadoutRecord) retMsg() string { return r.RetMsg }

// championStatsRecord is the getgodranks response record.
type championStatsRecord struct {
	RetMsg     string  `json:"ret_msg"`
	ChampionID FlexInt `json:"champion_id"`
	Kills      int     `json:"Kills"`
	Deaths     int     `json:"Deaths"`
	Assists    int     `json:"Assists"`
	Wins       int     `json:"Wins"`
	Losses     int     `json:"Losses"`
	LastPlayed string  `json:"LastPlayed"`
	Rank       int     `json:"Rank"`
	Worshippers int    `json:"Worshippers"`
	Gold       int     `json:"Gold"`
	Minutes    int     `json:"Minutes"`
}

func (r championStatsRecord) retMsg() string { return r.RetMsg }

// matchHistoryRecord is the getmatchhistory response record: one match
// of the requesting player's history, stats for that player only.
type matchHistoryRecord struct {
	RetMsg string `json:"ret_msg"`

	Match               FlexInt `json:"Match"`
	ChampionID          FlexInt `json:"ChampionId"`
	MatchQueueID        FlexInt `json:"Match_Queue_Id"`
	Region              string  `json:"Region"`
	TimeInMatchSeconds  int     `json:"Time_In_Match_Seconds"`
	MatchTime           string  `json:"Match_Time"`
	MapGame             string  `json:"Map_Game"`

	Kills   int `json:"Kills"`
	Deaths  int `json:"Deaths"`
	Assists int `json:"Assists"`

	Gold              int `json:"Gold"`
	Damage            int `json:"Damage"`
	DamageTaken       int `json:"Damage_Taken"`
	DamageBot         int `json:"Damage_Bot"`
	Healing           int `json:"Healing"`
	HealingPlayerSelf int `json:"Healing_Player_Self"`
	HealingBot        int `json:"Healing_Bot"`
	ObjectiveAssists  int `json:"Objective_Assists"`
	MultiKillMax      int `json:"Multi_kill_Max"`

	TaskForce        int `json:"TaskForce"`
	Team1Score       int `json:"Team1Score"`
	Team2Score       int `json:"Team2Score"`
	WinningTaskForce int `json:"Winning_TaskForce"`

	ActiveID1    FlexInt `json:"ActiveId1"`
	ActiveID2    FlexInt `json:"ActiveId2"`
	ActiveID3    FlexInt `json:"ActiveId3"`
	ActiveID4    FlexInt `json:"ActiveId4"`
	ActiveLevel1 int     `json:"ActiveLevel1"`
	ActiveLevel2 int     `json:"ActiveLevel2"`
	ActiveLevel3 int     `json:"ActiveLevel3"`
	ActiveLevel4 int     `json:"ActiveLevel4"`

	ItemID1    FlexInt `json:"ItemId1"`
	ItemID2    FlexInt `json:"ItemId2"`
	ItemID3    FlexInt `json:"ItemId3"`
	ItemID4    FlexInt `json:"ItemId4"`
	ItemID5    FlexInt `json:"ItemId5"`
	ItemID6    FlexInt `json:"ItemId6"`
	ItemLevel1 int     `json:"ItemLevel1"`
	ItemLevel2 int     `json:"ItemLevel2"`
	ItemLevel3 int     `json:"ItemLevel3"`
	ItemLevel4 int     `json:"ItemLevel4"`
	ItemLevel5 int     `json:"ItemLevel5"`
}

func (r matchHistoryRecord) retMsg() string { return r.RetMsg }

func (r matchHistoryRecord) activeIDs() [4]FlexInt {
	return [4]FlexInt{r.ActiveID1, r.ActiveID2, r.ActiveID3, r.ActiveID4}
}

func (r matchHistoryRecord) activeLevels() [4]int {
	return [4]int{r.ActiveLevel1, r.ActiveLevel2, r.ActiveLevel3, r.ActiveLevel4}
}

func (r matchHistoryRecord) cardIDs() [5]FlexInt {
	return [5]FlexInt{r.ItemID1, r.ItemID2, r.ItemID3, r.ItemID4, r.ItemID5}
}

func (r matchHistoryRecord) cardLevels() [5]int {
	return [5]int{r.ItemLevel1, r.ItemLevel2, r.ItemLevel3, r.ItemLevel4, r.ItemLevel5}
}

// matchDetailRecord is the getmatchdetails response record: one per
// player in the match, with the match-level fields repeated.
type matchDetailRecord struct {
	RetMsg string `json:"ret_msg"`

	Match              FlexInt `json:"Match"`
	MatchQueueID       FlexInt `json:"match_queue_id"`
	Region             string  `json:"Region"`
	MapGame            string  `json:"Map_Game"`
	TimeInMatchSeconds int     `json:"Time_In_Match_Seconds"`
	Team1Score         int     `json:"Team1Score"`
	Team2Score         int     `json:"Team2Score"`
	WinningTaskForce   int     `json:"Winning_TaskForce"`

	BanID1 FlexInt `json:"BanId1"`
	BanID2 FlexInt `json:"BanId2"`
	BanID3 FlexInt `json:"BanId3"`
	BanID4 FlexInt `json:"BanId4"`

	TaskForce      int     `json:"TaskForce"`
	PlayerName     string  `json:"playerName"`
	PlayerID       FlexInt `json:"playerId"`
	PlayerPortalID FlexInt `json:"playerPortalId"`
	ChampionID     FlexInt `json:"ChampionId"`

	KillsPlayer int `json:"Kills_Player"`
	Deaths      int `json:"Deaths"`
	Assists     int `json:"Assists"`

	GoldEarned         int `json:"Gold_Earned"`
	DamageDonePhysical int `json:"Damage_Done_Physical"`
	DamageTaken        int `json:"Damage_Taken"`
	DamageBot          int `json:"Damage_Bot"`
	Healing            int `json:"Healing"`
	HealingPlayerSelf  int `json:"Healing_Player_Self"`
	HealingBot         int `json:"Healing_Bot"`
	ObjectiveAssists   int `json:"Objective_Assists"`
	MultiKillMax       int `json:"Multi_kill_Max"`

	KillsBot    int `json:"Kills_Bot"`
	KillsDouble int `json:"Kills_Double"`
	KillsTriple int `json:"Kills_Triple"`
	KillsQuadra int `json:"Kills_Quadra"`
	KillsPenta  int `json:"Kills_Penta"`

	ActiveID1    FlexInt `json:"ActiveId1"`
	ActiveID2    FlexInt `json:"ActiveId2"`
	ActiveID3    FlexInt `json:"ActiveId3"`
	ActiveID4    FlexInt `json:"ActiveId4"`
	ActiveLevel1 int     `json:"ActiveLevel1"`
	ActiveLevel2 int     `json:"ActiveLevel2"`
	ActiveLevel3 int     `json:"ActiveLevel3"`
	ActiveLevel4 int     `json:"ActiveLevel4"`

	ItemID1    FlexInt `json:"ItemId1"`
	ItemID2    FlexInt `json:"ItemId2"`
	ItemID3    FlexInt `json:"ItemId3"`
	ItemID4    FlexInt `json:"ItemId4"`
	ItemID5    FlexInt `json:"ItemId5"`
	ItemID6    FlexInt `json:"ItemId6"`
	ItemLevel1 int     `json:"ItemLevel1"`
	ItemLevel2 int     `json:"ItemLevel2"`
	ItemLevel3 int     `json:"ItemLevel3"`
	ItemLevel4 int     `json:"ItemLevel4"`
	ItemLevel5 int     `json:"ItemLevel5"`
}

func (r matchDetailRecord) retMsg() string { return r.RetMsg }

func (r matchDetailRecord) activeIDs() [4]FlexInt {
	return [4]FlexInt{r.ActiveID1, r.ActiveID2, r.ActiveID3, r.ActiveID4}
}

func (r matchDetailRecord) activeLevels() [4]int {
	return [4]int{r.ActiveLevel1, r.ActiveLevel2, r.ActiveLevel3, r.ActiveLevel4}
}

func (r matchDetailRecord) cardIDs() [5]FlexInt {
	return [5]FlexInt{r.ItemID1, r.ItemID2, r.ItemID3, r.ItemID4, r.ItemID5}
}

func (r matchDetailRecord) cardLevels() [5]int {
	return [5]int{r.ItemLevel1, r.ItemLevel2, r.ItemLevel3, r.ItemLevel4, r.ItemLevel5}
}

func (r matchDetailRecord) banIDs() [4]FlexInt {
	return [4]FlexInt{r.BanID1, r.BanID2, r.BanID3, r.BanID4}
}
