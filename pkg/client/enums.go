package client

import (
	"strconv"
	"strings"
)

// Language represents the response language for reference data.
// It is the key the reference-data cache is scoped by.
type Language int

// Supported response languages.
const (
	LanguageEnglish      Language = 1
	LanguageGerman       Language = 2
	LanguageFrench       Language = 3
	LanguageChinese      Language = 5
	LanguageSpanish      Language = 7
	LanguageLatinAmerica Language = 9
	LanguagePortuguese   Language = 10
	LanguageRussian      Language = 11
	LanguagePolish       Language = 12
	LanguageTurkish      Language = 13
)

func (l Language) String() string {
	switch l {
	case LanguageEnglish:
		return "English"
	case LanguageGerman:
		return "German"
	case LanguageFrench:
		return "French"
	case LanguageChinese:
		return "Chinese"
	case LanguageSpanish:
		return "Spanish"
	case LanguageLatinAmerica:
		return "Latin America"
	case LanguagePortuguese:
		return "Portuguese"
	case LanguageRussian:
		return "Russian"
	case LanguagePolish:
		return "Polish"
	case LanguageTurkish:
		return "Turkish"
	default:
		return "Unknown"
	}
}

// Platform represents a player's platform.
type Platform int

// Known platforms.
const (
	PlatformUnknown Platform = 0
	PlatformPC      Platform = 1
	PlatformSteam   Platform = 5
	PlatformPS4     Platform = 9
	PlatformXbox    Platform = 10
	PlatformMixer   Platform = 14
	PlatformSwitch  Platform = 22
	PlatformDiscord Platform = 25
)

func (p Platform) String() string {
	switch p {
	case PlatformPC:
		return "PC"
	case PlatformSteam:
		return "Steam"
	case PlatformPS4:
		return "PS4"
	case PlatformXbox:
		return "Xbox"
	case PlatformMixer:
		return "Mixer"
	case PlatformSwitch:
		return "Switch"
	case PlatformDiscord:
		return "Discord"
	default:
		return "Unknown"
	}
}

// SearchesByName reports whether player search on this platform goes
// through the name-based lookup method. PC-class platforms and Discord
// do; consoles search by gamer tag instead.
func (p Platform) SearchesByName() bool {
	return p <= PlatformSteam || p == PlatformDiscord
}

// platformNames maps the platform spellings the API uses in player
// records to their values. Records may also carry decimal strings.
var platformNames = map[string]Platform{
	"pc":              PlatformPC,
	"hirez":           PlatformPC,
	"steam":           PlatformSteam,
	"ps4":             PlatformPS4,
	"psn":             PlatformPS4,
	"xbox":            PlatformXbox,
	"xboxlive":        PlatformXbox,
	"xbox one":        PlatformXbox,
	"mixer":           PlatformMixer,
	"switch":          PlatformSwitch,
	"nintendo switch": PlatformSwitch,
	"discord":         PlatformDiscord,
}

// ParsePlatform resolves a platform from the API's mixed representations:
// a platform name, a decimal string, or an empty value.
func ParsePlatform(value string) Platform {
	if value == "" {
		return PlatformUnknown
	}
	if n, err := strconv.Atoi(value); err == nil {
		return Platform(n)
	}
	if p, ok := platformNames[strings.ToLower(value)]; ok {
		return p
	}
	return PlatformUnknown
}

// Region represents a player's region.
type Region int

// Known regions.
const (
	RegionUnknown           Region = 0
	RegionNorthAmerica      Region = 1
	RegionEurope            Region = 2
	RegionOceania           Region = 3
	RegionBrazil            Region = 4
	RegionLatinAmericaNorth Region = 5
	RegionSoutheastAsia     Region = 6
)

func (r Region) String() string {
	switch r {
	case RegionNorthAmerica:
		return "North America"
	case RegionEurope:
		return "Europe"
	case RegionOceania:
		return "Oceania"
	case RegionBrazil:
		return "Brazil"
	case RegionLatinAmericaNorth:
		return "Latin America North"
	case RegionSoutheastAsia:
		return "Southeast Asia"
	default:
		return "Unknown"
	}
}

// regionNames maps the region spellings the API uses in player records.
var regionNames = map[string]Region{
	"north america":       RegionNorthAmerica,
	"na":                  RegionNorthAmerica,
	"europe":              RegionEurope,
	"eu":                  RegionEurope,
	"oceania":             RegionOceania,
	"oce":                 RegionOceania,
	"brazil":              RegionBrazil,
	"latin america north": RegionLatinAmericaNorth,
	"latam":               RegionLatinAmericaNorth,
	"southeast asia":      RegionSoutheastAsia,
	"sea":                 RegionSoutheastAsia,
}

// ParseRegion resolves a region from a name or decimal string.
func ParseRegion(value string) Region {
	if value == "" {
		return RegionUnknown
	}
	if n, err := strconv.Atoi(value); err == nil {
		return Region(n)
	}
	if r, ok := regionNames[strings.ToLower(value)]; ok {
		return r
	}
	return RegionUnknown
}

// Queue represents a match queue.
type Queue int

// Known match queues.
const (
	QueueUnknown                Queue = 0
	QueueCasualSiege            Queue = 424
	QueueTrainingSiege          Queue = 425
	QueueCompetitiveController  Queue = 428
	QueueShootingRange          Queue = 434
	QueueTestMaps               Queue = 445
	QueueOnslaught              Queue = 452
	QueueTrainingOnslaught      Queue = 453
	QueueTeamDeathmatch         Queue = 469
	QueueTrainingTeamDeathmatch Queue = 470
	QueueCompetitiveKeyboard    Queue = 486
)

func (q Queue) String() string {
	switch q {
	case QueueCasualSiege:
		return "Casual Siege"
	case QueueTrainingSiege:
		return "Training Siege"
	case QueueCompetitiveController:
		return "Competitive Controller"
	case QueueShootingRange:
		return "Shooting Range"
	case QueueTestMaps:
		return "Test Maps"
	case QueueOnslaught:
		return "Onslaught"
	case QueueTrainingOnslaught:
		return "Training Onslaught"
	case QueueTeamDeathmatch:
		return "Team Deathmatch"
	case QueueTrainingTeamDeathmatch:
		return "Training Team Deathmatch"
	default:
		return "Unknown"
	}
}

// Ranked reports whether the queue is one of the competitive queues.
func (q Queue) Ranked() bool {
	return q == QueueCompetitiveKeyboard || q == QueueCompetitiveController
}

// Rank represents a player's competitive rank.
type Rank int

// Competitive ranks, in ascending order.
const (
	RankQualifying  Rank = 0
	RankBronzeV     Rank = 1
	RankBronzeIV    Rank = 2
	RankBronzeIII   Rank = 3
	RankBronzeII    Rank = 4
	RankBronzeI     Rank = 5
	RankSilverV     Rank = 6
	RankSilverIV    Rank = 7
	RankSilverIII   Rank = 8
	RankSilverII    Rank = 9
	RankSilverI     Rank = 10
	RankGoldV       Rank = 11
	RankGoldIV      Rank = 12
	RankGoldIII     Rank = 13
	RankGoldII      Rank = 14
	RankGoldI       Rank = 15
	RankPlatinumV   Rank = 16
	RankPlatinumIV  Rank = 17
	RankPlatinumIII Rank = 18
	RankPlatinumII  Rank = 19
	RankPlatinumI   Rank = 20
	RankDiamondV    Rank = 21
	RankDiamondIV   Rank = 22
	RankDiamondIII  Rank = 23
	RankDiamondII   Rank = 24
	RankDiamondI    Rank = 25
	RankMaster      Rank = 26
	RankGrandmaster Rank = 27
)

var rankDivisions = [...]string{"V", "IV", "III", "II", "I"}

func (r Rank) String() string {
	switch {
	case r == RankQualifying:
		return "Qualifying"
	case r == RankMaster:
		return "Master"
	case r == RankGrandmaster:
		return "Grandmaster"
	case r >= RankBronzeV && r <= RankDiamondI:
		tiers := [...]string{"Bronze", "Silver", "Gold", "Platinum", "Diamond"}
		idx := int(r) - 1
		return tiers[idx/5] + " " + rankDivisions[idx%5]
	default:
		return "Unknown"
	}
}

// DeviceType represents a type of device: talent, card or shop item.
type DeviceType int

// Device types.
const (
	DeviceTypeUndefined DeviceType = 0
	DeviceTypeItem      DeviceType = 1
	DeviceTypeCard      DeviceType = 2
	DeviceTypeTalent    DeviceType = 3
)

func (d DeviceType) String() string {
	switch d {
	case DeviceTypeItem:
		return "Item"
	case DeviceTypeCard:
		return "Card"
	case DeviceTypeTalent:
		return "Talent"
	default:
		return "Undefined"
	}
}

// AbilityType represents the damage type of a champion ability.
type AbilityType int

// Ability types.
const (
	AbilityTypeUndefined AbilityType = 0
	AbilityTypeDirect    AbilityType = 1
	AbilityTypeArea      AbilityType = 2
)

func (a AbilityType) String() string {
	switch a {
	case AbilityTypeDirect:
		return "Direct Damage"
	case AbilityTypeArea:
		return "Area Damage"
	default:
		return "Undefined"
	}
}

// ParseAbilityType resolves an ability type from the API's damageType
// field values.
func ParseAbilityType(value string) AbilityType {
	switch strings.ToLower(value) {
	case "direct damage", "direct":
		return AbilityTypeDirect
	case "area damage", "aoe":
		return AbilityTypeArea
	default:
		return AbilityTypeUndefined
	}
}

// Activity represents a player's in-game status.
type Activity int

// Player activities. ActivityUnknown doubles as the API's
// "player not found" signal in status responses.
const (
	ActivityOffline            Activity = 0
	ActivityInLobby            Activity = 1
	ActivityCharacterSelection Activity = 2
	ActivityInMatch            Activity = 3
	ActivityOnline             Activity = 4
	ActivityUnknown            Activity = 5
)

func (a Activity) String() string {
	switch a {
	case ActivityOffline:
		return "Offline"
	case ActivityInLobby:
		return "In Lobby"
	case ActivityCharacterSelection:
		return "Character Selection"
	case ActivityInMatch:
		return "In Match"
	case ActivityOnline:
		return "Online"
	default:
		return "Unknown"
	}
}
