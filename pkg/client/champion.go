package client

import (
	"sort"
	"strings"

	"github.com/DevilXD/HiRezAPI/pkg/lookup"
)

// Ability represents a champion's ability.
type Ability struct {
	// ID of the ability.
	ID int

	// Name of the ability.
	Name string

	// Description of the ability.
	Description string

	// Type is the ability's damage type.
	Type AbilityType

	// Cooldown of the ability in seconds.
	Cooldown int

	// IconURL is the URL of this ability's icon.
	IconURL string
}

func newAbility(rec abilityRecord) Ability {
	desc := strings.TrimSpace(rec.Description)
	desc = strings.ReplaceAll(desc, "\r", " ")
	desc = strings.ReplaceAll(desc, "  ", " ")

	return Ability{
		ID:          rec.ID.Int(),
		Name:        rec.Summary,
		Description: desc,
		Type:        ParseAbilityType(rec.DamageType),
		Cooldown:    rec.RechargeSeconds,
		IconURL:     rec.URL,
	}
}

// rolePrefix is the champion role prefix the API prepends, e.g.
// "Paladins Flanker".
const rolePrefix = "Paladins "

// Champion represents a champion, with its cards and talents attached.
type Champion struct {
	// ID of the champion.
	ID int

	// Name of the champion.
	Name string

	// Title of the champion.
	Title string

	// Role of the champion.
	Role string

	// IconURL is the URL of this champion's icon.
	IconURL string

	// Lore of the champion.
	Lore string

	// Health is the champion's base health.
	Health int

	// Speed is the champion's base movement speed.
	Speed int

	// Abilities of the champion.
	Abilities []Ability

	// Cards of the champion, sorted by the ability they affect.
	Cards []*Device

	// Talents of the champion, sorted by unlock level.
	Talents []*Device
}

// newChampion builds a champion and attaches its devices, partitioning
// them into cards and talents. Undefined devices are skipped.
func newChampion(rec championRecord, devices []*Device) *Champion {
	role := rec.Roles
	if len(role) > len(rolePrefix) {
		role = strings.ReplaceAll(role[len(rolePrefix):], "er", "")
	}

	champion := &Champion{
		ID:      rec.ID.Int(),
		Name:    rec.Name,
		Title:   rec.Title,
		Role:    role,
		IconURL: rec.IconURL,
		Lore:    rec.Lore,
		Health:  rec.Health,
		Speed:   rec.Speed,
	}

	for _, ability := range [...]abilityRecord{rec.Ability1, rec.Ability2, rec.Ability3, rec.Ability4, rec.Ability5} {
		if ability.ID == 0 {
			continue
		}
		champion.Abilities = append(champion.Abilities, newAbility(ability))
	}

	for _, device := range devices {
		switch device.Type {
		case DeviceTypeCard:
			champion.Cards = append(champion.Cards, device)
		case DeviceTypeTalent:
			champion.Talents = append(champion.Talents, device)
		case DeviceTypeUndefined:
			continue
		}
		device.attachChampion(champion)
	}

	sort.Slice(champion.Cards, func(i, j int) bool {
		return champion.Cards[i].AbilityName < champion.Cards[j].AbilityName
	})
	sort.Slice(champion.Talents, func(i, j int) bool {
		return champion.Talents[i].UnlockedAt < champion.Talents[j].UnlockedAt
	})

	return champion
}

// Equal reports whether two champions reference the same champion.
func (c *Champion) Equal(other *Champion) bool {
	return other != nil && c.ID == other.ID
}

// IsComplete reports whether the API returned the full device set for
// this champion: 16 cards and 3 talents. New champions are sometimes
// published with partial data.
func (c *Champion) IsComplete() bool {
	return len(c.Cards) == 16 && len(c.Talents) == 3
}

// CardByID returns the champion's card with the given ID.
func (c *Champion) CardByID(id int) (*Device, bool) {
	return lookup.ByID(c.Cards, id)
}

// CardByName returns the champion's card with the given name.
// Case sensitive.
func (c *Champion) CardByName(name string) (*Device, bool) {
	return lookup.ByName(c.Cards, name)
}

// TalentByID returns the champion's talent with the given ID.
func (c *Champion) TalentByID(id int) (*Device, bool) {
	return lookup.ByID(c.Talents, id)
}

// TalentByName returns the champion's talent with the given name.
// Case sensitive.
func (c *Champion) TalentByName(name string) (*Device, bool) {
	return lookup.ByName(c.Talents, name)
}

// AbilityByName returns the champion's ability with the given name.
func (c *Champion) AbilityByName(name string) (*Ability, bool) {
	for i := range c.Abilities {
		if c.Abilities[i].Name == name {
			return &c.Abilities[i], true
		}
	}
	return nil, false
}

// ChampionInfo is an immutable, language-scoped bundle of the champion
// and device catalogs. It is built from one atomic pair of fetches -
// champions and devices - that must both succeed, because cards and
// talents hold references into the champion catalog.
//
// Once returned to a caller, a bundle is read-only shared data: the
// cache replaces its stored bundle as a whole and never mutates one.
type ChampionInfo struct {
	// Language this bundle was fetched in.
	Language Language

	// Champions lists all champions, with devices attached.
	Champions []*Champion

	// Devices lists all devices, including ones the API returns but
	// which are not usable in game (DeviceTypeUndefined).
	Devices []*Device
}

// newChampionInfo groups devices per champion, then builds the champions
// with their devices attached.
func newChampionInfo(language Language, champions []championRecord, devices []deviceRecord) *ChampionInfo {
	info := &ChampionInfo{Language: language}

	byChampion := make(map[int][]*Device)
	for _, rec := range devices {
		device := newDevice(rec)
		info.Devices = append(info.Devices, device)
		championID := rec.ChampionID.Int()
		byChampion[championID] = append(byChampion[championID], device)
	}

	for _, rec := range champions {
		info.Champions = append(info.Champions, newChampion(rec, byChampion[rec.ID.Int()]))
	}

	return info
}

// filterDevices returns the devices of one type.
func (i *ChampionInfo) filterDevices(deviceType DeviceType) []*Device {
	var filtered []*Device
	for _, d := range i.Devices {
		if d.Type == deviceType {
			filtered = append(filtered, d)
		}
	}
	return filtered
}

// Cards returns all champion cards.
func (i *ChampionInfo) Cards() []*Device {
	return i.filterDevices(DeviceTypeCard)
}

// Talents returns all champion talents.
func (i *ChampionInfo) Talents() []*Device {
	return i.filterDevices(DeviceTypeTalent)
}

// Items returns all shop items.
func (i *ChampionInfo) Items() []*Device {
	return i.filterDevices(DeviceTypeItem)
}

// ChampionByID returns the champion with the given ID.
func (i *ChampionInfo) ChampionByID(id int) (*Champion, bool) {
	return lookup.ByID(i.Champions, id)
}

// ChampionByName returns the champion with the given name.
// Case sensitive.
func (i *ChampionInfo) ChampionByName(name string) (*Champion, bool) {
	return lookup.ByName(i.Champions, name)
}

// CardByID returns the card with the given ID.
func (i *ChampionInfo) CardByID(id int) (*Device, bool) {
	return lookup.ByID(i.Cards(), id)
}

// CardByName returns the card with the given name. Case sensitive.
func (i *ChampionInfo) CardByName(name string) (*Device, bool) {
	return lookup.ByName(i.Cards(), name)
}

// TalentByID returns the talent with the given ID.
func (i *ChampionInfo) TalentByID(id int) (*Device, bool) {
	return lookup.ByID(i.Talents(), id)
}

// TalentByName returns the talent with the given name. Case sensitive.
func (i *ChampionInfo) TalentByName(name string) (*Device, bool) {
	return lookup.ByName(i.Talents(), name)
}

// ItemByID returns the shop item with the given ID.
func (i *ChampionInfo) ItemByID(id int) (*Device, bool) {
	return lookup.ByID(i.Items(), id)
}

// ItemByName returns the shop item with the given name. Case sensitive.
func (i *ChampionInfo) ItemByName(name string) (*Device, bool) {
	return lookup.ByName(i.Items(), name)
}
