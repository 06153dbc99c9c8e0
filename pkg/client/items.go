package client

import (
	"regexp"
	"strings"
)

// descPattern splits a device description of the form
// "[Ability] rest of the description" into its two parts.
var descPattern = regexp.MustCompile(`^\[(.+?)\] (.*)$`)

// Device represents a champion card, a champion talent or a shop item.
type Device struct {
	// ID of the device.
	ID int

	// Name of the device.
	Name string

	// Type of the device: card, talent, shop item, or undefined for
	// devices the API returns but which are not usable in game.
	Type DeviceType

	// Description of the device, with the ability prefix stripped.
	Description string

	// AbilityName is the ability (or champion aspect, like "Weapon" or
	// "Armor") this device affects. Empty for shop items.
	AbilityName string

	// Ability is the resolved champion ability, when AbilityName names
	// one. Nil for shop items and for non-ability aspects.
	Ability *Ability

	// Champion is the champion this device belongs to.
	// Nil for shop items.
	Champion *Champion

	// IconURL is the URL of this device's icon.
	IconURL string

	// Cooldown of this device in seconds. 0 when there is no cooldown.
	Cooldown int

	// Price of this device. 0 when it's free.
	Price int

	// UnlockedAt is the champion mastery level required to unlock this
	// device. Applies to talents only; 0 means unlocked by default.
	UnlockedAt int
}

// parseDeviceType derives the device type from the API's item_type
// vendor string.
func parseDeviceType(itemType string) DeviceType {
	switch {
	case itemType == "Inventory Vendor - Talents":
		return DeviceTypeTalent
	case strings.HasPrefix(itemType, "Card Vendor Rank"):
		return DeviceTypeCard
	case strings.HasPrefix(itemType, "Burn Card"):
		return DeviceTypeItem
	default:
		return DeviceTypeUndefined
	}
}

func newDevice(rec deviceRecord) *Device {
	desc := strings.TrimSpace(rec.Description)
	ability := ""
	if m := descPattern.FindStringSubmatch(desc); m != nil {
		ability = m[1]
		desc = m[2]
	}

	return &Device{
		ID:          rec.ItemID.Int(),
		Name:        rec.DeviceName,
		Type:        parseDeviceType(rec.ItemType),
		Description: desc,
		AbilityName: ability,
		IconURL:     rec.IconURL,
		Cooldown:    rec.RechargeSeconds,
		Price:       rec.Price,
		UnlockedAt:  rec.TalentRewardLevel,
	}
}

// attachChampion links the device to its champion and resolves the
// ability name against the champion's ability list.
func (d *Device) attachChampion(champion *Champion) {
	d.Champion = champion
	for i := range champion.Abilities {
		if champion.Abilities[i].Name == d.AbilityName {
			d.Ability = &champion.Abilities[i]
			break
		}
	}
}

// Equal reports whether two devices reference the same device.
func (d *Device) Equal(other *Device) bool {
	return other != nil && d.ID == other.ID
}

// LoadoutCard is one card of a loadout, with its assigned points.
type LoadoutCard struct {
	// Card is the card in this slot. Nil when the card could not be
	// resolved against the reference bundle.
	Card *Device

	// Points is the number of loadout points assigned to the card.
	Points int
}

// Loadout represents a champion loadout of a player.
type Loadout struct {
	// ID of the loadout.
	ID int

	// Name of the loadout.
	Name string

	// Player is the owner of this loadout.
	Player *PartialPlayer

	// Champion this loadout is for. Nil when the reference bundle for
	// the language was unavailable.
	Champion *Champion

	// Language of the cards in this loadout.
	Language Language

	// Cards this loadout consists of.
	Cards []LoadoutCard
}

func newLoadout(player *PartialPlayer, language Language, info *ChampionInfo, rec loadoutRecord) *Loadout {
	loadout := &Loadout{
		ID:       rec.DeckID.Int(),
		Name:     rec.DeckName,
		Player:   player,
		Language: language,
	}
	if info != nil {
		loadout.Champion, _ = info.ChampionByID(rec.ChampionID.Int())
	}
	for _, item := range rec.LoadoutItems {
		var card *Device
		if info != nil {
			card, _ = info.CardByID(item.ItemID.Int())
		}
		loadout.Cards = append(loadout.Cards, LoadoutCard{Card: card, Points: item.Points})
	}
	return loadout
}
