package client

import (
	"testing"

	"github.com/bytedance/sonic"
)

// testChampionInfo decodes the shared fixture bodies into a bundle.
func testChampionInfo(t *testing.T) *ChampionInfo {
	t.Helper()

	var champions []championRecord
	if err := sonic.Unmarshal([]byte(championsBody), &champions); err != nil {
		t.Fatalf("decode champions fixture: %v", err)
	}
	var devices []deviceRecord
	if err := sonic.Unmarshal([]byte(devicesBody), &devices); err != nil {
		t.Fatalf("decode devices fixture: %v", err)
	}
	return newChampionInfo(LanguageEnglish, champions, devices)
}

func TestNewChampionInfo(t *testing.T) {
	info := testChampionInfo(t)

	if info.Language != LanguageEnglish {
		t.Errorf("Language = %v, want English", info.Language)
	}
	if len(info.Champions) != 2 || len(info.Devices) != 4 {
		t.Fatalf("bundle = %d champions, %d devices, want 2, 4", len(info.Champions), len(info.Devices))
	}

	andro, ok := info.ChampionByID(2056)
	if !ok {
		t.Fatal("ChampionByID(2056) not found")
	}
	if andro.Name != "Androxus" || andro.Title != "The Godslayer" {
		t.Errorf("champion = %q (%q), want Androxus (The Godslayer)", andro.Name, andro.Title)
	}
	if andro.Role != "Flank" {
		t.Errorf("Role = %q, want Flank (prefix stripped)", andro.Role)
	}
	if len(andro.Abilities) != 2 {
		t.Fatalf("Androxus has %d abilities, want 2", len(andro.Abilities))
	}
	if len(andro.Cards) != 2 || len(andro.Talents) != 1 {
		t.Errorf("Androxus has %d cards and %d talents, want 2 and 1", len(andro.Cards), len(andro.Talents))
	}
	if andro.IsComplete() {
		t.Error("IsComplete() = true with a partial device set")
	}

	// Shop items are global, not attached to any champion.
	if len(info.Items()) != 1 || info.Items()[0].Name != "Cauterize" {
		t.Errorf("Items() = %v, want [Cauterize]", info.Items())
	}
	if info.Items()[0].Champion != nil {
		t.Error("shop item has a champion attached")
	}
}

func TestNewChampion_DeviceWiring(t *testing.T) {
	info := testChampionInfo(t)
	andro, _ := info.ChampionByID(2056)

	card, ok := andro.CardByName("Quick Draw")
	if !ok {
		t.Fatal("CardByName(Quick Draw) not found")
	}
	if card.Champion != andro {
		t.Error("card not linked back to its champion")
	}
	if card.AbilityName != "Revolver" {
		t.Errorf("AbilityName = %q, want Revolver", card.AbilityName)
	}
	if card.Ability == nil || card.Ability.ID != 11 {
		t.Errorf("Ability = %v, want the Revolver ability", card.Ability)
	}
	if card.Description != "Reduce reload time." {
		t.Errorf("Description = %q, want prefix stripped", card.Description)
	}

	talent, ok := andro.TalentByName("Cursed Revolver")
	if !ok {
		t.Fatal("TalentByName(Cursed Revolver) not found")
	}
	if talent.UnlockedAt != 8 {
		t.Errorf("UnlockedAt = %d, want 8", talent.UnlockedAt)
	}
	// "Armor" names a champion aspect, not an ability.
	if talent.Ability != nil {
		t.Errorf("talent Ability = %v, want nil", talent.Ability)
	}
}

func TestNewAbility_DescriptionCleanup(t *testing.T) {
	info := testChampionInfo(t)
	andro, _ := info.ChampionByID(2056)

	ability, ok := andro.AbilityByName("Nether Step")
	if !ok {
		t.Fatal("AbilityByName(Nether Step) not found")
	}
	if ability.Description != "[Area Damage] Dash three times." {
		t.Errorf("Description = %q, want carriage returns and double spaces collapsed", ability.Description)
	}
	if ability.Type != AbilityTypeArea {
		t.Errorf("Type = %v, want Area", ability.Type)
	}
	if ability.Cooldown != 12 {
		t.Errorf("Cooldown = %d, want 12", ability.Cooldown)
	}
}

func TestChampion_Equal(t *testing.T) {
	info := testChampionInfo(t)
	andro, _ := info.ChampionByID(2056)
	furia, _ := info.ChampionByName("Furia")

	if !andro.Equal(andro) {
		t.Error("Equal() = false for the same champion")
	}
	if andro.Equal(furia) {
		t.Error("Equal() = true for different champions")
	}
	if andro.Equal(nil) {
		t.Error("Equal(nil) = true")
	}
}

func TestParseDeviceType(t *testing.T) {
	tests := []struct {
		itemType string
		want     DeviceType
	}{
		{"Inventory Vendor - Talents", DeviceTypeTalent},
		{"Card Vendor Rank 1 Epic", DeviceTypeCard},
		{"Card Vendor Rank 4 Common", DeviceTypeCard},
		{"Burn Card Damage Vendor", DeviceTypeItem},
		{"Burn Card Defense Vendor", DeviceTypeItem},
		{"Inventory Vendor - Champion Skins", DeviceTypeUndefined},
		{"", DeviceTypeUndefined},
	}
	for _, tt := range tests {
		t.Run(tt.itemType, func(t *testing.T) {
			if got := parseDeviceType(tt.itemType); got != tt.want {
				t.Errorf("parseDeviceType(%q) = %v, want %v", tt.itemType, got, tt.want)
			}
		})
	}
}
