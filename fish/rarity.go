package fish

import "fmt"

// Rarity is a catch classification with an associated price band and draw probability
type Rarity uint8

const (
	RarityCommon Rarity = iota
	RarityUncommon
	RarityRare
	RarityLegendary
	// RarityMythical is reserved: it has no draw band and no price range, Draw never produces it
	RarityMythical
	RaritySecret
)

var rarityNames = [...]string{
	RarityCommon:    "Common",
	RarityUncommon:  "Uncommon",
	RarityRare:      "Rare",
	RarityLegendary: "Legendary",
	RarityMythical:  "Mythical",
	RaritySecret:    "Secret",
}

func (r Rarity) String() string {
	if int(r) < len(rarityNames) {
		return rarityNames[r]
	}
	return "Unknown"
}

// ParseRarity matches the display name exactly, as the content service must echo it verbatim
func ParseRarity(s string) (Rarity, error) {
	for i, name := range rarityNames {
		if s == name {
			return Rarity(i), nil
		}
	}
	return 0, fmt.Errorf("unknown rarity %q", s)
}

// MarshalText encodes the rarity by display name
func (r Rarity) MarshalText() ([]byte, error) {
	if int(r) >= len(rarityNames) {
		return nil, fmt.Errorf("invalid rarity %d", r)
	}
	return []byte(rarityNames[r]), nil
}

// UnmarshalText is exact-match so a service echoing "secret" for "Secret" is rejected
func (r *Rarity) UnmarshalText(text []byte) error {
	parsed, err := ParseRarity(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
