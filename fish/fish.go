package fish

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Generated is the untrusted catch description returned by the content service
type Generated struct {
	Name        string  `json:"name" yaml:"name" jsonschema:"description=Creative name of the fish"`
	Rarity      Rarity  `json:"rarity" yaml:"rarity" jsonschema:"description=Must equal the requested rarity"`
	Weight      float64 `json:"weight" yaml:"weight" jsonschema:"description=Weight in lbs appropriate for rarity,exclusiveMinimum=0"`
	Description string  `json:"description" yaml:"description" jsonschema:"description=Short witty 16-bit RPG style description"`
	Color       string  `json:"color" yaml:"color" jsonschema:"description=Hex color code for the fish body,pattern=^#[0-9a-fA-F]{6}$"`
	Price       int     `json:"price" yaml:"price" jsonschema:"description=Gold value inside the requested price range"`
}

// Fish is a landed catch; values are never mutated after NewFish
type Fish struct {
	ID        string    `json:"id" yaml:"id"`
	CaughtAt  time.Time `json:"caughtAt" yaml:"caughtAt"`
	Generated `yaml:",inline"`
}

// NewFish stamps a validated or fallback description with identity and capture time
func NewFish(g Generated, now time.Time) Fish {
	return Fish{
		ID:        uuid.NewString(),
		CaughtAt:  now,
		Generated: g,
	}
}

// Fallback is substituted whenever the content service cannot supply a valid catch
func Fallback() Generated {
	return Generated{
		Name:        "Glitch Trout",
		Rarity:      RarityCommon,
		Weight:      2.5,
		Description: "A shimmering anomaly from the 16-bit ether.",
		Color:       "#a855f7",
		Price:       200,
	}
}

var (
	ErrRarityMismatch = errors.New("rarity mismatch")
	ErrPriceOutOfBand = errors.New("price out of band")
	ErrInvalidCatch   = errors.New("invalid catch")
)

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Validate checks a generated catch against the locally drawn tier
func Validate(g Generated, want Tier) error {
	if g.Rarity != want.Rarity {
		return fmt.Errorf("%w: got %s, want %s", ErrRarityMismatch, g.Rarity, want.Rarity)
	}
	if !want.Contains(g.Price) {
		return fmt.Errorf("%w: %d not in [%d,%d]", ErrPriceOutOfBand, g.Price, want.MinPrice, want.MaxPrice)
	}
	if strings.TrimSpace(g.Name) == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidCatch)
	}
	if !(g.Weight > 0) {
		return fmt.Errorf("%w: weight %v", ErrInvalidCatch, g.Weight)
	}
	if !hexColor.MatchString(g.Color) {
		return fmt.Errorf("%w: color %q", ErrInvalidCatch, g.Color)
	}
	return nil
}

// TotalValue sums sale prices
func TotalValue(fishes []Fish) int {
	total := 0
	for _, f := range fishes {
		total += f.Price
	}
	return total
}
