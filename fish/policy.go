package fish

// Tier binds a drawable rarity to its cumulative draw band and inclusive price range
type Tier struct {
	Rarity Rarity
	// Upper is the exclusive upper bound of the tier's band on the [0,100) draw scale
	Upper    float64
	MinPrice int
	MaxPrice int
}

// Tiers is ordered by ascending band; the bands partition [0,100)
var Tiers = []Tier{
	{Rarity: RarityCommon, Upper: 50, MinPrice: 200, MaxPrice: 300},
	{Rarity: RarityUncommon, Upper: 75, MinPrice: 400, MaxPrice: 600},
	{Rarity: RarityRare, Upper: 90, MinPrice: 700, MaxPrice: 1800},
	{Rarity: RarityLegendary, Upper: 99.9, MinPrice: 2000, MaxPrice: 4000},
	{Rarity: RaritySecret, Upper: 100, MinPrice: 20000, MaxPrice: 25000},
}

// Source is the uniform random source consumed by Draw
type Source interface {
	Float64() float64
}

// Draw samples a tier with the policy's probabilities
func Draw(src Source) Tier {
	return DrawAt(src.Float64() * 100)
}

// DrawAt maps a point on the [0,100) scale to its tier
// Out-of-range points clamp to the first or last tier
func DrawAt(u float64) Tier {
	for _, t := range Tiers {
		if u < t.Upper {
			return t
		}
	}
	return Tiers[len(Tiers)-1]
}

// TierOf returns the tier for a rarity; false for the reserved Mythical value
func TierOf(r Rarity) (Tier, bool) {
	for _, t := range Tiers {
		if t.Rarity == r {
			return t, true
		}
	}
	return Tier{}, false
}

// Contains reports whether price lies within the tier's inclusive range
func (t Tier) Contains(price int) bool {
	return price >= t.MinPrice && price <= t.MaxPrice
}

// Probability returns the tier's share of the draw scale in percent
func (t Tier) Probability() float64 {
	lower := 0.0
	for _, other := range Tiers {
		if other.Rarity == t.Rarity {
			return t.Upper - lower
		}
		lower = other.Upper
	}
	return 0
}
