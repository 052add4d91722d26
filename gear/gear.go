package gear

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Stats is the read-only snapshot of rod parameters the reel simulator consumes
type Stats struct {
	BarWidth  float64 `json:"barWidth"`
	CatchGain float64 `json:"catchGain"`
	Stability float64 `json:"stability"`
}

// Gear is a catalog record for an equippable rod
type Gear struct {
	ID          string  `yaml:"id" json:"id"`
	Name        string  `yaml:"name" json:"name"`
	Description string  `yaml:"description" json:"description"`
	Price       int     `yaml:"price" json:"price"`
	Color       string  `yaml:"color" json:"color"`
	BarWidth    float64 `yaml:"barWidth" json:"barWidth"`
	CatchGain   float64 `yaml:"catchGain" json:"catchGain"`
	Stability   float64 `yaml:"stability" json:"stability"`
}

// Stats returns the physics parameters by value
func (g Gear) Stats() Stats {
	return Stats{
		BarWidth:  g.BarWidth,
		CatchGain: g.CatchGain,
		Stability: g.Stability,
	}
}

func (g Gear) validate() error {
	if g.ID == "" {
		return fmt.Errorf("gear with empty id")
	}
	if g.BarWidth <= 0 || g.BarWidth >= 100 {
		return fmt.Errorf("gear %s: bar width %v out of (0,100)", g.ID, g.BarWidth)
	}
	if g.CatchGain <= 0 {
		return fmt.Errorf("gear %s: catch gain %v must be positive", g.ID, g.CatchGain)
	}
	if g.Stability <= 0 || g.Stability >= 1 {
		return fmt.Errorf("gear %s: stability %v out of (0,1)", g.ID, g.Stability)
	}
	if g.Price < 0 {
		return fmt.Errorf("gear %s: negative price", g.ID)
	}
	return nil
}

// Catalog is an ordered, immutable list of gear records
type Catalog struct {
	items []Gear
	index map[string]int
}

// NewCatalog validates records and rejects duplicates
func NewCatalog(items []Gear) (*Catalog, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("empty gear catalog")
	}
	c := &Catalog{
		items: make([]Gear, len(items)),
		index: make(map[string]int, len(items)),
	}
	copy(c.items, items)
	for i, g := range c.items {
		if err := g.validate(); err != nil {
			return nil, err
		}
		if _, dup := c.index[g.ID]; dup {
			return nil, fmt.Errorf("duplicate gear id %s", g.ID)
		}
		c.index[g.ID] = i
	}
	return c, nil
}

// Parse decodes a YAML catalog document
func Parse(data []byte) (*Catalog, error) {
	var items []Gear
	if err := yaml.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to parse gear catalog: %w", err)
	}
	return NewCatalog(items)
}

// Default returns the built-in catalog
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("embedded gear catalog: %v", err))
	}
	return c
}

// Load reads a catalog override file, empty path yields the built-in catalog
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read gear catalog: %w", err)
	}
	return Parse(data)
}

// Lookup finds a record by id
func (c *Catalog) Lookup(id string) (Gear, bool) {
	i, ok := c.index[id]
	if !ok {
		return Gear{}, false
	}
	return c.items[i], true
}

// Starter is the first catalog entry, owned by every new player
func (c *Catalog) Starter() Gear {
	return c.items[0]
}

// Resolve returns the record for id, falling back to the starter rod for unknown ids
func (c *Catalog) Resolve(id string) Gear {
	if g, ok := c.Lookup(id); ok {
		return g
	}
	return c.Starter()
}

// All returns a copy of the ordered records
func (c *Catalog) All() []Gear {
	out := make([]Gear, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of records
func (c *Catalog) Len() int {
	return len(c.items)
}
