package content

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/invopop/jsonschema"

	"github.com/lixenwraith/pixel-angler/fish"
)

// Prompt renders the generation instruction for a tier
func Prompt(req Request) string {
	t := req.Tier
	var b strings.Builder
	b.WriteString("Generate a unique, fictional 16-bit RPG style fish.\n")
	fmt.Fprintf(&b, "The rarity MUST be %q.\n", t.Rarity.String())
	fmt.Fprintf(&b, "The price MUST be an integer between %d and %d inclusive.\n", t.MinPrice, t.MaxPrice)
	b.WriteString("Give it a creative name, a short witty description, a weight in lbs fitting its rarity and a vibrant hex body color.\n")
	if t.Rarity == fish.RaritySecret {
		b.WriteString("Secret fish are extremely weird, glitchy or cosmic.\n")
	}
	return b.String()
}

// ResponseSchema reflects the catch document and pins rarity and price to the tier
func ResponseSchema(req Request) *jsonschema.Schema {
	r := &jsonschema.Reflector{
		DoNotReference: true,
		ExpandedStruct: true,
	}
	s := r.Reflect(&fish.Generated{})
	s.Version = ""
	s.Title = "Generated catch"

	if prop, ok := s.Properties.Get("rarity"); ok {
		prop.Type = "string"
		prop.Enum = []any{req.Tier.Rarity.String()}
	}
	if prop, ok := s.Properties.Get("price"); ok {
		prop.Minimum = json.Number(strconv.Itoa(req.Tier.MinPrice))
		prop.Maximum = json.Number(strconv.Itoa(req.Tier.MaxPrice))
	}
	return s
}

// Decode extracts the catch from service text, tolerating markdown code fences
func Decode(text string) (fish.Generated, error) {
	clean := strings.TrimSpace(text)
	if rest, fenced := strings.CutPrefix(clean, "```"); fenced {
		// Language tag in any case: json, JSON, Json
		clean = strings.TrimLeftFunc(rest, unicode.IsLetter)
	}
	clean = strings.TrimSuffix(clean, "```")
	clean = strings.TrimSpace(clean)
	if clean == "" {
		return fish.Generated{}, ErrEmptyResponse
	}

	var g fish.Generated
	if err := json.Unmarshal([]byte(clean), &g); err != nil {
		return fish.Generated{}, fmt.Errorf("malformed catch document: %w", err)
	}
	return g, nil
}
