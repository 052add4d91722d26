package content

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/lixenwraith/pixel-angler/fish"
)

func TestPromptNamesTierAndBand(t *testing.T) {
	tier, _ := fish.TierOf(fish.RarityLegendary)
	prompt := Prompt(Request{Tier: tier})

	for _, want := range []string{`"Legendary"`, "2000", "4000"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %s:\n%s", want, prompt)
		}
	}
}

func TestResponseSchemaPinsTier(t *testing.T) {
	tier, _ := fish.TierOf(fish.RarityUncommon)
	s := ResponseSchema(Request{Tier: tier})

	rarity, ok := s.Properties.Get("rarity")
	if !ok {
		t.Fatal("schema has no rarity property")
	}
	if len(rarity.Enum) != 1 || rarity.Enum[0] != "Uncommon" {
		t.Errorf("rarity enum = %v, want [Uncommon]", rarity.Enum)
	}

	price, ok := s.Properties.Get("price")
	if !ok {
		t.Fatal("schema has no price property")
	}
	if price.Minimum.String() != "400" || price.Maximum.String() != "600" {
		t.Errorf("price range = [%s,%s], want [400,600]", price.Minimum, price.Maximum)
	}

	for _, name := range []string{"name", "weight", "description", "color"} {
		if _, ok := s.Properties.Get(name); !ok {
			t.Errorf("schema missing %s", name)
		}
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantErr bool
	}{
		{"plain", validRare, false},
		{"json fence", "```json\n" + validRare + "\n```", false},
		{"bare fence", "```\n" + validRare + "\n```", false},
		{"upper case fence", "```JSON\n" + validRare + "\n```", false},
		{"mixed case fence", "  ```Json " + validRare + "```  ", false},
		{"empty", "", true},
		{"fence only", "```json\n```", true},
		{"garbage", "not json", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.text)
			if (err != nil) != tt.wantErr {
				t.Errorf("Decode err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestHTTPService(t *testing.T) {
	var got struct {
		Rarity   string          `json:"rarity"`
		MinPrice int             `json:"minPrice"`
		MaxPrice int             `json:"maxPrice"`
		Prompt   string          `json:"prompt"`
		Schema   json.RawMessage `json:"schema"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &got); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		io.WriteString(w, validRare)
	}))
	defer srv.Close()

	svc, err := NewHTTPService(srv.URL, "secret", srv.Client())
	if err != nil {
		t.Fatalf("NewHTTPService: %v", err)
	}

	g := NewGenerator(svc, nil, quietLogger())
	res := g.Generate(context.Background(), rareTier(t))
	if res.Fallback {
		t.Fatalf("unexpected fallback: %v", res.Err)
	}
	if got.Rarity != "Rare" || got.MinPrice != 700 || got.MaxPrice != 1800 {
		t.Errorf("request = %s %d-%d", got.Rarity, got.MinPrice, got.MaxPrice)
	}
	if got.Prompt == "" || len(got.Schema) == 0 {
		t.Error("request missing prompt or schema")
	}
}

func TestHTTPServiceErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	svc, _ := NewHTTPService(srv.URL, "", srv.Client())
	res := NewGenerator(svc, nil, quietLogger()).Generate(context.Background(), rareTier(t))
	if !res.Fallback {
		t.Error("503 should fall back")
	}
}

func TestServiceConstructorsRequireConfig(t *testing.T) {
	if _, err := NewHTTPService("", "", nil); err != ErrNoService {
		t.Errorf("NewHTTPService err = %v, want ErrNoService", err)
	}
	if _, err := NewGeminiService(context.Background(), "", ""); err != ErrNoService {
		t.Errorf("NewGeminiService err = %v, want ErrNoService", err)
	}
}
