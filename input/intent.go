package input

// IntentType discriminates semantic actions
type IntentType uint8

const (
	IntentNone IntentType = iota

	// System-level intents
	IntentQuit       // Ctrl+C, Q
	IntentToggleMute // m
	IntentResize     // Terminal resize event

	// Gameplay: the only continuous input
	IntentPress   // space down, left mouse down
	IntentRelease // space hold timeout, left mouse up

	// Caught card
	IntentKeep // k, Enter
	IntentSell // x

	// Overlays
	IntentOpenInventory // i
	IntentOpenShop      // s
	IntentOpenSellShop  // v
	IntentClose         // ESC, q
	IntentSlot          // 1-9, meaning depends on the open overlay
	IntentSellAll       // a
)

var intentNames = [...]string{
	IntentNone:          "none",
	IntentQuit:          "quit",
	IntentToggleMute:    "toggle_mute",
	IntentResize:        "resize",
	IntentPress:         "press",
	IntentRelease:       "release",
	IntentKeep:          "keep",
	IntentSell:          "sell",
	IntentOpenInventory: "open_inventory",
	IntentOpenShop:      "open_shop",
	IntentOpenSellShop:  "open_sell_shop",
	IntentClose:         "close",
	IntentSlot:          "slot",
	IntentSellAll:       "sell_all",
}

func (t IntentType) String() string {
	if int(t) < len(intentNames) {
		return intentNames[t]
	}
	return "unknown"
}

// Intent is one resolved action; Slot is the zero-based row for IntentSlot
type Intent struct {
	Type IntentType
	Slot int
}
