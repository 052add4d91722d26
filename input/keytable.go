package input

import "github.com/gdamore/tcell/v2"

// KeyTable binds keys to intents; space and digits are handled by the Mapper
type KeyTable struct {
	SpecialKeys map[tcell.Key]IntentType
	RuneKeys    map[rune]IntentType
}

// DefaultKeyTable returns the standard bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		SpecialKeys: map[tcell.Key]IntentType{
			tcell.KeyCtrlC:  IntentQuit,
			tcell.KeyEscape: IntentClose,
			tcell.KeyEnter:  IntentKeep,
		},
		RuneKeys: map[rune]IntentType{
			'Q': IntentQuit,
			'q': IntentClose,
			'm': IntentToggleMute,
			'k': IntentKeep,
			'x': IntentSell,
			'i': IntentOpenInventory,
			's': IntentOpenShop,
			'v': IntentOpenSellShop,
			'a': IntentSellAll,
		},
	}
}
