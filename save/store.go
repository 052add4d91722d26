package save

import (
	"fmt"
	"sync"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/pixel-angler/economy"
)

const (
	ledgerObject   = "ledger"
	ledgerProperty = "state"
)

// Open creates the per-user data manager for appName
func Open(appName string) (*gdata.Manager, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("failed to open save data: %w", err)
	}
	return m, nil
}

// Store reads and writes the ledger blob as YAML in a gdata object property
// A nil manager keeps the blob in memory for the session only
type Store struct {
	mu      sync.Mutex
	manager *gdata.Manager
	memory  []byte
}

// NewStore wraps manager; nil selects memory mode
func NewStore(manager *gdata.Manager) *Store {
	return &Store{manager: manager}
}

// Persistent reports whether saves survive the process
func (s *Store) Persistent() bool {
	return s.manager != nil
}

// Load returns the saved state; found is false when nothing was saved yet
func (s *Store) Load() (state economy.State, found bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var data []byte
	if s.manager == nil {
		data = s.memory
	} else {
		if !s.manager.ObjectPropExists(ledgerObject, ledgerProperty) {
			return economy.State{}, false, nil
		}
		data, err = s.manager.LoadObjectProp(ledgerObject, ledgerProperty)
		if err != nil {
			return economy.State{}, false, fmt.Errorf("failed to read save: %w", err)
		}
	}
	if len(data) == 0 {
		return economy.State{}, false, nil
	}

	if err := yaml.Unmarshal(data, &state); err != nil {
		return economy.State{}, false, fmt.Errorf("failed to decode save: %w", err)
	}
	return state, true, nil
}

// Save writes state, replacing any previous blob
func (s *Store) Save(state economy.State) error {
	data, err := yaml.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode save: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.manager == nil {
		s.memory = data
		return nil
	}
	if err := s.manager.SaveObjectProp(ledgerObject, ledgerProperty, data); err != nil {
		return fmt.Errorf("failed to write save: %w", err)
	}
	return nil
}
