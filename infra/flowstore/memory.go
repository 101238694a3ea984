package flowstore

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"github.com/propvest/propvest/pkg/domain/flow"
	"github.com/propvest/propvest/pkg/flowstore"
)

// MemoryStore keeps flow snapshots in process memory. Used in development
// and tests; snapshots do not survive a restart.
type MemoryStore struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

// NewMemoryStore creates an empty in-memory flow store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{slots: make(map[string][]byte)}
}

// Load implements flowstore.Store.
func (m *MemoryStore) Load(ctx context.Context, projectID string) (*flow.State, error) {
	m.mu.RLock()
	raw, ok := m.slots[flowstore.StateKey(projectID)]
	m.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	var st flow.State
	if err := json.Unmarshal(raw, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

// Save implements flowstore.Store. Snapshots are stored serialized so loads
// always return an independent copy.
func (m *MemoryStore) Save(ctx context.Context, state *flow.State) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.slots[flowstore.StateKey(state.ProjectID)] = raw
	m.mu.Unlock()
	return nil
}

// Delete implements flowstore.Store.
func (m *MemoryStore) Delete(ctx context.Context, projectID string) error {
	m.mu.Lock()
	delete(m.slots, flowstore.StateKey(projectID))
	m.mu.Unlock()
	return nil
}

// ClearAll implements flowstore.Store.
func (m *MemoryStore) ClearAll(ctx context.Context) error {
	m.mu.Lock()
	for key := range m.slots {
		if strings.HasPrefix(key, flowstore.StateKeyPrefix) ||
			strings.HasPrefix(key, flowstore.BillingKeyPrefix) {
			delete(m.slots, key)
		}
	}
	m.mu.Unlock()
	return nil
}
