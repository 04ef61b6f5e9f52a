package state

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"

	"focusflow/internal/storage"
)

// Hydrate loads all eight slots and replaces the aggregate. The reads run
// concurrently; hydration completes only once every slot has resolved. A
// slot that is absent or fails to read keeps its typed default, so a
// partially broken store never aborts startup.
func (m *Manager) Hydrate(ctx context.Context) {
	var app AppState

	var wg sync.WaitGroup
	raws := make([]json.RawMessage, len(SlotKeys))
	for i, key := range SlotKeys {
		wg.Add(1)
		go func(i int, key string) {
			defer wg.Done()
			raw, err := m.store.Get(ctx, key)
			if err != nil {
				if !errors.Is(err, storage.ErrNotFound) {
					log.Printf("state: hydrate %s: %v", key, err)
				}
				return
			}
			raws[i] = raw
		}(i, key)
	}
	wg.Wait()

	for i, key := range SlotKeys {
		if raws[i] == nil {
			continue
		}
		if err := app.applySlot(key, raws[i]); err != nil {
			// Treated as absent: the default stands.
			log.Printf("state: hydrate %v", err)
		}
	}

	m.mu.Lock()
	m.app = app
	m.mu.Unlock()
}
