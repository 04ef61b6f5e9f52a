package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"focusflow/internal/model"
	"focusflow/internal/storage"
)

var (
	// ErrImportParse means the document is not valid JSON (or not an object).
	ErrImportParse = errors.New("state: import document is not valid JSON")
	// ErrImportSchema means a recognized slot carries a value of the wrong
	// shape. Nothing is applied.
	ErrImportSchema = errors.New("state: import document has invalid structure")
)

// Export serializes the entire store into one transportable JSON document
// and returns it with a dated filename for the download artifact.
func Export(ctx context.Context, store storage.Store, now time.Time) ([]byte, string, error) {
	records, err := store.GetAll(ctx)
	if err != nil {
		return nil, "", err
	}
	doc, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, "", err
	}
	name := fmt.Sprintf("focusflow-backup-%s.json", model.DateString(now))
	return doc, name, nil
}

// Import wholesale-replaces the store with the document's top-level
// mapping. Recognized slots are schema-checked before anything is written;
// unrecognized keys ride along untouched. After a successful import the
// in-memory aggregate is stale and the caller must re-run Hydrate.
func Import(ctx context.Context, store storage.Store, doc []byte) error {
	var records map[string]json.RawMessage
	if err := json.Unmarshal(doc, &records); err != nil {
		return fmt.Errorf("%w: %v", ErrImportParse, err)
	}
	if records == nil {
		return fmt.Errorf("%w: document is null", ErrImportParse)
	}

	var scratch AppState
	for key, raw := range records {
		if err := scratch.applySlot(key, raw); err != nil {
			return fmt.Errorf("%w: %v", ErrImportSchema, err)
		}
	}

	return store.ReplaceAll(ctx, records)
}
