package update

import (
	"context"
	"encoding/json"
	"log"

	"focusflow/internal/state"
)

// The theme preference lives in the same store as the state slots but is
// not hydrated with them; it is read once at startup and written on change.
func loadTheme(ctx context.Context, states *state.Manager) string {
	raw, err := states.Store().Get(ctx, state.KeyTheme)
	if err != nil {
		return ""
	}
	var name string
	if err := json.Unmarshal(raw, &name); err != nil {
		return ""
	}
	return name
}

func saveTheme(ctx context.Context, states *state.Manager, name string) {
	if err := states.Store().Set(ctx, state.KeyTheme, name); err != nil {
		log.Printf("update: persist theme: %v", err)
	}
}
