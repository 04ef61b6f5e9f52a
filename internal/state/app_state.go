// Package state owns the persisted application aggregate: the eight named
// slots, the startup hydrator, and the snapshot exporter/importer. Every
// mutation flows through the Manager, which persists first and updates the
// in-memory aggregate second.
package state

import (
	"encoding/json"
	"fmt"

	"focusflow/internal/model"
)

const (
	KeyUser          = "user"
	KeyGoal          = "goal"
	KeyDailyPlans    = "dailyPlans"
	KeyStreak        = "streak"
	KeyLastLogin     = "lastLogin"
	KeyFocusSessions = "focusSessions"
	KeyCoachHistory  = "coachHistory"
	KeyPsychoProfile = "psychoProfile"

	// KeyTheme is incidental UI preference, not one of the eight slots.
	// It rides along in export/import untouched.
	KeyTheme = "theme"
)

// SlotKeys lists the eight state slots hydrated at startup.
var SlotKeys = []string{
	KeyUser,
	KeyGoal,
	KeyDailyPlans,
	KeyStreak,
	KeyLastLogin,
	KeyFocusSessions,
	KeyCoachHistory,
	KeyPsychoProfile,
}

// AppState is the in-memory aggregate of the eight slots. The zero value
// of each field is its typed default for an absent key.
type AppState struct {
	User          *model.User
	Goal          *model.Goal
	DailyPlans    []model.DailyPlan
	Streak        int
	LastLogin     string
	FocusSessions []model.FocusSession
	CoachHistory  []model.ChatMessage
	PsychoProfile *model.PsychoProfile
}

// applySlot decodes one stored value into its typed slot. It doubles as
// the import-time schema check: a recognized key whose value does not
// decode is a schema violation.
func (s *AppState) applySlot(key string, raw json.RawMessage) error {
	var err error
	switch key {
	case KeyUser:
		err = json.Unmarshal(raw, &s.User)
	case KeyGoal:
		err = json.Unmarshal(raw, &s.Goal)
	case KeyDailyPlans:
		err = json.Unmarshal(raw, &s.DailyPlans)
	case KeyStreak:
		err = json.Unmarshal(raw, &s.Streak)
	case KeyLastLogin:
		err = json.Unmarshal(raw, &s.LastLogin)
	case KeyFocusSessions:
		err = json.Unmarshal(raw, &s.FocusSessions)
	case KeyCoachHistory:
		err = json.Unmarshal(raw, &s.CoachHistory)
	case KeyPsychoProfile:
		err = json.Unmarshal(raw, &s.PsychoProfile)
	default:
		return nil
	}
	if err != nil {
		return fmt.Errorf("slot %q: %w", key, err)
	}
	return nil
}
