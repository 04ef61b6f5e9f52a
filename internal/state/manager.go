package state

import (
	"context"
	"log"
	"sync"

	"focusflow/internal/model"
	"focusflow/internal/storage"
)

// Manager is the single mutation point for the aggregate. Each setter
// persists through the store first, then updates the in-memory copy. A
// failed write is logged and the in-memory state still advances; the
// caller must not assume durability for that one write.
type Manager struct {
	store storage.Store

	mu  sync.RWMutex
	app AppState
}

func NewManager(store storage.Store) *Manager {
	return &Manager{store: store}
}

func (m *Manager) Store() storage.Store { return m.store }

// State returns a snapshot of the aggregate. Mutation handlers that resume
// after a suspension point must call this again instead of reusing a copy
// captured before the await.
func (m *Manager) State() AppState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.app
}

func (m *Manager) persist(ctx context.Context, key string, value any) {
	if err := m.store.Set(ctx, key, value); err != nil {
		log.Printf("state: persist %s: %v", key, err)
	}
}

func (m *Manager) SetUser(ctx context.Context, user *model.User) {
	m.persist(ctx, KeyUser, user)
	m.mu.Lock()
	m.app.User = user
	m.mu.Unlock()
}

func (m *Manager) SetGoal(ctx context.Context, goal *model.Goal) {
	m.persist(ctx, KeyGoal, goal)
	m.mu.Lock()
	m.app.Goal = goal
	m.mu.Unlock()
}

func (m *Manager) SetDailyPlans(ctx context.Context, plans []model.DailyPlan) {
	m.persist(ctx, KeyDailyPlans, plans)
	m.mu.Lock()
	m.app.DailyPlans = plans
	m.mu.Unlock()
}

func (m *Manager) SetStreak(ctx context.Context, streak int) {
	m.persist(ctx, KeyStreak, streak)
	m.mu.Lock()
	m.app.Streak = streak
	m.mu.Unlock()
}

func (m *Manager) SetLastLogin(ctx context.Context, date string) {
	m.persist(ctx, KeyLastLogin, date)
	m.mu.Lock()
	m.app.LastLogin = date
	m.mu.Unlock()
}

func (m *Manager) SetFocusSessions(ctx context.Context, sessions []model.FocusSession) {
	m.persist(ctx, KeyFocusSessions, sessions)
	m.mu.Lock()
	m.app.FocusSessions = sessions
	m.mu.Unlock()
}

// AppendFocusSession prepends the session; the log is newest-first.
func (m *Manager) AppendFocusSession(ctx context.Context, session model.FocusSession) {
	m.mu.RLock()
	sessions := append([]model.FocusSession{session}, m.app.FocusSessions...)
	m.mu.RUnlock()
	m.SetFocusSessions(ctx, sessions)
}

func (m *Manager) SetCoachHistory(ctx context.Context, history []model.ChatMessage) {
	m.persist(ctx, KeyCoachHistory, history)
	m.mu.Lock()
	m.app.CoachHistory = history
	m.mu.Unlock()
}

func (m *Manager) SetPsychoProfile(ctx context.Context, profile *model.PsychoProfile) {
	m.persist(ctx, KeyPsychoProfile, profile)
	m.mu.Lock()
	m.app.PsychoProfile = profile
	m.mu.Unlock()
}
