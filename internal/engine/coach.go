package engine

import (
	"context"
	"strings"

	"focusflow/internal/ai"
	"focusflow/internal/model"
	"focusflow/internal/state"
)

// SendCoachMessage appends the user's message and an empty model message
// to the history, then starts the streamed reply. Chunks arriving on the
// returned channel are applied with AppendCoachChunk. Cancelling ctx stops
// the stream; the partial reply stays as the final message text.
func (e *Engine) SendCoachMessage(ctx context.Context, text string) (<-chan string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	app := e.states.State()

	history := append(cloneHistory(app.CoachHistory), model.ChatMessage{
		Role:  model.RoleUser,
		Parts: []model.MessagePart{{Text: text}},
	})
	e.states.SetCoachHistory(ctx, history)

	stream, err := e.gen.StreamCoachResponse(ctx, history, e.coachContext(app))
	if err != nil {
		return nil, err
	}

	withReply := append(cloneHistory(history), model.ChatMessage{
		Role:  model.RoleModel,
		Parts: []model.MessagePart{{Text: ""}},
	})
	e.states.SetCoachHistory(ctx, withReply)
	return stream, nil
}

// AppendCoachChunk fills the trailing model message in place while the
// stream is still arriving. Once the stream ends the message is immutable
// by convention; nothing enforces it beyond no caller mutating it.
func (e *Engine) AppendCoachChunk(ctx context.Context, chunk string) {
	history := cloneHistory(e.states.State().CoachHistory)
	if len(history) == 0 {
		return
	}
	last := &history[len(history)-1]
	if last.Role != model.RoleModel {
		return
	}
	if len(last.Parts) == 0 {
		last.Parts = []model.MessagePart{{Text: chunk}}
	} else {
		parts := append([]model.MessagePart(nil), last.Parts...)
		parts[len(parts)-1].Text += chunk
		last.Parts = parts
	}
	e.states.SetCoachHistory(ctx, history)
}

func (e *Engine) coachContext(app state.AppState) ai.CoachContext {
	coach := ai.CoachContext{}
	if plan, idx := model.FindPlan(app.DailyPlans, model.DateString(e.now())); idx >= 0 {
		coach.TasksTotal = len(plan.Tasks)
		coach.TasksCompleted = plan.CompletedCount()
	}
	if len(app.FocusSessions) > 0 {
		last := app.FocusSessions[0]
		coach.LastSession = &last
	}
	return coach
}

func cloneHistory(history []model.ChatMessage) []model.ChatMessage {
	return append([]model.ChatMessage(nil), history...)
}
