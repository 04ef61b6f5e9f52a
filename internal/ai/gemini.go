package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"google.golang.org/genai"

	"focusflow/internal/model"
)

const (
	defaultChatModel     = "gemini-2.5-flash"
	defaultAnalysisModel = "gemini-2.5-pro"
)

// Gemini implements ContentGenerator using Google's Generative AI. The
// chat model answers conversational calls; the analysis model handles the
// structured JSON ones (daily tasks, psycho-profile).
type Gemini struct {
	config        *genai.ClientConfig
	chatModel     string
	analysisModel string
}

// NewGemini expects the API key in the config or in the GOOGLE_API_KEY
// environment variable. An empty key is allowed only with a custom HTTP
// client (e.g. for replay in tests).
func NewGemini(config *genai.ClientConfig) (*Gemini, error) {
	if config == nil {
		config = &genai.ClientConfig{}
	}
	if config.APIKey == "" {
		config.APIKey = os.Getenv("GOOGLE_API_KEY")
	}
	if config.APIKey == "" && config.HTTPClient == nil {
		return nil, fmt.Errorf("ai: GOOGLE_API_KEY environment variable not set")
	}
	return &Gemini{
		config:        config,
		chatModel:     defaultChatModel,
		analysisModel: defaultAnalysisModel,
	}, nil
}

// SetModels overrides the default model names.
func (g *Gemini) SetModels(chatModel, analysisModel string) {
	if chatModel != "" {
		g.chatModel = chatModel
	}
	if analysisModel != "" {
		g.analysisModel = analysisModel
	}
}

func (g *Gemini) client(ctx context.Context) (*genai.Client, error) {
	client, err := genai.NewClient(ctx, g.config)
	if err != nil {
		return nil, fmt.Errorf("ai: create genai client: %w", err)
	}
	return client, nil
}

func (g *Gemini) generateText(ctx context.Context, modelName, prompt string, config *genai.GenerateContentConfig) (string, error) {
	client, err := g.client(ctx)
	if err != nil {
		return "", err
	}
	resp, err := client.Models.GenerateContent(ctx, modelName, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("ai: generate content: %w", err)
	}
	text := responseText(resp)
	if text == "" {
		return "", fmt.Errorf("ai: no content generated")
	}
	return text, nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil {
			b.WriteString(part.Text)
		}
	}
	return b.String()
}

func (g *Gemini) GenerateDailyTasks(ctx context.Context, goal model.Goal, progress ProgressContext) ([]TaskSuggestion, error) {
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"text":     {Type: genai.TypeString, Description: "The specific, actionable task description."},
					"priority": {Type: genai.TypeString, Enum: []string{"High", "Medium", "Low"}},
					"category": {Type: genai.TypeString, Description: "A relevant category like 'Learning', 'Practice', 'Project'."},
				},
				Required: []string{"text", "priority"},
			},
		},
	}
	raw, err := g.generateText(ctx, g.analysisModel, dailyTasksPrompt(goal, progress), config)
	if err != nil {
		return nil, err
	}
	return ParseTaskSuggestions(raw)
}

func (g *Gemini) GenerateGoalStrategy(ctx context.Context, goalText string) (string, error) {
	return g.generateText(ctx, g.chatModel, goalStrategyPrompt(goalText), nil)
}

func (g *Gemini) GenerateDailySummary(ctx context.Context, plan model.DailyPlan, goal model.Goal) (string, error) {
	return g.generateText(ctx, g.chatModel, dailySummaryPrompt(plan, goal), nil)
}

func (g *Gemini) GeneratePsychoProfile(ctx context.Context, plans []model.DailyPlan, now time.Time) (*model.PsychoProfile, error) {
	monthlyData, err := json.Marshal(map[string]any{"dailyPlans": plans})
	if err != nil {
		return nil, err
	}
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"strengths":            {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
				"growthAreas":          {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
				"productivityPatterns": {Type: genai.TypeString},
				"overallSummary":       {Type: genai.TypeString},
			},
		},
	}
	raw, err := g.generateText(ctx, g.analysisModel, psychoProfilePrompt(string(monthlyData)), config)
	if err != nil {
		return nil, err
	}
	var profile model.PsychoProfile
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &profile); err != nil {
		return nil, fmt.Errorf("ai: parse psycho profile: %w", err)
	}
	profile.Month = now.Month().String()
	profile.Year = now.Year()
	return &profile, nil
}

func (g *Gemini) GenerateRestSuggestion(ctx context.Context) (string, error) {
	return g.generateText(ctx, g.chatModel, restSuggestionPrompt, nil)
}

func (g *Gemini) StreamCoachResponse(ctx context.Context, history []model.ChatMessage, coach CoachContext) (<-chan string, error) {
	client, err := g.client(ctx)
	if err != nil {
		return nil, err
	}

	contents := make([]*genai.Content, 0, len(history))
	for _, msg := range history {
		parts := make([]*genai.Part, 0, len(msg.Parts))
		for _, p := range msg.Parts {
			parts = append(parts, &genai.Part{Text: p.Text})
		}
		contents = append(contents, &genai.Content{Role: string(msg.Role), Parts: parts})
	}
	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: coachContextInstruction(coach)}},
		},
	}

	out := make(chan string)
	go func() {
		defer close(out)
		for resp, err := range client.Models.GenerateContentStream(ctx, g.chatModel, contents, config) {
			if err != nil {
				log.Printf("ai: coach stream: %v", err)
				return
			}
			chunk := responseText(resp)
			if chunk == "" {
				continue
			}
			select {
			case out <- chunk:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}
