package ai

import (
	"fmt"
	"strings"

	"focusflow/internal/model"
)

const coachSystemInstruction = `You are FocusFlow, a highly intelligent and empathetic AI coach specializing in ADHD. Your purpose is to provide personalized, actionable support.

Your personality:
- Empathetic and supportive: acknowledge struggles, celebrate wins.
- Action-oriented: concrete strategies, not vague advice.
- Concise: keep responses short and scannable (under 75 words), use markdown.
- Positive and empowering: focus on strengths and progress.

Core directives:
1. NEVER give medical advice. Do not diagnose, treat, or offer medical opinions.
2. Stay focused on ADHD, productivity, and task management; politely decline anything else.
3. Leverage the user context you are given to make advice specific.
4. Proactively suggest ADHD-friendly techniques: task chunking, focus intervals, tackling the hardest task first, rewards for completed tasks.`

func coachContextInstruction(coach CoachContext) string {
	session := "- No recent focus sessions."
	if coach.LastSession != nil {
		session = fmt.Sprintf("- Last focus session: %d minutes.", coach.LastSession.Duration)
	}
	return fmt.Sprintf(`%s

## Current User Context
This is the user's current status for today:
- Tasks in plan: %d total, with %d completed so far.
%s
Use this information to tailor your response.`,
		coachSystemInstruction, coach.TasksTotal, coach.TasksCompleted, session)
}

func dailyTasksPrompt(goal model.Goal, progress ProgressContext) string {
	recent := "They are just getting started on this goal."
	if len(progress.RecentCompletedTasks) > 0 {
		var b strings.Builder
		b.WriteString("They have recently completed the following tasks:\n")
		for _, text := range progress.RecentCompletedTasks {
			b.WriteString("- " + text + "\n")
		}
		recent = strings.TrimRight(b.String(), "\n")
	}
	return fmt.Sprintf(`Act as an expert ADHD coach and curriculum designer. The user's primary goal is: %q.

This is Day %d of their learning journey.

%s

Generate a focused, actionable list of 3 to 5 tasks for them to complete today. The tasks must follow a progressive difficulty curve, building logically on what they have already learned and growing slightly more advanced each day.

The tasks must be ADHD-friendly: small, specific, clear, and directly contributing to the main goal. Avoid vague meta-tasks like 'plan your day'. The output must be a valid JSON array of task objects.`,
		goal.Text, progress.DayNumber, recent)
}

func goalStrategyPrompt(goalText string) string {
	return fmt.Sprintf("Generate a brief, motivating, high-level strategy (2-3 sentences) for a user with ADHD to achieve this goal: %q", goalText)
}

func dailySummaryPrompt(plan model.DailyPlan, goal model.Goal) string {
	return fmt.Sprintf(`Act as a super encouraging ADHD coach, like a friend cheering the user on.
The user's main goal is: %q.
Today, they completed %d out of %d tasks.

Write a short, punchy, and highly motivational summary (like a quick chat message, under 50 words).
- Acknowledge their effort for today, adapting the tone based on completion rate.
- Connect their progress directly to their main goal.
- End with an encouraging boost for tomorrow.`,
		goal.Text, plan.CompletedCount(), len(plan.Tasks))
}

func psychoProfilePrompt(monthlyData string) string {
	return fmt.Sprintf("Analyze the following monthly user data (a series of daily plans with tasks) to create a 'psychoprofile' for an individual with ADHD. The output must be a JSON object. Based on task completion rates across daily plans, identify patterns in productivity, common challenges, and areas of strength. Provide a supportive, non-clinical summary and actionable insights for the upcoming month. Data: %s", monthlyData)
}

const restSuggestionPrompt = `I've just completed a focused work session. Suggest a very short, simple, and refreshing activity for a 5-minute break. The goal is a quick mental reset, not another task. Examples: "Stretch your arms and back," or "Get a glass of water." Keep the response under 20 words.`
