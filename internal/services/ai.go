package services

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"goaltracker-backend-go/internal/models"
)

const (
	groqBaseURL = "https://api.groq.com/openai/v1"
	groqModel   = "llama-3.1-8b-instant"
)

// AIAnalysis is what the weekly report surfaces from the model.
type AIAnalysis struct {
	Insights        string   `json:"insights"`
	Recommendations []string `json:"recommendations"`
}

// AIService asks a Groq-hosted model to read a week of goals and write
// coach-style feedback. A missing API key or a failed call degrades to
// a canned message; analysis is never load-bearing.
type AIService struct {
	client *openai.Client
}

func NewAIService(apiKey string) *AIService {
	if apiKey == "" {
		return &AIService{}
	}
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = groqBaseURL
	return &AIService{client: openai.NewClientWithConfig(cfg)}
}

func (s *AIService) AnalyzeWeeklyGoals(ctx context.Context, goals []models.Goal) AIAnalysis {
	if s.client == nil {
		return AIAnalysis{
			Insights:        "AI service is not configured. Please add GROQ_API_KEY to your environment variables.",
			Recommendations: []string{},
		}
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       groqModel,
		MaxTokens:   500,
		Temperature: 0.7,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a productivity coach analyzing weekly goal data. Provide insightful, actionable feedback to help users improve their goal completion rate.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildAnalysisPrompt(goals),
			},
		},
	})
	if err != nil || len(resp.Choices) == 0 {
		log.Printf("ai: analysis failed: %v", err)
		return AIAnalysis{
			Insights:        "There was an error generating the AI analysis. Please try again later.",
			Recommendations: []string{},
		}
	}
	insights := resp.Choices[0].Message.Content
	return AIAnalysis{
		Insights:        insights,
		Recommendations: extractRecommendations(insights),
	}
}

func buildAnalysisPrompt(goals []models.Goal) string {
	total := len(goals)
	completed := 0
	partial := 0
	missed := 0
	byDate := map[string][]models.Goal{}
	dates := []string{}
	for _, g := range goals {
		switch g.Status {
		case models.StatusCompleted:
			completed++
		case models.StatusPartiallyCompleted:
			partial++
		default:
			missed++
		}
		if _, seen := byDate[g.Date]; !seen {
			dates = append(dates, g.Date)
		}
		byDate[g.Date] = append(byDate[g.Date], g)
	}

	var daily strings.Builder
	for _, date := range dates {
		dayGoals := byDate[date]
		incomplete := 0
		for _, g := range dayGoals {
			if g.Status != models.StatusCompleted {
				incomplete++
			}
		}
		dayName := date
		if parsed, err := time.Parse("2006-01-02", date); err == nil {
			dayName = parsed.Weekday().String()
		}
		fmt.Fprintf(&daily, "- %s: %d of %d goals were not completed.\n", dayName, incomplete, len(dayGoals))
	}

	blockers := collectNonEmpty(goals, func(g models.Goal) string { return g.Blockers })
	reflections := collectNonEmpty(goals, func(g models.Goal) string { return g.Reflection })

	return fmt.Sprintf(`Analyze the following weekly goal data for a user and provide a report.

Weekly Performance:
- Total Goals: %d
- Completed: %d
- Partially Completed: %d
- Not Completed: %d

Daily Breakdown:
%s
User's Blockers:
%s

User's Reflections:
%s

Based on this data, please generate a concise report that includes:
1. A summary of the user's performance.
2. Key trends or problem areas (e.g., specific days, high number of incomplete goals).
3. Actionable recommendations to help the user improve.
4. A motivational closing statement.`,
		total, completed, partial, missed, daily.String(), blockers, reflections)
}

func collectNonEmpty(goals []models.Goal, pick func(models.Goal) string) string {
	lines := []string{}
	for _, g := range goals {
		if value := strings.TrimSpace(pick(g)); value != "" {
			lines = append(lines, "- "+value)
		}
	}
	if len(lines) == 0 {
		return "None reported."
	}
	return strings.Join(lines, "\n")
}

var listLinePattern = regexp.MustCompile(`^\s*(\d+\.|-|\*)\s`)

// extractRecommendations pulls up to four list lines that read like
// advice out of the free-form insight text.
func extractRecommendations(insights string) []string {
	recommendations := []string{}
	for _, line := range strings.Split(insights, "\n") {
		if !listLinePattern.MatchString(line) {
			continue
		}
		lower := strings.ToLower(line)
		if strings.Contains(lower, "try") ||
			strings.Contains(lower, "consider") ||
			strings.Contains(lower, "focus on") {
			recommendations = append(recommendations, line)
			if len(recommendations) == 4 {
				break
			}
		}
	}
	return recommendations
}
