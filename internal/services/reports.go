package services

import (
	"context"
	"log"
	"time"

	"goaltracker-backend-go/internal/models"
)

// WeeklyReport is the stats-plus-insights payload the weekly report
// endpoint returns.
type WeeklyReport struct {
	TotalGoals          int      `json:"totalGoals"`
	Completed           int      `json:"completed"`
	PartiallyCompleted  int      `json:"partiallyCompleted"`
	NotCompleted        int      `json:"notCompleted"`
	CompletedPercentage float64  `json:"completedPercentage"`
	PartialPercentage   float64  `json:"partialPercentage"`
	MissedPercentage    float64  `json:"missedPercentage"`
	AIInsights          string   `json:"aiInsights"`
	Recommendations     []string `json:"recommendations"`
}

type ReportService struct {
	Goals     *GoalsRepository
	Profiles  *UserProfileRepository
	Summaries *WeeklySummaryRepository
	AI        *AIService
	now       func() time.Time
}

func NewReportService(goals *GoalsRepository, profiles *UserProfileRepository, summaries *WeeklySummaryRepository, ai *AIService) *ReportService {
	return &ReportService{Goals: goals, Profiles: profiles, Summaries: summaries, AI: ai, now: time.Now}
}

// BuildReport computes one user's weekly stats and AI feedback. With
// save set, the summary is persisted when the report day matches the
// schedule (Saturday, IST). A failed save is logged and never fails the
// report itself.
func (s *ReportService) BuildReport(ctx context.Context, email, username string, save bool) (WeeklyReport, error) {
	goals, err := s.Goals.GetWeekly(ctx, email, username, s.now())
	if err != nil {
		return WeeklyReport{}, err
	}
	if len(goals) == 0 {
		return WeeklyReport{
			AIInsights: "No goals found for the past week. Start adding goals to see insights!",
			Recommendations: []string{
				"Set your first goal to get started",
				"Aim for 3-5 goals per day",
			},
		}, nil
	}

	report := tallyGoals(goals)
	analysis := s.AI.AnalyzeWeeklyGoals(ctx, goals)
	report.AIInsights = analysis.Insights
	report.Recommendations = analysis.Recommendations

	if save && s.isSaturdayIST() {
		if err := s.saveSummary(ctx, email, username, report, analysis); err != nil {
			log.Printf("reports: failed to save weekly summary for %s: %v", email, err)
		}
	}
	return report, nil
}

// GenerateAll runs the scheduled batch: every profile gets its weekly
// goals tallied, analyzed, and upserted into the summaries table. Users
// without goals this week are skipped.
func (s *ReportService) GenerateAll(ctx context.Context) {
	users, err := s.Profiles.ListAll(ctx)
	if err != nil {
		log.Printf("reports: list users: %v", err)
		return
	}
	for _, user := range users {
		goals, err := s.Goals.GetWeekly(ctx, user.Email, user.Username, s.now())
		if err != nil {
			log.Printf("reports: weekly goals for %s: %v", user.Email, err)
			continue
		}
		if len(goals) == 0 {
			continue
		}
		report := tallyGoals(goals)
		analysis := s.AI.AnalyzeWeeklyGoals(ctx, goals)
		if err := s.saveSummary(ctx, user.Email, user.Username, report, analysis); err != nil {
			log.Printf("reports: save summary for %s: %v", user.Email, err)
			continue
		}
		log.Printf("reports: weekly summary recorded for %s", user.Email)
	}
}

func (s *ReportService) saveSummary(ctx context.Context, email, username string, report WeeklyReport, analysis AIAnalysis) error {
	window := WeekWindowEnding(s.now())
	feedback := analysis.Insights
	if len(feedback) > 500 {
		feedback = feedback[:500]
	}
	_, err := s.Summaries.Upsert(ctx, models.WeeklySummary{
		Email:      email,
		Username:   username,
		WeekStart:  window.StartDate(),
		WeekEnd:    window.EndDate(),
		Total:      report.TotalGoals,
		Completed:  report.Completed,
		Partial:    report.PartiallyCompleted,
		Missed:     report.NotCompleted,
		AIFeedback: feedback,
	})
	return err
}

func (s *ReportService) isSaturdayIST() bool {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		loc = time.UTC
	}
	return s.now().In(loc).Weekday() == time.Saturday
}

func tallyGoals(goals []models.Goal) WeeklyReport {
	report := WeeklyReport{TotalGoals: len(goals)}
	for _, g := range goals {
		switch g.Status {
		case models.StatusCompleted:
			report.Completed++
		case models.StatusPartiallyCompleted:
			report.PartiallyCompleted++
		default:
			// no status recorded counts as missed
			report.NotCompleted++
		}
	}
	total := float64(report.TotalGoals)
	report.CompletedPercentage = float64(report.Completed) / total * 100
	report.PartialPercentage = float64(report.PartiallyCompleted) / total * 100
	report.MissedPercentage = float64(report.NotCompleted) / total * 100
	return report
}
