package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"goaltracker-backend-go/internal/models"
	"goaltracker-backend-go/internal/sheets"
)

func newReportService() (*ReportService, *sheets.MemoryStore) {
	store := sheets.NewMemoryStore()
	stats := &sheets.Stats{}
	goals := NewGoalsRepository(store, stats)
	profiles := NewUserProfileRepository(store, stats)
	summaries := NewWeeklySummaryRepository(store, stats)
	svc := NewReportService(goals, profiles, summaries, NewAIService(""))
	return svc, store
}

func TestTallyGoals(t *testing.T) {
	goals := []models.Goal{
		{Status: models.StatusCompleted},
		{Status: models.StatusCompleted},
		{Status: models.StatusPartiallyCompleted},
		{Status: ""},
		{Status: models.StatusNotCompleted},
	}
	report := tallyGoals(goals)
	if report.TotalGoals != 5 || report.Completed != 2 || report.PartiallyCompleted != 1 || report.NotCompleted != 2 {
		t.Errorf("tally wrong: %+v", report)
	}
	if report.CompletedPercentage != 40 {
		t.Errorf("completed%% = %v, want 40", report.CompletedPercentage)
	}
}

func TestBuildReportWithoutGoals(t *testing.T) {
	svc, _ := newReportService()
	report, err := svc.BuildReport(context.Background(), "a@b.c", "", false)
	if err != nil {
		t.Fatalf("buildReport: %v", err)
	}
	if report.TotalGoals != 0 {
		t.Errorf("totalGoals = %d, want 0", report.TotalGoals)
	}
	if !strings.Contains(report.AIInsights, "No goals found") {
		t.Errorf("insights = %q", report.AIInsights)
	}
	if len(report.Recommendations) == 0 {
		t.Errorf("expected starter recommendations")
	}
}

func TestBuildReportCountsWeekGoals(t *testing.T) {
	svc, _ := newReportService()
	ctx := context.Background()
	svc.now = func() time.Time { return time.Date(2025, 3, 20, 10, 0, 0, 0, time.UTC) }

	_, _ = svc.Goals.Add(ctx, models.Goal{Email: "a@b.c", Date: "2025-03-18", Goal: "one", Priority: "High", Status: models.StatusCompleted})
	_, _ = svc.Goals.Add(ctx, models.Goal{Email: "a@b.c", Date: "2025-03-19", Goal: "two", Priority: "Low"})
	// outside the window
	_, _ = svc.Goals.Add(ctx, models.Goal{Email: "a@b.c", Date: "2025-03-01", Goal: "old", Priority: "Low"})

	report, err := svc.BuildReport(ctx, "a@b.c", "", false)
	if err != nil {
		t.Fatalf("buildReport: %v", err)
	}
	if report.TotalGoals != 2 || report.Completed != 1 || report.NotCompleted != 1 {
		t.Errorf("report = %+v", report)
	}
	// unconfigured AI degrades to a canned message, never an error
	if !strings.Contains(report.AIInsights, "not configured") {
		t.Errorf("insights = %q", report.AIInsights)
	}
}

func TestGenerateAllWritesSummaries(t *testing.T) {
	svc, store := newReportService()
	ctx := context.Background()
	svc.now = func() time.Time { return time.Date(2025, 3, 20, 10, 0, 0, 0, time.UTC) }

	_, _ = svc.Profiles.Upsert(ctx, models.UserProfile{Email: "a@b.c", Username: "alice"})
	_, _ = svc.Profiles.Upsert(ctx, models.UserProfile{Email: "idle@b.c", Username: "idle"})
	_, _ = svc.Goals.Add(ctx, models.Goal{Email: "a@b.c", Username: "alice", Date: "2025-03-18", Goal: "one", Priority: "High", Status: models.StatusCompleted})

	svc.GenerateAll(ctx)

	rows, _ := store.ReadRows(ctx, sheets.WeeklySheet)
	if len(rows) != 1 {
		t.Fatalf("summaries = %d, want 1 (users without goals skipped)", len(rows))
	}
	summary := sheets.DecodeSummary(rows[0])
	if summary.Email != "a@b.c" || summary.Total != 1 || summary.Completed != 1 {
		t.Errorf("summary = %+v", summary)
	}
	if summary.WeekStart != "2025-03-13" || summary.WeekEnd != "2025-03-20" {
		t.Errorf("window = %s..%s", summary.WeekStart, summary.WeekEnd)
	}

	// a second run is idempotent thanks to the keyed upsert
	svc.GenerateAll(ctx)
	rows, _ = store.ReadRows(ctx, sheets.WeeklySheet)
	if len(rows) != 1 {
		t.Errorf("summaries after rerun = %d, want 1", len(rows))
	}
}
