package services

import (
	"context"
	"fmt"
	"time"

	"goaltracker-backend-go/internal/models"
	"goaltracker-backend-go/internal/sheets"
)

type WeeklySummaryRepository struct {
	store sheets.RowStore
	stats *sheets.Stats
	now   func() time.Time
}

func NewWeeklySummaryRepository(store sheets.RowStore, stats *sheets.Stats) *WeeklySummaryRepository {
	return &WeeklySummaryRepository{store: store, stats: stats, now: time.Now}
}

// Upsert derives the completion rate, performance status and final
// remarks from the counts, then writes one record per
// (email, weekStart, weekEnd): overwrite in place when that key already
// exists, append otherwise. Repeating the same input is idempotent.
func (r *WeeklySummaryRepository) Upsert(ctx context.Context, summary models.WeeklySummary) (models.WeeklySummary, error) {
	rate := 0.0
	if summary.Total > 0 {
		rate = float64(summary.Completed) / float64(summary.Total) * 100
	}
	summary.CompletionRate = fmt.Sprintf("%.1f%%", rate)
	summary.PerformanceStatus = performanceStatus(rate)
	summary.FinalRemarks = finalRemarks(rate)
	if summary.AIFeedback == "" {
		summary.AIFeedback = "Improve consistency"
	}
	summary.RecordedAt = r.now().UTC().Format(time.RFC3339)

	if err := r.store.Ensure(ctx, sheets.WeeklySheet, sheets.WeeklyHeaders); err != nil {
		return models.WeeklySummary{}, ErrBackendUnavailable(err)
	}
	rows, err := r.store.ReadRows(ctx, sheets.WeeklySheet)
	if err != nil {
		return models.WeeklySummary{}, ErrBackendUnavailable(err)
	}
	r.stats.Scanned(len(rows))

	for i, row := range rows {
		existing := sheets.DecodeSummary(row)
		if existing.Email == summary.Email &&
			existing.WeekStart == summary.WeekStart &&
			existing.WeekEnd == summary.WeekEnd {
			if err := r.store.UpdateRow(ctx, sheets.WeeklySheet, i, sheets.EncodeSummary(summary)); err != nil {
				return models.WeeklySummary{}, ErrBackendUnavailable(err)
			}
			return summary, nil
		}
	}
	if err := r.store.AppendRow(ctx, sheets.WeeklySheet, sheets.EncodeSummary(summary)); err != nil {
		return models.WeeklySummary{}, ErrBackendUnavailable(err)
	}
	return summary, nil
}

// ListAll returns every stored summary, counts coerced from cell text
// with non-numeric values defaulting to 0.
func (r *WeeklySummaryRepository) ListAll(ctx context.Context) ([]models.WeeklySummary, error) {
	rows, err := r.store.ReadRows(ctx, sheets.WeeklySheet)
	if err != nil {
		return nil, ErrBackendUnavailable(err)
	}
	r.stats.Scanned(len(rows))
	summaries := make([]models.WeeklySummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, sheets.DecodeSummary(row))
	}
	return summaries, nil
}

func performanceStatus(rate float64) string {
	switch {
	case rate >= 80:
		return models.PerformanceExcellent
	case rate >= 60:
		return models.PerformanceGood
	default:
		return models.PerformanceNeedsImprovement
	}
}

func finalRemarks(rate float64) string {
	switch {
	case rate >= 80:
		return "Outstanding week, keep the momentum going"
	case rate >= 60:
		return "Solid progress, push for a stronger finish next week"
	default:
		return "Tough week, refocus on fewer goals and build back up"
	}
}
