package services

import (
	"context"
	"testing"

	"goaltracker-backend-go/internal/models"
	"goaltracker-backend-go/internal/sheets"
)

func newWeeklyRepo() (*WeeklySummaryRepository, *sheets.MemoryStore) {
	store := sheets.NewMemoryStore()
	return NewWeeklySummaryRepository(store, &sheets.Stats{}), store
}

func TestUpsertDerivesRateAndStatus(t *testing.T) {
	ctx := context.Background()
	repo, _ := newWeeklyRepo()

	tests := []struct {
		name       string
		total      int
		completed  int
		wantRate   string
		wantStatus string
	}{
		{"excellent", 10, 9, "90.0%", models.PerformanceExcellent},
		{"good", 10, 7, "70.0%", models.PerformanceGood},
		{"boundary excellent", 10, 8, "80.0%", models.PerformanceExcellent},
		{"boundary good", 10, 6, "60.0%", models.PerformanceGood},
		{"needs improvement", 10, 3, "30.0%", models.PerformanceNeedsImprovement},
		{"zero total", 0, 0, "0.0%", models.PerformanceNeedsImprovement},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			saved, err := repo.Upsert(ctx, models.WeeklySummary{
				Email:     "a@b.c",
				WeekStart: "2025-03-07",
				WeekEnd:   "2025-03-14",
				Total:     tt.total,
				Completed: tt.completed,
			})
			if err != nil {
				t.Fatalf("upsert: %v", err)
			}
			if saved.CompletionRate != tt.wantRate {
				t.Errorf("rate = %q, want %q", saved.CompletionRate, tt.wantRate)
			}
			if saved.PerformanceStatus != tt.wantStatus {
				t.Errorf("status = %q, want %q", saved.PerformanceStatus, tt.wantStatus)
			}
			if saved.FinalRemarks == "" {
				t.Errorf("finalRemarks not set")
			}
			if saved.RecordedAt == "" {
				t.Errorf("recordedAt not stamped")
			}
		})
	}
}

func TestUpsertKeyedByEmailAndWeek(t *testing.T) {
	ctx := context.Background()
	repo, store := newWeeklyRepo()

	summary := models.WeeklySummary{
		Email:     "a@b.c",
		WeekStart: "2025-03-07",
		WeekEnd:   "2025-03-14",
		Total:     10,
		Completed: 7,
	}
	if _, err := repo.Upsert(ctx, summary); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if _, err := repo.Upsert(ctx, summary); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	rows, _ := store.ReadRows(ctx, sheets.WeeklySheet)
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1 (idempotent upsert)", len(rows))
	}

	// a different week appends a second record
	summary.WeekStart = "2025-03-14"
	summary.WeekEnd = "2025-03-21"
	if _, err := repo.Upsert(ctx, summary); err != nil {
		t.Fatalf("third upsert: %v", err)
	}
	rows, _ = store.ReadRows(ctx, sheets.WeeklySheet)
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
}

func TestUpsertOverwritesInPlace(t *testing.T) {
	ctx := context.Background()
	repo, _ := newWeeklyRepo()

	base := models.WeeklySummary{Email: "a@b.c", WeekStart: "2025-03-07", WeekEnd: "2025-03-14", Total: 10, Completed: 5}
	_, _ = repo.Upsert(ctx, base)
	base.Completed = 9
	_, _ = repo.Upsert(ctx, base)

	all, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("listAll: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("records = %d, want 1", len(all))
	}
	if all[0].Completed != 9 || all[0].CompletionRate != "90.0%" {
		t.Errorf("overwrite not applied: %+v", all[0])
	}
}

func TestListAllCoercesNumbers(t *testing.T) {
	ctx := context.Background()
	repo, store := newWeeklyRepo()
	_ = store.AppendRow(ctx, sheets.WeeklySheet, []string{
		"a@b.c", "alice", "2025-03-07", "2025-03-14",
		"not-a-number", "7", "", "3", "70.0%", "Good", "fb", "fr", "2025-03-14T10:00:00Z",
	})

	all, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("listAll: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("records = %d, want 1", len(all))
	}
	if all[0].Total != 0 || all[0].Completed != 7 || all[0].Partial != 0 || all[0].Missed != 3 {
		t.Errorf("coercion wrong: %+v", all[0])
	}
}
