package services

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"goaltracker-backend-go/internal/models"
	"goaltracker-backend-go/internal/sheets"
)

func newGoalsRepo() (*GoalsRepository, *sheets.MemoryStore, *sheets.Stats) {
	store := sheets.NewMemoryStore()
	stats := &sheets.Stats{}
	return NewGoalsRepository(store, stats), store, stats
}

func TestAddThenGet(t *testing.T) {
	ctx := context.Background()
	repo, _, _ := newGoalsRepo()

	created, err := repo.Add(ctx, models.Goal{
		Email:    "a@b.c",
		Username: "alice",
		Date:     "2025-03-14",
		Goal:     "Finish lab",
		Priority: "High",
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("add returned empty id")
	}
	if !strings.HasPrefix(created.ID, "goal_") {
		t.Errorf("id = %q, want goal_ prefix", created.ID)
	}
	if created.Status != models.StatusNotCompleted {
		t.Errorf("status = %q, want default %q", created.Status, models.StatusNotCompleted)
	}

	got, err := repo.Get(ctx, GoalQuery{Email: "a@b.c", Date: "2025-03-14"})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d goals, want 1", len(got))
	}
	if got[0] != created {
		t.Errorf("stored goal %+v != created %+v", got[0], created)
	}
}

func TestGoalIDsUniqueWithinProcess(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := newGoalID()
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}

func TestGetPrefersUsername(t *testing.T) {
	ctx := context.Background()
	repo, _, _ := newGoalsRepo()
	_, _ = repo.Add(ctx, models.Goal{Email: "a@b.c", Username: "alice", Date: "2025-03-14", Goal: "one", Priority: "High"})
	_, _ = repo.Add(ctx, models.Goal{Email: "a@b.c", Username: "old-alice", Date: "2025-03-14", Goal: "two", Priority: "Low"})

	got, err := repo.Get(ctx, GoalQuery{Email: "a@b.c", Username: "alice"})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got) != 1 || got[0].Goal != "one" {
		t.Errorf("username filter should win over email: %+v", got)
	}
}

func TestGetAllFiltersAreOptionalAndANDed(t *testing.T) {
	ctx := context.Background()
	repo, _, _ := newGoalsRepo()
	_, _ = repo.Add(ctx, models.Goal{Email: "a@b.c", Username: "alice", Date: "2025-03-14", Goal: "one", Priority: "High"})
	_, _ = repo.Add(ctx, models.Goal{Email: "d@e.f", Username: "dan", Date: "2025-03-14", Goal: "two", Priority: "Low"})
	_, _ = repo.Add(ctx, models.Goal{Email: "a@b.c", Username: "alice", Date: "2025-03-15", Goal: "three", Priority: "Low"})

	all, err := repo.GetAll(ctx, GoalQuery{})
	if err != nil {
		t.Fatalf("getAll: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("empty query returned %d goals, want 3", len(all))
	}

	byEmailAndDate, _ := repo.GetAll(ctx, GoalQuery{Email: "a@b.c", Date: "2025-03-14"})
	if len(byEmailAndDate) != 1 || byEmailAndDate[0].Goal != "one" {
		t.Errorf("ANDed filters wrong: %+v", byEmailAndDate)
	}
}

func TestMalformedRowsDropSilently(t *testing.T) {
	ctx := context.Background()
	repo, store, stats := newGoalsRepo()
	_ = store.AppendRow(ctx, sheets.GoalsSheet, []string{"junk"})
	_, _ = repo.Add(ctx, models.Goal{Email: "a@b.c", Date: "2025-03-14", Goal: "one", Priority: "High"})

	got, err := repo.Get(ctx, GoalQuery{Email: "a@b.c"})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("got %d goals, want 1 (junk row dropped)", len(got))
	}
	_, skipped := stats.Snapshot()
	if skipped != 1 {
		t.Errorf("skipped counter = %d, want 1", skipped)
	}
}

func TestUpdateMergesPatch(t *testing.T) {
	ctx := context.Background()
	repo, _, _ := newGoalsRepo()
	created, _ := repo.Add(ctx, models.Goal{Email: "a@b.c", Username: "alice", Date: "2025-03-14", Goal: "one", Priority: "High"})

	status := models.StatusCompleted
	updated, err := repo.Update(ctx, created.ID, models.GoalPatch{Status: &status})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != models.StatusCompleted {
		t.Errorf("status = %q, want Completed", updated.Status)
	}
	if updated.Goal != "one" || updated.Priority != "High" {
		t.Errorf("omitted fields not preserved: %+v", updated)
	}

	got, _ := repo.Get(ctx, GoalQuery{Email: "a@b.c"})
	if len(got) != 1 || got[0].Status != models.StatusCompleted {
		t.Errorf("update not persisted in place: %+v", got)
	}
}

func TestUpdateMissingIDIsNotFound(t *testing.T) {
	repo, _, _ := newGoalsRepo()
	_, err := repo.Update(context.Background(), "goal_0_absent", models.GoalPatch{})
	if !HasCode(err, CodeNotFound) {
		t.Errorf("err = %v, want NOT_FOUND", err)
	}
}

// gatedStore forces two concurrent updates to both read the table
// before either writes, reproducing the read-modify-write race.
type gatedStore struct {
	sheets.RowStore
	gate *sync.WaitGroup
}

func (g *gatedStore) ReadRows(ctx context.Context, table string) ([][]string, error) {
	rows, err := g.RowStore.ReadRows(ctx, table)
	g.gate.Done()
	g.gate.Wait()
	return rows, err
}

func TestConcurrentUpdatesLastWriteWins(t *testing.T) {
	// documents the known race: with no concurrency token the later
	// write lands in full, it is not merged with the earlier one
	ctx := context.Background()
	memory := sheets.NewMemoryStore()
	stats := &sheets.Stats{}
	seed := NewGoalsRepository(memory, stats)
	created, err := seed.Add(ctx, models.Goal{Email: "a@b.c", Date: "2025-03-14", Goal: "one", Priority: "High"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	gate := &sync.WaitGroup{}
	gate.Add(2)
	repo := NewGoalsRepository(&gatedStore{RowStore: memory, gate: gate}, stats)

	status := models.StatusCompleted
	reflection := "went fine"
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, _ = repo.Update(ctx, created.ID, models.GoalPatch{Status: &status})
	}()
	go func() {
		defer wg.Done()
		_, _ = repo.Update(ctx, created.ID, models.GoalPatch{Reflection: &reflection})
	}()
	wg.Wait()

	got, err := seed.Get(ctx, GoalQuery{Email: "a@b.c"})
	if err != nil || len(got) != 1 {
		t.Fatalf("get after race: %v %v", got, err)
	}
	final := got[0]
	statusApplied := final.Status == models.StatusCompleted
	reflectionApplied := final.Reflection == "went fine"
	if statusApplied && reflectionApplied {
		t.Errorf("both patches survived; expected last write to win in full: %+v", final)
	}
	if !statusApplied && !reflectionApplied {
		t.Errorf("neither patch survived: %+v", final)
	}
}

func TestGetWeeklyWindowBoundaries(t *testing.T) {
	ctx := context.Background()
	repo, _, _ := newGoalsRepo()
	reference := time.Date(2025, 3, 20, 12, 30, 0, 0, time.UTC)

	_, _ = repo.Add(ctx, models.Goal{Email: "a@b.c", Date: "2025-03-13", Goal: "seven days ago", Priority: "High"})
	_, _ = repo.Add(ctx, models.Goal{Email: "a@b.c", Date: "2025-03-12", Goal: "eight days ago", Priority: "High"})
	_, _ = repo.Add(ctx, models.Goal{Email: "a@b.c", Date: "2025-03-20", Goal: "today", Priority: "High"})

	got, err := repo.GetWeekly(ctx, "a@b.c", "", reference)
	if err != nil {
		t.Fatalf("getWeekly: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d goals, want 2: %+v", len(got), got)
	}
	for _, g := range got {
		if g.Goal == "eight days ago" {
			t.Errorf("window included a goal 8 days old")
		}
	}
}

func TestGetWeeklyExcludesUnparseableDates(t *testing.T) {
	ctx := context.Background()
	memory := sheets.NewMemoryStore()
	stats := &sheets.Stats{}
	repo := NewGoalsRepository(memory, stats)
	// legacy-shaped row that decodes fine but carries a date the window
	// cannot parse; it must be excluded, not error
	_ = memory.AppendRow(ctx, sheets.GoalsSheet, []string{
		"goal_1_aaaaaa", "a@b.c", "13/03/2025", "bad date", "Low", "", "Not Completed", "", "",
	})
	_, _ = repo.Add(ctx, models.Goal{Email: "a@b.c", Date: "2025-03-20", Goal: "good", Priority: "Low"})

	got, err := repo.GetWeekly(ctx, "a@b.c", "", time.Date(2025, 3, 20, 8, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("getWeekly: %v", err)
	}
	if len(got) != 1 || got[0].Goal != "good" {
		t.Errorf("unparseable date not excluded: %+v", got)
	}
}
