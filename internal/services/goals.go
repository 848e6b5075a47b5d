package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"goaltracker-backend-go/internal/models"
	"goaltracker-backend-go/internal/sheets"
)

// GoalQuery filters goal scans. For Get, Username wins over Email; for
// GetAll every non-empty field is ANDed independently.
type GoalQuery struct {
	Email    string
	Username string
	Date     string
}

type GoalsRepository struct {
	store sheets.RowStore
	stats *sheets.Stats
}

func NewGoalsRepository(store sheets.RowStore, stats *sheets.Stats) *GoalsRepository {
	return &GoalsRepository{store: store, stats: stats}
}

// Add assigns a fresh id and appends the encoded row. The id combines a
// millisecond timestamp with a random alphanumeric suffix so rapid
// successive calls in one process cannot collide.
func (r *GoalsRepository) Add(ctx context.Context, goal models.Goal) (models.Goal, error) {
	goal.ID = newGoalID()
	if goal.Status == "" {
		goal.Status = models.StatusNotCompleted
	}
	if err := r.store.Ensure(ctx, sheets.GoalsSheet, sheets.GoalHeaders); err != nil {
		return models.Goal{}, ErrBackendUnavailable(err)
	}
	if err := r.store.AppendRow(ctx, sheets.GoalsSheet, sheets.EncodeGoal(goal)); err != nil {
		return models.Goal{}, ErrBackendUnavailable(err)
	}
	return goal, nil
}

// Get returns one user's goals: by username when the query carries one,
// by email otherwise, optionally narrowed to one exact date. Append
// order is preserved.
func (r *GoalsRepository) Get(ctx context.Context, q GoalQuery) ([]models.Goal, error) {
	goals, err := r.readAll(ctx)
	if err != nil {
		return nil, err
	}
	matched := []models.Goal{}
	for _, g := range goals {
		if q.Username != "" {
			if g.Username != q.Username {
				continue
			}
		} else if g.Email != q.Email {
			continue
		}
		if q.Date != "" && g.Date != q.Date {
			continue
		}
		matched = append(matched, g)
	}
	return matched, nil
}

// GetAll is the administrative variant: every filter is optional, and
// an empty query returns every decodable goal.
func (r *GoalsRepository) GetAll(ctx context.Context, q GoalQuery) ([]models.Goal, error) {
	goals, err := r.readAll(ctx)
	if err != nil {
		return nil, err
	}
	matched := []models.Goal{}
	for _, g := range goals {
		if q.Email != "" && g.Email != q.Email {
			continue
		}
		if q.Username != "" && g.Username != q.Username {
			continue
		}
		if q.Date != "" && g.Date != q.Date {
			continue
		}
		matched = append(matched, g)
	}
	return matched, nil
}

// Update merges the patch over the stored goal and writes the row back
// at its original position. Read-modify-write with no concurrency
// token: two racing updates to one id resolve to whichever write lands
// last, in full.
func (r *GoalsRepository) Update(ctx context.Context, id string, patch models.GoalPatch) (models.Goal, error) {
	rows, err := r.store.ReadRows(ctx, sheets.GoalsSheet)
	if err != nil {
		return models.Goal{}, ErrBackendUnavailable(err)
	}
	for i, row := range rows {
		if len(row) == 0 || row[0] != id {
			continue
		}
		goal, ok := sheets.DecodeGoal(row)
		if !ok {
			continue
		}
		applyPatch(&goal, patch)
		if err := r.store.UpdateRow(ctx, sheets.GoalsSheet, i, sheets.EncodeGoal(goal)); err != nil {
			return models.Goal{}, ErrBackendUnavailable(err)
		}
		return goal, nil
	}
	return models.Goal{}, ErrNotFound("goal not found")
}

// GetWeekly returns the user's goals dated inside the inclusive 7-day
// window ending on the reference day. Goals with unparseable dates are
// excluded, not errors.
func (r *GoalsRepository) GetWeekly(ctx context.Context, email, username string, reference time.Time) ([]models.Goal, error) {
	goals, err := r.Get(ctx, GoalQuery{Email: email, Username: username})
	if err != nil {
		return nil, err
	}
	window := WeekWindowEnding(reference)
	matched := []models.Goal{}
	for _, g := range goals {
		if window.Contains(g.Date) {
			matched = append(matched, g)
		}
	}
	return matched, nil
}

func (r *GoalsRepository) readAll(ctx context.Context) ([]models.Goal, error) {
	rows, err := r.store.ReadRows(ctx, sheets.GoalsSheet)
	if err != nil {
		return nil, ErrBackendUnavailable(err)
	}
	r.stats.Scanned(len(rows))
	goals := make([]models.Goal, 0, len(rows))
	for _, row := range rows {
		goal, ok := sheets.DecodeGoal(row)
		if !ok {
			r.stats.Skipped(1)
			continue
		}
		goals = append(goals, goal)
	}
	return goals, nil
}

func applyPatch(goal *models.Goal, patch models.GoalPatch) {
	if patch.Goal != nil {
		goal.Goal = *patch.Goal
	}
	if patch.Date != nil {
		goal.Date = *patch.Date
	}
	if patch.Priority != nil {
		goal.Priority = *patch.Priority
	}
	if patch.TimeEstimate != nil {
		goal.TimeEstimate = *patch.TimeEstimate
	}
	if patch.Status != nil {
		goal.Status = *patch.Status
	}
	if patch.Reflection != nil {
		goal.Reflection = *patch.Reflection
	}
	if patch.Blockers != nil {
		goal.Blockers = *patch.Blockers
	}
}

func newGoalID() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("goal_%d_%s", time.Now().UnixMilli(), suffix)
}
