package sheets

import (
	"regexp"
	"strconv"
	"time"

	"goaltracker-backend-go/internal/models"
)

var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// IsCalendarDate reports whether a cell holds an ISO calendar date.
func IsCalendarDate(cell string) bool {
	if !isoDatePattern.MatchString(cell) {
		return false
	}
	_, err := time.Parse("2006-01-02", cell)
	return err == nil
}

// cell returns row[i], or "" when the backend omitted the trailing
// blank cell entirely.
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

// DecodeGoal maps one positional row onto a Goal. Two layouts exist in
// the wild: the current one with a Username column at index 2, and a
// legacy one without it, every later field shifted left by one. The row
// itself carries no version marker, so the layout is sniffed: if the
// cell where the current layout keeps the date looks like a calendar
// date, the row has a username column.
//
// Rows with fewer than 7 cells, or whose decoded date or goal text is
// empty, return ok=false and are dropped by callers. Lenient reads are
// deliberate: one bad row must not poison a whole query.
func DecodeGoal(row []string) (models.Goal, bool) {
	if len(row) < 7 {
		return models.Goal{}, false
	}
	hasUsername := IsCalendarDate(cell(row, 3))

	var g models.Goal
	g.ID = cell(row, 0)
	g.Email = cell(row, 1)
	if hasUsername {
		g.Username = cell(row, 2)
		g.Date = cell(row, 3)
		g.Goal = cell(row, 4)
		g.Priority = cell(row, 5)
		g.TimeEstimate = cell(row, 6)
		g.Status = cell(row, 7)
		g.Reflection = cell(row, 8)
		g.Blockers = cell(row, 9)
	} else {
		g.Date = cell(row, 2)
		g.Goal = cell(row, 3)
		g.Priority = cell(row, 4)
		g.TimeEstimate = cell(row, 5)
		g.Status = cell(row, 6)
		g.Reflection = cell(row, 7)
		g.Blockers = cell(row, 8)
	}
	if g.Date == "" || g.Goal == "" {
		return models.Goal{}, false
	}
	return g, true
}

// EncodeGoal emits the fixed-width canonical row. Absent optionals are
// empty strings, never dropped cells, so column positions stay stable.
func EncodeGoal(g models.Goal) []string {
	status := g.Status
	if status == "" {
		status = models.StatusNotCompleted
	}
	return []string{
		g.ID,
		g.Email,
		g.Username,
		g.Date,
		g.Goal,
		g.Priority,
		g.TimeEstimate,
		status,
		g.Reflection,
		g.Blockers,
	}
}

func DecodeProfile(row []string) models.UserProfile {
	phase, _ := strconv.Atoi(cell(row, 4))
	role := cell(row, 5)
	if role == "" {
		role = "student"
	}
	return models.UserProfile{
		Email:     cell(row, 0),
		Username:  cell(row, 1),
		FirstName: cell(row, 2),
		LastName:  cell(row, 3),
		Phase:     phase,
		Role:      role,
		UpdatedAt: cell(row, 6),
	}
}

func EncodeProfile(p models.UserProfile) []string {
	return []string{
		p.Email,
		p.Username,
		p.FirstName,
		p.LastName,
		strconv.Itoa(p.Phase),
		p.Role,
		p.UpdatedAt,
	}
}

// DecodeSummary coerces the stored count cells back to integers;
// non-numeric cells come back as 0 rather than failing the read.
func DecodeSummary(row []string) models.WeeklySummary {
	return models.WeeklySummary{
		Email:             cell(row, 0),
		Username:          cell(row, 1),
		WeekStart:         cell(row, 2),
		WeekEnd:           cell(row, 3),
		Total:             atoiOrZero(cell(row, 4)),
		Completed:         atoiOrZero(cell(row, 5)),
		Partial:           atoiOrZero(cell(row, 6)),
		Missed:            atoiOrZero(cell(row, 7)),
		CompletionRate:    cell(row, 8),
		PerformanceStatus: cell(row, 9),
		AIFeedback:        cell(row, 10),
		FinalRemarks:      cell(row, 11),
		RecordedAt:        cell(row, 12),
	}
}

func EncodeSummary(s models.WeeklySummary) []string {
	return []string{
		s.Email,
		s.Username,
		s.WeekStart,
		s.WeekEnd,
		strconv.Itoa(s.Total),
		strconv.Itoa(s.Completed),
		strconv.Itoa(s.Partial),
		strconv.Itoa(s.Missed),
		s.CompletionRate,
		s.PerformanceStatus,
		s.AIFeedback,
		s.FinalRemarks,
		s.RecordedAt,
	}
}

func atoiOrZero(cell string) int {
	value, err := strconv.Atoi(cell)
	if err != nil {
		return 0
	}
	return value
}
