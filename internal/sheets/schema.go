package sheets

// Logical table names. The goals sheet keeps its historical name from
// before the other two tables existed.
const (
	GoalsSheet  = "Sheet1"
	UsersSheet  = "Users"
	WeeklySheet = "WeeklyProgress"
)

// Canonical headers, one per logical table. Column order is the schema;
// there is no version marker in the data rows.
var (
	GoalHeaders = []string{
		"ID", "Email", "Username", "Date", "Goal", "Priority",
		"TimeEstimate", "Status", "Reflection", "Blockers",
	}

	UserHeaders = []string{
		"Email", "Username", "FirstName", "LastName",
		"Phase", "Role", "UpdatedAt",
	}

	WeeklyHeaders = []string{
		"Email", "Username", "WeekStart", "WeekEnd",
		"Total", "Completed", "Partial", "Missed",
		"CompletionRate", "PerformanceStatus",
		"AIFeedback", "FinalRemarks", "RecordedAt",
	}
)

// Headers returns the canonical header row for a table, nil for an
// unknown table name.
func Headers(table string) []string {
	switch table {
	case GoalsSheet:
		return GoalHeaders
	case UsersSheet:
		return UserHeaders
	case WeeklySheet:
		return WeeklyHeaders
	}
	return nil
}

// lastColumn converts a column count to its A1-notation letter. All
// three tables fit in a single letter.
func lastColumn(width int) string {
	return string(rune('A' + width - 1))
}
