package models

// Goal status values as stored in the sheet.
const (
	StatusNotCompleted       = "Not Completed"
	StatusPartiallyCompleted = "Partially Completed"
	StatusCompleted          = "Completed"
)

// Performance status values derived from the weekly completion rate.
const (
	PerformanceExcellent        = "Excellent"
	PerformanceGood             = "Good"
	PerformanceNeedsImprovement = "Needs Improvement"
)

type Goal struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	Date         string `json:"date"`
	Goal         string `json:"goal"`
	Priority     string `json:"priority"`
	TimeEstimate string `json:"timeEstimate"`
	Status       string `json:"status"`
	Reflection   string `json:"reflection"`
	Blockers     string `json:"blockers"`
}

// GoalPatch carries the fields a partial update may touch. Nil means
// "leave the stored value alone".
type GoalPatch struct {
	Goal         *string `json:"goal"`
	Date         *string `json:"date"`
	Priority     *string `json:"priority"`
	TimeEstimate *string `json:"timeEstimate"`
	Status       *string `json:"status"`
	Reflection   *string `json:"reflection"`
	Blockers     *string `json:"blockers"`
}

type UserProfile struct {
	Email     string `json:"email"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phase     int    `json:"phase"`
	Role      string `json:"role"`
	UpdatedAt string `json:"updatedAt"`
}

// UserRef is the slim projection used for batch enumeration.
type UserRef struct {
	Email    string `json:"email"`
	Username string `json:"username"`
}

type WeeklySummary struct {
	Email             string `json:"email"`
	Username          string `json:"username"`
	WeekStart         string `json:"weekStart"`
	WeekEnd           string `json:"weekEnd"`
	Total             int    `json:"total"`
	Completed         int    `json:"completed"`
	Partial           int    `json:"partial"`
	Missed            int    `json:"missed"`
	CompletionRate    string `json:"completionRate"`
	PerformanceStatus string `json:"performanceStatus"`
	AIFeedback        string `json:"aiFeedback"`
	FinalRemarks      string `json:"finalRemarks"`
	RecordedAt        string `json:"recordedAt"`
}
