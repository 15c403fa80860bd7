package reports

import (
	"time"

	"github.com/lcsouza2/fittude-data-repo/internal/db"
)

// Report is one logged session of a plan split.
type Report struct {
	ID     int       `json:"workout_report_id"`
	PlanID int       `json:"workout_plan_id"`
	Split  string    `json:"split"`
	Date   time.Time `json:"report_date"`
}

// ReportView is a report joined with its owning plan.
type ReportView struct {
	Report
	OwnerID  int    `json:"user_id"`
	PlanName string `json:"workout_plan_name"`
}

type CreateReportParams struct {
	PlanID int
	Split  string
	Date   time.Time
}

type SetReportKey struct {
	ReportID   int    `json:"workout_report_id"`
	ExerciseID int    `json:"exercise_id"`
	Split      string `json:"split"`
	PlanID     int    `json:"workout_plan_id"`
	SetNumber  int    `json:"set_number"`
}

// SetReport is one logged set. ExecutionOrder points at the prescription
// the set was performed for.
type SetReport struct {
	SetReportKey
	ExecutionOrder int     `json:"execution_order"`
	Reps           string  `json:"reps"`
	Weight         int     `json:"weight"`
	Notes          *string `json:"notes"`
}

// WorkoutSet is a set report joined with its exercise.
type WorkoutSet struct {
	SetReport
	ExerciseName        string `json:"exercise_name"`
	ExerciseDescription string `json:"description"`
}

// ExerciseSet is a set report with the date of the session it was logged in.
type ExerciseSet struct {
	SetReport
	ReportDate time.Time `json:"report_date"`
}

type Repo struct {
	db db.Querier
}

func NewRepo(db db.Querier) *Repo {
	return &Repo{
		db: db,
	}
}
