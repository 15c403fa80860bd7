package workouts

import (
	"github.com/lcsouza2/fittude-data-repo/internal/db"
)

type Plan struct {
	ID      int    `json:"workout_plan_id"`
	OwnerID int    `json:"user_id"`
	Name    string `json:"workout_plan_name"`
	Goal    string `json:"workout_plan_goal"`
	Active  bool   `json:"active"`
}

type CreatePlanParams struct {
	OwnerID int
	Name    string
	Goal    string
	Active  bool
}

type UpdatePlanParams struct {
	ID      int
	OwnerID int
	Name    string
	Goal    string
	Active  bool
}

// Split is a named day grouping within a plan, e.g. "Push".
type Split struct {
	PlanID int    `json:"workout_plan_id"`
	Name   string `json:"split"`
	Active bool   `json:"active"`
}

type AddSplitParams struct {
	PlanID int
	Name   string
	Active bool
}

// SplitExerciseKey identifies one prescription. ExecutionOrder is assigned
// by the caller and is never renumbered.
type SplitExerciseKey struct {
	PlanID         int    `json:"workout_plan_id"`
	Split          string `json:"split"`
	ExerciseID     int    `json:"exercise_id"`
	ExecutionOrder int    `json:"execution_order"`
}

// SplitExercise is the prescription of one exercise within a split.
type SplitExercise struct {
	SplitExerciseKey
	Sets              int     `json:"sets"`
	Reps              string  `json:"reps"`
	AdvancedTechnique *string `json:"advanced_technique"`
	RestTime          int     `json:"rest_time"`
	Active            bool    `json:"active"`
}

// SplitExerciseView is a prescription joined with its exercise, as listed
// for a split.
type SplitExerciseView struct {
	SplitExercise
	ExerciseName        string `json:"exercise_name"`
	ExerciseDescription string `json:"description"`
}

type UpdateSplitExerciseParams struct {
	Key               SplitExerciseKey
	OwnerID           int
	Sets              int
	Reps              string
	AdvancedTechnique *string
	RestTime          int
	Active            bool
}

type Repo struct {
	db db.Querier
}

func NewRepo(db db.Querier) *Repo {
	return &Repo{
		db: db,
	}
}
