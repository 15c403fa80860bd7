//go:build integration_test || all_tests

package test

import (
	"context"
	"time"

	"github.com/lcsouza2/fittude-data-repo/internal/catalog"
	"github.com/lcsouza2/fittude-data-repo/internal/exercises"
	"github.com/lcsouza2/fittude-data-repo/internal/reports"
	"github.com/lcsouza2/fittude-data-repo/internal/store"
	"github.com/lcsouza2/fittude-data-repo/internal/users"
	"github.com/lcsouza2/fittude-data-repo/internal/workouts"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) registerUser(ctx context.Context) (int, string) {
	password := gofakeit.Password(true, true, true, false, false, 12)
	email := gofakeit.Email()
	id, err := s.users.Register(ctx, email, gofakeit.Name(), password)
	require.NoError(s.T(), err)
	require.Positive(s.T(), id)
	return id, password
}

func (s *IntegrationTestSuite) TestUsers() {
	ctx := context.Background()
	t := s.T()

	id, err := s.users.Register(ctx, "a@x.com", "A", "secret-1")
	require.NoError(t, err)

	_, err = s.users.Register(ctx, "a@x.com", "Other A", "secret-2")
	assert.ErrorIs(t, err, store.ErrConflict)

	user, err := s.users.CheckCredentials(ctx, "a@x.com", "secret-1")
	require.NoError(t, err)
	assert.Equal(t, id, user.ID)
	assert.Equal(t, "A", user.Name)

	_, err = s.users.CheckCredentials(ctx, "a@x.com", "wrong")
	assert.ErrorIs(t, err, users.ErrInvalidCredentials)

	_, err = s.users.ChangePassword(ctx, "a@x.com", "secret-3")
	require.NoError(t, err)
	_, err = s.users.CheckCredentials(ctx, "a@x.com", "secret-3")
	require.NoError(t, err)

	_, err = s.usersRepo.GetByID(ctx, id+10_000)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func (s *IntegrationTestSuite) TestDefaultCatalog() {
	ctx := context.Background()
	t := s.T()

	groups, err := s.catalog.ListDefaultGroups(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, groups)
	for _, g := range groups {
		assert.True(t, g.Owner.IsSharedDefault())
	}

	muscles, err := s.catalog.ListDefaultMuscles(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, muscles)

	equipment, err := s.catalog.ListDefaultEquipment(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, equipment)

	userID, _ := s.registerUser(ctx)

	// shared rows are never writable through an owner
	_, err = s.catalog.DeleteMuscle(ctx, muscles[0].ID, userID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func (s *IntegrationTestSuite) TestCatalogOwnership() {
	ctx := context.Background()
	t := s.T()

	u1, _ := s.registerUser(ctx)
	u2, _ := s.registerUser(ctx)

	muscleName := "Serratus " + gofakeit.LetterN(8)
	muscleID, err := s.catalog.CreateMuscle(ctx, catalog.CreateItemParams{
		Owner:     store.OwnedBy(u1),
		GroupName: "Chest",
		Name:      muscleName,
		Active:    true,
	})
	require.NoError(t, err)

	_, err = s.catalog.CreateMuscle(ctx, catalog.CreateItemParams{
		Owner:     store.OwnedBy(u2),
		GroupName: "Chest",
		Name:      muscleName,
		Active:    true,
	})
	assert.ErrorIs(t, err, store.ErrConflict)

	_, err = s.catalog.CreateMuscle(ctx, catalog.CreateItemParams{
		Owner:     store.OwnedBy(u1),
		GroupName: "No Such Group",
		Name:      muscleName + " 2",
		Active:    true,
	})
	assert.ErrorIs(t, err, store.ErrConflict)

	_, err = s.catalog.GetMuscle(ctx, muscleID, u2)
	assert.ErrorIs(t, err, store.ErrNotFound)

	muscle, err := s.catalog.GetMuscleByName(ctx, muscleName, u1)
	require.NoError(t, err)
	assert.Equal(t, muscleID, muscle.ID)
	ownerID, ok := muscle.Owner.UserID()
	require.True(t, ok)
	assert.Equal(t, u1, ownerID)

	_, err = s.catalog.UpdateMuscle(ctx, catalog.UpdateItemParams{
		ID:        muscleID,
		OwnerID:   u2,
		GroupName: "Chest",
		Name:      "hijacked",
		Active:    false,
	})
	assert.ErrorIs(t, err, store.ErrNotFound)

	listed, err := s.catalog.ListMusclesByUser(ctx, u1, store.Page{})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, muscleName, listed[0].Name)

	deleted, err := s.catalog.DeleteMuscle(ctx, muscleID, u1)
	require.NoError(t, err)
	assert.Equal(t, muscleID, deleted)
}

func (s *IntegrationTestSuite) TestWorkoutScenario() {
	ctx := context.Background()
	t := s.T()

	u1, _ := s.registerUser(ctx)
	u2, _ := s.registerUser(ctx)

	exerciseName := "Bench Press " + gofakeit.LetterN(6)
	exerciseID, err := s.exercises.Create(ctx, exercises.CreateParams{
		Owner:       store.OwnedBy(u1),
		Name:        exerciseName,
		Description: "flat barbell",
		Active:      true,
	})
	require.NoError(t, err)

	_, err = s.exercises.Create(ctx, exercises.CreateParams{
		Owner:  store.OwnedBy(u1),
		Name:   exerciseName,
		Active: true,
	})
	assert.ErrorIs(t, err, store.ErrConflict)

	muscles, err := s.catalog.ListDefaultMuscles(ctx)
	require.NoError(t, err)
	_, err = s.exercises.BindMuscle(ctx, exerciseID, muscles[0].ID)
	require.NoError(t, err)
	bound, err := s.exercises.ListMuscles(ctx, exerciseID)
	require.NoError(t, err)
	require.Len(t, bound, 1)
	assert.Equal(t, muscles[0].Name, bound[0].Name)

	planID, err := s.workouts.CreatePlan(ctx, workouts.CreatePlanParams{
		OwnerID: u1,
		Name:    "PPL " + gofakeit.LetterN(6),
		Goal:    "hypertrophy",
		Active:  true,
	})
	require.NoError(t, err)

	_, err = s.workouts.AddSplit(ctx, workouts.AddSplitParams{
		PlanID: planID,
		Name:   "Push",
		Active: true,
	})
	require.NoError(t, err)

	key := workouts.SplitExerciseKey{
		PlanID:         planID,
		Split:          "Push",
		ExerciseID:     exerciseID,
		ExecutionOrder: 1,
	}
	_, err = s.workouts.AddSplitExercise(ctx, workouts.SplitExercise{
		SplitExerciseKey: key,
		Sets:             3,
		Reps:             "8-12",
		RestTime:         90,
		Active:           true,
	})
	require.NoError(t, err)

	prescriptions, err := s.workouts.ListSplitExercises(ctx, planID, "Push", u1)
	require.NoError(t, err)
	require.Len(t, prescriptions, 1)
	assert.Equal(t, 1, prescriptions[0].ExecutionOrder)
	assert.Equal(t, "8-12", prescriptions[0].Reps)
	assert.Equal(t, exerciseName, prescriptions[0].ExerciseName)

	others, err := s.workouts.ListSplitExercises(ctx, planID, "Push", u2)
	require.NoError(t, err)
	assert.Empty(t, others)

	today := time.Now().UTC().Truncate(24 * time.Hour)
	reportID, err := s.reports.CreateReport(ctx, reports.CreateReportParams{
		PlanID: planID,
		Split:  "Push",
		Date:   today,
	})
	require.NoError(t, err)

	setKey := reports.SetReportKey{
		ReportID:   reportID,
		ExerciseID: exerciseID,
		Split:      "Push",
		PlanID:     planID,
		SetNumber:  1,
	}
	_, err = s.reports.CreateSetReport(ctx, reports.SetReport{
		SetReportKey:   setKey,
		ExecutionOrder: 1,
		Reps:           "10",
		Weight:         60,
	})
	require.NoError(t, err)

	sets, err := s.reports.ListSetReportsByWorkout(ctx, reportID, u1)
	require.NoError(t, err)
	require.Len(t, sets, 1)
	assert.Equal(t, exerciseName, sets[0].ExerciseName)
	assert.Equal(t, "10", sets[0].Reps)
	assert.Equal(t, 60, sets[0].Weight)

	history, err := s.reports.ListSetReportsByExercise(ctx, exerciseID, u1, store.Page{})
	require.NoError(t, err)
	require.Len(t, history, 1)

	// another user can neither read nor delete the session
	_, err = s.reports.GetReport(ctx, reportID, u2)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.reports.DeleteSetReport(ctx, setKey, u2)
	assert.ErrorIs(t, err, store.ErrInternal)
	_, err = s.reports.DeleteReport(ctx, reportID, u2)
	assert.ErrorIs(t, err, store.ErrInternal)

	deleted, err := s.reports.DeleteSetReports(ctx, reportID, u1)
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)

	_, err = s.reports.DeleteSetReports(ctx, reportID, u1)
	assert.ErrorIs(t, err, store.ErrInternal)

	deletedReport, err := s.reports.DeleteReport(ctx, reportID, u1)
	require.NoError(t, err)
	assert.Equal(t, reportID, deletedReport)
}

func (s *IntegrationTestSuite) TestReportsNewestFirst() {
	ctx := context.Background()
	t := s.T()

	u1, _ := s.registerUser(ctx)
	planID, err := s.workouts.CreatePlan(ctx, workouts.CreatePlanParams{
		OwnerID: u1,
		Name:    "Upper Lower " + gofakeit.LetterN(6),
		Goal:    "strength",
		Active:  true,
	})
	require.NoError(t, err)
	_, err = s.workouts.AddSplit(ctx, workouts.AddSplitParams{
		PlanID: planID,
		Name:   "Upper",
		Active: true,
	})
	require.NoError(t, err)

	day := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	var ids []int
	for i := 0; i < 3; i++ {
		id, err := s.reports.CreateReport(ctx, reports.CreateReportParams{
			PlanID: planID,
			Split:  "Upper",
			Date:   day.AddDate(0, 0, i),
		})
		require.NoError(t, err)
		ids = append(ids, id)
	}

	listed, err := s.reports.ListReportsByPlan(ctx, planID, u1, store.Page{Limit: 2})
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, ids[2], listed[0].ID)
	assert.Equal(t, ids[1], listed[1].ID)

	rest, err := s.reports.ListReportsByPlan(ctx, planID, u1, store.Page{Limit: 2, Offset: 2})
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Equal(t, ids[0], rest[0].ID)

	_, err = s.reports.CreateReport(ctx, reports.CreateReportParams{
		PlanID: planID,
		Split:  "Legs",
		Date:   day,
	})
	assert.ErrorIs(t, err, store.ErrConflict)
}

// planWithPrescription creates a plan owned by userID with one split holding
// one exercise at execution order 1.
func (s *IntegrationTestSuite) planWithPrescription(ctx context.Context, userID int, split string) (planID, exerciseID int) {
	t := s.T()

	exerciseID, err := s.exercises.Create(ctx, exercises.CreateParams{
		Owner:  store.OwnedBy(userID),
		Name:   "Deadlift " + gofakeit.LetterN(8),
		Active: true,
	})
	require.NoError(t, err)

	planID, err = s.workouts.CreatePlan(ctx, workouts.CreatePlanParams{
		OwnerID: userID,
		Name:    "Strength " + gofakeit.LetterN(8),
		Goal:    "strength",
		Active:  true,
	})
	require.NoError(t, err)

	_, err = s.workouts.AddSplit(ctx, workouts.AddSplitParams{PlanID: planID, Name: split, Active: true})
	require.NoError(t, err)

	_, err = s.workouts.AddSplitExercise(ctx, workouts.SplitExercise{
		SplitExerciseKey: workouts.SplitExerciseKey{
			PlanID:         planID,
			Split:          split,
			ExerciseID:     exerciseID,
			ExecutionOrder: 1,
		},
		Sets:     5,
		Reps:     "5",
		RestTime: 180,
		Active:   true,
	})
	require.NoError(t, err)
	return planID, exerciseID
}

func (s *IntegrationTestSuite) TestReportDeleteRemovesItsSets() {
	ctx := context.Background()
	t := s.T()

	u1, _ := s.registerUser(ctx)
	u2, _ := s.registerUser(ctx)
	planA, exerciseA := s.planWithPrescription(ctx, u1, "Lower")
	planB, exerciseB := s.planWithPrescription(ctx, u2, "Lower")

	reportID, err := s.reports.CreateReport(ctx, reports.CreateReportParams{
		PlanID: planA,
		Split:  "Lower",
		Date:   time.Now().UTC().Truncate(24 * time.Hour),
	})
	require.NoError(t, err)

	for setNumber := 1; setNumber <= 2; setNumber++ {
		_, err = s.reports.CreateSetReport(ctx, reports.SetReport{
			SetReportKey: reports.SetReportKey{
				ReportID:   reportID,
				ExerciseID: exerciseA,
				Split:      "Lower",
				PlanID:     planA,
				SetNumber:  setNumber,
			},
			ExecutionOrder: 1,
			Reps:           "5",
			Weight:         140,
		})
		require.NoError(t, err)
	}

	// a set must be logged against the plan of its report
	_, err = s.reports.CreateSetReport(ctx, reports.SetReport{
		SetReportKey: reports.SetReportKey{
			ReportID:   reportID,
			ExerciseID: exerciseB,
			Split:      "Lower",
			PlanID:     planB,
			SetNumber:  1,
		},
		ExecutionOrder: 1,
		Reps:           "5",
		Weight:         100,
	})
	assert.ErrorIs(t, err, store.ErrConflict)

	deleted, err := s.reports.DeleteReport(ctx, reportID, u1)
	require.NoError(t, err)
	assert.Equal(t, reportID, deleted)

	_, err = s.reports.GetReport(ctx, reportID, u1)
	assert.ErrorIs(t, err, store.ErrNotFound)
	history, err := s.reports.ListSetReportsByExercise(ctx, exerciseA, u1, store.Page{})
	require.NoError(t, err)
	assert.Empty(t, history)
}
