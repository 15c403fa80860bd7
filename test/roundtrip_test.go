//go:build integration_test || all_tests

package test

import (
	"context"

	"github.com/lcsouza2/fittude-data-repo/internal/catalog"
	"github.com/lcsouza2/fittude-data-repo/internal/exercises"
	"github.com/lcsouza2/fittude-data-repo/internal/store"
	"github.com/lcsouza2/fittude-data-repo/internal/workouts"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestCreatedRowsReadBackUnchanged() {
	ctx := context.Background()
	t := s.T()

	u1, _ := s.registerUser(ctx)

	muscleParams := catalog.CreateItemParams{
		Owner:     store.OwnedBy(u1),
		GroupName: "Back",
		Name:      "Teres Major " + gofakeit.LetterN(8),
		Active:    false,
	}
	muscleID, err := s.catalog.CreateMuscle(ctx, muscleParams)
	require.NoError(t, err)
	muscle, err := s.catalog.GetMuscle(ctx, muscleID, u1)
	require.NoError(t, err)
	assert.Equal(t, catalog.Muscle{
		ID:        muscleID,
		Owner:     muscleParams.Owner,
		GroupName: muscleParams.GroupName,
		Name:      muscleParams.Name,
		Active:    muscleParams.Active,
	}, muscle)

	equipmentParams := catalog.CreateItemParams{
		Owner:     store.OwnedBy(u1),
		GroupName: "Legs",
		Name:      "Hack Squat " + gofakeit.LetterN(8),
		Active:    true,
	}
	equipmentID, err := s.catalog.CreateEquipment(ctx, equipmentParams)
	require.NoError(t, err)
	equipment, err := s.catalog.GetEquipment(ctx, equipmentID, u1)
	require.NoError(t, err)
	assert.Equal(t, catalog.Equipment{
		ID:        equipmentID,
		Owner:     equipmentParams.Owner,
		GroupName: equipmentParams.GroupName,
		Name:      equipmentParams.Name,
		Active:    equipmentParams.Active,
	}, equipment)

	exerciseParams := exercises.CreateParams{
		Owner:       store.OwnedBy(u1),
		Name:        "Pendlay Row " + gofakeit.LetterN(8),
		Description: gofakeit.Sentence(6),
		Active:      true,
	}
	exerciseID, err := s.exercises.Create(ctx, exerciseParams)
	require.NoError(t, err)
	exercise, err := s.exercises.Get(ctx, exerciseID, u1)
	require.NoError(t, err)
	assert.Equal(t, exercises.Exercise{
		ID:          exerciseID,
		Owner:       exerciseParams.Owner,
		Name:        exerciseParams.Name,
		Description: exerciseParams.Description,
		Active:      exerciseParams.Active,
	}, exercise)

	planParams := workouts.CreatePlanParams{
		OwnerID: u1,
		Name:    "Full Body " + gofakeit.LetterN(8),
		Goal:    "conditioning",
		Active:  false,
	}
	planID, err := s.workouts.CreatePlan(ctx, planParams)
	require.NoError(t, err)
	plan, err := s.workouts.GetPlan(ctx, planID, u1)
	require.NoError(t, err)
	assert.Equal(t, workouts.Plan{
		ID:      planID,
		OwnerID: planParams.OwnerID,
		Name:    planParams.Name,
		Goal:    planParams.Goal,
		Active:  planParams.Active,
	}, plan)
}

func (s *IntegrationTestSuite) TestSharedDefaultsReadBackUnchanged() {
	ctx := context.Background()
	t := s.T()

	muscleParams := catalog.CreateItemParams{
		Owner:     store.SharedDefault(),
		GroupName: "Shoulders",
		Name:      "Supraspinatus " + gofakeit.LetterN(8),
		Active:    true,
	}
	muscleID, err := s.catalog.CreateMuscle(ctx, muscleParams)
	require.NoError(t, err)

	defaults, err := s.catalog.ListDefaultMuscles(ctx)
	require.NoError(t, err)
	assert.Contains(t, defaults, catalog.Muscle{
		ID:        muscleID,
		Owner:     store.SharedDefault(),
		GroupName: muscleParams.GroupName,
		Name:      muscleParams.Name,
		Active:    true,
	})

	exerciseParams := exercises.CreateParams{
		Owner:       store.SharedDefault(),
		Name:        "Face Pull " + gofakeit.LetterN(8),
		Description: "rope attachment",
		Active:      true,
	}
	exerciseID, err := s.exercises.Create(ctx, exerciseParams)
	require.NoError(t, err)

	defaultExercises, err := s.exercises.ListDefaults(ctx)
	require.NoError(t, err)
	assert.Contains(t, defaultExercises, exercises.Exercise{
		ID:          exerciseID,
		Owner:       store.SharedDefault(),
		Name:        exerciseParams.Name,
		Description: exerciseParams.Description,
		Active:      true,
	})
}

func (s *IntegrationTestSuite) TestSplitExercisesOrderedAndDeleted() {
	ctx := context.Background()
	t := s.T()

	u1, _ := s.registerUser(ctx)
	planID, err := s.workouts.CreatePlan(ctx, workouts.CreatePlanParams{
		OwnerID: u1,
		Name:    "Push Pull " + gofakeit.LetterN(8),
		Goal:    "hypertrophy",
		Active:  true,
	})
	require.NoError(t, err)
	_, err = s.workouts.AddSplit(ctx, workouts.AddSplitParams{
		PlanID: planID,
		Name:   "Pull",
		Active: true,
	})
	require.NoError(t, err)

	exerciseIDs := map[int]int{}
	for _, order := range []int{3, 1, 2} {
		exerciseID, err := s.exercises.Create(ctx, exercises.CreateParams{
			Owner:  store.OwnedBy(u1),
			Name:   "Curl Variation " + gofakeit.LetterN(8),
			Active: true,
		})
		require.NoError(t, err)
		exerciseIDs[order] = exerciseID

		_, err = s.workouts.AddSplitExercise(ctx, workouts.SplitExercise{
			SplitExerciseKey: workouts.SplitExerciseKey{
				PlanID:         planID,
				Split:          "Pull",
				ExerciseID:     exerciseID,
				ExecutionOrder: order,
			},
			Sets:     3,
			Reps:     "10",
			RestTime: 60,
			Active:   true,
		})
		require.NoError(t, err)
	}

	orders := func() []int {
		list, err := s.workouts.ListSplitExercises(ctx, planID, "Pull", u1)
		require.NoError(t, err)
		var got []int
		for _, se := range list {
			got = append(got, se.ExecutionOrder)
		}
		return got
	}
	assert.Equal(t, []int{1, 2, 3}, orders())

	_, err = s.workouts.DeleteSplitExercise(ctx, workouts.SplitExerciseKey{
		PlanID:         planID,
		Split:          "Pull",
		ExerciseID:     exerciseIDs[2],
		ExecutionOrder: 2,
	}, u1)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, orders())
}
