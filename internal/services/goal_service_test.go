package services

import (
	"testing"
	"time"

	"fintrack/internal/pagination"
	"fintrack/internal/testutil"
)

func TestCreateGoal(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user := testutil.CreateTestUser(t, db)

		target := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		goal, err := svc.CreateGoal(user.ID, "Emergency fund", 1000, 250, &target)
		testutil.AssertNoError(t, err)

		if goal.ID == "" {
			t.Fatal("expected non-empty goal ID")
		}
		if !goal.IsActive {
			t.Error("expected goal to be active")
		}
		if goal.ProgressPercent != 25 {
			t.Errorf("expected progress 25, got %f", goal.ProgressPercent)
		}
	})

	t.Run("empty_title", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateGoal(user.ID, "", 1000, 0, nil)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("negative_target", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateGoal(user.ID, "Bad", -1, 0, nil)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestGoalProgress(t *testing.T) {
	t.Run("zero_target_reads_zero", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user := testutil.CreateTestUser(t, db)
		goal := testutil.CreateTestGoal(t, db, user.ID, 0, 500)

		fetched, err := svc.GetGoalByID(user.ID, goal.ID)
		testutil.AssertNoError(t, err)

		if fetched.ProgressPercent != 0 {
			t.Errorf("expected progress 0 for zero target, got %f", fetched.ProgressPercent)
		}
	})

	t.Run("capped_at_100", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user := testutil.CreateTestUser(t, db)
		goal := testutil.CreateTestGoal(t, db, user.ID, 1000, 1500)

		fetched, err := svc.GetGoalByID(user.ID, goal.ID)
		testutil.AssertNoError(t, err)

		if fetched.ProgressPercent != 100 {
			t.Errorf("expected progress capped at 100, got %f", fetched.ProgressPercent)
		}
	})

	t.Run("negative_current_reads_negative", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user := testutil.CreateTestUser(t, db)
		goal := testutil.CreateTestGoal(t, db, user.ID, 1000, -100)

		fetched, err := svc.GetGoalByID(user.ID, goal.ID)
		testutil.AssertNoError(t, err)

		if fetched.ProgressPercent != -10 {
			t.Errorf("expected progress -10, got %f", fetched.ProgressPercent)
		}
	})

	t.Run("recomputed_after_update", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user := testutil.CreateTestUser(t, db)
		goal := testutil.CreateTestGoal(t, db, user.ID, 1000, 250)

		current := 750.0
		updated, err := svc.UpdateGoal(user.ID, goal.ID, GoalUpdate{CurrentAmount: &current})
		testutil.AssertNoError(t, err)

		if updated.ProgressPercent != 75 {
			t.Errorf("expected progress 75, got %f", updated.ProgressPercent)
		}
	})
}

func TestGetUserGoals(t *testing.T) {
	t.Run("returns_user_goals_only", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)

		testutil.CreateTestGoal(t, db, user1.ID, 1000, 0)
		testutil.CreateTestGoal(t, db, user1.ID, 2000, 0)
		testutil.CreateTestGoal(t, db, user2.ID, 3000, 0)

		page := pagination.PageRequest{Page: 1, PageSize: 20}
		result, err := svc.GetUserGoals(user1.ID, nil, page)
		testutil.AssertNoError(t, err)

		if result.TotalItems != 2 {
			t.Errorf("expected 2 goals, got %d", result.TotalItems)
		}
	})

	t.Run("filter_by_is_active", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user := testutil.CreateTestUser(t, db)

		testutil.CreateTestGoal(t, db, user.ID, 1000, 0)
		inactive := testutil.CreateTestGoal(t, db, user.ID, 2000, 0)
		if err := db.Model(inactive).Update("is_active", false).Error; err != nil {
			t.Fatalf("failed to deactivate goal: %v", err)
		}

		page := pagination.PageRequest{Page: 1, PageSize: 20}
		active := true
		result, err := svc.GetUserGoals(user.ID, &active, page)
		testutil.AssertNoError(t, err)

		if result.TotalItems != 1 {
			t.Errorf("expected 1 active goal, got %d", result.TotalItems)
		}
	})
}

func TestUpdateGoal(t *testing.T) {
	t.Run("deactivate", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user := testutil.CreateTestUser(t, db)
		goal := testutil.CreateTestGoal(t, db, user.ID, 1000, 0)

		inactive := false
		updated, err := svc.UpdateGoal(user.ID, goal.ID, GoalUpdate{IsActive: &inactive})
		testutil.AssertNoError(t, err)

		if updated.IsActive {
			t.Error("expected goal to be inactive")
		}
	})

	t.Run("negative_target", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user := testutil.CreateTestUser(t, db)
		goal := testutil.CreateTestGoal(t, db, user.ID, 1000, 0)

		target := -5.0
		_, err := svc.UpdateGoal(user.ID, goal.ID, GoalUpdate{TargetAmount: &target})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("wrong_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)
		goal := testutil.CreateTestGoal(t, db, user1.ID, 1000, 0)

		_, err := svc.UpdateGoal(user2.ID, goal.ID, GoalUpdate{Title: "Hijacked"})
		testutil.AssertAppError(t, err, "GOAL_NOT_FOUND")
	})
}

func TestDeleteGoal(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user := testutil.CreateTestUser(t, db)
		goal := testutil.CreateTestGoal(t, db, user.ID, 1000, 0)

		err := svc.DeleteGoal(user.ID, goal.ID)
		testutil.AssertNoError(t, err)

		_, err = svc.GetGoalByID(user.ID, goal.ID)
		testutil.AssertAppError(t, err, "GOAL_NOT_FOUND")
	})

	t.Run("wrong_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewGoalService(db)
		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)
		goal := testutil.CreateTestGoal(t, db, user1.ID, 1000, 0)

		err := svc.DeleteGoal(user2.ID, goal.ID)
		testutil.AssertAppError(t, err, "GOAL_NOT_FOUND")
	})
}
