package services

import (
	"testing"
	"time"

	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/testutil"
)

func TestCreateBudget(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db, NewCategoryService(db))
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryKindExpense)

		budget, err := svc.CreateBudget(user.ID, cat.ID, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), 500)
		testutil.AssertNoError(t, err)

		if budget.ID == "" {
			t.Fatal("expected non-empty budget ID")
		}
		if budget.Amount != 500 {
			t.Errorf("expected amount 500, got %f", budget.Amount)
		}
	})

	t.Run("month_normalized_to_first", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db, NewCategoryService(db))
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryKindExpense)

		budget, err := svc.CreateBudget(user.ID, cat.ID, time.Date(2025, 6, 17, 9, 30, 0, 0, time.UTC), 500)
		testutil.AssertNoError(t, err)

		want := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
		if !budget.Month.Equal(want) {
			t.Errorf("expected month %v, got %v", want, budget.Month)
		}
	})

	t.Run("duplicate_month", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db, NewCategoryService(db))
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryKindExpense)

		_, err := svc.CreateBudget(user.ID, cat.ID, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), 500)
		testutil.AssertNoError(t, err)

		// Different day, same month: still a conflict after normalization.
		_, err = svc.CreateBudget(user.ID, cat.ID, time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC), 300)
		testutil.AssertAppError(t, err, "DUPLICATE_BUDGET")
	})

	t.Run("same_month_different_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db, NewCategoryService(db))
		user := testutil.CreateTestUser(t, db)
		cat1 := testutil.CreateTestCategory(t, db, user.ID, models.CategoryKindExpense)
		cat2 := testutil.CreateTestCategory(t, db, user.ID, models.CategoryKindExpense)

		month := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
		_, err := svc.CreateBudget(user.ID, cat1.ID, month, 500)
		testutil.AssertNoError(t, err)
		_, err = svc.CreateBudget(user.ID, cat2.ID, month, 300)
		testutil.AssertNoError(t, err)
	})

	t.Run("non_positive_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db, NewCategoryService(db))
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryKindExpense)

		_, err := svc.CreateBudget(user.ID, cat.ID, time.Now(), 0)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("other_users_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db, NewCategoryService(db))
		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user2.ID, models.CategoryKindExpense)

		_, err := svc.CreateBudget(user1.ID, cat.ID, time.Now(), 500)
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})
}

func TestGetUserBudgets(t *testing.T) {
	t.Run("returns_user_budgets_only", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db, NewCategoryService(db))
		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)
		cat1 := testutil.CreateTestCategory(t, db, user1.ID, models.CategoryKindExpense)
		cat2 := testutil.CreateTestCategory(t, db, user2.ID, models.CategoryKindExpense)

		testutil.CreateTestBudget(t, db, user1.ID, cat1.ID, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC))
		testutil.CreateTestBudget(t, db, user1.ID, cat1.ID, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
		testutil.CreateTestBudget(t, db, user2.ID, cat2.ID, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))

		page := pagination.PageRequest{Page: 1, PageSize: 20}
		result, err := svc.GetUserBudgets(user1.ID, page)
		testutil.AssertNoError(t, err)

		if result.TotalItems != 2 {
			t.Errorf("expected 2 budgets, got %d", result.TotalItems)
		}
	})

	t.Run("month_descending_order", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db, NewCategoryService(db))
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryKindExpense)

		testutil.CreateTestBudget(t, db, user.ID, cat.ID, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC))
		testutil.CreateTestBudget(t, db, user.ID, cat.ID, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))

		page := pagination.PageRequest{Page: 1, PageSize: 20}
		result, err := svc.GetUserBudgets(user.ID, page)
		testutil.AssertNoError(t, err)

		if len(result.Data) != 2 {
			t.Fatalf("expected 2 budgets, got %d", len(result.Data))
		}
		if !result.Data[0].Month.Equal(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("expected most recent month first, got %v", result.Data[0].Month)
		}
	})
}

func TestGetBudgetByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db, NewCategoryService(db))
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryKindExpense)
		budget := testutil.CreateTestBudget(t, db, user.ID, cat.ID, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))

		found, err := svc.GetBudgetByID(user.ID, budget.ID)
		testutil.AssertNoError(t, err)

		if found.ID != budget.ID {
			t.Errorf("expected budget ID %s, got %s", budget.ID, found.ID)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db, NewCategoryService(db))
		user := testutil.CreateTestUser(t, db)

		_, err := svc.GetBudgetByID(user.ID, "00000000-0000-0000-0000-000000000000")
		testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")
	})

	t.Run("wrong_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db, NewCategoryService(db))
		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user1.ID, models.CategoryKindExpense)
		budget := testutil.CreateTestBudget(t, db, user1.ID, cat.ID, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))

		_, err := svc.GetBudgetByID(user2.ID, budget.ID)
		testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")
	})
}

func TestUpdateBudget(t *testing.T) {
	t.Run("update_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db, NewCategoryService(db))
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryKindExpense)
		budget := testutil.CreateTestBudget(t, db, user.ID, cat.ID, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))

		amount := 750.0
		updated, err := svc.UpdateBudget(user.ID, budget.ID, nil, &amount)
		testutil.AssertNoError(t, err)

		if updated.Amount != 750 {
			t.Errorf("expected amount 750, got %f", updated.Amount)
		}
	})

	t.Run("update_amount_keeps_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db, NewCategoryService(db))
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryKindExpense)
		budget := testutil.CreateTestBudget(t, db, user.ID, cat.ID, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))

		amount := 300.0
		updated, err := svc.UpdateBudget(user.ID, budget.ID, nil, &amount)
		testutil.AssertNoError(t, err)

		if updated.CategoryID != cat.ID {
			t.Errorf("expected category %s to survive the update, got %s", cat.ID, updated.CategoryID)
		}
	})

	t.Run("update_month_normalizes", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db, NewCategoryService(db))
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryKindExpense)
		budget := testutil.CreateTestBudget(t, db, user.ID, cat.ID, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))

		month := time.Date(2025, 7, 23, 0, 0, 0, 0, time.UTC)
		updated, err := svc.UpdateBudget(user.ID, budget.ID, &month, nil)
		testutil.AssertNoError(t, err)

		want := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
		if !updated.Month.Equal(want) {
			t.Errorf("expected month %v, got %v", want, updated.Month)
		}
	})

	t.Run("update_into_conflicting_month", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db, NewCategoryService(db))
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryKindExpense)
		testutil.CreateTestBudget(t, db, user.ID, cat.ID, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
		budget := testutil.CreateTestBudget(t, db, user.ID, cat.ID, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC))

		month := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
		_, err := svc.UpdateBudget(user.ID, budget.ID, &month, nil)
		testutil.AssertAppError(t, err, "DUPLICATE_BUDGET")
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db, NewCategoryService(db))
		user := testutil.CreateTestUser(t, db)

		amount := 100.0
		_, err := svc.UpdateBudget(user.ID, "00000000-0000-0000-0000-000000000000", nil, &amount)
		testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")
	})
}

func TestDeleteBudget(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db, NewCategoryService(db))
		user := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user.ID, models.CategoryKindExpense)
		budget := testutil.CreateTestBudget(t, db, user.ID, cat.ID, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))

		err := svc.DeleteBudget(user.ID, budget.ID)
		testutil.AssertNoError(t, err)

		_, err = svc.GetBudgetByID(user.ID, budget.ID)
		testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")

		// Same month can be budgeted again after the delete.
		_, err = svc.CreateBudget(user.ID, cat.ID, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), 200)
		testutil.AssertNoError(t, err)
	})

	t.Run("wrong_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db, NewCategoryService(db))
		user1 := testutil.CreateTestUser(t, db)
		user2 := testutil.CreateTestUser(t, db)
		cat := testutil.CreateTestCategory(t, db, user1.ID, models.CategoryKindExpense)
		budget := testutil.CreateTestBudget(t, db, user1.ID, cat.ID, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))

		err := svc.DeleteBudget(user2.ID, budget.ID)
		testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")
	})
}
