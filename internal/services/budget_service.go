package services

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// budgetService handles budget-related business logic.
type budgetService struct {
	db              *gorm.DB
	categoryService CategoryServicer
}

// NewBudgetService creates a new BudgetServicer.
func NewBudgetService(db *gorm.DB, categoryService CategoryServicer) BudgetServicer {
	return &budgetService{db: db, categoryService: categoryService}
}

// CreateBudget creates a budget for a category and month. The month is
// normalized to the first of the month; (user, category, month) is unique
// and the database index is the atomic backstop for concurrent creates.
func (s *budgetService) CreateBudget(userID, categoryID string, month time.Time, amount float64) (*models.Budget, error) {
	if amount <= 0 {
		return nil, apperrors.WithFields(apperrors.ErrInvalidInput,
			map[string]string{"amount": "Amount must be greater than zero"})
	}

	if _, err := s.categoryService.GetCategoryByID(userID, categoryID); err != nil {
		return nil, err
	}

	budget := &models.Budget{
		UserID:     userID,
		CategoryID: categoryID,
		Month:      monthStart(month),
		Amount:     amount,
	}

	if err := s.db.Create(budget).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, duplicateBudgetError()
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return budget, nil
}

func duplicateBudgetError() *apperrors.AppError {
	return apperrors.WithFields(apperrors.ErrDuplicateBudget,
		map[string]string{"month": "A budget for this category and month already exists"})
}

// GetUserBudgets returns the caller's budgets, most recent month first.
func (s *budgetService) GetUserBudgets(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Budget], error) {
	page.Defaults()

	base := s.db.Model(&models.Budget{}).Scopes(OwnedBy(userID))

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var budgets []models.Budget
	if err := base.Preload("Category").
		Scopes(pagination.Paginate(page)).
		Order("month DESC").
		Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(budgets, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetBudgetByID returns a budget by ID if it belongs to the user.
func (s *budgetService) GetBudgetByID(userID, budgetID string) (*models.Budget, error) {
	var budget models.Budget
	if err := s.db.Scopes(OwnedBy(userID)).Preload("Category").
		Where("id = ?", budgetID).First(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBudgetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &budget, nil
}

// UpdateBudget updates a budget's month and/or amount.
func (s *budgetService) UpdateBudget(userID, budgetID string, month *time.Time, amount *float64) (*models.Budget, error) {
	budget, err := s.GetBudgetByID(userID, budgetID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if month != nil {
		updates["month"] = monthStart(*month)
	}
	if amount != nil {
		if *amount <= 0 {
			return nil, apperrors.WithFields(apperrors.ErrInvalidInput,
				map[string]string{"amount": "Amount must be greater than zero"})
		}
		updates["amount"] = *amount
	}

	if len(updates) > 0 {
		// Omit the preloaded Category so the association save cannot touch
		// category_id.
		if err := s.db.Model(budget).Omit(clause.Associations).Updates(updates).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, duplicateBudgetError()
			}
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return s.GetBudgetByID(userID, budgetID)
}

// DeleteBudget deletes a budget.
func (s *budgetService) DeleteBudget(userID, budgetID string) error {
	budget, err := s.GetBudgetByID(userID, budgetID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(budget).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
