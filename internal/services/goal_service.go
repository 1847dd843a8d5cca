package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// goalService handles savings-goal business logic.
type goalService struct {
	db *gorm.DB
}

// NewGoalService creates a new GoalServicer.
func NewGoalService(db *gorm.DB) GoalServicer {
	return &goalService{db: db}
}

// CreateGoal creates a new savings goal owned by the caller.
func (s *goalService) CreateGoal(userID, title string, targetAmount, currentAmount float64, targetDate *time.Time) (*models.Goal, error) {
	if title == "" {
		return nil, apperrors.WithFields(apperrors.ErrInvalidInput,
			map[string]string{"title": "Title is required"})
	}
	if targetAmount < 0 {
		return nil, apperrors.WithFields(apperrors.ErrInvalidInput,
			map[string]string{"target_amount": "Target amount cannot be negative"})
	}

	goal := &models.Goal{
		UserID:        userID,
		Title:         title,
		TargetAmount:  targetAmount,
		CurrentAmount: currentAmount,
		IsActive:      true,
	}
	if targetDate != nil {
		d := dateOnly(*targetDate)
		goal.TargetDate = &d
	}

	if err := s.db.Create(goal).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	goal.ProgressPercent = goal.Progress()
	return goal, nil
}

// GetUserGoals returns the caller's goals, optionally filtered by active
// status. Progress is recomputed on read, never stored.
func (s *goalService) GetUserGoals(userID string, isActive *bool, page pagination.PageRequest) (*pagination.PageResponse[models.Goal], error) {
	page.Defaults()

	base := s.db.Model(&models.Goal{}).Scopes(OwnedBy(userID))
	if isActive != nil {
		base = base.Where("is_active = ?", *isActive)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var goals []models.Goal
	if err := base.Scopes(pagination.Paginate(page)).Find(&goals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(goals, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetGoalByID returns a goal by ID if it belongs to the user.
func (s *goalService) GetGoalByID(userID, goalID string) (*models.Goal, error) {
	var goal models.Goal
	if err := s.db.Scopes(OwnedBy(userID)).Where("id = ?", goalID).First(&goal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGoalNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &goal, nil
}

// UpdateGoal applies a partial update to a goal.
func (s *goalService) UpdateGoal(userID, goalID string, upd GoalUpdate) (*models.Goal, error) {
	goal, err := s.GetGoalByID(userID, goalID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if upd.Title != "" {
		updates["title"] = upd.Title
	}
	if upd.TargetAmount != nil {
		if *upd.TargetAmount < 0 {
			return nil, apperrors.WithFields(apperrors.ErrInvalidInput,
				map[string]string{"target_amount": "Target amount cannot be negative"})
		}
		updates["target_amount"] = *upd.TargetAmount
	}
	if upd.CurrentAmount != nil {
		updates["current_amount"] = *upd.CurrentAmount
	}
	if upd.TargetDate != nil {
		updates["target_date"] = dateOnly(*upd.TargetDate)
	}
	if upd.IsActive != nil {
		updates["is_active"] = *upd.IsActive
	}

	if len(updates) > 0 {
		if err := s.db.Model(goal).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return s.GetGoalByID(userID, goalID)
}

// DeleteGoal deletes a goal.
func (s *goalService) DeleteGoal(userID, goalID string) error {
	goal, err := s.GetGoalByID(userID, goalID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(goal).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
