package services

import (
	"mime/multipart"
	"time"

	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// UserServicer defines the contract for registration, login and profile logic.
type UserServicer interface {
	Register(username, email, password string, profilePic *multipart.FileHeader) (*models.User, *models.Profile, error)
	AttemptLogin(username, password string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	StoreRefreshTokenHash(userID, tokenHash string) error
	GetRefreshTokenHash(userID string) (string, error)
	GetProfile(userID string) (*models.User, *models.Profile, error)
	UpdateProfilePicture(userID string, profilePic *multipart.FileHeader) (*models.Profile, error)
	ProfilePicURL(profile *models.Profile) string
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	CreateCategory(userID, name string, kind *models.CategoryKind, icon string) (*models.Category, error)
	GetUserCategories(userID string, kind *models.CategoryKind, page pagination.PageRequest) (*pagination.PageResponse[models.Category], error)
	GetCategoryByID(userID, categoryID string) (*models.Category, error)
	UpdateCategory(userID, categoryID, name string, kind *models.CategoryKind, icon string) (*models.Category, error)
	DeleteCategory(userID, categoryID string) error
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	FromDate    *time.Time
	ToDate      *time.Time
	CategoryID  *string
	PaymentMode *models.PaymentMode
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(userID string, categoryID *string, amount float64, paymentMode models.PaymentMode, description string, date time.Time) (*models.Transaction, error)
	GetUserTransactions(userID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetTransactionByID(userID, transactionID string) (*models.Transaction, error)
	UpdateTransaction(userID, transactionID string, upd TransactionUpdate) (*models.Transaction, error)
	DeleteTransaction(userID, transactionID string) error
}

// TransactionUpdate holds the mutable transaction fields for partial updates.
// Nil pointers leave the field unchanged; a pointer to the empty string in
// CategoryID clears the category reference.
type TransactionUpdate struct {
	CategoryID  *string
	Amount      *float64
	PaymentMode *models.PaymentMode
	Description *string
	Date        *time.Time
}

// BudgetServicer defines the contract for budget-related business logic.
type BudgetServicer interface {
	CreateBudget(userID, categoryID string, month time.Time, amount float64) (*models.Budget, error)
	GetUserBudgets(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Budget], error)
	GetBudgetByID(userID, budgetID string) (*models.Budget, error)
	UpdateBudget(userID, budgetID string, month *time.Time, amount *float64) (*models.Budget, error)
	DeleteBudget(userID, budgetID string) error
}

// GoalServicer defines the contract for savings-goal business logic.
type GoalServicer interface {
	CreateGoal(userID, title string, targetAmount, currentAmount float64, targetDate *time.Time) (*models.Goal, error)
	GetUserGoals(userID string, isActive *bool, page pagination.PageRequest) (*pagination.PageResponse[models.Goal], error)
	GetGoalByID(userID, goalID string) (*models.Goal, error)
	UpdateGoal(userID, goalID string, upd GoalUpdate) (*models.Goal, error)
	DeleteGoal(userID, goalID string) error
}

// GoalUpdate holds the mutable goal fields for partial updates.
type GoalUpdate struct {
	Title         string
	TargetAmount  *float64
	CurrentAmount *float64
	TargetDate    *time.Time
	IsActive      *bool
}

// ChartPoint is one per-date income total in the stats chart.
type ChartPoint struct {
	Date  time.Time `json:"date"`
	Total float64   `json:"total"`
}

// IncomeSource is one per-(category, date) income total. The grouping key
// deliberately includes the date: the same category on different days yields
// separate entries.
type IncomeSource struct {
	CategoryName string    `json:"category_name"`
	CategoryIcon string    `json:"category_icon"`
	Date         time.Time `json:"date"`
	Total        float64   `json:"total"`
}

// IncomeStats is the trailing-30-day income aggregation.
type IncomeStats struct {
	ChartData     []ChartPoint   `json:"chart_data"`
	IncomeSources []IncomeSource `json:"income_sources"`
}

// StatsServicer defines the contract for income statistics.
type StatsServicer interface {
	IncomeStats(userID string) (*IncomeStats, error)
}
