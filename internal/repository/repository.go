package repository

import (
	"context"
	"time"

	"github.com/yukikurage/life-record-api/internal/models"
	"github.com/yukikurage/life-record-api/internal/utils"
)

// Every method that touches user-owned rows takes the caller's id and filters by it.
// A row that exists but belongs to someone else is reported as gorm.ErrRecordNotFound.

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *models.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(ctx context.Context, username string) (*models.User, error)

	// Update applies column updates to a user
	Update(ctx context.Context, id uint64, updates map[string]interface{}) error
}

// NoteFilter holds filtering options for listing notes
type NoteFilter struct {
	CategoryPath string
	Keyword      string
	Page         utils.PaginationParams
}

// NoteRepository defines the interface for note data access. Soft-deleted notes are invisible.
type NoteRepository interface {
	Create(ctx context.Context, note *models.Note) error
	FindByID(ctx context.Context, userID, id uint64) (*models.Note, error)
	List(ctx context.Context, userID uint64, filter NoteFilter) ([]models.Note, error)
	Update(ctx context.Context, userID, id uint64, updates map[string]interface{}) error

	// SoftDelete flips is_delete and keeps the row
	SoftDelete(ctx context.Context, userID, id uint64) error
}

// TodoFilter holds filtering options for listing todos
type TodoFilter struct {
	CategoryPath string
	Status       *int8
	IsStarred    *int8
	Priority     *int8
	Query        string
}

// TodoRepository defines the interface for todo data access
type TodoRepository interface {
	Create(ctx context.Context, todo *models.Todo) error
	FindByID(ctx context.Context, userID, id uint64) (*models.Todo, error)
	List(ctx context.Context, userID uint64, filter TodoFilter) ([]models.Todo, error)
	Update(ctx context.Context, userID, id uint64, updates map[string]interface{}) error
	Delete(ctx context.Context, userID, id uint64) error
}

// RecipeFilter holds filtering options for listing recipes
type RecipeFilter struct {
	Category  string
	Keyword   string
	IsStarred *int8
	Page      utils.PaginationParams
}

// RecipeRepository defines the interface for recipe data access. Soft-deleted recipes are invisible.
type RecipeRepository interface {
	Create(ctx context.Context, recipe *models.Recipe) error
	FindByID(ctx context.Context, userID, id uint64) (*models.Recipe, error)
	List(ctx context.Context, userID uint64, filter RecipeFilter) ([]models.Recipe, error)
	Update(ctx context.Context, userID, id uint64, updates map[string]interface{}) error
	SoftDelete(ctx context.Context, userID, id uint64) error
}

// CheckinItemWithCount is an item plus the number of records with check_status = 1
type CheckinItemWithCount struct {
	models.CheckinItem
	CompletedCount int64
}

// CheckinRecordFilter holds filtering options for the record history
type CheckinRecordFilter struct {
	ItemID    *uint64
	StartDate *time.Time
	EndDate   *time.Time
	Page      utils.PaginationParams
}

// CheckinRepository defines the interface for check-in items and records
type CheckinRepository interface {
	CreateItem(ctx context.Context, item *models.CheckinItem) error
	FindItem(ctx context.Context, userID, id uint64) (*models.CheckinItem, error)

	// ListItemsWithCount returns items ordered by id with their lifetime completed count
	ListItemsWithCount(ctx context.Context, userID uint64, status *int8) ([]CheckinItemWithCount, error)

	// ListEnabledItems returns items with status = 1 ordered by id
	ListEnabledItems(ctx context.Context, userID uint64) ([]models.CheckinItem, error)

	UpdateItem(ctx context.Context, userID, id uint64, updates map[string]interface{}) error

	// DeleteItem removes the item's records and then the item in one transaction
	DeleteItem(ctx context.Context, userID, id uint64) error

	// UpsertRecord inserts or updates the record keyed by (user_id, item_id, check_date)
	// in a single statement and returns the stored row
	UpsertRecord(ctx context.Context, record *models.CheckinRecord) (*models.CheckinRecord, error)

	ListRecordsByDate(ctx context.Context, userID uint64, date time.Time) ([]models.CheckinRecord, error)
	ListRecords(ctx context.Context, userID uint64, filter CheckinRecordFilter) ([]models.CheckinRecord, int64, error)
}

// WeightRecordFilter holds filtering options for the weight history
type WeightRecordFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Page      utils.PaginationParams
}

// WeightRepository defines the interface for weight records and targets
type WeightRepository interface {
	// Create maps a (user_id, record_date) collision to gorm.ErrDuplicatedKey
	Create(ctx context.Context, record *models.WeightRecord) error
	FindByID(ctx context.Context, userID, id uint64) (*models.WeightRecord, error)
	FindByDate(ctx context.Context, userID uint64, date time.Time) (*models.WeightRecord, error)
	Update(ctx context.Context, userID, id uint64, updates map[string]interface{}) error
	Delete(ctx context.Context, userID, id uint64) error

	// BatchDelete removes the caller's rows among ids and returns the rows affected
	BatchDelete(ctx context.Context, userID uint64, ids []uint64) (int64, error)

	// ListByWeek returns the rows of an ISO week ordered by date ascending
	ListByWeek(ctx context.Context, userID uint64, weekNum string) ([]models.WeightRecord, error)

	// ListBetween returns rows with start <= record_date < end ordered by date ascending
	ListBetween(ctx context.Context, userID uint64, start, end time.Time) ([]models.WeightRecord, error)

	// List returns rows newest first with the unpaginated total
	List(ctx context.Context, userID uint64, filter WeightRecordFilter) ([]models.WeightRecord, int64, error)

	// ListAll returns every row newest first
	ListAll(ctx context.Context, userID uint64) ([]models.WeightRecord, error)

	// ActiveTarget returns gorm.ErrRecordNotFound when no target is active
	ActiveTarget(ctx context.Context, userID uint64) (*models.WeightTarget, error)

	// ReplaceActiveTarget deactivates every active target of the user and inserts
	// target as the only active one, all in one transaction
	ReplaceActiveTarget(ctx context.Context, target *models.WeightTarget) error
}
