package constants

// Context keys
const (
	ContextKeyUserID = "user_id"
)

// Pagination (skip/limit)
const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

// Validation limits
const (
	MinPasswordLength = 6
	MaxWeight         = 500.0
)

// Binary flags shared by several tables
const (
	FlagOff int8 = 0
	FlagOn  int8 = 1
)

// Todo priorities
const (
	PriorityHigh   int8 = 1
	PriorityMedium int8 = 2
	PriorityLow    int8 = 3
)

// Date layouts used on the wire
const (
	DateLayout       = "2006-01-02"
	ExportTimeLayout = "2006-01-02 15:04:05"
	ExportNameLayout = "20060102150405"
)

// DefaultRecipeDifficulty is stored when a recipe is created without one.
const DefaultRecipeDifficulty = "简单"

// TokenType is returned alongside issued access tokens.
const TokenType = "bearer"
