package constants

// Context keys shared between middleware and handlers
const (
	ContextKeyUserID    = "user_id"
	ContextKeyBoardRole = "board_role"
)

// Authentication
const (
	MinPasswordLength = 8
	SessionName       = "kanban_session"
)

// Input length bounds
const (
	MaxBoardNameLength        = 100
	MaxBoardDescriptionLength = 500
	MaxBackgroundLength       = 50
	MaxListTitleLength        = 200
	MaxCardTitleLength        = 500
	MaxCardDescriptionLength  = 5000
	MaxLabelNameLength        = 100
	MaxLabelColorLength       = 50
	MaxChecklistTitleLength   = 500
	MaxCommentLength          = 5000
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Default board background color
const DefaultBoardBackground = "#059669"
