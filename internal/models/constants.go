package models

// Severity константы серьёзности нарушений.
// Список не закрытый: движок хранит и считает любые значения как есть.
const (
	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

// ViolationType распространённые теги нарушений.
const (
	ViolationTypeSpamInput    = "spam_input"
	ViolationTypeSQLInjection = "sql_injection"
	ViolationTypeXSSAttempt   = "xss_attempt"
	ViolationTypeBotBehavior  = "bot_behavior"
)

// Visibility константы видимости полей профиля
const (
	VisibilityPublic  = "public"
	VisibilityFriends = "friends"
	VisibilityPrivate = "private"
)

// FriendshipStatus константы статусов дружбы
const (
	FriendshipStatusPending  = "pending"
	FriendshipStatusAccepted = "accepted"
	FriendshipStatusDeclined = "declined"
	FriendshipStatusBlocked  = "blocked"
)

// AdminNotificationKind типы уведомлений для модераторов
const (
	AdminNotificationAbuseThreshold = "abuse_threshold"
	AdminNotificationAutoSuspension = "auto_suspension"
)

// SuspensionAction типы записей истории блокировок
const (
	SuspensionActionSuspended  = "suspended"
	SuspensionActionSuperseded = "superseded"
	SuspensionActionLifted     = "lifted"
)

// SuspendedBySystem отмечает автоматическую блокировку.
const SuspendedBySystem = "system"

// Role константы ролей
const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

// ValidVisibilities список валидных значений видимости
var ValidVisibilities = map[string]struct{}{
	VisibilityPublic:  {},
	VisibilityFriends: {},
	VisibilityPrivate: {},
}
