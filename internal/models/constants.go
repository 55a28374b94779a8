package models

// Статусы мастера. Жизненный цикл: draft -> pending ->
// active_free/active_premium -> blocked.
const (
	MasterStatusDraft         = "draft"
	MasterStatusPending       = "pending"
	MasterStatusActiveFree    = "active_free"
	MasterStatusActivePremium = "active_premium"
	MasterStatusBlocked       = "blocked"
)

// Статусы заказа.
const (
	OrderStatusActive    = "active"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// Статусы пользователя.
const (
	UserStatusActive  = "active"
	UserStatusBlocked = "blocked"
)

// Источники анкет мастеров.
const (
	MasterSourceBot   = "bot"
	MasterSourceAdmin = "admin"
)

// Типы сущностей в журнале статусов.
const (
	EntityTypeMaster = "master"
	EntityTypeOrder  = "order"
)

// ValidMasterStatuses — допустимые статусы мастера.
var ValidMasterStatuses = map[string]struct{}{
	MasterStatusDraft:         {},
	MasterStatusPending:       {},
	MasterStatusActiveFree:    {},
	MasterStatusActivePremium: {},
	MasterStatusBlocked:       {},
}

// ValidOrderStatuses — допустимые статусы заказа.
var ValidOrderStatuses = map[string]struct{}{
	OrderStatusActive:    {},
	OrderStatusCompleted: {},
	OrderStatusCancelled: {},
}
