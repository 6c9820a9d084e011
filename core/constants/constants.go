package constants

import "time"

// Context keys
const (
	ContextTokenData = "token_data"
)

// Token scopes
const (
	ScopeTokenAccess  = "access"
	ScopeTokenRefresh = "refresh"
)

// Redis key prefixes
const (
	RedisKeyBusyBatch      = "availability:batch:"
	RedisKeyTokenBlacklist = "token:blacklist:"
)

// Cache TTLs
const (
	BusyBatchCacheTTL = 60 * time.Second
)

// Database defaults
const (
	DatabaseSSLMode         = "disable"
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 5
	DatabaseConnMaxLifetime = 30 // minutes
)

// Scheduler defaults
const (
	SlotStepMinutes     = 30
	LunchStartMinute    = 12 * 60
	LunchEndMinute      = 13 * 60
	DefaultTopK         = 10
	MaxSearchDays       = 90
	SchedulerDayWorkers = 4
)

// Asynq task types
const (
	TaskTypeMeetingCommitted = "notification:meeting_committed"
)
