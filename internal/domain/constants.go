package domain

// Default configuration values
const (
	DefaultOpenHour         = 12
	DefaultCloseHour        = 24
	DefaultHorizonDays      = 14
	DefaultMaxPeople        = 9
	DefaultMaxDurationHours = 9
)

// Business validation constants
const (
	MinPeople        = 1
	MaxPhoneLength   = 32
	MaxAddressLength = 255
)
