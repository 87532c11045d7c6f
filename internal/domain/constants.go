package domain

// Default policy values, applied when a calendar field is absent
const (
	DefaultCurrency    = "USD"
	DefaultLeadMinDays = 0
	DefaultLeadMaxDays = 365
	DefaultCancelHours = 48
	DefaultCancelFee   = 0.0
	DefaultMinStay     = 1
)

// Business validation constants
const (
	MaxVersionRetries           = 3
	MaxCancellationReasonLength = 500
)
