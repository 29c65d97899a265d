package utils

// Application Constants
const (
	AppName    = "RentWheels"
	AppVersion = "1.0.0"

	// Pagination
	DefaultPageSize = 20
	MaxPageSize     = 100
	MinPageSize     = 1

	// Billing
	BillIDPrefix           = "BILL"
	BillIDDateFormat       = "20060102"
	BillSequenceDigits     = 5
	MaxBillAllocateRetries = 5

	// Advance payment collected at request time, as a share of the
	// hour-based estimate.
	AdvancePaymentShare = 0.20

	// Settlement
	VehicleConditionGood    = "good"
	VehicleConditionDamaged = "damaged"
)

// HTTP Status Messages
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Error Messages
const (
	ErrInternalServer   = "internal server error"
	ErrUnauthorized     = "unauthorized"
	ErrForbidden        = "forbidden"
	ErrValidationFailed = "validation failed"
)

// Cache Keys
const (
	CacheKeyBookingPrefix = "booking:"
	CacheKeyVehiclePrefix = "vehicle:"
)
