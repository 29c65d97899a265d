package validators

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CreateBookingRequest struct {
	CustomerID     primitive.ObjectID     `json:"customer_id" validate:"required"`
	VehicleID      primitive.ObjectID     `json:"vehicle_id" validate:"required"`
	VendorID       primitive.ObjectID     `json:"vendor_id" validate:"required"`
	PickupLocation string                 `json:"pickup_location" validate:"required,min=3,max=255"`
	PickupDate     string                 `json:"pickup_date" validate:"required,trip_date"`
	PickupTime     string                 `json:"pickup_time" validate:"omitempty,time_of_day"`
	AdvancePayment *AdvancePaymentRequest `json:"advance_payment" validate:"omitempty"`
}

// AdvancePaymentRequest carries the gateway's verified-payment confirmation.
// The core records it as given; the gateway is the signer/verifier.
type AdvancePaymentRequest struct {
	Amount    float64 `json:"amount" validate:"required,gt=0"`
	OrderID   string  `json:"order_id" validate:"required"`
	PaymentID string  `json:"payment_id" validate:"required"`
	Signature string  `json:"signature" validate:"omitempty"`
	Status    string  `json:"status" validate:"required,oneof=pending completed failed"`
}

type ConfirmPickupRequest struct {
	OdometerStart *float64 `json:"odometer_start" validate:"required,gte=0"`
	LicensePlate  string   `json:"license_plate" validate:"required"`
	EngineNumber  string   `json:"engine_number" validate:"required"`
	ChassisNumber string   `json:"chassis_number" validate:"required"`
	IDProofType   string   `json:"id_proof_type" validate:"required"`
	IDProofNumber string   `json:"id_proof_number" validate:"required"`
	Notes         string   `json:"notes" validate:"omitempty,max=1000"`
}

type ConfirmReturnRequest struct {
	OdometerEnd       *float64 `json:"odometer_end" validate:"required,gte=0"`
	VehicleCondition  string   `json:"vehicle_condition" validate:"required,oneof=good damaged"`
	DamageCost        float64  `json:"damage_cost" validate:"gte=0"`
	DamageDescription string   `json:"damage_description" validate:"omitempty,max=1000"`
	LicensePlate      string   `json:"license_plate" validate:"required"`
	EngineNumber      string   `json:"engine_number" validate:"required"`
	ChassisNumber     string   `json:"chassis_number" validate:"required"`
	AmountPaid        float64  `json:"amount_paid" validate:"required"`
	PaymentMethod     string   `json:"payment_method" validate:"required,oneof=cash online"`
	ReturnDate        string   `json:"return_date" validate:"omitempty,trip_date"`
	ReturnTime        string   `json:"return_time" validate:"omitempty"`
	Notes             string   `json:"notes" validate:"omitempty,max=1000"`
}

type RejectBookingRequest struct {
	Reason string `json:"reason" validate:"required,min=3,max=500"`
}

type AdvanceOrderRequest struct {
	VehicleID      primitive.ObjectID `json:"vehicle_id" validate:"required"`
	EstimatedHours int                `json:"estimated_hours" validate:"required,min=1,max=720"`
}

type VerifyPaymentRequest struct {
	OrderID   string `json:"order_id" validate:"required"`
	PaymentID string `json:"payment_id" validate:"required"`
	Signature string `json:"signature" validate:"required"`
}
