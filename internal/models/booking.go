package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingStatus string
type FinalPaymentMethod string

const (
	BookingStatusRequested BookingStatus = "requested"
	BookingStatusPickedUp  BookingStatus = "picked_up"
	BookingStatusReturned  BookingStatus = "returned"
	BookingStatusCancelled BookingStatus = "cancelled"

	FinalPaymentMethodCash   FinalPaymentMethod = "cash"
	FinalPaymentMethodOnline FinalPaymentMethod = "online"
)

// bookingTransitions is the single authoritative transition table.
// requested -> picked_up -> returned is the happy path; requested -> cancelled
// covers both customer cancellation and staff rejection. returned and
// cancelled are terminal.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusRequested: {BookingStatusPickedUp, BookingStatusCancelled},
	BookingStatusPickedUp:  {BookingStatusReturned},
	BookingStatusReturned:  {},
	BookingStatusCancelled: {},
}

func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s BookingStatus) IsTerminal() bool {
	return len(bookingTransitions[s]) == 0
}

func (s BookingStatus) IsValid() bool {
	_, ok := bookingTransitions[s]
	return ok
}

type Booking struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	BillID     string             `json:"bill_id,omitempty" bson:"bill_id,omitempty"`
	CustomerID primitive.ObjectID `json:"customer_id" bson:"customer_id" validate:"required"`
	VehicleID  primitive.ObjectID `json:"vehicle_id" bson:"vehicle_id" validate:"required"`
	VendorID   primitive.ObjectID `json:"vendor_id" bson:"vendor_id" validate:"required"`
	PackageID  primitive.ObjectID `json:"package_id" bson:"package_id" validate:"required"`

	PickupLocation string        `json:"pickup_location" bson:"pickup_location" validate:"required"`
	PickupDate     time.Time     `json:"pickup_date" bson:"pickup_date" validate:"required"`
	PickupTime     string        `json:"pickup_time" bson:"pickup_time"`
	Status         BookingStatus `json:"status" bson:"status" default:"requested"`

	RejectionReason string `json:"rejection_reason,omitempty" bson:"rejection_reason,omitempty"`

	PickupDetails *PickupDetails `json:"pickup_details,omitempty" bson:"pickup_details,omitempty"`
	ReturnDetails *ReturnDetails `json:"return_details,omitempty" bson:"return_details,omitempty"`

	// Settlement fields, written together by the return transition.
	DistanceTravelledKM float64 `json:"distance_travelled_km" bson:"distance_travelled_km"`
	DurationHours       int     `json:"duration_hours" bson:"duration_hours"`
	CostPerDistance     float64 `json:"cost_per_distance" bson:"cost_per_distance"`
	CostPerTime         float64 `json:"cost_per_time" bson:"cost_per_time"`
	DamageCost          float64 `json:"damage_cost" bson:"damage_cost"`
	FinalCost           float64 `json:"final_cost" bson:"final_cost"`

	AdvancePayment *AdvancePayment `json:"advance_payment,omitempty" bson:"advance_payment,omitempty"`
	FinalPayment   *FinalPayment   `json:"final_payment,omitempty" bson:"final_payment,omitempty"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// PickupDetails is recorded by office staff when the customer collects the
// vehicle. The plate/engine/chassis snapshot is compared against the vehicle
// record again at return time.
type PickupDetails struct {
	OdometerStart float64            `json:"odometer_start" bson:"odometer_start"`
	LicensePlate  string             `json:"license_plate" bson:"license_plate"`
	EngineNumber  string             `json:"engine_number" bson:"engine_number"`
	ChassisNumber string             `json:"chassis_number" bson:"chassis_number"`
	IDProofType   string             `json:"id_proof_type" bson:"id_proof_type"`
	IDProofNumber string             `json:"id_proof_number" bson:"id_proof_number"`
	Notes         string             `json:"notes,omitempty" bson:"notes,omitempty"`
	ConfirmedBy   primitive.ObjectID `json:"confirmed_by" bson:"confirmed_by"`
	ConfirmedAt   time.Time          `json:"confirmed_at" bson:"confirmed_at"`
}

type ReturnDetails struct {
	OdometerEnd       float64            `json:"odometer_end" bson:"odometer_end"`
	VehicleCondition  string             `json:"vehicle_condition" bson:"vehicle_condition"`
	DamageCost        float64            `json:"damage_cost" bson:"damage_cost"`
	DamageDescription string             `json:"damage_description,omitempty" bson:"damage_description,omitempty"`
	Notes             string             `json:"notes,omitempty" bson:"notes,omitempty"`
	AmountPaid        float64            `json:"amount_paid" bson:"amount_paid"`
	ReturnedAt        time.Time          `json:"returned_at" bson:"returned_at"`
	ConfirmedBy       primitive.ObjectID `json:"confirmed_by" bson:"confirmed_by"`
	ConfirmedAt       time.Time          `json:"confirmed_at" bson:"confirmed_at"`
}

// AdvancePayment records the gateway confirmation supplied at request time.
// The gateway is the signer/verifier; status and amount are stored as given.
type AdvancePayment struct {
	Amount    float64       `json:"amount" bson:"amount"`
	OrderID   string        `json:"order_id" bson:"order_id"`
	PaymentID string        `json:"payment_id" bson:"payment_id"`
	Signature string        `json:"signature,omitempty" bson:"signature,omitempty"`
	Status    PaymentStatus `json:"status" bson:"status"`
	PaidAt    *time.Time    `json:"paid_at,omitempty" bson:"paid_at,omitempty"`
}

type FinalPayment struct {
	Amount float64            `json:"amount" bson:"amount"`
	Method FinalPaymentMethod `json:"method" bson:"method"`
	Status PaymentStatus      `json:"status" bson:"status"`
	PaidAt *time.Time         `json:"paid_at,omitempty" bson:"paid_at,omitempty"`
}

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)
