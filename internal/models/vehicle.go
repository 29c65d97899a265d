package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type VehicleType string
type VehicleAvailability string

const (
	VehicleTypeCar  VehicleType = "car"
	VehicleTypeBike VehicleType = "bike"

	VehicleAvailable   VehicleAvailability = "available"
	VehicleBooked      VehicleAvailability = "booked"
	VehicleMaintenance VehicleAvailability = "maintenance"
)

// Vehicle is the availability view the booking core reads and writes. The
// usage counters are monotonically non-decreasing and incremented exactly once
// per returned booking.
type Vehicle struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	VendorID       primitive.ObjectID `json:"vendor_id" bson:"vendor_id" validate:"required"`
	Make           string             `json:"make" bson:"make" validate:"required"`
	Model          string             `json:"model" bson:"model" validate:"required"`
	Type           VehicleType        `json:"type" bson:"type" validate:"required,oneof=car bike"`
	DisplacementCC int                `json:"displacement_cc" bson:"displacement_cc" validate:"required,gt=0"`
	LicensePlate   string             `json:"license_plate" bson:"license_plate" validate:"required"`
	EngineNumber   string             `json:"engine_number" bson:"engine_number" validate:"required"`
	ChassisNumber  string             `json:"chassis_number" bson:"chassis_number" validate:"required"`

	AvailabilityStatus VehicleAvailability `json:"availability_status" bson:"availability_status" default:"available"`

	TotalBookings          int64   `json:"total_bookings" bson:"total_bookings" default:"0"`
	TotalDistanceTravelled float64 `json:"total_distance_travelled" bson:"total_distance_travelled" default:"0"`
	TotalHoursBooked       int64   `json:"total_hours_booked" bson:"total_hours_booked" default:"0"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// MatchesIdentity reports whether the recorded plate/engine/chassis snapshot
// agrees with the vehicle record. Used as the anti-fraud guard at return.
func (v *Vehicle) MatchesIdentity(plate, engine, chassis string) bool {
	return v.LicensePlate == plate && v.EngineNumber == engine && v.ChassisNumber == chassis
}
