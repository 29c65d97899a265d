package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PricingPackage is a rate tier keyed by vehicle type and an inclusive engine
// displacement range. Exactly one active package is expected to match a given
// (displacement, type) pair; overlap resolution lives in the pricing service.
type PricingPackage struct {
	ID                primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name              string             `json:"name" bson:"name" validate:"required"`
	VehicleType       VehicleType        `json:"vehicle_type" bson:"vehicle_type" validate:"required,oneof=car bike"`
	MinDisplacementCC int                `json:"min_displacement_cc" bson:"min_displacement_cc" validate:"gte=0"`
	MaxDisplacementCC int                `json:"max_displacement_cc" bson:"max_displacement_cc" validate:"gtefield=MinDisplacementCC"`
	PricePerHour      float64            `json:"price_per_hour" bson:"price_per_hour" validate:"gt=0"`
	PricePerKM        float64            `json:"price_per_km" bson:"price_per_km" validate:"gt=0"`
	IsActive          bool               `json:"is_active" bson:"is_active" default:"true"`
	CreatedAt         time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at" bson:"updated_at"`
}

func (p *PricingPackage) Matches(displacementCC int, vehicleType VehicleType) bool {
	return p.IsActive &&
		p.VehicleType == vehicleType &&
		displacementCC >= p.MinDisplacementCC &&
		displacementCC <= p.MaxDisplacementCC
}

// RangeWidth is the tie-break key when more than one active package matches:
// the narrowest range wins.
func (p *PricingPackage) RangeWidth() int {
	return p.MaxDisplacementCC - p.MinDisplacementCC
}
