package interfaces

import (
	"context"

	"rentwheels/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type VehicleRepository interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Vehicle, error)

	// MarkBooked flips availability from available to booked as a single
	// conditional update. When the vehicle is in any other availability state
	// the flip is rejected, which is how concurrent booking requests for the
	// same vehicle are serialized.
	MarkBooked(ctx context.Context, id primitive.ObjectID) error

	// Release flips availability back to available on cancellation.
	Release(ctx context.Context, id primitive.ObjectID) error

	// RecordUsage releases the vehicle and increments the running usage
	// counters in one atomic update. Called exactly once per returned booking.
	RecordUsage(ctx context.Context, id primitive.ObjectID, distanceKM float64, hours int) error
}
