package interfaces

import (
	"context"

	"rentwheels/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PackageRepository interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.PricingPackage, error)

	// FindActiveForVehicle returns every active package whose displacement
	// range contains the given displacement and whose type matches. Overlap
	// resolution is the pricing service's job.
	FindActiveForVehicle(ctx context.Context, displacementCC int, vehicleType models.VehicleType) ([]*models.PricingPackage, error)
}
