package mongodb

import (
	"context"
	"fmt"

	"rentwheels/internal/models"
	"rentwheels/internal/repositories/interfaces"
	"rentwheels/internal/services"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type packageRepository struct {
	collection *mongo.Collection
}

func NewPackageRepository(db *mongo.Database) interfaces.PackageRepository {
	return &packageRepository{
		collection: db.Collection("pricing_packages"),
	}
}

func (r *packageRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.PricingPackage, error) {
	var pkg models.PricingPackage
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&pkg)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, services.ErrPackageNotFound
		}
		return nil, fmt.Errorf("failed to get pricing package: %w", err)
	}

	return &pkg, nil
}

func (r *packageRepository) FindActiveForVehicle(ctx context.Context, displacementCC int, vehicleType models.VehicleType) ([]*models.PricingPackage, error) {
	filter := bson.M{
		"vehicle_type":        vehicleType,
		"is_active":           true,
		"min_displacement_cc": bson.M{"$lte": displacementCC},
		"max_displacement_cc": bson.M{"$gte": displacementCC},
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find pricing packages: %w", err)
	}
	defer cursor.Close(ctx)

	var packages []*models.PricingPackage
	if err := cursor.All(ctx, &packages); err != nil {
		return nil, fmt.Errorf("failed to decode pricing packages: %w", err)
	}

	return packages, nil
}
