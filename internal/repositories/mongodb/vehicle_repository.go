package mongodb

import (
	"context"
	"fmt"
	"time"

	"rentwheels/internal/models"
	"rentwheels/internal/repositories/interfaces"
	"rentwheels/internal/services"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type vehicleRepository struct {
	collection *mongo.Collection
}

func NewVehicleRepository(db *mongo.Database) interfaces.VehicleRepository {
	return &vehicleRepository{
		collection: db.Collection("vehicles"),
	}
}

func (r *vehicleRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&vehicle)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, services.ErrVehicleNotFound
		}
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}

	return &vehicle, nil
}

// MarkBooked is the compare-and-swap half of the double-booking guard: the
// filter only matches an available vehicle, so exactly one of two concurrent
// booking requests can win.
func (r *vehicleRepository) MarkBooked(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id, "availability_status": models.VehicleAvailable},
		bson.M{"$set": bson.M{
			"availability_status": models.VehicleBooked,
			"updated_at":          time.Now(),
		}},
	)
	if err != nil {
		return fmt.Errorf("failed to mark vehicle booked: %w", err)
	}
	if result.MatchedCount == 0 {
		return services.ErrVehicleUnavailable
	}

	return nil
}

func (r *vehicleRepository) Release(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id, "availability_status": models.VehicleBooked},
		bson.M{"$set": bson.M{
			"availability_status": models.VehicleAvailable,
			"updated_at":          time.Now(),
		}},
	)
	if err != nil {
		return fmt.Errorf("failed to release vehicle: %w", err)
	}
	if result.MatchedCount == 0 {
		// A vehicle in maintenance stays in maintenance; only booked
		// vehicles flip back.
		return nil
	}

	return nil
}

// RecordUsage releases the vehicle and bumps the running counters in one
// atomic update, so the availability flip and the statistics cannot diverge.
func (r *vehicleRepository) RecordUsage(ctx context.Context, id primitive.ObjectID, distanceKM float64, hours int) error {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{
			"$set": bson.M{
				"availability_status": models.VehicleAvailable,
				"updated_at":          time.Now(),
			},
			"$inc": bson.M{
				"total_bookings":           1,
				"total_distance_travelled": distanceKM,
				"total_hours_booked":       hours,
			},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to record vehicle usage: %w", err)
	}
	if result.MatchedCount == 0 {
		return services.ErrVehicleNotFound
	}

	return nil
}
