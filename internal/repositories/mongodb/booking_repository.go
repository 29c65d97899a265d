package mongodb

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"rentwheels/internal/models"
	"rentwheels/internal/repositories/interfaces"
	"rentwheels/internal/services"
	"rentwheels/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type bookingRepository struct {
	collection *mongo.Collection
	cache      services.CacheService
}

func NewBookingRepository(db *mongo.Database, cache services.CacheService) interfaces.BookingRepository {
	return &bookingRepository{
		collection: db.Collection("bookings"),
		cache:      cache,
	}
}

func (r *bookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	booking.ID = primitive.NewObjectID()

	_, err := r.collection.InsertOne(ctx, booking)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	r.cacheBooking(ctx, booking)
	return nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	if booking := r.getBookingFromCache(ctx, id.Hex()); booking != nil {
		return booking, nil
	}

	var booking models.Booking
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&booking)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, services.ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	r.cacheBooking(ctx, &booking)
	return &booking, nil
}

func (r *bookingRepository) GetByBillID(ctx context.Context, billID string) (*models.Booking, error) {
	var booking models.Booking
	err := r.collection.FindOne(ctx, bson.M{"bill_id": billID}).Decode(&booking)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, services.ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get booking by bill id: %w", err)
	}

	return &booking, nil
}

// ConfirmPickup writes the transition conditionally on the current status.
// A duplicate-key error on the unique sparse bill_id index is reported as
// the allocator's retryable collision.
func (r *bookingRepository) ConfirmPickup(ctx context.Context, id primitive.ObjectID, billID string, details *models.PickupDetails) error {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id, "status": models.BookingStatusRequested},
		bson.M{"$set": bson.M{
			"bill_id":        billID,
			"pickup_details": details,
			"status":         models.BookingStatusPickedUp,
			"updated_at":     time.Now(),
		}},
	)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return services.ErrDuplicateBillID
		}
		return fmt.Errorf("failed to confirm pickup: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: booking is not awaiting pickup", services.ErrInvalidState)
	}

	r.invalidateBookingCache(ctx, id.Hex())
	return nil
}

// ConfirmReturn persists the return details, all settlement fields, and the
// final payment in a single conditional write.
func (r *bookingRepository) ConfirmReturn(ctx context.Context, id primitive.ObjectID, details *models.ReturnDetails, settlement *models.Settlement, payment *models.FinalPayment) error {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id, "status": models.BookingStatusPickedUp},
		bson.M{"$set": bson.M{
			"return_details":        details,
			"distance_travelled_km": settlement.DistanceTravelledKM,
			"duration_hours":        settlement.DurationHours,
			"cost_per_distance":     settlement.CostPerDistance,
			"cost_per_time":         settlement.CostPerTime,
			"damage_cost":           settlement.DamageCost,
			"final_cost":            settlement.FinalCost,
			"final_payment":         payment,
			"status":                models.BookingStatusReturned,
			"updated_at":            time.Now(),
		}},
	)
	if err != nil {
		return fmt.Errorf("failed to confirm return: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: booking is not out on rental", services.ErrInvalidState)
	}

	r.invalidateBookingCache(ctx, id.Hex())
	return nil
}

func (r *bookingRepository) Cancel(ctx context.Context, id primitive.ObjectID, rejectionReason string) error {
	updates := bson.M{
		"status":     models.BookingStatusCancelled,
		"updated_at": time.Now(),
	}
	if rejectionReason != "" {
		updates["rejection_reason"] = rejectionReason
	}

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id, "status": models.BookingStatusRequested},
		bson.M{"$set": updates},
	)
	if err != nil {
		return fmt.Errorf("failed to cancel booking: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: only requested bookings can be cancelled", services.ErrInvalidState)
	}

	r.invalidateBookingCache(ctx, id.Hex())
	return nil
}

// MaxBillSequence scans the highest persisted bill id under the date prefix.
// Sequences are fixed-width zero-padded so a lexical sort on bill_id orders
// them numerically.
func (r *bookingRepository) MaxBillSequence(ctx context.Context, datePrefix string) (int, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "bill_id", Value: -1}})
	filter := bson.M{"bill_id": bson.M{"$regex": "^" + datePrefix + "-"}}

	var booking models.Booking
	err := r.collection.FindOne(ctx, filter, opts).Decode(&booking)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read max bill sequence: %w", err)
	}

	seq, err := strconv.Atoi(strings.TrimPrefix(booking.BillID, datePrefix+"-"))
	if err != nil {
		return 0, fmt.Errorf("malformed bill id %q: %w", booking.BillID, err)
	}
	return seq, nil
}

func (r *bookingRepository) GetByCustomer(ctx context.Context, customerID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	return r.findBookingsWithFilter(ctx, bson.M{"customer_id": customerID}, params)
}

func (r *bookingRepository) GetByVehicle(ctx context.Context, vehicleID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	return r.findBookingsWithFilter(ctx, bson.M{"vehicle_id": vehicleID}, params)
}

func (r *bookingRepository) GetByStatus(ctx context.Context, status models.BookingStatus, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	return r.findBookingsWithFilter(ctx, bson.M{"status": status}, params)
}

func (r *bookingRepository) GetAll(ctx context.Context, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	return r.findBookingsWithFilter(ctx, bson.M{}, params)
}

func (r *bookingRepository) findBookingsWithFilter(ctx context.Context, filter bson.M, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.FindOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []*models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, 0, fmt.Errorf("failed to decode bookings: %w", err)
	}

	return bookings, total, nil
}

// Cache helpers. Only in-flight bookings are cached; every error is a miss.
func (r *bookingRepository) cacheBooking(ctx context.Context, booking *models.Booking) {
	if r.cache == nil || booking.Status.IsTerminal() {
		return
	}
	_ = r.cache.Set(ctx, utils.CacheKeyBookingPrefix+booking.ID.Hex(), booking, 30*time.Minute)
}

func (r *bookingRepository) getBookingFromCache(ctx context.Context, id string) *models.Booking {
	if r.cache == nil {
		return nil
	}
	var booking models.Booking
	if err := r.cache.Get(ctx, utils.CacheKeyBookingPrefix+id, &booking); err != nil {
		return nil
	}
	return &booking
}

func (r *bookingRepository) invalidateBookingCache(ctx context.Context, id string) {
	if r.cache == nil {
		return
	}
	_ = r.cache.Delete(ctx, utils.CacheKeyBookingPrefix+id)
}
