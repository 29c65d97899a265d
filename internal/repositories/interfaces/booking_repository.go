package interfaces

import (
	"context"

	"rentwheels/internal/models"
	"rentwheels/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error)
	GetByBillID(ctx context.Context, billID string) (*models.Booking, error)

	// ConfirmPickup persists the requested -> picked_up transition together
	// with the allocated bill id, conditional on the current status. A
	// uniqueness violation on bill_id is reported as a retryable error so the
	// allocator can re-run; a status mismatch reports an invalid-state error.
	ConfirmPickup(ctx context.Context, id primitive.ObjectID, billID string, details *models.PickupDetails) error

	// ConfirmReturn persists the picked_up -> returned transition with the
	// return details, all five settlement fields, and the final payment in a
	// single write.
	ConfirmReturn(ctx context.Context, id primitive.ObjectID, details *models.ReturnDetails, settlement *models.Settlement, payment *models.FinalPayment) error

	// Cancel persists the requested -> cancelled transition. rejectionReason
	// is empty for customer cancellations and mandatory for staff rejections.
	Cancel(ctx context.Context, id primitive.ObjectID, rejectionReason string) error

	// MaxBillSequence returns the highest sequence number already persisted
	// under the given date prefix, 0 when none exists.
	MaxBillSequence(ctx context.Context, datePrefix string) (int, error)

	GetByCustomer(ctx context.Context, customerID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Booking, int64, error)
	GetByVehicle(ctx context.Context, vehicleID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Booking, int64, error)
	GetByStatus(ctx context.Context, status models.BookingStatus, params *utils.PaginationParams) ([]*models.Booking, int64, error)
	GetAll(ctx context.Context, params *utils.PaginationParams) ([]*models.Booking, int64, error)
}
