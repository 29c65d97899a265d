package services

import (
	"context"
	"fmt"
	"time"

	"rentwheels/internal/models"
	"rentwheels/internal/repositories/interfaces"
	"rentwheels/internal/utils"
	"rentwheels/internal/validators"
	"rentwheels/pkg/logger"
	"rentwheels/pkg/payment"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BookingService owns the booking lifecycle. Every transition is guarded in
// one place against the transition table in internal/models, and every guard
// runs before any write.
type BookingService interface {
	CreateBooking(ctx context.Context, req *validators.CreateBookingRequest) (*models.Booking, error)
	GetBooking(ctx context.Context, id primitive.ObjectID) (*models.Booking, error)
	ListBookings(ctx context.Context, customerID, vehicleID *primitive.ObjectID, status models.BookingStatus, params *utils.PaginationParams) ([]*models.Booking, int64, error)

	ConfirmPickup(ctx context.Context, bookingID, staffID primitive.ObjectID, req *validators.ConfirmPickupRequest) (*models.Booking, error)
	ConfirmReturn(ctx context.Context, bookingID, staffID primitive.ObjectID, req *validators.ConfirmReturnRequest) (*models.Booking, error)
	CancelBooking(ctx context.Context, bookingID primitive.ObjectID) (*models.Booking, error)
	RejectBooking(ctx context.Context, bookingID, staffID primitive.ObjectID, reason string) (*models.Booking, error)

	CreateAdvanceOrder(ctx context.Context, req *validators.AdvanceOrderRequest) (*payment.OrderResponse, error)
}

type bookingService struct {
	bookingRepo interfaces.BookingRepository
	vehicleRepo interfaces.VehicleRepository
	packageRepo interfaces.PackageRepository
	pricing     PricingService
	allocator   BillAllocator
	notifier    NotificationService
	gateway     payment.PaymentProvider
	logger      *logger.Logger
	now         func() time.Time
}

func NewBookingService(
	bookingRepo interfaces.BookingRepository,
	vehicleRepo interfaces.VehicleRepository,
	packageRepo interfaces.PackageRepository,
	pricing PricingService,
	allocator BillAllocator,
	notifier NotificationService,
	gateway payment.PaymentProvider,
	log *logger.Logger,
) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		vehicleRepo: vehicleRepo,
		packageRepo: packageRepo,
		pricing:     pricing,
		allocator:   allocator,
		notifier:    notifier,
		gateway:     gateway,
		logger:      log,
		now:         time.Now,
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, req *validators.CreateBookingRequest) (*models.Booking, error) {
	pickupDate, err := utils.ParseDateValue(req.PickupDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, req.VehicleID)
	if err != nil {
		return nil, err
	}

	pkg, err := s.pricing.ResolvePackage(ctx, vehicle.DisplacementCC, vehicle.Type)
	if err != nil {
		return nil, err
	}

	// The availability flip is a compare-and-swap; the loser of a concurrent
	// request for the same vehicle gets ErrVehicleUnavailable here, before
	// any booking document exists.
	if err := s.vehicleRepo.MarkBooked(ctx, vehicle.ID); err != nil {
		return nil, err
	}

	now := s.now()
	booking := &models.Booking{
		CustomerID:     req.CustomerID,
		VehicleID:      vehicle.ID,
		VendorID:       req.VendorID,
		PackageID:      pkg.ID,
		PickupLocation: req.PickupLocation,
		PickupDate:     pickupDate,
		PickupTime:     req.PickupTime,
		Status:         models.BookingStatusRequested,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if req.AdvancePayment != nil {
		paidAt := now
		booking.AdvancePayment = &models.AdvancePayment{
			Amount:    req.AdvancePayment.Amount,
			OrderID:   req.AdvancePayment.OrderID,
			PaymentID: req.AdvancePayment.PaymentID,
			Signature: req.AdvancePayment.Signature,
			Status:    models.PaymentStatus(req.AdvancePayment.Status),
			PaidAt:    &paidAt,
		}
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		// Compensate the availability flip so the vehicle is not stranded.
		if relErr := s.vehicleRepo.Release(ctx, vehicle.ID); relErr != nil {
			s.logger.WithVehicleID(vehicle.ID).WithError(relErr).Error("Failed to release vehicle after booking create failure")
		}
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	s.logger.WithBookingID(booking.ID).WithVehicleID(vehicle.ID).Info("Booking requested")
	return booking, nil
}

func (s *bookingService) GetBooking(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	return s.bookingRepo.GetByID(ctx, id)
}

func (s *bookingService) ListBookings(ctx context.Context, customerID, vehicleID *primitive.ObjectID, status models.BookingStatus, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	switch {
	case customerID != nil:
		return s.bookingRepo.GetByCustomer(ctx, *customerID, params)
	case vehicleID != nil:
		return s.bookingRepo.GetByVehicle(ctx, *vehicleID, params)
	case status != "":
		if !status.IsValid() {
			return nil, 0, fmt.Errorf("%w: unknown status %q", ErrValidationFailed, status)
		}
		return s.bookingRepo.GetByStatus(ctx, status, params)
	default:
		return s.bookingRepo.GetAll(ctx, params)
	}
}

func (s *bookingService) ConfirmPickup(ctx context.Context, bookingID, staffID primitive.ObjectID, req *validators.ConfirmPickupRequest) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !booking.Status.CanTransitionTo(models.BookingStatusPickedUp) {
		return nil, fmt.Errorf("%w: cannot pick up a %s booking", ErrInvalidState, booking.Status)
	}

	if req.OdometerStart == nil || *req.OdometerStart < 0 {
		return nil, fmt.Errorf("%w: odometer start must be a non-negative reading", ErrValidationFailed)
	}

	now := s.now()
	details := &models.PickupDetails{
		OdometerStart: *req.OdometerStart,
		LicensePlate:  req.LicensePlate,
		EngineNumber:  req.EngineNumber,
		ChassisNumber: req.ChassisNumber,
		IDProofType:   req.IDProofType,
		IDProofNumber: req.IDProofNumber,
		Notes:         req.Notes,
		ConfirmedBy:   staffID,
		ConfirmedAt:   now,
	}

	// The bill id is scoped to the actual pickup date. Persistence and
	// allocation are one step: the repository write carries the candidate id
	// under the unique index, and a collision re-enters the allocator loop.
	billID, err := s.allocator.Allocate(ctx, now, func(candidate string) error {
		return s.bookingRepo.ConfirmPickup(ctx, bookingID, candidate, details)
	})
	if err != nil {
		return nil, err
	}

	updated, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	s.logger.WithBookingID(bookingID).WithField("bill_id", billID).Info("Booking picked up")
	s.notifier.BookingPickedUp(updated)
	return updated, nil
}

func (s *bookingService) ConfirmReturn(ctx context.Context, bookingID, staffID primitive.ObjectID, req *validators.ConfirmReturnRequest) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !booking.Status.CanTransitionTo(models.BookingStatusReturned) {
		return nil, fmt.Errorf("%w: cannot return a %s booking", ErrInvalidState, booking.Status)
	}
	if booking.PickupDetails == nil {
		return nil, fmt.Errorf("%w: booking has no pickup details", ErrInvalidState)
	}

	if req.AmountPaid <= 0 {
		return nil, fmt.Errorf("%w: amount paid at return must be positive", ErrValidationFailed)
	}
	if req.OdometerEnd == nil {
		return nil, fmt.Errorf("%w: odometer end reading is required", ErrValidationFailed)
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, booking.VehicleID)
	if err != nil {
		return nil, err
	}
	if !vehicle.MatchesIdentity(req.LicensePlate, req.EngineNumber, req.ChassisNumber) {
		return nil, fmt.Errorf("%w: plate/engine/chassis disagree with the vehicle record", ErrVehicleIdentityMismatch)
	}

	pkg, err := s.packageRepo.GetByID(ctx, booking.PackageID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	pickupInstant := s.effectivePickupInstant(booking)
	returnInstant, err := utils.ResolveInstantOrNow(req.ReturnDate, req.ReturnTime, now)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	settlement, err := s.pricing.ComputeSettlement(
		booking.PickupDetails.OdometerStart,
		*req.OdometerEnd,
		pickupInstant,
		returnInstant,
		pkg,
		req.DamageCost,
	)
	if err != nil {
		return nil, err
	}

	details := &models.ReturnDetails{
		OdometerEnd:       *req.OdometerEnd,
		VehicleCondition:  req.VehicleCondition,
		DamageCost:        req.DamageCost,
		DamageDescription: req.DamageDescription,
		Notes:             req.Notes,
		AmountPaid:        req.AmountPaid,
		ReturnedAt:        returnInstant,
		ConfirmedBy:       staffID,
		ConfirmedAt:       now,
	}
	paidAt := now
	finalPayment := &models.FinalPayment{
		Amount: req.AmountPaid,
		Method: models.FinalPaymentMethod(req.PaymentMethod),
		Status: models.PaymentStatusCompleted,
		PaidAt: &paidAt,
	}

	if err := s.bookingRepo.ConfirmReturn(ctx, bookingID, details, settlement, finalPayment); err != nil {
		return nil, err
	}

	// Counters move exactly once, on this transition, with the settlement's
	// own numbers. A sync failure is an operational alert, not a rollback:
	// the settlement is already committed.
	if err := s.vehicleRepo.RecordUsage(ctx, booking.VehicleID, settlement.DistanceTravelledKM, settlement.DurationHours); err != nil {
		s.logger.WithVehicleID(booking.VehicleID).WithError(err).Error("Vehicle usage sync failed after return")
	}

	updated, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	s.logger.WithBookingID(bookingID).WithFields(map[string]interface{}{
		"final_cost":     settlement.FinalCost,
		"distance_km":    settlement.DistanceTravelledKM,
		"duration_hours": settlement.DurationHours,
	}).Info("Booking returned and settled")
	s.notifier.BookingReturned(updated)
	return updated, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, bookingID primitive.ObjectID) (*models.Booking, error) {
	return s.cancel(ctx, bookingID, "")
}

func (s *bookingService) RejectBooking(ctx context.Context, bookingID, staffID primitive.ObjectID, reason string) (*models.Booking, error) {
	if reason == "" {
		return nil, fmt.Errorf("%w: a rejection reason is required", ErrValidationFailed)
	}

	booking, err := s.cancel(ctx, bookingID, reason)
	if err != nil {
		return nil, err
	}

	s.logger.WithBookingID(bookingID).WithFields(map[string]interface{}{
		"staff_id": staffID.Hex(),
		"reason":   reason,
	}).Info("Booking rejected")
	return booking, nil
}

func (s *bookingService) cancel(ctx context.Context, bookingID primitive.ObjectID, rejectionReason string) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !booking.Status.CanTransitionTo(models.BookingStatusCancelled) {
		return nil, fmt.Errorf("%w: cannot cancel a %s booking", ErrInvalidState, booking.Status)
	}

	if err := s.bookingRepo.Cancel(ctx, bookingID, rejectionReason); err != nil {
		return nil, err
	}

	if err := s.vehicleRepo.Release(ctx, booking.VehicleID); err != nil {
		s.logger.WithVehicleID(booking.VehicleID).WithError(err).Error("Failed to release vehicle after cancellation")
	}

	return s.bookingRepo.GetByID(ctx, bookingID)
}

func (s *bookingService) CreateAdvanceOrder(ctx context.Context, req *validators.AdvanceOrderRequest) (*payment.OrderResponse, error) {
	if s.gateway == nil {
		return nil, fmt.Errorf("payment gateway is not configured")
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, req.VehicleID)
	if err != nil {
		return nil, err
	}

	pkg, err := s.pricing.ResolvePackage(ctx, vehicle.DisplacementCC, vehicle.Type)
	if err != nil {
		return nil, err
	}

	estimate := s.pricing.EstimateCost(pkg, req.EstimatedHours)
	advance := estimate * utils.AdvancePaymentShare

	order, err := s.gateway.CreateOrder(ctx, &payment.OrderRequest{
		Amount:   advance,
		Currency: "INR",
		Receipt:  vehicle.ID.Hex(),
		Notes: map[string]interface{}{
			"vehicle_id":      vehicle.ID.Hex(),
			"estimated_hours": req.EstimatedHours,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create advance order: %w", err)
	}

	s.logger.WithVehicleID(vehicle.ID).WithField("order_id", order.OrderID).Info("Advance payment order created")
	return order, nil
}

// effectivePickupInstant prefers the instant recorded at pickup confirmation
// over the originally requested date/time.
func (s *bookingService) effectivePickupInstant(booking *models.Booking) time.Time {
	if booking.PickupDetails != nil && !booking.PickupDetails.ConfirmedAt.IsZero() {
		return booking.PickupDetails.ConfirmedAt
	}
	return utils.CombineDateTime(booking.PickupDate, booking.PickupTime)
}
