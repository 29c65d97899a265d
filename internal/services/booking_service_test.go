package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"rentwheels/internal/models"
	"rentwheels/internal/utils"
	"rentwheels/internal/validators"
	"rentwheels/pkg/payment"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[primitive.ObjectID]*models.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: map[primitive.ObjectID]*models.Booking{}}
}

func (r *fakeBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if booking.ID.IsZero() {
		booking.ID = primitive.NewObjectID()
	}
	cp := *booking
	r.bookings[cp.ID] = &cp
	return nil
}

func (r *fakeBookingRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBookingRepo) GetByBillID(ctx context.Context, billID string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.BillID == billID {
			cp := *b
			return &cp, nil
		}
	}
	return nil, ErrBookingNotFound
}

func (r *fakeBookingRepo) ConfirmPickup(ctx context.Context, id primitive.ObjectID, billID string, details *models.PickupDetails) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.BillID == billID {
			return fmt.Errorf("bill_id taken: %w", ErrDuplicateBillID)
		}
	}
	b, ok := r.bookings[id]
	if !ok {
		return ErrBookingNotFound
	}
	if b.Status != models.BookingStatusRequested {
		return fmt.Errorf("%w: booking is %s", ErrInvalidState, b.Status)
	}
	b.BillID = billID
	b.Status = models.BookingStatusPickedUp
	b.PickupDetails = details
	b.UpdatedAt = details.ConfirmedAt
	return nil
}

func (r *fakeBookingRepo) ConfirmReturn(ctx context.Context, id primitive.ObjectID, details *models.ReturnDetails, settlement *models.Settlement, payment *models.FinalPayment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return ErrBookingNotFound
	}
	if b.Status != models.BookingStatusPickedUp {
		return fmt.Errorf("%w: booking is %s", ErrInvalidState, b.Status)
	}
	b.Status = models.BookingStatusReturned
	b.ReturnDetails = details
	b.DistanceTravelledKM = settlement.DistanceTravelledKM
	b.DurationHours = settlement.DurationHours
	b.CostPerDistance = settlement.CostPerDistance
	b.CostPerTime = settlement.CostPerTime
	b.DamageCost = settlement.DamageCost
	b.FinalCost = settlement.FinalCost
	b.FinalPayment = payment
	b.UpdatedAt = details.ConfirmedAt
	return nil
}

func (r *fakeBookingRepo) Cancel(ctx context.Context, id primitive.ObjectID, rejectionReason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return ErrBookingNotFound
	}
	if b.Status != models.BookingStatusRequested {
		return fmt.Errorf("%w: booking is %s", ErrInvalidState, b.Status)
	}
	b.Status = models.BookingStatusCancelled
	b.RejectionReason = rejectionReason
	return nil
}

func (r *fakeBookingRepo) MaxBillSequence(ctx context.Context, datePrefix string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	max := 0
	for _, b := range r.bookings {
		if !strings.HasPrefix(b.BillID, datePrefix+"-") {
			continue
		}
		seq, err := strconv.Atoi(strings.TrimPrefix(b.BillID, datePrefix+"-"))
		if err != nil {
			continue
		}
		if seq > max {
			max = seq
		}
	}
	return max, nil
}

func (r *fakeBookingRepo) GetByCustomer(ctx context.Context, customerID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	return r.filter(func(b *models.Booking) bool { return b.CustomerID == customerID })
}

func (r *fakeBookingRepo) GetByVehicle(ctx context.Context, vehicleID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	return r.filter(func(b *models.Booking) bool { return b.VehicleID == vehicleID })
}

func (r *fakeBookingRepo) GetByStatus(ctx context.Context, status models.BookingStatus, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	return r.filter(func(b *models.Booking) bool { return b.Status == status })
}

func (r *fakeBookingRepo) GetAll(ctx context.Context, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	return r.filter(func(*models.Booking) bool { return true })
}

func (r *fakeBookingRepo) filter(keep func(*models.Booking) bool) ([]*models.Booking, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Booking
	for _, b := range r.bookings {
		if keep(b) {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, int64(len(out)), nil
}

type fakeVehicleRepo struct {
	mu       sync.Mutex
	vehicles map[primitive.ObjectID]*models.Vehicle
	usageErr error
}

func newFakeVehicleRepo(vehicles ...*models.Vehicle) *fakeVehicleRepo {
	r := &fakeVehicleRepo{vehicles: map[primitive.ObjectID]*models.Vehicle{}}
	for _, v := range vehicles {
		r.vehicles[v.ID] = v
	}
	return r
}

func (r *fakeVehicleRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Vehicle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.vehicles[id]
	if !ok {
		return nil, ErrVehicleNotFound
	}
	cp := *v
	return &cp, nil
}

func (r *fakeVehicleRepo) MarkBooked(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.vehicles[id]
	if !ok {
		return ErrVehicleNotFound
	}
	if v.AvailabilityStatus != models.VehicleAvailable {
		return fmt.Errorf("%w: vehicle is %s", ErrVehicleUnavailable, v.AvailabilityStatus)
	}
	v.AvailabilityStatus = models.VehicleBooked
	return nil
}

func (r *fakeVehicleRepo) Release(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.vehicles[id]
	if !ok {
		return ErrVehicleNotFound
	}
	if v.AvailabilityStatus == models.VehicleBooked {
		v.AvailabilityStatus = models.VehicleAvailable
	}
	return nil
}

func (r *fakeVehicleRepo) RecordUsage(ctx context.Context, id primitive.ObjectID, distanceKM float64, hours int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.usageErr != nil {
		return r.usageErr
	}
	v, ok := r.vehicles[id]
	if !ok {
		return ErrVehicleNotFound
	}
	v.AvailabilityStatus = models.VehicleAvailable
	v.TotalBookings++
	v.TotalDistanceTravelled += distanceKM
	v.TotalHoursBooked += int64(hours)
	return nil
}

type recordingNotifier struct {
	mu       sync.Mutex
	pickedUp int
	returned int
}

func (n *recordingNotifier) BookingPickedUp(*models.Booking) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pickedUp++
}

func (n *recordingNotifier) BookingReturned(*models.Booking) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.returned++
}

type fakeGateway struct {
	lastOrder *payment.OrderRequest
}

func (g *fakeGateway) CreateOrder(ctx context.Context, request *payment.OrderRequest) (*payment.OrderResponse, error) {
	g.lastOrder = request
	return &payment.OrderResponse{
		OrderID:  "order_test_1",
		Status:   "created",
		Amount:   request.Amount,
		Currency: request.Currency,
	}, nil
}

func (g *fakeGateway) VerifyPaymentSignature(orderID, paymentID, signature string) bool {
	return true
}

type bookingFixture struct {
	svc      *bookingService
	bookings *fakeBookingRepo
	vehicles *fakeVehicleRepo
	packages *fakePackageRepo
	notifier *recordingNotifier
	vehicle  *models.Vehicle
	pkg      *models.PricingPackage
	clock    time.Time
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()

	pkg := bikePackage(50, 5)
	vehicle := &models.Vehicle{
		ID:                 primitive.NewObjectID(),
		VendorID:           primitive.NewObjectID(),
		Make:               "Hero",
		Model:              "Splendor",
		Type:               models.VehicleTypeBike,
		DisplacementCC:     150,
		LicensePlate:       "KA-01-1234",
		EngineNumber:       "ENG-77",
		ChassisNumber:      "CHS-88",
		AvailabilityStatus: models.VehicleAvailable,
	}

	bookings := newFakeBookingRepo()
	vehicles := newFakeVehicleRepo(vehicle)
	packages := &fakePackageRepo{packages: []*models.PricingPackage{pkg}}
	notifier := &recordingNotifier{}
	log := newTestLogger(t)

	svc := NewBookingService(
		bookings,
		vehicles,
		packages,
		NewPricingService(packages, log),
		NewBillAllocator(bookings, log),
		notifier,
		nil,
		log,
	).(*bookingService)

	f := &bookingFixture{
		svc:      svc,
		bookings: bookings,
		vehicles: vehicles,
		packages: packages,
		notifier: notifier,
		vehicle:  vehicle,
		pkg:      pkg,
		clock:    time.Date(2025, 6, 7, 9, 0, 0, 0, time.UTC),
	}
	svc.now = func() time.Time { return f.clock }
	return f
}

func (f *bookingFixture) createBooking(t *testing.T) *models.Booking {
	t.Helper()
	booking, err := f.svc.CreateBooking(context.Background(), &validators.CreateBookingRequest{
		CustomerID:     primitive.NewObjectID(),
		VehicleID:      f.vehicle.ID,
		VendorID:       f.vehicle.VendorID,
		PickupLocation: "MG Road office",
		PickupDate:     "2025-06-07",
		PickupTime:     "9:00 AM",
	})
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	return booking
}

func (f *bookingFixture) pickUp(t *testing.T, bookingID primitive.ObjectID) *models.Booking {
	t.Helper()
	odo := 1000.0
	booking, err := f.svc.ConfirmPickup(context.Background(), bookingID, primitive.NewObjectID(), &validators.ConfirmPickupRequest{
		OdometerStart: &odo,
		LicensePlate:  f.vehicle.LicensePlate,
		EngineNumber:  f.vehicle.EngineNumber,
		ChassisNumber: f.vehicle.ChassisNumber,
		IDProofType:   "driving_license",
		IDProofNumber: "DL-123",
	})
	if err != nil {
		t.Fatalf("ConfirmPickup: %v", err)
	}
	return booking
}

func returnRequest(f *bookingFixture, odometerEnd float64) *validators.ConfirmReturnRequest {
	return &validators.ConfirmReturnRequest{
		OdometerEnd:      &odometerEnd,
		VehicleCondition: utils.VehicleConditionGood,
		LicensePlate:     f.vehicle.LicensePlate,
		EngineNumber:     f.vehicle.EngineNumber,
		ChassisNumber:    f.vehicle.ChassisNumber,
		AmountPaid:       600,
		PaymentMethod:    "cash",
	}
}

func TestCreateBookingMarksVehicleBooked(t *testing.T) {
	f := newBookingFixture(t)

	booking := f.createBooking(t)

	if booking.Status != models.BookingStatusRequested {
		t.Errorf("status = %s, want requested", booking.Status)
	}
	if booking.PackageID != f.pkg.ID {
		t.Errorf("package not resolved onto the booking")
	}
	if booking.BillID != "" {
		t.Errorf("bill id must not exist before pickup, got %q", booking.BillID)
	}

	v, _ := f.vehicles.GetByID(context.Background(), f.vehicle.ID)
	if v.AvailabilityStatus != models.VehicleBooked {
		t.Errorf("vehicle availability = %s, want booked", v.AvailabilityStatus)
	}
}

func TestCreateBookingLoserGetsVehicleUnavailable(t *testing.T) {
	f := newBookingFixture(t)

	f.createBooking(t)

	_, err := f.svc.CreateBooking(context.Background(), &validators.CreateBookingRequest{
		CustomerID:     primitive.NewObjectID(),
		VehicleID:      f.vehicle.ID,
		VendorID:       f.vehicle.VendorID,
		PickupLocation: "MG Road office",
		PickupDate:     "2025-06-07",
	})
	if !errors.Is(err, ErrVehicleUnavailable) {
		t.Fatalf("want ErrVehicleUnavailable, got %v", err)
	}

	if _, total, _ := f.bookings.GetAll(context.Background(), nil); total != 1 {
		t.Errorf("losing request must not create a booking, have %d", total)
	}
}

func TestCreateBookingRejectsBadDate(t *testing.T) {
	f := newBookingFixture(t)

	_, err := f.svc.CreateBooking(context.Background(), &validators.CreateBookingRequest{
		CustomerID:     primitive.NewObjectID(),
		VehicleID:      f.vehicle.ID,
		VendorID:       f.vehicle.VendorID,
		PickupLocation: "MG Road office",
		PickupDate:     "next tuesday",
	})
	if !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("want ErrValidationFailed, got %v", err)
	}

	v, _ := f.vehicles.GetByID(context.Background(), f.vehicle.ID)
	if v.AvailabilityStatus != models.VehicleAvailable {
		t.Errorf("vehicle must stay available when the request is rejected")
	}
}

func TestConfirmPickupAllocatesBillID(t *testing.T) {
	f := newBookingFixture(t)
	booking := f.createBooking(t)

	updated := f.pickUp(t, booking.ID)

	if updated.Status != models.BookingStatusPickedUp {
		t.Errorf("status = %s, want picked_up", updated.Status)
	}
	if updated.BillID != "BILL-20250607-00001" {
		t.Errorf("bill id = %q, want BILL-20250607-00001", updated.BillID)
	}
	if updated.PickupDetails == nil || updated.PickupDetails.OdometerStart != 1000 {
		t.Errorf("pickup details not recorded")
	}
	if f.notifier.pickedUp != 1 {
		t.Errorf("pickup notification not emitted")
	}
}

func TestConfirmPickupSecondBookingGetsNextSequence(t *testing.T) {
	f := newBookingFixture(t)
	first := f.createBooking(t)
	f.pickUp(t, first.ID)

	second := &models.Booking{
		CustomerID:     primitive.NewObjectID(),
		VehicleID:      f.vehicle.ID,
		VendorID:       f.vehicle.VendorID,
		PackageID:      f.pkg.ID,
		PickupLocation: "MG Road office",
		PickupDate:     f.clock,
		Status:         models.BookingStatusRequested,
	}
	if err := f.bookings.Create(context.Background(), second); err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated := f.pickUp(t, second.ID)
	if updated.BillID != "BILL-20250607-00002" {
		t.Errorf("bill id = %q, want BILL-20250607-00002", updated.BillID)
	}
}

func TestConfirmPickupRejectsWrongState(t *testing.T) {
	f := newBookingFixture(t)
	booking := f.createBooking(t)
	f.pickUp(t, booking.ID)

	odo := 1000.0
	_, err := f.svc.ConfirmPickup(context.Background(), booking.ID, primitive.NewObjectID(), &validators.ConfirmPickupRequest{
		OdometerStart: &odo,
		LicensePlate:  f.vehicle.LicensePlate,
		EngineNumber:  f.vehicle.EngineNumber,
		ChassisNumber: f.vehicle.ChassisNumber,
		IDProofType:   "driving_license",
		IDProofNumber: "DL-123",
	})
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("want ErrInvalidState, got %v", err)
	}
}

func TestConfirmReturnSettlesAndSyncsUsage(t *testing.T) {
	f := newBookingFixture(t)
	booking := f.createBooking(t)
	f.pickUp(t, booking.ID)

	// 120 km over 4 hours at 50/hr and 5/km: distance cost 600 beats time
	// cost 200.
	f.clock = f.clock.Add(4 * time.Hour)

	updated, err := f.svc.ConfirmReturn(context.Background(), booking.ID, primitive.NewObjectID(), returnRequest(f, 1120))
	if err != nil {
		t.Fatalf("ConfirmReturn: %v", err)
	}

	if updated.Status != models.BookingStatusReturned {
		t.Errorf("status = %s, want returned", updated.Status)
	}
	if updated.DistanceTravelledKM != 120 {
		t.Errorf("distance = %v, want 120", updated.DistanceTravelledKM)
	}
	if updated.DurationHours != 4 {
		t.Errorf("duration = %d, want 4", updated.DurationHours)
	}
	if updated.FinalCost != 600 {
		t.Errorf("final cost = %v, want 600", updated.FinalCost)
	}
	if updated.FinalPayment == nil || updated.FinalPayment.Method != models.FinalPaymentMethodCash {
		t.Errorf("final payment not recorded")
	}

	v, _ := f.vehicles.GetByID(context.Background(), f.vehicle.ID)
	if v.AvailabilityStatus != models.VehicleAvailable {
		t.Errorf("vehicle availability = %s, want available", v.AvailabilityStatus)
	}
	if v.TotalBookings != 1 || v.TotalDistanceTravelled != 120 || v.TotalHoursBooked != 4 {
		t.Errorf("usage counters = (%d, %v, %d), want (1, 120, 4)",
			v.TotalBookings, v.TotalDistanceTravelled, v.TotalHoursBooked)
	}
	if f.notifier.returned != 1 {
		t.Errorf("return notification not emitted")
	}
}

func TestConfirmReturnRejectsZeroPayment(t *testing.T) {
	f := newBookingFixture(t)
	booking := f.createBooking(t)
	f.pickUp(t, booking.ID)
	f.clock = f.clock.Add(4 * time.Hour)

	req := returnRequest(f, 1120)
	req.AmountPaid = 0

	_, err := f.svc.ConfirmReturn(context.Background(), booking.ID, primitive.NewObjectID(), req)
	if !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("want ErrValidationFailed, got %v", err)
	}

	b, _ := f.bookings.GetByID(context.Background(), booking.ID)
	if b.Status != models.BookingStatusPickedUp {
		t.Errorf("booking must stay picked_up, got %s", b.Status)
	}
	v, _ := f.vehicles.GetByID(context.Background(), f.vehicle.ID)
	if v.TotalBookings != 0 {
		t.Errorf("usage counters must not move on a rejected return")
	}
}

func TestConfirmReturnRejectsIdentityMismatch(t *testing.T) {
	f := newBookingFixture(t)
	booking := f.createBooking(t)
	f.pickUp(t, booking.ID)
	f.clock = f.clock.Add(4 * time.Hour)

	req := returnRequest(f, 1120)
	req.EngineNumber = "ENG-00"

	_, err := f.svc.ConfirmReturn(context.Background(), booking.ID, primitive.NewObjectID(), req)
	if !errors.Is(err, ErrVehicleIdentityMismatch) {
		t.Fatalf("want ErrVehicleIdentityMismatch, got %v", err)
	}

	b, _ := f.bookings.GetByID(context.Background(), booking.ID)
	if b.Status != models.BookingStatusPickedUp {
		t.Errorf("booking must stay picked_up, got %s", b.Status)
	}
}

func TestConfirmReturnRejectsReturnBeforePickup(t *testing.T) {
	f := newBookingFixture(t)
	booking := f.createBooking(t)
	f.pickUp(t, booking.ID)

	req := returnRequest(f, 1120)
	req.ReturnDate = "2025-06-06"
	req.ReturnTime = "8:00 AM"

	_, err := f.svc.ConfirmReturn(context.Background(), booking.ID, primitive.NewObjectID(), req)
	if !errors.Is(err, ErrInvalidTimeWindow) {
		t.Fatalf("want ErrInvalidTimeWindow, got %v", err)
	}

	b, _ := f.bookings.GetByID(context.Background(), booking.ID)
	if b.Status != models.BookingStatusPickedUp {
		t.Errorf("booking must stay picked_up, got %s", b.Status)
	}
}

func TestConfirmReturnUsageSyncFailureDoesNotUndoSettlement(t *testing.T) {
	f := newBookingFixture(t)
	booking := f.createBooking(t)
	f.pickUp(t, booking.ID)
	f.clock = f.clock.Add(4 * time.Hour)
	f.vehicles.usageErr = errors.New("write timeout")

	updated, err := f.svc.ConfirmReturn(context.Background(), booking.ID, primitive.NewObjectID(), returnRequest(f, 1120))
	if err != nil {
		t.Fatalf("ConfirmReturn: %v", err)
	}
	if updated.Status != models.BookingStatusReturned {
		t.Errorf("settlement must stand when the counter sync fails, got %s", updated.Status)
	}
}

func TestCancelReleasesVehicle(t *testing.T) {
	f := newBookingFixture(t)
	booking := f.createBooking(t)

	updated, err := f.svc.CancelBooking(context.Background(), booking.ID)
	if err != nil {
		t.Fatalf("CancelBooking: %v", err)
	}
	if updated.Status != models.BookingStatusCancelled {
		t.Errorf("status = %s, want cancelled", updated.Status)
	}

	v, _ := f.vehicles.GetByID(context.Background(), f.vehicle.ID)
	if v.AvailabilityStatus != models.VehicleAvailable {
		t.Errorf("vehicle availability = %s, want available", v.AvailabilityStatus)
	}
}

func TestCancelRejectsPickedUpBooking(t *testing.T) {
	f := newBookingFixture(t)
	booking := f.createBooking(t)
	f.pickUp(t, booking.ID)

	_, err := f.svc.CancelBooking(context.Background(), booking.ID)
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("want ErrInvalidState, got %v", err)
	}
}

func TestRejectRequiresReason(t *testing.T) {
	f := newBookingFixture(t)
	booking := f.createBooking(t)

	_, err := f.svc.RejectBooking(context.Background(), booking.ID, primitive.NewObjectID(), "")
	if !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("want ErrValidationFailed, got %v", err)
	}
}

func TestRejectRecordsReason(t *testing.T) {
	f := newBookingFixture(t)
	booking := f.createBooking(t)

	updated, err := f.svc.RejectBooking(context.Background(), booking.ID, primitive.NewObjectID(), "vehicle due for maintenance")
	if err != nil {
		t.Fatalf("RejectBooking: %v", err)
	}
	if updated.Status != models.BookingStatusCancelled {
		t.Errorf("status = %s, want cancelled", updated.Status)
	}
	if updated.RejectionReason != "vehicle due for maintenance" {
		t.Errorf("rejection reason = %q", updated.RejectionReason)
	}
}

func TestCreateAdvanceOrderChargesShareOfEstimate(t *testing.T) {
	f := newBookingFixture(t)
	gateway := &fakeGateway{}
	f.svc.gateway = gateway

	order, err := f.svc.CreateAdvanceOrder(context.Background(), &validators.AdvanceOrderRequest{
		VehicleID:      f.vehicle.ID,
		EstimatedHours: 10,
	})
	if err != nil {
		t.Fatalf("CreateAdvanceOrder: %v", err)
	}

	// 10 hours at 50/hr estimates 500; the advance is the configured share.
	want := 500 * utils.AdvancePaymentShare
	if gateway.lastOrder == nil {
		t.Fatal("gateway never called")
	}
	if gateway.lastOrder.Amount != want {
		t.Errorf("order amount = %v, want %v", gateway.lastOrder.Amount, want)
	}
	if order.OrderID == "" {
		t.Errorf("order id missing")
	}
}

func TestCreateAdvanceOrderWithoutGateway(t *testing.T) {
	f := newBookingFixture(t)

	_, err := f.svc.CreateAdvanceOrder(context.Background(), &validators.AdvanceOrderRequest{
		VehicleID:      f.vehicle.ID,
		EstimatedHours: 10,
	})
	if err == nil {
		t.Fatal("want an error when no gateway is configured")
	}
}

func TestListBookingsValidatesStatus(t *testing.T) {
	f := newBookingFixture(t)

	_, _, err := f.svc.ListBookings(context.Background(), nil, nil, models.BookingStatus("confirmed"), nil)
	if !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("want ErrValidationFailed, got %v", err)
	}
}
