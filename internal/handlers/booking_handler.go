package handlers

import (
	"errors"
	"net/http"

	"rentwheels/internal/models"
	"rentwheels/internal/services"
	"rentwheels/internal/utils"
	"rentwheels/internal/validators"
	"rentwheels/pkg/logger"
	"rentwheels/pkg/payment"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingHandler struct {
	bookingService services.BookingService
	gateway        payment.PaymentProvider
	logger         *logger.Logger
}

func NewBookingHandler(bookingService services.BookingService, gateway payment.PaymentProvider, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
		gateway:        gateway,
		logger:         log,
	}
}

// CreateBooking opens a booking request and flips the vehicle to booked.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req validators.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}
	if errs := validators.ValidateStruct(&req); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.Details())
		return
	}

	booking, err := h.bookingService.CreateBooking(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.logger.LogBookingEvent(booking.ID, "requested", map[string]interface{}{
		"vehicle_id": booking.VehicleID.Hex(),
	})
	utils.CreatedResponse(c, "Booking requested", booking)
}

func (h *BookingHandler) GetBooking(c *gin.Context) {
	id, ok := h.objectIDParam(c, "id")
	if !ok {
		return
	}

	booking, err := h.bookingService.GetBooking(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	utils.SuccessResponse(c, "", booking)
}

func (h *BookingHandler) ListBookings(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	var customerID, vehicleID *primitive.ObjectID
	if raw := c.Query("customer_id"); raw != "" {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid customer_id")
			return
		}
		customerID = &id
	}
	if raw := c.Query("vehicle_id"); raw != "" {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid vehicle_id")
			return
		}
		vehicleID = &id
	}
	status := models.BookingStatus(c.Query("status"))

	bookings, total, err := h.bookingService.ListBookings(c.Request.Context(), customerID, vehicleID, status, params)
	if err != nil {
		h.respondError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "", bookings, &utils.Meta{
		Pagination: utils.BuildPaginationMeta(params, total),
		Count:      len(bookings),
	})
}

// ConfirmPickup is the office-staff action that hands the vehicle over and
// allocates the bill id.
func (h *BookingHandler) ConfirmPickup(c *gin.Context) {
	id, ok := h.objectIDParam(c, "id")
	if !ok {
		return
	}
	staffID, ok := h.actorID(c)
	if !ok {
		return
	}

	var req validators.ConfirmPickupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}
	if errs := validators.ValidateStruct(&req); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.Details())
		return
	}

	booking, err := h.bookingService.ConfirmPickup(c.Request.Context(), id, staffID, &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.logger.LogBookingEvent(booking.ID, "picked_up", map[string]interface{}{
		"bill_id": booking.BillID,
	})
	utils.SuccessResponse(c, "Pickup confirmed", booking)
}

// ConfirmReturn settles the booking: usage-based cost, final payment, vehicle
// release and counters.
func (h *BookingHandler) ConfirmReturn(c *gin.Context) {
	id, ok := h.objectIDParam(c, "id")
	if !ok {
		return
	}
	staffID, ok := h.actorID(c)
	if !ok {
		return
	}

	var req validators.ConfirmReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}
	if errs := validators.ValidateStruct(&req); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.Details())
		return
	}

	booking, err := h.bookingService.ConfirmReturn(c.Request.Context(), id, staffID, &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.logger.LogBookingEvent(booking.ID, "returned", map[string]interface{}{
		"final_cost": booking.FinalCost,
	})
	utils.SuccessResponse(c, "Return confirmed", booking)
}

func (h *BookingHandler) CancelBooking(c *gin.Context) {
	id, ok := h.objectIDParam(c, "id")
	if !ok {
		return
	}

	booking, err := h.bookingService.CancelBooking(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.logger.LogBookingEvent(booking.ID, "cancelled", nil)
	utils.SuccessResponse(c, "Booking cancelled", booking)
}

func (h *BookingHandler) RejectBooking(c *gin.Context) {
	id, ok := h.objectIDParam(c, "id")
	if !ok {
		return
	}
	staffID, ok := h.actorID(c)
	if !ok {
		return
	}

	var req validators.RejectBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}
	if errs := validators.ValidateStruct(&req); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.Details())
		return
	}

	booking, err := h.bookingService.RejectBooking(c.Request.Context(), id, staffID, req.Reason)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.logger.LogBookingEvent(booking.ID, "rejected", map[string]interface{}{
		"reason": req.Reason,
	})
	utils.SuccessResponse(c, "Booking rejected", booking)
}

// CreateAdvanceOrder asks the gateway for an order covering the advance share
// of the hour-based estimate.
func (h *BookingHandler) CreateAdvanceOrder(c *gin.Context) {
	var req validators.AdvanceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}
	if errs := validators.ValidateStruct(&req); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.Details())
		return
	}

	order, err := h.bookingService.CreateAdvanceOrder(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	utils.CreatedResponse(c, "Advance order created", order)
}

// VerifyPayment is the gateway adapter surface: checkout signatures are
// checked here, at the edge, never inside the state machine.
func (h *BookingHandler) VerifyPayment(c *gin.Context) {
	if h.gateway == nil {
		utils.ErrorResponse(c, http.StatusServiceUnavailable, "GATEWAY_UNAVAILABLE", "payment gateway is not configured")
		return
	}

	var req validators.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}
	if errs := validators.ValidateStruct(&req); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.Details())
		return
	}

	verified := h.gateway.VerifyPaymentSignature(req.OrderID, req.PaymentID, req.Signature)
	utils.SuccessResponse(c, "", gin.H{"verified": verified})
}

func (h *BookingHandler) objectIDParam(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid booking id")
		return primitive.NilObjectID, false
	}
	return id, true
}

func (h *BookingHandler) actorID(c *gin.Context) (primitive.ObjectID, bool) {
	raw, exists := c.Get("user_id")
	if !exists {
		utils.UnauthorizedResponse(c)
		return primitive.NilObjectID, false
	}
	id, ok := raw.(primitive.ObjectID)
	if !ok {
		utils.UnauthorizedResponse(c)
		return primitive.NilObjectID, false
	}
	return id, true
}

func (h *BookingHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrBookingNotFound):
		utils.NotFoundResponse(c, "Booking")
	case errors.Is(err, services.ErrVehicleNotFound):
		utils.NotFoundResponse(c, "Vehicle")
	case errors.Is(err, services.ErrPackageNotFound):
		utils.NotFoundResponse(c, "Pricing package")
	case errors.Is(err, services.ErrInvalidState):
		utils.ErrorResponse(c, http.StatusConflict, "INVALID_STATE", err.Error())
	case errors.Is(err, services.ErrVehicleUnavailable):
		utils.ErrorResponse(c, http.StatusConflict, "VEHICLE_UNAVAILABLE", err.Error())
	case errors.Is(err, services.ErrValidationFailed):
		utils.ErrorResponse(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, services.ErrVehicleIdentityMismatch):
		utils.ErrorResponse(c, http.StatusUnprocessableEntity, "VEHICLE_IDENTITY_MISMATCH", err.Error())
	case errors.Is(err, services.ErrInvalidOdometerReading):
		utils.ErrorResponse(c, http.StatusUnprocessableEntity, "INVALID_ODOMETER_READING", err.Error())
	case errors.Is(err, services.ErrInvalidTimeWindow):
		utils.ErrorResponse(c, http.StatusUnprocessableEntity, "INVALID_TIME_WINDOW", err.Error())
	case errors.Is(err, services.ErrNoPricingTierFound):
		utils.ErrorResponse(c, http.StatusUnprocessableEntity, "NO_PRICING_TIER", err.Error())
	case errors.Is(err, services.ErrBillAllocationExhausted):
		utils.ErrorResponse(c, http.StatusInternalServerError, "BILL_ID_EXHAUSTED", err.Error())
	default:
		h.logger.WithError(err).Error("Unhandled booking error")
		utils.InternalServerErrorResponse(c)
	}
}
