package routes

import (
	"rentwheels/internal/handlers"
	"rentwheels/internal/middleware"

	"github.com/gin-gonic/gin"
)

// SetupBookingRoutes wires the booking lifecycle endpoints.
func SetupBookingRoutes(r *gin.RouterGroup, bookingHandler *handlers.BookingHandler, jwtSecret string) {
	bookings := r.Group("/bookings")
	bookings.Use(middleware.AuthRequired(jwtSecret))
	{
		bookings.POST("", bookingHandler.CreateBooking)
		bookings.GET("", bookingHandler.ListBookings)
		bookings.GET("/:id", bookingHandler.GetBooking)
		bookings.POST("/:id/cancel", bookingHandler.CancelBooking)
		bookings.POST("/advance-order", bookingHandler.CreateAdvanceOrder)

		// Office-staff actions
		staff := bookings.Group("")
		staff.Use(middleware.StaffRequired())
		{
			staff.POST("/:id/pickup", bookingHandler.ConfirmPickup)
			staff.POST("/:id/return", bookingHandler.ConfirmReturn)
			staff.POST("/:id/reject", bookingHandler.RejectBooking)
		}
	}

	payments := r.Group("/payments")
	payments.Use(middleware.AuthRequired(jwtSecret))
	{
		payments.POST("/razorpay/verify", bookingHandler.VerifyPayment)
	}
}
