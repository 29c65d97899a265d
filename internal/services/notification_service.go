package services

import (
	"context"
	"fmt"
	"time"

	"rentwheels/internal/models"
	"rentwheels/internal/utils"
	"rentwheels/pkg/logger"
	"rentwheels/pkg/push"
)

// NotificationService emits fire-and-forget booking events. Delivery failures
// are logged and must never fail or roll back a state transition.
type NotificationService interface {
	BookingPickedUp(booking *models.Booking)
	BookingReturned(booking *models.Booking)
}

type notificationService struct {
	provider push.PushProvider
	logger   *logger.Logger
}

func NewNotificationService(provider push.PushProvider, log *logger.Logger) NotificationService {
	return &notificationService{
		provider: provider,
		logger:   log,
	}
}

func (s *notificationService) BookingPickedUp(booking *models.Booking) {
	title := "Vehicle picked up"
	body := fmt.Sprintf("Your rental has started. Bill number %s.", booking.BillID)
	s.send(booking, "booking_picked_up", title, body)
}

func (s *notificationService) BookingReturned(booking *models.Booking) {
	title := "Vehicle returned"
	body := fmt.Sprintf("Your rental is settled. Final amount %.2f.", booking.FinalCost)
	s.send(booking, "booking_returned", title, body)
}

func (s *notificationService) send(booking *models.Booking, event, title, body string) {
	if s.provider == nil {
		s.logger.WithBookingID(booking.ID).Debug("Push provider not configured; skipping notification")
		return
	}

	// Detached from the request context: the transition has already been
	// committed and must not be affected by notification latency or failure.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		_, err := s.provider.SendNotification(ctx, &push.NotificationRequest{
			Topic: fmt.Sprintf("customer_%s", booking.CustomerID.Hex()),
			Title: title,
			Body:  body,
			Data: map[string]string{
				"event":      event,
				"booking_id": booking.ID.Hex(),
				"bill_id":    booking.BillID,
				"status":     string(booking.Status),
				"updated_at": utils.FormatTimeISO(booking.UpdatedAt),
			},
		})
		if err != nil {
			s.logger.WithBookingID(booking.ID).WithError(err).Warn("Booking notification delivery failed")
			return
		}

		s.logger.WithBookingID(booking.ID).WithField("event", event).Debug("Booking notification sent")
	}()
}
