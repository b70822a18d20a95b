package services

import (
	"fmt"

	"github.com/yeremiapane/restaurant-booking/models"
	"github.com/yeremiapane/restaurant-booking/utils"
)

// BookingNotifier mengirim SMS best-effort untuk tiap event booking.
// Kegagalan kirim hanya di-log, tidak pernah dikembalikan ke caller.
type BookingNotifier struct {
	SMS *SMSService
}

func NewBookingNotifier(sms *SMSService) *BookingNotifier {
	return &BookingNotifier{SMS: sms}
}

func (bn *BookingNotifier) notify(phone, message, event string) {
	if phone == "" {
		return
	}
	if err := bn.SMS.Send(phone, message); err != nil {
		utils.ErrorLogger.Printf("SMS notification failed on %s: %v", event, err)
	}
}

func (bn *BookingNotifier) BookingCreated(user models.User, booking models.Booking, table models.Table) {
	message := fmt.Sprintf(
		"Hi %s! Your booking is confirmed.\nTable: %d\nDate: %s\nTime: %s - %s\nGuests: %d\nBooking code: %s\nThank you for choosing us!",
		user.Name, table.TableNumber, booking.Date, booking.StartTime, booking.EndTime, booking.Guests, booking.Code,
	)
	bn.notify(user.Phone, message, "create")
}

func (bn *BookingNotifier) BookingUpdated(user models.User, booking models.Booking) {
	message := fmt.Sprintf(
		"Hi %s, your booking %s has been updated.\nPlease check the app for the latest details.",
		user.Name, booking.Code,
	)
	bn.notify(user.Phone, message, "update")
}

func (bn *BookingNotifier) BookingCancelled(user models.User, booking models.Booking) {
	message := fmt.Sprintf(
		"Hi %s, your booking %s on %s (%s - %s) has been cancelled.",
		user.Name, booking.Code, booking.Date, booking.StartTime, booking.EndTime,
	)
	bn.notify(user.Phone, message, "cancel")
}
