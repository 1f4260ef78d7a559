package jobs

import (
	"go.uber.org/zap"

	"github.com/jkimani5/fundi_connect/services"
	"github.com/jkimani5/fundi_connect/utils"
)

// SendBookingReminders notifies both parties of confirmed bookings starting
// in about an hour.
func SendBookingReminders() {
	logger := utils.GetLogger()
	sent, err := services.SendBookingReminders()
	if err != nil {
		logger.Error("booking reminder run failed", zap.Error(err))
		return
	}
	if sent > 0 {
		logger.Info("booking reminders sent", zap.Int("bookings", sent))
	}
}
