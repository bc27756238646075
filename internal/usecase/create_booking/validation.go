package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SC-BookingService/internal/domain"
	"github.com/m04kA/SC-BookingService/internal/usecase/create_booking/models"
	"github.com/m04kA/SC-BookingService/pkg/types"
)

// parsedRequest результат валидации запроса на бронирование
type parsedRequest struct {
	bookingDate time.Time
	slotTime    types.TimeString
}

// validateRequest проверяет запрос и разбирает дату и время слота.
// Сообщение об ошибке называет первое отсутствующее или некорректное поле.
func validateRequest(req *models.CreateBookingRequest, now time.Time) (*parsedRequest, error) {
	if req.SalonID == "" {
		return nil, fmt.Errorf("%w: salonId is required", ErrValidation)
	}
	if req.ServiceName == "" {
		return nil, fmt.Errorf("%w: serviceName is required", ErrValidation)
	}
	if len(req.ServiceName) > domain.MaxServiceNameLength {
		return nil, fmt.Errorf("%w: serviceName too long, max %d characters", ErrValidation, domain.MaxServiceNameLength)
	}
	if req.BookingDate == "" {
		return nil, fmt.Errorf("%w: bookingDate is required", ErrValidation)
	}
	if req.SlotTime == "" {
		return nil, fmt.Errorf("%w: slotTime is required", ErrValidation)
	}
	if req.UserName == "" {
		return nil, fmt.Errorf("%w: userName is required", ErrValidation)
	}
	if req.UserPhone == "" {
		return nil, fmt.Errorf("%w: userPhone is required", ErrValidation)
	}

	bookingDate, err := time.Parse(domain.DateFormat, req.BookingDate)
	if err != nil {
		return nil, fmt.Errorf("%w: bookingDate must be in YYYY-MM-DD format", ErrValidation)
	}

	slotTime, err := types.NewTimeStringFromString(req.SlotTime)
	if err != nil {
		return nil, fmt.Errorf("%w: slotTime must be in HH:MM format", ErrValidation)
	}

	// Бронировать можно только фиксированные слоты расписания
	if !domain.IsBookableSlotTime(slotTime) {
		return nil, fmt.Errorf("%w: slotTime %s is not a bookable slot", ErrValidation, slotTime)
	}

	// Слот в прошлом бронировать нельзя. Момент слота считается той же
	// функцией, что и признак истечения заявки
	if !domain.SlotDateTime(bookingDate, slotTime).After(now) {
		return nil, fmt.Errorf("%w: slot is in the past", ErrValidation)
	}

	return &parsedRequest{
		bookingDate: bookingDate,
		slotTime:    slotTime,
	}, nil
}
