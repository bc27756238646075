package domain

import "github.com/m04kA/SC-BookingService/pkg/types"

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Subscription payment convention (manual UPI verification, no gateway)
const (
	PaymentRefPrefix   = "SC_"
	SubscriptionFeeINR = 200
)

// Business validation constants
const (
	MaxServiceNameLength = 100
	MaxMessageLength     = 1000
	MaxServicesPerSalon  = 50
)

// SlotTimes фиксированный набор бронируемых слотов на день
// Слоты точечные, без учёта длительности услуги - эксклюзивность
// проверяется по точному совпадению времени
var SlotTimes = []types.TimeString{
	"10:00",
	"11:30",
	"13:00",
	"14:30",
	"16:00",
	"17:30",
	"19:00",
	"20:30",
}

// IsBookableSlotTime reports whether the time is one of the fixed slot marks
func IsBookableSlotTime(t types.TimeString) bool {
	for _, slot := range SlotTimes {
		if slot.Equal(t) {
			return true
		}
	}
	return false
}

// InactiveStatuses список завершённых статусов
// Заявки в этих статусах не занимают слот
var InactiveStatuses = []BookingStatus{
	StatusRejected,
	StatusNoShow,
	StatusCompleted,
}

// ActiveStatuses список статусов, занимающих слот
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusAccepted,
}
