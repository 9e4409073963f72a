package domain

import (
	"time"

	catalogdomain "github.com/Apurer/petshow-api/internal/domains/catalog/domain"
)

const (
	fullRefundDays = 14
	halfRefundDays = 4
)

// Refund is the amount returned on withdrawal and the tier it came from.
type Refund struct {
	DaysUntil int
	Percent   int
	Amount    float64
}

// RefundFor applies the withdrawal tiers on whole days between today and the event date.
func RefundFor(totalPaid float64, eventDate, today time.Time) Refund {
	days := catalogdomain.DaysBetween(today, eventDate)
	percent := 0
	switch {
	case days >= fullRefundDays:
		percent = 100
	case days >= halfRefundDays:
		percent = 50
	}
	return Refund{
		DaysUntil: days,
		Percent:   percent,
		Amount:    RoundCents(totalPaid * float64(percent) / 100),
	}
}
