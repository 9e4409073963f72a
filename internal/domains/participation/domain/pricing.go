package domain

import (
	"math"

	catalogdomain "github.com/Apurer/petshow-api/internal/domains/catalog/domain"
)

// RoundCents rounds an amount to two decimals, half away from zero.
func RoundCents(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// PriceForNewRegistration prices an entry given how many pets the owner already has paid for the event.
// Every pet after the first gets the extra-pet discount. The price never drops below zero.
func PriceForNewRegistration(event *catalogdomain.Event, existingPaidPets int) (amount float64, discounted bool) {
	if existingPaidPets <= 0 {
		return RoundCents(event.BaseFee), false
	}
	return RoundCents(math.Max(0, event.BaseFee-event.ExtraPetDiscount)), true
}

// TransferQuote is the settlement of moving a registration to another event.
type TransferQuote struct {
	Delta    float64
	NewTotal float64
	TopUp    float64
	Refund   float64
}

// NeedsConfirmation reports whether the owner has to pay more.
func (q TransferQuote) NeedsConfirmation() bool {
	return q.TopUp > 0
}

// PriceDeltaForTransfer reconciles what was paid against the target event's base fee.
// The multi-pet discount is not applied again.
func PriceDeltaForTransfer(currentTotal, newBaseFee float64) TransferQuote {
	delta := RoundCents(newBaseFee - currentTotal)
	quote := TransferQuote{
		Delta:    delta,
		NewTotal: RoundCents(currentTotal + delta),
	}
	if delta > 0 {
		quote.TopUp = delta
	} else if delta < 0 {
		quote.Refund = -delta
	}
	return quote
}
