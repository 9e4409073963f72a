package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	catalogdomain "github.com/Apurer/petshow-api/internal/domains/catalog/domain"
)

func TestPriceForNewRegistration_FirstAndSecondPet(t *testing.T) {
	event := &catalogdomain.Event{BaseFee: 300, ExtraPetDiscount: 50}

	first, discounted := PriceForNewRegistration(event, 0)
	require.Equal(t, 300.0, first)
	require.False(t, discounted)

	second, discounted := PriceForNewRegistration(event, 1)
	require.Equal(t, 250.0, second)
	require.True(t, discounted)
}

func TestPriceForNewRegistration_ClampsLargeDiscount(t *testing.T) {
	event := &catalogdomain.Event{BaseFee: 20, ExtraPetDiscount: 35}

	amount, discounted := PriceForNewRegistration(event, 3)
	require.Zero(t, amount)
	require.True(t, discounted)
}

func TestPriceDeltaForTransfer_TopUpThenRefund(t *testing.T) {
	up := PriceDeltaForTransfer(300, 400)
	require.Equal(t, TransferQuote{Delta: 100, NewTotal: 400, TopUp: 100}, up)
	require.True(t, up.NeedsConfirmation())

	down := PriceDeltaForTransfer(up.NewTotal, 250)
	require.Equal(t, TransferQuote{Delta: -150, NewTotal: 250, Refund: 150}, down)
	require.False(t, down.NeedsConfirmation())

	same := PriceDeltaForTransfer(250, 250)
	require.Equal(t, TransferQuote{NewTotal: 250}, same)
}

func TestPricing_Properties(t *testing.T) {
	rapid.Check(t, func(r *rapid.T) {
		base := float64(rapid.IntRange(0, 100000).Draw(r, "baseCents")) / 100
		discount := float64(rapid.IntRange(0, 100000).Draw(r, "discountCents")) / 100
		count := rapid.IntRange(0, 20).Draw(r, "existing")
		event := &catalogdomain.Event{BaseFee: base, ExtraPetDiscount: discount}

		amount, discounted := PriceForNewRegistration(event, count)
		require.GreaterOrEqual(r, amount, 0.0)
		require.LessOrEqual(r, amount, base)
		require.Equal(r, count > 0, discounted)

		current := float64(rapid.IntRange(0, 100000).Draw(r, "currentCents")) / 100
		quote := PriceDeltaForTransfer(current, base)
		require.InDelta(r, base, quote.NewTotal, 0.001)
		require.GreaterOrEqual(r, quote.NewTotal, 0.0)
		require.GreaterOrEqual(r, quote.TopUp, 0.0)
		require.GreaterOrEqual(r, quote.Refund, 0.0)
		require.False(r, quote.TopUp > 0 && quote.Refund > 0)
		require.InDelta(r, quote.Delta, quote.TopUp-quote.Refund, 0.001)
	})
}
