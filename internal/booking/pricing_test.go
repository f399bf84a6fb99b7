package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dipika-maharjan/tripwise-backend/internal/extra"
)

func TestCalculatePriceRoomOnly(t *testing.T) {
	// 2 nights, 1 room at 100/night, 13% tax, no fee.
	p, err := CalculatePrice(100, 2, 1, 2, nil, 13, 0)
	require.NoError(t, err)

	assert.Equal(t, 200.0, p.BasePriceTotal)
	assert.Equal(t, 0.0, p.ExtrasTotal)
	assert.Equal(t, 26.0, p.Tax)
	assert.Equal(t, 0.0, p.ServiceFee)
	assert.Equal(t, 226.0, p.TotalPrice)
}

func TestCalculatePricePerPersonExtra(t *testing.T) {
	extras := []PricedExtra{
		{ExtraID: "e1", Name: "Breakfast", Price: 20, PriceType: extra.PricePerPerson, Quantity: 2},
	}

	p, err := CalculatePrice(100, 1, 1, 3, extras, 0, 0)
	require.NoError(t, err)

	require.Len(t, p.Extras, 1)
	assert.Equal(t, 120.0, p.Extras[0].Total)
	assert.Equal(t, 120.0, p.ExtrasTotal)
	assert.Equal(t, 220.0, p.TotalPrice)
}

func TestCalculatePricePerBookingExtra(t *testing.T) {
	extras := []PricedExtra{
		{ExtraID: "e1", Name: "Airport pickup", Price: 35.50, PriceType: extra.PricePerBooking, Quantity: 2},
	}

	p, err := CalculatePrice(80, 2, 1, 4, extras, 0, 0)
	require.NoError(t, err)

	assert.Equal(t, 71.0, p.Extras[0].Total)
	assert.Equal(t, 71.0, p.ExtrasTotal)
	assert.Equal(t, 231.0, p.TotalPrice)
}

func TestCalculatePriceExtrasOrderIndependent(t *testing.T) {
	a := PricedExtra{ExtraID: "a", Name: "Breakfast", Price: 12.345, PriceType: extra.PricePerPerson, Quantity: 1}
	b := PricedExtra{ExtraID: "b", Name: "Spa", Price: 7.775, PriceType: extra.PricePerBooking, Quantity: 3}
	c := PricedExtra{ExtraID: "c", Name: "Parking", Price: 9.99, PriceType: extra.PricePerBooking, Quantity: 1}

	first, err := CalculatePrice(99.99, 3, 2, 2, []PricedExtra{a, b, c}, 13, 5)
	require.NoError(t, err)
	second, err := CalculatePrice(99.99, 3, 2, 2, []PricedExtra{c, a, b}, 13, 5)
	require.NoError(t, err)

	assert.Equal(t, first.ExtrasTotal, second.ExtrasTotal)
	assert.Equal(t, first.Tax, second.Tax)
	assert.Equal(t, first.TotalPrice, second.TotalPrice)
}

func TestCalculatePriceQuantityDefaultsToOne(t *testing.T) {
	extras := []PricedExtra{
		{ExtraID: "e1", Name: "Breakfast", Price: 10, PriceType: extra.PricePerBooking, Quantity: 0},
	}

	p, err := CalculatePrice(50, 1, 1, 1, extras, 0, 0)
	require.NoError(t, err)

	assert.Equal(t, 1, p.Extras[0].Quantity)
	assert.Equal(t, 10.0, p.Extras[0].Total)
}

func TestCalculatePriceRejectsOversizedQuantity(t *testing.T) {
	extras := []PricedExtra{
		{ExtraID: "e1", Name: "Breakfast", Price: 10, PriceType: extra.PricePerBooking, Quantity: 101},
	}

	_, err := CalculatePrice(50, 1, 1, 1, extras, 0, 0)
	assert.ErrorIs(t, err, ErrQuantityRange)
}

func TestCalculatePriceRejectsUnknownPriceType(t *testing.T) {
	extras := []PricedExtra{
		{ExtraID: "e1", Name: "Breakfast", Price: 10, PriceType: extra.PriceType("per_night"), Quantity: 1},
	}

	_, err := CalculatePrice(50, 1, 1, 1, extras, 0, 0)
	assert.ErrorIs(t, err, extra.ErrInvalidPriceType)
}

func TestCalculatePriceRoundsEachStep(t *testing.T) {
	// 33.335 * 3 nights * 1 room = 100.005, rounded half away from zero.
	p, err := CalculatePrice(33.335, 3, 1, 1, nil, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 100.01, p.BasePriceTotal)
	assert.Equal(t, 100.01, p.TotalPrice)
}

func TestRound2HalfAwayFromZero(t *testing.T) {
	assert.Equal(t, 0.13, round2(0.125))
	assert.Equal(t, -0.13, round2(-0.125))
	assert.Equal(t, 2.68, round2(2.675000001))
	assert.Equal(t, 100.0, round2(100.004))
}
