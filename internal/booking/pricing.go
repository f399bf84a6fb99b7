package booking

import (
	"fmt"
	"math"

	"github.com/dipika-maharjan/tripwise-backend/internal/extra"
)

const maxExtraQuantity = 100

// PricedExtra is one extra as input to the price calculation: the unit
// price and price type are the values snapshotted for the booking.
type PricedExtra struct {
	ExtraID   string
	Name      string
	Price     float64
	PriceType extra.PriceType
	Quantity  int
}

// ExtraLine is the computed total for one extra.
type ExtraLine struct {
	ExtraID  string
	Name     string
	Quantity int
	Total    float64
}

// Breakdown itemizes the full price of a booking.
type Breakdown struct {
	RoomType       string
	Nights         int
	Rooms          int
	BasePriceTotal float64
	Extras         []ExtraLine
	ExtrasTotal    float64
	Tax            float64
	ServiceFee     float64
	TotalPrice     float64
}

// round2 rounds half away from zero to two decimal places. Applied at
// every intermediate step so that summing already-rounded components is
// order-independent.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// CalculatePrice computes the itemized price of a stay. Pure function,
// no I/O. A non-positive extra quantity defaults to 1; a quantity above
// 100 is rejected.
func CalculatePrice(ratePerNight float64, nights, rooms, guests int, extras []PricedExtra, taxPercent, serviceFee float64) (*Breakdown, error) {
	basePriceTotal := round2(ratePerNight * float64(nights) * float64(rooms))

	lines := make([]ExtraLine, 0, len(extras))
	var extrasSum float64
	for _, e := range extras {
		quantity := e.Quantity
		if quantity <= 0 {
			quantity = 1
		}
		if quantity > maxExtraQuantity {
			return nil, ErrQuantityRange
		}

		var total float64
		switch e.PriceType {
		case extra.PricePerPerson:
			total = round2(e.Price * float64(guests) * float64(quantity))
		case extra.PricePerBooking:
			total = round2(e.Price * float64(quantity))
		default:
			return nil, fmt.Errorf("unknown price type %q: %w", e.PriceType, extra.ErrInvalidPriceType)
		}

		lines = append(lines, ExtraLine{
			ExtraID:  e.ExtraID,
			Name:     e.Name,
			Quantity: quantity,
			Total:    total,
		})
		extrasSum += total
	}

	extrasTotal := round2(extrasSum)
	tax := round2((basePriceTotal + extrasTotal) * taxPercent / 100)
	fee := round2(serviceFee)
	total := round2(basePriceTotal + extrasTotal + tax + fee)

	return &Breakdown{
		Nights:         nights,
		Rooms:          rooms,
		BasePriceTotal: basePriceTotal,
		Extras:         lines,
		ExtrasTotal:    extrasTotal,
		Tax:            tax,
		ServiceFee:     fee,
		TotalPrice:     total,
	}, nil
}
