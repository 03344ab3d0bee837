package pricing

import (
	"errors"
	"fmt"

	"stay-calendar/internal/domain/calendar"
	"stay-calendar/internal/domain/property"
)

var (
	ErrInvalidGuestCount = errors.New("guest count must be at least 1")
	ErrInvalidRounding   = errors.New("rounding must be floor or nearest")
	ErrAmountOverflow    = errors.New("quote total exceeds the supported amount")
)

const bpsDenominator = 10_000

type Rounding string

const (
	RoundFloor   Rounding = "floor"
	RoundNearest Rounding = "nearest"
)

func ParseRounding(s string) (Rounding, error) {
	switch Rounding(s) {
	case RoundFloor, RoundNearest:
		return Rounding(s), nil
	case "":
		return RoundFloor, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidRounding, s)
	}
}

// apply returns amount*bps/10000 rounded per r. Amounts are never negative.
// The quotient and remainder are scaled separately so the product never has
// to fit in int64 on its own.
func (r Rounding) apply(amount, bps int64) (int64, error) {
	whole, err := mulAmount(amount/bpsDenominator, bps)
	if err != nil {
		return 0, err
	}
	rem, err := mulAmount(amount%bpsDenominator, bps)
	if err != nil {
		return 0, err
	}
	if r == RoundNearest {
		if rem, err = addAmount(rem, bpsDenominator/2); err != nil {
			return 0, err
		}
	}
	return addAmount(whole, rem/bpsDenominator)
}

func mulAmount(a, b int64) (int64, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	p := a * b
	if p/b != a {
		return 0, ErrAmountOverflow
	}
	return p, nil
}

func addAmount(a, b int64) (int64, error) {
	sum := a + b
	if sum < a {
		return 0, ErrAmountOverflow
	}
	return sum, nil
}

type Night struct {
	Date      calendar.Date
	Price     int64
	IsWeekend bool
	Source    calendar.PriceSource
}

type Quote struct {
	Nights        []Night
	NightCount    int
	BaseTotal     int64
	ExtraGuestFee int64
	ServiceFee    int64
	Tax           int64
	GrandTotal    int64
	Currency      string
}

// Calculator is a pure function of its inputs; quotes are never cached.
type Calculator struct {
	ServiceFeeBps int64
	TaxBps        int64
	Rounding      Rounding
}

func NewDefaultCalculator() *Calculator {
	return &Calculator{
		ServiceFeeBps: 800,
		TaxBps:        1800,
		Rounding:      RoundFloor,
	}
}

func (c *Calculator) Quote(rates property.Rates, cal *calendar.Calendar, stay calendar.DateRange, guests int) (Quote, error) {
	if guests < 1 {
		return Quote{}, ErrInvalidGuestCount
	}
	if err := calendar.ValidateStay(stay); err != nil {
		return Quote{}, err
	}

	q := Quote{Currency: rates.Currency}
	for _, d := range stay.Dates() {
		price, source := cal.EffectivePrice(d, rates.WeekdayPrice, rates.WeekendPrice)
		q.Nights = append(q.Nights, Night{
			Date:      d,
			Price:     price,
			IsWeekend: d.IsWeekend(),
			Source:    source,
		})
		total, err := addAmount(q.BaseTotal, price)
		if err != nil {
			return Quote{}, err
		}
		q.BaseTotal = total
	}
	q.NightCount = len(q.Nights)

	baseGuests := rates.BaseGuests
	if baseGuests < 1 {
		baseGuests = 1
	}
	if extra := guests - baseGuests; extra > 0 {
		perNight, err := mulAmount(int64(extra), rates.ExtraGuestPrice)
		if err != nil {
			return Quote{}, err
		}
		if q.ExtraGuestFee, err = mulAmount(perNight, int64(q.NightCount)); err != nil {
			return Quote{}, err
		}
	}

	subtotal, err := addAmount(q.BaseTotal, q.ExtraGuestFee)
	if err != nil {
		return Quote{}, err
	}
	if q.ServiceFee, err = c.Rounding.apply(subtotal, c.ServiceFeeBps); err != nil {
		return Quote{}, err
	}
	beforeTax, err := addAmount(subtotal, q.ServiceFee)
	if err != nil {
		return Quote{}, err
	}
	if q.Tax, err = c.Rounding.apply(beforeTax, c.TaxBps); err != nil {
		return Quote{}, err
	}
	if q.GrandTotal, err = addAmount(beforeTax, q.Tax); err != nil {
		return Quote{}, err
	}
	return q, nil
}
