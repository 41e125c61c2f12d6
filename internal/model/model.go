package model

import (
	"fmt"
	"strconv"
	"strings"
)

type OrderSide string

const (
	Buy  OrderSide = "buy"
	Sell OrderSide = "sell"
)

func (s OrderSide) Valid() bool {
	return s == Buy || s == Sell
}

type OrderType string

const (
	Market OrderType = "market"
	Limit  OrderType = "limit"
)

func (t OrderType) Valid() bool {
	return t == Market || t == Limit
}

type OrderStatus string

const (
	Pending         OrderStatus = "pending"
	Filled          OrderStatus = "filled"
	PartiallyFilled OrderStatus = "partially_filled"
	Cancelled       OrderStatus = "cancelled"
	Rejected        OrderStatus = "rejected"
)

// Number decodes engine payload fields that arrive either as JSON numbers
// or as decimal strings. All values are in the canonical unit.
type Number float64

func (n *Number) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*n = 0
		return nil
	}
	s = strings.Trim(s, `"`)
	if s == "" {
		*n = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("%w: can't parse number %q", err, s)
	}
	*n = Number(v)
	return nil
}

func (n Number) Float() float64 {
	return float64(n)
}

// AmountMode distinguishes the two draft order amount units.
type AmountMode int

const (
	AmountBase AmountMode = iota
	AmountDisplay
)

// Amount is a draft order quantity in exactly one unit: base asset units or
// display currency units. The zero value is a zero base-asset amount.
type Amount struct {
	mode     AmountMode
	value    float64
	currency string
}

func BaseAmount(v float64) Amount {
	return Amount{mode: AmountBase, value: v}
}

func DisplayAmount(v float64, currency string) Amount {
	return Amount{mode: AmountDisplay, value: v, currency: currency}
}

func (a Amount) Mode() AmountMode { return a.mode }
func (a Amount) Value() float64   { return a.value }
func (a Amount) Currency() string { return a.currency }
