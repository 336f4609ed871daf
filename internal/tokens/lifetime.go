package tokens

import (
	"fmt"
	"time"
)

// Unit is the granularity a token lifetime is expressed in.
type Unit string

const (
	Seconds Unit = "seconds"
	Minutes Unit = "minutes"
	Hours   Unit = "hours"
	Days    Unit = "days"
)

// Lifetime is an integer amount of a unit. Conversion to a duration is exact;
// there is no rounding.
type Lifetime struct {
	Amount int
	Unit   Unit
}

func (l Lifetime) Duration() time.Duration {
	d := time.Duration(l.Amount)
	switch l.Unit {
	case Seconds:
		return d * time.Second
	case Minutes:
		return d * time.Minute
	case Hours:
		return d * time.Hour
	case Days:
		return d * 24 * time.Hour
	}
	return 0
}

// ParseUnit maps a config string to a Unit.
func ParseUnit(s string) (Unit, error) {
	switch Unit(s) {
	case Seconds, Minutes, Hours, Days:
		return Unit(s), nil
	}
	return "", fmt.Errorf("unknown lifetime unit %q", s)
}

// MustLifetime builds a Lifetime from config values, failing loudly on a bad
// unit string (a deployment error).
func MustLifetime(amount int, unit string) Lifetime {
	u, err := ParseUnit(unit)
	if err != nil {
		panic(err)
	}
	return Lifetime{Amount: amount, Unit: u}
}
