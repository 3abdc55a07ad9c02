package services

import (
	"fmt"
	"strings"

	"github.com/teambition/rrule-go"
)

// ResolveFrequency maps a named payment cadence to a recurrence option.
// An empty name defaults to monthly. Strings carrying a FREQ= component are
// parsed as raw RFC 5545 RRULEs so leases can configure custom cadences.
func ResolveFrequency(name string) (rrule.ROption, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "monthly":
		return rrule.ROption{Freq: rrule.MONTHLY, Interval: 1}, nil
	case "weekly":
		return rrule.ROption{Freq: rrule.WEEKLY, Interval: 1}, nil
	case "quarterly":
		return rrule.ROption{Freq: rrule.MONTHLY, Interval: 3}, nil
	case "yearly", "annually":
		return rrule.ROption{Freq: rrule.YEARLY, Interval: 1}, nil
	case "daily":
		return rrule.ROption{Freq: rrule.DAILY, Interval: 1}, nil
	}

	if strings.Contains(strings.ToUpper(name), "FREQ=") {
		opt, err := rrule.StrToROption(name)
		if err != nil {
			return rrule.ROption{}, fmt.Errorf("%w: %q", ErrInvalidFrequency, name)
		}
		return *opt, nil
	}

	return rrule.ROption{}, fmt.Errorf("%w: %q", ErrInvalidFrequency, name)
}
