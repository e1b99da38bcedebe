package powersupply

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/distatus/battery"
	"github.com/tutu-network/batmon/internal/domain"
)

// DistatusSource reads one battery through github.com/distatus/battery.
// Current is in mWh and ChargeRate in mW, so their ratio is hours.
type DistatusSource struct {
	Index int
	get   func(idx int) (*battery.Battery, error)
}

// NewDistatusSource creates a source for the battery at index.
func NewDistatusSource(index int) *DistatusSource {
	return &DistatusSource{Index: index, get: battery.Get}
}

// Read fetches the battery. Partial errors on fields we don't need are ignored.
func (s *DistatusSource) Read(_ context.Context) (domain.Reading, error) {
	bat, err := s.get(s.Index)
	if bat == nil {
		if err == nil {
			err = domain.ErrNoBattery
		}
		return domain.Reading{}, fmt.Errorf("battery %d: %w", s.Index, err)
	}

	var partial battery.ErrPartial
	if errors.As(err, &partial) && partial.State != nil {
		return domain.Reading{}, fmt.Errorf("battery %d state: %w", s.Index, partial.State)
	}

	r := fromBattery(bat)
	if !r.Discharging() {
		return r, nil
	}
	if errors.As(err, &partial) {
		if partial.Current != nil {
			return r, fmt.Errorf("charge: %w: %v", domain.ErrMissingField, partial.Current)
		}
		if partial.ChargeRate != nil {
			return r, fmt.Errorf("current: %w: %v", domain.ErrMissingField, partial.ChargeRate)
		}
	}
	r.HasCharge, r.HasRate = true, true
	return r, nil
}

func fromBattery(bat *battery.Battery) domain.Reading {
	status := bat.State.String()
	if bat.State.Raw == battery.Discharging {
		status = domain.StatusDischarging
	}
	return domain.Reading{
		Status: status,
		Charge: bat.Current,
		Rate:   bat.ChargeRate,
		Fields: map[string]string{
			"STATUS":      status,
			"CURRENT":     strconv.FormatFloat(bat.Current, 'f', -1, 64),
			"FULL":        strconv.FormatFloat(bat.Full, 'f', -1, 64),
			"CHARGE_RATE": strconv.FormatFloat(bat.ChargeRate, 'f', -1, 64),
		},
	}
}
