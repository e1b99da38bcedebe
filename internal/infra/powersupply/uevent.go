// Package powersupply reads battery telemetry and turns it into a domain.Reading.
// The default source is the sysfs uevent file; distatus/battery covers hosts
// without sysfs.
package powersupply

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tutu-network/batmon/internal/domain"
)

// KeyPrefix is stripped from every uevent key.
const KeyPrefix = "POWER_SUPPLY_"

// Value is a uevent value. Purely numeric values are parsed as integers.
type Value struct {
	Text    string
	Int     int64
	Numeric bool
}

// Fields is the parsed contents of one uevent file.
type Fields map[string]Value

// ParseLine parses a single KEY=VALUE line.
func ParseLine(line string) (string, Value, error) {
	line = strings.TrimSpace(line)
	key, raw, ok := strings.Cut(line, "=")
	if !ok || key == "" {
		return "", Value{}, fmt.Errorf("%w: %q", domain.ErrMalformedLine, line)
	}
	key = strings.TrimPrefix(key, KeyPrefix)

	v := Value{Text: raw}
	if isDigits(raw) {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return "", Value{}, fmt.Errorf("%w: %s: %v", domain.ErrMalformedLine, key, err)
		}
		v.Int = n
		v.Numeric = true
	}
	return key, v, nil
}

// ParseUevent parses a whole uevent stream. Blank lines are skipped.
func ParseUevent(r io.Reader) (Fields, error) {
	fields := make(Fields)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) == "" {
			continue
		}
		key, v, err := ParseLine(scanner.Text())
		if err != nil {
			return nil, err
		}
		fields[key] = v
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan uevent: %w", err)
	}
	return fields, nil
}

// Int returns a numeric field. Signed values, which some drivers report
// for current while discharging, are accepted here too.
func (f Fields) Int(key string) (int64, error) {
	v, ok := f[key]
	if !ok {
		return 0, fmt.Errorf("%s: %w", key, domain.ErrMissingField)
	}
	if v.Numeric {
		return v.Int, nil
	}
	n, err := strconv.ParseInt(v.Text, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s=%q: %w", key, v.Text, domain.ErrNotNumeric)
	}
	return n, nil
}

// Text returns the raw value of a field, or "" when absent.
func (f Fields) Text(key string) string {
	return f[key].Text
}

// Raw flattens the fields for diagnostics.
func (f Fields) Raw() map[string]string {
	out := make(map[string]string, len(f))
	for k, v := range f {
		out[k] = v.Text
	}
	return out
}

// Reading builds a domain reading. Charge/current pairs are preferred;
// drivers that only report energy fall back to ENERGY_NOW/POWER_NOW.
func (f Fields) Reading() (domain.Reading, error) {
	r := domain.Reading{
		Status: f.Text("STATUS"),
		Fields: f.Raw(),
	}
	if _, ok := f["STATUS"]; !ok {
		return r, fmt.Errorf("STATUS: %w", domain.ErrMissingField)
	}
	if !r.Discharging() {
		return r, nil
	}

	chargeKey, rateKey := "CHARGE_NOW", "CURRENT_NOW"
	if _, ok := f[chargeKey]; !ok {
		if _, ok := f["ENERGY_NOW"]; ok {
			chargeKey, rateKey = "ENERGY_NOW", "POWER_NOW"
		}
	}

	charge, err := f.Int(chargeKey)
	if err != nil {
		return r, err
	}
	rate, err := f.Int(rateKey)
	if err != nil {
		return r, err
	}
	r.Charge, r.HasCharge = float64(charge), true
	r.Rate, r.HasRate = float64(rate), true
	return r, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
