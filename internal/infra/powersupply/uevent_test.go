package powersupply

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tutu-network/batmon/internal/domain"
)

const sampleUevent = `POWER_SUPPLY_NAME=BAT0
POWER_SUPPLY_STATUS=Discharging
POWER_SUPPLY_PRESENT=1
POWER_SUPPLY_TECHNOLOGY=Li-ion
POWER_SUPPLY_CYCLE_COUNT=0
POWER_SUPPLY_VOLTAGE_NOW=11850000
POWER_SUPPLY_CURRENT_NOW=1200000
POWER_SUPPLY_CHARGE_FULL=4400000
POWER_SUPPLY_CHARGE_NOW=300000
POWER_SUPPLY_CAPACITY=7
POWER_SUPPLY_MODEL_NAME=45N1011
`

func writeUevent(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "uevent")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		line    string
		key     string
		text    string
		numeric bool
		num     int64
	}{
		{"POWER_SUPPLY_STATUS=Discharging", "STATUS", "Discharging", false, 0},
		{"POWER_SUPPLY_CHARGE_NOW=300000\n", "CHARGE_NOW", "300000", true, 300000},
		{"  POWER_SUPPLY_CAPACITY=7  ", "CAPACITY", "7", true, 7},
		{"POWER_SUPPLY_MODEL_NAME=45N1011", "MODEL_NAME", "45N1011", false, 0},
		{"POWER_SUPPLY_CURRENT_NOW=-1200", "CURRENT_NOW", "-1200", false, 0},
		{"NAME=BAT0", "NAME", "BAT0", false, 0},
		{"POWER_SUPPLY_SERIAL_NUMBER=", "SERIAL_NUMBER", "", false, 0},
		{"POWER_SUPPLY_FOO=a=b", "FOO", "a=b", false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			key, v, err := ParseLine(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.key, key)
			assert.Equal(t, tt.text, v.Text)
			assert.Equal(t, tt.numeric, v.Numeric)
			assert.Equal(t, tt.num, v.Int)
		})
	}
}

func TestParseLine_Malformed(t *testing.T) {
	for _, line := range []string{"garbage", "=value", ""} {
		_, _, err := ParseLine(line)
		assert.ErrorIs(t, err, domain.ErrMalformedLine, "line %q", line)
	}
}

func TestParseUevent(t *testing.T) {
	fields, err := ParseUevent(strings.NewReader(sampleUevent + "\n\n"))
	require.NoError(t, err)
	assert.Len(t, fields, 11)
	assert.Equal(t, "Discharging", fields.Text("STATUS"))

	n, err := fields.Int("CHARGE_NOW")
	require.NoError(t, err)
	assert.EqualValues(t, 300000, n)

	_, err = fields.Int("STATUS")
	assert.ErrorIs(t, err, domain.ErrNotNumeric)
	_, err = fields.Int("ENERGY_NOW")
	assert.ErrorIs(t, err, domain.ErrMissingField)
}

func TestParseUevent_BadLine(t *testing.T) {
	_, err := ParseUevent(strings.NewReader("POWER_SUPPLY_STATUS=Full\nnot a field\n"))
	assert.ErrorIs(t, err, domain.ErrMalformedLine)
}

func TestFields_ReadingDischarging(t *testing.T) {
	fields, err := ParseUevent(strings.NewReader(sampleUevent))
	require.NoError(t, err)

	r, err := fields.Reading()
	require.NoError(t, err)
	assert.True(t, r.Discharging())

	m, err := r.Minutes()
	require.NoError(t, err)
	assert.InDelta(t, 15.0, m, 1e-9)
	assert.Equal(t, domain.SeverityLow, domain.Classify(m))
}

func TestFields_ReadingEnergyFallback(t *testing.T) {
	fields, err := ParseUevent(strings.NewReader(
		"POWER_SUPPLY_STATUS=Discharging\nPOWER_SUPPLY_ENERGY_NOW=2000000\nPOWER_SUPPLY_POWER_NOW=12000000\n"))
	require.NoError(t, err)

	r, err := fields.Reading()
	require.NoError(t, err)
	m, err := r.Minutes()
	require.NoError(t, err)
	assert.InDelta(t, 10.0, m, 1e-9)
}

func TestFields_ReadingSignedCurrent(t *testing.T) {
	fields, err := ParseUevent(strings.NewReader(strings.Replace(sampleUevent, "CURRENT_NOW=1200000", "CURRENT_NOW=-1200000", 1)))
	require.NoError(t, err)
	assert.False(t, fields["CURRENT_NOW"].Numeric)

	r, err := fields.Reading()
	require.NoError(t, err)
	m, err := r.Minutes()
	require.NoError(t, err)
	assert.InDelta(t, 15.0, m, 1e-9)
}

func TestFields_ReadingNegativeChargeRejected(t *testing.T) {
	fields, err := ParseUevent(strings.NewReader("STATUS=Discharging\nCHARGE_NOW=-5000\nCURRENT_NOW=1000\n"))
	require.NoError(t, err)

	r, err := fields.Reading()
	require.NoError(t, err)
	_, err = r.Minutes()
	assert.ErrorIs(t, err, domain.ErrNegativeCharge)
}

func TestFields_ReadingChargingIgnoresValues(t *testing.T) {
	fields, err := ParseUevent(strings.NewReader("POWER_SUPPLY_STATUS=Charging\nPOWER_SUPPLY_CURRENT_NOW=0\n"))
	require.NoError(t, err)

	r, err := fields.Reading()
	require.NoError(t, err)
	assert.False(t, r.Discharging())
}

func TestFields_ReadingMissingStatus(t *testing.T) {
	fields, err := ParseUevent(strings.NewReader("POWER_SUPPLY_CHARGE_NOW=1\n"))
	require.NoError(t, err)
	_, err = fields.Reading()
	assert.ErrorIs(t, err, domain.ErrMissingField)
}

func TestUeventSource_Read(t *testing.T) {
	src := NewUeventSource(writeUevent(t, sampleUevent))
	r, err := src.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Discharging", r.Status)
	assert.Equal(t, "BAT0", r.Fields["NAME"])
}

func TestUeventSource_ZeroCurrent(t *testing.T) {
	src := NewUeventSource(writeUevent(t, strings.Replace(sampleUevent, "CURRENT_NOW=1200000", "CURRENT_NOW=0", 1)))
	r, err := src.Read(context.Background())
	require.NoError(t, err)
	_, err = r.Minutes()
	assert.ErrorIs(t, err, domain.ErrZeroCurrent)
}

func TestUeventSource_MissingFile(t *testing.T) {
	src := NewUeventSource(filepath.Join(t.TempDir(), "nope"))
	_, err := src.Read(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNew(t *testing.T) {
	src, err := New("", "", 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultUeventPath, src.(*UeventSource).Path)

	src, err = New(KindDistatus, "", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, src.(*DistatusSource).Index)

	_, err = New("acpi", "", 0)
	assert.Error(t, err)
}
