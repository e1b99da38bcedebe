package powersupply

import (
	"context"
	"fmt"
	"os"

	"github.com/tutu-network/batmon/internal/domain"
)

// DefaultUeventPath is the first battery on Linux.
const DefaultUeventPath = "/sys/class/power_supply/BAT0/uevent"

// UeventSource reads a sysfs power_supply uevent file.
type UeventSource struct {
	Path string
}

// NewUeventSource creates a uevent source. Empty path means DefaultUeventPath.
func NewUeventSource(path string) *UeventSource {
	if path == "" {
		path = DefaultUeventPath
	}
	return &UeventSource{Path: path}
}

// Read parses the uevent file. A missing file or bad line is returned as is.
func (s *UeventSource) Read(_ context.Context) (domain.Reading, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return domain.Reading{}, fmt.Errorf("open battery file: %w", err)
	}
	defer f.Close()

	fields, err := ParseUevent(f)
	if err != nil {
		return domain.Reading{}, fmt.Errorf("parse %s: %w", s.Path, err)
	}
	return fields.Reading()
}

// Kind names a configured telemetry source.
type Kind string

const (
	KindUevent   Kind = "uevent"
	KindDistatus Kind = "distatus"
)

// New builds the source named by kind.
func New(kind Kind, ueventPath string, index int) (domain.ReadingSource, error) {
	switch kind {
	case "", KindUevent:
		return NewUeventSource(ueventPath), nil
	case KindDistatus:
		return NewDistatusSource(index), nil
	default:
		return nil, fmt.Errorf("unknown battery source %q (want uevent or distatus)", kind)
	}
}
