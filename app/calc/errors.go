package calc

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSource means the request carried neither a path nor raw bytes.
	ErrNoSource = errors.New("no beatmap source")

	// ErrUnsupportedMode covers unknown modes and unsupported conversions.
	ErrUnsupportedMode = errors.New("unsupported mode")

	// ErrInvalidStatistics is the sentinel all score validation failures wrap.
	ErrInvalidStatistics = errors.New("invalid statistics")
)

// StatisticsError describes why a score can't belong to the given beatmap.
type StatisticsError struct {
	Reason string
}

func (e *StatisticsError) Error() string {
	return "invalid statistics: " + e.Reason
}

func (e *StatisticsError) Unwrap() error {
	return ErrInvalidStatistics
}

func newStatisticsError(format string, args ...any) *StatisticsError {
	return &StatisticsError{Reason: fmt.Sprintf(format, args...)}
}
