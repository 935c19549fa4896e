package export

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jsp1440/orchid-continuum-sub004/internal/models"
)

var ErrUnsupportedFormat = errors.New("unsupported export format")

type Format string

const (
	FormatICS  Format = "ics"
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

var Formats = []Format{FormatICS, FormatJSON, FormatCSV}

func ParseFormat(value string) (Format, error) {
	format := Format(strings.ToLower(strings.TrimSpace(value)))
	for _, known := range Formats {
		if format == known {
			return format, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, value)
}

func (format Format) ContentType() string {
	switch format {
	case FormatICS:
		return "text/calendar; charset=utf-8"
	case FormatJSON:
		return "application/json"
	case FormatCSV:
		return "text/csv; charset=utf-8"
	}
	return "application/octet-stream"
}

func (format Format) Extension() string {
	return "." + string(format)
}

type Result struct {
	Format Format
	Data   []byte
	Err    error
}

// Render produces a single format.
func Render(calendar *models.CareCalendar, format Format) ([]byte, error) {
	switch format {
	case FormatICS:
		return ICS(calendar)
	case FormatJSON:
		return JSON(calendar)
	case FormatCSV:
		return CSV(calendar)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

// All renders every requested format. Each result carries its own error so a
// failing format never blocks the others.
func All(calendar *models.CareCalendar, formats ...Format) []Result {
	if len(formats) == 0 {
		formats = Formats
	}
	results := make([]Result, 0, len(formats))
	for _, format := range formats {
		data, err := Render(calendar, format)
		results = append(results, Result{Format: format, Data: data, Err: err})
	}
	return results
}
