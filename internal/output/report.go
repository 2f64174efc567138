package output

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/popprobe/population-simulator/internal/domain"
)

// ErrUnsupportedFormat is returned when a requested format has no formatter.
var ErrUnsupportedFormat = errors.New("unsupported format")

// ReportOptions control localized rendering.
type ReportOptions struct {
	Lang     string
	AllYears bool
}

func resolve(format string, opts ReportOptions) (Formatter, error) {
	f := GetFormatterByName(format)
	if f == nil {
		return nil, fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format,
			strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
	}
	if cf, ok := f.(ConsoleFormatter); ok {
		cf.Lang = opts.Lang
		cf.AllYears = opts.AllYears
		return cf, nil
	}
	return Localize(f, opts.Lang), nil
}

// WriteReport renders results in the named format to w.
func WriteReport(w io.Writer, results *domain.ProjectionResult, format string, opts ReportOptions) error {
	f, err := resolve(format, opts)
	if err != nil {
		return err
	}
	data, err := f.Format(results)
	if err != nil {
		return fmt.Errorf("%s formatter: %w", f.Name(), err)
	}
	_, err = w.Write(data)
	return err
}

// GenerateReport writes timestamped report files into dir. The format "all"
// writes the console summary, the yearly CSV and the JSON document.
func GenerateReport(results *domain.ProjectionResult, format, dir string, opts ReportOptions) ([]string, error) {
	formats := []string{format}
	if strings.EqualFold(strings.TrimSpace(format), "all") {
		formats = []string{"console", "csv", "json"}
	}
	var written []string
	for _, name := range formats {
		f, err := resolve(name, opts)
		if err != nil {
			return written, err
		}
		path, err := WriteFormatted(f, results, dir)
		if err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}
