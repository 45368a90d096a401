package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/actuclaim/actuclaim/internal/domain"
)

// ErrUnsupportedFormat is returned for report formats with no registered formatter.
var ErrUnsupportedFormat = errors.New("unsupported format")

// Formatter renders a damages case into a report.
type Formatter interface {
	Name() string
	Format(c *domain.DamagesCase) ([]byte, error)
}

// FormatterFunc adapts a function to the Formatter interface.
type FormatterFunc struct {
	ID string
	F  func(c *domain.DamagesCase) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(c *domain.DamagesCase) ([]byte, error) { return f.F(c) }

var formatters = map[string]Formatter{
	"console": ConsoleFormatter{},
	"json":    JSONFormatter{},
	"csv":     CSVFormatter{},
	"html":    HTMLFormatter{},
	"pdf":     PDFFormatter{},
}

var formatAliases = map[string]string{
	"text":    "console",
	"txt":     "console",
	"verbose": "console",
	"htm":     "html",
}

// extensions maps formatter names to the file extension used by WriteFormatted.
var extensions = map[string]string{
	"console": "txt",
	"json":    "json",
	"csv":     "csv",
	"html":    "html",
	"pdf":     "pdf",
}

// NormalizeFormatName lowercases a format name and resolves aliases.
func NormalizeFormatName(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := formatAliases[key]; ok {
		return canonical
	}
	return key
}

// GetFormatterByName returns the formatter registered under name or alias, or nil.
func GetFormatterByName(name string) Formatter {
	return formatters[NormalizeFormatName(name)]
}

// ResolveFormatter is GetFormatterByName with an error for unknown names.
func ResolveFormatter(name string) (Formatter, error) {
	f := GetFormatterByName(name)
	if f == nil {
		return nil, fmt.Errorf("%w: %s (available: %s)", ErrUnsupportedFormat, name, strings.Join(AvailableFormatterNames(), ", "))
	}
	return f, nil
}

// AvailableFormatterNames lists registered formatter names, sorted.
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(formatters))
	for n := range formatters {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases lists accepted aliases, sorted.
func AvailableFormatAliases() []string {
	aliases := make([]string, 0, len(formatAliases))
	for a := range formatAliases {
		aliases = append(aliases, a)
	}
	sort.Strings(aliases)
	return aliases
}

// Extension returns the file extension for a formatter, defaulting to its name.
func Extension(f Formatter) string {
	if ext, ok := extensions[f.Name()]; ok {
		return ext
	}
	return f.Name()
}

// WriteFormatted renders c and writes it to dir as
// damages_report_<client>_<timestamp>.<ext>, returning the file path.
func WriteFormatted(f Formatter, c *domain.DamagesCase, dir, ext string) (string, error) {
	data, err := f.Format(c)
	if err != nil {
		return "", err
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create report directory %s: %w", dir, err)
	}

	stamp := c.CalculatedAt
	if stamp.IsZero() {
		stamp = time.Now()
	}
	filename := filepath.Join(dir, fmt.Sprintf("damages_report_%s_%s.%s", fileSafe(c.ClientName), stamp.Format("20060102_150405"), ext))
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write report %s: %w", filename, err)
	}
	return filename, nil
}

func fileSafe(name string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		case r == ' ' || r == '_':
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "client"
	}
	return b.String()
}
