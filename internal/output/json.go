package output

import (
	json "github.com/goccy/go-json"

	"github.com/actuclaim/actuclaim/internal/domain"
)

// JSONFormatter renders the DamagesCase document as indented JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(c *domain.DamagesCase) ([]byte, error) {
	return json.MarshalIndent(c, "", "  ")
}
