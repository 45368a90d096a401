package output

import (
	"bytes"
	"encoding/csv"

	"github.com/actuclaim/actuclaim/internal/domain"
)

// CSVFormatter writes one Section,Item,Value row per report line.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(dc *domain.DamagesCase) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"Section", "Item", "Value"}); err != nil {
		return nil, err
	}
	for _, s := range Sections(dc) {
		for _, l := range s.Lines {
			if err := w.Write([]string{s.Title, l.Label, l.Raw}); err != nil {
				return nil, err
			}
		}
	}
	for _, n := range dc.Notes {
		if err := w.Write([]string{"Notes", n.Code, n.Message}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
