package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/actuclaim/actuclaim/internal/domain"
	"github.com/actuclaim/actuclaim/pkg/money"
)

// HTMLFormatter produces a standalone HTML report.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr": money.Format,
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(c *domain.DamagesCase) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		*domain.DamagesCase
		Province string
		Sections []Section
	}{c, c.Jurisdiction.DisplayName(), Sections(c)}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
