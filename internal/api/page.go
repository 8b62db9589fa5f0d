package api

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"

	apperrors "github.com/socialchef/sous/internal/errors"
	"github.com/socialchef/sous/internal/formatter"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = template.Must(template.New("").Funcs(template.FuncMap{
	"cell": formatCell,
}).ParseFS(templateFS, "templates/*.html"))

type pageData struct {
	Food        string
	Recipe      string
	Ingredients formatter.Table
	Error       *apperrors.AppError
}

func renderPage(w io.Writer, data pageData) error {
	return pageTemplates.ExecuteTemplate(w, "index.html", data)
}

// formatCell renders a table cell. Missing cells are blank and whole
// numbers lose their trailing ".0".
func formatCell(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	case float64:
		return fmt.Sprintf("%g", val)
	default:
		return fmt.Sprint(val)
	}
}
