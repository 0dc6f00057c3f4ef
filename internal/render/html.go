package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed report.gohtml
var templateFS embed.FS

var reportTemplate = template.Must(template.ParseFS(templateFS, "report.gohtml"))

// HTML renders the view as a complete styled page
func HTML(w io.Writer, view *View) error {
	if err := reportTemplate.Execute(w, view); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return nil
}
