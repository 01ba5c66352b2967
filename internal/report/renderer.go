package report

import (
    "embed"
    "fmt"
    "html/template"
    "strings"

    "github.com/HamedShams/jira-digest/internal/domain"
)

//go:embed templates
var templateFS embed.FS

type Renderer struct {
    tmpl *template.Template
}

func NewRenderer() (*Renderer, error) {
    tmpl, err := template.ParseFS(templateFS, "templates/report.tmpl")
    if err != nil {
        return nil, fmt.Errorf("parse report template: %w", err)
    }
    return &Renderer{tmpl: tmpl}, nil
}

type section struct {
    Title  string
    Issues []domain.Issue
}

// Render turns a Report into a self-contained HTML document. Identical reports
// render to byte-identical documents. Empty categories still get their section
// with a zero count and an empty list.
func (r *Renderer) Render(rep domain.Report) (string, error) {
    data := struct {
        Counts   domain.Counts
        Sections []section
    }{
        Counts: rep.Counts,
        Sections: []section{
            {Title: "Created issues", Issues: rep.Created},
            {Title: "Resolved issues", Issues: rep.Resolved},
            {Title: "Open issues", Issues: rep.Open},
        },
    }
    var b strings.Builder
    if err := r.tmpl.Execute(&b, data); err != nil {
        return "", fmt.Errorf("render report: %w", err)
    }
    return b.String(), nil
}
