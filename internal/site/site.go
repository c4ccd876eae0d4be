// Package site renders resolved note HTML into full pages using the embedded
// templates.
package site

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

// IndexEntry is one row on the generated front page.
type IndexEntry struct {
	Title string
	Link  string
}

// Renderer wraps the parsed page and index templates with the configured
// site title.
type Renderer struct {
	siteTitle string
	templates *template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer(siteTitle string) (*Renderer, error) {
	tmpl, err := template.New("site").Option("missingkey=error").ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{siteTitle: siteTitle, templates: tmpl}, nil
}

type pageData struct {
	PageTitle       string
	SiteTitle       string
	CreatedISO      string
	CreatedHuman    string
	UpdatedISO      string
	UpdatedHuman    string
	ShowCreatedDate bool
	Body            template.HTML
}

type indexData struct {
	PageTitle string
	SiteTitle string
	Posts     []IndexEntry
}

func humanDate(t time.Time) string {
	return t.Format("January 2006")
}

func isoDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// RenderPage wraps a note's body HTML in the page template. The body has
// already been through the markdown renderer and is trusted as-is; everything
// else is escaped by the template engine.
func (r *Renderer) RenderPage(title, bodyHTML string, created, updated time.Time, showCreatedDate bool) (string, error) {
	var buf bytes.Buffer
	err := r.templates.ExecuteTemplate(&buf, "page.html", pageData{
		PageTitle:       title,
		SiteTitle:       r.siteTitle,
		CreatedISO:      isoDate(created),
		CreatedHuman:    humanDate(created),
		UpdatedISO:      isoDate(updated),
		UpdatedHuman:    humanDate(updated),
		ShowCreatedDate: showCreatedDate,
		Body:            template.HTML(bodyHTML),
	})
	if err != nil {
		return "", fmt.Errorf("render page %q: %w", title, err)
	}
	return buf.String(), nil
}

// RenderIndex renders the front page listing. Entries are emitted in the
// order given.
func (r *Renderer) RenderIndex(entries []IndexEntry) (string, error) {
	var buf bytes.Buffer
	err := r.templates.ExecuteTemplate(&buf, "index.html", indexData{
		PageTitle: "Home",
		SiteTitle: r.siteTitle,
		Posts:     entries,
	})
	if err != nil {
		return "", fmt.Errorf("render index: %w", err)
	}
	return buf.String(), nil
}
