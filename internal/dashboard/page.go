package dashboard

import (
	"bytes"
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"shelter-dashboard/internal/domain/rescue"
)

//go:embed templates/dashboard.html
var templatesFS embed.FS

type PageOptions struct {
	Title    string
	Author   string
	LogoPath string
}

// Page renderiza el dashboard completo (dropdown, tabla, torta y mapa).
type Page struct {
	tmpl   *template.Template
	title  string
	author string
	logo   template.URL
}

func NewPage(opts PageOptions) (*Page, error) {
	tmpl, err := template.New("dashboard.html").
		Funcs(template.FuncMap{"inc": func(n int) int { return n + 1 }}).
		ParseFS(templatesFS, "templates/dashboard.html")
	if err != nil {
		return nil, fmt.Errorf("parse dashboard template: %w", err)
	}

	p := &Page{
		tmpl:   tmpl,
		title:  opts.Title,
		author: opts.Author,
	}
	if strings.TrimSpace(opts.LogoPath) != "" {
		logo, err := LoadLogo(opts.LogoPath)
		if err != nil {
			return nil, err
		}
		p.logo = logo
	}
	return p, nil
}

// LoadLogo lee una imagen y la devuelve como data URI base64.
func LoadLogo(path string) (template.URL, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read logo: %w", err)
	}

	ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	if ct == "" {
		ct = http.DetectContentType(raw)
	}
	if !strings.HasPrefix(ct, "image/") {
		return "", fmt.Errorf("logo %s is not an image (%s)", path, ct)
	}

	return template.URL("data:" + ct + ";base64," + base64.StdEncoding.EncodeToString(raw)), nil
}

type filterOption struct {
	Label    string
	Selected bool
}

type headerLink struct {
	Name   string
	Href   string
	Active bool
	Desc   bool
}

type tableRow struct {
	Cells    []string
	Href     string
	Selected bool
}

type pageData struct {
	Title   string
	Author  string
	Logo    template.URL
	Filters []filterOption
	State   Rendered
	Headers []headerLink
	Rows    []tableRow
	Prev    string
	Next    string
}

func (p *Page) Render(w io.Writer, state Rendered) error {
	t := state.Table

	data := pageData{
		Title:  p.title,
		Author: p.author,
		Logo:   p.logo,
		State:  state,
	}

	for _, l := range rescue.Labels() {
		data.Filters = append(data.Filters, filterOption{Label: l, Selected: l == state.Filter})
	}

	for _, c := range t.Columns {
		desc := false
		if c == t.SortColumn {
			desc = !t.SortDesc
		}
		data.Headers = append(data.Headers, headerLink{
			Name:   c,
			Href:   stateHref(state.Filter, c, desc, 0, -1),
			Active: c == t.SortColumn,
			Desc:   c == t.SortColumn && t.SortDesc,
		})
	}

	for i, cells := range t.Rows {
		data.Rows = append(data.Rows, tableRow{
			Cells:    cells,
			Href:     stateHref(state.Filter, t.SortColumn, t.SortDesc, t.Page, i),
			Selected: i == t.Selected,
		})
	}

	if t.Page > 0 {
		data.Prev = stateHref(state.Filter, t.SortColumn, t.SortDesc, t.Page-1, -1)
	}
	if t.Page < t.PageCount-1 {
		data.Next = stateHref(state.Filter, t.SortColumn, t.SortDesc, t.Page+1, -1)
	}

	var buf bytes.Buffer
	if err := p.tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("render dashboard: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// stateHref arma el query string de la página; row < 0 lo omite.
func stateHref(filter, sortCol string, desc bool, page, row int) string {
	q := url.Values{}
	if filter != "" {
		q.Set("filter", filter)
	}
	if sortCol != "" {
		q.Set("sort", sortCol)
		if desc {
			q.Set("desc", "1")
		}
	}
	q.Set("page", strconv.Itoa(page))
	if row >= 0 {
		q.Set("row", strconv.Itoa(row))
	}
	return "?" + q.Encode()
}
