package dashboard

import (
	"fmt"
	"html/template"
	"io"
	"time"

	coredash "github.com/kilianp07/energydash/core/dashboard"
	"github.com/kilianp07/energydash/core/render"
)

// Frontend is a chart library that can also emit the browser side of a page.
type Frontend interface {
	render.Library
	// Assets lists the script URLs loaded in the page head.
	Assets() []string
	// Element returns the placeholder element for id.
	Element(id string) template.HTML
	// Mount returns the script drawing cfg on the element id.
	Mount(id string, cfg []byte) template.JS
	// Preamble runs once before the charts are mounted.
	Preamble() template.JS
}

// PanelView is one chart slot of the page.
type PanelView struct {
	Key     string
	Title   string
	Element template.HTML
	Script  template.JS
	Message string
}

// Nav links the neighbouring days. Empty Prev/Next hide the links.
type Nav struct {
	Date   string
	Prev   string
	Next   string
	Today  string
	Static bool
}

// PageView is the data of the page template.
type PageView struct {
	Title    string
	Library  string
	Assets   []string
	Preamble template.JS
	Nav      Nav
	Panels   []PanelView
}

const dateLayout = "2006-01-02"

// NewNav builds the navigation around day.
func NewNav(day, today time.Time) Nav {
	return Nav{
		Date:  day.Format(dateLayout),
		Prev:  day.AddDate(0, 0, -1).Format(dateLayout),
		Next:  day.AddDate(0, 0, 1).Format(dateLayout),
		Today: today.Format(dateLayout),
	}
}

// NewPageView turns rendered panels into page data. A chart whose config
// cannot be encoded becomes an error panel.
func NewPageView(title string, front Frontend, nav Nav, panels []coredash.Panel) PageView {
	v := PageView{
		Title:    title,
		Library:  front.Name(),
		Assets:   front.Assets(),
		Preamble: front.Preamble(),
		Nav:      nav,
		Panels:   make([]PanelView, 0, len(panels)),
	}
	for _, p := range panels {
		pv := PanelView{Key: p.Key, Title: p.Title}
		if !p.OK() {
			pv.Message = p.Message
			v.Panels = append(v.Panels, pv)
			continue
		}
		cfg, err := p.Chart.Chart.Config()
		if err != nil {
			pv.Message = fmt.Sprintf("Unable to render %s: %v", p.Title, err)
			v.Panels = append(v.Panels, pv)
			continue
		}
		pv.Element = front.Element(p.Placeholder)
		pv.Script = front.Mount(p.Placeholder, cfg)
		v.Panels = append(v.Panels, pv)
	}
	return v
}

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}} - {{.Nav.Date}}</title>
{{range .Assets}}<script src="{{.}}"></script>
{{end}}<style>
body{font-family:-apple-system,BlinkMacSystemFont,"Segoe UI",Roboto,sans-serif;margin:0 auto;max-width:960px;padding:1rem;color:#292b2c}
nav{display:flex;gap:1rem;align-items:center;margin-bottom:1rem}
.panel{margin-bottom:2rem}
.error{color:#856404;background:#fff3cd;border:1px solid #ffeeba;padding:.75rem}
</style>
</head>
<body data-library="{{.Library}}">
<h1>{{.Title}}</h1>
{{if not .Nav.Static}}<nav>
<a id="prev" href="?date={{.Nav.Prev}}">&larr; {{.Nav.Prev}}</a>
<strong id="current">{{.Nav.Date}}</strong>
<a id="next" href="?date={{.Nav.Next}}">{{.Nav.Next}} &rarr;</a>
<a id="today" href="?date={{.Nav.Today}}">Today</a>
</nav>
{{end}}{{range .Panels}}<section class="panel" id="panel-{{.Key}}">
<h2>{{.Title}}</h2>
{{if .Message}}<p class="error">{{.Message}}</p>{{else}}{{.Element}}{{end}}
</section>
{{end}}<script>
{{.Preamble}}
{{range .Panels}}{{if .Script}}{{.Script}}
{{end}}{{end}}</script>
</body>
</html>
`))

// WritePage renders v as a complete HTML document.
func WritePage(w io.Writer, v PageView) error {
	return pageTmpl.Execute(w, v)
}
