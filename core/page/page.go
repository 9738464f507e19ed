// Package page models the set of placeholders a dashboard page exposes.
package page

import (
	"sync"

	"github.com/kilianp07/energydash/core/render"
)

// Surface is a single placeholder. It holds at most one chart.
type Surface struct {
	id    string
	mu    sync.Mutex
	chart render.Chart
	draws int
}

// ID returns the placeholder id.
func (s *Surface) ID() string { return s.id }

// Draw replaces the chart held by the surface.
func (s *Surface) Draw(c render.Chart) {
	s.mu.Lock()
	s.chart = c
	s.draws++
	s.mu.Unlock()
}

// Chart returns the drawn chart, or nil.
func (s *Surface) Chart() render.Chart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.chart
}

// Draws reports how many times the surface was drawn since it was last cleared.
func (s *Surface) Draws() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draws
}

func (s *Surface) clear() {
	s.mu.Lock()
	s.chart = nil
	s.draws = 0
	s.mu.Unlock()
}

// Page is an ordered set of surfaces. It implements render.Canvas.
type Page struct {
	order    []string
	surfaces map[string]*Surface
}

// New declares a page with the given placeholders. Duplicate ids are ignored.
func New(ids ...string) *Page {
	p := &Page{surfaces: make(map[string]*Surface, len(ids))}
	for _, id := range ids {
		if _, ok := p.surfaces[id]; ok {
			continue
		}
		p.order = append(p.order, id)
		p.surfaces[id] = &Surface{id: id}
	}
	return p
}

// Surface implements render.Canvas.
func (p *Page) Surface(id string) (render.Surface, bool) {
	s, ok := p.surfaces[id]
	if !ok {
		return nil, false
	}
	return s, true
}

// Lookup returns the concrete surface for id.
func (p *Page) Lookup(id string) (*Surface, bool) {
	s, ok := p.surfaces[id]
	return s, ok
}

// IDs returns the placeholders in declaration order.
func (p *Page) IDs() []string {
	out := make([]string, len(p.order))
	copy(out, p.order)
	return out
}

// Clear resets one surface. Unknown ids are ignored.
func (p *Page) Clear(id string) {
	if s, ok := p.surfaces[id]; ok {
		s.clear()
	}
}

// ClearAll resets every surface.
func (p *Page) ClearAll() {
	for _, s := range p.surfaces {
		s.clear()
	}
}

// Charts returns the drawn charts keyed by placeholder, in declaration order.
func (p *Page) Charts() []Drawn {
	var out []Drawn
	for _, id := range p.order {
		if c := p.surfaces[id].Chart(); c != nil {
			out = append(out, Drawn{Placeholder: id, Chart: c})
		}
	}
	return out
}

// Drawn pairs a placeholder with its chart.
type Drawn struct {
	Placeholder string
	Chart       render.Chart
}
