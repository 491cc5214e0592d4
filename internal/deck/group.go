package deck

// Group is one display bucket of the main deck.
type Group struct {
	Name    string  `json:"name"`
	Entries []Entry `json:"entries"`
	Total   int     `json:"total"`
}

// Presentation is the grouped view of a main deck. It is derived on demand
// and holds no state of its own.
type Presentation struct {
	groups map[string]Group
}

// Present buckets entries, keeping their relative order inside each bucket.
func Present(main []Entry) Presentation {
	p := Presentation{groups: map[string]Group{}}
	for _, e := range main {
		name := GroupOf(e.Card)
		g := p.groups[name]
		g.Name = name
		g.Entries = append(g.Entries, e)
		g.Total += e.Count
		p.groups[name] = g
	}
	return p
}

// Group returns the named bucket, empty when nothing falls into it.
func (p Presentation) Group(name string) Group {
	if g, ok := p.groups[name]; ok {
		return g
	}
	return Group{Name: name, Entries: []Entry{}}
}

// Groups returns the four display buckets in GroupOrder, including empty ones.
func (p Presentation) Groups() []Group {
	out := make([]Group, 0, len(GroupOrder))
	for _, name := range GroupOrder {
		out = append(out, p.Group(name))
	}
	return out
}
