// Package settings renders read-only settings pages. A page is a list of
// groups, and each group is a header, an enabled/disabled badge and an
// Option | Value table.
package settings

type Row struct {
	Name        string
	Description string
	Value       Value
}

type Group struct {
	// ID is used as the HTML anchor and as the fragment path segment.
	ID          string
	Title       string
	Description string
	DocsHref    string
	Enabled     bool
	Rows        []Row
}

type Page struct {
	Title  string
	Groups []Group
}

// NewGroup builds a group that is enabled iff the primary value is non-empty.
func NewGroup(id, title, description, docsHref string, primary Value, rows []Row) Group {
	return Group{
		ID:          id,
		Title:       title,
		Description: description,
		DocsHref:    docsHref,
		Enabled:     !primary.IsZero(),
		Rows:        rows,
	}
}

// BadgeLabel is the text shown in the group badge.
func (g Group) BadgeLabel() string {
	if g.Enabled {
		return "Enabled"
	}
	return "Disabled"
}

// Group returns the group with the given ID.
func (p Page) Group(id string) (Group, bool) {
	for _, g := range p.Groups {
		if g.ID == id {
			return g, true
		}
	}
	return Group{}, false
}
