package catalog

import (
	"fmt"
	"net/url"
)

// Scope separates campus organizations, which are relevance-ranked, from
// the external pool, which is sampled without scoring.
type Scope string

const (
	Campus   Scope = "campus"
	External Scope = "external"
)

// Organization is one entry in the static catalog. Keywords are drawn from
// the controlled vocabulary.
type Organization struct {
	Name        string   `json:"name"`
	URL         string   `json:"url"`
	Scope       Scope    `json:"scope"`
	Keywords    []string `json:"keywords"`
	Description string   `json:"description"`
}

// Catalog holds the organization lists, loaded once at startup and
// read-only afterwards.
type Catalog struct {
	campus   []Organization
	external []Organization
}

// New builds a catalog from a flat organization list, splitting by scope
// and preserving input order. Organizations with keywords outside the
// vocabulary are rejected.
func New(orgs []Organization) (*Catalog, error) {
	c := &Catalog{}
	for i, org := range orgs {
		for _, kw := range org.Keywords {
			if !InVocabulary(kw) {
				return nil, fmt.Errorf("organization %q (entry %d): keyword %q not in vocabulary", org.Name, i, kw)
			}
		}
		if org.URL == "" && org.Scope == External {
			org.URL = searchURL(org.Name)
		}
		switch org.Scope {
		case Campus:
			c.campus = append(c.campus, org)
		case External:
			c.external = append(c.external, org)
		default:
			return nil, fmt.Errorf("organization %q (entry %d): unknown scope %q", org.Name, i, org.Scope)
		}
	}
	return c, nil
}

// InScope returns the campus organizations in catalog order.
func (c *Catalog) InScope() []Organization {
	out := make([]Organization, len(c.campus))
	copy(out, c.campus)
	return out
}

// ExternalPool returns the external organizations in catalog order.
func (c *Catalog) ExternalPool() []Organization {
	out := make([]Organization, len(c.external))
	copy(out, c.external)
	return out
}

// searchURL synthesizes a search link for organizations without a homepage.
func searchURL(name string) string {
	return "https://www.google.com/search?q=" + url.QueryEscape(name)
}

// Default is the built-in catalog used when no CSV source is configured.
func Default() *Catalog {
	c, err := New(defaultOrganizations)
	if err != nil {
		// The built-in list is validated by tests; a failure here is a
		// programming error.
		panic(err)
	}
	return c
}

var defaultOrganizations = []Organization{
	{
		Name:        "Hiking Club",
		URL:         "https://www.bu.edu/clubs/hiking",
		Scope:       Campus,
		Keywords:    []string{"Outdoors", "Travel", "Health"},
		Description: "Weekly hikes and outdoor adventures around New England with other students.",
	},
	{
		Name:        "Developers Club",
		URL:         "https://www.bu.edu/clubs/developers",
		Scope:       Campus,
		Keywords:    []string{"Technology", "Entrepreneurship"},
		Description: "Student-run community for software projects, hackathons, and tech talks.",
	},
	{
		Name:        "Art & Design Collective",
		URL:         "https://www.bu.edu/clubs/art-design",
		Scope:       Campus,
		Keywords:    []string{"Arts", "Design", "Media"},
		Description: "Collaborative space for students interested in visual arts, design, and creative showcases.",
	},
	{
		Name:        "Community Outreach Network",
		URL:         "https://www.bu.edu/clubs/outreach",
		Scope:       Campus,
		Keywords:    []string{"Community Service", "Volunteering", "Social Impact"},
		Description: "Organizes volunteering days and service projects with local nonprofits.",
	},
	{
		Name:        "Debate Society",
		URL:         "https://www.bu.edu/clubs/debate",
		Scope:       Campus,
		Keywords:    []string{"Debate", "Writing", "Culture"},
		Description: "Competitive parliamentary debate and public speaking workshops.",
	},
	{
		Name:        "Sustainability Collective",
		URL:         "https://www.bu.edu/clubs/sustainability",
		Scope:       Campus,
		Keywords:    []string{"Sustainability", "Science", "Social Impact"},
		Description: "Campus initiatives for climate action, recycling, and sustainable living.",
	},
	{
		Name:        "Esports & Gaming Society",
		URL:         "https://www.bu.edu/clubs/esports",
		Scope:       Campus,
		Keywords:    []string{"Gaming", "Technology", "Sports"},
		Description: "Casual and competitive gaming nights, tournaments, and game design jams.",
	},
	{
		Name:        "Global Music Ensemble",
		URL:         "https://www.bu.edu/clubs/music",
		Scope:       Campus,
		Keywords:    []string{"Music", "Culture", "Arts"},
		Description: "Performance group exploring musical traditions from around the world.",
	},
	{
		Name:        "Boston Climate Action Network",
		Scope:       External,
		Keywords:    []string{"Sustainability", "Social Impact", "Community Service"},
		Description: "Local group focused on climate policy, advocacy, and community organizing in Boston.",
	},
	{
		Name:        "Tech for Social Good Boston",
		Scope:       External,
		Keywords:    []string{"Technology", "Social Impact", "Volunteering"},
		Description: "Meetup group for using technology and data to tackle local social challenges.",
	},
	{
		Name:        "Boston Street Art Walks",
		Scope:       External,
		Keywords:    []string{"Arts", "Culture", "Travel"},
		Description: "Guided walks and community projects around Boston's mural and street art scene.",
	},
	{
		Name:        "Greater Boston Startup Circle",
		Scope:       External,
		Keywords:    []string{"Entrepreneurship", "Technology", "Finance"},
		Description: "Founders and students sharing pitches, funding advice, and startup jobs.",
	},
	{
		Name:        "Charles River Cleanup Crew",
		Scope:       External,
		Keywords:    []string{"Volunteering", "Outdoors", "Sustainability"},
		Description: "Monthly volunteer cleanups along the Charles River Esplanade.",
	},
	{
		Name:        "Boston Writers Meetup",
		Scope:       External,
		Keywords:    []string{"Writing", "Media", "Culture"},
		Description: "Open critique circles and writing sprints for fiction and nonfiction writers.",
	},
}
