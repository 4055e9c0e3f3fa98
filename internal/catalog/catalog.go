package catalog

import (
	_ "embed"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Program ids; book-demo and enquire forms accept exactly these
const (
	ProgramOneOnOne   = "1-on-1"
	ProgramSmallGroup = "small-group"
	ProgramBigGroup   = "big-group"
	ProgramLeadership = "leadership"
)

// ProgramIDs lists the program ids in display order
var ProgramIDs = []string{ProgramOneOnOne, ProgramSmallGroup, ProgramBigGroup, ProgramLeadership}

// Program is one pricing tier
type Program struct {
	ID            string   `yaml:"id" json:"id"`
	Title         string   `yaml:"title" json:"title"`
	Subtitle      string   `yaml:"subtitle" json:"subtitle"`
	Price         string   `yaml:"price" json:"price"`
	Period        string   `yaml:"period" json:"period"`
	OriginalPrice string   `yaml:"originalPrice" json:"originalPrice,omitempty"`
	Duration      string   `yaml:"duration" json:"duration"`
	Frequency     string   `yaml:"frequency" json:"frequency"`
	SessionLength string   `yaml:"sessionLength" json:"sessionLength"`
	GroupSize     string   `yaml:"groupSize" json:"groupSize"`
	Timings       string   `yaml:"timings" json:"timings"`
	Flexibility   string   `yaml:"flexibility" json:"flexibility"`
	Features      []string `yaml:"features" json:"features"`
	BestFor       string   `yaml:"bestFor" json:"bestFor"`
	Popular       bool     `yaml:"popular" json:"popular"`
}

// SEO holds page metadata for a course page
type SEO struct {
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	Image       string `yaml:"image" json:"image"`
}

// Module is one syllabus block of a course
type Module struct {
	Icon  string `yaml:"icon" json:"icon"`
	Title string `yaml:"title" json:"title"`
	Desc  string `yaml:"desc" json:"desc"`
}

// Course is a course landing page; MappedProgram is the program a demo booking preselects
type Course struct {
	Slug          string   `yaml:"slug" json:"slug"`
	Title         string   `yaml:"title" json:"title"`
	Subtitle      string   `yaml:"subtitle" json:"subtitle"`
	SEO           SEO      `yaml:"seo" json:"seo"`
	MappedProgram string   `yaml:"mappedProgram" json:"mappedProgram"`
	WhoFor        []string `yaml:"whoFor" json:"whoFor"`
	Outcomes      []string `yaml:"outcomes" json:"outcomes"`
	Modules       []Module `yaml:"modules" json:"modules"`
}

// DemoLink is the book-demo URL that carries the course's program and slug as attribution
func (c Course) DemoLink() string {
	q := url.Values{}
	q.Set("program", c.MappedProgram)
	q.Set("ref", c.Slug)
	return "/book-demo?" + q.Encode()
}

// CorporateModule is one block of the corporate training offering
type CorporateModule struct {
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
}

// CorporateTraining is the for-corporates page content
type CorporateTraining struct {
	Modules  []CorporateModule `yaml:"modules" json:"modules"`
	Outcomes []string          `yaml:"outcomes" json:"outcomes"`
}

// Contact holds the WhatsApp contact details
type Contact struct {
	WhatsAppPhone   string `yaml:"whatsappPhone" json:"whatsappPhone"`
	WhatsAppMessage string `yaml:"whatsappMessage" json:"whatsappMessage"`
}

// WhatsAppURL is the wa.me deep link with the prefilled message
func (c Contact) WhatsAppURL() string {
	// wa.me shows a literal plus for the form encoding of a space
	text := strings.ReplaceAll(url.QueryEscape(c.WhatsAppMessage), "+", "%20")
	return fmt.Sprintf("https://wa.me/%s?text=%s", c.WhatsAppPhone, text)
}

// Role is an open position on the careers page; applications go through the enquire form
type Role struct {
	Title       string   `yaml:"title" json:"title"`
	Tags        []string `yaml:"tags" json:"tags"`
	Description string   `yaml:"description" json:"description"`
}

// Testimonial is a learner story; Program is a program id
type Testimonial struct {
	Name    string `yaml:"name" json:"name"`
	Role    string `yaml:"role" json:"role"`
	City    string `yaml:"city" json:"city"`
	Program string `yaml:"program" json:"program"`
	Before  string `yaml:"before" json:"before"`
	After   string `yaml:"after" json:"after"`
	Rating  int    `yaml:"rating" json:"rating"`
	Photo   string `yaml:"photo" json:"photo,omitempty"`
}

// Catalog is the static marketing content served by the API
type Catalog struct {
	Programs     []Program         `yaml:"programs" json:"programs"`
	AddOns       []string          `yaml:"addOns" json:"addOns"`
	Courses      []Course          `yaml:"courses" json:"courses"`
	Corporate    CorporateTraining `yaml:"corporate" json:"corporate"`
	Contact      Contact           `yaml:"contact" json:"contact"`
	Careers      []Role            `yaml:"careers" json:"careers"`
	Testimonials []Testimonial     `yaml:"testimonials" json:"testimonials"`
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Load returns the embedded catalog, parsed once
func Load() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = Parse(catalogYAML)
	})
	return defaultCatalog, defaultErr
}

// Parse decodes and checks a catalog document
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	known := make(map[string]bool, len(ProgramIDs))
	for _, id := range ProgramIDs {
		known[id] = true
	}

	seen := make(map[string]bool)
	for _, p := range c.Programs {
		if !known[p.ID] {
			return fmt.Errorf("catalog: unknown program id %q", p.ID)
		}
		if seen[p.ID] {
			return fmt.Errorf("catalog: duplicate program id %q", p.ID)
		}
		seen[p.ID] = true
	}

	slugs := make(map[string]bool)
	for _, course := range c.Courses {
		if course.Slug == "" {
			return fmt.Errorf("catalog: course %q has no slug", course.Title)
		}
		if slugs[course.Slug] {
			return fmt.Errorf("catalog: duplicate course slug %q", course.Slug)
		}
		slugs[course.Slug] = true
		if !known[course.MappedProgram] {
			return fmt.Errorf("catalog: course %q maps to unknown program %q", course.Slug, course.MappedProgram)
		}
	}

	titles := make(map[string]bool)
	for _, role := range c.Careers {
		if strings.TrimSpace(role.Title) == "" {
			return fmt.Errorf("catalog: career role has no title")
		}
		if titles[role.Title] {
			return fmt.Errorf("catalog: duplicate career role %q", role.Title)
		}
		titles[role.Title] = true
	}

	names := make(map[string]bool)
	for _, t := range c.Testimonials {
		if strings.TrimSpace(t.Name) == "" || strings.TrimSpace(t.After) == "" {
			return fmt.Errorf("catalog: testimonial needs a name and a story")
		}
		if names[t.Name] {
			return fmt.Errorf("catalog: duplicate testimonial from %q", t.Name)
		}
		names[t.Name] = true
		if !known[t.Program] {
			return fmt.Errorf("catalog: testimonial from %q names unknown program %q", t.Name, t.Program)
		}
		if t.Rating < 1 || t.Rating > 5 {
			return fmt.Errorf("catalog: testimonial from %q has rating %d, want 1-5", t.Name, t.Rating)
		}
	}

	if c.Contact.WhatsAppPhone == "" {
		return fmt.Errorf("catalog: contact.whatsappPhone is required")
	}
	return nil
}

// Program looks up a pricing tier by id
func (c *Catalog) Program(id string) (Program, bool) {
	for _, p := range c.Programs {
		if p.ID == id {
			return p, true
		}
	}
	return Program{}, false
}

// Course looks up a course page by slug
func (c *Catalog) Course(slug string) (Course, bool) {
	for _, course := range c.Courses {
		if course.Slug == slug {
			return course, true
		}
	}
	return Course{}, false
}

// IsProgram reports whether id is one of the four program ids
func IsProgram(id string) bool {
	for _, p := range ProgramIDs {
		if p == id {
			return true
		}
	}
	return false
}
