package catalog

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_EmbeddedCatalog(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	assert.Len(t, c.Programs, 4)
	assert.Len(t, c.Courses, 5)
	assert.Len(t, c.Corporate.Modules, 6)
	assert.NotEmpty(t, c.AddOns)
	assert.Len(t, c.Careers, 3)
	assert.Len(t, c.Testimonials, 6)

	popular := 0
	for _, p := range c.Programs {
		if p.Popular {
			popular++
			assert.Equal(t, ProgramSmallGroup, p.ID)
		}
	}
	assert.Equal(t, 1, popular)
}

func TestCourse_DemoLink(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	tests := []struct {
		slug    string
		program string
	}{
		{"spoken-english", ProgramSmallGroup},
		{"business-communication", ProgramOneOnOne},
		{"interview-preparation", ProgramOneOnOne},
		{"public-speaking", ProgramSmallGroup},
		{"leadership-training", ProgramLeadership},
	}

	for _, tt := range tests {
		t.Run(tt.slug, func(t *testing.T) {
			course, ok := c.Course(tt.slug)
			require.True(t, ok)

			link, err := url.Parse(course.DemoLink())
			require.NoError(t, err)
			assert.Equal(t, "/book-demo", link.Path)
			assert.Equal(t, tt.program, link.Query().Get("program"))
			assert.Equal(t, tt.slug, link.Query().Get("ref"))
		})
	}
}

func TestCatalog_LookupMisses(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	_, ok := c.Course("underwater-basket-weaving")
	assert.False(t, ok)
	_, ok = c.Program("premium")
	assert.False(t, ok)

	p, ok := c.Program(ProgramLeadership)
	require.True(t, ok)
	assert.Equal(t, "Leadership Training", p.Title)
}

func TestContact_WhatsAppURL(t *testing.T) {
	c := Contact{WhatsAppPhone: "919445102902", WhatsAppMessage: "Hi! Can you help me?"}

	assert.Equal(t, "https://wa.me/919445102902?text=Hi%21%20Can%20you%20help%20me%3F", c.WhatsAppURL())

	u, err := url.Parse(c.WhatsAppURL())
	require.NoError(t, err)
	assert.Equal(t, "wa.me", u.Host)
	assert.Equal(t, "/919445102902", u.Path)
	assert.Equal(t, "Hi! Can you help me?", u.Query().Get("text"))
	assert.NotContains(t, u.RawQuery, "+")
}

func TestContact_WhatsAppURLKeepsLiteralPlus(t *testing.T) {
	c := Contact{WhatsAppPhone: "1", WhatsAppMessage: "1+1 classes"}
	assert.Equal(t, "https://wa.me/1?text=1%2B1%20classes", c.WhatsAppURL())
}

func TestCatalog_CareersAndTestimonials(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "English Communication Trainer (Part-time)", c.Careers[0].Title)
	assert.Equal(t, []string{"Remote", "Contract"}, c.Careers[0].Tags)
	assert.Equal(t, "Growth & Performance Marketer", c.Careers[2].Title)
	for _, role := range c.Careers {
		assert.NotEmpty(t, role.Description, role.Title)
	}

	want := map[string]string{
		"Priya Sharma": ProgramOneOnOne,
		"Rajesh Gupta": ProgramSmallGroup,
		"Anita Desai":  ProgramBigGroup,
		"Vikram Singh": ProgramOneOnOne,
		"Meera Patel":  ProgramSmallGroup,
		"Arjun Nair":   ProgramLeadership,
	}
	for _, tm := range c.Testimonials {
		assert.Equal(t, want[tm.Name], tm.Program, tm.Name)
		assert.Equal(t, 5, tm.Rating, tm.Name)
		assert.NotEmpty(t, tm.Before, tm.Name)
		assert.NotEmpty(t, tm.After, tm.Name)
	}
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{
			name: "unknown program",
			doc:  "programs: [{id: premium}]\ncontact: {whatsappPhone: '1'}",
		},
		{
			name: "duplicate program",
			doc:  "programs: [{id: leadership}, {id: leadership}]\ncontact: {whatsappPhone: '1'}",
		},
		{
			name: "course maps to unknown program",
			doc:  "courses: [{slug: x, mappedProgram: nope}]\ncontact: {whatsappPhone: '1'}",
		},
		{
			name: "duplicate slug",
			doc:  "courses: [{slug: x, mappedProgram: leadership}, {slug: x, mappedProgram: leadership}]\ncontact: {whatsappPhone: '1'}",
		},
		{
			name: "missing phone",
			doc:  "programs: []",
		},
		{
			name: "role without title",
			doc:  "careers: [{title: ' ', tags: [Remote]}]\ncontact: {whatsappPhone: '1'}",
		},
		{
			name: "duplicate role",
			doc:  "careers: [{title: Coach}, {title: Coach}]\ncontact: {whatsappPhone: '1'}",
		},
		{
			name: "testimonial without story",
			doc:  "testimonials: [{name: Asha, program: leadership, rating: 5}]\ncontact: {whatsappPhone: '1'}",
		},
		{
			name: "testimonial names unknown program",
			doc:  "testimonials: [{name: Asha, after: Better, program: '1:1 Classes', rating: 5}]\ncontact: {whatsappPhone: '1'}",
		},
		{
			name: "testimonial rating out of range",
			doc:  "testimonials: [{name: Asha, after: Better, program: leadership, rating: 6}]\ncontact: {whatsappPhone: '1'}",
		},
		{
			name: "duplicate testimonial",
			doc:  "testimonials: [{name: Asha, after: Better, program: leadership, rating: 5}, {name: Asha, after: Again, program: leadership, rating: 4}]\ncontact: {whatsappPhone: '1'}",
		},
		{
			name: "malformed yaml",
			doc:  "programs: [",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestIsProgram(t *testing.T) {
	assert.True(t, IsProgram("1-on-1"))
	assert.True(t, IsProgram("big-group"))
	assert.False(t, IsProgram("1:1"))
	assert.False(t, IsProgram(""))
}
