package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edushetra/edushetra-api/internal/catalog"
)

// catalogCacheControl lets the CDN keep catalog responses; they only change on deploy
const catalogCacheControl = "public, max-age=300, s-maxage=3600, stale-while-revalidate=86400"

// CatalogHandler serves the static site content
type CatalogHandler struct {
	catalog *catalog.Catalog
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(c *catalog.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: c}
}

type courseResponse struct {
	catalog.Course
	DemoLink string `json:"demoLink"`
}

type courseSummary struct {
	Slug          string `json:"slug"`
	Title         string `json:"title"`
	Subtitle      string `json:"subtitle"`
	MappedProgram string `json:"mappedProgram"`
	DemoLink      string `json:"demoLink"`
}

// Programs handles GET /api/v1/programs
func (h *CatalogHandler) Programs(c *gin.Context) {
	c.Header("Cache-Control", catalogCacheControl)
	c.JSON(http.StatusOK, gin.H{"programs": h.catalog.Programs})
}

// Pricing handles GET /api/v1/pricing
func (h *CatalogHandler) Pricing(c *gin.Context) {
	c.Header("Cache-Control", catalogCacheControl)
	c.JSON(http.StatusOK, gin.H{
		"programs": h.catalog.Programs,
		"addOns":   h.catalog.AddOns,
	})
}

// Courses handles GET /api/v1/courses
func (h *CatalogHandler) Courses(c *gin.Context) {
	courses := make([]courseSummary, 0, len(h.catalog.Courses))
	for _, course := range h.catalog.Courses {
		courses = append(courses, courseSummary{
			Slug:          course.Slug,
			Title:         course.Title,
			Subtitle:      course.Subtitle,
			MappedProgram: course.MappedProgram,
			DemoLink:      course.DemoLink(),
		})
	}

	c.Header("Cache-Control", catalogCacheControl)
	c.JSON(http.StatusOK, gin.H{"courses": courses})
}

// Course handles GET /api/v1/courses/:slug
func (h *CatalogHandler) Course(c *gin.Context) {
	course, ok := h.catalog.Course(c.Param("slug"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		return
	}

	c.Header("Cache-Control", catalogCacheControl)
	c.JSON(http.StatusOK, courseResponse{Course: course, DemoLink: course.DemoLink()})
}

// CorporateTraining handles GET /api/v1/corporate-training
func (h *CatalogHandler) CorporateTraining(c *gin.Context) {
	c.Header("Cache-Control", catalogCacheControl)
	c.JSON(http.StatusOK, h.catalog.Corporate)
}

// Contact handles GET /api/v1/contact
func (h *CatalogHandler) Contact(c *gin.Context) {
	c.Header("Cache-Control", catalogCacheControl)
	c.JSON(http.StatusOK, gin.H{
		"whatsappPhone":   h.catalog.Contact.WhatsAppPhone,
		"whatsappMessage": h.catalog.Contact.WhatsAppMessage,
		"whatsappUrl":     h.catalog.Contact.WhatsAppURL(),
	})
}

// Careers handles GET /api/v1/careers
func (h *CatalogHandler) Careers(c *gin.Context) {
	c.Header("Cache-Control", catalogCacheControl)
	c.JSON(http.StatusOK, gin.H{"roles": h.catalog.Careers})
}

// Testimonials handles GET /api/v1/testimonials
func (h *CatalogHandler) Testimonials(c *gin.Context) {
	c.Header("Cache-Control", catalogCacheControl)
	c.JSON(http.StatusOK, gin.H{"testimonials": h.catalog.Testimonials})
}
