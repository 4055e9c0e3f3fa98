// Package mapper turns validated form records into storage rows. Column names
// follow the remote table schema; empty optional values are written as NULL.
package mapper

import (
	"strings"

	"github.com/edushetra/edushetra-api/internal/attribution"
	"github.com/edushetra/edushetra-api/internal/leveltest"
	"github.com/edushetra/edushetra-api/internal/models"
	"github.com/edushetra/edushetra-api/internal/repository"
)

// DemoBooking maps a book-demo submission
func DemoBooking(req *models.DemoBookingRequest, attr attribution.Snapshot) (repository.Table, repository.Row) {
	row := repository.Row{
		{Name: "name", Value: strings.TrimSpace(req.Name)},
		{Name: "whatsapp", Value: req.WhatsApp},
		{Name: "email", Value: strings.TrimSpace(req.Email)},
		{Name: "city", Value: strings.TrimSpace(req.City)},
		{Name: "current_level", Value: req.CurrentLevel},
		{Name: "goal", Value: optional(req.Goal)},
		{Name: "preferred_time", Value: req.PreferredTime},
		{Name: "program_interest", Value: req.ProgramInterest},
		{Name: "consent", Value: req.Consent},
	}
	row = append(row, utm(attr)...)
	row = append(row, repository.Column{Name: "referring_page", Value: ptr(attr.ReferringPage)})
	return repository.DemoBookings, row
}

// Enquiry maps a general enquiry
func Enquiry(req *models.EnquiryRequest, attr attribution.Snapshot) (repository.Table, repository.Row) {
	row := repository.Row{
		{Name: "name", Value: strings.TrimSpace(req.Name)},
		{Name: "whatsapp", Value: req.WhatsApp},
		{Name: "email", Value: strings.TrimSpace(req.Email)},
		{Name: "program_interest", Value: req.ProgramInterest},
		{Name: "message", Value: optional(req.Message)},
		{Name: "consent", Value: req.Consent},
	}
	return repository.Enquiries, append(row, utm(attr)...)
}

// CorporateInquiry maps a for-corporates inquiry; that table has no attribution columns
func CorporateInquiry(req *models.CorporateInquiryRequest) (repository.Table, repository.Row) {
	return repository.CorporateInquiries, repository.Row{
		{Name: "company_name", Value: strings.TrimSpace(req.CompanyName)},
		{Name: "contact_name", Value: strings.TrimSpace(req.ContactName)},
		{Name: "email", Value: strings.TrimSpace(req.Email)},
		{Name: "phone", Value: strings.TrimSpace(req.Phone)},
		{Name: "team_size", Value: req.TeamSize},
		{Name: "objectives", Value: strings.TrimSpace(req.Objectives)},
		{Name: "timeline", Value: req.Timeline},
		{Name: "budget", Value: optional(req.Budget)},
	}
}

// TutorApplication maps a tutor application
func TutorApplication(req *models.TutorApplicationRequest, attr attribution.Snapshot) (repository.Table, repository.Row) {
	row := repository.Row{
		{Name: "name", Value: strings.TrimSpace(req.Name)},
		{Name: "whatsapp", Value: req.WhatsApp},
		{Name: "email", Value: strings.TrimSpace(req.Email)},
		{Name: "city", Value: strings.TrimSpace(req.City)},
		{Name: "years_experience", Value: req.YearsExperience},
		{Name: "primary_expertise", Value: dedupe(req.PrimaryExpertise)},
		{Name: "teaching_modes", Value: dedupe(req.TeachingModes)},
		{Name: "languages", Value: dedupe(req.Languages)},
		{Name: "availability", Value: req.Availability},
		{Name: "preferred_slots", Value: req.PreferredSlots},
		{Name: "hourly_rate", Value: optional(req.HourlyRate)},
		{Name: "linkedin_url", Value: optional(req.LinkedInURL)},
		{Name: "resume_url", Value: optional(req.ResumeURL)},
		{Name: "about", Value: strings.TrimSpace(req.About)},
		{Name: "has_laptop", Value: req.HasLaptop},
		{Name: "consent", Value: req.Consent},
	}
	row = append(row, utm(attr)...)
	row = append(row, repository.Column{Name: "referring_page", Value: ptr(attr.ReferringPage)})
	return repository.TutorApplications, row
}

// LevelTestResult maps a scored level test
func LevelTestResult(res leveltest.Result, attr attribution.Snapshot) (repository.Table, repository.Row) {
	row := repository.Row{
		{Name: "score", Value: res.Score},
		{Name: "total_questions", Value: res.TotalQuestions},
		{Name: "percentage", Value: res.Percentage},
		{Name: "level", Value: string(res.Level)},
		{Name: "recommended_programs", Value: dedupe(res.Recommendation.Programs)},
	}
	return repository.LevelTestResults, append(row, utm(attr)...)
}

func utm(attr attribution.Snapshot) repository.Row {
	return repository.Row{
		{Name: "utm_source", Value: ptr(attr.Source)},
		{Name: "utm_medium", Value: ptr(attr.Medium)},
		{Name: "utm_campaign", Value: ptr(attr.Campaign)},
	}
}

// optional turns blank input into NULL
func optional(s string) any {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return s
}

func ptr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

// dedupe keeps the first occurrence of each value
func dedupe(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
