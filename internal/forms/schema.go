package forms

import (
	"reflect"

	"github.com/edushetra/edushetra-api/internal/catalog"
	"github.com/edushetra/edushetra-api/internal/models"
)

// Name identifies a lead form; it is also the URL segment the form is served on
type Name string

const (
	BookDemo         Name = "book-demo"
	Enquire          Name = "enquire"
	ForCorporates    Name = "for-corporates"
	TutorApplication Name = "tutor-application"
)

// Option is one choice of an enumerated field
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// enums is the registry behind the `enum=<name>` validation tag
var enums = map[string][]Option{
	"program": {
		{catalog.ProgramOneOnOne, "1:1 Classes"},
		{catalog.ProgramSmallGroup, "Small Group Classes"},
		{catalog.ProgramBigGroup, "Big Group Classes"},
		{catalog.ProgramLeadership, "Leadership Training"},
	},
	"current_level": {
		{"beginner", "Beginner"},
		{"intermediate", "Intermediate"},
		{"advanced", "Advanced"},
	},
	"preferred_time": {
		{"morning", "Morning (8 AM - 12 PM)"},
		{"afternoon", "Afternoon (12 PM - 6 PM)"},
		{"evening", "Evening (6 PM - 11 PM)"},
		{"flexible", "Flexible"},
	},
	"team_size": {
		{"5-15", "5-15 people"},
		{"16-50", "16-50 people"},
		{"51-100", "51-100 people"},
		{"100+", "100+ people"},
	},
	"timeline": {
		{"immediate", "Immediate (1-2 weeks)"},
		{"1-month", "Within 1 month"},
		{"3-months", "Within 3 months"},
		{"planning", "Just planning"},
	},
	"budget": {
		{"under-1l", "Under ₹1 Lakh"},
		{"1-3l", "₹1-3 Lakhs"},
		{"3-5l", "₹3-5 Lakhs"},
		{"5l+", "₹5+ Lakhs"},
	},
	"years_experience": {
		{"0-1", "0–1 years"},
		{"1-3", "1–3 years"},
		{"3-5", "3–5 years"},
		{"5-10", "5–10 years"},
		{"10+", "10+ years"},
	},
	"expertise": labelsOnly(
		"Spoken English",
		"Business Communication",
		"Interview Preparation",
		"Public Speaking",
		"Leadership Communication",
		"Accent & Pronunciation",
	),
	"teaching_mode": labelsOnly("1:1", "Small Group", "Big Group", "Corporate Training"),
	"language":      labelsOnly("English", "Hindi", "Tamil", "Telugu", "Kannada", "Bengali"),
	"availability": {
		{"weekdays", "Weekdays"},
		{"weekends", "Weekends"},
		{"both", "Both"},
	},
	"preferred_slot": {
		{"morning", "Morning (6 AM – 12 PM)"},
		{"afternoon", "Afternoon (12 PM – 6 PM)"},
		{"evening", "Evening (6 PM – 11 PM)"},
		{"flexible", "Flexible"},
	},
}

func labelsOnly(values ...string) []Option {
	opts := make([]Option, len(values))
	for i, v := range values {
		opts[i] = Option{Value: v, Label: v}
	}
	return opts
}

// Options returns the choices registered under an enum name
func Options(enum string) ([]Option, bool) {
	opts, ok := enums[enum]
	return opts, ok
}

// InEnum reports whether value is one of the enum's choices
func InEnum(enum, value string) bool {
	for _, o := range enums[enum] {
		if o.Value == value {
			return true
		}
	}
	return false
}

// Definition ties a form name to its request model, its messages and its confirmation copy
type Definition struct {
	Name  Name
	Model reflect.Type
	// Messages maps a JSON field name to the message shown when any of its rules fail
	Messages map[string]string
	// SeedsProgram marks forms whose programInterest is pre-selected from ?program=
	SeedsProgram       bool
	SuccessTitle       string
	SuccessDescription string
}

// ErrorMessage is the transient notification shown when a submit fails remotely
const ErrorMessage = "Something went wrong. Please try again."

var definitions = []*Definition{
	{
		Name:  BookDemo,
		Model: reflect.TypeOf(models.DemoBookingRequest{}),
		Messages: map[string]string{
			"name":            "Name must be at least 2 characters",
			"whatsapp":        "Please enter a valid 10-digit WhatsApp number",
			"email":           "Please enter a valid email address",
			"city":            "Please enter your city",
			"currentLevel":    "Please select your current level",
			"preferredTime":   "Please select your preferred time",
			"programInterest": "Please select a program",
			"consent":         "Please agree to our terms",
		},
		SeedsProgram:       true,
		SuccessTitle:       "Demo Booked Successfully!",
		SuccessDescription: "We'll contact you within 24 hours to schedule your demo.",
	},
	{
		Name:  Enquire,
		Model: reflect.TypeOf(models.EnquiryRequest{}),
		Messages: map[string]string{
			"name":            "Name must be at least 2 characters",
			"whatsapp":        "Enter a valid 10-digit WhatsApp number",
			"email":           "Enter a valid email",
			"programInterest": "Select a program",
			"consent":         "Please agree to our terms",
		},
		SeedsProgram:       true,
		SuccessTitle:       "Enquiry sent!",
		SuccessDescription: "We’ll get back to you within 24 hours.",
	},
	{
		Name:  ForCorporates,
		Model: reflect.TypeOf(models.CorporateInquiryRequest{}),
		Messages: map[string]string{
			"companyName": "Company name is required",
			"contactName": "Contact name is required",
			"email":       "Please enter a valid email address",
			"phone":       "Please enter a valid phone number",
			"teamSize":    "Please select team size",
			"objectives":  "Please describe your objectives",
			"timeline":    "Please select timeline",
			"budget":      "Please select a budget range",
		},
		SuccessTitle:       "Inquiry Submitted Successfully!",
		SuccessDescription: "Our corporate training team will contact you within 24 hours.",
	},
	{
		Name:  TutorApplication,
		Model: reflect.TypeOf(models.TutorApplicationRequest{}),
		Messages: map[string]string{
			"name":             "Name must be at least 2 characters",
			"whatsapp":         "Please enter a valid 10-digit WhatsApp number",
			"email":            "Please enter a valid email address",
			"city":             "Please enter your city",
			"yearsExperience":  "Please select your experience",
			"primaryExpertise": "Select at least one expertise area",
			"teachingModes":    "Select at least one mode",
			"languages":        "Select at least one language",
			"availability":     "Please choose your availability",
			"preferredSlots":   "Please select preferred time slot",
			"hourlyRate":       "Hourly rate must be a number",
			"linkedinUrl":      "Enter a valid URL",
			"resumeUrl":        "Enter a valid URL (Google Drive / Dropbox)",
			"about":            "Tell us a bit more about your teaching approach",
			"consent":          "Please agree to our terms",
		},
		SuccessTitle:       "Application Submitted!",
		SuccessDescription: "Thank you for applying. Our team will review your profile and get back to you.",
	},
}

var (
	byName = make(map[Name]*Definition, len(definitions))
	byType = make(map[reflect.Type]*Definition, len(definitions))
)

func init() {
	for _, d := range definitions {
		byName[d.Name] = d
		byType[d.Model] = d
	}
}

// Get returns the definition of a form
func Get(name Name) (*Definition, bool) {
	d, ok := byName[name]
	return d, ok
}

// All lists the form definitions in a stable order
func All() []*Definition {
	return definitions
}

func definitionFor(record any) (*Definition, bool) {
	t := reflect.TypeOf(record)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	d, ok := byType[t]
	return d, ok
}
