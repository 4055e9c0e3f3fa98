package models

// SubmissionMeta travels with every form submit but is not part of the record.
// FormToken is the signed token from form init and carries the instance ID and
// attribution; InstanceID is used instead when tokens are disabled. PageURL is
// the page the form was rendered on, read for attribution when no token is sent.
type SubmissionMeta struct {
	FormToken      string `json:"formToken,omitempty"`
	InstanceID     string `json:"instanceId,omitempty"`
	PageURL        string `json:"pageUrl,omitempty"`
	RecaptchaToken string `json:"recaptchaToken,omitempty"`
}

// DemoBookingRequest represents a book-demo form submission
type DemoBookingRequest struct {
	Name            string `json:"name" validate:"required,min=2"`
	WhatsApp        string `json:"whatsapp" validate:"required,in_mobile"`
	Email           string `json:"email" validate:"required,email"`
	City            string `json:"city" validate:"required,min=2"`
	CurrentLevel    string `json:"currentLevel" validate:"required,enum=current_level"`
	Goal            string `json:"goal"`
	PreferredTime   string `json:"preferredTime" validate:"required,enum=preferred_time"`
	ProgramInterest string `json:"programInterest" validate:"required,enum=program"`
	Consent         bool   `json:"consent" validate:"accepted"`

	SubmissionMeta
}

// EnquiryRequest represents a general enquiry form submission
type EnquiryRequest struct {
	Name            string `json:"name" validate:"required,min=2"`
	WhatsApp        string `json:"whatsapp" validate:"required,in_mobile"`
	Email           string `json:"email" validate:"required,email"`
	ProgramInterest string `json:"programInterest" validate:"required,enum=program"`
	Message         string `json:"message"`
	Consent         bool   `json:"consent" validate:"accepted"`

	SubmissionMeta
}

// CorporateInquiryRequest represents a for-corporates form submission
type CorporateInquiryRequest struct {
	CompanyName string `json:"companyName" validate:"required,min=2"`
	ContactName string `json:"contactName" validate:"required,min=2"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone" validate:"required,min=10"`
	TeamSize    string `json:"teamSize" validate:"required,enum=team_size"`
	Objectives  string `json:"objectives" validate:"required,min=10"`
	Timeline    string `json:"timeline" validate:"required,enum=timeline"`
	Budget      string `json:"budget" validate:"omitempty,enum=budget"`

	SubmissionMeta
}

// TutorApplicationRequest represents a tutor application form submission
type TutorApplicationRequest struct {
	Name             string   `json:"name" validate:"required,min=2"`
	WhatsApp         string   `json:"whatsapp" validate:"required,in_mobile"`
	Email            string   `json:"email" validate:"required,email"`
	City             string   `json:"city" validate:"required,min=2"`
	YearsExperience  string   `json:"yearsExperience" validate:"required,enum=years_experience"`
	PrimaryExpertise []string `json:"primaryExpertise" validate:"min=1,dive,enum=expertise"`
	TeachingModes    []string `json:"teachingModes" validate:"min=1,dive,enum=teaching_mode"`
	Languages        []string `json:"languages" validate:"min=1,dive,enum=language"`
	Availability     string   `json:"availability" validate:"required,enum=availability"`
	PreferredSlots   string   `json:"preferredSlots" validate:"required,enum=preferred_slot"`
	HourlyRate       string   `json:"hourlyRate" validate:"omitempty,numeric"`
	LinkedInURL      string   `json:"linkedinUrl" validate:"omitempty,url"`
	ResumeURL        string   `json:"resumeUrl" validate:"omitempty,url"`
	About            string   `json:"about" validate:"required,min=10"`
	HasLaptop        bool     `json:"hasLaptop"`
	Consent          bool     `json:"consent" validate:"accepted"`

	SubmissionMeta
}

// LevelTestRequest carries the answers of a completed level test, in question order
type LevelTestRequest struct {
	Answers []int `json:"answers"`

	SubmissionMeta
}

// FieldError is one failed field rule
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// SubmissionResponse is returned by every form submit. Replayed is set when the
// instance had already succeeded and nothing was written.
type SubmissionResponse struct {
	Success     bool         `json:"success"`
	RecordID    string       `json:"recordId,omitempty"`
	Replayed    bool         `json:"replayed,omitempty"`
	Title       string       `json:"title,omitempty"`
	Description string       `json:"description,omitempty"`
	Error       string       `json:"error,omitempty"`
	Details     []FieldError `json:"details,omitempty"`
}
