package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/edushetra/edushetra-api/config"
	"github.com/edushetra/edushetra-api/internal/attribution"
	"github.com/edushetra/edushetra-api/internal/forms"
	"github.com/edushetra/edushetra-api/internal/mapper"
	"github.com/edushetra/edushetra-api/internal/models"
	"github.com/edushetra/edushetra-api/internal/repository"
	"github.com/edushetra/edushetra-api/internal/submission"
	apperrors "github.com/edushetra/edushetra-api/pkg/errors"
	"github.com/edushetra/edushetra-api/pkg/formtoken"
	"github.com/edushetra/edushetra-api/pkg/httpclient"
	"github.com/edushetra/edushetra-api/pkg/logger"
	"github.com/edushetra/edushetra-api/pkg/metrics"
	"github.com/edushetra/edushetra-api/pkg/trigger"
)

// ErrCaptchaFailed is returned when the reCAPTCHA token of a submit is rejected
var ErrCaptchaFailed = fmt.Errorf("captcha verification failed: %w", apperrors.ErrInvalidInput)

// ValidationFailedMessage is the error text of a submit rejected by field rules
const ValidationFailedMessage = "Validation failed"

// FormInit is everything a client needs to render and later submit a form
type FormInit struct {
	Form        forms.Name            `json:"form"`
	Fields      []forms.Field         `json:"fields"`
	Initial     attribution.Initial   `json:"initial"`
	Attribution *attribution.Snapshot `json:"attribution,omitempty"`
	InstanceID  string                `json:"instanceId"`
	FormToken   string                `json:"formToken,omitempty"`
	ExpiresAt   *time.Time            `json:"expiresAt,omitempty"`
}

// LeadService validates and stores the four lead forms
type LeadService struct {
	repo       repository.SubmissionRepository
	registry   *submission.Registry
	resolver   *instanceResolver
	validator  *forms.Validator
	captcha    CaptchaVerifier
	triggers   config.EventTriggersConfig
	httpClient httpclient.Client
}

// NewLeadService creates a new lead service. tokens may be nil, in which case
// forms are tracked by the client-supplied instance ID only.
func NewLeadService(
	repo repository.SubmissionRepository,
	registry *submission.Registry,
	tokens *formtoken.Manager,
	captcha CaptchaVerifier,
	cfg *config.Config,
	httpClient httpclient.Client,
) *LeadService {
	return &LeadService{
		repo:       repo,
		registry:   registry,
		resolver:   newInstanceResolver(tokens),
		validator:  forms.NewValidator(),
		captcha:    captcha,
		triggers:   cfg.EventTriggers,
		httpClient: httpClient,
	}
}

// InitForm describes a form and opens a new instance of it, seeded from the page URL
func (s *LeadService) InitForm(ctx context.Context, form, pageURL string) (*FormInit, error) {
	def, ok := forms.Get(forms.Name(form))
	if !ok {
		return nil, apperrors.NotFoundError("form " + form)
	}
	fields, _ := forms.Describe(def.Name)

	seed := attribution.FromURL(pageURL)
	out := &FormInit{Form: def.Name, Fields: fields}
	if def.SeedsProgram {
		out.Initial = seed.Initial
	}
	attributed := !seed.Attribution.Empty()
	if attributed {
		snap := seed.Attribution
		out.Attribution = &snap
	}

	inst, err := s.resolver.issue(form, seed.Attribution)
	if err != nil {
		logger.Error("Failed to issue form token", zap.String("form", form), zap.Error(err))
		return nil, apperrors.InternalError("failed to open form")
	}
	out.InstanceID = inst.InstanceID
	out.FormToken = inst.Token
	out.ExpiresAt = inst.ExpiresAt

	metrics.FormInits.WithLabelValues(form, fmt.Sprint(attributed)).Inc()
	logger.Debug("Form opened",
		zap.String("form", form),
		zap.String("instance_id", inst.InstanceID),
		zap.Bool("attributed", attributed))
	return out, nil
}

// SubmitDemoBooking stores a book-demo request
func (s *LeadService) SubmitDemoBooking(ctx context.Context, req *models.DemoBookingRequest) (*models.SubmissionResponse, error) {
	return s.submit(ctx, leadSubmit{
		form:       forms.BookDemo,
		record:     req,
		meta:       req.SubmissionMeta,
		triggerURL: s.triggers.DemoBookedTriggerURL,
		toRow: func(attr attribution.Snapshot) (repository.Table, repository.Row) {
			return mapper.DemoBooking(req, attr)
		},
	})
}

// SubmitEnquiry stores a general enquiry
func (s *LeadService) SubmitEnquiry(ctx context.Context, req *models.EnquiryRequest) (*models.SubmissionResponse, error) {
	return s.submit(ctx, leadSubmit{
		form:       forms.Enquire,
		record:     req,
		meta:       req.SubmissionMeta,
		triggerURL: s.triggers.EnquiryCreatedTriggerURL,
		toRow: func(attr attribution.Snapshot) (repository.Table, repository.Row) {
			return mapper.Enquiry(req, attr)
		},
	})
}

// SubmitCorporateInquiry stores a corporate training inquiry. Its table has no
// attribution columns.
func (s *LeadService) SubmitCorporateInquiry(ctx context.Context, req *models.CorporateInquiryRequest) (*models.SubmissionResponse, error) {
	return s.submit(ctx, leadSubmit{
		form:       forms.ForCorporates,
		record:     req,
		meta:       req.SubmissionMeta,
		triggerURL: s.triggers.CorporateInquiryTriggerURL,
		toRow: func(attribution.Snapshot) (repository.Table, repository.Row) {
			return mapper.CorporateInquiry(req)
		},
	})
}

// SubmitTutorApplication stores a tutor application
func (s *LeadService) SubmitTutorApplication(ctx context.Context, req *models.TutorApplicationRequest) (*models.SubmissionResponse, error) {
	return s.submit(ctx, leadSubmit{
		form:       forms.TutorApplication,
		record:     req,
		meta:       req.SubmissionMeta,
		triggerURL: s.triggers.TutorApplicationTriggerURL,
		toRow: func(attr attribution.Snapshot) (repository.Table, repository.Row) {
			return mapper.TutorApplication(req, attr)
		},
	})
}

type leadSubmit struct {
	form       forms.Name
	record     any
	meta       models.SubmissionMeta
	triggerURL string
	toRow      func(attribution.Snapshot) (repository.Table, repository.Row)
}

func (s *LeadService) submit(ctx context.Context, ls leadSubmit) (*models.SubmissionResponse, error) {
	form := string(ls.form)

	// field rules run before anything leaves the process
	forms.Normalize(ls.record)
	if errs := s.validator.Validate(ls.record); !errs.Valid() {
		metrics.FormSubmissions.WithLabelValues(form, "invalid").Inc()
		logger.Info("Form submission rejected",
			zap.String("form", form),
			zap.Int("failed_fields", len(errs)))
		return &models.SubmissionResponse{Error: ValidationFailedMessage, Details: errs},
			fmt.Errorf("%s: %w: %w", form, apperrors.ErrInvalidInput, errs)
	}

	if s.captcha != nil {
		if err := s.captcha.Verify(ctx, ls.meta.RecaptchaToken); err != nil {
			metrics.FormSubmissions.WithLabelValues(form, "captcha_failed").Inc()
			logger.Warn("ReCAPTCHA verification failed", zap.String("form", form), zap.Error(err))
			return &models.SubmissionResponse{Error: "Captcha verification failed"}, ErrCaptchaFailed
		}
	}

	instanceID, attr := s.resolver.resolve(form, ls.meta)
	machine := s.registry.Machine(instanceID)

	outcome, err := machine.Submit(ctx,
		func() forms.Errors { return nil },
		func(ctx context.Context) (string, error) {
			table, row := ls.toRow(attr)
			return s.repo.Insert(ctx, table, row)
		},
	)
	if errors.Is(err, submission.ErrInFlight) {
		metrics.FormSubmissions.WithLabelValues(form, "in_flight").Inc()
		logger.Warn("Submit while in flight", zap.String("form", form), zap.String("instance_id", instanceID))
		return &models.SubmissionResponse{Error: "Submission already in progress"},
			fmt.Errorf("%s: %w: %w", form, apperrors.ErrConflict, err)
	}

	def, _ := forms.Get(ls.form)

	if outcome.State == submission.Failure {
		metrics.FormSubmissions.WithLabelValues(form, "error").Inc()
		logger.Error("Failed to store form submission",
			zap.String("form", form),
			zap.String("instance_id", instanceID),
			zap.Error(outcome.Err))
		return &models.SubmissionResponse{Error: forms.ErrorMessage}, apperrors.UpstreamError("lead store", outcome.Err)
	}

	resp := &models.SubmissionResponse{
		Success:     true,
		RecordID:    outcome.RecordID,
		Replayed:    outcome.Replayed,
		Title:       def.SuccessTitle,
		Description: def.SuccessDescription,
	}
	if outcome.Replayed {
		metrics.FormSubmissions.WithLabelValues(form, "replayed").Inc()
		logger.Info("Form submission replayed",
			zap.String("form", form),
			zap.String("instance_id", instanceID),
			zap.String("record_id", outcome.RecordID))
		return resp, nil
	}

	metrics.FormSubmissions.WithLabelValues(form, "success").Inc()
	trigger.CallAsync(ls.triggerURL, form, outcome.RecordID, s.httpClient)
	return resp, nil
}
