package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/edushetra/edushetra-api/config"
	"github.com/edushetra/edushetra-api/internal/attribution"
	"github.com/edushetra/edushetra-api/internal/forms"
	"github.com/edushetra/edushetra-api/internal/leveltest"
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

// LevelTestForm names the level test in form tokens, metrics and logs
const LevelTestForm = "level-test"

// LevelTestStart opens a level test
type LevelTestStart struct {
	Questions      []leveltest.Question `json:"questions"`
	TotalQuestions int                  `json:"totalQuestions"`
	InstanceID     string               `json:"instanceId"`
	FormToken      string               `json:"formToken,omitempty"`
	ExpiresAt      *time.Time           `json:"expiresAt,omitempty"`
}

// LevelTestOutcome is the scored result plus what happened to it in the store.
// The result is returned even when Saved is false.
type LevelTestOutcome struct {
	leveltest.Result
	RecordID string `json:"recordId,omitempty"`
	Saved    bool   `json:"saved"`
	Replayed bool   `json:"replayed,omitempty"`
}

// LevelTestService scores level tests and records their results
type LevelTestService struct {
	repo       repository.SubmissionRepository
	registry   *submission.Registry
	resolver   *instanceResolver
	triggerURL string
	httpClient httpclient.Client
}

// NewLevelTestService creates a new level test service
func NewLevelTestService(
	repo repository.SubmissionRepository,
	registry *submission.Registry,
	tokens *formtoken.Manager,
	cfg *config.Config,
	httpClient httpclient.Client,
) *LevelTestService {
	return &LevelTestService{
		repo:       repo,
		registry:   registry,
		resolver:   newInstanceResolver(tokens),
		triggerURL: cfg.EventTriggers.LevelTestCompletedTriggerURL,
		httpClient: httpClient,
	}
}

// Start returns the questions without the answer key and opens an instance
func (s *LevelTestService) Start(ctx context.Context, pageURL string) (*LevelTestStart, error) {
	seed := attribution.FromURL(pageURL)
	inst, err := s.resolver.issue(LevelTestForm, seed.Attribution)
	if err != nil {
		logger.Error("Failed to issue form token", zap.String("form", LevelTestForm), zap.Error(err))
		return nil, apperrors.InternalError("failed to start level test")
	}

	metrics.FormInits.WithLabelValues(LevelTestForm, fmt.Sprint(!seed.Attribution.Empty())).Inc()
	return &LevelTestStart{
		Questions:      leveltest.Questions(),
		TotalQuestions: leveltest.TotalQuestions,
		InstanceID:     inst.InstanceID,
		FormToken:      inst.Token,
		ExpiresAt:      inst.ExpiresAt,
	}, nil
}

// Submit scores the answers and stores the result once per completion. Resending
// the same answers on an instance replays the stored record; a retake with
// different answers is a new completion and gets its own record.
func (s *LevelTestService) Submit(ctx context.Context, req *models.LevelTestRequest) (*LevelTestOutcome, error) {
	result, err := leveltest.Score(req.Answers)
	if err != nil {
		metrics.FormSubmissions.WithLabelValues(LevelTestForm, "invalid").Inc()
		return nil, apperrors.InvalidInputError("answers", err.Error())
	}

	instanceID, attr := s.resolver.resolve(LevelTestForm, req.SubmissionMeta)
	machine := s.registry.Machine(completionKey(instanceID, req.Answers))

	outcome, err := machine.Submit(ctx,
		func() forms.Errors { return nil },
		func(ctx context.Context) (string, error) {
			table, row := mapper.LevelTestResult(result, attr)
			return s.repo.Insert(ctx, table, row)
		},
	)
	if errors.Is(err, submission.ErrInFlight) {
		metrics.FormSubmissions.WithLabelValues(LevelTestForm, "in_flight").Inc()
		return nil, fmt.Errorf("%s: %w: %w", LevelTestForm, apperrors.ErrConflict, err)
	}

	out := &LevelTestOutcome{Result: result}
	switch {
	case outcome.State == submission.Failure:
		metrics.FormSubmissions.WithLabelValues(LevelTestForm, "error").Inc()
		logger.Error("Failed to store level test result",
			zap.String("instance_id", instanceID),
			zap.String("level", string(result.Level)),
			zap.Error(outcome.Err))
	case outcome.Replayed:
		metrics.FormSubmissions.WithLabelValues(LevelTestForm, "replayed").Inc()
		out.RecordID = outcome.RecordID
		out.Saved = true
		out.Replayed = true
	default:
		metrics.FormSubmissions.WithLabelValues(LevelTestForm, "success").Inc()
		metrics.LevelTestCompletions.WithLabelValues(string(result.Level)).Inc()
		out.RecordID = outcome.RecordID
		out.Saved = true
		trigger.CallAsync(s.triggerURL, LevelTestForm, outcome.RecordID, s.httpClient)
	}
	return out, nil
}

// completionKey identifies one completion of an instance by its answers, so a
// replay always pairs a record with the result it was stored for
func completionKey(instanceID string, answers []int) string {
	if instanceID == "" {
		return ""
	}
	var b strings.Builder
	b.WriteString(instanceID)
	b.WriteByte('/')
	for _, a := range answers {
		b.WriteString(strconv.Itoa(a))
	}
	return b.String()
}
