package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/edushetra/edushetra-api/config"
	"github.com/edushetra/edushetra-api/internal/leveltest"
	"github.com/edushetra/edushetra-api/internal/models"
	"github.com/edushetra/edushetra-api/internal/repository"
	"github.com/edushetra/edushetra-api/internal/services"
	"github.com/edushetra/edushetra-api/internal/submission"
	apperrors "github.com/edushetra/edushetra-api/pkg/errors"
	"github.com/edushetra/edushetra-api/pkg/formtoken"
	"github.com/edushetra/edushetra-api/pkg/httpclient"
)

// answerKey answers every question correctly
var answerKey = []int{1, 1, 0, 2, 1, 0, 2, 1, 1, 2}

func newLevelTestService(repo *MockSubmissionRepository) *services.LevelTestService {
	tokens := formtoken.NewManager("test-secret", "edushetra-test", 2)
	registry := submission.NewRegistry(submission.DefaultInstanceTTL, submission.DefaultPersistTimeout)
	return services.NewLevelTestService(repo, registry, tokens, &config.Config{}, httpclient.NewStandardClient())
}

func TestLevelTestService_Start(t *testing.T) {
	service := newLevelTestService(new(MockSubmissionRepository))

	start, err := service.Start(context.Background(), "/level-test?utm_source=youtube")
	require.NoError(t, err)
	assert.Len(t, start.Questions, 10)
	assert.Equal(t, 10, start.TotalQuestions)
	assert.NotEmpty(t, start.InstanceID)
	assert.NotEmpty(t, start.FormToken)
}

func TestLevelTestService_Submit_StoresResult(t *testing.T) {
	repo := new(MockSubmissionRepository)
	service := newLevelTestService(repo)
	ctx := context.Background()

	start, err := service.Start(ctx, "?utm_campaign=spring")
	require.NoError(t, err)

	var stored repository.Row
	repo.On("Insert", mock.Anything, repository.LevelTestResults, mock.Anything).
		Run(func(args mock.Arguments) { stored = args.Get(2).(repository.Row) }).
		Return("rec-lt", nil).Once()

	// seven correct answers
	answers := append([]int{}, answerKey...)
	answers[0], answers[1], answers[2] = 0, 0, 1

	out, err := service.Submit(ctx, &models.LevelTestRequest{
		Answers:        answers,
		SubmissionMeta: models.SubmissionMeta{FormToken: start.FormToken},
	})

	require.NoError(t, err)
	assert.True(t, out.Saved)
	assert.Equal(t, "rec-lt", out.RecordID)
	assert.Equal(t, 7, out.Score)
	assert.Equal(t, 70, out.Percentage)
	assert.Equal(t, leveltest.Intermediate, out.Level)

	m := stored.Map()
	assert.Equal(t, 7, m["score"])
	assert.Equal(t, "intermediate", m["level"])
	assert.Equal(t, "spring", m["utm_campaign"])
}

func TestLevelTestService_Submit_ResultSurvivesStoreFailure(t *testing.T) {
	repo := new(MockSubmissionRepository)
	service := newLevelTestService(repo)
	repo.On("Insert", mock.Anything, repository.LevelTestResults, mock.Anything).Return("", errors.New("timeout")).Once()

	out, err := service.Submit(context.Background(), &models.LevelTestRequest{Answers: answerKey})

	require.NoError(t, err)
	assert.False(t, out.Saved)
	assert.Empty(t, out.RecordID)
	assert.Equal(t, 10, out.Score)
	assert.Equal(t, leveltest.Advanced, out.Level)
}

func TestLevelTestService_Submit_Replay(t *testing.T) {
	repo := new(MockSubmissionRepository)
	service := newLevelTestService(repo)
	ctx := context.Background()

	start, err := service.Start(ctx, "")
	require.NoError(t, err)
	repo.On("Insert", mock.Anything, repository.LevelTestResults, mock.Anything).Return("rec-1", nil).Once()

	req := &models.LevelTestRequest{Answers: answerKey, SubmissionMeta: models.SubmissionMeta{FormToken: start.FormToken}}
	_, err = service.Submit(ctx, req)
	require.NoError(t, err)
	out, err := service.Submit(ctx, req)
	require.NoError(t, err)

	assert.True(t, out.Replayed)
	assert.Equal(t, "rec-1", out.RecordID)
	assert.Equal(t, 10, out.Score)
	repo.AssertNumberOfCalls(t, "Insert", 1)
}

func TestLevelTestService_Submit_RetakeIsANewCompletion(t *testing.T) {
	repo := new(MockSubmissionRepository)
	service := newLevelTestService(repo)
	ctx := context.Background()

	start, err := service.Start(ctx, "")
	require.NoError(t, err)

	var scores []any
	capture := func(args mock.Arguments) { scores = append(scores, args.Get(2).(repository.Row).Map()["score"]) }
	repo.On("Insert", mock.Anything, repository.LevelTestResults, mock.Anything).Run(capture).Return("rec-1", nil).Once()
	repo.On("Insert", mock.Anything, repository.LevelTestResults, mock.Anything).Run(capture).Return("rec-2", nil).Once()

	meta := models.SubmissionMeta{FormToken: start.FormToken}
	first, err := service.Submit(ctx, &models.LevelTestRequest{Answers: answerKey, SubmissionMeta: meta})
	require.NoError(t, err)

	// every answer shifted off the key
	wrong := make([]int, len(answerKey))
	for i, a := range answerKey {
		wrong[i] = (a + 1) % 4
	}
	second, err := service.Submit(ctx, &models.LevelTestRequest{Answers: wrong, SubmissionMeta: meta})
	require.NoError(t, err)

	assert.Equal(t, "rec-1", first.RecordID)
	assert.Equal(t, 0, second.Score)
	assert.Equal(t, leveltest.Beginner, second.Level)
	assert.True(t, second.Saved)
	assert.False(t, second.Replayed)
	assert.Equal(t, "rec-2", second.RecordID)
	assert.Equal(t, []any{10, 0}, scores)
	repo.AssertExpectations(t)
}

func TestLevelTestService_Submit_InvalidAnswers(t *testing.T) {
	repo := new(MockSubmissionRepository)
	service := newLevelTestService(repo)

	tests := []struct {
		name    string
		answers []int
	}{
		{"too few", []int{1, 1, 0}},
		{"out of range", []int{1, 1, 0, 2, 1, 0, 2, 1, 1, 4}},
		{"negative", []int{-1, 1, 0, 2, 1, 0, 2, 1, 1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Submit(context.Background(), &models.LevelTestRequest{Answers: tt.answers})
			assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
		})
	}
	repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything, mock.Anything)
}
