package services

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/edushetra/edushetra-api/internal/attribution"
	"github.com/edushetra/edushetra-api/internal/models"
	"github.com/edushetra/edushetra-api/pkg/formtoken"
	"github.com/edushetra/edushetra-api/pkg/logger"
)

// instanceResolver hands out form instance IDs and recovers them, with their
// attribution snapshot, at submit time
type instanceResolver struct {
	tokens *formtoken.Manager
}

func newInstanceResolver(tokens *formtoken.Manager) *instanceResolver {
	return &instanceResolver{tokens: tokens}
}

type issuedInstance struct {
	InstanceID string
	Token      string
	ExpiresAt  *time.Time
}

// issue starts a new form instance and signs the attribution into its token
func (r *instanceResolver) issue(form string, attr attribution.Snapshot) (issuedInstance, error) {
	inst := issuedInstance{InstanceID: uuid.NewString()}
	if r.tokens == nil {
		return inst, nil
	}

	src, med, cmp, ref := attr.Strings()
	token, err := r.tokens.Issue(form, inst.InstanceID, formtoken.Attribution{
		Source: src, Medium: med, Campaign: cmp, ReferringPage: ref,
	})
	if err != nil {
		return issuedInstance{}, err
	}
	exp := time.Now().Add(r.tokens.TTL()).UTC()
	inst.Token = token
	inst.ExpiresAt = &exp
	return inst, nil
}

// resolve returns the instance ID and attribution for a submit. A bad token is
// treated like no token: attribution falls back to the page URL and the submit
// runs on a throw-away instance.
func (r *instanceResolver) resolve(form string, meta models.SubmissionMeta) (string, attribution.Snapshot) {
	if r.tokens != nil && meta.FormToken != "" {
		claims, err := r.tokens.Parse(meta.FormToken, form)
		if err == nil {
			a := claims.Attribution
			return claims.InstanceID, attribution.FromStrings(a.Source, a.Medium, a.Campaign, a.ReferringPage)
		}
		logger.Debug("Ignoring form token", zap.String("form", form), zap.Error(err))
	}

	instanceID := ""
	if r.tokens == nil {
		if _, err := uuid.Parse(meta.InstanceID); err == nil {
			instanceID = meta.InstanceID
		}
	}
	return instanceID, attribution.FromURL(meta.PageURL).Attribution
}
