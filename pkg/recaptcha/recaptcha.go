package recaptcha

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/edushetra/edushetra-api/pkg/httpclient"
)

// DefaultVerifyURL is Google's siteverify endpoint
const DefaultVerifyURL = "https://www.google.com/recaptcha/api/siteverify"

// ErrVerificationFailed is returned when Google rejects the token
var ErrVerificationFailed = errors.New("recaptcha verification failed")

// Response represents the response from Google's reCAPTCHA verification API
type Response struct {
	Success     bool     `json:"success"`
	ChallengeTS string   `json:"challenge_ts"`
	Hostname    string   `json:"hostname"`
	ErrorCodes  []string `json:"error-codes"`
}

// Verifier handles reCAPTCHA verification. A Verifier without a secret
// key accepts every token, which keeps the lead forms usable on sites
// that do not render the widget.
type Verifier struct {
	secretKey  string
	verifyURL  string
	httpClient httpclient.Client
}

// NewVerifier creates a new reCAPTCHA verifier
func NewVerifier(secretKey string, httpClient httpclient.Client) *Verifier {
	return &Verifier{
		secretKey:  secretKey,
		verifyURL:  DefaultVerifyURL,
		httpClient: httpClient,
	}
}

// WithVerifyURL overrides the siteverify endpoint
func (v *Verifier) WithVerifyURL(u string) *Verifier {
	v.verifyURL = u
	return v
}

// Enabled reports whether tokens are actually checked
func (v *Verifier) Enabled() bool {
	return v != nil && v.secretKey != ""
}

// Verify verifies a reCAPTCHA token with Google's API
func (v *Verifier) Verify(ctx context.Context, token string) error {
	if !v.Enabled() {
		return nil
	}
	if strings.TrimSpace(token) == "" {
		return fmt.Errorf("missing token: %w", ErrVerificationFailed)
	}

	data := url.Values{}
	data.Set("secret", v.secretKey)
	data.Set("response", token)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.verifyURL, strings.NewReader(data.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build recaptcha request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to verify recaptcha: %w", err)
	}
	defer resp.Body.Close()

	var result Response
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("failed to decode recaptcha response: %w", err)
	}

	if !result.Success {
		return fmt.Errorf("%w: %s", ErrVerificationFailed, strings.Join(result.ErrorCodes, ","))
	}

	return nil
}
