// Package captcha verifies Google reCAPTCHA tokens for the public
// contact form and the registration endpoint.
package captcha

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	verifyURL     = "https://www.google.com/recaptcha/api/siteverify"
	verifyTimeout = 10 * time.Second
)

// VerifyResponse is the reCAPTCHA siteverify API response.
type VerifyResponse struct {
	Success     bool      `json:"success"`
	ChallengeTS time.Time `json:"challenge_ts"`
	Hostname    string    `json:"hostname"`
	ErrorCodes  []string  `json:"error-codes"`
}

// Verifier checks reCAPTCHA tokens. A Verifier with an empty secret is
// disabled and accepts everything, so local development needs no keys.
type Verifier struct {
	secretKey string
	client    *http.Client
	endpoint  string
}

// New creates a verifier. secretKey may be empty to disable verification.
func New(secretKey string) *Verifier {
	return &Verifier{
		secretKey: secretKey,
		client:    &http.Client{Timeout: verifyTimeout},
		endpoint:  verifyURL,
	}
}

// Enabled reports whether real verification happens.
func (v *Verifier) Enabled() bool {
	return v.secretKey != ""
}

// Verify checks the token with the reCAPTCHA API. Disabled verifiers
// accept any token. A missing token always fails when enabled.
func (v *Verifier) Verify(ctx context.Context, token, remoteIP string) (bool, error) {
	if !v.Enabled() {
		return true, nil
	}
	if token == "" {
		return false, nil
	}

	data := url.Values{}
	data.Set("secret", v.secretKey)
	data.Set("response", token)
	if remoteIP != "" {
		data.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.endpoint, strings.NewReader(data.Encode()))
	if err != nil {
		return false, fmt.Errorf("building verification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("captcha verification request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	var result VerifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return false, fmt.Errorf("parsing captcha response: %w", err)
	}

	if !result.Success {
		slog.Warn("captcha verification failed",
			"error_codes", result.ErrorCodes,
			"remote_ip", remoteIP,
		)
	}
	return result.Success, nil
}

// TokenFromRequest extracts the reCAPTCHA token from a form submission.
func TokenFromRequest(r *http.Request) string {
	return r.FormValue("g-recaptcha-response")
}
