package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
)

// Verifier checks tokens against a remote auth service. Any failure to reach
// or parse the service response counts as a rejection, so an outage never
// lets unverified tokens through.
type Verifier struct {
	endpoint string
	apiKey   string
	client   *http.Client
	logger   zerolog.Logger
}

// NewVerifier creates a Verifier for the given endpoint and API key.
func NewVerifier(endpoint, apiKey string, logger zerolog.Logger) *Verifier {
	return &Verifier{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: 5 * time.Second},
		logger:   logger,
	}
}

type verifyRequest struct {
	Token  string `json:"token"`
	APIKey string `json:"apiKey"`
}

type verifyResponse struct {
	Valid bool `json:"valid"`
}

// VerifyToken posts the token to the auth service and returns whether the
// service reports it valid. Returns false on any transport or decode error.
func (v *Verifier) VerifyToken(ctx context.Context, token string) bool {
	body, err := json.Marshal(verifyRequest{Token: token, APIKey: v.apiKey})
	if err != nil {
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.endpoint, bytes.NewReader(body))
	if err != nil {
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := v.client.Do(req)
	if err != nil {
		v.logger.Warn().Err(err).Msg("token verification request failed")
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		v.logger.Warn().Int("status", resp.StatusCode).Msg("token verification rejected")
		return false
	}

	var vr verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&vr); err != nil {
		v.logger.Warn().Err(err).Msg("token verification response malformed")
		return false
	}

	return vr.Valid
}

// ServiceToken mints a short-lived HS256 token for service-to-service calls.
func ServiceToken(signingKey []byte, issuer string) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   "service",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(15 * time.Minute)),
		},
		Roles: []string{"service"},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(signingKey)
}
