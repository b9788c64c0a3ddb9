package router

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	jwtmiddleware "github.com/auth0/go-jwt-middleware/v2"
	"github.com/auth0/go-jwt-middleware/v2/jwks"
	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/soozu/stove-license/internal/domain"
)

// NewAuth0Validator creates a validator for Auth0 machine-to-machine tokens
// sent as "Authorization: Bearer <jwt>".
func NewAuth0Validator(auth0Domain, auth0Audience string) (AdminValidator, error) {
	issuerURL, err := url.Parse("https://" + auth0Domain + "/")
	if err != nil {
		return nil, fmt.Errorf("failed to parse the issuer url: %w", err)
	}

	provider := jwks.NewCachingProvider(issuerURL, 5*time.Minute)
	jwtValidator, err := validator.New(
		provider.KeyFunc,
		validator.RS256,
		issuerURL.String(),
		[]string{auth0Audience},
		validator.WithAllowedClockSkew(time.Minute),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT validator: %w", err)
	}

	return func(r *http.Request) (*AdminResult, error) {
		token, err := jwtmiddleware.AuthHeaderTokenExtractor(r)
		if err != nil {
			return nil, fmt.Errorf("malformed authorization header: %w", err)
		}
		if token == "" {
			return nil, nil
		}

		validated, err := jwtValidator.ValidateToken(r.Context(), token)
		if err != nil {
			return nil, fmt.Errorf("invalid JWT token")
		}

		claims := validated.(*validator.ValidatedClaims)
		return &AdminResult{
			Subject: claims.RegisteredClaims.Subject,
			Method:  domain.AuthMethodAuth0,
		}, nil
	}, nil
}
