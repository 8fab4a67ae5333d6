package auth

import (
	"context"
	"fmt"

	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"

	"github.com/alumbridge/scholarship-service/internal/config"
)

// CasdoorVerifier validates bearer tokens issued by an external Casdoor
// deployment, so SSO sessions can reach the API alongside locally issued
// tokens.
type CasdoorVerifier struct {
	client *casdoorsdk.Client
}

func NewCasdoorVerifier(cfg config.CasdoorConfig) *CasdoorVerifier {
	client := casdoorsdk.NewClient(
		cfg.Endpoint,
		cfg.ClientID,
		cfg.ClientSecret,
		cfg.Cert,
		cfg.Application,
		cfg.Organization,
	)
	return &CasdoorVerifier{client: client}
}

func (v *CasdoorVerifier) Verify(ctx context.Context, token string) (string, error) {
	claims, err := v.client.ParseJwtToken(token)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Id == "" {
		return "", ErrInvalidToken
	}
	return claims.Id, nil
}
