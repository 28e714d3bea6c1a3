package http

import (
	identityUsecases "chroma/internal/application/identity/usecases"
	"chroma/internal/infrastructure/auth"
)

// credentialIssuerAdapter bridges the JWT service to the use case's issuer
// interface, keeping the application layer free of JWT types.
type credentialIssuerAdapter struct {
	jwt *auth.JWTService
}

func (a *credentialIssuerAdapter) Generate(userID string, sessionID string) (*identityUsecases.IssuedCredential, error) {
	issued, err := a.jwt.Generate(userID, sessionID)
	if err != nil {
		return nil, err
	}
	return &identityUsecases.IssuedCredential{
		Token:     issued.Token,
		ExpiresAt: issued.ExpiresAt,
		ExpiresIn: issued.ExpiresIn,
	}, nil
}
