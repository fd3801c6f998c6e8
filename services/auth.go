package services

import (
	"context"
	"fmt"

	"github.com/descope/go-sdk/descope/client"
	"github.com/rs/zerolog/log"
)

// DescopeAuth validates admin session tokens against Descope. The only
// contract the API layer relies on is the boolean answer: is this bearer an
// authorized administrator or not.
type DescopeAuth struct {
	client *client.DescopeClient
}

func NewDescopeAuth(projectID string) (*DescopeAuth, error) {
	if projectID == "" {
		return nil, fmt.Errorf("descope project ID is required")
	}

	descopeClient, err := client.NewWithConfig(&client.Config{ProjectID: projectID})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Descope client: %w", err)
	}

	return &DescopeAuth{client: descopeClient}, nil
}

// Validate reports whether the session token belongs to a live session.
func (a *DescopeAuth) Validate(ctx context.Context, sessionToken string) bool {
	ok, _, err := a.client.Auth.ValidateSessionWithToken(ctx, sessionToken)
	if err != nil {
		log.Debug().Err(err).Msg("Descope session validation failed")
		return false
	}
	return ok
}
