package backend

import (
	"context"
	"log/slog"

	"github.com/shenavaapp/shenava-client/internal/domain"
	"github.com/shenavaapp/shenava-client/internal/errors"
	"github.com/shenavaapp/shenava-client/internal/store"
)

// Auth exposes the authenticated user's identity from the locally persisted
// session. The backend mints the tokens; the client only holds them.
type Auth struct {
	store  *store.Store
	logger *slog.Logger
}

// NewAuth creates the auth capability over the local session store.
func NewAuth(kv *store.Store, logger *slog.Logger) *Auth {
	return &Auth{store: kv, logger: logger}
}

// CurrentUserID returns the authenticated user's ID, or "" when signed out.
func (a *Auth) CurrentUserID(ctx context.Context) string {
	session, err := a.store.GetSession(ctx)
	if err != nil {
		return ""
	}
	return session.UserID
}

// AccessToken implements TokenSource from the persisted session.
func (a *Auth) AccessToken(ctx context.Context) string {
	session, err := a.store.GetSession(ctx)
	if err != nil {
		return ""
	}
	return session.AccessToken
}

// SaveSession persists a session received from the backend's auth flow.
func (a *Auth) SaveSession(ctx context.Context, session *domain.Session) error {
	if session.UserID == "" || session.AccessToken == "" {
		return errors.Validation("session requires user ID and access token")
	}
	return a.store.SaveSession(ctx, session)
}

// SignOut clears the local session. Idempotent.
func (a *Auth) SignOut(ctx context.Context) error {
	if err := a.store.DeleteSession(ctx); err != nil {
		return err
	}
	a.logger.Info("signed out")
	return nil
}

var _ TokenSource = (*Auth)(nil)
