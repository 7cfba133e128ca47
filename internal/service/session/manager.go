package session

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/amit-sw/ChatAuthenticated/internal/domain"
	"github.com/amit-sw/ChatAuthenticated/internal/repository"
)

// Backend is the slice of the Supabase client the manager needs.
type Backend interface {
	AuthorizationURL(provider, redirectTo string) (string, error)
	ExchangeCode(ctx context.Context, code string) (*domain.Session, error)
	SignOut(ctx context.Context, accessToken string) error
}

// Manager establishes, caches, and tears down the authenticated session for
// one browser, bridging the OAuth redirect callback into the session store.
type Manager struct {
	backend Backend
	store   repository.SessionStore
	logger  *zap.Logger
	now     func() time.Time
}

// NewManager wires the session manager.
func NewManager(backend Backend, store repository.SessionStore, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.L()
	}
	return &Manager{backend: backend, store: store, logger: logger, now: time.Now}
}

// LoginURL asks the backend for a Google authorization URL pointing back at
// redirectURL. Failures are classed ErrLoginURL so the login screen can show
// them inline instead of crashing the render.
func (m *Manager) LoginURL(redirectURL string) (string, error) {
	loginURL, err := m.backend.AuthorizationURL("google", redirectURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrLoginURL, err)
	}
	return loginURL, nil
}

// CallbackResult reports what HandleCallback did with the request's query
// parameters.
type CallbackResult struct {
	// SignedIn is true when a code exchange succeeded this cycle.
	SignedIn bool
	// ClearParams is true when the consumed parameters must be cleared so a
	// refresh does not re-trigger the exchange.
	ClearParams bool
	// ErrorDescription carries a provider-reported failure verbatim.
	ErrorDescription string
}

// HandleCallback inspects the query parameters of the current render cycle.
// Precedence: a provider error_description wins over everything; otherwise a
// code is exchanged only when no session is cached yet. A failed exchange
// leaves the store untouched.
func (m *Manager) HandleCallback(ctx context.Context, sessionID string, params url.Values) (CallbackResult, error) {
	if desc := strings.TrimSpace(params.Get("error_description")); desc != "" {
		return CallbackResult{ErrorDescription: desc}, nil
	}

	code := strings.TrimSpace(params.Get("code"))
	if code == "" {
		return CallbackResult{}, nil
	}

	cached, err := m.store.Get(ctx, sessionID)
	if err != nil {
		return CallbackResult{}, fmt.Errorf("load session: %w", err)
	}
	if cached != nil {
		// Duplicate delivery of an already-consumed code; exchanging again
		// would invalidate the live session.
		return CallbackResult{}, nil
	}

	session, err := m.backend.ExchangeCode(ctx, code)
	if err != nil {
		return CallbackResult{}, fmt.Errorf("%w: %v", domain.ErrCallback, err)
	}
	if err := m.store.Put(ctx, sessionID, *session); err != nil {
		return CallbackResult{}, fmt.Errorf("store session: %w", err)
	}

	m.logger.Info("session established",
		zap.String("email", session.User.Email),
		zap.String("user_id", session.User.ID),
	)
	return CallbackResult{SignedIn: true, ClearParams: true}, nil
}

// Session returns the cached session, or nil when none exists. A session
// whose access token is past its expiry claim is dropped and reported as
// ErrSessionExpired so the UI can say why the login screen came back.
func (m *Manager) Session(ctx context.Context, sessionID string) (*domain.Session, error) {
	session, err := m.store.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if session == nil {
		return nil, nil
	}
	if tokenExpired(session.AccessToken, m.now()) {
		if err := m.store.Delete(ctx, sessionID); err != nil {
			m.logger.Warn("drop expired session", zap.Error(err))
		}
		return nil, domain.ErrSessionExpired
	}
	return session, nil
}

// IsAuthenticated reports whether a live session is cached.
func (m *Manager) IsAuthenticated(ctx context.Context, sessionID string) bool {
	session, err := m.Session(ctx, sessionID)
	return err == nil && session != nil
}

// Logout signs the session out of the backend and clears local state. The
// local clear always happens, even when the backend call fails: a remote
// error must never keep a user logged in locally.
func (m *Manager) Logout(ctx context.Context, sessionID string) error {
	session, err := m.store.Get(ctx, sessionID)
	var signOutErr error
	if err == nil && session != nil {
		signOutErr = m.backend.SignOut(ctx, session.AccessToken)
	}

	if err := m.store.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	if signOutErr != nil {
		m.logger.Warn("backend sign-out failed", zap.Error(signOutErr))
	}
	return nil
}
