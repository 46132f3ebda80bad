package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"sesaco/internal/audit"
	"sesaco/internal/auth/models"
	"sesaco/internal/jwttoken"
	"sesaco/internal/platform/metrics"
	dErrors "sesaco/pkg/domain-errors"
	"sesaco/pkg/platform/sentinel"
	"sesaco/pkg/requestcontext"
)

// InspectorStore persists inspector accounts.
type InspectorStore interface {
	Save(ctx context.Context, inspector models.Inspector) error
	FindByCedula(ctx context.Context, cedula string) (models.Inspector, error)
}

// SessionStore persists login sessions.
type SessionStore interface {
	Save(ctx context.Context, session models.Session) error
	Find(ctx context.Context, id string) (models.Session, error)
	Revoke(ctx context.Context, id string) error
}

// Service orchestrates login, logout, and inspector lookup.
type Service struct {
	inspectors InspectorStore
	sessions   SessionStore
	jwt        *jwttoken.Service
	tokenTTL   time.Duration
	logger     *slog.Logger
	metrics    *metrics.Metrics
	publisher  audit.Publisher
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithAuditPublisher(p audit.Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

// New constructs the auth service.
func New(inspectors InspectorStore, sessions SessionStore, jwt *jwttoken.Service, tokenTTL time.Duration, opts ...Option) *Service {
	s := &Service{
		inspectors: inspectors,
		sessions:   sessions,
		jwt:        jwt,
		tokenTTL:   tokenTTL,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TokenResult is the successful login payload.
type TokenResult struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	Name        string      `json:"name"`
	Role        models.Role `json:"role"`
	ExpiresAt   time.Time   `json:"expires_at"`
}

// Login verifies credentials, creates a session, and issues an access token.
// Failures are reported uniformly so callers cannot probe which cedulas exist.
func (s *Service) Login(ctx context.Context, cedula, password string) (*TokenResult, error) {
	cedula = strings.TrimSpace(cedula)
	if cedula == "" || password == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "cedula and password are required")
	}

	inspector, err := s.inspectors.FindByCedula(ctx, cedula)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, s.loginFailed(ctx, cedula)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up inspector")
	}

	if bcrypt.CompareHashAndPassword([]byte(inspector.PasswordHash), []byte(password)) != nil {
		return nil, s.loginFailed(ctx, cedula)
	}

	now := requestcontext.Now(ctx)
	session := models.Session{
		ID:          uuid.NewString(),
		InspectorID: inspector.Cedula,
		Device:      requestcontext.Device(ctx),
		CreatedAt:   now,
		ExpiresAt:   now.Add(s.tokenTTL),
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create session")
	}

	token, err := s.jwt.GenerateAccessToken(inspector.Cedula, session.ID, now, s.tokenTTL)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to sign token")
	}

	s.metrics.IncrementLogin("success")
	if err := audit.Emit(ctx, s.publisher, audit.Event{
		Action:      audit.ActionLoginSucceeded,
		InspectorID: inspector.Cedula,
		Device:      session.Device,
	}); err != nil {
		s.logger.WarnContext(ctx, "audit emit failed", "action", audit.ActionLoginSucceeded, "error", err)
	}

	return &TokenResult{
		AccessToken: token,
		TokenType:   "bearer",
		Name:        inspector.Name,
		Role:        inspector.Role,
		ExpiresAt:   session.ExpiresAt,
	}, nil
}

func (s *Service) loginFailed(ctx context.Context, cedula string) error {
	s.metrics.IncrementLogin("failure")
	if err := audit.Emit(ctx, s.publisher, audit.Event{
		Action:      audit.ActionLoginFailed,
		InspectorID: cedula,
		Device:      requestcontext.Device(ctx),
	}); err != nil {
		s.logger.WarnContext(ctx, "audit emit failed", "action", audit.ActionLoginFailed, "error", err)
	}
	return dErrors.New(dErrors.CodeUnauthorized, "invalid cedula or password")
}

// Logout revokes the current session. Idempotent: revoking a session that is
// already gone succeeds.
func (s *Service) Logout(ctx context.Context) error {
	sessionID := requestcontext.SessionID(ctx)
	if sessionID == "" {
		return dErrors.New(dErrors.CodeUnauthorized, "no active session")
	}
	if err := s.sessions.Revoke(ctx, sessionID); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to revoke session")
	}
	if err := audit.Emit(ctx, s.publisher, audit.Event{
		Action:      audit.ActionLogout,
		InspectorID: requestcontext.InspectorID(ctx),
	}); err != nil {
		s.logger.WarnContext(ctx, "audit emit failed", "action", audit.ActionLogout, "error", err)
	}
	return nil
}

// Me returns the authenticated inspector.
func (s *Service) Me(ctx context.Context) (models.Inspector, error) {
	cedula := requestcontext.InspectorID(ctx)
	if cedula == "" {
		return models.Inspector{}, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}
	inspector, err := s.inspectors.FindByCedula(ctx, cedula)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return models.Inspector{}, dErrors.New(dErrors.CodeNotFound, "inspector not found")
		}
		return models.Inspector{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up inspector")
	}
	inspector.PasswordHash = ""
	return inspector, nil
}

// IsLive implements the middleware session check.
func (s *Service) IsLive(ctx context.Context, sessionID string) bool {
	_, err := s.sessions.Find(ctx, sessionID)
	return err == nil
}

// Bootstrap seeds an admin account if the cedula is not registered yet, so a
// fresh deployment is usable without manual store surgery.
func (s *Service) Bootstrap(ctx context.Context, cedula, password, name string) error {
	cedula = strings.TrimSpace(cedula)
	if cedula == "" || password == "" {
		return dErrors.New(dErrors.CodeBadRequest, "bootstrap cedula and password are required")
	}

	if _, err := s.inspectors.FindByCedula(ctx, cedula); err == nil {
		return nil
	} else if !errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up inspector")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to hash password")
	}
	return s.inspectors.Save(ctx, models.Inspector{
		Cedula:       cedula,
		Name:         name,
		Role:         models.RoleAdmin,
		PasswordHash: string(hash),
		CreatedAt:    requestcontext.Now(ctx),
	})
}
