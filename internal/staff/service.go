package staff

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	pkgAuth "github.com/phonemechanic/repair-ledger/pkg/auth"
	"github.com/phonemechanic/repair-ledger/pkg/auth/session"
	"github.com/phonemechanic/repair-ledger/pkg/config"
	"github.com/phonemechanic/repair-ledger/pkg/enums"
	pkgerrors "github.com/phonemechanic/repair-ledger/pkg/errors"
	"github.com/phonemechanic/repair-ledger/pkg/logger"
	"github.com/phonemechanic/repair-ledger/pkg/security"
)

const invalidCredentialsMessage = "invalid credentials"

// LoginRequest is a counter login: the store being opened and a staff PIN.
type LoginRequest struct {
	Store string `json:"store"`
	PIN   string `json:"pin" validate:"required"`
}

// RefreshRequest carries the refresh token issued at login.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// SessionResponse is returned by login and refresh.
type SessionResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	Store        enums.Store     `json:"store"`
	Role         enums.StaffRole `json:"role"`
}

// Service opens, rotates and closes staff sessions.
type Service interface {
	Login(ctx context.Context, req LoginRequest) (*SessionResponse, error)
	Refresh(ctx context.Context, accessToken, refreshToken string) (*SessionResponse, error)
	Logout(ctx context.Context, accessToken string) error
}

type sessionManager interface {
	Generate(ctx context.Context, accessID string, staff session.Staff) (string, error)
	Rotate(ctx context.Context, oldAccessID, provided string) (string, string, session.Staff, error)
	Revoke(ctx context.Context, accessID string) error
}

// ServiceParams bundles the dependencies required to build a staff service.
type ServiceParams struct {
	SessionManager sessionManager
	JWTConfig      config.JWTConfig
	StaffConfig    config.StaffConfig
	Logger         *logger.Logger
	Now            func() time.Time
}

type service struct {
	sessions sessionManager
	jwtCfg   config.JWTConfig
	staffCfg config.StaffConfig
	logg     *logger.Logger
	now      func() time.Time
}

// NewService constructs the staff session service.
func NewService(params ServiceParams) (Service, error) {
	if params.SessionManager == nil {
		return nil, fmt.Errorf("session manager is required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if len(params.StaffConfig.PINHashes) == 0 && len(params.StaffConfig.AdminPINHashes) == 0 {
		return nil, fmt.Errorf("at least one staff pin hash is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		sessions: params.SessionManager,
		jwtCfg:   params.JWTConfig,
		staffCfg: params.StaffConfig,
		logg:     params.Logger,
		now:      now,
	}, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*SessionResponse, error) {
	store, err := enums.ParseStore(req.Store)
	if err != nil {
		return nil, pkgerrors.Validation("invalid login", pkgerrors.FieldErrors{"store": err.Error()})
	}
	pin := strings.TrimSpace(req.PIN)
	if pin == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	role, err := s.authenticate(ctx, pin)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	staff := session.Staff{Store: store, Role: role, OpenedAt: now}
	accessID := session.NewAccessID()
	resp, err := s.open(ctx, accessID, staff, now)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.sessions.Generate(ctx, accessID, staff)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store refresh token")
	}
	resp.RefreshToken = refreshToken

	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"store":            store.String(),
		"staff_role":       role.String(),
		"staff_session_id": accessID,
	}), "staff session opened")
	return resp, nil
}

// authenticate checks admin hashes first so a PIN listed in both grants admin.
func (s *service) authenticate(ctx context.Context, pin string) (enums.StaffRole, error) {
	ok, err := security.MatchAnyPIN(pin, s.staffCfg.AdminPINHashes)
	if err != nil {
		s.logg.Error(ctx, "malformed admin pin hash", err)
	}
	if ok {
		return enums.StaffRoleAdmin, nil
	}
	ok, err = security.MatchAnyPIN(pin, s.staffCfg.PINHashes)
	if err != nil {
		s.logg.Error(ctx, "malformed staff pin hash", err)
	}
	if ok {
		return enums.StaffRoleStaff, nil
	}
	return "", pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
}

func (s *service) Refresh(ctx context.Context, accessToken, refreshToken string) (*SessionResponse, error) {
	claims, err := s.claims(accessToken)
	if err != nil {
		return nil, err
	}

	newAccessID, newRefreshToken, staff, err := s.sessions.Rotate(ctx, claims.SessionID(), refreshToken)
	if err != nil {
		if errors.Is(err, session.ErrInvalidRefreshToken) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid refresh token")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rotate session")
	}

	resp, err := s.open(ctx, newAccessID, staff, s.now().UTC())
	if err != nil {
		return nil, err
	}
	resp.RefreshToken = newRefreshToken
	return resp, nil
}

func (s *service) Logout(ctx context.Context, accessToken string) error {
	claims, err := s.claims(accessToken)
	if err != nil {
		return err
	}
	if err := s.sessions.Revoke(ctx, claims.SessionID()); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke session")
	}
	s.logg.Info(s.logg.WithStaffSessionID(ctx, claims.SessionID()), "staff session closed")
	return nil
}

// claims accepts expired tokens so a lapsed access token can still be
// refreshed or logged out.
func (s *service) claims(accessToken string) (*pkgAuth.AccessTokenClaims, error) {
	claims, err := pkgAuth.ParseAccessTokenAllowExpired(s.jwtCfg, strings.TrimSpace(accessToken))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token")
	}
	if claims.SessionID() == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session id")
	}
	return claims, nil
}

func (s *service) open(_ context.Context, accessID string, staff session.Staff, now time.Time) (*SessionResponse, error) {
	token, err := pkgAuth.MintAccessToken(s.jwtCfg, now, pkgAuth.AccessTokenPayload{
		Store: staff.Store,
		Role:  staff.Role,
		JTI:   accessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}
	return &SessionResponse{AccessToken: token, Store: staff.Store, Role: staff.Role}, nil
}
