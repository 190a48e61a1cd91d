package usecase

import (
	"context"
	"errors"

	"learnpath/internal/pkg/jwt"

	"github.com/google/uuid"
)

var (
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
	ErrInternal            = errors.New("internal error")
)

type Tokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type LoginResult struct {
	Session SessionView `json:"session"`
	Tokens  Tokens      `json:"tokens"`
}

type AuthUsecase interface {
	Login(ctx context.Context, sessionID uuid.UUID, email, password string) (LoginResult, error)
	Refresh(ctx context.Context, refreshToken string) (Tokens, error)
	Logout(ctx context.Context, sessionID uuid.UUID) (SessionView, error)
}

type Auth struct {
	sessions *SessionManager
	jwt      jwt.Service
}

func NewAuthUsecase(sessions *SessionManager, jwtSvc jwt.Service) *Auth {
	return &Auth{sessions: sessions, jwt: jwtSvc}
}

// Login authenticates into sessionID when it names a live session and into
// a fresh session otherwise.
func (u *Auth) Login(ctx context.Context, sessionID uuid.UUID, email, password string) (LoginResult, error) {
	if sessionID != uuid.Nil {
		if _, err := u.sessions.State(ctx, sessionID); err != nil {
			if !errors.Is(err, ErrSessionNotFound) {
				return LoginResult{}, err
			}
			sessionID = uuid.Nil
		}
	}

	var (
		v   SessionView
		err error
	)
	if sessionID == uuid.Nil {
		v, err = u.sessions.LoginNew(ctx, email, password)
	} else {
		v, err = u.sessions.Login(ctx, sessionID, email, password)
	}
	if err != nil {
		return LoginResult{}, err
	}

	tokens, err := u.issue(v)
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{Session: v, Tokens: tokens}, nil
}

func (u *Auth) Refresh(ctx context.Context, refreshToken string) (Tokens, error) {
	if refreshToken == "" {
		return Tokens{}, ErrUnauthorized
	}

	claims, err := u.jwt.ValidateToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Tokens{}, ErrRefreshTokenExpired
		}
		return Tokens{}, ErrInvalidRefreshToken
	}
	if !u.jwt.IsRefreshToken(claims) {
		return Tokens{}, ErrInvalidRefreshToken
	}

	v, err := u.sessions.State(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return Tokens{}, ErrInvalidRefreshToken
		}
		return Tokens{}, err
	}
	return u.issue(v)
}

func (u *Auth) Logout(ctx context.Context, sessionID uuid.UUID) (SessionView, error) {
	return u.sessions.Logout(ctx, sessionID)
}

func (u *Auth) issue(v SessionView) (Tokens, error) {
	var (
		userID int
		email  string
	)
	if v.State.User != nil {
		userID = v.State.User.ID
		email = v.State.User.Email
	}

	access, err := u.jwt.GenerateAccessToken(v.ID, userID, email)
	if err != nil {
		return Tokens{}, ErrInternal
	}
	refresh, err := u.jwt.GenerateRefreshToken(v.ID)
	if err != nil {
		return Tokens{}, ErrInternal
	}
	return Tokens{AccessToken: access, RefreshToken: refresh}, nil
}

var _ AuthUsecase = (*Auth)(nil)
