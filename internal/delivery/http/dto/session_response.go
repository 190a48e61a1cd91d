package dto

import (
	"learnpath/internal/domain/plan"
	"learnpath/internal/domain/session"
	"learnpath/internal/domain/user"
	"learnpath/internal/usecase"

	"github.com/google/uuid"
)

type LoginResponse struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	Session      SessionData `json:"session"`
}

// SessionData is a session's state plus the screen it routes to.
type SessionData struct {
	SessionID       uuid.UUID         `json:"session_id"`
	Screen          session.Screen    `json:"screen"`
	IsAuthenticated bool              `json:"is_authenticated"`
	User            *user.User        `json:"user"`
	LearningPlan    plan.LearningPlan `json:"learning_plan"`
	CurrentView     session.View      `json:"current_view"`
}

func NewSessionData(v usecase.SessionView) SessionData {
	return SessionData{
		SessionID:       v.ID,
		Screen:          v.Screen,
		IsAuthenticated: v.State.IsAuthenticated(),
		User:            v.State.User,
		LearningPlan:    v.State.LearningPlan,
		CurrentView:     v.State.CurrentView,
	}
}

func NewLoginResponse(res usecase.LoginResult) LoginResponse {
	return LoginResponse{
		AccessToken:  res.Tokens.AccessToken,
		RefreshToken: res.Tokens.RefreshToken,
		Session:      NewSessionData(res.Session),
	}
}
