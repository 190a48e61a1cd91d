package usecase

import (
	"context"

	"learnpath/internal/domain/notification"
	"learnpath/internal/domain/plan"
	"learnpath/internal/domain/session"
	"learnpath/internal/domain/user"
	"learnpath/internal/logging"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type DashboardView struct {
	User        user.User         `json:"user"`
	CurrentView session.View      `json:"current_view"`
	Navigation  []session.NavItem `json:"navigation"`
	Plan        plan.LearningPlan `json:"learning_plan,omitempty"`
}

type HomeView struct {
	User                user.User      `json:"user"`
	Progress            *user.Progress `json:"progress"`
	UnreadNotifications int            `json:"unread_notifications"`
}

type ContentLibraryView struct {
	Plan   plan.LearningPlan `json:"learning_plan"`
	Source string            `json:"source"`
}

const (
	PlanSourceSession = "session"
	PlanSourceBackend = "backend"
)

// Dashboard assembles the views behind the dashboard screen. Every call
// reloads from the backend.
type Dashboard struct {
	sessions *SessionManager
	backend  Backend
	logger   logging.Logger
}

func NewDashboardUsecase(sessions *SessionManager, backend Backend, logger logging.Logger) *Dashboard {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Dashboard{sessions: sessions, backend: backend, logger: logger.With("component", "dashboard")}
}

func (d *Dashboard) Overview(ctx context.Context, id uuid.UUID) (DashboardView, error) {
	st, err := d.sessions.Dashboard(ctx, id)
	if err != nil {
		return DashboardView{}, err
	}
	return DashboardView{
		User:        *st.User,
		CurrentView: session.ResolveView(st.CurrentView),
		Navigation:  session.Navigation(),
		Plan:        st.LearningPlan,
	}, nil
}

// Home fetches progress and notifications concurrently. A failed fetch is
// logged and leaves its part of the view empty; only cancellation of ctx
// fails the view.
func (d *Dashboard) Home(ctx context.Context, id uuid.UUID) (HomeView, error) {
	st, err := d.sessions.Dashboard(ctx, id)
	if err != nil {
		return HomeView{}, err
	}

	out := HomeView{User: *st.User}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := d.backend.GetUserProgress(gctx, st.User.ID)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			d.logger.Warn(ctx, "fetch progress failed", "user_id", st.User.ID, "error", err)
			return nil
		}
		out.Progress = &p
		return nil
	})
	g.Go(func() error {
		items, err := d.backend.GetNotifications(gctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			d.logger.Warn(ctx, "fetch notifications failed", "error", err)
			return nil
		}
		out.UnreadNotifications = notification.UnreadCount(items)
		return nil
	})
	if err := g.Wait(); err != nil {
		return HomeView{}, err
	}
	return out, nil
}

// ContentLibrary prefers the plan held by the session and only asks the
// backend when the session has none.
func (d *Dashboard) ContentLibrary(ctx context.Context, id uuid.UUID) (ContentLibraryView, error) {
	st, err := d.sessions.Dashboard(ctx, id)
	if err != nil {
		return ContentLibraryView{}, err
	}
	if len(st.LearningPlan) > 0 {
		return ContentLibraryView{Plan: st.LearningPlan, Source: PlanSourceSession}, nil
	}

	p, err := d.backend.GetLearningPlan(ctx)
	if err != nil {
		d.logger.Warn(ctx, "fetch learning plan failed", "error", err)
		if ctx.Err() != nil {
			return ContentLibraryView{}, ctx.Err()
		}
		p = plan.LearningPlan{}
	}
	return ContentLibraryView{Plan: p, Source: PlanSourceBackend}, nil
}
