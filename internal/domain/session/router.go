package session

type Screen string

const (
	ScreenLogin     Screen = "login"
	ScreenUserInfo  Screen = "user-info"
	ScreenDashboard Screen = "dashboard"
)

// Route picks the top-level screen for a session. Intake completion is the
// only flag consulted once a user exists: onboarding data left on a user
// without the completion flag still routes to the intake form.
func Route(st State) Screen {
	if !st.IsAuthenticated() {
		return ScreenLogin
	}
	if !st.User.HasCompletedUserInfo {
		return ScreenUserInfo
	}
	return ScreenDashboard
}

type NavItem struct {
	ID    View   `json:"id"`
	Label string `json:"label"`
}

var navigation = []NavItem{
	{ID: ViewHome, Label: "Home"},
	{ID: ViewContentLibrary, Label: "Content Library"},
	{ID: ViewTechnicalCourses, Label: "Technical Courses"},
	{ID: ViewSecurityTraining, Label: "Security Training"},
	{ID: ViewLeaderboard, Label: "Leaderboard"},
}

// Navigation returns the dashboard's fixed navigation list.
func Navigation() []NavItem {
	return append([]NavItem(nil), navigation...)
}

// ResolveView maps unknown view identifiers to the home view.
func ResolveView(v View) View {
	for _, it := range navigation {
		if it.ID == v {
			return v
		}
	}
	return ViewHome
}
