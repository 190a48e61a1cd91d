package user

type User struct {
	ID                   int             `json:"id"`
	Email                string          `json:"email"`
	Name                 string          `json:"name"`
	Initials             string          `json:"initials"`
	HasCompletedUserInfo bool            `json:"has_completed_user_info"`
	Progress             *Progress       `json:"progress,omitempty"`
	OnboardingData       *OnboardingData `json:"onboarding_data,omitempty"`
}

type Progress struct {
	Completed  int      `json:"completed"`
	Total      int      `json:"total"`
	Percentage int      `json:"percentage"`
	NextSteps  []string `json:"next_steps,omitempty"`
}

// OnboardingData is the intake payload stored on the user.
type OnboardingData struct {
	YearsExperience  int    `json:"years_experience"`
	CurrentTechStack string `json:"current_tech_stack"`
	DesiredTechStack string `json:"desired_tech_stack"`
}

// UserInfoData is the intake payload submitted by the user-info form.
type UserInfoData struct {
	ExperienceYears  int    `json:"experience_years"`
	CurrentTechStack string `json:"current_tech_stack"`
	ExpectedRole     string `json:"expected_role"`
}

// AsOnboarding maps user-info fields onto the onboarding shape.
// The expected role becomes the desired tech stack.
func (d UserInfoData) AsOnboarding() OnboardingData {
	return OnboardingData{
		YearsExperience:  d.ExperienceYears,
		CurrentTechStack: d.CurrentTechStack,
		DesiredTechStack: d.ExpectedRole,
	}
}

// Clone returns a deep copy so callers never share pointers with a store.
func (u User) Clone() User {
	out := u
	if u.Progress != nil {
		p := *u.Progress
		if u.Progress.NextSteps != nil {
			p.NextSteps = append([]string(nil), u.Progress.NextSteps...)
		}
		out.Progress = &p
	}
	if u.OnboardingData != nil {
		d := *u.OnboardingData
		out.OnboardingData = &d
	}
	return out
}
