package dto

import (
	"learnpath/internal/domain/plan"
	"learnpath/internal/domain/session"
	"learnpath/internal/domain/user"
)

type SetViewRequest struct {
	View string `json:"view" validate:"notblank"`
}

func (r SetViewRequest) ToView() session.View {
	return session.View(r.View)
}

type SetPlanRequest struct {
	Plan plan.LearningPlan `json:"learning_plan" validate:"required,min=1,dive"`
}

type OnboardingRequest struct {
	YearsExperience  int    `json:"years_experience" validate:"gte=0,lte=60"`
	CurrentTechStack string `json:"current_tech_stack" validate:"notblank,max=200"`
	DesiredTechStack string `json:"desired_tech_stack" validate:"notblank,max=200"`
}

func (r OnboardingRequest) ToDomain() user.OnboardingData {
	return user.OnboardingData{
		YearsExperience:  r.YearsExperience,
		CurrentTechStack: r.CurrentTechStack,
		DesiredTechStack: r.DesiredTechStack,
	}
}

type UserInfoRequest struct {
	ExperienceYears  int    `json:"experience_years" validate:"gte=0,lte=60"`
	CurrentTechStack string `json:"current_tech_stack" validate:"notblank,max=200"`
	ExpectedRole     string `json:"expected_role" validate:"notblank,max=200"`
}

func (r UserInfoRequest) ToDomain() user.UserInfoData {
	return user.UserInfoData{
		ExperienceYears:  r.ExperienceYears,
		CurrentTechStack: r.CurrentTechStack,
		ExpectedRole:     r.ExpectedRole,
	}
}
