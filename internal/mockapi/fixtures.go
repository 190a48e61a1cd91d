package mockapi

import (
	"learnpath/internal/domain/course"
	"learnpath/internal/domain/leaderboard"
	"learnpath/internal/domain/notification"
	"learnpath/internal/domain/plan"
	"learnpath/internal/domain/quiz"
	"learnpath/internal/domain/user"
)

const fixturePassword = "password123"

func completedUserFixture() user.User {
	return user.User{
		ID:                   1,
		Email:                "user@example.com",
		Name:                 "John Doe",
		Initials:             "JD",
		HasCompletedUserInfo: true,
		Progress:             &user.Progress{Completed: 12, Total: 20, Percentage: 60},
		OnboardingData: &user.OnboardingData{
			YearsExperience:  5,
			CurrentTechStack: "React, Node.js, MongoDB",
			DesiredTechStack: "React, AWS Lambda, DynamoDB",
		},
	}
}

func newUserFixture() user.User {
	return user.User{
		ID:                   2,
		Email:                "anirudh@example.com",
		Name:                 "Anirudh Sharma",
		Initials:             "AS",
		HasCompletedUserInfo: false,
		Progress:             &user.Progress{Completed: 0, Total: 20, Percentage: 0},
	}
}

func technicalCourses() []course.Course {
	return []course.Course{
		{ID: 1, Title: "Advanced React Patterns", Description: "Master advanced React concepts and patterns", Duration: "8 hours", Level: "Advanced", Image: "https://images.pexels.com/photos/11035380/pexels-photo-11035380.jpeg?auto=compress&cs=tinysrgb&w=300&h=200&fit=crop"},
		{ID: 2, Title: "AWS Lambda Fundamentals", Description: "Learn serverless computing with AWS Lambda", Duration: "6 hours", Level: "Intermediate", Image: "https://images.pexels.com/photos/1181677/pexels-photo-1181677.jpeg?auto=compress&cs=tinysrgb&w=300&h=200&fit=crop"},
		{ID: 3, Title: "TypeScript Mastery", Description: "Complete guide to TypeScript development", Duration: "10 hours", Level: "Intermediate", Image: "https://images.pexels.com/photos/1181263/pexels-photo-1181263.jpeg?auto=compress&cs=tinysrgb&w=300&h=200&fit=crop"},
		{ID: 4, Title: "GraphQL API Design", Description: "Build efficient APIs with GraphQL", Duration: "7 hours", Level: "Advanced", Image: "https://images.pexels.com/photos/1181244/pexels-photo-1181244.jpeg?auto=compress&cs=tinysrgb&w=300&h=200&fit=crop"},
	}
}

func securityCourses() []course.Course {
	return []course.Course{
		{ID: 5, Title: "Web Security Fundamentals", Description: "Essential security practices for web developers", Duration: "5 hours", Level: "Beginner", Image: "https://images.pexels.com/photos/60504/security-protection-anti-virus-software-60504.jpeg?auto=compress&cs=tinysrgb&w=300&h=200&fit=crop"},
		{ID: 6, Title: "OAuth 2.0 Implementation", Description: "Secure authentication with OAuth 2.0", Duration: "4 hours", Level: "Intermediate", Image: "https://images.pexels.com/photos/1181298/pexels-photo-1181298.jpeg?auto=compress&cs=tinysrgb&w=300&h=200&fit=crop"},
		{ID: 7, Title: "HTTPS and SSL/TLS", Description: "Secure communication protocols", Duration: "3 hours", Level: "Intermediate", Image: "https://images.pexels.com/photos/1181467/pexels-photo-1181467.jpeg?auto=compress&cs=tinysrgb&w=300&h=200&fit=crop"},
	}
}

// CannedLearningPlan is the three-week plan used whenever no generated plan
// is available.
func CannedLearningPlan() plan.LearningPlan {
	week := func(n int, title string, tasks ...string) plan.Week {
		w := plan.Week{Title: title, Tasks: make([]plan.Task, 0, len(tasks))}
		for i, t := range tasks {
			w.Tasks = append(w.Tasks, plan.Task{ID: taskID(n, i+1), Title: t})
		}
		return w
	}
	return plan.LearningPlan{
		week(1, "Week 1: Mastering Advanced React Hooks",
			"Understand useEffect dependencies",
			"Master the use of useReducer",
			"Create custom hooks for reusable logic",
		),
		week(2, "Week 2: Introduction to AWS Lambda",
			"Set up your first Lambda function",
			"Connect Lambda to an API Gateway",
			"Manage permissions with IAM roles",
		),
		week(3, "Week 3: Full-Stack Deployment",
			"Deploy the React frontend to Netlify",
			"Deploy the Node.js backend to Lambda",
			"Configure CI/CD pipeline",
		),
	}
}

func leaderboardFixture() []leaderboard.Entry {
	return []leaderboard.Entry{
		{ID: 1, Name: "Jane Doe", Score: 950, Rank: 1, Avatar: "JD"},
		{ID: 2, Name: "John Smith", Score: 920, Rank: 2, Avatar: "JS"},
		{ID: 3, Name: "Alice Johnson", Score: 890, Rank: 3, Avatar: "AJ"},
		{ID: 4, Name: "Bob Wilson", Score: 860, Rank: 4, Avatar: "BW"},
		{ID: 5, Name: "Carol Brown", Score: 830, Rank: 5, Avatar: "CB"},
		{ID: 6, Name: "David Lee", Score: 800, Rank: 6, Avatar: "DL"},
		{ID: 7, Name: "Eva Martinez", Score: 770, Rank: 7, Avatar: "EM"},
		{ID: 8, Name: "Frank Taylor", Score: 740, Rank: 8, Avatar: "FT"},
	}
}

func notificationsFixture() []notification.Notification {
	return []notification.Notification{
		{ID: 1, Message: `Assessment for "React Hooks" is due tomorrow`, Date: "2023-10-27", Read: false},
		{ID: 2, Message: `New course "AWS Lambda Fundamentals" is now available`, Date: "2023-10-26", Read: false},
		{ID: 3, Message: `You completed "TypeScript Basics" - Great job!`, Date: "2023-10-25", Read: true},
	}
}

func progressFixture() user.Progress {
	return user.Progress{
		Completed:  12,
		Total:      20,
		Percentage: 60,
		NextSteps: []string{
			"Complete React Hooks assessment",
			"Start AWS Lambda course",
			"Review TypeScript fundamentals",
		},
	}
}

func courseDetailFixture(courseID string) course.Detail {
	return course.Detail{
		ID:            courseID,
		Title:         "Week 1: Mastering Advanced React Hooks",
		Description:   "Deep dive into advanced React hooks patterns and best practices.",
		TotalDuration: "4 hours 30 minutes",
		Difficulty:    "Intermediate",
		Contents: []course.ContentItem{
			{ID: 1, Title: "Introduction to Advanced Hooks", Type: course.ContentVideo, Duration: "15 min"},
			{ID: 2, Title: "Understanding useEffect Dependencies", Type: course.ContentVideo, Duration: "25 min"},
			{ID: 3, Title: "Building Custom Hooks", Type: course.ContentVideo, Duration: "35 min"},
		},
	}
}

// CannedQuiz is the fallback quiz for a course.
func CannedQuiz(courseID string) quiz.Quiz {
	return quiz.Quiz{
		ID:           courseID + "-quiz",
		Title:        "React Hooks Mastery Quiz",
		Description:  "Test your understanding of advanced React hooks concepts",
		PassingScore: quiz.DefaultPassingScore,
		Questions: []quiz.Question{
			{
				ID:       1,
				Question: "When should you use useReducer instead of useState?",
				Options: []string{
					"When you have simple state updates",
					"When you have complex state logic with multiple sub-values",
					"When you want to optimize performance",
					"When you need to share state between components",
				},
				CorrectAnswer: 1,
				Explanation:   "useReducer is preferable when you have complex state logic that involves multiple sub-values.",
			},
			{
				ID:       2,
				Question: "What is the main purpose of the dependency array in useEffect?",
				Options: []string{
					"To prevent memory leaks",
					"To control when the effect should run",
					"To optimize component rendering",
					"To handle async operations",
				},
				CorrectAnswer: 1,
				Explanation:   "The dependency array controls when the effect should run based on value changes.",
			},
			{
				ID:            3,
				Question:      "Which hook would you use to memoize an expensive calculation?",
				Options:       []string{"useCallback", "useEffect", "useMemo", "useReducer"},
				CorrectAnswer: 2,
				Explanation:   "useMemo is used to memoize expensive calculations and optimize performance.",
			},
		},
	}
}

// CannedTopicContent is the fallback reading material for a topic.
func CannedTopicContent(courseTitle, topicTitle string) course.TopicContent {
	return course.TopicContent{
		Title:       topicTitle,
		Description: "Core concepts of " + topicTitle + " from " + courseTitle + ".",
		Sections: []course.Section{
			{Heading: "Overview", Body: "Start with the fundamentals of " + topicTitle + " and how it fits into " + courseTitle + "."},
			{Heading: "Practice", Body: "Apply " + topicTitle + " in a small project before moving to the next topic."},
		},
		ExternalLinks: []course.Link{},
		QuizAvailable: true,
	}
}

var chatTemplates = []string{
	`I am a mock AI assistant. Your query about "%s" has been noted.`,
	`Thank you for your message: "%s". I'm here to help with your learning journey!`,
	`I understand you're asking about "%s". Let me help you with that topic.`,
	`Great question about "%s"! I'll provide you with relevant resources soon.`,
}
