package service

import (
	"fmt"
	"math"
	"strings"
	"time"

	"studybuddy/internal/model"
)

const (
	defaultPlanTopic      = "General Studies"
	defaultHoursAvailable = 10
	maxPlanWeeks          = 12
)

var deadlineLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

type weekTemplate struct {
	Theme string
	Goals []string
}

var weeklyGoalTables = map[string][]weekTemplate{
	"python": {
		{"Python Basics", []string{"Install Python", "Variables & Data Types", "Basic Operators"}},
		{"Control Flow", []string{"If/Else Statements", "For/While Loops", "List Comprehensions"}},
		{"Data Structures", []string{"Lists & Tuples", "Dictionaries & Sets", "String Manipulation"}},
		{"Functions", []string{"Defining Functions", "Arguments & Return Values", "Lambda Functions"}},
		{"OOP Basics", []string{"Classes & Objects", "Inheritance", "Methods"}},
		{"File Handling", []string{"Reading Files", "Writing Files", "Context Managers"}},
		{"Modules & Packages", []string{"Importing Modules", "Standard Library", "Pip & Virtualenvs"}},
		{"Final Project", []string{"Plan Project", "Implement Features", "Testing & Debugging"}},
	},
	"javascript": {
		{"JS Fundamentals", []string{"Variables (let/const)", "Data Types", "Operators"}},
		{"Logic & Loops", []string{"Conditionals", "Loops", "Functions"}},
		{"DOM Manipulation", []string{"Selecting Elements", "Event Listeners", "Modifying Styles"}},
		{"ES6+ Features", []string{"Arrow Functions", "Destructuring", "Template Literals"}},
		{"Async JS", []string{"Callbacks", "Promises", "Async/Await"}},
		{"APIs", []string{"Fetch API", "JSON Parsing", "Error Handling"}},
		{"Modern Tooling", []string{"NPM Basics", "Modules", "Webpack/Vite concepts"}},
		{"Project Week", []string{"Build a To-Do App", "Code Review", "Refactoring"}},
	},
}

// planSchedule is the arithmetic part of a plan.
type planSchedule struct {
	Days       int
	Deadline   time.Time
	TotalHours int
	DailyHours float64
}

func parseDeadline(s string) (time.Time, error) {
	for _, layout := range deadlineLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, ErrInvalidDeadline
}

// computeSchedule derives the plan length and hours. target_days wins over deadline;
// daily_hours wins over hours_available.
func computeSchedule(in PlanInput, now time.Time) (planSchedule, error) {
	var sch planSchedule

	switch {
	case in.TargetDays != nil && *in.TargetDays != 0:
		if *in.TargetDays < 0 {
			return sch, ErrInvalidPlan
		}
		sch.Days = *in.TargetDays
		sch.Deadline = now.AddDate(0, 0, sch.Days)
	case strings.TrimSpace(in.Deadline) != "":
		deadline, err := parseDeadline(strings.TrimSpace(in.Deadline))
		if err != nil {
			return sch, err
		}
		sch.Deadline = deadline
		sch.Days = int(math.Floor(deadline.Sub(now).Hours() / 24))
	default:
		return sch, ErrInvalidPlan
	}

	span := max(sch.Days, 1)
	if in.DailyHours != nil && *in.DailyHours > 0 {
		sch.TotalHours = int(*in.DailyHours * float64(span))
		sch.DailyHours = roundTenth(*in.DailyHours)
	} else {
		sch.TotalHours = defaultHoursAvailable
		if in.HoursAvailable != nil {
			sch.TotalHours = *in.HoursAvailable
		}
		sch.DailyHours = roundTenth(float64(sch.TotalHours) / float64(span))
	}
	return sch, nil
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

// goalWeeks is the number of weekly goals generated for a plan of the given length.
func goalWeeks(days int) int {
	return max(1, min(days/7, maxPlanWeeks))
}

func fallbackWeeklyGoals(topic string, weeks int) []model.WeeklyGoal {
	table := weeklyGoalTables[strings.ToLower(topic)]
	goals := make([]model.WeeklyGoal, 0, weeks)
	for i := range weeks {
		if i < len(table) {
			goals = append(goals, model.WeeklyGoal{
				Week:  i + 1,
				Theme: table[i].Theme,
				Goals: append([]string(nil), table[i].Goals...),
			})
			continue
		}
		goals = append(goals, model.WeeklyGoal{
			Week:  i + 1,
			Theme: fmt.Sprintf("Advanced %s Concepts", topic),
			Goals: []string{"Deep Dive", "Practice Problems", "Mini Project"},
		})
	}
	return goals
}

func fallbackResources(topic string) []string {
	return []string{
		topic + " Official Documentation",
		topic + " for Beginners",
		fmt.Sprintf("Advanced %s Concepts", topic),
	}
}

// assessmentSchedule lists a quiz every second week, a project review every fourth,
// and a final assessment for plans of eight weeks or more.
func assessmentSchedule(days int) []string {
	weeks := days / 7
	out := []string{}
	for w := 1; w <= weeks; w++ {
		if w%2 == 0 {
			out = append(out, fmt.Sprintf("Week %d Progress Quiz", w))
		}
		if w%4 == 0 {
			out = append(out, fmt.Sprintf("Week %d Project Review", w))
		}
	}
	if weeks >= 8 {
		out = append(out, "Final Comprehensive Assessment")
	}
	return out
}
