package models

// UserProfile identifies the signed-in user. UserID doubles as the first
// path segment of every remote document address.
type UserProfile struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName,omitempty"`
	Email       string `json:"email,omitempty"`
}

// Preferences is the singleton per-user settings document.
type Preferences struct {
	WeightUnit       string `json:"weightUnit"` // "kg" or "lb"
	RestTimerSeconds int    `json:"restTimerSeconds"`
	FirstWeekday     int    `json:"firstWeekday"`
	KeepScreenOn     bool   `json:"keepScreenOn"`
}

type TemplateExercise struct {
	ExerciseID string `json:"exerciseId"`
	Name       string `json:"name"`
	Sets       int    `json:"sets"`
	Reps       int    `json:"reps"`
}

// WorkoutTemplate is a reusable workout plan.
type WorkoutTemplate struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Exercises []TemplateExercise `json:"exercises,omitempty"`
	CreatedAt int64              `json:"createdAt"`
	UpdatedAt int64              `json:"updatedAt"`
}

type PerformedSet struct {
	ExerciseID string  `json:"exerciseId"`
	Name       string  `json:"name"`
	Weight     float64 `json:"weight"`
	Reps       int     `json:"reps"`
	RPE        float64 `json:"rpe,omitempty"`
	Done       bool    `json:"done"`
}

// WorkoutSession is a single logged workout. CompletedAt stays nil while the
// session occupies the current-session slot and is set when the data service
// moves it into history.
type WorkoutSession struct {
	ID          string         `json:"id"`
	TemplateID  string         `json:"templateId,omitempty"`
	Name        string         `json:"name"`
	StartedAt   int64          `json:"startedAt"`
	CompletedAt *int64         `json:"completedAt"`
	Sets        []PerformedSet `json:"sets,omitempty"`
	Notes       string         `json:"notes,omitempty"`
}

// Completed reports whether the session carries its completion marker.
func (s WorkoutSession) Completed() bool {
	return s.CompletedAt != nil
}
