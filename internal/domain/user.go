// Package domain contains the core business entities, ports and the pure
// fitness formulas.
package domain

import "time"

// Sex selects the BMR formula branch.
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// Goal is the user's body-composition goal.
type Goal string

const (
	GoalBulk     Goal = "bulk"
	GoalCut      Goal = "cut"
	GoalMaintain Goal = "maintain"
)

// Registration defaults.
const (
	DefaultWeight          = 70.0
	DefaultHeight          = 170.0
	DefaultAge             = 25
	DefaultSex             = SexMale
	DefaultActivity        = 1.375
	DefaultGoal            = GoalBulk
	DefaultTargetWeight    = 75.0
	DefaultTargetProtein   = 140.0
	DefaultSessionsPerWeek = 4
)

// User is a registered account together with its profile and progress ledger.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"passwordHash"`
	RegisteredAt time.Time `json:"registeredAt"`
	Profile      Profile   `json:"profile"`
	Goals        Goals     `json:"goals"`
	Settings     Settings  `json:"settings"`
	Progress     Ledger    `json:"progress"`
}

// PublicUser is the user without credentials, as shown to clients.
type PublicUser struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	RegisteredAt time.Time `json:"registeredAt"`
	Profile      Profile   `json:"profile"`
	Goals        Goals     `json:"goals"`
	Settings     Settings  `json:"settings"`
	Progress     Ledger    `json:"progress"`
}

// Public strips the password hash.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		RegisteredAt: u.RegisteredAt,
		Profile:      u.Profile,
		Goals:        u.Goals,
		Settings:     u.Settings,
		Progress:     u.Progress,
	}
}

// Profile holds the body data the formulas run on.
type Profile struct {
	Weight   float64 `json:"weight"`
	Height   float64 `json:"height"`
	Age      int     `json:"age"`
	Sex      Sex     `json:"sex"`
	Activity float64 `json:"activity"`
	Goal     Goal    `json:"goal"`
}

// Goals are the user's targets.
type Goals struct {
	TargetWeight    float64 `json:"targetWeight"`
	TargetProtein   float64 `json:"targetProtein"`
	SessionsPerWeek int     `json:"sessionsPerWeek"`
}

// Settings are display preferences.
type Settings struct {
	Notifications bool   `json:"notifications"`
	Theme         string `json:"theme"`
	Units         string `json:"units"`
}

// DefaultProfile returns the profile a new user starts with.
func DefaultProfile() Profile {
	return Profile{
		Weight:   DefaultWeight,
		Height:   DefaultHeight,
		Age:      DefaultAge,
		Sex:      DefaultSex,
		Activity: DefaultActivity,
		Goal:     DefaultGoal,
	}
}

// DefaultSettings returns the settings a new user starts with.
func DefaultSettings() Settings {
	return Settings{Notifications: true, Theme: "dark", Units: "metric"}
}

// ProfilePatch carries optional profile fields. Nil fields are left unchanged.
type ProfilePatch struct {
	Weight   *float64 `json:"weight,omitempty"`
	Height   *float64 `json:"height,omitempty"`
	Age      *int     `json:"age,omitempty"`
	Sex      *Sex     `json:"sex,omitempty"`
	Activity *float64 `json:"activity,omitempty"`
	Goal     *Goal    `json:"goal,omitempty"`
}

// Apply merges the non-nil fields into p.
func (pp ProfilePatch) Apply(p *Profile) {
	if pp.Weight != nil {
		p.Weight = *pp.Weight
	}
	if pp.Height != nil {
		p.Height = *pp.Height
	}
	if pp.Age != nil {
		p.Age = *pp.Age
	}
	if pp.Sex != nil {
		p.Sex = *pp.Sex
	}
	if pp.Activity != nil {
		p.Activity = *pp.Activity
	}
	if pp.Goal != nil {
		p.Goal = *pp.Goal
	}
}

// GoalsPatch carries optional goal fields.
type GoalsPatch struct {
	TargetWeight    *float64 `json:"targetWeight,omitempty"`
	TargetProtein   *float64 `json:"targetProtein,omitempty"`
	SessionsPerWeek *int     `json:"sessionsPerWeek,omitempty"`
}

// Apply merges the non-nil fields into g.
func (gp GoalsPatch) Apply(g *Goals) {
	if gp.TargetWeight != nil {
		g.TargetWeight = *gp.TargetWeight
	}
	if gp.TargetProtein != nil {
		g.TargetProtein = *gp.TargetProtein
	}
	if gp.SessionsPerWeek != nil {
		g.SessionsPerWeek = *gp.SessionsPerWeek
	}
}

// SettingsPatch carries optional settings fields.
type SettingsPatch struct {
	Notifications *bool   `json:"notifications,omitempty"`
	Theme         *string `json:"theme,omitempty"`
	Units         *string `json:"units,omitempty"`
}

// Apply merges the non-nil fields into s.
func (sp SettingsPatch) Apply(s *Settings) {
	if sp.Notifications != nil {
		s.Notifications = *sp.Notifications
	}
	if sp.Theme != nil {
		s.Theme = *sp.Theme
	}
	if sp.Units != nil {
		s.Units = *sp.Units
	}
}

// UserPatch is a partial user update. Name replaces the stored name; the
// nested patches are merged field by field.
type UserPatch struct {
	Name     *string        `json:"name,omitempty"`
	Profile  *ProfilePatch  `json:"profile,omitempty"`
	Goals    *GoalsPatch    `json:"goals,omitempty"`
	Settings *SettingsPatch `json:"settings,omitempty"`
}

// Apply merges the patch into u.
func (up UserPatch) Apply(u *User) {
	if up.Name != nil {
		u.Name = *up.Name
	}
	if up.Profile != nil {
		up.Profile.Apply(&u.Profile)
	}
	if up.Goals != nil {
		up.Goals.Apply(&u.Goals)
	}
	if up.Settings != nil {
		up.Settings.Apply(&u.Settings)
	}
}
