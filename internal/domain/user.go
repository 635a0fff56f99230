package domain

import (
	"context"
	"regexp"
	"strings"
	"time"

	"gamestore-admin/internal/validation"
)

type ContextKey string

const UserContextKey ContextKey = "user"

const (
	PasswordMinLength = 6
	PasswordMaxLength = 128
)

var emailFormat = regexp.MustCompile(`^[^@\s]+@[^@\s]+$`)

type User struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Profile        string    `json:"profile"`
	PasswordDigest string    `json:"-"`
	CreatedAt      time.Time `json:"-"`
	UpdatedAt      time.Time `json:"-"`

	// Set only while a new password is being assigned; never persisted.
	Password             *string `json:"-"`
	PasswordConfirmation *string `json:"-"`
}

func (u *User) IsAdmin() bool { return u.Profile == ProfileAdmin }

type UserParams struct {
	Name                 *string
	Profile              *string
	Email                *string
	Password             *string
	PasswordConfirmation *string
}

// Apply merges the sent attributes. Emails are stored trimmed and lower-cased.
func (p UserParams) Apply(u *User) {
	setString(&u.Name, p.Name)
	setString(&u.Profile, p.Profile)
	if p.Email != nil {
		u.Email = strings.ToLower(strings.TrimSpace(*p.Email))
	}
	if p.Password != nil {
		u.Password = p.Password
	}
	if p.PasswordConfirmation != nil {
		u.PasswordConfirmation = p.PasswordConfirmation
	}
}

// Rules is the user rule table. The password is required only until a digest exists.
func (u *User) Rules(emailTaken validation.Lookup) validation.Set {
	passwordRules := []validation.Rule{validation.Length(PasswordMinLength, PasswordMaxLength)}
	if u.PasswordDigest == "" {
		passwordRules = append([]validation.Rule{validation.Required()}, passwordRules...)
	}

	return validation.Set{
		{Name: "name", Value: u.Name, Rules: []validation.Rule{validation.Required()}},
		{Name: "email", Value: u.Email, Rules: []validation.Rule{validation.Required(), validation.Format(emailFormat), validation.Unique(emailTaken)}},
		{Name: "profile", Value: u.Profile, Rules: []validation.Rule{validation.Required(), validation.Inclusion(UserProfiles...)}},
		{Name: "password", Value: u.Password, Rules: passwordRules},
		{Name: "password_confirmation", Value: u.PasswordConfirmation, Rules: []validation.Rule{validation.Confirms(u.Password, "Password")}},
	}
}

type UserRepository interface {
	List(ctx context.Context) ([]User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Create(ctx context.Context, u *User) error
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, id int64) error
	EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error)
}
