package domain

import (
	"context"
	"time"

	"gamestore-admin/internal/validation"
)

type License struct {
	ID        int64     `json:"id"`
	Key       string    `json:"key"`
	Platform  string    `json:"platform"`
	Status    string    `json:"status"`
	GameID    int64     `json:"game_id"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// LicenseParams excludes game_id on purpose: the game comes from the route.
type LicenseParams struct {
	Key      *string
	Platform *string
	Status   *string
}

func (p LicenseParams) Apply(l *License) {
	setString(&l.Key, p.Key)
	setString(&l.Platform, p.Platform)
	setString(&l.Status, p.Status)
}

func (l *License) Rules(keyTaken, gameExists validation.Lookup) validation.Set {
	return validation.Set{
		{Name: "key", Value: l.Key, Rules: []validation.Rule{validation.Required(), validation.Unique(keyTaken)}},
		{Name: "platform", Value: l.Platform, Rules: []validation.Rule{validation.Required(), validation.Inclusion(LicensePlatforms...)}},
		{Name: "status", Value: l.Status, Rules: []validation.Rule{validation.Required(), validation.Inclusion(LicenseStatuses...)}},
		{Name: "game", Value: l.GameID, Rules: []validation.Rule{validation.Required(), validation.Exists(gameExists)}},
	}
}

var LicenseOrderable = []string{"id", "key", "platform", "status"}

type LicenseRepository interface {
	// ListByGame searches the key column case-insensitively.
	ListByGame(ctx context.Context, gameID int64, q ListQuery) ([]License, int64, error)
	GetByID(ctx context.Context, id int64) (*License, error)
	Create(ctx context.Context, l *License) error
	Update(ctx context.Context, l *License) error
	Delete(ctx context.Context, id int64) error
	KeyTaken(ctx context.Context, key string, excludeID int64) (bool, error)
}
