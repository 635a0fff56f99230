package domain

import (
	"context"
	"time"

	"gamestore-admin/internal/validation"
)

// Game is the sellable item behind a product. Licenses hang off it.
type Game struct {
	ID                  int64      `json:"id"`
	Mode                string     `json:"mode"`
	ReleaseDate         *time.Time `json:"release_date"`
	Developer           string     `json:"developer"`
	SystemRequirementID int64      `json:"system_requirement_id"`
	CreatedAt           time.Time  `json:"-"`
	UpdatedAt           time.Time  `json:"-"`
}

type GameParams struct {
	Mode                *string
	ReleaseDate         *time.Time
	Developer           *string
	SystemRequirementID *int64
}

func (p GameParams) Apply(g *Game) {
	setString(&g.Mode, p.Mode)
	setString(&g.Developer, p.Developer)
	if p.ReleaseDate != nil {
		g.ReleaseDate = p.ReleaseDate
	}
	if p.SystemRequirementID != nil {
		g.SystemRequirementID = *p.SystemRequirementID
	}
}

func (g *Game) Rules(requirementExists validation.Lookup) validation.Set {
	return validation.Set{
		{Name: "mode", Value: g.Mode, Rules: []validation.Rule{validation.Required(), validation.Inclusion(GameModes...)}},
		{Name: "release_date", Value: g.ReleaseDate, Rules: []validation.Rule{validation.Required()}},
		{Name: "developer", Value: g.Developer, Rules: []validation.Rule{validation.Required()}},
		{Name: "system_requirement", Value: g.SystemRequirementID, Rules: []validation.Rule{validation.Required(), validation.Exists(requirementExists)}},
	}
}

// GameOrderable lists the columns a game list may be ordered by.
var GameOrderable = []string{"id", "developer", "mode", "release_date"}

type GameRepository interface {
	List(ctx context.Context, q ListQuery) ([]Game, int64, error)
	GetByID(ctx context.Context, id int64) (*Game, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Create(ctx context.Context, g *Game) error
	Update(ctx context.Context, g *Game) error
	// Delete removes the game and its licenses. It returns a *RestrictError
	// while a product is still built on the game.
	Delete(ctx context.Context, id int64) error
}
