package domain

import (
	"context"
	"time"

	"gamestore-admin/internal/validation"
)

type SystemRequirement struct {
	ID                int64     `json:"id"`
	Name              string    `json:"name"`
	OperationalSystem string    `json:"operational_system"`
	Storage           string    `json:"storage"`
	Processor         string    `json:"processor"`
	Memory            string    `json:"memory"`
	VideoBoard        string    `json:"video_board"`
	CreatedAt         time.Time `json:"-"`
	UpdatedAt         time.Time `json:"-"`
}

type SystemRequirementParams struct {
	Name              *string
	OperationalSystem *string
	Storage           *string
	Processor         *string
	Memory            *string
	VideoBoard        *string
}

func (p SystemRequirementParams) Apply(s *SystemRequirement) {
	setString(&s.Name, p.Name)
	setString(&s.OperationalSystem, p.OperationalSystem)
	setString(&s.Storage, p.Storage)
	setString(&s.Processor, p.Processor)
	setString(&s.Memory, p.Memory)
	setString(&s.VideoBoard, p.VideoBoard)
}

func (s *SystemRequirement) Rules(nameTaken validation.Lookup) validation.Set {
	required := []validation.Rule{validation.Required()}
	return validation.Set{
		{Name: "name", Value: s.Name, Rules: []validation.Rule{validation.Required(), validation.Unique(nameTaken)}},
		{Name: "operational_system", Value: s.OperationalSystem, Rules: required},
		{Name: "storage", Value: s.Storage, Rules: required},
		{Name: "processor", Value: s.Processor, Rules: required},
		{Name: "memory", Value: s.Memory, Rules: required},
		{Name: "video_board", Value: s.VideoBoard, Rules: required},
	}
}

type SystemRequirementRepository interface {
	List(ctx context.Context) ([]SystemRequirement, error)
	GetByID(ctx context.Context, id int64) (*SystemRequirement, error)
	Create(ctx context.Context, s *SystemRequirement) error
	Update(ctx context.Context, s *SystemRequirement) error
	// Delete returns a *RestrictError while games still reference the row.
	Delete(ctx context.Context, id int64) error
	NameTaken(ctx context.Context, name string, excludeID int64) (bool, error)
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
