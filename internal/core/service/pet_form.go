package service

import (
	"strings"

	"github.com/shaggymission/adoption-web/internal/core/domain"
)

// PetForm holds the raw values of the register and edit pet forms.
// Images is the comma separated list as typed.
type PetForm struct {
	Name         string              `json:"name" form:"name" validate:"required,max=80"`
	Breed        string              `json:"breed" form:"breed" validate:"required,max=80"`
	Age          int                 `json:"age" form:"age" validate:"gte=0,lte=40"`
	HealthStatus domain.HealthStatus `json:"healthStatus" form:"healthStatus" validate:"required,oneof=Good Fair 'Needs Care'"`
	Description  string              `json:"description" form:"description" validate:"max=2000"`
	Location     string              `json:"location" form:"location" validate:"required,max=120"`
	Images       string              `json:"images" form:"images" validate:"max=4000"`
}

// EmptyPetForm is the initial state of the register form.
func EmptyPetForm() PetForm {
	return PetForm{HealthStatus: domain.HealthGood}
}

// PetFormFrom prefills the edit form from a listed pet.
func PetFormFrom(p domain.Pet) PetForm {
	return PetForm{
		Name:         p.Name,
		Breed:        p.Breed,
		Age:          p.Age,
		HealthStatus: p.HealthStatus,
		Description:  p.Description,
		Location:     p.Location,
		Images:       strings.Join(p.Images, ", "),
	}
}

// Input converts the form into the registry payload.
func (f PetForm) Input() domain.PetInput {
	return domain.PetInput{
		Name:         strings.TrimSpace(f.Name),
		Breed:        strings.TrimSpace(f.Breed),
		Age:          f.Age,
		HealthStatus: f.HealthStatus,
		Description:  strings.TrimSpace(f.Description),
		Location:     strings.TrimSpace(f.Location),
		Images:       domain.ParseImageList(f.Images),
	}
}
