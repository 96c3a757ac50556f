package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/shaggymission/adoption-web/internal/core/domain"
	"github.com/shaggymission/adoption-web/internal/core/ports"
)

// CollaboratorSection is a tab of the collaborator landing page.
type CollaboratorSection string

const (
	CollaboratorAdopt    CollaboratorSection = "adopt"
	CollaboratorDonate   CollaboratorSection = "donate"
	CollaboratorRegister CollaboratorSection = "register"
)

var CollaboratorSections = []CollaboratorSection{CollaboratorAdopt, CollaboratorDonate, CollaboratorRegister}

// ParseCollaboratorSection falls back to the adopt tab.
func ParseCollaboratorSection(s string) CollaboratorSection {
	for _, sec := range CollaboratorSections {
		if string(sec) == s {
			return sec
		}
	}
	return CollaboratorAdopt
}

// CollaboratorPage is the render model of the collaborator landing page.
type CollaboratorPage struct {
	Identity  domain.Identity
	Name      string
	Section   CollaboratorSection
	Sections  []CollaboratorSection
	Pets      domain.PetPage
	PetsError bool
	Tiers     []domain.DonationTier
}

type CollaboratorService struct {
	pets ports.PetGateway
	log  zerolog.Logger
}

func NewCollaboratorService(pets ports.PetGateway, log zerolog.Logger) *CollaboratorService {
	return &CollaboratorService{pets: pets, log: log.With().Str("component", "collaborator").Logger()}
}

// Page builds the landing page. The adopt tab shows the first page of the
// registry; a failed fetch shows an empty list.
func (s *CollaboratorService) Page(ctx context.Context, id domain.Identity, section CollaboratorSection) (CollaboratorPage, error) {
	page := CollaboratorPage{
		Identity: id,
		Name:     id.DisplayName("Collaborator"),
		Section:  section,
		Sections: CollaboratorSections,
		Tiers:    domain.DonationTiers,
	}
	if section != CollaboratorAdopt {
		return page, nil
	}

	pets, err := s.pets.ListPets(ctx, 1)
	if canceled(ctx) {
		return CollaboratorPage{}, ctx.Err()
	}
	if err != nil {
		s.log.Warn().Err(err).Msg("listing pets for collaborator failed")
		page.PetsError = true
		return page, nil
	}
	page.Pets = pets
	return page, nil
}
