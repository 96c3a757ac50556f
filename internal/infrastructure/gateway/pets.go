package gateway

import (
	"context"
	"net/http"

	"github.com/shaggymission/adoption-web/internal/core/domain"
)

func (g *Gateway) ListPets(ctx context.Context, page int) (domain.PetPage, error) {
	var resp petPageDTO
	_, err := g.do(ctx, call{
		op:     opListPets,
		method: http.MethodGet,
		url:    pageURL(g.endpoints.ListPetsURL, page),
		out:    &resp,
	})
	if err != nil {
		return domain.PetPage{}, err
	}

	out := domain.PetPage{
		Pets:        toPets(resp.Pets),
		CurrentPage: resp.CurrentPage,
		TotalPages:  resp.TotalPages,
	}
	if out.CurrentPage < 1 {
		out.CurrentPage = page
	}
	if out.TotalPages < 1 {
		out.TotalPages = 1
	}
	return out, nil
}

func (g *Gateway) RegisterPet(ctx context.Context, in domain.PetInput) error {
	_, err := g.do(ctx, call{
		op:     opRegisterPet,
		method: http.MethodPost,
		url:    g.endpoints.RegisterPetURL,
		in:     fromPetInput(in),
	})
	return err
}

func (g *Gateway) UpdatePet(ctx context.Context, id string, in domain.PetInput) error {
	_, err := g.do(ctx, call{
		op:     opUpdatePet,
		method: http.MethodPut,
		url:    recordURL(g.endpoints.UpdatePetURL, id),
		in:     fromPetInput(in),
	})
	return err
}

func (g *Gateway) DeletePet(ctx context.Context, id string) error {
	_, err := g.do(ctx, call{
		op:     opDeletePet,
		method: http.MethodDelete,
		url:    recordURL(g.endpoints.DeletePetURL, id),
	})
	return err
}
