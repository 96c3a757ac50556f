package gateway

import (
	"context"
	"net/http"

	"github.com/shaggymission/adoption-web/internal/core/domain"
	"github.com/shaggymission/adoption-web/internal/core/ports"
)

type adoptionRequestBody struct {
	UserID  string `json:"userId"`
	PetID   string `json:"petId"`
	Message string `json:"message"`
}

func (g *Gateway) SubmitAdoptionRequest(ctx context.Context, s ports.AdoptionSubmission) error {
	_, err := g.do(ctx, call{
		op:     opSubmitAdoption,
		method: http.MethodPost,
		url:    g.endpoints.SubmitAdoptionURL,
		in:     adoptionRequestBody{UserID: s.UserID, PetID: s.PetID, Message: s.Message},
	})
	return err
}

func (g *Gateway) ListAdoptionRequests(ctx context.Context) ([]domain.AdoptionRequest, error) {
	var resp adoptionListDTO
	_, err := g.do(ctx, call{
		op:     opListAdoptions,
		method: http.MethodGet,
		url:    g.endpoints.ListAdoptionsURL,
		out:    &resp,
	})
	if err != nil {
		return nil, err
	}
	out := make([]domain.AdoptionRequest, 0, len(resp))
	for _, a := range resp {
		out = append(out, a.toDomain())
	}
	return out, nil
}
