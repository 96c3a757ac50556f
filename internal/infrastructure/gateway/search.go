package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/shaggymission/adoption-web/internal/core/domain"
)

const petsByBreedQuery = `query PetsByBreed($breed: String!) {
  getPetsByBreed(breed: $breed) {
    id
    name
    age
    healthStatus
    location
    breed
    description
    images
  }
}`

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type petsByBreedResponse struct {
	Data struct {
		GetPetsByBreed []petDTO `json:"getPetsByBreed"`
	} `json:"data"`
	Errors []graphQLError `json:"errors"`
}

// SearchPetsByBreed runs the breed query against the search service. The
// breed travels as a variable, never spliced into the query text.
func (g *Gateway) SearchPetsByBreed(ctx context.Context, breed string) ([]domain.Pet, error) {
	var resp petsByBreedResponse
	_, err := g.do(ctx, call{
		op:     opSearchPets,
		method: http.MethodPost,
		url:    g.endpoints.SearchPetsURL,
		in: graphQLRequest{
			Query:     petsByBreedQuery,
			Variables: map[string]any{"breed": breed},
		},
		out: &resp,
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Errors) > 0 && len(resp.Data.GetPetsByBreed) == 0 {
		return nil, &domain.RemoteError{
			Operation: opSearchPets,
			Status:    http.StatusOK,
			Message:   fmt.Sprintf("graphql: %s", resp.Errors[0].Message),
		}
	}
	return toPets(resp.Data.GetPetsByBreed), nil
}
