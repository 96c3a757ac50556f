package gateway

import (
	"context"
	"net/http"
)

type roleResponse struct {
	Role string `json:"role"`
}

// LookupRole returns the raw role string. An empty string means the
// service answered without a role.
func (g *Gateway) LookupRole(ctx context.Context, userID string) (string, error) {
	var resp roleResponse
	_, err := g.do(ctx, call{
		op:     opLookupRole,
		method: http.MethodGet,
		url:    recordURL(g.endpoints.RoleLookupURL, userID),
		out:    &resp,
	})
	return resp.Role, err
}
