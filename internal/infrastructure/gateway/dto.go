package gateway

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/shaggymission/adoption-web/internal/core/domain"
)

// petDTO accepts both the document-store "_id" and a plain "id".
type petDTO struct {
	MongoID      string    `json:"_id"`
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Breed        string    `json:"breed"`
	Age          int       `json:"age"`
	HealthStatus string    `json:"healthStatus"`
	Description  string    `json:"description"`
	Location     string    `json:"location"`
	Images       []string  `json:"images"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (p petDTO) toDomain() domain.Pet {
	id := p.MongoID
	if id == "" {
		id = p.ID
	}
	return domain.Pet{
		ID:           id,
		Name:         p.Name,
		Breed:        p.Breed,
		Age:          p.Age,
		HealthStatus: domain.HealthStatus(p.HealthStatus),
		Description:  p.Description,
		Location:     p.Location,
		Images:       p.Images,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func toPets(in []petDTO) []domain.Pet {
	out := make([]domain.Pet, 0, len(in))
	for _, p := range in {
		out = append(out, p.toDomain())
	}
	return out
}

type petInputDTO struct {
	Name         string   `json:"name"`
	Breed        string   `json:"breed"`
	Age          int      `json:"age"`
	HealthStatus string   `json:"healthStatus"`
	Description  string   `json:"description"`
	Location     string   `json:"location"`
	Images       []string `json:"images"`
}

func fromPetInput(in domain.PetInput) petInputDTO {
	return petInputDTO{
		Name:         in.Name,
		Breed:        in.Breed,
		Age:          in.Age,
		HealthStatus: string(in.HealthStatus),
		Description:  in.Description,
		Location:     in.Location,
		Images:       in.Images,
	}
}

type petPageDTO struct {
	Pets        []petDTO `json:"pets"`
	CurrentPage int      `json:"currentPage"`
	TotalPages  int      `json:"totalPages"`
}

type userDTO struct {
	MongoID   string    `json:"_id"`
	ID        string    `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u userDTO) toDomain() domain.User {
	id := u.ID
	if id == "" {
		id = u.MongoID
	}
	return domain.User{
		ID:        id,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Phone:     u.Phone,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// userListDTO decodes either {"users": [...]} or a bare array.
type userListDTO struct {
	Users       []userDTO
	CurrentPage int
	TotalPages  int
}

func (l *userListDTO) UnmarshalJSON(b []byte) error {
	if isArray(b) {
		return json.Unmarshal(b, &l.Users)
	}
	var obj struct {
		Users       []userDTO `json:"users"`
		CurrentPage int       `json:"currentPage"`
		TotalPages  int       `json:"totalPages"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	l.Users, l.CurrentPage, l.TotalPages = obj.Users, obj.CurrentPage, obj.TotalPages
	return nil
}

type adoptionDTO struct {
	MongoID   string            `json:"_id"`
	ID        string            `json:"id"`
	UserID    string            `json:"userId"`
	PetID     string            `json:"petId"`
	Message   string            `json:"message"`
	Status    string            `json:"status"`
	CreatedAt time.Time         `json:"createdAt"`
	Pet       *petDTO           `json:"pet"`
	User      *domain.Requester `json:"user"`
}

func (a adoptionDTO) toDomain() domain.AdoptionRequest {
	id := a.ID
	if id == "" {
		id = a.MongoID
	}
	status := domain.AdoptionStatus(a.Status)
	if status == "" {
		status = domain.AdoptionPending
	}
	r := domain.AdoptionRequest{
		ID:        id,
		UserID:    a.UserID,
		PetID:     a.PetID,
		Message:   a.Message,
		Status:    status,
		CreatedAt: a.CreatedAt,
		User:      a.User,
	}
	if a.Pet != nil {
		p := a.Pet.toDomain()
		r.Pet = &p
	}
	return r
}

// adoptionListDTO decodes either {"requests": [...]} or a bare array.
type adoptionListDTO []adoptionDTO

func (l *adoptionListDTO) UnmarshalJSON(b []byte) error {
	var items []adoptionDTO
	if isArray(b) {
		if err := json.Unmarshal(b, &items); err != nil {
			return err
		}
	} else {
		var obj struct {
			Requests []adoptionDTO `json:"requests"`
		}
		if err := json.Unmarshal(b, &obj); err != nil {
			return err
		}
		items = obj.Requests
	}
	*l = items
	return nil
}

func isArray(b []byte) bool {
	b = bytes.TrimSpace(b)
	return len(b) > 0 && b[0] == '['
}
