package domain

import (
	"strings"
	"time"
)

// HealthStatus is the coarse health label shown on pet cards.
type HealthStatus string

const (
	HealthGood      HealthStatus = "Good"
	HealthFair      HealthStatus = "Fair"
	HealthNeedsCare HealthStatus = "Needs Care"
)

// HealthStatuses lists the selectable statuses in form order.
var HealthStatuses = []HealthStatus{HealthGood, HealthFair, HealthNeedsCare}

// DefaultPetImage replaces an empty image list on submission and backs
// cards without images.
const DefaultPetImage = "/placeholder.svg?height=300&width=400"

// Pet is a registry entry. The client only ever holds one page of them.
type Pet struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Breed        string       `json:"breed"`
	Age          int          `json:"age"`
	HealthStatus HealthStatus `json:"healthStatus"`
	Description  string       `json:"description"`
	Location     string       `json:"location"`
	Images       []string     `json:"images"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// CoverImage is the first image, or the placeholder.
func (p Pet) CoverImage() string {
	if len(p.Images) > 0 && strings.TrimSpace(p.Images[0]) != "" {
		return p.Images[0]
	}
	return DefaultPetImage
}

// PetInput is the payload for registering or updating a pet.
type PetInput struct {
	Name         string       `json:"name"`
	Breed        string       `json:"breed"`
	Age          int          `json:"age"`
	HealthStatus HealthStatus `json:"healthStatus"`
	Description  string       `json:"description"`
	Location     string       `json:"location"`
	Images       []string     `json:"images"`
}

// ParseImageList splits a comma separated list of image URLs. An input
// with no usable URL yields the single default placeholder, never an
// empty list.
func ParseImageList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if img := strings.TrimSpace(part); img != "" {
			out = append(out, img)
		}
	}
	if len(out) == 0 {
		return []string{DefaultPetImage}
	}
	return out
}

// PetPage is one page of the registry listing.
type PetPage struct {
	Pets        []Pet `json:"pets"`
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
}

func (p PetPage) HasPrev() bool { return p.CurrentPage > 1 }

func (p PetPage) HasNext() bool { return p.CurrentPage < p.TotalPages }

// Find returns the pet with id on this page.
func (p PetPage) Find(id string) (Pet, bool) {
	for _, pet := range p.Pets {
		if pet.ID == id {
			return pet, true
		}
	}
	return Pet{}, false
}
