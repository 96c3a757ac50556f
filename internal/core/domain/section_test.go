package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole_FailsClosed(t *testing.T) {
	tests := map[string]Role{
		"Admin":       RoleAdmin,
		" Admin ":     RoleAdmin,
		"Contributor": RoleContributor,
		"NoRole":      RoleNone,
		"":            RoleNone,
		"admin":       RoleNone,
		"root":        RoleNone,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseRole(in), "ParseRole(%q)", in)
	}
}

func TestVisibleSections(t *testing.T) {
	assert.Empty(t, VisibleSections(RoleNone))
	assert.Empty(t, VisibleSections(Role("Owner")))
	assert.Equal(t,
		[]Section{SectionDashboard, SectionPets, SectionRegisterPet, SectionDonate},
		VisibleSections(RoleContributor))
	assert.Equal(t,
		[]Section{SectionDashboard, SectionPets, SectionRegisterPet, SectionDonate, SectionUsers, SectionAdoptionRequests},
		VisibleSections(RoleAdmin))
}

func TestVisibleSections_ReturnsCopy(t *testing.T) {
	s := VisibleSections(RoleAdmin)
	s[0] = SectionUsers
	assert.Equal(t, SectionDashboard, VisibleSections(RoleAdmin)[0])
}

func TestCanView(t *testing.T) {
	assert.True(t, CanView(RoleContributor, SectionDonate))
	assert.False(t, CanView(RoleContributor, SectionUsers))
	assert.False(t, CanView(RoleContributor, SectionAdoptionRequests))
	assert.True(t, CanView(RoleAdmin, SectionAdoptionRequests))
	assert.False(t, CanView(RoleNone, SectionDashboard))
}

func TestAllows_AdminOnly(t *testing.T) {
	for _, a := range []Affordance{AffordanceEditPet, AffordanceDeletePet, AffordanceDeleteUser, AffordanceDecideAdoption} {
		assert.True(t, Allows(RoleAdmin, a), a)
		assert.False(t, Allows(RoleContributor, a), a)
		assert.False(t, Allows(RoleNone, a), a)
	}
	assert.Len(t, Affordances(RoleAdmin), 4)
	assert.Empty(t, Affordances(RoleContributor))
}

func TestSectionHelpers(t *testing.T) {
	s, ok := ParseSection("adoption-requests")
	assert.True(t, ok)
	assert.Equal(t, "Adoption Requests", s.Label())
	assert.True(t, s.FetchesOnEntry())

	_, ok = ParseSection("settings")
	assert.False(t, ok)
	assert.False(t, SectionDonate.FetchesOnEntry())
}
