package domain

// Section is a named view within the dashboard.
type Section string

const (
	SectionDashboard        Section = "dashboard"
	SectionPets             Section = "pets"
	SectionRegisterPet      Section = "register-pet"
	SectionDonate           Section = "donate"
	SectionUsers            Section = "users"
	SectionAdoptionRequests Section = "adoption-requests"
)

var contributorSections = []Section{
	SectionDashboard,
	SectionPets,
	SectionRegisterPet,
	SectionDonate,
}

var adminSections = []Section{
	SectionDashboard,
	SectionPets,
	SectionRegisterPet,
	SectionDonate,
	SectionUsers,
	SectionAdoptionRequests,
}

var sectionLabels = map[Section]string{
	SectionDashboard:        "Dashboard",
	SectionPets:             "Pets",
	SectionRegisterPet:      "Register Pet",
	SectionDonate:           "Donate",
	SectionUsers:            "Manage Users",
	SectionAdoptionRequests: "Adoption Requests",
}

// ParseSection validates a section name taken from a URL.
func ParseSection(s string) (Section, bool) {
	sec := Section(s)
	_, ok := sectionLabels[sec]
	return sec, ok
}

// Label is the navigation caption.
func (s Section) Label() string {
	return sectionLabels[s]
}

// FetchesOnEntry reports whether entering the section triggers a remote
// list fetch.
func (s Section) FetchesOnEntry() bool {
	switch s {
	case SectionPets, SectionUsers, SectionAdoptionRequests:
		return true
	}
	return false
}

// VisibleSections returns the navigation sections a role may see, in
// display order. RoleNone and unknown roles see nothing.
func VisibleSections(role Role) []Section {
	var src []Section
	switch role {
	case RoleAdmin:
		src = adminSections
	case RoleContributor:
		src = contributorSections
	default:
		return nil
	}
	out := make([]Section, len(src))
	copy(out, src)
	return out
}

// CanView reports whether section is part of the role's navigation.
func CanView(role Role, section Section) bool {
	for _, s := range VisibleSections(role) {
		if s == section {
			return true
		}
	}
	return false
}

// Affordance is a per-item control rendered inside a section.
type Affordance string

const (
	AffordanceEditPet        Affordance = "edit-pet"
	AffordanceDeletePet      Affordance = "delete-pet"
	AffordanceDeleteUser     Affordance = "delete-user"
	AffordanceDecideAdoption Affordance = "decide-adoption"
)

// Allows reports whether the role gets the affordance. All per-item
// mutation controls are admin-only.
func Allows(role Role, a Affordance) bool {
	if role != RoleAdmin {
		return false
	}
	switch a {
	case AffordanceEditPet, AffordanceDeletePet, AffordanceDeleteUser, AffordanceDecideAdoption:
		return true
	}
	return false
}

// Affordances lists every affordance the role is granted.
func Affordances(role Role) []Affordance {
	all := []Affordance{AffordanceEditPet, AffordanceDeletePet, AffordanceDeleteUser, AffordanceDecideAdoption}
	out := make([]Affordance, 0, len(all))
	for _, a := range all {
		if Allows(role, a) {
			out = append(out, a)
		}
	}
	return out
}
