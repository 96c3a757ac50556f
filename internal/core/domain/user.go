package domain

import "time"

// User is an entry of the admin-managed user directory.
type User struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserPage is one page of the directory listing. TotalPages is zero when
// the directory service does not report it.
type UserPage struct {
	Users      []User `json:"users"`
	Page       int    `json:"page"`
	TotalPages int    `json:"totalPages,omitempty"`
}

func (p UserPage) HasPrev() bool { return p.Page > 1 }

// HasNext is false once the server reports the last page. Without a
// reported total an empty page is taken as the end of the directory.
func (p UserPage) HasNext() bool {
	if p.TotalPages > 0 {
		return p.Page < p.TotalPages
	}
	return len(p.Users) > 0
}
