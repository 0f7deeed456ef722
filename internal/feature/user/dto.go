package user

import (
	"time"

	"go-gin-crud-starter/internal/crud"
)

// Create is the create-input shape. The id is client-suppliable (OIDC
// subjects) and generated when absent.
type Create struct {
	ID         string `json:"id" binding:"omitempty,max=64"`
	Username   string `json:"username" binding:"required,max=50"`
	FirstName  string `json:"first_name" binding:"required,max=50"`
	SecondName string `json:"second_name" binding:"required,max=50"`
	Email      string `json:"email" binding:"required,email,max=50"`
}

func (in Create) Model() User {
	return User{
		Base:       crud.Base{ID: in.ID},
		Username:   in.Username,
		FirstName:  in.FirstName,
		SecondName: in.SecondName,
		Email:      in.Email,
	}
}

// Update carries partial-patch semantics: only fields present in the request
// make it into the change set, absent fields stay untouched.
type Update struct {
	Username   *string `json:"username" binding:"omitempty,max=50"`
	FirstName  *string `json:"first_name" binding:"omitempty,max=50"`
	SecondName *string `json:"second_name" binding:"omitempty,max=50"`
	Email      *string `json:"email" binding:"omitempty,email,max=50"`
}

func (in Update) Changes() map[string]any {
	ch := map[string]any{}
	if in.Username != nil {
		ch["username"] = *in.Username
	}
	if in.FirstName != nil {
		ch["first_name"] = *in.FirstName
	}
	if in.SecondName != nil {
		ch["second_name"] = *in.SecondName
	}
	if in.Email != nil {
		ch["email"] = *in.Email
	}
	return ch
}

// Lite is the list-safe summary view.
type Lite struct {
	ID         string     `json:"id"`
	Username   string     `json:"username"`
	FirstName  string     `json:"first_name"`
	SecondName string     `json:"second_name"`
	Email      string     `json:"email"`
	FullName   string     `json:"full_name"`
	DeletedAt  *time.Time `json:"deleted_at"`
}

// Detail is the single-object view, a strict superset of Lite.
type Detail struct {
	Lite
	SectionHead bool      `json:"section_head"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func LiteView(u *User) Lite {
	return Lite{
		ID:         u.ID,
		Username:   u.Username,
		FirstName:  u.FirstName,
		SecondName: u.SecondName,
		Email:      u.Email,
		FullName:   u.FullName(),
		DeletedAt:  u.DeletedAt,
	}
}

func DetailView(u *User) Detail {
	return Detail{
		Lite:        LiteView(u),
		SectionHead: u.SectionHead,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
