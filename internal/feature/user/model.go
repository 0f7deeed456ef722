package user

import "go-gin-crud-starter/internal/crud"

// User is the persisted entity. The id defaults to a generated 32-hex value
// but an OIDC subject may be supplied instead, hence the wider column.
type User struct {
	crud.Base
	Username     string `gorm:"uniqueIndex:uq_users_username;size:50;not null" json:"username"`
	FirstName    string `gorm:"size:50;not null" json:"first_name"`
	SecondName   string `gorm:"size:50;not null" json:"second_name"`
	Email        string `gorm:"size:50;not null" json:"email"`
	SectionHead  bool   `gorm:"not null;default:false" json:"section_head"`
	PasswordHash string `gorm:"size:100" json:"-"` // set only by the local auth provider
}

func (User) TableName() string { return "users" }

func (u *User) FullName() string { return u.FirstName + " " + u.SecondName }
