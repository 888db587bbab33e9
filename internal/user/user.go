package user

import (
	"cmp"
	"slices"
	"strings"

	"blogly/internal/post"

	"gorm.io/gorm"
)

// DefaultImageURL is stored for users created or saved without an image.
const DefaultImageURL = "https://www.freeiconspng.com/uploads/icon-user-blue-symbol-people-person-generic--public-domain--21.png"

type User struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	FirstName string      `gorm:"size:50;not null" json:"first_name"`
	LastName  string      `gorm:"size:50;not null" json:"last_name"`
	ImageURL  string      `gorm:"type:text;not null;check:image_url <> ''" json:"image_url"`
	Posts     []post.Post `gorm:"foreignKey:PosterID;constraint:OnDelete:CASCADE" json:"posts,omitempty"`
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// BeforeSave runs for both Create and Save, so clearing the image on an
// edit falls back to the default as well.
func (u *User) BeforeSave(*gorm.DB) error {
	if u.ImageURL == "" {
		u.ImageURL = DefaultImageURL
	}
	return nil
}

// SortUsers orders users by last name, then first name, in byte order,
// with ties broken by id. It matches Repository.ListSorted.
func SortUsers(users []User) {
	slices.SortStableFunc(users, func(a, b User) int {
		if c := strings.Compare(a.LastName, b.LastName); c != 0 {
			return c
		}
		if c := strings.Compare(a.FirstName, b.FirstName); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}
