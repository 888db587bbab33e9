package user

import (
	"context"

	"blogly/internal/shared/db"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uint) (*User, error)
	GetForUpdate(ctx context.Context, id uint) (*User, error)
	ListSorted(ctx context.Context) ([]User, error)
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, id uint) error
}

type repo struct{ store *db.Store }

func NewRepository(s *db.Store) Repository { return &repo{store: s} }

func (r *repo) Create(ctx context.Context, u *User) error {
	return r.store.Write(ctx).Omit(clause.Associations).Create(u).Error
}

// GetByID loads the user with their posts, newest first.
func (r *repo) GetByID(ctx context.Context, id uint) (*User, error) {
	var u User
	err := r.store.Read(ctx).
		Preload("Posts", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("posts.created_at DESC, posts.id DESC")
		}).
		First(&u, id).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetForUpdate loads the bare user row from the primary, for a
// read-modify-write that must see the latest committed state.
func (r *repo) GetForUpdate(ctx context.Context, id uint) (*User, error) {
	var u User
	if err := r.store.Write(ctx).First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// ListSorted returns every user by last name then first name. COLLATE "C"
// keeps the comparison case-sensitive byte order regardless of the
// database locale.
func (r *repo) ListSorted(ctx context.Context) ([]User, error) {
	var out []User
	err := r.store.Read(ctx).
		Order(`last_name COLLATE "C"`).
		Order(`first_name COLLATE "C"`).
		Order("id").
		Find(&out).Error
	return out, err
}

func (r *repo) Update(ctx context.Context, u *User) error {
	return r.store.Write(ctx).Omit(clause.Associations).Save(u).Error
}

// Delete removes the user; their posts and those posts' tag links follow
// through the cascading foreign keys.
func (r *repo) Delete(ctx context.Context, id uint) error {
	return r.store.Write(ctx).Delete(&User{}, id).Error
}
