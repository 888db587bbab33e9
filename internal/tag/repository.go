package tag

import (
	"context"

	"blogly/internal/shared/db"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, t *Tag) error
	GetByID(ctx context.Context, id uint) (*Tag, error)
	FindByIDs(ctx context.Context, ids []uint) ([]Tag, error)
	FindByNames(ctx context.Context, names []string) ([]Tag, error)
	FirstOrCreateByName(ctx context.Context, name string) (*Tag, error)
	List(ctx context.Context) ([]Tag, error)
	ListWithCounts(ctx context.Context) ([]Count, error)
	Rename(ctx context.Context, id uint, name string) error
	Delete(ctx context.Context, id uint) error
}

type repo struct{ store *db.Store }

func NewRepository(s *db.Store) Repository { return &repo{store: s} }

func (r *repo) Create(ctx context.Context, t *Tag) error {
	return r.store.Write(ctx).Create(t).Error
}

func (r *repo) GetByID(ctx context.Context, id uint) (*Tag, error) {
	var t Tag
	if err := r.store.Read(ctx).First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *repo) FindByIDs(ctx context.Context, ids []uint) ([]Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var out []Tag
	err := r.store.Read(ctx).Where("id IN ?", ids).Order("name").Find(&out).Error
	return out, err
}

func (r *repo) FindByNames(ctx context.Context, names []string) ([]Tag, error) {
	if len(names) == 0 {
		return nil, nil
	}
	var out []Tag
	err := r.store.Read(ctx).Where("name IN ?", names).Order("name").Find(&out).Error
	return out, err
}

func (r *repo) FirstOrCreateByName(ctx context.Context, name string) (*Tag, error) {
	t := &Tag{Name: name}
	if err := r.store.Write(ctx).FirstOrCreate(t, "name = ?", name).Error; err != nil {
		return nil, err
	}
	return t, nil
}

func (r *repo) List(ctx context.Context) ([]Tag, error) {
	var out []Tag
	err := r.store.Read(ctx).Order("name").Find(&out).Error
	return out, err
}

func (r *repo) ListWithCounts(ctx context.Context) ([]Count, error) {
	var out []Count
	err := r.store.Read(ctx).Model(&Tag{}).
		Select("tags.id, tags.name, COUNT(post_tag.post_id) AS posts").
		Joins("LEFT JOIN post_tag ON post_tag.tag_id = tags.id").
		Group("tags.id, tags.name").
		Order("tags.name").
		Scan(&out).Error
	return out, err
}

// Rename returns gorm.ErrRecordNotFound when no tag has the id.
func (r *repo) Rename(ctx context.Context, id uint, name string) error {
	res := r.store.Write(ctx).Model(&Tag{ID: id}).Update("name", name)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes the tag. Its post_tag rows go with it through the
// ON DELETE CASCADE foreign key; posts are not touched.
func (r *repo) Delete(ctx context.Context, id uint) error {
	return r.store.Write(ctx).Delete(&Tag{}, id).Error
}
