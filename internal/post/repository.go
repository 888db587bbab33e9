package post

import (
	"context"

	"blogly/internal/shared/db"
	"blogly/internal/tag"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, p *Post) error
	GetByID(ctx context.Context, id uint) (*Post, error)
	ListRecent(ctx context.Context, limit int) ([]Post, error)
	ListByPoster(ctx context.Context, posterID uint) ([]Post, error)
	ListByTag(ctx context.Context, tagID uint) ([]Post, error)
	Update(ctx context.Context, p *Post) error
	Delete(ctx context.Context, id uint) error

	AttachTags(ctx context.Context, p *Post, tags ...tag.Tag) error
	DetachTags(ctx context.Context, p *Post, tags ...tag.Tag) error
	ReplaceTags(ctx context.Context, p *Post, tags []tag.Tag) error
	ReloadTags(ctx context.Context, p *Post) error
}

type repo struct{ store *db.Store }

func NewRepository(s *db.Store) Repository { return &repo{store: s} }

func byName(tx *gorm.DB) *gorm.DB { return tx.Order("tags.name") }

func newestFirst(tx *gorm.DB) *gorm.DB { return tx.Order("posts.created_at DESC, posts.id DESC") }

// Create inserts the post and a post_tag row for every tag already in
// p.Tags. The tags themselves must exist.
func (r *repo) Create(ctx context.Context, p *Post) error {
	return r.store.Write(ctx).Omit("Tags.*").Create(p).Error
}

func (r *repo) GetByID(ctx context.Context, id uint) (*Post, error) {
	var p Post
	if err := r.store.Read(ctx).Preload("Tags", byName).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// ListRecent returns up to limit posts, newest first. A limit below 1
// returns no posts without querying.
func (r *repo) ListRecent(ctx context.Context, limit int) ([]Post, error) {
	if limit < 1 {
		return nil, nil
	}
	var out []Post
	err := r.store.Read(ctx).Scopes(newestFirst).Limit(limit).Find(&out).Error
	return out, err
}

func (r *repo) ListByPoster(ctx context.Context, posterID uint) ([]Post, error) {
	var out []Post
	err := r.store.Read(ctx).Where("poster_id = ?", posterID).Scopes(newestFirst).Find(&out).Error
	return out, err
}

func (r *repo) ListByTag(ctx context.Context, tagID uint) ([]Post, error) {
	var out []Post
	err := r.store.Read(ctx).
		Joins("JOIN post_tag ON post_tag.post_id = posts.id AND post_tag.tag_id = ?", tagID).
		Scopes(newestFirst).
		Find(&out).Error
	return out, err
}

// Update writes title and content only.
func (r *repo) Update(ctx context.Context, p *Post) error {
	return r.store.Write(ctx).Model(p).Select("title", "content").Updates(p).Error
}

func (r *repo) Delete(ctx context.Context, id uint) error {
	return r.store.Write(ctx).Delete(&Post{}, id).Error
}

// AttachTags appends tags to p. Tags already on p are skipped, and the
// post_tag primary key turns a concurrent duplicate into a no-op.
func (r *repo) AttachTags(ctx context.Context, p *Post, tags ...tag.Tag) error {
	fresh := make([]tag.Tag, 0, len(tags))
	have := make(map[uint]struct{}, len(p.Tags)+len(tags))
	for _, t := range p.Tags {
		have[t.ID] = struct{}{}
	}
	for _, t := range tags {
		if _, ok := have[t.ID]; ok {
			continue
		}
		have[t.ID] = struct{}{}
		fresh = append(fresh, t)
	}
	if len(fresh) == 0 {
		return nil
	}
	return r.store.Write(ctx).Model(p).Omit("Tags.*").Association("Tags").Append(fresh)
}

func (r *repo) DetachTags(ctx context.Context, p *Post, tags ...tag.Tag) error {
	if len(tags) == 0 {
		return nil
	}
	return r.store.Write(ctx).Model(p).Association("Tags").Delete(tags)
}

func (r *repo) ReplaceTags(ctx context.Context, p *Post, tags []tag.Tag) error {
	a := r.store.Write(ctx).Model(p).Omit("Tags.*").Association("Tags")
	if len(tags) == 0 {
		return a.Clear()
	}
	return a.Replace(tags)
}

// ReloadTags refreshes p.Tags from the primary, so rows removed by a
// committed tag delete disappear from an already loaded post.
func (r *repo) ReloadTags(ctx context.Context, p *Post) error {
	var tags []tag.Tag
	if err := r.store.Write(ctx).Model(p).Order("tags.name").Association("Tags").Find(&tags); err != nil {
		return err
	}
	p.Tags = tags
	return nil
}
