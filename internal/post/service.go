package post

import (
	"context"

	"blogly/internal/shared/db"
	"blogly/internal/tag"
)

type CreateReq struct {
	Title   string
	Content string
	TagIDs  []uint
}

type UpdateReq struct {
	Title   string
	Content string
	TagIDs  []uint
}

type Service interface {
	Create(ctx context.Context, posterID uint, in CreateReq) (*Post, error)
	Get(ctx context.Context, id uint) (*Post, error)
	Recent(ctx context.Context, limit int) ([]Post, error)
	ListByTag(ctx context.Context, tagID uint) ([]Post, error)
	Update(ctx context.Context, id uint, in UpdateReq) (*Post, error)
	Delete(ctx context.Context, id uint) error
}

// service holds the store rather than a repository: writes that touch
// both posts and post_tag run as one transaction with tx-scoped repos.
type service struct{ store *db.Store }

func NewService(s *db.Store) Service { return &service{store: s} }

// Create inserts the post and its tag links in one unit of work. Unknown
// tag ids are ignored.
func (s *service) Create(ctx context.Context, posterID uint, in CreateReq) (*Post, error) {
	p := &Post{Title: in.Title, Content: in.Content, PosterID: posterID}
	err := s.store.Transaction(ctx, func(tx *db.Store) error {
		tags, err := tag.NewRepository(tx).FindByIDs(ctx, in.TagIDs)
		if err != nil {
			return err
		}
		p.Tags = tags
		return NewRepository(tx).Create(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) Get(ctx context.Context, id uint) (*Post, error) {
	return NewRepository(s.store).GetByID(ctx, id)
}

func (s *service) Recent(ctx context.Context, limit int) ([]Post, error) {
	return NewRepository(s.store).ListRecent(ctx, limit)
}

func (s *service) ListByTag(ctx context.Context, tagID uint) ([]Post, error) {
	return NewRepository(s.store).ListByTag(ctx, tagID)
}

func (s *service) Update(ctx context.Context, id uint, in UpdateReq) (*Post, error) {
	var p *Post
	err := s.store.Transaction(ctx, func(tx *db.Store) error {
		repo := NewRepository(tx)
		var err error
		if p, err = repo.GetByID(ctx, id); err != nil {
			return err
		}
		p.Title, p.Content = in.Title, in.Content
		if err := repo.Update(ctx, p); err != nil {
			return err
		}
		tags, err := tag.NewRepository(tx).FindByIDs(ctx, in.TagIDs)
		if err != nil {
			return err
		}
		return repo.ReplaceTags(ctx, p, tags)
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	return NewRepository(s.store).Delete(ctx, id)
}
