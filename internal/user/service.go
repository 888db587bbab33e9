package user

import "context"

type CreateReq struct {
	FirstName string
	LastName  string
	ImageURL  string // optional
}

// UpdateReq replaces all editable fields; an empty ImageURL resets the
// image to DefaultImageURL.
type UpdateReq struct {
	FirstName string
	LastName  string
	ImageURL  string
}

type Service interface {
	Create(ctx context.Context, in CreateReq) (*User, error)
	Get(ctx context.Context, id uint) (*User, error)
	ListSorted(ctx context.Context) ([]User, error)
	Update(ctx context.Context, id uint, in UpdateReq) (*User, error)
	Delete(ctx context.Context, id uint) error
}

type service struct{ repo Repository }

func NewService(r Repository) Service { return &service{repo: r} }

func (s *service) Create(ctx context.Context, in CreateReq) (*User, error) {
	u := &User{FirstName: in.FirstName, LastName: in.LastName, ImageURL: in.ImageURL}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) Get(ctx context.Context, id uint) (*User, error) { return s.repo.GetByID(ctx, id) }

func (s *service) ListSorted(ctx context.Context) ([]User, error) { return s.repo.ListSorted(ctx) }

func (s *service) Update(ctx context.Context, id uint, in UpdateReq) (*User, error) {
	u, err := s.repo.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	u.FirstName, u.LastName, u.ImageURL = in.FirstName, in.LastName, in.ImageURL
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) Delete(ctx context.Context, id uint) error { return s.repo.Delete(ctx, id) }
