package tag

import (
	"context"
	"strings"
)

type Service interface {
	Create(ctx context.Context, name string) (*Tag, error)
	Ensure(ctx context.Context, names []string) ([]Tag, error)
	Get(ctx context.Context, id uint) (*Tag, error)
	List(ctx context.Context) ([]Count, error)
	Rename(ctx context.Context, id uint, name string) error
	Delete(ctx context.Context, id uint) error
}

type service struct{ repo Repository }

func NewService(r Repository) Service { return &service{repo: r} }

func (s *service) Create(ctx context.Context, name string) (*Tag, error) {
	t := &Tag{Name: name}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Ensure returns one tag per distinct non-blank name, creating the missing
// ones. Order follows the first occurrence of each name.
func (s *service) Ensure(ctx context.Context, names []string) ([]Tag, error) {
	out := make([]Tag, 0, len(names))
	seen := map[string]struct{}{}
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		t, err := s.repo.FirstOrCreateByName(ctx, n)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, id uint) (*Tag, error) { return s.repo.GetByID(ctx, id) }

func (s *service) List(ctx context.Context) ([]Count, error) { return s.repo.ListWithCounts(ctx) }

func (s *service) Rename(ctx context.Context, id uint, name string) error {
	return s.repo.Rename(ctx, id, name)
}

func (s *service) Delete(ctx context.Context, id uint) error { return s.repo.Delete(ctx, id) }
