package tag

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memRepo backs Ensure with a map; only FirstOrCreateByName is used.
type memRepo struct {
	Repository
	byName map[string]*Tag
	calls  int
}

func (m *memRepo) FirstOrCreateByName(_ context.Context, name string) (*Tag, error) {
	m.calls++
	if t, ok := m.byName[name]; ok {
		return t, nil
	}
	t := &Tag{ID: uint(len(m.byName) + 1), Name: name}
	m.byName[name] = t
	return t, nil
}

func TestService_Ensure(t *testing.T) {
	repo := &memRepo{byName: map[string]*Tag{"pets": {ID: 7, Name: "pets"}}}
	svc := NewService(repo)

	got, err := svc.Ensure(context.Background(), []string{" winning", "pets", "", "winning", "  ", "pets"})
	require.NoError(t, err)

	want := []Tag{{ID: 2, Name: "winning"}, {ID: 7, Name: "pets"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("diff: -want, +got:\n%s", diff)
	}
	assert.Equal(t, 2, repo.calls)
}

func TestService_EnsureEmpty(t *testing.T) {
	got, err := NewService(&memRepo{byName: map[string]*Tag{}}).Ensure(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}
