package module

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/trazabilidad-api/internal/domain/entity"
)

type countingRepo struct {
	calls  int
	active bool
	err    error
}

func (r *countingRepo) GetByID(context.Context, string) (*entity.Company, error) { return nil, nil }

func (r *countingRepo) HasActiveModule(context.Context, string, string) (bool, error) {
	r.calls++
	return r.active, r.err
}

func TestHasActiveModule_CachesWithinTTL(t *testing.T) {
	repo := &countingRepo{active: true}
	s := NewService(repo, time.Minute)
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		ok, err := s.HasActiveModule(context.Background(), "c1", entity.ModuleTraceability)
		require.NoError(t, err)
		assert.True(t, ok)
	}
	assert.Equal(t, 1, repo.calls)

	now = now.Add(2 * time.Minute)
	_, err := s.HasActiveModule(context.Background(), "c1", entity.ModuleTraceability)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.calls, "vencido el ttl se vuelve a consultar")
}

func TestHasActiveModule_ErrorsNotCached(t *testing.T) {
	repo := &countingRepo{err: errors.New("db caída")}
	s := NewService(repo, time.Minute)

	_, err := s.HasActiveModule(context.Background(), "c1", entity.ModuleTraceability)
	require.Error(t, err)

	repo.err = nil
	repo.active = true
	ok, err := s.HasActiveModule(context.Background(), "c1", entity.ModuleTraceability)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 2, repo.calls)
}

func TestHasActiveModule_RequiresArgs(t *testing.T) {
	s := NewService(&countingRepo{}, 0)
	_, err := s.HasActiveModule(context.Background(), "", entity.ModuleTraceability)
	assert.Error(t, err)
}
