package fleet

import (
	"context"
	"testing"

	"github.com/minhalawais/Stallion/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockVehicleRepository struct {
	mock.Mock
}

func (m *MockVehicleRepository) List(ctx context.Context) ([]domain.Vehicle, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) GetByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) GetFleet(ctx context.Context) ([]domain.Vehicle, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Vehicle), args.Error(1)
}

func (m *MockCache) SetFleet(ctx context.Context, vehicles []domain.Vehicle) error {
	args := m.Called(ctx, vehicles)
	return args.Error(0)
}

func TestList_CacheHitSkipsRepository(t *testing.T) {
	repo := &MockVehicleRepository{}
	cache := &MockCache{}
	svc := NewFleetService(repo, cache)

	cached := []domain.Vehicle{{ID: 1, Name: "Luxury Sedan", Price: "1500"}}
	cache.On("GetFleet", mock.Anything).Return(cached, nil)

	vehicles, err := svc.List(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, cached, vehicles)
	repo.AssertNotCalled(t, "List", mock.Anything)
}

func TestList_CacheMissFillsCache(t *testing.T) {
	repo := &MockVehicleRepository{}
	cache := &MockCache{}
	svc := NewFleetService(repo, cache)

	fromDB := []domain.Vehicle{{ID: 2, Name: "Stretch Limo", Price: "5000"}}
	cache.On("GetFleet", mock.Anything).Return(nil, nil)
	repo.On("List", mock.Anything).Return(fromDB, nil)
	cache.On("SetFleet", mock.Anything, fromDB).Return(nil)

	vehicles, err := svc.List(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, fromDB, vehicles)
	cache.AssertExpectations(t)
}

func TestList_NilCache(t *testing.T) {
	repo := &MockVehicleRepository{}
	svc := NewFleetService(repo, nil)

	fromDB := []domain.Vehicle{{ID: 3, Name: "Luxury Bus"}}
	repo.On("List", mock.Anything).Return(fromDB, nil)

	vehicles, err := svc.List(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, fromDB, vehicles)
}

func TestGetByID_NotFound(t *testing.T) {
	repo := &MockVehicleRepository{}
	svc := NewFleetService(repo, nil)

	repo.On("GetByID", mock.Anything, int64(42)).Return(nil, domain.ErrVehicleNotFound)

	_, err := svc.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrVehicleNotFound)
}
