package fleet

import (
	"context"

	"github.com/minhalawais/Stallion/internal/domain"
	"github.com/minhalawais/Stallion/internal/repository"
)

type FleetUseCase interface {
	List(ctx context.Context) ([]domain.Vehicle, error)
	GetByID(ctx context.Context, id int64) (*domain.Vehicle, error)
}

type Cache interface {
	GetFleet(ctx context.Context) ([]domain.Vehicle, error)
	SetFleet(ctx context.Context, vehicles []domain.Vehicle) error
}

type FleetService struct {
	repo  repository.VehicleRepository
	cache Cache
}

func NewFleetService(repo repository.VehicleRepository, cache Cache) *FleetService {
	return &FleetService{repo: repo, cache: cache}
}

func (s *FleetService) List(ctx context.Context) ([]domain.Vehicle, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetFleet(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	vehicles, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetFleet(ctx, vehicles)
	}
	return vehicles, nil
}

func (s *FleetService) GetByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	return s.repo.GetByID(ctx, id)
}

var _ FleetUseCase = (*FleetService)(nil)
