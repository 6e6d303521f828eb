package repositories

import (
	"context"
	"sort"

	"github.com/CamiloBytes/reportesvc/domain"
	"github.com/CamiloBytes/reportesvc/internal/infrastructure/rest"
)

// BarrioRepository implements domain.BarrioRepository over the barrios
// collection. Results come back sorted by name, which is how the intake
// form presents them.
type BarrioRepository struct {
	client *rest.Client
}

// NewBarrioRepository creates a new barrio repository.
func NewBarrioRepository(client *rest.Client) domain.BarrioRepository {
	return &BarrioRepository{client: client}
}

// List implements domain.BarrioRepository.
func (r *BarrioRepository) List(ctx context.Context) ([]domain.Barrio, error) {
	var barrios []domain.Barrio
	if err := r.client.Get(ctx, "/barrios", &barrios); err != nil {
		return nil, err
	}
	sort.Slice(barrios, func(i, j int) bool {
		return barrios[i].Name < barrios[j].Name
	})
	return barrios, nil
}

var _ domain.BarrioRepository = (*BarrioRepository)(nil)
