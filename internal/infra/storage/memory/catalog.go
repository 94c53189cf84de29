package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/infra/storage/catalog"
)

// CatalogRepository каталог в памяти
type CatalogRepository struct {
	s *Store
}

func (r *CatalogRepository) GetStylistByID(ctx context.Context, id uuid.UUID) (*domain.Stylist, error) {
	unlock := r.s.acquire(ctx)
	defer unlock()

	st, ok := r.s.stylists[id]
	if !ok || st.IsDeleted {
		return nil, catalog.ErrStylistNotFound
	}
	if owner, ok := r.s.users[st.UserID]; ok {
		st.FullName = owner.FullName
	}
	return &st, nil
}

// LockStylist внутри единицы работы хранилище уже заблокировано целиком
func (r *CatalogRepository) LockStylist(ctx context.Context, id uuid.UUID) (*domain.Stylist, error) {
	return r.GetStylistByID(ctx, id)
}

func (r *CatalogRepository) GetServiceByID(ctx context.Context, id uuid.UUID) (*domain.Service, error) {
	unlock := r.s.acquire(ctx)
	defer unlock()

	sv, ok := r.s.services[id]
	if !ok || sv.IsDeleted {
		return nil, catalog.ErrServiceNotFound
	}
	return &sv, nil
}
