package crm

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/AgarwalVaibhav-20/dq-backend/internal/application/dto"
	"github.com/AgarwalVaibhav-20/dq-backend/internal/domain/entity"
	"github.com/AgarwalVaibhav-20/dq-backend/internal/domain/repository"
)

// SupplierUseCase manages purchase sources. Suppliers are soft-deleted so
// batch attribution on old restocks keeps resolving.
type SupplierUseCase struct {
	suppliers repository.SupplierRepository
}

func NewSupplierUseCase(suppliers repository.SupplierRepository) *SupplierUseCase {
	return &SupplierUseCase{suppliers: suppliers}
}

func (uc *SupplierUseCase) Create(ctx context.Context, restaurantID string, req dto.SupplierRequest) (*dto.SupplierResponse, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	s := &entity.Supplier{
		ID:           uuid.NewString(),
		RestaurantID: restaurantID,
		SupplierName: req.SupplierName,
		Email:        req.Email,
		PhoneNumber:  req.PhoneNumber,
		Address:      req.Address,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.suppliers.Create(s); err != nil {
		return nil, err
	}
	return toSupplierResponse(s), nil
}

func (uc *SupplierUseCase) Update(ctx context.Context, restaurantID, id string, req dto.SupplierRequest) (*dto.SupplierResponse, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}
	s, err := uc.suppliers.GetByID(id, restaurantID)
	if err != nil {
		return nil, err
	}
	s.SupplierName = req.SupplierName
	s.Email = req.Email
	s.PhoneNumber = req.PhoneNumber
	s.Address = req.Address
	s.UpdatedAt = time.Now().UTC()
	if err := uc.suppliers.Update(s); err != nil {
		return nil, err
	}
	return toSupplierResponse(s), nil
}

func (uc *SupplierUseCase) Get(ctx context.Context, restaurantID, id string) (*dto.SupplierResponse, error) {
	s, err := uc.suppliers.GetByID(id, restaurantID)
	if err != nil {
		return nil, err
	}
	return toSupplierResponse(s), nil
}

func (uc *SupplierUseCase) List(ctx context.Context, restaurantID string, page dto.PageRequest) ([]dto.SupplierResponse, error) {
	ss, err := uc.suppliers.List(restaurantID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SupplierResponse, 0, len(ss))
	for i := range ss {
		out = append(out, *toSupplierResponse(&ss[i]))
	}
	return out, nil
}

func (uc *SupplierUseCase) Delete(ctx context.Context, restaurantID, id string) error {
	return uc.suppliers.SoftDelete(id, restaurantID)
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{
		ID:           s.ID,
		SupplierName: s.SupplierName,
		Email:        s.Email,
		PhoneNumber:  s.PhoneNumber,
		Address:      s.Address,
		CreatedAt:    s.CreatedAt,
	}
}
