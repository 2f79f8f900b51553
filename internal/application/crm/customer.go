package crm

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/AgarwalVaibhav-20/dq-backend/internal/application/dto"
	"github.com/AgarwalVaibhav-20/dq-backend/internal/domain/entity"
	"github.com/AgarwalVaibhav-20/dq-backend/internal/domain/repository"
)

// CustomerUseCase manages CRM records. The loyalty balance itself is only
// written by the order reconciler; this use case never touches EarnedPoints.
type CustomerUseCase struct {
	customers repository.CustomerRepository
}

func NewCustomerUseCase(customers repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{customers: customers}
}

func (uc *CustomerUseCase) Create(ctx context.Context, restaurantID string, req dto.CustomerRequest) (*dto.CustomerResponse, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	c := &entity.Customer{
		ID:           uuid.NewString(),
		RestaurantID: restaurantID,
		Name:         req.Name,
		Email:        req.Email,
		PhoneNumber:  req.PhoneNumber,
		Address:      req.Address,
		Birthday:     req.Birthday,
		Anniversary:  req.Anniversary,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.customers.Create(c); err != nil {
		return nil, err
	}
	return toCustomerResponse(c), nil
}

func (uc *CustomerUseCase) Update(ctx context.Context, restaurantID, id string, req dto.CustomerRequest) (*dto.CustomerResponse, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}
	c, err := uc.customers.GetByID(id, restaurantID)
	if err != nil {
		return nil, err
	}
	c.Name = req.Name
	c.Email = req.Email
	c.PhoneNumber = req.PhoneNumber
	c.Address = req.Address
	c.Birthday = req.Birthday
	c.Anniversary = req.Anniversary
	c.UpdatedAt = time.Now().UTC()
	if err := uc.customers.Update(c); err != nil {
		return nil, err
	}
	return toCustomerResponse(c), nil
}

func (uc *CustomerUseCase) Get(ctx context.Context, restaurantID, id string) (*dto.CustomerResponse, error) {
	c, err := uc.customers.GetByID(id, restaurantID)
	if err != nil {
		return nil, err
	}
	return toCustomerResponse(c), nil
}

func (uc *CustomerUseCase) List(ctx context.Context, restaurantID string, page dto.PageRequest) ([]dto.CustomerResponse, error) {
	cs, err := uc.customers.List(restaurantID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CustomerResponse, 0, len(cs))
	for i := range cs {
		out = append(out, *toCustomerResponse(&cs[i]))
	}
	return out, nil
}

func (uc *CustomerUseCase) Delete(ctx context.Context, restaurantID, id string) error {
	return uc.customers.Delete(id, restaurantID)
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:           c.ID,
		Name:         c.Name,
		Email:        c.Email,
		PhoneNumber:  c.PhoneNumber,
		Address:      c.Address,
		EarnedPoints: c.EarnedPoints,
		CreatedAt:    c.CreatedAt,
	}
}
