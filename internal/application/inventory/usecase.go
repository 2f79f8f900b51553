package inventory

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AgarwalVaibhav-20/dq-backend/internal/application/dto"
	"github.com/AgarwalVaibhav-20/dq-backend/internal/domain"
	"github.com/AgarwalVaibhav-20/dq-backend/internal/domain/entity"
	"github.com/AgarwalVaibhav-20/dq-backend/internal/domain/ledger"
	"github.com/AgarwalVaibhav-20/dq-backend/internal/domain/repository"
	"github.com/AgarwalVaibhav-20/dq-backend/internal/domain/unit"
	"github.com/AgarwalVaibhav-20/dq-backend/pkg/logger"
)

// UseCase coordinates stock ledger operations. Every mutation runs inside a
// transaction with the inventory row locked, so concurrent restocks and
// deductions for the same item serialize at the database.
type UseCase struct {
	tx  TxRunner
	log *logger.Logger
}

func NewUseCase(tx TxRunner, log *logger.Logger) *UseCase {
	return &UseCase{tx: tx, log: log}
}

// Restock records a supplier purchase. If an item with the same name already
// exists for the restaurant the batch is appended to it, otherwise a new item
// is created. Aggregates accumulate additively across restocks.
func (uc *UseCase) Restock(ctx context.Context, restaurantID string, req dto.RestockRequest) (*dto.InventoryItemResponse, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}
	u, err := unit.Parse(req.Unit)
	if err != nil {
		return nil, err
	}
	qty := req.Quantity
	price := req.UnitPrice
	// Zero-price batches are legal (donated or promotional stock); a batch
	// with no quantity is not.
	if !qty.IsPositive() || price.IsNegative() {
		return nil, domain.ErrInvalidQuantity
	}
	// "Tomato" and " tomato " are the same ledger item.
	name := strings.ToLower(strings.TrimSpace(req.ItemName))
	if name == "" {
		return nil, domain.ErrInvalidInput
	}

	var out *dto.InventoryItemResponse
	err = uc.tx.Run(ctx, func(invRepo repository.InventoryRepository, _ repository.WasteRepository) error {
		item, err := invRepo.GetByName(name, restaurantID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		now := time.Now().UTC()
		if item == nil {
			item = &entity.InventoryItem{
				ID:           uuid.NewString(),
				RestaurantID: restaurantID,
				ItemName:     name,
				Unit:         u,
				CreatedAt:    now,
			}
			if err := invRepo.Create(item); err != nil {
				return err
			}
		} else {
			// Lock the existing row before touching aggregates.
			item, err = invRepo.GetForUpdate(item.ID, restaurantID)
			if err != nil {
				return err
			}
			if item.Unit != u {
				if !unit.Compatible(item.Unit, u) {
					return domain.ErrIncompatibleUnit
				}
				qty, err = unit.Convert(qty, u, item.Unit)
				if err != nil {
					return err
				}
			}
		}

		batch := entity.SupplierBatch{
			ID:           uuid.NewString(),
			SupplierID:   req.SupplierID,
			SupplierName: req.SupplierName,
			Quantity:     qty,
			UnitPrice:    price,
			PurchasedAt:  now,
		}
		if req.PurchasedAt != nil {
			batch.PurchasedAt = *req.PurchasedAt
		}
		ledger.Restock(item, batch)
		item.UpdatedAt = now
		if err := invRepo.Update(item); err != nil {
			return err
		}
		out = toItemResponse(item)
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("restaurant_id", restaurantID).
		Str("item", name).
		Str("quantity", req.Quantity.String()).
		Msg("inventory restocked")
	return out, nil
}

// Deduct removes stock from an item, consuming supplier batches oldest first.
func (uc *UseCase) Deduct(ctx context.Context, restaurantID, itemID string, req dto.DeductRequest) (*dto.DeductResponse, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}
	u, err := unit.Parse(req.Unit)
	if err != nil {
		return nil, err
	}

	var out *dto.DeductResponse
	err = uc.tx.Run(ctx, func(invRepo repository.InventoryRepository, _ repository.WasteRepository) error {
		item, err := invRepo.GetForUpdate(itemID, restaurantID)
		if err != nil {
			return err
		}
		remaining, err := ledger.Deduct(item, req.Quantity, u)
		if err != nil {
			return err
		}
		item.UpdatedAt = time.Now().UTC()
		if err := invRepo.Update(item); err != nil {
			return err
		}
		out = &dto.DeductResponse{
			ItemID:        item.ID,
			TotalQuantity: remaining,
			Unit:          string(item.Unit),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns a single inventory item.
func (uc *UseCase) Get(ctx context.Context, restaurantID, itemID string) (*dto.InventoryItemResponse, error) {
	var out *dto.InventoryItemResponse
	err := uc.tx.Run(ctx, func(invRepo repository.InventoryRepository, _ repository.WasteRepository) error {
		item, err := invRepo.GetByID(itemID, restaurantID)
		if err != nil {
			return err
		}
		out = toItemResponse(item)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// List returns the restaurant's inventory, soft-deleted items excluded.
func (uc *UseCase) List(ctx context.Context, restaurantID string, page dto.PageRequest) ([]dto.InventoryItemResponse, error) {
	var out []dto.InventoryItemResponse
	err := uc.tx.Run(ctx, func(invRepo repository.InventoryRepository, _ repository.WasteRepository) error {
		items, err := invRepo.List(restaurantID, page.Limit, page.Offset)
		if err != nil {
			return err
		}
		out = make([]dto.InventoryItemResponse, 0, len(items))
		for i := range items {
			out = append(out, *toItemResponse(&items[i]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete soft-deletes an inventory item. History stays queryable.
func (uc *UseCase) Delete(ctx context.Context, restaurantID, itemID string) error {
	return uc.tx.Run(ctx, func(invRepo repository.InventoryRepository, _ repository.WasteRepository) error {
		return invRepo.SoftDelete(itemID, restaurantID, time.Now().UTC())
	})
}

func toItemResponse(item *entity.InventoryItem) *dto.InventoryItemResponse {
	suppliers := make([]dto.SupplierBatchDTO, 0, len(item.Suppliers))
	for _, b := range item.Suppliers {
		suppliers = append(suppliers, dto.SupplierBatchDTO{
			ID:           b.ID,
			SupplierID:   b.SupplierID,
			SupplierName: b.SupplierName,
			Quantity:     b.Quantity,
			UnitPrice:    b.UnitPrice,
			Total:        b.Total,
			PurchasedAt:  b.PurchasedAt,
		})
	}
	return &dto.InventoryItemResponse{
		ID:            item.ID,
		ItemName:      item.ItemName,
		Unit:          string(item.Unit),
		Quantity:      item.Stock.Quantity,
		TotalQuantity: item.Stock.TotalQuantity,
		Amount:        item.Stock.Amount,
		Total:         item.Stock.Total,
		Suppliers:     suppliers,
		CreatedAt:     item.CreatedAt,
		UpdatedAt:     item.UpdatedAt,
	}
}
