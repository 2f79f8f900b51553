package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/AgarwalVaibhav-20/dq-backend/internal/application/dto"
	"github.com/AgarwalVaibhav-20/dq-backend/internal/domain"
	"github.com/AgarwalVaibhav-20/dq-backend/internal/domain/entity"
	"github.com/AgarwalVaibhav-20/dq-backend/internal/domain/ledger"
	"github.com/AgarwalVaibhav-20/dq-backend/internal/domain/repository"
	"github.com/AgarwalVaibhav-20/dq-backend/internal/domain/unit"
)

// CreateWaste records spoilage and writes the quantity off the item's
// aggregates. Supplier batches keep their history, only totals shrink.
func (uc *UseCase) CreateWaste(ctx context.Context, restaurantID string, req dto.WasteRequest) (*dto.WasteResponse, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}
	u, err := unit.Parse(req.Unit)
	if err != nil {
		return nil, err
	}
	if !req.Quantity.IsPositive() {
		return nil, domain.ErrInvalidQuantity
	}

	var out *dto.WasteResponse
	err = uc.tx.Run(ctx, func(invRepo repository.InventoryRepository, wasteRepo repository.WasteRepository) error {
		item, err := invRepo.GetForUpdate(req.ItemID, restaurantID)
		if err != nil {
			return err
		}
		if err := ledger.WriteOff(item, req.Quantity, u); err != nil {
			return err
		}
		now := time.Now().UTC()
		item.UpdatedAt = now
		if err := invRepo.Update(item); err != nil {
			return err
		}

		rec := &entity.WasteRecord{
			ID:           uuid.NewString(),
			RestaurantID: restaurantID,
			ItemID:       item.ID,
			ItemName:     item.ItemName,
			Quantity:     req.Quantity,
			Unit:         u,
			Reason:       req.Reason,
			Date:         now,
			CreatedAt:    now,
		}
		if req.Date != nil {
			rec.Date = *req.Date
		}
		if err := wasteRepo.Create(rec); err != nil {
			return err
		}
		out = toWasteResponse(rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("restaurant_id", restaurantID).
		Str("item_id", req.ItemID).
		Str("quantity", req.Quantity.String()).
		Msg("waste recorded")
	return out, nil
}

// UpdateWaste edits an existing waste record and re-attributes stock. When the
// item changes, the old quantity goes back to the old item and the new
// quantity comes off the new one, which is checked for availability first.
// When only the quantity changes, just the difference moves.
func (uc *UseCase) UpdateWaste(ctx context.Context, restaurantID, wasteID string, req dto.WasteRequest) (*dto.WasteResponse, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}
	u, err := unit.Parse(req.Unit)
	if err != nil {
		return nil, err
	}
	if !req.Quantity.IsPositive() {
		return nil, domain.ErrInvalidQuantity
	}

	var out *dto.WasteResponse
	err = uc.tx.Run(ctx, func(invRepo repository.InventoryRepository, wasteRepo repository.WasteRepository) error {
		rec, err := wasteRepo.GetByID(wasteID, restaurantID)
		if err != nil {
			return err
		}

		if rec.ItemID != req.ItemID {
			oldItem, err := invRepo.GetForUpdate(rec.ItemID, restaurantID)
			if err != nil {
				return err
			}
			if err := ledger.Restore(oldItem, rec.Quantity, rec.Unit); err != nil {
				return err
			}
			newItem, err := invRepo.GetForUpdate(req.ItemID, restaurantID)
			if err != nil {
				return err
			}
			if err := ledger.WriteOff(newItem, req.Quantity, u); err != nil {
				return err
			}
			now := time.Now().UTC()
			oldItem.UpdatedAt = now
			newItem.UpdatedAt = now
			if err := invRepo.Update(oldItem); err != nil {
				return err
			}
			if err := invRepo.Update(newItem); err != nil {
				return err
			}
			rec.ItemID = newItem.ID
			rec.ItemName = newItem.ItemName
		} else {
			item, err := invRepo.GetForUpdate(rec.ItemID, restaurantID)
			if err != nil {
				return err
			}
			oldQty, err := unit.Convert(rec.Quantity, rec.Unit, u)
			if err != nil {
				return err
			}
			diff := unit.Sub(req.Quantity, oldQty)
			switch {
			case diff.IsPositive():
				if err := ledger.WriteOff(item, diff, u); err != nil {
					return err
				}
			case diff.IsNegative():
				if err := ledger.Restore(item, diff.Neg(), u); err != nil {
					return err
				}
			}
			item.UpdatedAt = time.Now().UTC()
			if err := invRepo.Update(item); err != nil {
				return err
			}
		}

		rec.Quantity = req.Quantity
		rec.Unit = u
		if req.Reason != "" {
			rec.Reason = req.Reason
		}
		if req.Date != nil {
			rec.Date = *req.Date
		}
		if err := wasteRepo.Update(rec); err != nil {
			return err
		}
		out = toWasteResponse(rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteWaste removes a waste record and returns its quantity to stock.
func (uc *UseCase) DeleteWaste(ctx context.Context, restaurantID, wasteID string) error {
	return uc.tx.Run(ctx, func(invRepo repository.InventoryRepository, wasteRepo repository.WasteRepository) error {
		rec, err := wasteRepo.GetByID(wasteID, restaurantID)
		if err != nil {
			return err
		}
		item, err := invRepo.GetForUpdate(rec.ItemID, restaurantID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		if item != nil {
			if err := ledger.Restore(item, rec.Quantity, rec.Unit); err != nil {
				return err
			}
			item.UpdatedAt = time.Now().UTC()
			if err := invRepo.Update(item); err != nil {
				return err
			}
		}
		return wasteRepo.Delete(wasteID, restaurantID)
	})
}

// ListWaste returns waste records for a restaurant, newest first.
func (uc *UseCase) ListWaste(ctx context.Context, restaurantID string, page dto.PageRequest) ([]dto.WasteResponse, error) {
	var out []dto.WasteResponse
	err := uc.tx.Run(ctx, func(_ repository.InventoryRepository, wasteRepo repository.WasteRepository) error {
		recs, err := wasteRepo.List(restaurantID, page.Limit, page.Offset)
		if err != nil {
			return err
		}
		out = make([]dto.WasteResponse, 0, len(recs))
		for i := range recs {
			out = append(out, *toWasteResponse(&recs[i]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func toWasteResponse(rec *entity.WasteRecord) *dto.WasteResponse {
	return &dto.WasteResponse{
		ID:        rec.ID,
		ItemID:    rec.ItemID,
		ItemName:  rec.ItemName,
		Quantity:  rec.Quantity,
		Unit:      string(rec.Unit),
		Reason:    rec.Reason,
		Date:      rec.Date,
		CreatedAt: rec.CreatedAt,
	}
}
