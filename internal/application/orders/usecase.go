package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AgarwalVaibhav-20/dq-backend/internal/application/dto"
	"github.com/AgarwalVaibhav-20/dq-backend/internal/domain"
	"github.com/AgarwalVaibhav-20/dq-backend/internal/domain/entity"
	"github.com/AgarwalVaibhav-20/dq-backend/internal/domain/ledger"
	"github.com/AgarwalVaibhav-20/dq-backend/internal/domain/reconcile"
	"github.com/AgarwalVaibhav-20/dq-backend/internal/domain/repository"
	"github.com/AgarwalVaibhav-20/dq-backend/internal/domain/unit"
	"github.com/AgarwalVaibhav-20/dq-backend/pkg/config"
	"github.com/AgarwalVaibhav-20/dq-backend/pkg/logger"
)

// UseCase handles cart submission and the open-order lifecycle. A submission
// for a table with an open order merges into it instead of creating a second
// order; only quantity increases hit the stock ledger, so resubmitting the
// same cart is a no-op for inventory.
type UseCase struct {
	tx        TxRunner
	locker    TableLocker
	customers repository.CustomerRepository
	cfg       config.InventoryConfig
	log       *logger.Logger
}

func NewUseCase(tx TxRunner, locker TableLocker, customers repository.CustomerRepository, cfg config.InventoryConfig, log *logger.Logger) *UseCase {
	return &UseCase{tx: tx, locker: locker, customers: customers, cfg: cfg, log: log}
}

// Submit merges the cart into the table's open order, creating one if the
// table is free. The whole operation runs under a per-table lock plus a row
// lock on the table, so two waiters submitting for the same table serialize.
func (uc *UseCase) Submit(ctx context.Context, restaurantID, userID string, req dto.SubmitOrderRequest) (*dto.OrderResponse, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}

	cart := make([]entity.OrderLine, 0, len(req.Items))
	for _, l := range req.Items {
		cart = append(cart, entity.OrderLine{
			ItemID:        l.ItemID,
			ItemName:      l.ItemName,
			SubcategoryID: l.SubcategoryID,
			SizeID:        l.SizeID,
			Size:          l.Size,
			Price:         l.Price,
			Quantity:      l.Quantity,
			TaxPercentage: l.TaxPercentage,
			TaxAmount:     l.TaxAmount,
		})
	}

	release, err := uc.locker.Lock(ctx, lockKey(restaurantID, req.TableNumber))
	if err != nil {
		return nil, err
	}
	defer release()

	var (
		out    *dto.OrderResponse
		points pointsByCustomer
	)
	err = uc.tx.RunOrder(ctx, func(
		orderRepo repository.OrderRepository,
		tableRepo repository.TableRepository,
		invRepo repository.InventoryRepository,
		recipeRepo repository.RecipeRepository,
		menuRepo repository.MenuRepository,
	) error {
		table, err := tableRepo.GetOrCreateForUpdate(restaurantID, req.TableNumber)
		if err != nil {
			return err
		}

		var order *entity.Order
		merged := false
		if table.CurrentOrderID != "" {
			order, err = orderRepo.GetByID(table.CurrentOrderID, restaurantID)
			if err != nil && !errors.Is(err, domain.ErrNotFound) {
				return err
			}
			// A stale reference or an already-closed order means the table
			// is effectively free.
			if order != nil && order.Status == entity.OrderStatusPending {
				merged = true
			} else {
				order = nil
			}
		}

		now := time.Now().UTC()
		if order == nil {
			order = &entity.Order{
				ID:            uuid.NewString(),
				RestaurantID:  restaurantID,
				UserID:        userID,
				CustomerID:    req.CustomerID,
				CustomerName:  req.CustomerName,
				TableNumber:   req.TableNumber,
				OrderType:     req.OrderType,
				Status:        entity.OrderStatusPending,
				PaymentStatus: entity.PaymentStatusPending,
				CreatedAt:     now,
			}
		}

		res := reconcile.Merge(order.Items, cart)
		order.Items = res.Lines
		order.Discount = req.Discount
		order.RoundOff = req.RoundOff
		order.Subtotal, order.Tax, order.TotalAmount = reconcile.Totals(order.Items, order.Discount, order.RoundOff)
		if req.CustomerID != "" {
			order.CustomerID = req.CustomerID
		}
		if req.CustomerName != "" {
			order.CustomerName = req.CustomerName
		}
		if req.KOTGenerated != nil {
			order.KOTGenerated = *req.KOTGenerated
		}
		order.UpdatedAt = now

		warnings := res.Warnings
		invWarnings, pts, err := uc.applyDeltas(invRepo, recipeRepo, menuRepo, restaurantID, res)
		if err != nil {
			return err
		}
		warnings = append(warnings, invWarnings...)
		points = pts

		if merged {
			if err := orderRepo.Update(order); err != nil {
				return err
			}
		} else {
			if err := orderRepo.Create(order); err != nil {
				return err
			}
			if err := tableRepo.SetCurrentOrder(table.ID, order.ID); err != nil {
				return err
			}
		}

		out = toOrderResponse(order, merged, warnings)
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Points are additive per customer, so they are credited after the
	// transaction without holding the table lock any longer than needed.
	uc.creditPoints(out, points)

	uc.log.Info().
		Str("restaurant_id", restaurantID).
		Str("table", req.TableNumber).
		Str("order_id", out.ID).
		Bool("merged", out.Merged).
		Int("warnings", len(out.Warnings)).
		Msg("cart submitted")
	return out, nil
}

// applyDeltas feeds the merge deltas to the stock ledger through each line's
// recipe and tallies reward points. Deduction failures do not abort the order
// unless strict mode is on; they come back as warnings instead.
func (uc *UseCase) applyDeltas(
	invRepo repository.InventoryRepository,
	recipeRepo repository.RecipeRepository,
	menuRepo repository.MenuRepository,
	restaurantID string,
	res reconcile.Result,
) ([]string, pointsByCustomer, error) {
	var warnings []string
	points := pointsByCustomer{}

	for _, d := range res.Deductions {
		recipe, err := recipeRepo.GetByMenuItem(d.Line.ItemID, restaurantID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				warnings = append(warnings, fmt.Sprintf("no recipe for %q, inventory not adjusted", d.Line.ItemName))
				continue
			}
			return nil, pointsByCustomer{}, err
		}
		for _, ing := range recipe.Ingredients {
			need := unit.Mul(ing.Quantity, d.Quantity)
			item, err := invRepo.GetForUpdate(ing.InventoryID, restaurantID)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) && !uc.cfg.StrictDeduction {
					warnings = append(warnings, fmt.Sprintf("ingredient %s for %q not found in inventory", ing.InventoryID, d.Line.ItemName))
					continue
				}
				return nil, pointsByCustomer{}, err
			}
			if _, err := ledger.Deduct(item, need, ing.Unit); err != nil {
				if uc.cfg.StrictDeduction {
					return nil, pointsByCustomer{}, err
				}
				warnings = append(warnings, fmt.Sprintf("could not deduct %s %s of %q: %v", need, ing.Unit, item.ItemName, err))
				continue
			}
			item.UpdatedAt = time.Now().UTC()
			if err := invRepo.Update(item); err != nil {
				return nil, pointsByCustomer{}, err
			}
		}

		menu, err := menuRepo.GetByID(d.Line.ItemID, restaurantID)
		if err != nil {
			// The menu row may be gone (or soft-deleted) while its recipe
			// survives; only this line's points are lost, not the order.
			if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrItemNotFound) {
				warnings = append(warnings, fmt.Sprintf("menu item %q not found, reward points not credited", d.Line.ItemName))
				continue
			}
			return nil, pointsByCustomer{}, err
		}
		if menu.RewardPoints.IsPositive() {
			points.add(unit.Mul(menu.RewardPoints, d.Quantity))
		}
	}

	if uc.cfg.RestoreOnDecrease {
		for _, d := range res.Restores {
			recipe, err := recipeRepo.GetByMenuItem(d.Line.ItemID, restaurantID)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					continue
				}
				return nil, pointsByCustomer{}, err
			}
			for _, ing := range recipe.Ingredients {
				item, err := invRepo.GetForUpdate(ing.InventoryID, restaurantID)
				if err != nil {
					if errors.Is(err, domain.ErrNotFound) {
						continue
					}
					return nil, pointsByCustomer{}, err
				}
				if err := ledger.Restore(item, unit.Mul(ing.Quantity, d.Quantity), ing.Unit); err != nil {
					warnings = append(warnings, fmt.Sprintf("could not restore stock of %q: %v", item.ItemName, err))
					continue
				}
				item.UpdatedAt = time.Now().UTC()
				if err := invRepo.Update(item); err != nil {
					return nil, pointsByCustomer{}, err
				}
			}
		}
	}

	return warnings, points, nil
}

// Get returns one order.
func (uc *UseCase) Get(ctx context.Context, restaurantID, orderID string) (*dto.OrderResponse, error) {
	var out *dto.OrderResponse
	err := uc.tx.RunOrder(ctx, func(
		orderRepo repository.OrderRepository,
		_ repository.TableRepository,
		_ repository.InventoryRepository,
		_ repository.RecipeRepository,
		_ repository.MenuRepository,
	) error {
		o, err := orderRepo.GetByID(orderID, restaurantID)
		if err != nil {
			return err
		}
		out = toOrderResponse(o, false, nil)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// List returns the restaurant's orders, newest first.
func (uc *UseCase) List(ctx context.Context, restaurantID string, page dto.PageRequest) ([]dto.OrderResponse, error) {
	var out []dto.OrderResponse
	err := uc.tx.RunOrder(ctx, func(
		orderRepo repository.OrderRepository,
		_ repository.TableRepository,
		_ repository.InventoryRepository,
		_ repository.RecipeRepository,
		_ repository.MenuRepository,
	) error {
		os, err := orderRepo.List(restaurantID, page.Limit, page.Offset)
		if err != nil {
			return err
		}
		out = make([]dto.OrderResponse, 0, len(os))
		for i := range os {
			out = append(out, *toOrderResponse(&os[i], false, nil))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// pointsByCustomer accumulates reward points for the submitting customer.
// A single submission credits one customer, so this is just a running sum.
type pointsByCustomer struct {
	total decimal.Decimal
}

func (p *pointsByCustomer) add(points decimal.Decimal) {
	p.total = unit.Add(p.total, points)
}

func (uc *UseCase) creditPoints(o *dto.OrderResponse, points pointsByCustomer) {
	if o == nil || o.CustomerID == "" || !points.total.IsPositive() {
		return
	}
	if err := uc.customers.IncrementPoints(o.CustomerID, points.total); err != nil {
		uc.log.Warn().
			Err(err).
			Str("customer_id", o.CustomerID).
			Str("points", points.total.String()).
			Msg("reward points not credited")
	}
}

func lockKey(restaurantID, tableNumber string) string {
	return fmt.Sprintf("order:table:%s:%s", restaurantID, tableNumber)
}

func toOrderResponse(o *entity.Order, merged bool, warnings []string) *dto.OrderResponse {
	items := make([]dto.OrderLineDTO, 0, len(o.Items))
	for _, l := range o.Items {
		items = append(items, dto.OrderLineDTO{
			ItemID:        l.ItemID,
			ItemName:      l.ItemName,
			SubcategoryID: l.SubcategoryID,
			SizeID:        l.SizeID,
			Size:          l.Size,
			Price:         l.Price,
			Quantity:      l.Quantity,
			Subtotal:      l.Subtotal,
			TaxPercentage: l.TaxPercentage,
			TaxAmount:     l.TaxAmount,
		})
	}
	return &dto.OrderResponse{
		ID:            o.ID,
		CustomerID:    o.CustomerID,
		CustomerName:  o.CustomerName,
		TableNumber:   o.TableNumber,
		OrderType:     o.OrderType,
		Status:        o.Status,
		PaymentStatus: o.PaymentStatus,
		Items:         items,
		Subtotal:      o.Subtotal,
		Tax:           o.Tax,
		Discount:      o.Discount,
		RoundOff:      o.RoundOff,
		TotalAmount:   o.TotalAmount,
		KOTGenerated:  o.KOTGenerated,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
		Merged:        merged,
		Warnings:      warnings,
	}
}
