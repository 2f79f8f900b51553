package billing

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AgarwalVaibhav-20/dq-backend/internal/application/dto"
	"github.com/AgarwalVaibhav-20/dq-backend/internal/domain"
	"github.com/AgarwalVaibhav-20/dq-backend/internal/domain/entity"
	"github.com/AgarwalVaibhav-20/dq-backend/internal/domain/reconcile"
	"github.com/AgarwalVaibhav-20/dq-backend/internal/domain/repository"
	"github.com/AgarwalVaibhav-20/dq-backend/internal/domain/unit"
	"github.com/AgarwalVaibhav-20/dq-backend/pkg/logger"
	"github.com/shopspring/decimal"
)

// UseCase settles pending orders into billing transactions.
type UseCase struct {
	tx       TxRunner
	receipts ReceiptGenerator
	log      *logger.Logger
}

func NewUseCase(tx TxRunner, receipts ReceiptGenerator, log *logger.Logger) *UseCase {
	return &UseCase{tx: tx, receipts: receipts, log: log}
}

// Settle closes a pending order: amounts are recomputed from the merged
// lines, a transaction record is written, the order flips to completed/paid
// and the table is freed. One transaction per order; settling twice conflicts.
func (uc *UseCase) Settle(ctx context.Context, restaurantID, userID string, req dto.SettleOrderRequest) (*dto.TransactionResponse, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}

	var out *dto.TransactionResponse
	err := uc.tx.RunBilling(ctx, func(
		orderRepo repository.OrderRepository,
		tableRepo repository.TableRepository,
		txnRepo repository.TransactionRepository,
	) error {
		order, err := orderRepo.GetByID(req.OrderID, restaurantID)
		if err != nil {
			return err
		}
		if order.PaymentStatus == entity.PaymentStatusPaid || order.Status != entity.OrderStatusPending {
			return domain.ErrConflict
		}

		subtotal, tax, total := reconcile.Totals(order.Items, order.Discount, order.RoundOff)
		discountAmount := unit.Round(subtotal.Mul(order.Discount).Div(decimal.NewFromInt(100)))

		now := time.Now().UTC()
		txn := &entity.Transaction{
			ID:             uuid.NewString(),
			TransactionID:  newTransactionNumber(),
			RestaurantID:   restaurantID,
			UserID:         userID,
			CustomerID:     order.CustomerID,
			OrderID:        order.ID,
			TableNumber:    order.TableNumber,
			Status:         entity.PaymentStatusPaid,
			Items:          order.Items,
			Subtotal:       subtotal,
			Tax:            order.Tax,
			TaxAmount:      tax,
			Discount:       order.Discount,
			DiscountAmount: discountAmount,
			RoundOff:       order.RoundOff,
			Total:          total,
			Type:           req.Type,
			Notes:          req.Notes,
			CreatedAt:      now,
		}
		if err := txnRepo.Create(txn); err != nil {
			return err
		}

		order.Status = entity.OrderStatusCompleted
		order.PaymentStatus = entity.PaymentStatusPaid
		order.Subtotal = subtotal
		order.Tax = tax
		order.TotalAmount = total
		order.UpdatedAt = now
		if err := orderRepo.Update(order); err != nil {
			return err
		}

		table, err := tableRepo.GetOrCreateForUpdate(restaurantID, order.TableNumber)
		if err != nil {
			return err
		}
		if table.CurrentOrderID == order.ID {
			if err := tableRepo.ClearCurrentOrder(table.ID); err != nil {
				return err
			}
		}

		out = toTransactionResponse(txn)
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("restaurant_id", restaurantID).
		Str("order_id", req.OrderID).
		Str("transaction", out.TransactionID).
		Msg("order settled")
	return out, nil
}

// Receipt renders the stored transaction as a PDF.
func (uc *UseCase) Receipt(ctx context.Context, restaurantID, txnID string) ([]byte, error) {
	var txn *entity.Transaction
	err := uc.tx.RunBilling(ctx, func(
		_ repository.OrderRepository,
		_ repository.TableRepository,
		txnRepo repository.TransactionRepository,
	) error {
		t, err := txnRepo.GetByID(txnID, restaurantID)
		if err != nil {
			return err
		}
		txn = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uc.receipts.Receipt(txn)
}

// Get returns one transaction.
func (uc *UseCase) Get(ctx context.Context, restaurantID, txnID string) (*dto.TransactionResponse, error) {
	var out *dto.TransactionResponse
	err := uc.tx.RunBilling(ctx, func(
		_ repository.OrderRepository,
		_ repository.TableRepository,
		txnRepo repository.TransactionRepository,
	) error {
		t, err := txnRepo.GetByID(txnID, restaurantID)
		if err != nil {
			return err
		}
		out = toTransactionResponse(t)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// List returns the restaurant's transactions, newest first.
func (uc *UseCase) List(ctx context.Context, restaurantID string, page dto.PageRequest) ([]dto.TransactionResponse, error) {
	var out []dto.TransactionResponse
	err := uc.tx.RunBilling(ctx, func(
		_ repository.OrderRepository,
		_ repository.TableRepository,
		txnRepo repository.TransactionRepository,
	) error {
		ts, err := txnRepo.List(restaurantID, page.Limit, page.Offset)
		if err != nil {
			return err
		}
		out = make([]dto.TransactionResponse, 0, len(ts))
		for i := range ts {
			out = append(out, *toTransactionResponse(&ts[i]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// newTransactionNumber builds the short human-facing number printed on
// receipts, e.g. TXN-6F2A91.
func newTransactionNumber() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "TXN-" + strings.ToUpper(raw[:8])
}

func toTransactionResponse(t *entity.Transaction) *dto.TransactionResponse {
	items := make([]dto.OrderLineDTO, 0, len(t.Items))
	for _, l := range t.Items {
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
	return &dto.TransactionResponse{
		ID:             t.ID,
		TransactionID:  t.TransactionID,
		OrderID:        t.OrderID,
		CustomerID:     t.CustomerID,
		TableNumber:    t.TableNumber,
		Status:         t.Status,
		Items:          items,
		Subtotal:       t.Subtotal,
		TaxAmount:      t.TaxAmount,
		Discount:       t.Discount,
		DiscountAmount: t.DiscountAmount,
		RoundOff:       t.RoundOff,
		Total:          t.Total,
		Type:           t.Type,
		Notes:          t.Notes,
		CreatedAt:      t.CreatedAt,
	}
}
