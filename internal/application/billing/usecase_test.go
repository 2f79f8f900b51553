package billing_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AgarwalVaibhav-20/dq-backend/internal/application/billing"
	"github.com/AgarwalVaibhav-20/dq-backend/internal/application/dto"
	"github.com/AgarwalVaibhav-20/dq-backend/internal/domain"
	"github.com/AgarwalVaibhav-20/dq-backend/internal/domain/entity"
	"github.com/AgarwalVaibhav-20/dq-backend/internal/domain/repository"
	"github.com/AgarwalVaibhav-20/dq-backend/pkg/logger"
)

const (
	testRestaurant = "00000000-0000-0000-0000-0000000000aa"
	testUser       = "00000000-0000-0000-0000-0000000000bb"
)

type store struct {
	orders map[string]*entity.Order
	tables map[string]*entity.Table
	txns   map[string]*entity.Transaction
}

func newStore() *store {
	return &store{
		orders: map[string]*entity.Order{},
		tables: map[string]*entity.Table{},
		txns:   map[string]*entity.Transaction{},
	}
}

type fakeOrderRepo struct{ s *store }

func (r *fakeOrderRepo) Create(o *entity.Order) error {
	cp := *o
	r.s.orders[o.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) Update(o *entity.Order) error {
	if _, ok := r.s.orders[o.ID]; !ok {
		return domain.ErrNotFound
	}
	return r.Create(o)
}

func (r *fakeOrderRepo) GetByID(id, restaurantID string) (*entity.Order, error) {
	o, ok := r.s.orders[id]
	if !ok || o.RestaurantID != restaurantID {
		return nil, domain.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (r *fakeOrderRepo) List(restaurantID string, limit, offset int) ([]entity.Order, error) {
	return nil, nil
}

type fakeTableRepo struct{ s *store }

func (r *fakeTableRepo) GetOrCreateForUpdate(restaurantID, tableNumber string) (*entity.Table, error) {
	if tb, ok := r.s.tables[tableNumber]; ok {
		cp := *tb
		return &cp, nil
	}
	tb := &entity.Table{ID: "table-" + tableNumber, RestaurantID: restaurantID, TableNumber: tableNumber}
	r.s.tables[tableNumber] = tb
	cp := *tb
	return &cp, nil
}

func (r *fakeTableRepo) SetCurrentOrder(tableID, orderID string) error {
	for _, tb := range r.s.tables {
		if tb.ID == tableID {
			tb.CurrentOrderID = orderID
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeTableRepo) ClearCurrentOrder(tableID string) error {
	return r.SetCurrentOrder(tableID, "")
}

type fakeTxnRepo struct{ s *store }

func (r *fakeTxnRepo) Create(t *entity.Transaction) error {
	if _, ok := r.s.txns[t.ID]; ok {
		return domain.ErrDuplicate
	}
	cp := *t
	r.s.txns[t.ID] = &cp
	return nil
}

func (r *fakeTxnRepo) GetByID(id, restaurantID string) (*entity.Transaction, error) {
	t, ok := r.s.txns[id]
	if !ok || t.RestaurantID != restaurantID {
		return nil, domain.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTxnRepo) List(restaurantID string, limit, offset int) ([]entity.Transaction, error) {
	var out []entity.Transaction
	for _, t := range r.s.txns {
		if t.RestaurantID == restaurantID {
			out = append(out, *t)
		}
	}
	return out, nil
}

type fakeTx struct{ s *store }

func (t *fakeTx) RunBilling(ctx context.Context, fn func(
	repository.OrderRepository,
	repository.TableRepository,
	repository.TransactionRepository,
) error) error {
	return fn(&fakeOrderRepo{s: t.s}, &fakeTableRepo{s: t.s}, &fakeTxnRepo{s: t.s})
}

type fakeReceipts struct{ calls int }

func (g *fakeReceipts) Receipt(txn *entity.Transaction) ([]byte, error) {
	g.calls++
	return []byte("%PDF " + txn.TransactionID), nil
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// seedOrder puts a pending two-burger order on table T1 with 10% discount.
func seedOrder(s *store) *entity.Order {
	o := &entity.Order{
		ID:            "order-1",
		RestaurantID:  testRestaurant,
		TableNumber:   "T1",
		Status:        entity.OrderStatusPending,
		PaymentStatus: entity.PaymentStatusPending,
		Discount:      dec("10"),
		Items: []entity.OrderLine{{
			ItemID:    "menu-burger",
			ItemName:  "Burger",
			Price:     dec("12"),
			Quantity:  dec("2"),
			Subtotal:  dec("24"),
			TaxAmount: dec("1"),
		}},
	}
	s.orders[o.ID] = o
	s.tables["T1"] = &entity.Table{ID: "table-T1", RestaurantID: testRestaurant, TableNumber: "T1", CurrentOrderID: o.ID}
	return o
}

func newUseCase(s *store) (*billing.UseCase, *fakeReceipts) {
	receipts := &fakeReceipts{}
	log := logger.New(logger.Config{Env: "test", Level: "error"})
	return billing.NewUseCase(&fakeTx{s: s}, receipts, log), receipts
}

func TestSettle_ClosesOrderAndFreesTable(t *testing.T) {
	s := newStore()
	seedOrder(s)
	uc, _ := newUseCase(s)

	out, err := uc.Settle(context.Background(), testRestaurant, testUser, dto.SettleOrderRequest{
		OrderID: "order-1",
		Type:    "Cash",
	})
	require.NoError(t, err)

	// Amounts come from the lines, not from whatever the order row said:
	// 24 subtotal + 1 tax - 2.40 discount = 22.60.
	assert.True(t, dec("24").Equal(out.Subtotal))
	assert.True(t, dec("1").Equal(out.TaxAmount))
	assert.True(t, dec("2.4").Equal(out.DiscountAmount))
	assert.True(t, dec("22.6").Equal(out.Total), "expected 22.60, got %s", out.Total)
	assert.Regexp(t, `^TXN-[0-9A-F]{8}$`, out.TransactionID)

	stored := s.orders["order-1"]
	assert.Equal(t, entity.OrderStatusCompleted, stored.Status)
	assert.Equal(t, entity.PaymentStatusPaid, stored.PaymentStatus)
	assert.Empty(t, s.tables["T1"].CurrentOrderID, "table is free again")
}

func TestSettle_TwiceConflicts(t *testing.T) {
	s := newStore()
	seedOrder(s)
	uc, _ := newUseCase(s)

	_, err := uc.Settle(context.Background(), testRestaurant, testUser, dto.SettleOrderRequest{
		OrderID: "order-1", Type: "Cash",
	})
	require.NoError(t, err)

	_, err = uc.Settle(context.Background(), testRestaurant, testUser, dto.SettleOrderRequest{
		OrderID: "order-1", Type: "Cash",
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Len(t, s.txns, 1, "one payment per order")
}

func TestSettle_UnknownOrder(t *testing.T) {
	uc, _ := newUseCase(newStore())
	_, err := uc.Settle(context.Background(), testRestaurant, testUser, dto.SettleOrderRequest{
		OrderID: "ghost", Type: "Cash",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSettle_TableReassignedMeanwhileStaysAssigned(t *testing.T) {
	s := newStore()
	seedOrder(s)
	// Another order already took over the table.
	s.tables["T1"].CurrentOrderID = "order-2"
	uc, _ := newUseCase(s)

	_, err := uc.Settle(context.Background(), testRestaurant, testUser, dto.SettleOrderRequest{
		OrderID: "order-1", Type: "Cash",
	})
	require.NoError(t, err)
	assert.Equal(t, "order-2", s.tables["T1"].CurrentOrderID, "someone else's reference is not cleared")
}

func TestReceipt_RendersStoredTransaction(t *testing.T) {
	s := newStore()
	seedOrder(s)
	uc, receipts := newUseCase(s)

	out, err := uc.Settle(context.Background(), testRestaurant, testUser, dto.SettleOrderRequest{
		OrderID: "order-1", Type: "Card",
	})
	require.NoError(t, err)

	pdf, err := uc.Receipt(context.Background(), testRestaurant, out.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, receipts.calls)
	assert.Contains(t, string(pdf), out.TransactionID)
}

func TestReceipt_UnknownTransaction(t *testing.T) {
	uc, receipts := newUseCase(newStore())
	_, err := uc.Receipt(context.Background(), testRestaurant, "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Zero(t, receipts.calls)
}
