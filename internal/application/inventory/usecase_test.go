package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AgarwalVaibhav-20/dq-backend/internal/application/dto"
	"github.com/AgarwalVaibhav-20/dq-backend/internal/application/inventory"
	"github.com/AgarwalVaibhav-20/dq-backend/internal/domain"
	"github.com/AgarwalVaibhav-20/dq-backend/internal/domain/entity"
	"github.com/AgarwalVaibhav-20/dq-backend/internal/domain/repository"
	"github.com/AgarwalVaibhav-20/dq-backend/internal/domain/unit"
	"github.com/AgarwalVaibhav-20/dq-backend/pkg/logger"
)

const testRestaurant = "00000000-0000-0000-0000-0000000000aa"

// ──────────────────────────────────────────────────────────────────────────────
// In-memory fakes
// ──────────────────────────────────────────────────────────────────────────────

// store is shared by the fake repositories so a test can seed and inspect
// state directly. Reads hand out copies; only Update/Create write back, which
// mirrors how the real repositories behave under a transaction.
type store struct {
	items  map[string]*entity.InventoryItem
	wastes map[string]*entity.WasteRecord
}

func newStore() *store {
	return &store{
		items:  map[string]*entity.InventoryItem{},
		wastes: map[string]*entity.WasteRecord{},
	}
}

func copyItem(it *entity.InventoryItem) *entity.InventoryItem {
	cp := *it
	cp.Suppliers = make([]entity.SupplierBatch, len(it.Suppliers))
	copy(cp.Suppliers, it.Suppliers)
	return &cp
}

type fakeInventoryRepo struct{ s *store }

func (r *fakeInventoryRepo) Create(item *entity.InventoryItem) error {
	r.s.items[item.ID] = copyItem(item)
	return nil
}

func (r *fakeInventoryRepo) Update(item *entity.InventoryItem) error {
	if _, ok := r.s.items[item.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.items[item.ID] = copyItem(item)
	return nil
}

func (r *fakeInventoryRepo) GetByID(id, restaurantID string) (*entity.InventoryItem, error) {
	it, ok := r.s.items[id]
	if !ok || it.RestaurantID != restaurantID || it.IsDeleted {
		return nil, domain.ErrNotFound
	}
	return copyItem(it), nil
}

func (r *fakeInventoryRepo) GetForUpdate(id, restaurantID string) (*entity.InventoryItem, error) {
	return r.GetByID(id, restaurantID)
}

func (r *fakeInventoryRepo) GetByName(name, restaurantID string) (*entity.InventoryItem, error) {
	for _, it := range r.s.items {
		if it.RestaurantID == restaurantID && it.ItemName == name && !it.IsDeleted {
			return copyItem(it), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeInventoryRepo) List(restaurantID string, limit, offset int) ([]entity.InventoryItem, error) {
	var out []entity.InventoryItem
	for _, it := range r.s.items {
		if it.RestaurantID == restaurantID && !it.IsDeleted {
			out = append(out, *copyItem(it))
		}
	}
	return out, nil
}

func (r *fakeInventoryRepo) SoftDelete(id, restaurantID string, at time.Time) error {
	it, ok := r.s.items[id]
	if !ok || it.RestaurantID != restaurantID {
		return domain.ErrNotFound
	}
	it.IsDeleted = true
	it.DeletedAt = &at
	return nil
}

type fakeWasteRepo struct{ s *store }

func (r *fakeWasteRepo) Create(w *entity.WasteRecord) error {
	cp := *w
	r.s.wastes[w.ID] = &cp
	return nil
}

func (r *fakeWasteRepo) Update(w *entity.WasteRecord) error {
	if _, ok := r.s.wastes[w.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *w
	r.s.wastes[w.ID] = &cp
	return nil
}

func (r *fakeWasteRepo) GetByID(id, restaurantID string) (*entity.WasteRecord, error) {
	w, ok := r.s.wastes[id]
	if !ok || w.RestaurantID != restaurantID {
		return nil, domain.ErrNotFound
	}
	cp := *w
	return &cp, nil
}

func (r *fakeWasteRepo) List(restaurantID string, limit, offset int) ([]entity.WasteRecord, error) {
	var out []entity.WasteRecord
	for _, w := range r.s.wastes {
		if w.RestaurantID == restaurantID {
			out = append(out, *w)
		}
	}
	return out, nil
}

func (r *fakeWasteRepo) Delete(id, restaurantID string) error {
	w, ok := r.s.wastes[id]
	if !ok || w.RestaurantID != restaurantID {
		return domain.ErrNotFound
	}
	delete(r.s.wastes, id)
	return nil
}

// fakeTx runs the callback directly against the shared store. Rollback
// semantics come for free because reads return copies and failures return
// before Update writes back.
type fakeTx struct{ s *store }

func (t *fakeTx) Run(ctx context.Context, fn func(repository.InventoryRepository, repository.WasteRepository) error) error {
	return fn(&fakeInventoryRepo{s: t.s}, &fakeWasteRepo{s: t.s})
}

func newUseCase(s *store) *inventory.UseCase {
	log := logger.New(logger.Config{Env: "test", Level: "error"})
	return inventory.NewUseCase(&fakeTx{s: s}, log)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func seedItem(s *store, id, name, u string, batches ...entity.SupplierBatch) {
	item := &entity.InventoryItem{
		ID:           id,
		RestaurantID: testRestaurant,
		ItemName:     name,
		Unit:         unit.Unit(u),
		CreatedAt:    time.Now().UTC(),
	}
	for _, b := range batches {
		item.Suppliers = append(item.Suppliers, b)
		item.Stock.Quantity = item.Stock.Quantity.Add(b.Quantity)
		item.Stock.TotalQuantity = item.Stock.TotalQuantity.Add(b.Quantity)
	}
	s.items[id] = item
}

// ──────────────────────────────────────────────────────────────────────────────
// Restock
// ──────────────────────────────────────────────────────────────────────────────

func TestRestock_CreatesItemOnFirstPurchase(t *testing.T) {
	s := newStore()
	uc := newUseCase(s)

	out, err := uc.Restock(context.Background(), testRestaurant, dto.RestockRequest{
		ItemName:   "Tomato",
		Unit:       "kg",
		SupplierID: "sup-1",
		Quantity:   dec("5"),
		UnitPrice:  dec("2"),
	})
	require.NoError(t, err)

	assert.Equal(t, "tomato", out.ItemName, "stored name is normalized")
	assert.True(t, dec("5").Equal(out.TotalQuantity), "total should be 5, got %s", out.TotalQuantity)
	require.Len(t, s.items, 1)

	stored := s.items[out.ID]
	require.Len(t, stored.Suppliers, 1)
	assert.True(t, dec("10").Equal(stored.Stock.Total), "batch total should be qty*price")
}

func TestRestock_NameVariantsHitTheSameItem(t *testing.T) {
	s := newStore()
	uc := newUseCase(s)

	for _, name := range []string{"Tomato", " tomato ", "TOMATO"} {
		_, err := uc.Restock(context.Background(), testRestaurant, dto.RestockRequest{
			ItemName:   name,
			Unit:       "kg",
			SupplierID: "sup-1",
			Quantity:   dec("1"),
			UnitPrice:  dec("2"),
		})
		require.NoError(t, err, "restock %q", name)
	}

	require.Len(t, s.items, 1, "case and whitespace variants are one ledger item")
	for _, it := range s.items {
		assert.Equal(t, "tomato", it.ItemName)
		assert.True(t, dec("3").Equal(it.Stock.TotalQuantity))
		assert.Len(t, it.Suppliers, 3)
	}
}

func TestRestock_BlankNameRejected(t *testing.T) {
	s := newStore()
	uc := newUseCase(s)

	_, err := uc.Restock(context.Background(), testRestaurant, dto.RestockRequest{
		ItemName:   "   ",
		Unit:       "kg",
		SupplierID: "sup-1",
		Quantity:   dec("1"),
		UnitPrice:  dec("1"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, s.items)
}

func TestRestock_ZeroQuantityRejected(t *testing.T) {
	s := newStore()
	uc := newUseCase(s)

	_, err := uc.Restock(context.Background(), testRestaurant, dto.RestockRequest{
		ItemName:   "rice",
		Unit:       "kg",
		SupplierID: "sup-1",
		Quantity:   dec("0"),
		UnitPrice:  dec("2"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	assert.Empty(t, s.items)
}

func TestRestock_ZeroPriceIsLegal(t *testing.T) {
	s := newStore()
	uc := newUseCase(s)

	// Donated stock: quantity must be positive, price may be zero.
	out, err := uc.Restock(context.Background(), testRestaurant, dto.RestockRequest{
		ItemName:   "rice",
		Unit:       "kg",
		SupplierID: "sup-1",
		Quantity:   dec("3"),
		UnitPrice:  dec("0"),
	})
	require.NoError(t, err)
	assert.True(t, dec("3").Equal(out.TotalQuantity))
	assert.True(t, out.Total.IsZero())
}

func TestRestock_AppendsBatchConvertingUnit(t *testing.T) {
	s := newStore()
	seedItem(s, "item-1", "flour", "kg", entity.SupplierBatch{
		ID: "b1", Quantity: dec("5"), PurchasedAt: time.Now().Add(-time.Hour),
	})
	uc := newUseCase(s)

	// 500 gm against an item stocked in kg must land as 0.50 kg.
	out, err := uc.Restock(context.Background(), testRestaurant, dto.RestockRequest{
		ItemName:   "Flour",
		Unit:       "gm",
		SupplierID: "sup-2",
		Quantity:   dec("500"),
		UnitPrice:  dec("1"),
	})
	require.NoError(t, err)

	assert.True(t, dec("5.5").Equal(out.TotalQuantity), "expected 5.5 kg, got %s", out.TotalQuantity)
	stored := s.items["item-1"]
	require.Len(t, stored.Suppliers, 2)
	assert.True(t, dec("0.5").Equal(stored.Suppliers[1].Quantity))
	assert.Equal(t, "kg", string(stored.Unit), "stocked unit never changes on restock")
}

func TestRestock_IncompatibleUnitFamily(t *testing.T) {
	s := newStore()
	seedItem(s, "item-1", "milk", "litre", entity.SupplierBatch{ID: "b1", Quantity: dec("2")})
	uc := newUseCase(s)

	_, err := uc.Restock(context.Background(), testRestaurant, dto.RestockRequest{
		ItemName:   "Milk",
		Unit:       "kg",
		SupplierID: "sup-1",
		Quantity:   dec("1"),
		UnitPrice:  dec("1"),
	})
	assert.ErrorIs(t, err, domain.ErrIncompatibleUnit)
}

// ──────────────────────────────────────────────────────────────────────────────
// Deduct
// ──────────────────────────────────────────────────────────────────────────────

func TestDeduct_ConsumesOldestBatchesFirst(t *testing.T) {
	s := newStore()
	old := time.Now().Add(-48 * time.Hour)
	seedItem(s, "item-1", "Rice", "kg",
		entity.SupplierBatch{ID: "b-old", Quantity: dec("3"), PurchasedAt: old},
		entity.SupplierBatch{ID: "b-new", Quantity: dec("4"), PurchasedAt: time.Now()},
	)
	uc := newUseCase(s)

	out, err := uc.Deduct(context.Background(), testRestaurant, "item-1", dto.DeductRequest{
		Quantity: dec("5"), Unit: "kg",
	})
	require.NoError(t, err)

	assert.True(t, dec("2").Equal(out.TotalQuantity), "7 - 5 = 2, got %s", out.TotalQuantity)
	stored := s.items["item-1"]
	assert.True(t, stored.Suppliers[0].Quantity.IsZero(), "oldest batch drained first")
	assert.True(t, dec("2").Equal(stored.Suppliers[1].Quantity))
}

func TestDeduct_ConvertsRequestUnit(t *testing.T) {
	s := newStore()
	seedItem(s, "item-1", "Oil", "litre", entity.SupplierBatch{ID: "b1", Quantity: dec("2")})
	uc := newUseCase(s)

	out, err := uc.Deduct(context.Background(), testRestaurant, "item-1", dto.DeductRequest{
		Quantity: dec("500"), Unit: "ml",
	})
	require.NoError(t, err)
	assert.True(t, dec("1.5").Equal(out.TotalQuantity))
}

func TestDeduct_InsufficientStockLeavesItemUntouched(t *testing.T) {
	s := newStore()
	seedItem(s, "item-1", "Rice", "kg", entity.SupplierBatch{ID: "b1", Quantity: dec("3")})
	uc := newUseCase(s)

	_, err := uc.Deduct(context.Background(), testRestaurant, "item-1", dto.DeductRequest{
		Quantity: dec("10"), Unit: "kg",
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, dec("3").Equal(s.items["item-1"].Stock.TotalQuantity))
}

func TestDeduct_UnknownItem(t *testing.T) {
	uc := newUseCase(newStore())
	_, err := uc.Deduct(context.Background(), testRestaurant, "nope", dto.DeductRequest{
		Quantity: dec("1"), Unit: "kg",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Waste
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateWaste_WritesOffAggregateOnly(t *testing.T) {
	s := newStore()
	seedItem(s, "item-1", "Cheese", "kg", entity.SupplierBatch{ID: "b1", Quantity: dec("4")})
	uc := newUseCase(s)

	out, err := uc.CreateWaste(context.Background(), testRestaurant, dto.WasteRequest{
		ItemID: "item-1", Quantity: dec("1"), Unit: "kg", Reason: "spoiled",
	})
	require.NoError(t, err)
	assert.Equal(t, "Cheese", out.ItemName)

	stored := s.items["item-1"]
	assert.True(t, dec("3").Equal(stored.Stock.TotalQuantity))
	// Write-offs never rewrite the purchase history.
	assert.True(t, dec("4").Equal(stored.Suppliers[0].Quantity))
	assert.Len(t, s.wastes, 1)
}

func TestCreateWaste_MoreThanAvailable(t *testing.T) {
	s := newStore()
	seedItem(s, "item-1", "Cheese", "kg", entity.SupplierBatch{ID: "b1", Quantity: dec("1")})
	uc := newUseCase(s)

	_, err := uc.CreateWaste(context.Background(), testRestaurant, dto.WasteRequest{
		ItemID: "item-1", Quantity: dec("2"), Unit: "kg",
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Empty(t, s.wastes)
}

func TestUpdateWaste_QuantityDeltaSameItem(t *testing.T) {
	s := newStore()
	seedItem(s, "item-1", "Butter", "kg", entity.SupplierBatch{ID: "b1", Quantity: dec("10")})
	uc := newUseCase(s)

	created, err := uc.CreateWaste(context.Background(), testRestaurant, dto.WasteRequest{
		ItemID: "item-1", Quantity: dec("2"), Unit: "kg",
	})
	require.NoError(t, err)
	require.True(t, dec("8").Equal(s.items["item-1"].Stock.TotalQuantity))

	// Raising 2 kg to 3 kg should only move the 1 kg difference.
	_, err = uc.UpdateWaste(context.Background(), testRestaurant, created.ID, dto.WasteRequest{
		ItemID: "item-1", Quantity: dec("3"), Unit: "kg",
	})
	require.NoError(t, err)
	assert.True(t, dec("7").Equal(s.items["item-1"].Stock.TotalQuantity))

	// Lowering back to 1 kg restores the difference.
	_, err = uc.UpdateWaste(context.Background(), testRestaurant, created.ID, dto.WasteRequest{
		ItemID: "item-1", Quantity: dec("1"), Unit: "kg",
	})
	require.NoError(t, err)
	assert.True(t, dec("9").Equal(s.items["item-1"].Stock.TotalQuantity))
}

func TestUpdateWaste_ReattributesAcrossItems(t *testing.T) {
	s := newStore()
	seedItem(s, "item-1", "Butter", "kg", entity.SupplierBatch{ID: "b1", Quantity: dec("10")})
	seedItem(s, "item-2", "Cream", "litre", entity.SupplierBatch{ID: "b2", Quantity: dec("5")})
	uc := newUseCase(s)

	created, err := uc.CreateWaste(context.Background(), testRestaurant, dto.WasteRequest{
		ItemID: "item-1", Quantity: dec("2"), Unit: "kg",
	})
	require.NoError(t, err)

	_, err = uc.UpdateWaste(context.Background(), testRestaurant, created.ID, dto.WasteRequest{
		ItemID: "item-2", Quantity: dec("1"), Unit: "litre",
	})
	require.NoError(t, err)

	assert.True(t, dec("10").Equal(s.items["item-1"].Stock.TotalQuantity), "old item restored")
	assert.True(t, dec("4").Equal(s.items["item-2"].Stock.TotalQuantity), "new item written off")
	assert.Equal(t, "item-2", s.wastes[created.ID].ItemID)
	assert.Equal(t, "Cream", s.wastes[created.ID].ItemName)
}

func TestDeleteWaste_RestoresStock(t *testing.T) {
	s := newStore()
	seedItem(s, "item-1", "Butter", "kg", entity.SupplierBatch{ID: "b1", Quantity: dec("10")})
	uc := newUseCase(s)

	created, err := uc.CreateWaste(context.Background(), testRestaurant, dto.WasteRequest{
		ItemID: "item-1", Quantity: dec("2"), Unit: "kg",
	})
	require.NoError(t, err)

	require.NoError(t, uc.DeleteWaste(context.Background(), testRestaurant, created.ID))
	assert.True(t, dec("10").Equal(s.items["item-1"].Stock.TotalQuantity))
	assert.Empty(t, s.wastes)
}

func TestDeleteWaste_ItemGoneStillDeletesRecord(t *testing.T) {
	s := newStore()
	seedItem(s, "item-1", "Butter", "kg", entity.SupplierBatch{ID: "b1", Quantity: dec("10")})
	uc := newUseCase(s)

	created, err := uc.CreateWaste(context.Background(), testRestaurant, dto.WasteRequest{
		ItemID: "item-1", Quantity: dec("2"), Unit: "kg",
	})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(context.Background(), testRestaurant, "item-1"))
	require.NoError(t, uc.DeleteWaste(context.Background(), testRestaurant, created.ID))
	assert.Empty(t, s.wastes)
}
