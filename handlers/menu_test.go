package handlers

import (
	"net/http"
	"testing"

	"kiosk-ordering-api/models"
	"kiosk-ordering-api/realtime"

	"github.com/google/uuid"
)

func TestListMenuHidesUnavailableAndFiltersByCategory(t *testing.T) {
	r := setupTest(t)
	seedMenuItem(t, models.MenuItem{
		ID: uuid.NewString(), Name: "Spring Rolls", Category: models.CategoryStarters, Price: 120,
		IsAvailable: true, Stock: 50, MinStock: 10,
	})
	seedMenuItem(t, models.MenuItem{
		ID: uuid.NewString(), Name: "Cold Coffee", Category: models.CategoryDrinks, Price: 90,
		IsAvailable: true, Stock: 50, MinStock: 10,
	})
	hidden := seedMenuItem(t, models.MenuItem{
		ID: uuid.NewString(), Name: "Seasonal Special", Category: models.CategoryStarters, Price: 150,
		IsAvailable: false, Stock: 50, MinStock: 10,
	})

	items := decode[[]models.MenuItem](t, doJSON(t, r, http.MethodGet, "/api/menu", nil, ""))
	if len(items) != 2 {
		t.Fatalf("listed %d items, want 2 available", len(items))
	}
	for _, item := range items {
		if !item.IsAvailable {
			t.Errorf("unavailable item %q listed", item.Name)
		}
	}

	items = decode[[]models.MenuItem](t, doJSON(t, r, http.MethodGet, "/api/menu?category=Drinks", nil, ""))
	if len(items) != 1 || items[0].Name != "Cold Coffee" {
		t.Errorf("category filter returned %v", items)
	}

	// unavailable items stay reachable by id for admin and order views
	w := doJSON(t, r, http.MethodGet, "/api/menu/"+hidden.ID, nil, "")
	if w.Code != http.StatusOK {
		t.Errorf("get hidden item by id: %d, want 200", w.Code)
	}
}

func TestGetMenuItemNotFound(t *testing.T) {
	r := setupTest(t)
	if w := doJSON(t, r, http.MethodGet, "/api/menu/"+uuid.NewString(), nil, ""); w.Code != http.StatusNotFound {
		t.Errorf("unknown item returned %d, want 404", w.Code)
	}
}

func TestCreateMenuItemDefaultsAndValidation(t *testing.T) {
	r := setupTest(t)
	token := adminToken(t)

	w := doJSON(t, r, http.MethodPost, "/api/menu", map[string]any{
		"name": "Masala Dosa", "category": "Main Course", "price": 110,
	}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("create item: %d %s", w.Code, w.Body.String())
	}
	item := decode[models.MenuItem](t, w)
	if item.Stock != models.DefaultStock || item.MinStock != models.DefaultMinStock {
		t.Errorf("stock defaults = %d/%d, want %d/%d", item.Stock, item.MinStock, models.DefaultStock, models.DefaultMinStock)
	}
	if !item.IsAvailable || !item.IsVeg {
		t.Errorf("availability/veg defaults wrong: %+v", item)
	}

	badBodies := []map[string]any{
		{"name": "X", "category": "Sides", "price": 10},                  // unknown category
		{"name": "X", "category": "Drinks", "price": -5},                 // negative price
		{"name": "X", "category": "Drinks", "price": 10, "stock": -1},    // negative stock
		{"name": "X", "category": "Drinks", "price": 10, "minStock": -1}, // negative minStock
		{"category": "Drinks", "price": 10},                              // missing name
	}
	for _, body := range badBodies {
		if w := doJSON(t, r, http.MethodPost, "/api/menu", body, token); w.Code != http.StatusBadRequest {
			t.Errorf("body %v accepted with %d, want 400", body, w.Code)
		}
	}
}

func TestMenuMutationsRequireAdmin(t *testing.T) {
	r := setupTest(t)

	if w := doJSON(t, r, http.MethodPost, "/api/menu", map[string]any{
		"name": "X", "category": "Drinks", "price": 10,
	}, ""); w.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated create returned %d, want 401", w.Code)
	}
}

func TestUpdateMenuItemPartialAndInventoryEvent(t *testing.T) {
	r := setupTest(t)
	token := adminToken(t)
	item := seedMenuItem(t, models.MenuItem{
		ID: uuid.NewString(), Name: "Fries", Category: models.CategoryStarters, Price: 70,
		IsAvailable: true, Stock: 40, MinStock: 10,
	})

	admin := Notifier.NewClient()
	Notifier.Join(realtime.RoomAdmin, admin)

	// non-stock update: no inventory event
	w := doJSON(t, r, http.MethodPut, "/api/menu/"+item.ID, map[string]any{"price": 80}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("update price: %d %s", w.Code, w.Body.String())
	}
	got := decode[models.MenuItem](t, w)
	if got.Price != 80 || got.Name != "Fries" {
		t.Errorf("partial update clobbered fields: %+v", got)
	}
	select {
	case b := <-admin.Receive():
		t.Fatalf("unexpected event for price change: %s", b)
	default:
	}

	// stock update: inventory-updated reaches the admin room
	w = doJSON(t, r, http.MethodPut, "/api/menu/"+item.ID, map[string]any{"stock": 5}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("update stock: %d", w.Code)
	}
	ev := receiveEvent(t, admin)
	if ev.Event != realtime.EventInventoryUpdated {
		t.Fatalf("got event %q, want inventory-updated", ev.Event)
	}

	if w := doJSON(t, r, http.MethodPut, "/api/menu/"+item.ID, map[string]any{"category": "Snacks"}, token); w.Code != http.StatusBadRequest {
		t.Errorf("invalid category update returned %d, want 400", w.Code)
	}
	if w := doJSON(t, r, http.MethodPut, "/api/menu/"+uuid.NewString(), map[string]any{"price": 1}, token); w.Code != http.StatusNotFound {
		t.Errorf("unknown item update returned %d, want 404", w.Code)
	}
}

func TestDeleteMenuItem(t *testing.T) {
	r := setupTest(t)
	token := adminToken(t)
	item := seedMenuItem(t, models.MenuItem{
		ID: uuid.NewString(), Name: "Gulab Jamun", Category: models.CategoryDesserts, Price: 60,
		IsAvailable: true, Stock: 20, MinStock: 5,
	})

	if w := doJSON(t, r, http.MethodDelete, "/api/menu/"+item.ID, nil, token); w.Code != http.StatusOK {
		t.Fatalf("delete: %d", w.Code)
	}
	if w := doJSON(t, r, http.MethodGet, "/api/menu/"+item.ID, nil, ""); w.Code != http.StatusNotFound {
		t.Errorf("deleted item still retrievable: %d", w.Code)
	}
	if w := doJSON(t, r, http.MethodDelete, "/api/menu/"+item.ID, nil, token); w.Code != http.StatusNotFound {
		t.Errorf("double delete returned %d, want 404", w.Code)
	}
}
