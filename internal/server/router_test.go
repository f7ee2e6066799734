package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/diewo77/cosmestock/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupServer(t *testing.T) http.Handler {
	t.Helper()
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Product{}, &models.Sale{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte("cosmestock2024"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if err := db.Create(&models.User{Username: "admin", Password: string(hash)}).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return New(db)
}

func login(t *testing.T, h http.Handler) *http.Cookie {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"username":"admin","password":"cosmestock2024"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("login: expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	for _, c := range w.Result().Cookies() {
		if c.Name == "session" && c.Value != "" {
			return c
		}
	}
	t.Fatal("login: no session cookie set")
	return nil
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	h := setupServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"username":"admin","password":"wrong"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", w.Code)
	}
}

func TestMutationsRequireSession(t *testing.T) {
	h := setupServer(t)
	cases := []struct{ method, path string }{
		{http.MethodPost, "/api/products"},
		{http.MethodPut, "/api/products/x"},
		{http.MethodDelete, "/api/products/x"},
		{http.MethodPost, "/api/products/x/sales"},
	}
	for _, c := range cases {
		req := httptest.NewRequest(c.method, c.path, strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401 got %d", c.method, c.path, w.Code)
		}
	}
}

func TestHealthEndpoints(t *testing.T) {
	h := setupServer(t)
	for _, path := range []string{"/health", "/healthz"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("%s: expected 200 got %d", path, w.Code)
		}
	}
}

// Full walk-through: login, create a product, sell some of it, and check the
// dashboard reflects both.
func TestEndToEndSaleFlow(t *testing.T) {
	h := setupServer(t)
	cookie := login(t, h)

	do := func(method, path, body string) *httptest.ResponseRecorder {
		var payload *strings.Reader
		if body == "" {
			payload = strings.NewReader("")
		} else {
			payload = strings.NewReader(body)
		}
		req := httptest.NewRequest(method, path, payload)
		if body != "" {
			req.Header.Set("Content-Type", "application/json")
		}
		req.AddCookie(cookie)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		return w
	}

	w := do(http.MethodPost, "/api/products", `{"name":"Rouge à Lèvres Mat","brand":"Glamour Pro","category":"Maquillage","sku":"RAL001","stock":"5","min_stock":"10","price":"25.99"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: expected 201 got %d body=%s", w.Code, w.Body.String())
	}
	var created models.Product
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	w = do(http.MethodGet, "/api/products/"+created.ID, "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"status":"warning"`) {
		t.Fatalf("detail: got %d %s", w.Code, w.Body.String())
	}

	w = do(http.MethodPost, "/api/products/"+created.ID+"/sales", `{"quantity":"3","customer_name":"Mme Dupont"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("sale: expected 201 got %d body=%s", w.Code, w.Body.String())
	}
	var sale models.Sale
	if err := json.Unmarshal(w.Body.Bytes(), &sale); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if sale.SoldBy != "1" {
		t.Fatalf("expected sale tagged with session actor, got %q", sale.SoldBy)
	}

	w = do(http.MethodGet, "/api/products?level=warning", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"stock":2`) {
		t.Fatalf("list: expected stock 2, got %d %s", w.Code, w.Body.String())
	}

	w = do(http.MethodGet, "/api/dashboard", "")
	if w.Code != http.StatusOK {
		t.Fatalf("dashboard: expected 200 got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"product_count":1`) {
		t.Fatalf("dashboard: unexpected body %s", w.Body.String())
	}

	w = do(http.MethodGet, "/api/categories", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Maquillage") {
		t.Fatalf("categories: got %d %s", w.Code, w.Body.String())
	}

	w = do(http.MethodPut, "/api/products/"+created.ID, `{"name":"Rouge à Lèvres Mat","brand":"Glamour Pro","category":"Maquillage","sku":"RAL001","stock":"12","min_stock":"10","price":"25.99"}`)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"stock":12`) {
		t.Fatalf("update: got %d %s", w.Code, w.Body.String())
	}

	w = do(http.MethodDelete, "/api/products/"+created.ID, "")
	if w.Code != http.StatusOK {
		t.Fatalf("delete: expected 200 got %d body=%s", w.Code, w.Body.String())
	}

	// Logout clears the session; the next mutation is rejected.
	w = do(http.MethodPost, "/api/logout", "")
	if w.Code != http.StatusOK {
		t.Fatalf("logout: expected 200 got %d", w.Code)
	}
}
