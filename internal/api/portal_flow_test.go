package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/shopstack/portal/internal/api/handler"
	"github.com/shopstack/portal/internal/api/middleware"
	"github.com/shopstack/portal/internal/core/domain"
	"github.com/shopstack/portal/internal/core/service"
)

// --- in-memory adapters ---

type memUserRepo struct {
	users map[string]*domain.User
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Username]; exists {
		return nil, domain.ErrUserExists
	}
	clone := *user
	clone.ID = user.Username
	r.users[user.Username] = &clone
	out := clone
	return &out, nil
}

func (r *memUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

type memProductRepo struct {
	products []*domain.Product
}

func (r *memProductRepo) Create(_ context.Context, p *domain.Product) error {
	for _, existing := range r.products {
		if existing.Name == p.Name {
			return domain.ErrProductExists
		}
	}
	clone := *p
	r.products = append(r.products, &clone)
	return nil
}

func (r *memProductRepo) FindByName(_ context.Context, name string) (*domain.Product, error) {
	for _, p := range r.products {
		if p.Name == name {
			clone := *p
			return &clone, nil
		}
	}
	return nil, domain.ErrProductNotFound
}

func (r *memProductRepo) List(_ context.Context) ([]*domain.Product, error) {
	out := make([]*domain.Product, 0, len(r.products))
	for _, p := range r.products {
		clone := *p
		out = append(out, &clone)
	}
	return out, nil
}

type memOrderRepo struct {
	orders []*domain.Order
}

func (r *memOrderRepo) Create(_ context.Context, o *domain.Order) error {
	clone := *o
	r.orders = append(r.orders, &clone)
	return nil
}

func (r *memOrderRepo) ListByUsername(_ context.Context, username string) ([]*domain.Order, error) {
	var out []*domain.Order
	for _, o := range r.orders {
		if o.Username == username {
			clone := *o
			out = append(out, &clone)
		}
	}
	return out, nil
}

type memRevoker struct {
	revoked map[string]bool
}

func (r *memRevoker) Revoke(_ context.Context, tokenID string, _ time.Duration) error {
	r.revoked[tokenID] = true
	return nil
}

func (r *memRevoker) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	return r.revoked[tokenID], nil
}

// newTestServer wires real services, middleware, and handlers over in-memory
// stores, registering the same routes with the same gating as NewRouter.
func newTestServer() *echo.Echo {
	const secret = "flow-test-secret"
	log := zerolog.Nop()

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	userRepo := &memUserRepo{users: make(map[string]*domain.User)}
	productRepo := &memProductRepo{}
	orderRepo := &memOrderRepo{}
	revoker := &memRevoker{revoked: make(map[string]bool)}

	authService := service.NewAuthService(userRepo, secret, time.Hour, log)
	catalogService := service.NewCatalogService(productRepo, log)
	orderService := service.NewOrderService(catalogService, orderRepo, log)

	authHandler := handler.NewAuthHandler(authService, revoker)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	orderHandler := handler.NewOrderHandler(orderService)

	authed := middleware.Auth(secret, revoker)

	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, authed)
	e.POST("/products", catalogHandler.AddProduct, authed, middleware.RBAC(domain.RoleAdmin))
	e.GET("/products", catalogHandler.ListProducts, authed, middleware.RBAC(domain.RoleAdmin, domain.RoleUser))
	e.POST("/orders", orderHandler.PlaceOrder, authed, middleware.RBAC(domain.RoleUser))
	e.GET("/orders", orderHandler.ListOrders, authed, middleware.RBAC(domain.RoleUser))

	return e
}

func doJSON(e *echo.Echo, method, path, token, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func register(t *testing.T, e *echo.Echo, username, password, role string) {
	t.Helper()
	rec := doJSON(e, http.MethodPost, "/auth/register", "", `{"username":"`+username+`","password":"`+password+`","role":"`+role+`"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register %s: expected 201, got %d (%s)", username, rec.Code, rec.Body.String())
	}
}

func login(t *testing.T, e *echo.Echo, username, password string) string {
	t.Helper()
	rec := doJSON(e, http.MethodPost, "/auth/login", "", `{"username":"`+username+`","password":"`+password+`"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login %s: expected 200, got %d (%s)", username, rec.Code, rec.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil || resp.Token == "" {
		t.Fatalf("login %s: missing token (%s)", username, rec.Body.String())
	}
	return resp.Token
}

// Admin stocks the catalog, user browses and buys, the ledger records the
// purchase at the catalog price. Passwords are deliberately short: the portal
// has no minimum-length policy, only presence.
func TestPortalFlow_RegisterStockAndBuy(t *testing.T) {
	e := newTestServer()

	register(t, e, "root", "pw1", "admin")
	register(t, e, "bob", "pw2", "user")

	adminToken := login(t, e, "root", "pw1")
	rec := doJSON(e, http.MethodPost, "/products", adminToken, `{"name":"Pen","price":10}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add product: expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}

	bobToken := login(t, e, "bob", "pw2")

	rec = doJSON(e, http.MethodGet, "/products", bobToken, "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Pen") {
		t.Fatalf("user listing: expected Pen in 200 response, got %d (%s)", rec.Code, rec.Body.String())
	}

	rec = doJSON(e, http.MethodPost, "/orders", bobToken, `{"product":"Pen"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("place order: expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}

	rec = doJSON(e, http.MethodGet, "/orders", bobToken, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list orders: expected 200, got %d", rec.Code)
	}
	var resp struct {
		Orders []domain.Order `json:"orders"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Orders) != 1 {
		t.Fatalf("expected exactly one order, got %d", len(resp.Orders))
	}
	got := resp.Orders[0]
	if got.Username != "bob" || got.Product != "Pen" || got.Price != 10 {
		t.Fatalf("unexpected ledger entry: %+v", got)
	}
}

// Catalog mutation must be unreachable for the user role; order placement
// must be unreachable for the admin role.
func TestPortalFlow_RoleGating(t *testing.T) {
	e := newTestServer()
	register(t, e, "root", "adminpw", "admin")
	register(t, e, "bob", "userpw", "user")
	adminToken := login(t, e, "root", "adminpw")
	bobToken := login(t, e, "bob", "userpw")

	if rec := doJSON(e, http.MethodPost, "/products", bobToken, `{"name":"Pen","price":10}`); rec.Code != http.StatusForbidden {
		t.Fatalf("user adding product: expected 403, got %d", rec.Code)
	}
	// The forbidden call must never have reached the catalog service.
	if rec := doJSON(e, http.MethodGet, "/products", bobToken, ""); strings.Contains(rec.Body.String(), "Pen") {
		t.Fatalf("forbidden mutation leaked into the catalog: %s", rec.Body.String())
	}
	if rec := doJSON(e, http.MethodPost, "/orders", adminToken, `{"product":"Pen"}`); rec.Code != http.StatusForbidden {
		t.Fatalf("admin placing order: expected 403, got %d", rec.Code)
	}
	if rec := doJSON(e, http.MethodGet, "/orders", adminToken, ""); rec.Code != http.StatusForbidden {
		t.Fatalf("admin listing orders: expected 403, got %d", rec.Code)
	}
	// Listing is open to both roles.
	if rec := doJSON(e, http.MethodGet, "/products", adminToken, ""); rec.Code != http.StatusOK {
		t.Fatalf("admin listing products: expected 200, got %d", rec.Code)
	}
}

func TestPortalFlow_UnauthenticatedRejected(t *testing.T) {
	e := newTestServer()

	for _, tc := range []struct{ method, path, body string }{
		{http.MethodGet, "/products", ""},
		{http.MethodPost, "/products", `{"name":"Pen","price":10}`},
		{http.MethodPost, "/orders", `{"product":"Pen"}`},
		{http.MethodGet, "/orders", ""},
		{http.MethodPost, "/auth/logout", ""},
	} {
		if rec := doJSON(e, tc.method, tc.path, "", tc.body); rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s without token: expected 401, got %d", tc.method, tc.path, rec.Code)
		}
	}
}

func TestPortalFlow_DuplicateRegistration(t *testing.T) {
	e := newTestServer()
	register(t, e, "bob", "userpw", "user")

	rec := doJSON(e, http.MethodPost, "/auth/register", "", `{"username":"bob","password":"otherpw","role":"admin"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate register: expected 409, got %d (%s)", rec.Code, rec.Body.String())
	}
}

// Wrong password and unknown username must return identical responses.
func TestPortalFlow_LoginFailureUniform(t *testing.T) {
	e := newTestServer()
	register(t, e, "bob", "userpw", "user")

	wrongPw := doJSON(e, http.MethodPost, "/auth/login", "", `{"username":"bob","password":"nope"}`)
	unknown := doJSON(e, http.MethodPost, "/auth/login", "", `{"username":"ghost","password":"nope"}`)

	if wrongPw.Code != http.StatusUnauthorized || unknown.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401/401, got %d/%d", wrongPw.Code, unknown.Code)
	}
	if wrongPw.Body.String() != unknown.Body.String() {
		t.Fatalf("login failures are distinguishable: %q vs %q", wrongPw.Body.String(), unknown.Body.String())
	}
}

// After logout the token is dead: every gated call fails as unauthenticated.
func TestPortalFlow_LogoutEndsSession(t *testing.T) {
	e := newTestServer()
	register(t, e, "bob", "userpw", "user")
	token := login(t, e, "bob", "userpw")

	if rec := doJSON(e, http.MethodGet, "/products", token, ""); rec.Code != http.StatusOK {
		t.Fatalf("pre-logout listing: expected 200, got %d", rec.Code)
	}

	if rec := doJSON(e, http.MethodPost, "/auth/logout", token, ""); rec.Code != http.StatusNoContent {
		t.Fatalf("logout: expected 204, got %d", rec.Code)
	}

	if rec := doJSON(e, http.MethodGet, "/products", token, ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("post-logout listing: expected 401, got %d", rec.Code)
	}
	if rec := doJSON(e, http.MethodPost, "/orders", token, `{"product":"Pen"}`); rec.Code != http.StatusUnauthorized {
		t.Fatalf("post-logout order: expected 401, got %d", rec.Code)
	}
}

// Ordering an unknown product surfaces as 404 through the error handler.
func TestPortalFlow_OrderUnknownProduct(t *testing.T) {
	e := newTestServer()
	register(t, e, "bob", "userpw", "user")
	token := login(t, e, "bob", "userpw")

	rec := doJSON(e, http.MethodPost, "/orders", token, `{"product":"Ghost"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d (%s)", rec.Code, rec.Body.String())
	}
}
