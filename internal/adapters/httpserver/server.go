package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strconv"
	"strings"

	"golang.org/x/oauth2"

	"github.com/tomasrv/modastore/internal/cart"
	"github.com/tomasrv/modastore/internal/domain"
	"github.com/tomasrv/modastore/internal/usecase"
)

type Server struct {
	mux       *http.ServeMux
	catalog   *usecase.CatalogUC
	checkout  *usecase.CheckoutUC
	cart      *cart.Store
	favorites *cart.Favorites
	oauthCfg  *oauth2.Config

	adminAllowed map[string]struct{}
	sessionKey   []byte
}

func New(catalog *usecase.CatalogUC, checkout *usecase.CheckoutUC, c *cart.Store, favs *cart.Favorites, oauthCfg *oauth2.Config) http.Handler {
	s := &Server{
		mux:       http.NewServeMux(),
		catalog:   catalog,
		checkout:  checkout,
		cart:      c,
		favorites: favs,
		oauthCfg:  oauthCfg,
	}

	allowed := map[string]struct{}{}
	if raw := os.Getenv("ADMIN_ALLOWED_EMAILS"); raw != "" {
		for _, e := range strings.Split(raw, ",") {
			e = strings.ToLower(strings.TrimSpace(e))
			if e != "" {
				allowed[e] = struct{}{}
			}
		}
	}
	s.adminAllowed = allowed
	key := os.Getenv("SESSION_KEY")
	if key == "" {
		key = "dev-insecure"
	}
	s.sessionKey = []byte(key)

	s.routes()
	return Chain(s.mux,
		Logging,
		Recovery,
		RequestID,
	)
}

func (s *Server) routes() {
	s.mux.HandleFunc("/api/products", s.apiProducts)
	s.mux.HandleFunc("/api/products/", s.apiProductByID)
	s.mux.HandleFunc("/api/categories", s.apiCategories)

	s.mux.HandleFunc("/api/cart", s.apiCart)
	s.mux.HandleFunc("/api/cart/update", s.apiCartUpdate)
	s.mux.HandleFunc("/api/cart/remove", s.apiCartRemove)
	s.mux.HandleFunc("/api/cart/clear", s.apiCartClear)

	s.mux.HandleFunc("/api/favorites", s.apiFavorites)
	s.mux.HandleFunc("/api/favorites/toggle", s.apiFavoritesToggle)

	s.mux.HandleFunc("/api/checkout", s.apiCheckout)

	s.mux.HandleFunc("/admin/export/xlsx", s.handleExportXLSX)

	s.mux.HandleFunc("/auth/google/login", s.handleGoogleLogin)
	s.mux.HandleFunc("/auth/google/callback", s.handleGoogleCallback)
	s.mux.HandleFunc("/logout", s.handleLogout)
}

func (s *Server) apiProducts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		f := domain.ProductFilter{
			Category: r.URL.Query().Get("category"),
			Query:    r.URL.Query().Get("q"),
			Sort:     r.URL.Query().Get("sort"),
		}
		if v := r.URL.Query().Get("featured"); v != "" {
			b := v == "true" || v == "1"
			f.Featured = &b
		}
		if v := r.URL.Query().Get("bestseller"); v != "" {
			b := v == "true" || v == "1"
			f.BestSeller = &b
		}
		if v := r.URL.Query().Get("instock"); v != "" {
			b := v == "true" || v == "1"
			f.InStock = &b
		}
		f.Page, _ = strconv.Atoi(r.URL.Query().Get("page"))
		f.PageSize, _ = strconv.Atoi(r.URL.Query().Get("page_size"))
		list, total, err := s.catalog.List(r.Context(), f)
		if err != nil {
			writeJSON(w, 500, map[string]any{"error": "list"})
			return
		}
		writeJSON(w, 200, map[string]any{"products": list, "total": total})
	case http.MethodPost:
		if !s.requireAdmin(w, r) {
			return
		}
		var p domain.Product
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			writeJSON(w, 400, map[string]any{"error": "body"})
			return
		}
		if err := s.catalog.Create(r.Context(), &p); err != nil {
			writeJSON(w, 400, map[string]any{"error": err.Error()})
			return
		}
		writeJSON(w, 201, p)
	default:
		http.Error(w, "method", 405)
	}
}

func (s *Server) apiProductByID(w http.ResponseWriter, r *http.Request) {
	idStr := strings.TrimPrefix(r.URL.Path, "/api/products/")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	switch r.Method {
	case http.MethodGet:
		p, err := s.catalog.GetByID(r.Context(), id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				writeJSON(w, 404, map[string]any{"error": "not found"})
				return
			}
			writeJSON(w, 500, map[string]any{"error": "get"})
			return
		}
		writeJSON(w, 200, p)
	case http.MethodPut:
		if !s.requireAdmin(w, r) {
			return
		}
		var p domain.Product
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			writeJSON(w, 400, map[string]any{"error": "body"})
			return
		}
		p.ID = id
		if err := s.catalog.Update(r.Context(), &p); err != nil {
			writeJSON(w, 400, map[string]any{"error": err.Error()})
			return
		}
		writeJSON(w, 200, p)
	case http.MethodDelete:
		if !s.requireAdmin(w, r) {
			return
		}
		if err := s.catalog.Delete(r.Context(), id); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				writeJSON(w, 404, map[string]any{"error": "not found"})
				return
			}
			writeJSON(w, 500, map[string]any{"error": "delete"})
			return
		}
		writeJSON(w, 200, map[string]any{"status": "ok"})
	default:
		http.Error(w, "method", 405)
	}
}

func (s *Server) apiCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method", 405)
		return
	}
	cats, err := s.catalog.Categories(r.Context())
	if err != nil {
		writeJSON(w, 500, map[string]any{"error": "categories"})
		return
	}
	writeJSON(w, 200, map[string]any{"categories": cats})
}

type addItemReq struct {
	ProductID int64  `json:"productId"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
	Color     string `json:"color"`
	ColorCode string `json:"colorCode"`
}

func (s *Server) cartView() map[string]any {
	items := s.cart.Items()
	return map[string]any{"items": items, "count": s.cart.Count(), "total": s.cart.Total()}
}

func (s *Server) apiCart(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, 200, s.cartView())
	case http.MethodPost:
		var req addItemReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, 400, map[string]any{"error": "body"})
			return
		}
		if req.Quantity <= 0 || strings.TrimSpace(req.Size) == "" {
			writeJSON(w, 400, map[string]any{"error": "size and positive quantity required"})
			return
		}
		p, err := s.catalog.GetByID(r.Context(), req.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				writeJSON(w, 404, map[string]any{"error": "product not found"})
				return
			}
			writeJSON(w, 500, map[string]any{"error": "product"})
			return
		}
		s.cart.Add(r.Context(), *p, req.Size, req.Quantity, req.Color, req.ColorCode)
		writeJSON(w, 200, s.cartView())
	default:
		http.Error(w, "method", 405)
	}
}

type cartLineReq struct {
	ProductID int64  `json:"productId"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
}

func (s *Server) apiCartUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", 405)
		return
	}
	var req cartLineReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, 400, map[string]any{"error": "body"})
		return
	}
	s.cart.SetQuantity(r.Context(), req.ProductID, req.Size, req.Quantity)
	writeJSON(w, 200, s.cartView())
}

func (s *Server) apiCartRemove(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", 405)
		return
	}
	var req cartLineReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, 400, map[string]any{"error": "body"})
		return
	}
	s.cart.RemoveSize(r.Context(), req.ProductID, req.Size)
	writeJSON(w, 200, s.cartView())
}

func (s *Server) apiCartClear(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", 405)
		return
	}
	s.cart.Clear(r.Context())
	writeJSON(w, 200, s.cartView())
}

func (s *Server) apiFavorites(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method", 405)
		return
	}
	writeJSON(w, 200, map[string]any{"ids": s.favorites.IDs()})
}

func (s *Server) apiFavoritesToggle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", 405)
		return
	}
	var req struct {
		ProductID int64 `json:"productId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ProductID <= 0 {
		writeJSON(w, 400, map[string]any{"error": "productId required"})
		return
	}
	fav := s.favorites.Toggle(r.Context(), req.ProductID)
	writeJSON(w, 200, map[string]any{"productId": req.ProductID, "favorite": fav})
}

func (s *Server) apiCheckout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", 405)
		return
	}
	var d usecase.CustomerDetails
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		writeJSON(w, 400, map[string]any{"error": "body"})
		return
	}
	o, err := s.checkout.Submit(r.Context(), s.cart.Items(), d)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyCart) {
			writeJSON(w, 400, map[string]any{"error": "cart is empty"})
			return
		}
		writeJSON(w, 400, map[string]any{"error": err.Error()})
		return
	}
	// The order is durable; only now does the cart let go of its lines.
	s.cart.Clear(r.Context())
	writeJSON(w, 201, map[string]any{"orderId": o.ID, "total": o.Total, "status": o.Status})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
