// Package stubapi implements the remote store API contract over an in-memory
// store. It backs the client tests and the local development server; the real
// collaborator is an external service.
package stubapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/Uried/Nexora/internal/model"
)

// Server exposes the store over HTTP.
type Server struct {
	store  *Store
	logger *zap.Logger
	router chi.Router
}

// New builds the server and its routes.
func New(store *Store, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{store: store, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", s.listProducts)
		r.Get("/products/category/{categoryID}", s.listProductsByCategory)
		r.Get("/products/{productID}", s.getProduct)
		r.Get("/categories", s.listCategories)

		r.Get("/cart/full/{cartID}", s.getCartFull)
		r.Post("/cart/items", s.addCartItem)
		r.Patch("/cart/items/{itemID}", s.updateCartItem)
		r.Delete("/cart/items/{itemID}", s.removeCartItem)
		r.Delete("/cart", s.clearCart)

		r.Post("/orders", s.createOrder)
	})

	s.router = r
	return s
}

// Handler returns the HTTP handler for mounting or serving.
func (s *Server) Handler() http.Handler { return s.router }

// ---- wire shapes ----

type productJSON struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description,omitempty"`
	Price         int64    `json:"price"`
	DiscountPrice int64    `json:"discountPrice,omitempty"`
	Images        []string `json:"images,omitempty"`
	Details       struct {
		Brand string `json:"brand,omitempty"`
	} `json:"details"`
}

func toProductJSON(p model.Product) productJSON {
	out := productJSON{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		DiscountPrice: p.DiscountPrice,
		Images:        p.Images,
	}
	out.Details.Brand = p.Brand
	return out
}

type cartItemJSON struct {
	ID         string       `json:"_id"`
	Product    *productJSON `json:"productId"`
	Quantity   int          `json:"quantity"`
	PriceAtAdd *int64       `json:"priceAtAdd,omitempty"`
	LineTotal  *int64       `json:"lineTotal,omitempty"`
}

type totalsJSON struct {
	Quantity    int   `json:"quantity"`
	Items       int   `json:"items"`
	TotalAmount int64 `json:"totalAmount"`
}

type cartResponseJSON struct {
	Cart struct {
		CartID string         `json:"cartId"`
		Items  []cartItemJSON `json:"items"`
	} `json:"cart"`
	Totals *totalsJSON `json:"totals,omitempty"`
}

// ---- catalog handlers ----

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	s.store.mu.Lock()
	products := append([]model.Product(nil), s.store.products...)
	s.store.mu.Unlock()

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if page > 0 && limit > 0 {
		start := (page - 1) * limit
		if start >= len(products) {
			products = nil
		} else {
			end := start + limit
			if end > len(products) {
				end = len(products)
			}
			products = products[start:end]
		}
	}

	out := make([]productJSON, 0, len(products))
	for _, p := range products {
		out = append(out, toProductJSON(p))
	}
	respondJSON(w, http.StatusOK, map[string]any{"products": out})
}

func (s *Server) listProductsByCategory(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "categoryID")
	s.store.mu.Lock()
	ids := s.store.byCategory[categoryID]
	out := make([]productJSON, 0, len(ids))
	for _, id := range ids {
		if p, ok := s.store.product(id); ok {
			out = append(out, toProductJSON(p))
		}
	}
	s.store.mu.Unlock()
	respondJSON(w, http.StatusOK, map[string]any{"products": out})
}

func (s *Server) getProduct(w http.ResponseWriter, r *http.Request) {
	s.store.mu.Lock()
	p, ok := s.store.product(chi.URLParam(r, "productID"))
	s.store.mu.Unlock()
	if !ok {
		respondError(w, http.StatusNotFound, "Produit introuvable")
		return
	}
	respondJSON(w, http.StatusOK, toProductJSON(p))
}

func (s *Server) listCategories(w http.ResponseWriter, _ *http.Request) {
	s.store.mu.Lock()
	cats := append([]model.Category(nil), s.store.categories...)
	s.store.mu.Unlock()
	type categoryJSON struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Image string `json:"image,omitempty"`
	}
	out := make([]categoryJSON, 0, len(cats))
	for _, c := range cats {
		out = append(out, categoryJSON{ID: c.ID, Name: c.Name, Image: c.Image})
	}
	respondJSON(w, http.StatusOK, map[string]any{"categories": out})
}

// ---- cart handlers ----

func (s *Server) getCartFull(w http.ResponseWriter, r *http.Request) {
	cartID := chi.URLParam(r, "cartID")
	s.store.mu.Lock()
	lines := append([]cartLine(nil), s.store.carts[cartID]...)

	var resp cartResponseJSON
	resp.Cart.CartID = cartID
	resp.Cart.Items = make([]cartItemJSON, 0, len(lines))
	totalQty, totalAmount := 0, int64(0)
	for _, ln := range lines {
		item := cartItemJSON{ID: ln.id, Quantity: ln.quantity, PriceAtAdd: ln.priceAtAdd}
		if p, ok := s.store.product(ln.productID); ok {
			pj := toProductJSON(p)
			item.Product = &pj
			unit := p.Price
			if ln.priceAtAdd != nil {
				unit = *ln.priceAtAdd
			} else if p.DiscountPrice > 0 {
				unit = p.DiscountPrice
			}
			lt := unit * int64(ln.quantity)
			item.LineTotal = &lt
			totalAmount += lt
		}
		totalQty += ln.quantity
		resp.Cart.Items = append(resp.Cart.Items, item)
	}
	s.store.mu.Unlock()

	resp.Totals = &totalsJSON{Quantity: totalQty, Items: len(resp.Cart.Items), TotalAmount: totalAmount}

	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) addCartItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CartID     string `json:"cartId"`
		ProductID  string `json:"productId"`
		Quantity   int    `json:"quantity"`
		PriceAtAdd *int64 `json:"priceAtAdd"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "corps JSON invalide")
		return
	}
	if req.CartID == "" || req.ProductID == "" || req.Quantity < 1 {
		respondError(w, http.StatusBadRequest, "cartId, productId et quantity sont requis")
		return
	}
	if !s.store.addItem(req.CartID, req.ProductID, req.Quantity, req.PriceAtAdd) {
		respondError(w, http.StatusNotFound, "Produit introuvable")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]bool{"success": true})
}

func (s *Server) updateCartItem(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "itemID")
	var req struct {
		CartID   string `json:"cartId"`
		Quantity int    `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "corps JSON invalide")
		return
	}
	if req.CartID == "" || req.Quantity < 1 {
		respondError(w, http.StatusBadRequest, "cartId et quantity sont requis")
		return
	}
	if !s.store.updateQuantity(req.CartID, itemID, req.Quantity) {
		respondError(w, http.StatusNotFound, "Article introuvable")
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) removeCartItem(w http.ResponseWriter, r *http.Request) {
	cartID := r.URL.Query().Get("cartId")
	if cartID == "" {
		respondError(w, http.StatusBadRequest, "cartId est requis")
		return
	}
	if !s.store.removeItem(cartID, chi.URLParam(r, "itemID")) {
		respondError(w, http.StatusNotFound, "Article introuvable")
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) clearCart(w http.ResponseWriter, r *http.Request) {
	cartID := r.URL.Query().Get("cartId")
	if cartID == "" {
		respondError(w, http.StatusBadRequest, "cartId est requis")
		return
	}
	s.store.clearCart(cartID)
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// ---- order handler ----

func (s *Server) createOrder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Phone           string `json:"phone"`
		ShippingAddress string `json:"shippingAddress"`
		Notes           string `json:"notes"`
		Items           []struct {
			ProductID string `json:"productId"`
			Name      string `json:"name"`
			Price     int64  `json:"price"`
			Quantity  int    `json:"quantity"`
			Image     string `json:"image"`
			Brand     string `json:"brand"`
		} `json:"items"`
		ShippingFee   int64  `json:"shippingFee"`
		Discount      int64  `json:"discount"`
		PaymentMethod string `json:"paymentMethod"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "corps JSON invalide")
		return
	}
	if req.Phone == "" || req.ShippingAddress == "" || len(req.Items) == 0 {
		respondError(w, http.StatusBadRequest,
			"Données manquantes: téléphone, adresse de livraison et articles sont requis")
		return
	}

	subtotal := int64(0)
	items := make([]model.OrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		subtotal += it.Price * int64(it.Quantity)
		items = append(items, model.OrderItem{
			ProductID: it.ProductID, Name: it.Name, Price: it.Price,
			Quantity: it.Quantity, Image: it.Image, Brand: it.Brand,
		})
	}

	order := storedOrder{
		id:      newOrderID(),
		created: time.Now(),
		phone:   req.Phone,
		address: req.ShippingAddress,
		notes:   req.Notes,
		items:   items,
		total:   subtotal + req.ShippingFee - req.Discount,
	}
	s.store.mu.Lock()
	s.store.orders = append(s.store.orders, order)
	s.store.mu.Unlock()

	s.logger.Info("order created",
		zap.String("orderId", order.id),
		zap.Int64("total", order.total),
		zap.Int("items", len(order.items)),
	)
	respondJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"orderId": order.id,
		"message": "Commande créée avec succès",
	})
}

// ---- response helpers ----

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}
