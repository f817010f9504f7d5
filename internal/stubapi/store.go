package stubapi

import (
	"crypto/rand"
	"encoding/binary"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Uried/Nexora/internal/model"
)

type cartLine struct {
	id         string
	productID  string
	quantity   int
	priceAtAdd *int64
}

type storedOrder struct {
	id      string
	phone   string
	address string
	notes   string
	items   []model.OrderItem
	total   int64
	created time.Time
}

// Store is the in-memory state behind the stub API: a seeded catalog, one
// cart per cartId and the orders received so far.
type Store struct {
	mu         sync.Mutex
	products   []model.Product
	categories []model.Category
	byCategory map[string][]string // category id -> product ids
	carts      map[string][]cartLine
	orders     []storedOrder
	lineSeq    int
}

// NewStore returns a store seeded with a small perfume catalog.
func NewStore() *Store {
	s := &Store{
		carts:      map[string][]cartLine{},
		byCategory: map[string][]string{},
	}
	s.seed()
	return s
}

func (s *Store) seed() {
	s.products = []model.Product{
		{ID: "p-black-opium", Name: "Black Opium", Brand: "Yves Saint Laurent", Price: 65000, Images: []string{"/images/popular1.jpg"}},
		{ID: "p-coco-mademoiselle", Name: "Coco Mademoiselle", Brand: "Chanel", Price: 72000, Images: []string{"/images/popular2.jpg"}},
		{ID: "p-loui-martin", Name: "Loui Martin", Brand: "Louis Vuitton", Price: 39000, DiscountPrice: 35000, Images: []string{"/images/popular3.jpg"}},
		{ID: "p-sauvage", Name: "Sauvage", Brand: "Dior", Price: 58000, Images: []string{"/images/popular4.jpg"}},
	}
	s.categories = []model.Category{
		{ID: "c-femme", Name: "Parfums Femme"},
		{ID: "c-homme", Name: "Parfums Homme"},
	}
	s.byCategory["c-femme"] = []string{"p-black-opium", "p-coco-mademoiselle"}
	s.byCategory["c-homme"] = []string{"p-loui-martin", "p-sauvage"}
}

func (s *Store) product(id string) (model.Product, bool) {
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return model.Product{}, false
}

// addItem creates or increments a cart line; the first add wins for the
// price snapshot.
func (s *Store) addItem(cartID, productID string, quantity int, priceAtAdd *int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.product(productID); !ok {
		return false
	}
	lines := s.carts[cartID]
	for i := range lines {
		if lines[i].productID == productID {
			lines[i].quantity += quantity
			s.carts[cartID] = lines
			return true
		}
	}
	s.lineSeq++
	s.carts[cartID] = append(lines, cartLine{
		id:         "line-" + strconv.Itoa(s.lineSeq),
		productID:  productID,
		quantity:   quantity,
		priceAtAdd: priceAtAdd,
	})
	return true
}

func (s *Store) updateQuantity(cartID, lineID string, quantity int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	lines := s.carts[cartID]
	for i := range lines {
		if lines[i].id == lineID {
			lines[i].quantity = quantity
			s.carts[cartID] = lines
			return true
		}
	}
	return false
}

func (s *Store) removeItem(cartID, lineID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	lines := s.carts[cartID]
	for i := range lines {
		if lines[i].id == lineID {
			s.carts[cartID] = append(lines[:i], lines[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Store) clearCart(cartID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, cartID)
}

// newOrderID mirrors the upstream format: ORDER-<timestamp36>-<random36>.
func newOrderID() string {
	var b [4]byte
	_, _ = rand.Read(b[:])
	r := strconv.FormatUint(uint64(binary.BigEndian.Uint32(b[:])), 36)
	ts := strconv.FormatInt(time.Now().UnixMilli(), 36)
	return strings.ToUpper("ORDER-" + ts + "-" + r)
}
