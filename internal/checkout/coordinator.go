// Package checkout drives a single checkout attempt: validate contact input,
// submit the order, clear the cart best-effort and hand off to WhatsApp.
package checkout

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"

	"github.com/Uried/Nexora/internal/errs"
	"github.com/Uried/Nexora/internal/model"
	"github.com/Uried/Nexora/internal/viewmodel"
)

// PaymentMethod is the fixed marker sent with every order: payment happens in
// the WhatsApp conversation, not online.
const PaymentMethod = "WhatsApp"

const minPhoneDigits = 9

// ErrSubmitInFlight is returned when Submit is called while a submission is
// already running; the UI disables the action, so callers just ignore it.
var ErrSubmitInFlight = errors.New("submission already in flight")

// StoreClient is the slice of the remote client the coordinator needs.
type StoreClient interface {
	FetchCart(ctx context.Context) *model.CartSnapshot
	ClearCart(ctx context.Context) error
	PlaceOrder(ctx context.Context, order model.Order) (*model.OrderReceipt, error)
}

// Input is the contact form content.
type Input struct {
	Phone   string
	Address string
	Notes   string
}

// FieldErrors carries per-field validation messages; empty string means valid.
type FieldErrors struct {
	Phone   string
	Address string
}

// Ok reports whether every field passed validation.
func (fe FieldErrors) Ok() bool { return fe.Phone == "" && fe.Address == "" }

// Validate applies the contact rules without touching the network: the phone
// must contain at least 9 digits once non-digits are stripped, the address
// must be non-empty after trimming.
func Validate(in Input) FieldErrors {
	var fe FieldErrors
	phone := strings.TrimSpace(in.Phone)
	if phone == "" {
		fe.Phone = "Le numéro de téléphone est requis"
	} else if countDigits(phone) < minPhoneDigits {
		fe.Phone = "Numéro de téléphone invalide"
	}
	if strings.TrimSpace(in.Address) == "" {
		fe.Address = "L'adresse de livraison est requise"
	}
	return fe
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}

// Result reports a successful checkout.
type Result struct {
	OrderID     string
	WhatsAppURL string
}

// Config collects coordinator dependencies.
type Config struct {
	Client         StoreClient
	Navigator      Navigator
	Mobile         bool // mobile clients navigate the current tab on handoff
	ShippingFee    int64
	WhatsAppNumber string
	Logger         *zap.Logger
}

// Coordinator runs checkout attempts. Only one submission may be in flight at
// a time; a failed attempt may be retried.
type Coordinator struct {
	client      StoreClient
	nav         Navigator
	mobile      bool
	shippingFee int64
	waNumber    string
	logger      *zap.Logger

	mu         sync.Mutex
	state      State
	fieldErrs  FieldErrors
	submitErr  string
	submitting bool
}

// New constructs a Coordinator in the Idle state.
func New(cfg Config) *Coordinator {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Coordinator{
		client:      cfg.Client,
		nav:         cfg.Navigator,
		mobile:      cfg.Mobile,
		shippingFee: cfg.ShippingFee,
		waNumber:    cfg.WhatsAppNumber,
		logger:      logger,
		state:       StateIdle,
	}
}

// State returns the current attempt state.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// FieldErrors returns the messages from the last validation pass.
func (c *Coordinator) FieldErrors() FieldErrors {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fieldErrs
}

// SubmitError returns the human-readable message from the last failed
// submission, empty otherwise.
func (c *Coordinator) SubmitError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitErr
}

// Submit runs one checkout attempt end to end. On validation failure the
// state stays at Validating and no network call is made. On submission
// failure the cart is left untouched and no navigation occurs.
func (c *Coordinator) Submit(ctx context.Context, in Input) (*Result, error) {
	c.mu.Lock()
	if c.submitting {
		c.mu.Unlock()
		return nil, ErrSubmitInFlight
	}
	c.state = StateValidating
	c.fieldErrs = Validate(in)
	if !c.fieldErrs.Ok() {
		c.mu.Unlock()
		return nil, errs.ErrValidation
	}
	c.state = StateSubmitting
	c.submitting = true
	c.submitErr = ""
	c.mu.Unlock()

	res, err := c.submit(ctx, in)

	c.mu.Lock()
	c.submitting = false
	if err != nil {
		c.state = StateFailed
		c.submitErr = submitMessage(err)
	} else {
		c.state = StateSucceeded
	}
	c.mu.Unlock()
	return res, err
}

func (c *Coordinator) submit(ctx context.Context, in Input) (*Result, error) {
	snap := c.client.FetchCart(ctx)
	if snap == nil {
		return nil, errors.New("impossible de charger le panier")
	}
	view := viewmodel.Build(snap, c.shippingFee)

	order, ok := c.buildOrder(snap, in)
	if !ok {
		return nil, errors.New("le panier est vide")
	}

	receipt, err := c.client.PlaceOrder(ctx, order)
	if err != nil {
		return nil, err
	}

	// Best-effort: a cart that fails to clear does not fail the checkout.
	if err := c.client.ClearCart(ctx); err != nil {
		c.logger.Warn("cart clear after checkout failed", zap.Error(err))
	}

	link := DeepLink(c.waNumber, BuildMessage(view, in))
	if err := handoff(c.nav, c.mobile, link); err != nil {
		c.logger.Warn("whatsapp handoff failed", zap.Error(err))
	}
	return &Result{OrderID: receipt.OrderID, WhatsAppURL: link}, nil
}

// buildOrder freezes the available cart lines into an order payload.
// ok is false when no line is orderable.
func (c *Coordinator) buildOrder(snap *model.CartSnapshot, in Input) (model.Order, bool) {
	items := make([]model.OrderItem, 0, len(snap.Cart.Items))
	for _, it := range snap.Cart.Items {
		unit, ok := it.EffectiveUnitPrice()
		if !ok || it.Product == nil {
			continue
		}
		image := ""
		if len(it.Product.Images) > 0 {
			image = it.Product.Images[0]
		}
		items = append(items, model.OrderItem{
			ProductID: it.Product.ID,
			Name:      it.Product.Name,
			Price:     unit,
			Quantity:  it.Quantity,
			Image:     image,
			Brand:     it.Product.Brand,
		})
	}
	if len(items) == 0 {
		return model.Order{}, false
	}
	ref, _ := uuid.NewV4()
	return model.Order{
		Phone:           strings.TrimSpace(in.Phone),
		ShippingAddress: strings.TrimSpace(in.Address),
		Notes:           strings.TrimSpace(in.Notes),
		Items:           items,
		ShippingFee:     c.shippingFee,
		PaymentMethod:   PaymentMethod,
		ClientRef:       ref.String(),
	}, true
}

// submitMessage maps a submission error to the message shown inline: the
// server's message verbatim when present, a generic one for transport
// failures, the local reason otherwise.
func submitMessage(err error) string {
	var rej *errs.Rejection
	if errors.As(err, &rej) && rej.Message != "" {
		return rej.Message
	}
	if errors.Is(err, errs.ErrNetwork) || errors.Is(err, errs.ErrServerRejected) {
		return "Échec de l'envoi de la commande. Veuillez réessayer."
	}
	return err.Error()
}
