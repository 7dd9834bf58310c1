package service

import (
	"context"
	"time"

	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/apperrors"
	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/identifier"
	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/models"
	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/repository"
)

// fakeCartRepo is an in-memory CartRepository mirroring the merge and
// leniency semantics of the Postgres implementation.
type fakeCartRepo struct {
	carts map[string]*models.Cart

	ensureCalls int
	upsertCalls int
	getCalls    int

	err error
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: make(map[string]*models.Cart)}
}

func (f *fakeCartRepo) CreateCart(_ context.Context) (*models.Cart, error) {
	if f.err != nil {
		return nil, f.err
	}
	cart := &models.Cart{
		ID:        identifier.New(),
		Lines:     []models.CartLine{},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	f.carts[cart.ID] = cart
	return copyCart(cart), nil
}

func (f *fakeCartRepo) GetCart(_ context.Context, cartID string) (*models.Cart, error) {
	f.getCalls++
	if f.err != nil {
		return nil, f.err
	}
	cart, ok := f.carts[cartID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return copyCart(cart), nil
}

func (f *fakeCartRepo) EnsureCart(_ context.Context, cartID string) error {
	f.ensureCalls++
	if f.err != nil {
		return f.err
	}
	if _, ok := f.carts[cartID]; !ok {
		f.carts[cartID] = &models.Cart{ID: cartID, Lines: []models.CartLine{}}
	}
	return nil
}

func (f *fakeCartRepo) UpsertLine(_ context.Context, cartID, productID string, quantity int) error {
	f.upsertCalls++
	if f.err != nil {
		return f.err
	}
	cart := f.carts[cartID]
	for i := range cart.Lines {
		if cart.Lines[i].ProductID == productID {
			cart.Lines[i].Quantity += quantity
			return nil
		}
	}
	cart.Lines = append(cart.Lines, models.CartLine{ProductID: productID, Quantity: quantity})
	return nil
}

func (f *fakeCartRepo) DeleteLine(_ context.Context, cartID, productID string) error {
	if f.err != nil {
		return f.err
	}
	cart, ok := f.carts[cartID]
	if !ok {
		return nil
	}
	lines := cart.Lines[:0]
	for _, line := range cart.Lines {
		if line.ProductID != productID {
			lines = append(lines, line)
		}
	}
	cart.Lines = lines
	return nil
}

func (f *fakeCartRepo) ClearLines(_ context.Context, cartID string) error {
	if f.err != nil {
		return f.err
	}
	if cart, ok := f.carts[cartID]; ok {
		cart.Lines = []models.CartLine{}
	}
	return nil
}

func copyCart(cart *models.Cart) *models.Cart {
	c := *cart
	c.Lines = append([]models.CartLine(nil), cart.Lines...)
	return &c
}

// fakeProductRepo resolves products from a fixed map.
type fakeProductRepo struct {
	products  map[string]models.Product
	findCalls int
}

func newFakeProductRepo(products ...models.Product) *fakeProductRepo {
	m := make(map[string]models.Product, len(products))
	for _, p := range products {
		m[p.ID] = p
	}
	return &fakeProductRepo{products: m}
}

func (f *fakeProductRepo) List(_ context.Context) ([]models.Product, error) {
	out := make([]models.Product, 0, len(f.products))
	for _, p := range f.products {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProductRepo) FindOne(_ context.Context, productID string) (*models.Product, error) {
	f.findCalls++
	p, ok := f.products[productID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &p, nil
}

// fakeCache records cache traffic.
type fakeCache struct {
	data    map[string]*models.Cart
	deletes []string
	sets    int
	getErr  error
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string]*models.Cart)}
}

func (f *fakeCache) Get(_ context.Context, cartID string) (*models.Cart, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	cart, ok := f.data[cartID]
	if !ok {
		return nil, repository.ErrCacheMiss
	}
	return copyCart(cart), nil
}

func (f *fakeCache) Set(_ context.Context, cart *models.Cart) error {
	f.sets++
	f.data[cart.ID] = copyCart(cart)
	return nil
}

func (f *fakeCache) Delete(_ context.Context, cartID string) error {
	f.deletes = append(f.deletes, cartID)
	delete(f.data, cartID)
	return nil
}

// fakeOrderRepo is an in-memory OrderRepository. Priced lines per cart are
// mutable so tests can simulate later catalog price changes.
type fakeOrderRepo struct {
	pricedLines map[string][]repository.PricedLine
	orders      map[string]*models.Order

	createCalls int
	createErr   error
	readErr     error
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{
		pricedLines: make(map[string][]repository.PricedLine),
		orders:      make(map[string]*models.Order),
	}
}

func (f *fakeOrderRepo) GetCartLinesPriced(_ context.Context, cartID string) ([]repository.PricedLine, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	return append([]repository.PricedLine(nil), f.pricedLines[cartID]...), nil
}

func (f *fakeOrderRepo) CreateOrder(_ context.Context, order *models.Order) error {
	f.createCalls++
	if f.createErr != nil {
		return f.createErr
	}
	f.orders[order.ID] = copyOrder(order)
	return nil
}

func (f *fakeOrderRepo) GetOrder(_ context.Context, orderID string) (*models.Order, error) {
	order, ok := f.orders[orderID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return copyOrder(order), nil
}

func copyOrder(order *models.Order) *models.Order {
	o := *order
	o.Lines = append([]models.OrderLine(nil), order.Lines...)
	return &o
}

// fakePublisher records published orders.
type fakePublisher struct {
	published []string
	err       error
}

func (f *fakePublisher) PublishOrderCreated(_ context.Context, order *models.Order) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, order.ID)
	return nil
}

// fakeClearer records cart clears requested by checkout.
type fakeClearer struct {
	cleared []string
}

func (f *fakeClearer) ClearCart(_ context.Context, cartID string) error {
	f.cleared = append(f.cleared, cartID)
	return nil
}

// fakeMailer records outgoing mail.
type fakeMailer struct {
	sent []sentMail
	err  error
}

type sentMail struct {
	to      string
	subject string
	body    string
}

func (f *fakeMailer) Send(_ context.Context, to, subject, plainText, _ string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{to: to, subject: subject, body: plainText})
	return nil
}
