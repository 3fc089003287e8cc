// Package storetest provides in-memory store implementations for tests.
package storetest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/arzan03/StoreFront/internal/models"
	"github.com/arzan03/StoreFront/internal/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Stores shares one lock across collections so joins see a consistent view.
type Stores struct {
	mu sync.Mutex

	users        map[primitive.ObjectID]models.User
	products     map[primitive.ObjectID]models.Product
	carts        map[primitive.ObjectID]models.Cart
	orders       map[primitive.ObjectID]models.Order
	wishlists    map[primitive.ObjectID]models.Wishlist
	contacts     map[primitive.ObjectID]models.Contact
	testimonials map[primitive.ObjectID]models.Testimonial

	Users        *Users
	Products     *Products
	Carts        *Carts
	Orders       *Orders
	Wishlists    *Wishlists
	Contacts     *Contacts
	Testimonials *Testimonials
}

func New() *Stores {
	s := &Stores{
		users:        map[primitive.ObjectID]models.User{},
		products:     map[primitive.ObjectID]models.Product{},
		carts:        map[primitive.ObjectID]models.Cart{},
		orders:       map[primitive.ObjectID]models.Order{},
		wishlists:    map[primitive.ObjectID]models.Wishlist{},
		contacts:     map[primitive.ObjectID]models.Contact{},
		testimonials: map[primitive.ObjectID]models.Testimonial{},
	}
	s.Users = &Users{s}
	s.Products = &Products{s}
	s.Carts = &Carts{s}
	s.Orders = &Orders{s: s}
	s.Wishlists = &Wishlists{s}
	s.Contacts = &Contacts{s}
	s.Testimonials = &Testimonials{s}
	return s
}

// summary must be called with mu held.
func (s *Stores) summary(id primitive.ObjectID) *models.UserSummary {
	u, ok := s.users[id]
	if !ok {
		return nil
	}
	return &models.UserSummary{ID: u.ID, Name: u.Name, Email: u.Email, Phone: u.Phone}
}

func newestFirst[T any](items []T, createdAt func(T) time.Time) {
	sort.SliceStable(items, func(i, j int) bool {
		return createdAt(items[i]).After(createdAt(items[j]))
	})
}

// Users

type Users struct{ s *Stores }

var _ store.UserStore = (*Users)(nil)

func (u *Users) Create(_ context.Context, user *models.User) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	for _, existing := range u.s.users {
		if existing.Email == user.Email {
			return store.ErrDuplicate
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	u.s.users[user.ID] = *user
	return nil
}

func (u *Users) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	user, ok := u.s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &user, nil
}

func (u *Users) FindByEmail(_ context.Context, email string) (*models.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	for _, user := range u.s.users {
		if user.Email == email {
			return &user, nil
		}
	}
	return nil, store.ErrNotFound
}

func (u *Users) List(_ context.Context) ([]models.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	out := make([]models.User, 0, len(u.s.users))
	for _, user := range u.s.users {
		out = append(out, user)
	}
	newestFirst(out, func(u models.User) time.Time { return u.CreatedAt })
	return out, nil
}

func (u *Users) UpdateProfile(_ context.Context, id primitive.ObjectID, upd store.ProfileUpdate) (*models.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()

	user, ok := u.s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	if upd.Email != nil {
		for _, other := range u.s.users {
			if other.ID != id && other.Email == *upd.Email {
				return nil, store.ErrDuplicate
			}
		}
		user.Email = *upd.Email
	}
	if upd.Name != nil {
		user.Name = *upd.Name
	}
	if upd.Phone != nil {
		user.Phone = *upd.Phone
	}
	u.s.users[id] = user
	return &user, nil
}

// Products

type Products struct{ s *Stores }

var _ store.ProductStore = (*Products)(nil)

func cloneProduct(p models.Product) models.Product {
	p.Sizes = append([]models.SizePrice(nil), p.Sizes...)
	p.Images = append([]string(nil), p.Images...)
	p.Reviews = append([]models.Review{}, p.Reviews...)
	return p
}

func (p *Products) Create(_ context.Context, product *models.Product) error {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	if product.ID.IsZero() {
		product.ID = primitive.NewObjectID()
	}
	if product.Reviews == nil {
		product.Reviews = []models.Review{}
	}
	p.s.products[product.ID] = cloneProduct(*product)
	return nil
}

// Put overwrites a stored product, for tests that mutate the catalog.
func (p *Products) Put(product models.Product) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	p.s.products[product.ID] = cloneProduct(product)
}

func (p *Products) FindByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	product, ok := p.s.products[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	product = cloneProduct(product)
	return &product, nil
}

func (p *Products) FindByIDs(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*models.Product, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	out := make(map[primitive.ObjectID]*models.Product, len(ids))
	for _, id := range ids {
		if product, ok := p.s.products[id]; ok {
			product = cloneProduct(product)
			out[id] = &product
		}
	}
	return out, nil
}

func (p *Products) filter(keep func(models.Product) bool) []models.Product {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	out := []models.Product{}
	for _, product := range p.s.products {
		if keep(product) {
			out = append(out, cloneProduct(product))
		}
	}
	newestFirst(out, func(p models.Product) time.Time { return p.CreatedAt })
	return out
}

func (p *Products) List(_ context.Context) ([]models.Product, error) {
	return p.filter(func(models.Product) bool { return true }), nil
}

func (p *Products) Search(_ context.Context, query string) ([]models.Product, error) {
	q := strings.ToLower(query)
	return p.filter(func(product models.Product) bool {
		return strings.Contains(strings.ToLower(product.Name), q) ||
			strings.Contains(strings.ToLower(product.Category), q)
	}), nil
}

func (p *Products) ListByCategory(_ context.Context, category string) ([]models.Product, error) {
	return p.filter(func(product models.Product) bool { return product.Category == category }), nil
}

func (p *Products) FirstPerCategory(ctx context.Context) ([]models.Product, error) {
	all, _ := p.List(ctx)
	first := map[string]models.Product{}
	for _, product := range all {
		cur, ok := first[product.Category]
		if !ok || product.CreatedAt.Before(cur.CreatedAt) {
			first[product.Category] = product
		}
	}

	out := make([]models.Product, 0, len(first))
	for _, product := range first {
		out = append(out, product)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out, nil
}

func (p *Products) Trending(_ context.Context, limit int) ([]models.Product, error) {
	out := p.filter(func(product models.Product) bool { return product.IsTrending })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (p *Products) UpdateCategory(_ context.Context, id primitive.ObjectID, category string) (*models.Product, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	product, ok := p.s.products[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	product.Category = category
	product.UpdatedAt = time.Now()
	p.s.products[id] = product
	product = cloneProduct(product)
	return &product, nil
}

func (p *Products) Delete(_ context.Context, id primitive.ObjectID) error {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	if _, ok := p.s.products[id]; !ok {
		return store.ErrNotFound
	}
	delete(p.s.products, id)
	return nil
}

func (p *Products) AppendReview(_ context.Context, productID primitive.ObjectID, review models.Review) error {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	product, ok := p.s.products[productID]
	if !ok {
		return store.ErrNotFound
	}
	if product.ReviewBy(review.UserID) >= 0 {
		return store.ErrDuplicate
	}
	product = cloneProduct(product)
	product.Reviews = append(product.Reviews, review)
	p.putReviews(product)
	return nil
}

func (p *Products) UpdateReview(_ context.Context, productID, reviewID, userID primitive.ObjectID, edit store.ReviewEdit) error {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	product, i, err := p.ownedReview(productID, reviewID, userID)
	if err != nil {
		return err
	}
	if edit.Rating != nil {
		product.Reviews[i].Rating = *edit.Rating
	}
	if edit.Comment != nil {
		product.Reviews[i].Comment = *edit.Comment
	}
	p.putReviews(product)
	return nil
}

func (p *Products) RemoveReview(_ context.Context, productID, reviewID, userID primitive.ObjectID) error {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	product, i, err := p.ownedReview(productID, reviewID, userID)
	if err != nil {
		return err
	}
	product.Reviews = append(product.Reviews[:i], product.Reviews[i+1:]...)
	p.putReviews(product)
	return nil
}

// ownedReview expects the lock held and returns a private copy.
func (p *Products) ownedReview(productID, reviewID, userID primitive.ObjectID) (models.Product, int, error) {
	product, ok := p.s.products[productID]
	if !ok {
		return models.Product{}, 0, store.ErrNotFound
	}
	for i, r := range product.Reviews {
		if r.ID == reviewID && r.UserID == userID {
			return cloneProduct(product), i, nil
		}
	}
	return models.Product{}, 0, store.ErrNotFound
}

func (p *Products) putReviews(product models.Product) {
	product.AverageRating = models.AverageRating(product.Reviews)
	product.UpdatedAt = time.Now()
	p.s.products[product.ID] = product
}

func (p *Products) CountByCategory(ctx context.Context) ([]models.CategoryCount, error) {
	all, _ := p.List(ctx)
	counts := map[string]int{}
	for _, product := range all {
		counts[product.Category]++
	}

	out := []models.CategoryCount{}
	for category, n := range counts {
		out = append(out, models.CategoryCount{Category: category, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out, nil
}

func (p *Products) Ratings(ctx context.Context) ([]models.ProductRating, error) {
	all, _ := p.List(ctx)
	out := make([]models.ProductRating, 0, len(all))
	for _, product := range all {
		out = append(out, models.ProductRating{ID: product.ID, Name: product.Name, AverageRating: product.AverageRating})
	}
	return out, nil
}

func (p *Products) MonthlyCreated(ctx context.Context) ([]models.MonthlyCount, error) {
	all, _ := p.List(ctx)
	type ym struct{ year, month int }
	counts := map[ym]int{}
	for _, product := range all {
		t := product.CreatedAt.UTC()
		counts[ym{t.Year(), int(t.Month())}]++
	}

	out := []models.MonthlyCount{}
	for k, n := range counts {
		out = append(out, models.MonthlyCount{Year: k.year, Month: k.month, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Month < out[j].Month
	})
	return out, nil
}

func (p *Products) CountBySize(ctx context.Context) ([]models.SizeCount, error) {
	all, _ := p.List(ctx)
	counts := map[string]int{}
	for _, product := range all {
		for _, sp := range product.Sizes {
			counts[sp.Size]++
		}
	}

	out := []models.SizeCount{}
	for size, n := range counts {
		out = append(out, models.SizeCount{Size: size, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Size < out[j].Size })
	return out, nil
}

// Carts

type Carts struct{ s *Stores }

var _ store.CartStore = (*Carts)(nil)

func (c *Carts) FindByUser(_ context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	cart, ok := c.s.carts[userID]
	if !ok {
		return nil, store.ErrNotFound
	}
	cart.Products = append([]models.CartItem{}, cart.Products...)
	return &cart, nil
}

func (c *Carts) Save(_ context.Context, cart *models.Cart) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	stored, ok := c.s.carts[cart.UserID]
	if !ok {
		stored = models.Cart{ID: primitive.NewObjectID(), UserID: cart.UserID}
	}
	stored.Products = append([]models.CartItem{}, cart.Products...)
	stored.Revision++
	stored.UpdatedAt = time.Now()
	c.s.carts[cart.UserID] = stored

	cart.ID = stored.ID
	cart.Revision = stored.Revision
	cart.UpdatedAt = stored.UpdatedAt
	return nil
}

func (c *Carts) Clear(_ context.Context, userID primitive.ObjectID, revision int64) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	cart, ok := c.s.carts[userID]
	if !ok || cart.Revision != revision {
		return store.ErrConflict
	}
	cart.Products = []models.CartItem{}
	cart.Revision++
	cart.UpdatedAt = time.Now()
	c.s.carts[userID] = cart
	return nil
}

// Orders

type Orders struct {
	s *Stores

	// FailCreate, when set, is returned by Create.
	FailCreate error
}

var _ store.OrderStore = (*Orders)(nil)

func (o *Orders) Create(_ context.Context, order *models.Order) error {
	o.s.mu.Lock()
	defer o.s.mu.Unlock()

	if o.FailCreate != nil {
		return o.FailCreate
	}
	for _, existing := range o.s.orders {
		if existing.UserID == order.UserID && existing.CartRevision == order.CartRevision {
			return store.ErrDuplicate
		}
	}
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	stored := *order
	stored.User = nil
	stored.Products = append([]models.OrderItem{}, order.Products...)
	o.s.orders[order.ID] = stored
	return nil
}

func (o *Orders) FindByID(_ context.Context, id primitive.ObjectID) (*models.Order, error) {
	o.s.mu.Lock()
	defer o.s.mu.Unlock()

	order, ok := o.s.orders[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &order, nil
}

func (o *Orders) FindByCartRevision(_ context.Context, userID primitive.ObjectID, revision int64) (*models.Order, error) {
	o.s.mu.Lock()
	defer o.s.mu.Unlock()

	for _, order := range o.s.orders {
		if order.UserID == userID && order.CartRevision == revision {
			return &order, nil
		}
	}
	return nil, store.ErrNotFound
}

func (o *Orders) list(keep func(models.Order) bool, join bool) []models.Order {
	o.s.mu.Lock()
	defer o.s.mu.Unlock()

	out := []models.Order{}
	for _, order := range o.s.orders {
		if !keep(order) {
			continue
		}
		if join {
			order.User = o.s.summary(order.UserID)
		}
		out = append(out, order)
	}
	newestFirst(out, func(o models.Order) time.Time { return o.CreatedAt })
	return out
}

func (o *Orders) ListByUser(_ context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	return o.list(func(order models.Order) bool { return order.UserID == userID }, false), nil
}

func (o *Orders) ListAll(_ context.Context) ([]models.Order, error) {
	return o.list(func(models.Order) bool { return true }, true), nil
}

func (o *Orders) UpdateStatus(_ context.Context, id primitive.ObjectID, status string) (*models.Order, error) {
	o.s.mu.Lock()
	defer o.s.mu.Unlock()

	order, ok := o.s.orders[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	order.Status = status
	order.UpdatedAt = time.Now()
	o.s.orders[id] = order
	return &order, nil
}

func (o *Orders) Delete(_ context.Context, id primitive.ObjectID) error {
	o.s.mu.Lock()
	defer o.s.mu.Unlock()

	if _, ok := o.s.orders[id]; !ok {
		return store.ErrNotFound
	}
	delete(o.s.orders, id)
	return nil
}

func (o *Orders) DeleteAll(_ context.Context) (int64, error) {
	o.s.mu.Lock()
	defer o.s.mu.Unlock()

	n := int64(len(o.s.orders))
	o.s.orders = map[primitive.ObjectID]models.Order{}
	return n, nil
}

// Wishlists

type Wishlists struct{ s *Stores }

var _ store.WishlistStore = (*Wishlists)(nil)

func (w *Wishlists) FindByUser(_ context.Context, userID primitive.ObjectID) (*models.Wishlist, error) {
	w.s.mu.Lock()
	defer w.s.mu.Unlock()

	list, ok := w.s.wishlists[userID]
	if !ok {
		return nil, store.ErrNotFound
	}
	list.ProductIDs = append([]primitive.ObjectID{}, list.ProductIDs...)
	return &list, nil
}

func (w *Wishlists) Add(_ context.Context, userID, productID primitive.ObjectID) error {
	w.s.mu.Lock()
	defer w.s.mu.Unlock()

	list, ok := w.s.wishlists[userID]
	if !ok {
		list = models.Wishlist{ID: primitive.NewObjectID(), UserID: userID}
	}
	for _, id := range list.ProductIDs {
		if id == productID {
			return nil
		}
	}
	list.ProductIDs = append(list.ProductIDs, productID)
	w.s.wishlists[userID] = list
	return nil
}

func (w *Wishlists) Remove(_ context.Context, userID, productID primitive.ObjectID) error {
	w.s.mu.Lock()
	defer w.s.mu.Unlock()

	list, ok := w.s.wishlists[userID]
	if !ok {
		return store.ErrNotFound
	}
	kept := list.ProductIDs[:0:0]
	for _, id := range list.ProductIDs {
		if id != productID {
			kept = append(kept, id)
		}
	}
	list.ProductIDs = kept
	w.s.wishlists[userID] = list
	return nil
}

// Contacts

type Contacts struct{ s *Stores }

var _ store.ContactStore = (*Contacts)(nil)

func (c *Contacts) Create(_ context.Context, contact *models.Contact) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	if contact.ID.IsZero() {
		contact.ID = primitive.NewObjectID()
	}
	stored := *contact
	stored.User = nil
	c.s.contacts[contact.ID] = stored
	return nil
}

func (c *Contacts) List(_ context.Context) ([]models.Contact, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	out := []models.Contact{}
	for _, contact := range c.s.contacts {
		contact.User = c.s.summary(contact.UserID)
		out = append(out, contact)
	}
	newestFirst(out, func(c models.Contact) time.Time { return c.CreatedAt })
	return out, nil
}

func (c *Contacts) Delete(_ context.Context, id primitive.ObjectID) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	if _, ok := c.s.contacts[id]; !ok {
		return store.ErrNotFound
	}
	delete(c.s.contacts, id)
	return nil
}

func (c *Contacts) DeleteAll(_ context.Context) (int64, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	n := int64(len(c.s.contacts))
	c.s.contacts = map[primitive.ObjectID]models.Contact{}
	return n, nil
}

// Testimonials

type Testimonials struct{ s *Stores }

var _ store.TestimonialStore = (*Testimonials)(nil)

func (t *Testimonials) Create(_ context.Context, tm *models.Testimonial) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	if tm.ID.IsZero() {
		tm.ID = primitive.NewObjectID()
	}
	stored := *tm
	stored.User = nil
	t.s.testimonials[tm.ID] = stored
	return nil
}

func (t *Testimonials) FindByID(_ context.Context, id primitive.ObjectID) (*models.Testimonial, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	tm, ok := t.s.testimonials[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &tm, nil
}

func (t *Testimonials) List(_ context.Context) ([]models.Testimonial, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	out := []models.Testimonial{}
	for _, tm := range t.s.testimonials {
		tm.User = t.s.summary(tm.UserID)
		out = append(out, tm)
	}
	newestFirst(out, func(t models.Testimonial) time.Time { return t.CreatedAt })
	return out, nil
}

func (t *Testimonials) Update(_ context.Context, tm *models.Testimonial) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	stored, ok := t.s.testimonials[tm.ID]
	if !ok {
		return store.ErrNotFound
	}
	tm.UpdatedAt = time.Now()
	stored.Comment = tm.Comment
	stored.Rating = tm.Rating
	stored.UpdatedAt = tm.UpdatedAt
	t.s.testimonials[tm.ID] = stored
	return nil
}

func (t *Testimonials) Delete(_ context.Context, id primitive.ObjectID) (*models.Testimonial, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	tm, ok := t.s.testimonials[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	delete(t.s.testimonials, id)
	return &tm, nil
}

func (t *Testimonials) DeleteAll(_ context.Context) (int64, error) {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	n := int64(len(t.s.testimonials))
	t.s.testimonials = map[primitive.ObjectID]models.Testimonial{}
	return n, nil
}
