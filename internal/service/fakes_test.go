package service_test

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dukasmart/partspos/internal/model"
	"github.com/dukasmart/partspos/internal/repository"
	"github.com/dukasmart/partspos/internal/storage/db"
)

// fakeDB satisfies db.DB for services under test. Repositories used in
// tests are in-memory, so the raw query methods are never reached.
type fakeDB struct{}

func (fakeDB) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (fakeDB) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, nil
}

func (fakeDB) QueryRow(context.Context, string, ...any) pgx.Row {
	return nil
}

func (fakeDB) CopyFrom(context.Context, pgx.Identifier, []string, pgx.CopyFromSource) (int64, error) {
	return 0, nil
}

func (fakeDB) SendBatch(context.Context, *pgx.Batch) pgx.BatchResults {
	return nil
}

func (f fakeDB) WithTx(_ context.Context, txFunc func(db.DB) error) error {
	return txFunc(f)
}

type fakeProductRepo struct {
	products map[uuid.UUID]model.Product
}

func newFakeProductRepo(products ...model.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: make(map[uuid.UUID]model.Product)}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) WithDB(db.DB) repository.ProductRepository { return r }

func (r *fakeProductRepo) CreateProduct(_ context.Context, product model.Product) error {
	r.products[product.ID] = product
	return nil
}

func (r *fakeProductRepo) GetProduct(_ context.Context, id uuid.UUID) (model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return model.Product{}, repository.ErrNotFound
	}
	return p, nil
}

func (r *fakeProductRepo) GetProductForUpdate(ctx context.Context, id uuid.UUID) (model.Product, error) {
	return r.GetProduct(ctx, id)
}

func (r *fakeProductRepo) ListProducts(_ context.Context, params repository.ListProductsParams) ([]model.Product, error) {
	matches := func(p model.Product) bool {
		if params.InStockOnly && p.Quantity <= 0 {
			return false
		}
		if params.Category != "" && !strings.EqualFold(p.Category, params.Category) {
			return false
		}
		if params.Type != "" && (p.Type == nil || !strings.EqualFold(*p.Type, params.Type)) {
			return false
		}
		if params.Search != "" {
			needle := strings.ToLower(params.Search)
			hay := strings.ToLower(p.ProductName + " " + p.Category)
			if p.Type != nil {
				hay += " " + strings.ToLower(*p.Type)
			}
			if !strings.Contains(hay, needle) {
				return false
			}
		}
		return true
	}

	out := make([]model.Product, 0)
	for _, p := range r.products {
		if matches(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeProductRepo) ListLowStockProducts(context.Context) ([]model.Product, error) {
	out := make([]model.Product, 0)
	for _, p := range r.products {
		if p.IsLowStock() {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Quantity < out[j].Quantity })
	return out, nil
}

func (r *fakeProductRepo) UpdateProduct(_ context.Context, product model.Product) error {
	if _, ok := r.products[product.ID]; !ok {
		return repository.ErrNotFound
	}
	r.products[product.ID] = product
	return nil
}

func (r *fakeProductRepo) UpdateProductQuantity(_ context.Context, id uuid.UUID, quantity int) error {
	p, ok := r.products[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.Quantity = quantity
	r.products[id] = p
	return nil
}

func (r *fakeProductRepo) DeleteProduct(_ context.Context, id uuid.UUID) error {
	if _, ok := r.products[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

type fakeSaleRepo struct {
	sales map[uuid.UUID]model.Sale
}

func newFakeSaleRepo(sales ...model.Sale) *fakeSaleRepo {
	r := &fakeSaleRepo{sales: make(map[uuid.UUID]model.Sale)}
	for _, s := range sales {
		r.sales[s.ID] = s
	}
	return r
}

func (r *fakeSaleRepo) WithDB(db.DB) repository.SaleRepository { return r }

func (r *fakeSaleRepo) CreateSale(_ context.Context, sale model.Sale) error {
	r.sales[sale.ID] = sale
	return nil
}

func (r *fakeSaleRepo) GetSale(_ context.Context, id uuid.UUID) (model.Sale, error) {
	s, ok := r.sales[id]
	if !ok {
		return model.Sale{}, repository.ErrNotFound
	}
	return s, nil
}

func (r *fakeSaleRepo) ListSalesBetween(_ context.Context, from, to time.Time) ([]model.Sale, error) {
	out := make([]model.Sale, 0)
	for _, s := range r.sales {
		if !s.Date.Before(from) && s.Date.Before(to) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r *fakeSaleRepo) ListAllSales(context.Context) ([]model.Sale, error) {
	out := make([]model.Sale, 0, len(r.sales))
	for _, s := range r.sales {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r *fakeSaleRepo) UpdateSale(_ context.Context, params repository.UpdateSaleParams) error {
	s, ok := r.sales[params.ID]
	if !ok {
		return repository.ErrNotFound
	}
	s.QuantitySold = params.QuantitySold
	s.SalePrice = params.SalePrice
	s.UpdatedAt = time.Now()
	r.sales[params.ID] = s
	return nil
}

func (r *fakeSaleRepo) DeleteSale(_ context.Context, id uuid.UUID) error {
	if _, ok := r.sales[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.sales, id)
	return nil
}

type fakeOutboxRepo struct {
	msgs []repository.CreateOutboxMsgParams
}

func newFakeOutboxRepo() *fakeOutboxRepo { return &fakeOutboxRepo{} }

func (r *fakeOutboxRepo) WithDB(db.DB) repository.OutboxMsgRepository { return r }

func (r *fakeOutboxRepo) CreateOutboxMsg(_ context.Context, params repository.CreateOutboxMsgParams) error {
	r.msgs = append(r.msgs, params)
	return nil
}

func (r *fakeOutboxRepo) ListUnprocessedOutboxMsgs(context.Context, repository.ListUnprocessedOutboxMsgsParams) ([]repository.ListUnprocessedOutboxMsgsResult, error) {
	return nil, nil
}

func (r *fakeOutboxRepo) BulkUpdateOutboxMsgs(context.Context, repository.BulkUpdateOutboxMsgsParams) error {
	return nil
}

func (r *fakeOutboxRepo) topics() []string {
	out := make([]string, 0, len(r.msgs))
	for _, m := range r.msgs {
		out = append(out, m.Topic)
	}
	return out
}

type fakeUserRepo struct {
	users map[uuid.UUID]model.User
}

func newFakeUserRepo(users ...model.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[uuid.UUID]model.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) WithDB(db.DB) repository.UserRepository { return r }

func (r *fakeUserRepo) CreateUser(_ context.Context, user model.User) error {
	for _, u := range r.users {
		if u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetUser(_ context.Context, id uuid.UUID) (model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, repository.ErrNotFound
}

func (r *fakeUserRepo) CountUsers(context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

func (r *fakeUserRepo) ListUsers(context.Context) ([]model.User, error) {
	out := make([]model.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeUserRepo) UpdateUser(_ context.Context, user model.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return repository.ErrNotFound
	}
	for id, u := range r.users {
		if id != user.ID && u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) DeleteUser(_ context.Context, id uuid.UUID) error {
	if _, ok := r.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.users, id)
	return nil
}
