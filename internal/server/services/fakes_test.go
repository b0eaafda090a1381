package services

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/mkropacheva/storefront/internal/common"
	"github.com/mkropacheva/storefront/internal/dbx"
	"github.com/mkropacheva/storefront/internal/server/config"
	"github.com/mkropacheva/storefront/internal/server/models"
	accountsrepo "github.com/mkropacheva/storefront/internal/server/repositories/accounts"
	productsrepo "github.com/mkropacheva/storefront/internal/server/repositories/products"
)

// --- shared test fixtures for the services package ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.SecretKey = "test-secret"
	cfg.TokenValidityDuration = time.Hour
	cfg.BcryptCost = 4 // keep the tests fast
	return cfg
}

// fakeAccountsRepo is an in-memory accounts.Repository keyed by email.
type fakeAccountsRepo struct {
	byEmail map[string]*models.Account
	byID    map[string]*models.Account

	createErr error
	getErr    error
	updateErr error
	nextID    int
}

func newFakeAccountsRepo() *fakeAccountsRepo {
	return &fakeAccountsRepo{
		byEmail: map[string]*models.Account{},
		byID:    map[string]*models.Account{},
	}
}

func (f *fakeAccountsRepo) Create(ctx context.Context, a *models.Account) (*models.Account, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if _, ok := f.byEmail[a.Email]; ok {
		return nil, common.ErrorAlreadyExists
	}
	f.nextID++
	a.ID = fmt.Sprintf("acc-%d", f.nextID)
	a.CreatedAt = time.Now()
	f.byEmail[a.Email] = a
	f.byID[a.ID] = a
	return a, nil
}

func (f *fakeAccountsRepo) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	a, ok := f.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return a, nil
}

func (f *fakeAccountsRepo) GetByID(ctx context.Context, id string) (*models.Account, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	a, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return a, nil
}

func (f *fakeAccountsRepo) List(ctx context.Context) ([]*models.Account, error) {
	var out []*models.Account
	for _, a := range f.byID {
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeAccountsRepo) Update(ctx context.Context, a *models.Account) (*models.Account, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	if _, ok := f.byID[a.ID]; !ok {
		return nil, common.ErrorNotFound
	}
	f.byID[a.ID] = a
	f.byEmail[a.Email] = a
	return a, nil
}

func (f *fakeAccountsRepo) Delete(ctx context.Context, id string) error {
	a, ok := f.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	delete(f.byID, id)
	delete(f.byEmail, a.Email)
	return nil
}

// fakeProductsRepo is an in-memory products.Repository.
type fakeProductsRepo struct {
	byID map[string]*models.Product

	createErr error
	updateErr error
	nextID    int
}

func newFakeProductsRepo() *fakeProductsRepo {
	return &fakeProductsRepo{byID: map[string]*models.Product{}}
}

func (f *fakeProductsRepo) Create(ctx context.Context, p *models.Product) (*models.Product, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	p.ID = fmt.Sprintf("p-%d", f.nextID)
	p.CreatedAt = time.Now()
	f.byID[p.ID] = p
	return p, nil
}

func (f *fakeProductsRepo) GetByID(ctx context.Context, id string) (*models.Product, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return p, nil
}

func (f *fakeProductsRepo) List(ctx context.Context) ([]*models.Product, error) {
	var out []*models.Product
	for _, p := range f.byID {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProductsRepo) Update(ctx context.Context, p *models.Product) (*models.Product, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	if _, ok := f.byID[p.ID]; !ok {
		return nil, common.ErrorNotFound
	}
	f.byID[p.ID] = p
	return p, nil
}

func (f *fakeProductsRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.byID, id)
	return nil
}

// fakeRepoManager vends the fakes above regardless of the handle.
type fakeRepoManager struct {
	accounts *fakeAccountsRepo
	products *fakeProductsRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *fakeRepoManager) Accounts(db dbx.DBTX) accountsrepo.Repository { return m.accounts }

func (m *fakeRepoManager) Products(db dbx.DBTX) productsrepo.Repository { return m.products }
