package httpapi

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/mkropacheva/storefront/internal/common"
	"github.com/mkropacheva/storefront/internal/dbx"
	"github.com/mkropacheva/storefront/internal/logging"
	"github.com/mkropacheva/storefront/internal/server/config"
	"github.com/mkropacheva/storefront/internal/server/models"
	accountsrepo "github.com/mkropacheva/storefront/internal/server/repositories/accounts"
	productsrepo "github.com/mkropacheva/storefront/internal/server/repositories/products"
	"github.com/mkropacheva/storefront/internal/server/services"
)

// ---- test logger ----

type nopLogger struct{}

func (nopLogger) Info(context.Context, string, ...any)  {}
func (nopLogger) Warn(context.Context, string, ...any)  {}
func (nopLogger) Error(context.Context, string, ...any) {}
func (nopLogger) With(...any) logging.Logger            { return nopLogger{} }

// ---- in-memory repositories ----

type memAccountsRepo struct {
	byEmail map[string]*models.Account
	byID    map[string]*models.Account
	nextID  int
}

func newMemAccountsRepo() *memAccountsRepo {
	return &memAccountsRepo{byEmail: map[string]*models.Account{}, byID: map[string]*models.Account{}}
}

func (f *memAccountsRepo) Create(ctx context.Context, a *models.Account) (*models.Account, error) {
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

func (f *memAccountsRepo) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	a, ok := f.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return a, nil
}

func (f *memAccountsRepo) GetByID(ctx context.Context, id string) (*models.Account, error) {
	a, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return a, nil
}

func (f *memAccountsRepo) List(ctx context.Context) ([]*models.Account, error) {
	var out []*models.Account
	for _, a := range f.byID {
		out = append(out, a)
	}
	return out, nil
}

func (f *memAccountsRepo) Update(ctx context.Context, a *models.Account) (*models.Account, error) {
	if _, ok := f.byID[a.ID]; !ok {
		return nil, common.ErrorNotFound
	}
	f.byID[a.ID] = a
	f.byEmail[a.Email] = a
	return a, nil
}

func (f *memAccountsRepo) Delete(ctx context.Context, id string) error {
	a, ok := f.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	delete(f.byID, id)
	delete(f.byEmail, a.Email)
	return nil
}

type memProductsRepo struct {
	byID   map[string]*models.Product
	nextID int
}

func newMemProductsRepo() *memProductsRepo {
	return &memProductsRepo{byID: map[string]*models.Product{}}
}

func (f *memProductsRepo) Create(ctx context.Context, p *models.Product) (*models.Product, error) {
	f.nextID++
	p.ID = fmt.Sprintf("p-%d", f.nextID)
	p.CreatedAt = time.Now()
	f.byID[p.ID] = p
	return p, nil
}

func (f *memProductsRepo) GetByID(ctx context.Context, id string) (*models.Product, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return p, nil
}

func (f *memProductsRepo) List(ctx context.Context) ([]*models.Product, error) {
	var out []*models.Product
	for _, p := range f.byID {
		out = append(out, p)
	}
	return out, nil
}

func (f *memProductsRepo) Update(ctx context.Context, p *models.Product) (*models.Product, error) {
	if _, ok := f.byID[p.ID]; !ok {
		return nil, common.ErrorNotFound
	}
	f.byID[p.ID] = p
	return p, nil
}

func (f *memProductsRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.byID, id)
	return nil
}

type memRepoManager struct {
	accounts *memAccountsRepo
	products *memProductsRepo
}

func (m *memRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *memRepoManager) Accounts(db dbx.DBTX) accountsrepo.Repository { return m.accounts }

func (m *memRepoManager) Products(db dbx.DBTX) productsrepo.Repository { return m.products }

// ---- server fixture ----

const testSecret = "test-secret"

func newTestServer(t *testing.T) (*Server, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.SecretKey = testSecret
	cfg.TokenValidityDuration = time.Hour
	cfg.BcryptCost = 4

	rm := &memRepoManager{accounts: newMemAccountsRepo(), products: newMemProductsRepo()}
	as := services.NewAccountService(db, rm, cfg)
	ps := services.NewProductService(db, rm, cfg)

	return NewServer(":0", nopLogger{}, as, ps, cfg.SecretKey), mock, func() { db.Close() }
}
