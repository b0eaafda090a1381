// Package repomanager vends repository implementations bound to a database
// handle and owns schema migrations.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/mkropacheva/storefront/internal/dbx"
	"github.com/mkropacheva/storefront/internal/server/repositories/accounts"
	"github.com/mkropacheva/storefront/internal/server/repositories/products"
)

// RepositoryManager abstracts repository construction so services can run
// the same code against *sql.DB or a transaction, and tests can substitute
// fakes.
type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Accounts(db dbx.DBTX) accounts.Repository
	Products(db dbx.DBTX) products.Repository
}
