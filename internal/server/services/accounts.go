// Package services contains server-side business logic. This file implements
// AccountService: registration, login (credential verification plus token
// issuance), and account CRUD.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mkropacheva/storefront/internal/common"
	"github.com/mkropacheva/storefront/internal/dbx"
	"github.com/mkropacheva/storefront/internal/server/auth"
	"github.com/mkropacheva/storefront/internal/server/config"
	"github.com/mkropacheva/storefront/internal/server/models"
	"github.com/mkropacheva/storefront/internal/server/repositories/repomanager"
)

// LoginResult bundles the issued access token with the public identity it
// represents.
type LoginResult struct {
	Token    string
	Identity models.Identity
}

// RegisterParams are the caller-supplied fields for account creation.
// Password is transient: it is hashed immediately and never stored.
type RegisterParams struct {
	Email     string
	FirstName string
	LastName  string
	Password  string
}

// UpdateAccountParams carries optional field updates; nil means "leave as is".
type UpdateAccountParams struct {
	Email     *string
	FirstName *string
	LastName  *string
	Password  *string
}

type AccountService struct {
	db            *sql.DB
	repomanager   repomanager.RepositoryManager
	jwtSecret     []byte
	tokenValidity time.Duration
	bcryptCost    int
}

// NewAccountService constructs an AccountService using repositories and
// server config. The signing key is owned by the service from here on;
// nothing else reads it from configuration at request time.
func NewAccountService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *AccountService {
	return &AccountService{
		db:            db,
		repomanager:   m,
		jwtSecret:     []byte(cfg.SecretKey),
		tokenValidity: cfg.TokenValidityDuration,
		bcryptCost:    cfg.BcryptCost,
	}
}

// Login verifies the supplied password against the stored digest and, on
// success, returns a fresh access token. An unknown email yields
// ErrAccountNotFound and a wrong password ErrInvalidCredential; both are
// meant to be collapsed into one generic response at the transport layer.
func (s *AccountService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	repo := s.repomanager.Accounts(s.db)

	account, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrAccountNotFound
		}
		return nil, common.ErrorInternal
	}

	ok, err := auth.VerifyPassword(password, account.PasswordDigest)
	if err != nil {
		return nil, fmt.Errorf("verifying credential: %w", err)
	}
	if !ok {
		return nil, common.ErrInvalidCredential
	}

	identity := models.Identity{AccountID: account.ID, Email: account.Email}
	token, err := auth.IssueToken(identity, s.jwtSecret, s.tokenValidity)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return &LoginResult{Token: token, Identity: identity}, nil
}

// Register hashes the password, persists the new account, and issues an
// access token so the caller is logged in immediately.
func (s *AccountService) Register(ctx context.Context, params RegisterParams) (*models.Account, string, error) {
	digest, err := auth.HashPassword(params.Password, s.bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hashing credential: %w", err)
	}

	account := &models.Account{
		Email:          params.Email,
		FirstName:      params.FirstName,
		LastName:       params.LastName,
		PasswordDigest: digest,
	}

	repo := s.repomanager.Accounts(s.db)
	created, err := repo.Create(ctx, account)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, "", common.ErrorAlreadyExists
		}
		return nil, "", fmt.Errorf("error creating account: %w", err)
	}

	token, err := auth.IssueToken(models.Identity{AccountID: created.ID, Email: created.Email}, s.jwtSecret, s.tokenValidity)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	return created, token, nil
}

// List returns all accounts.
func (s *AccountService) List(ctx context.Context) ([]*models.Account, error) {
	return s.repomanager.Accounts(s.db).List(ctx)
}

// Get returns one account by id.
func (s *AccountService) Get(ctx context.Context, id string) (*models.Account, error) {
	return s.repomanager.Accounts(s.db).GetByID(ctx, id)
}

// Update applies the non-nil fields of params to the account. A new
// password is re-hashed; the stored digest is never writable directly.
// The read-modify-write runs in one transaction so concurrent updates
// cannot overwrite each other's fields.
func (s *AccountService) Update(ctx context.Context, id string, params UpdateAccountParams) (*models.Account, error) {
	var digest string
	if params.Password != nil {
		var err error
		digest, err = auth.HashPassword(*params.Password, s.bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hashing credential: %w", err)
		}
	}

	var updated *models.Account
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Accounts(tx)

		account, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if params.Email != nil {
			account.Email = *params.Email
		}
		if params.FirstName != nil {
			account.FirstName = *params.FirstName
		}
		if params.LastName != nil {
			account.LastName = *params.LastName
		}
		if params.Password != nil {
			account.PasswordDigest = digest
		}

		updated, err = repo.Update(ctx, account)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the account.
func (s *AccountService) Delete(ctx context.Context, id string) error {
	return s.repomanager.Accounts(s.db).Delete(ctx, id)
}
