package repository

import (
	"context"
	"database/sql"

	"github.com/go-sql-driver/mysql"
	"github.com/pkg/errors"

	"github.com/qaforum/qaforum-go/internal/model"
)

const (
	errDuplicateEntry  uint16 = 1062
	errNoReferencedRow uint16 = 1452
)

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrDuplicateEmail  = errors.New("email already exists")
)

// AccountRepository handles account persistence operations.
type AccountRepository struct {
	db *sql.DB
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// Create inserts a new account and sets the generated ID on it.
// account.Password must already hold the encoded hash.
func (r *AccountRepository) Create(ctx context.Context, account *model.Account) error {
	query := `INSERT INTO accounts (email, password) VALUES (?, ?)`

	result, err := r.db.ExecContext(ctx, query, account.Email, account.Password)
	if err != nil {
		if isMySQLError(err, errDuplicateEntry) {
			return ErrDuplicateEmail
		}
		return errors.Wrap(err, "insert account")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return errors.Wrap(err, "read account id")
	}

	account.ID = id
	return nil
}

// GetByEmail retrieves an account by its email address. Emails match
// exactly as stored.
func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*model.Account, error) {
	query := `SELECT id, email, password FROM accounts WHERE email = ?`

	account := &model.Account{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(&account.ID, &account.Email, &account.Password)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, errors.Wrap(err, "select account")
	}

	return account, nil
}

// isMySQLError reports whether err is a server error with the given number.
func isMySQLError(err error, number uint16) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == number
}
