package account

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"jobboard/internal/core/domain/account"
	c "jobboard/internal/core/domain/common"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgtype"
	"github.com/jackc/pgtype/pgxtype"
	"github.com/jackc/pgx/v4"
)

const PG_UNIQUE_CONSTRAINT_ERR_CODE = "23505"
const EMAIL_CONSTRAINT_NAME = "account_email_idx"

const accountColumns = `id, email, source, password_hash, created_at,
	email_verified_at, verification_token, reset_token, reset_token_expires_at`

type PgxRepository struct {
	db pgxtype.Querier
}

func NewPgxRepository(db pgxtype.Querier) *PgxRepository {
	if db == nil {
		panic("Argument db must not be nil.")
	}
	return &PgxRepository{db: db}
}

func (r *PgxRepository) Create(
	ctx context.Context,
	input account.CreateAccountInput,
) (a account.Account, err error) {
	row := r.db.QueryRow(
		ctx,
		`INSERT INTO account (email, source, password_hash, created_at, email_verified_at, verification_token)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+accountColumns,
		string(input.Email),
		string(input.Source),
		encodePasswordHash(input.PasswordHash),
		input.CreatedAt,
		encodeOptionalTime(input.EmailVerifiedAt),
		encodeVerificationToken(input.VerificationToken),
	)
	a, err = scanAccount(row)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == PG_UNIQUE_CONSTRAINT_ERR_CODE && pgErr.ConstraintName == EMAIL_CONSTRAINT_NAME {
			return a, account.ErrEmailAlreadyExists
		}
	}
	if err != nil {
		return a, err
	}
	if err := a.Validate(); err != nil {
		return a, err
	}
	return a, nil
}

func (r *PgxRepository) GetByEmail(ctx context.Context, email c.Email) (a account.Account, err error) {
	row := r.db.QueryRow(
		ctx,
		`SELECT `+accountColumns+` FROM account WHERE email = $1`,
		string(email),
	)
	a, err = scanAccount(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return a, account.ErrAccountDoesNotExist
	}
	if err != nil {
		return a, err
	}
	return a, nil
}

func (r *PgxRepository) GetByValidResetToken(
	ctx context.Context,
	token account.ResetToken,
	now time.Time,
) (a account.Account, err error) {
	row := r.db.QueryRow(
		ctx,
		`SELECT `+accountColumns+` FROM account
		 WHERE reset_token = $1 AND reset_token_expires_at > $2`,
		string(token),
		now,
	)
	a, err = scanAccount(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return a, account.ErrAccountDoesNotExist
	}
	if err != nil {
		return a, err
	}
	return a, nil
}

func (r *PgxRepository) SetResetToken(ctx context.Context, input account.SetResetTokenInput) error {
	commandTag, err := r.db.Exec(
		ctx,
		`UPDATE account SET reset_token = $2, reset_token_expires_at = $3 WHERE id = $1`,
		int64(input.AccountID),
		string(input.Token),
		input.ExpiresAt,
	)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return account.ErrAccountDoesNotExist
	}
	return nil
}

// ConsumeResetToken relies on the single UPDATE being atomic: the token and
// expiry conditions are evaluated under the row lock at write time, so a
// racing consumer observes either the still-live token or the cleared one,
// never an intermediate state.
func (r *PgxRepository) ConsumeResetToken(
	ctx context.Context,
	input account.ConsumeResetTokenInput,
) (applied bool, err error) {
	commandTag, err := r.db.Exec(
		ctx,
		`UPDATE account
		 SET password_hash = $3, reset_token = NULL, reset_token_expires_at = NULL
		 WHERE reset_token = $1 AND reset_token_expires_at > $2`,
		string(input.Token),
		input.Now,
		string(input.NewPasswordHash),
	)
	if err != nil {
		return false, err
	}
	return commandTag.RowsAffected() == 1, nil
}

func (r *PgxRepository) VerifyEmail(
	ctx context.Context,
	token account.VerificationToken,
	at time.Time,
) (a account.Account, err error) {
	row := r.db.QueryRow(
		ctx,
		`UPDATE account
		 SET email_verified_at = $2, verification_token = NULL
		 WHERE verification_token = $1 AND email_verified_at IS NULL
		 RETURNING `+accountColumns,
		string(token),
		at,
	)
	a, err = scanAccount(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return a, account.ErrInvalidVerificationToken
	}
	if err != nil {
		return a, err
	}
	return a, nil
}

func scanAccount(row pgx.Row) (a account.Account, err error) {
	var (
		id                  int64
		email               string
		source              string
		passwordHash        sql.NullString
		createdAt           time.Time
		emailVerifiedAt     pgtype.Timestamptz
		verificationToken   sql.NullString
		resetToken          sql.NullString
		resetTokenExpiresAt pgtype.Timestamptz
	)
	err = row.Scan(
		&id,
		&email,
		&source,
		&passwordHash,
		&createdAt,
		&emailVerifiedAt,
		&verificationToken,
		&resetToken,
		&resetTokenExpiresAt,
	)
	if err != nil {
		return a, err
	}
	return account.Account{
		ID:                  account.ID(id),
		Email:               c.Email(email),
		Source:              account.Source(source),
		PasswordHash:        c.NewOptional(account.PasswordHash(passwordHash.String), passwordHash.Valid),
		CreatedAt:           createdAt,
		EmailVerifiedAt:     decodeTimestamptz(emailVerifiedAt),
		VerificationToken:   c.NewOptional(account.VerificationToken(verificationToken.String), verificationToken.Valid),
		ResetToken:          c.NewOptional(account.ResetToken(resetToken.String), resetToken.Valid),
		ResetTokenExpiresAt: decodeTimestamptz(resetTokenExpiresAt),
	}, nil
}

func encodePasswordHash(ph c.Optional[account.PasswordHash]) sql.NullString {
	return sql.NullString{String: string(ph.Value), Valid: ph.IsPresent}
}

func encodeVerificationToken(token c.Optional[account.VerificationToken]) sql.NullString {
	return sql.NullString{String: string(token.Value), Valid: token.IsPresent}
}

func encodeOptionalTime(at c.Optional[time.Time]) sql.NullTime {
	return sql.NullTime{Time: at.Value, Valid: at.IsPresent}
}

func decodeTimestamptz(ts pgtype.Timestamptz) c.Optional[time.Time] {
	return c.NewOptional(ts.Time, ts.Status == pgtype.Present)
}
