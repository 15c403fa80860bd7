package users

import (
	"context"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel/attribute"

	"github.com/lcsouza2/fittude-data-repo/internal/db"
	"github.com/lcsouza2/fittude-data-repo/internal/store"
	"github.com/lcsouza2/fittude-data-repo/internal/telemetry/tracing"
)

const userEntity = "user"

const (
	insertUserSQL = `
		INSERT INTO users (email, name, password)
		VALUES ($1, $2, $3)
		RETURNING user_id
	`
	updateUserPasswordSQL = `
		UPDATE users
		SET password = $1
		WHERE email = $2
		RETURNING user_id
	`
	getUserByEmailSQL = `
		SELECT user_id, email, name, password
		FROM users
		WHERE email = $1
	`
	getUserByIDSQL = `
		SELECT user_id, email, name, password
		FROM users
		WHERE user_id = $1
	`
)

type Repo struct {
	db db.Querier
}

func NewRepo(db db.Querier) *Repo {
	return &Repo{
		db: db,
	}
}

func scanUser(row pgx.Row) (User, error) {
	var user User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.PasswordHash,
	)
	return user, err
}

// Create stores a user with an already hashed password. A taken email is
// a conflict.
func (r *Repo) Create(ctx context.Context, params CreateParams) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var id int
	err = r.db.QueryRow(
		ctx,
		insertUserSQL,
		params.Email,
		params.Name,
		params.PasswordHash,
	).Scan(&id)
	if err != nil {
		return 0, store.Translate(store.OpCreate, userEntity, err)
	}
	return id, nil
}

func (r *Repo) UpdatePassword(ctx context.Context, email, passwordHash string) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.update_password")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var id int
	if err := r.db.QueryRow(ctx, updateUserPasswordSQL, passwordHash, email).Scan(&id); err != nil {
		return 0, store.Translate(store.OpUpdate, userEntity, err)
	}
	span.SetAttributes(attribute.Int("user.id", id))
	return id, nil
}

func (r *Repo) GetByID(ctx context.Context, id int) (_ User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("user.id", id))

	user, err := scanUser(r.db.QueryRow(ctx, getUserByIDSQL, id))
	if err != nil {
		return User{}, store.Translate(store.OpRead, userEntity, err)
	}
	return user, nil
}

func (r *Repo) GetByEmail(ctx context.Context, email string) (_ User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.get_by_email")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	user, err := scanUser(r.db.QueryRow(ctx, getUserByEmailSQL, email))
	if err != nil {
		return User{}, store.Translate(store.OpRead, userEntity, err)
	}
	return user, nil
}
