package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-kanban/internal/models"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx, so the
// same queries run inside and outside a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type postgresRepository struct {
	logger zerolog.Logger
	pgPool *pgxpool.Pool
	db     querier
}

func NewPostgres(logger zerolog.Logger, pgPool *pgxpool.Pool) Repository {
	return &postgresRepository{
		logger: logger,
		pgPool: pgPool,
		db:     pgPool,
	}
}

func (r *postgresRepository) WithTx(ctx context.Context, fn func(Repository) error) error {
	tx, err := r.pgPool.Begin(ctx)
	if err != nil {
		r.logger.Error().
			Err(err).
			Msg("failed to begin transaction")
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	txRepo := &postgresRepository{
		logger: r.logger,
		pgPool: r.pgPool,
		db:     tx,
	}
	err = fn(txRepo)
	if err != nil {
		return err
	}

	err = tx.Commit(ctx)
	if err != nil {
		r.logger.Error().
			Err(err).
			Msg("failed to commit transaction")
		return err
	}
	return nil
}

func (r *postgresRepository) CreateUser(ctx context.Context, user *models.User) error {
	const insertUserQuery = `
INSERT INTO users (id,
                   email,
                   name,
                   password,
                   created_at)
VALUES ($1, $2, $3, $4, $5)
`
	_, err := r.db.Exec(
		ctx,
		insertUserQuery,
		user.ID,
		user.Email,
		user.Name,
		user.Password,
		user.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrDuplicate
		}

		r.logger.Error().
			Err(err).
			Msg("failed to insert user")
		return err
	}
	r.logger.Debug().
		Str("user_id", user.ID).
		Msg("inserted user")
	return nil
}

func (r *postgresRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	const selectUserByIDQuery = `
SELECT email,
       name,
       password,
       created_at
FROM users
WHERE id = $1
`
	user := &models.User{ID: id}
	err := r.db.QueryRow(
		ctx,
		selectUserByIDQuery,
		user.ID,
	).Scan(
		&user.Email,
		&user.Name,
		&user.Password,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}

		r.logger.Error().
			Err(err).
			Str("user_id", id).
			Msg("failed to select user by id")
		return nil, err
	}
	return user, nil
}

func (r *postgresRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const selectUserByEmailQuery = `
SELECT id,
       name,
       password,
       created_at
FROM users
WHERE email = $1
`
	user := &models.User{Email: email}
	err := r.db.QueryRow(
		ctx,
		selectUserByEmailQuery,
		user.Email,
	).Scan(
		&user.ID,
		&user.Name,
		&user.Password,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}

		r.logger.Error().
			Err(err).
			Msg("failed to select user by email")
		return nil, err
	}
	return user, nil
}

func (r *postgresRepository) CreateBoard(ctx context.Context, board *models.Board) error {
	const insertBoardQuery = `
INSERT INTO boards (id,
                    name,
                    owner_id,
                    created_at)
VALUES ($1, $2, $3, $4)
`
	_, err := r.db.Exec(
		ctx,
		insertBoardQuery,
		board.ID,
		board.Name,
		board.OwnerID,
		board.CreatedAt,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Msg("failed to insert board")
		return err
	}
	r.logger.Debug().
		Str("board_id", board.ID).
		Msg("inserted board")
	return nil
}

func (r *postgresRepository) GetBoard(ctx context.Context, id string) (*models.Board, error) {
	const selectBoardByIDQuery = `
SELECT name,
       owner_id,
       created_at
FROM boards
WHERE id = $1
`
	board := &models.Board{ID: id}
	err := r.db.QueryRow(
		ctx,
		selectBoardByIDQuery,
		board.ID,
	).Scan(
		&board.Name,
		&board.OwnerID,
		&board.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}

		r.logger.Error().
			Err(err).
			Str("board_id", id).
			Msg("failed to select board by id")
		return nil, err
	}
	return board, nil
}

func (r *postgresRepository) ListBoardsByOwner(ctx context.Context, ownerID string) ([]models.Board, error) {
	// UUIDv7 ids are time-ordered, so the id tiebreak keeps
	// insertion order for rows sharing a timestamp.
	const selectBoardsByOwnerQuery = `
SELECT id,
       name,
       created_at
FROM boards
WHERE owner_id = $1
ORDER BY created_at, id
`
	rows, err := r.db.Query(
		ctx,
		selectBoardsByOwnerQuery,
		ownerID,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Msg("failed to select boards by owner")
		return nil, err
	}
	defer rows.Close()

	boards := make([]models.Board, 0)
	for rows.Next() {
		board := models.Board{OwnerID: ownerID}
		err = rows.Scan(
			&board.ID,
			&board.Name,
			&board.CreatedAt,
		)
		if err != nil {
			r.logger.Error().
				Err(err).
				Msg("failed to scan board")
			return nil, err
		}
		boards = append(boards, board)
	}

	err = rows.Err()
	if err != nil {
		r.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, err
	}
	return boards, nil
}

func (r *postgresRepository) CreateColumn(ctx context.Context, column *models.Column) error {
	const insertColumnQuery = `
INSERT INTO columns (id,
                     title,
                     board_id,
                     created_at)
VALUES ($1, $2, $3, $4)
`
	_, err := r.db.Exec(
		ctx,
		insertColumnQuery,
		column.ID,
		column.Title,
		column.BoardID,
		column.CreatedAt,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Msg("failed to insert column")
		return err
	}
	r.logger.Debug().
		Str("column_id", column.ID).
		Msg("inserted column")
	return nil
}

func (r *postgresRepository) GetColumn(ctx context.Context, id string) (*models.Column, error) {
	const selectColumnByIDQuery = `
SELECT title,
       board_id,
       created_at
FROM columns
WHERE id = $1
`
	column := &models.Column{ID: id}
	err := r.db.QueryRow(
		ctx,
		selectColumnByIDQuery,
		column.ID,
	).Scan(
		&column.Title,
		&column.BoardID,
		&column.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}

		r.logger.Error().
			Err(err).
			Str("column_id", id).
			Msg("failed to select column by id")
		return nil, err
	}
	return column, nil
}

func (r *postgresRepository) ListColumnsByBoard(ctx context.Context, boardID string) ([]models.Column, error) {
	const selectColumnsByBoardQuery = `
SELECT id,
       title,
       created_at
FROM columns
WHERE board_id = $1
ORDER BY created_at, id
`
	rows, err := r.db.Query(
		ctx,
		selectColumnsByBoardQuery,
		boardID,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Msg("failed to select columns by board")
		return nil, err
	}
	defer rows.Close()

	columns := make([]models.Column, 0)
	for rows.Next() {
		column := models.Column{BoardID: boardID}
		err = rows.Scan(
			&column.ID,
			&column.Title,
			&column.CreatedAt,
		)
		if err != nil {
			r.logger.Error().
				Err(err).
				Msg("failed to scan column")
			return nil, err
		}
		columns = append(columns, column)
	}

	err = rows.Err()
	if err != nil {
		r.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, err
	}
	return columns, nil
}

func (r *postgresRepository) CreateTask(ctx context.Context, task *models.Task) error {
	const insertTaskQuery = `
INSERT INTO tasks (id,
                   title,
                   status,
                   column_id,
                   created_at,
                   updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
`
	_, err := r.db.Exec(
		ctx,
		insertTaskQuery,
		task.ID,
		task.Title,
		task.Status,
		task.ColumnID,
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Msg("failed to insert task")
		return err
	}
	r.logger.Debug().
		Str("task_id", task.ID).
		Msg("inserted task")
	return nil
}

func (r *postgresRepository) GetTask(ctx context.Context, id string) (*models.Task, error) {
	const selectTaskByIDQuery = `
SELECT title,
       status,
       column_id,
       created_at,
       updated_at
FROM tasks
WHERE id = $1
`
	task := &models.Task{ID: id}
	err := r.db.QueryRow(
		ctx,
		selectTaskByIDQuery,
		task.ID,
	).Scan(
		&task.Title,
		&task.Status,
		&task.ColumnID,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}

		r.logger.Error().
			Err(err).
			Str("task_id", id).
			Msg("failed to select task by id")
		return nil, err
	}
	return task, nil
}

func (r *postgresRepository) UpdateTask(ctx context.Context, task *models.Task) error {
	const updateTaskQuery = `
UPDATE tasks
SET status = $1,
    column_id = $2,
    updated_at = $3
WHERE id = $4
`
	tag, err := r.db.Exec(
		ctx,
		updateTaskQuery,
		task.Status,
		task.ColumnID,
		task.UpdatedAt,
		task.ID,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("task_id", task.ID).
			Msg("failed to update task")
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	r.logger.Debug().
		Str("task_id", task.ID).
		Msg("updated task")
	return nil
}

func (r *postgresRepository) DeleteTask(ctx context.Context, id string) error {
	const deleteTaskQuery = `
DELETE FROM tasks
WHERE id = $1
`
	tag, err := r.db.Exec(
		ctx,
		deleteTaskQuery,
		id,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("task_id", id).
			Msg("failed to delete task")
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	r.logger.Debug().
		Str("task_id", id).
		Msg("deleted task")
	return nil
}

func (r *postgresRepository) ListTasksByColumn(ctx context.Context, columnID string) ([]models.Task, error) {
	const selectTasksByColumnQuery = `
SELECT id,
       title,
       status,
       created_at,
       updated_at
FROM tasks
WHERE column_id = $1
ORDER BY created_at, id
`
	rows, err := r.db.Query(
		ctx,
		selectTasksByColumnQuery,
		columnID,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Msg("failed to select tasks by column")
		return nil, err
	}
	defer rows.Close()

	tasks := make([]models.Task, 0)
	for rows.Next() {
		task := models.Task{ColumnID: columnID}
		err = rows.Scan(
			&task.ID,
			&task.Title,
			&task.Status,
			&task.CreatedAt,
			&task.UpdatedAt,
		)
		if err != nil {
			r.logger.Error().
				Err(err).
				Msg("failed to scan task")
			return nil, err
		}
		tasks = append(tasks, task)
	}

	err = rows.Err()
	if err != nil {
		r.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, err
	}
	return tasks, nil
}
