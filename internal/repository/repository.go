package repository

import (
	"context"
	"errors"

	"github.com/adanyl0v/go-kanban/internal/models"
)

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when an insert violates a
	// unique constraint, e.g. a user email.
	ErrDuplicate = errors.New("duplicate")
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

type BoardRepository interface {
	CreateBoard(ctx context.Context, board *models.Board) error
	GetBoard(ctx context.Context, id string) (*models.Board, error)
	ListBoardsByOwner(ctx context.Context, ownerID string) ([]models.Board, error)
}

type ColumnRepository interface {
	CreateColumn(ctx context.Context, column *models.Column) error
	GetColumn(ctx context.Context, id string) (*models.Column, error)
	ListColumnsByBoard(ctx context.Context, boardID string) ([]models.Column, error)
}

type TaskRepository interface {
	CreateTask(ctx context.Context, task *models.Task) error
	GetTask(ctx context.Context, id string) (*models.Task, error)
	UpdateTask(ctx context.Context, task *models.Task) error
	DeleteTask(ctx context.Context, id string) error
	ListTasksByColumn(ctx context.Context, columnID string) ([]models.Task, error)
}

// Repository is the persistence boundary. WithTx runs fn against a
// repository scoped to a single transaction, committing when fn
// returns nil and rolling back otherwise.
type Repository interface {
	UserRepository
	BoardRepository
	ColumnRepository
	TaskRepository

	WithTx(ctx context.Context, fn func(Repository) error) error
}
