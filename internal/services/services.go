package services

import (
	"context"

	"github.com/adanyl0v/go-kanban/internal/models"
)

type AuthService interface {
	// Register creates a user with the given email, name and
	// password.
	//
	// The email is lowercased before storage and lookup. When
	// the name is empty it defaults to the local part of the
	// email. It fails with the conflict kind if a user with
	// the same email already exists.
	Register(ctx context.Context, params RegisterParams) (*models.User, error)

	// Login authenticates the user by email and password and
	// returns a signed access token carrying the user id.
	//
	// Unknown emails and wrong passwords both fail with the
	// same unauthenticated error, so a caller cannot probe
	// which emails are registered.
	Login(ctx context.Context, email, password string) (string, error)

	// VerifyToken parses and validates an access token and
	// returns the user id it was issued for.
	VerifyToken(token string) (string, error)

	// GetUser returns the user with the given id.
	GetUser(ctx context.Context, userID string) (*models.User, error)
}

// Authorizer resolves the ownership chain for a resource and
// decides whether the acting user may touch it. Existence is
// checked before ownership at every level: a broken chain is
// the not-found kind, an intact chain owned by someone else is
// the forbidden kind. Read-only, no side effects.
type Authorizer interface {
	AuthorizeBoard(ctx context.Context, userID, boardID string) (*models.Board, error)

	// AuthorizeTask walks task -> column -> board -> owner and
	// returns every link of the resolved chain.
	AuthorizeTask(ctx context.Context, userID, taskID string) (*TaskAccess, error)
}

// TaskAccess is the resolved ownership chain of a task.
type TaskAccess struct {
	Task   *models.Task
	Column *models.Column
	Board  *models.Board
}

type BoardService interface {
	// ListBoards returns all boards owned by the user, each
	// with nested columns and tasks, in creation order.
	ListBoards(ctx context.Context, userID string) ([]models.BoardTree, error)

	CreateBoard(ctx context.Context, userID, name string) (*models.Board, error)

	GetBoard(ctx context.Context, userID, boardID string) (*models.BoardTree, error)

	CreateColumn(ctx context.Context, userID, boardID, title string) (*models.Column, error)

	// CreateTask creates a task under the given column. The
	// column must belong to the given board; a column that
	// exists under a different board fails with the not-found
	// kind so tasks cannot be injected across boards.
	CreateTask(ctx context.Context, params CreateTaskParams) (*models.Task, error)

	// UpdateTask moves a task to another column of the same
	// board, changes its status, or both. A target column
	// outside the authorized board fails with the not-found
	// kind, indistinguishable from a column that does not
	// exist.
	UpdateTask(ctx context.Context, params UpdateTaskParams) (*models.Task, error)

	DeleteTask(ctx context.Context, userID, taskID string) error
}

type RegisterParams struct {
	Email    string
	Name     string
	Password string
}

type CreateTaskParams struct {
	UserID   string
	BoardID  string
	ColumnID string
	Title    string
	Status   string
}

type UpdateTaskParams struct {
	UserID string
	TaskID string
	// Nil means "leave unchanged".
	ColumnID *string
	Status   *string
}
