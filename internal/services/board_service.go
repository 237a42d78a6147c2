package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-kanban/internal/models"
	"github.com/adanyl0v/go-kanban/internal/repository"
)

type boardServiceImpl struct {
	logger zerolog.Logger
	repo   repository.Repository
}

func NewBoardService(
	logger zerolog.Logger,
	repo repository.Repository,
) BoardService {
	return &boardServiceImpl{
		logger: logger,
		repo:   repo,
	}
}

// authorizerFor builds the ownership checker against the given
// repository, which inside WithTx is the tx-scoped one.
func (s *boardServiceImpl) authorizerFor(r repository.Repository) Authorizer {
	return NewAuthorizer(s.logger, r)
}

func (s *boardServiceImpl) ListBoards(ctx context.Context, userID string) ([]models.BoardTree, error) {
	boards, err := s.repo.ListBoardsByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	trees := make([]models.BoardTree, 0, len(boards))
	for _, board := range boards {
		tree, err := s.loadBoardTree(ctx, s.repo, board)
		if err != nil {
			return nil, err
		}
		trees = append(trees, *tree)
	}

	s.logger.Debug().
		Str("user_id", userID).
		Int("count", len(trees)).
		Msg("listed boards")
	return trees, nil
}

func (s *boardServiceImpl) CreateBoard(ctx context.Context, userID, name string) (*models.Board, error) {
	if strings.TrimSpace(name) == "" {
		return nil, newValidationError("board name is required")
	}

	board := models.Board{
		Name:      name,
		OwnerID:   userID,
		CreatedAt: time.Now(),
	}

	boardUUID, err := uuid.NewV7()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to generate board uuid")
		return nil, err
	}
	board.ID = boardUUID.String()

	err = s.repo.CreateBoard(ctx, &board)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("board_id", board.ID).
		Str("user_id", userID).
		Msg("created board")
	return &board, nil
}

func (s *boardServiceImpl) GetBoard(ctx context.Context, userID, boardID string) (*models.BoardTree, error) {
	authz := s.authorizerFor(s.repo)
	board, err := authz.AuthorizeBoard(ctx, userID, boardID)
	if err != nil {
		return nil, err
	}
	return s.loadBoardTree(ctx, s.repo, *board)
}

func (s *boardServiceImpl) CreateColumn(ctx context.Context, userID, boardID, title string) (*models.Column, error) {
	if strings.TrimSpace(title) == "" {
		return nil, newValidationError("column title is required")
	}

	column := models.Column{
		Title:     title,
		BoardID:   boardID,
		CreatedAt: time.Now(),
	}

	columnUUID, err := uuid.NewV7()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to generate column uuid")
		return nil, err
	}
	column.ID = columnUUID.String()

	err = s.repo.WithTx(ctx, func(r repository.Repository) error {
		authz := s.authorizerFor(r)
		_, err := authz.AuthorizeBoard(ctx, userID, boardID)
		if err != nil {
			return err
		}
		return r.CreateColumn(ctx, &column)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("column_id", column.ID).
		Str("board_id", boardID).
		Msg("created column")
	return &column, nil
}

func (s *boardServiceImpl) CreateTask(ctx context.Context, params CreateTaskParams) (*models.Task, error) {
	if strings.TrimSpace(params.Title) == "" {
		return nil, newValidationError("task title is required")
	}

	status := params.Status
	if status == "" {
		status = models.StatusTodo
	}

	now := time.Now()
	task := models.Task{
		Title:     params.Title,
		Status:    status,
		ColumnID:  params.ColumnID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	taskUUID, err := uuid.NewV7()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to generate task uuid")
		return nil, err
	}
	task.ID = taskUUID.String()

	err = s.repo.WithTx(ctx, func(r repository.Repository) error {
		authz := s.authorizerFor(r)
		board, err := authz.AuthorizeBoard(ctx, params.UserID, params.BoardID)
		if err != nil {
			return err
		}

		// A column under another board must look exactly like a
		// missing column, so tasks cannot be injected across
		// board boundaries.
		column, err := r.GetColumn(ctx, params.ColumnID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return newNotFoundError("column not found")
			}
			return err
		}
		if column.BoardID != board.ID {
			s.logger.Warn().
				Str("column_id", column.ID).
				Str("board_id", board.ID).
				Msg("column belongs to another board")
			return newNotFoundError("column not found")
		}

		return r.CreateTask(ctx, &task)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("task_id", task.ID).
		Str("column_id", task.ColumnID).
		Msg("created task")
	return &task, nil
}

func (s *boardServiceImpl) UpdateTask(ctx context.Context, params UpdateTaskParams) (*models.Task, error) {
	var task *models.Task
	err := s.repo.WithTx(ctx, func(r repository.Repository) error {
		authz := s.authorizerFor(r)
		access, err := authz.AuthorizeTask(ctx, params.UserID, params.TaskID)
		if err != nil {
			return err
		}
		task = access.Task

		if params.ColumnID != nil && *params.ColumnID != task.ColumnID {
			// Moves are confined to the board the caller was
			// authorized against.
			column, err := r.GetColumn(ctx, *params.ColumnID)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return newNotFoundError("column not found")
				}
				return err
			}
			if column.BoardID != access.Board.ID {
				s.logger.Warn().
					Str("task_id", task.ID).
					Str("column_id", column.ID).
					Msg("move targets another board")
				return newNotFoundError("column not found")
			}
			task.ColumnID = column.ID
		}
		if params.Status != nil {
			task.Status = *params.Status
		}
		task.UpdatedAt = time.Now()

		return r.UpdateTask(ctx, task)
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, newNotFoundError("task not found")
		}
		return nil, err
	}

	s.logger.Info().
		Str("task_id", task.ID).
		Msg("updated task")
	return task, nil
}

func (s *boardServiceImpl) DeleteTask(ctx context.Context, userID, taskID string) error {
	err := s.repo.WithTx(ctx, func(r repository.Repository) error {
		authz := s.authorizerFor(r)
		_, err := authz.AuthorizeTask(ctx, userID, taskID)
		if err != nil {
			return err
		}
		return r.DeleteTask(ctx, taskID)
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return newNotFoundError("task not found")
		}
		return err
	}

	s.logger.Info().
		Str("task_id", taskID).
		Msg("deleted task")
	return nil
}

func (s *boardServiceImpl) loadBoardTree(ctx context.Context, r repository.Repository, board models.Board) (*models.BoardTree, error) {
	columns, err := r.ListColumnsByBoard(ctx, board.ID)
	if err != nil {
		return nil, err
	}

	tree := models.BoardTree{
		Board:   board,
		Columns: make([]models.ColumnTree, 0, len(columns)),
	}
	for _, column := range columns {
		tasks, err := r.ListTasksByColumn(ctx, column.ID)
		if err != nil {
			return nil, err
		}
		tree.Columns = append(tree.Columns, models.ColumnTree{
			Column: column,
			Tasks:  tasks,
		})
	}
	return &tree, nil
}
