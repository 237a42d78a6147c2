package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-kanban/internal/models"
	"github.com/adanyl0v/go-kanban/internal/repository"
)

type authorizerImpl struct {
	logger zerolog.Logger
	repo   repository.Repository
}

func NewAuthorizer(
	logger zerolog.Logger,
	repo repository.Repository,
) Authorizer {
	return &authorizerImpl{
		logger: logger,
		repo:   repo,
	}
}

func (a *authorizerImpl) AuthorizeBoard(ctx context.Context, userID, boardID string) (*models.Board, error) {
	board, err := a.repo.GetBoard(ctx, boardID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			a.logger.Warn().
				Str("board_id", boardID).
				Msg("board not found")
			return nil, newNotFoundError("board not found")
		}
		return nil, err
	}

	if board.OwnerID != userID {
		a.logger.Warn().
			Str("board_id", boardID).
			Str("user_id", userID).
			Msg("board owned by another user")
		return nil, newForbiddenError("forbidden")
	}
	return board, nil
}

func (a *authorizerImpl) AuthorizeTask(ctx context.Context, userID, taskID string) (*TaskAccess, error) {
	task, err := a.repo.GetTask(ctx, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			a.logger.Warn().
				Str("task_id", taskID).
				Msg("task not found")
			return nil, newNotFoundError("task not found")
		}
		return nil, err
	}

	column, err := a.repo.GetColumn(ctx, task.ColumnID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			a.logger.Warn().
				Str("task_id", taskID).
				Str("column_id", task.ColumnID).
				Msg("task column not found")
			return nil, newNotFoundError("task not found")
		}
		return nil, err
	}

	board, err := a.repo.GetBoard(ctx, column.BoardID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			a.logger.Warn().
				Str("task_id", taskID).
				Str("board_id", column.BoardID).
				Msg("task board not found")
			return nil, newNotFoundError("task not found")
		}
		return nil, err
	}

	if board.OwnerID != userID {
		a.logger.Warn().
			Str("task_id", taskID).
			Str("board_id", board.ID).
			Str("user_id", userID).
			Msg("task board owned by another user")
		return nil, newForbiddenError("forbidden")
	}

	return &TaskAccess{
		Task:   task,
		Column: column,
		Board:  board,
	}, nil
}
