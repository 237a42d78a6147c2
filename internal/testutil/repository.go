// Package testutil provides an in-memory repository used by
// service and handler tests.
package testutil

import (
	"context"
	"sync"

	"github.com/adanyl0v/go-kanban/internal/models"
	"github.com/adanyl0v/go-kanban/internal/repository"
)

// FakeRepository implements repository.Repository in memory.
// Lists preserve insertion order, lookups return copies so a
// caller mutating a result does not touch the stored row, and
// WithTx simply runs fn against the same store (the fake offers
// no rollback, which no current test relies on).
type FakeRepository struct {
	mu sync.Mutex

	users   []models.User
	boards  []models.Board
	columns []models.Column
	tasks   []models.Task
}

func NewFakeRepository() *FakeRepository {
	return &FakeRepository{}
}

func (f *FakeRepository) WithTx(_ context.Context, fn func(repository.Repository) error) error {
	return fn(f)
}

func (f *FakeRepository) CreateUser(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.users {
		if f.users[i].Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	f.users = append(f.users, *user)
	return nil
}

func (f *FakeRepository) GetUserByID(_ context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.users {
		if f.users[i].ID == id {
			user := f.users[i]
			return &user, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *FakeRepository) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.users {
		if f.users[i].Email == email {
			user := f.users[i]
			return &user, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *FakeRepository) CreateBoard(_ context.Context, board *models.Board) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.boards = append(f.boards, *board)
	return nil
}

func (f *FakeRepository) GetBoard(_ context.Context, id string) (*models.Board, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.boards {
		if f.boards[i].ID == id {
			board := f.boards[i]
			return &board, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *FakeRepository) ListBoardsByOwner(_ context.Context, ownerID string) ([]models.Board, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	boards := make([]models.Board, 0)
	for i := range f.boards {
		if f.boards[i].OwnerID == ownerID {
			boards = append(boards, f.boards[i])
		}
	}
	return boards, nil
}

func (f *FakeRepository) CreateColumn(_ context.Context, column *models.Column) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.columns = append(f.columns, *column)
	return nil
}

func (f *FakeRepository) GetColumn(_ context.Context, id string) (*models.Column, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.columns {
		if f.columns[i].ID == id {
			column := f.columns[i]
			return &column, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *FakeRepository) ListColumnsByBoard(_ context.Context, boardID string) ([]models.Column, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	columns := make([]models.Column, 0)
	for i := range f.columns {
		if f.columns[i].BoardID == boardID {
			columns = append(columns, f.columns[i])
		}
	}
	return columns, nil
}

func (f *FakeRepository) ListTasksByColumn(_ context.Context, columnID string) ([]models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	tasks := make([]models.Task, 0)
	for i := range f.tasks {
		if f.tasks[i].ColumnID == columnID {
			tasks = append(tasks, f.tasks[i])
		}
	}
	return tasks, nil
}

func (f *FakeRepository) CreateTask(_ context.Context, task *models.Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.tasks = append(f.tasks, *task)
	return nil
}

func (f *FakeRepository) GetTask(_ context.Context, id string) (*models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.tasks {
		if f.tasks[i].ID == id {
			task := f.tasks[i]
			return &task, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *FakeRepository) UpdateTask(_ context.Context, task *models.Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.tasks {
		if f.tasks[i].ID == task.ID {
			f.tasks[i] = *task
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *FakeRepository) DeleteTask(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}
