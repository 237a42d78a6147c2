package models

import "time"

// StatusTodo is the status assigned to tasks created without
// an explicit one. Status is a free-form string otherwise.
const StatusTodo = "todo"

type Task struct {
	ID        string
	Title     string
	Status    string
	ColumnID  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
