package models

import "time"

type Board struct {
	ID        string
	Name      string
	OwnerID   string
	CreatedAt time.Time
}

type Column struct {
	ID        string
	Title     string
	BoardID   string
	CreatedAt time.Time
}

// BoardTree is a board with its columns and their tasks
// attached, in creation order.
type BoardTree struct {
	Board
	Columns []ColumnTree
}

type ColumnTree struct {
	Column
	Tasks []Task
}
