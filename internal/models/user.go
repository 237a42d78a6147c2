package models

import "time"

type User struct {
	ID        string
	Email     string
	Name      string
	Password  string
	CreatedAt time.Time
}
