package entity

import (
	"github.com/google/uuid"
)

type Product struct {
	Base
	UserID      uuid.UUID `db:"user_id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	Price       float64   `db:"price"`
	Image       string    `db:"image"`
	Category    string    `db:"category"`
}
