package models

import "time"

type Restaurant struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Town      string    `json:"town" db:"town"`
	Currency  string    `json:"currency" db:"currency"`
	Location  Location  `json:"location"`
	Cuisines  []string  `json:"cuisines"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
