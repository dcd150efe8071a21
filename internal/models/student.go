package models

import "time"

// Student represents a learner registered with the tutoring business.
type Student struct {
	ID        string    `db:"id" json:"id"`
	Code      string    `db:"code" json:"code"`
	FullName  string    `db:"full_name" json:"fullName"`
	Phone     *string   `db:"phone" json:"phone"`
	IsActive  bool      `db:"is_active" json:"isActive"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// StudentFilter encapsulates the search parameters for listing students.
type StudentFilter struct {
	Query    string
	Page     int
	PageSize int
}
