package entity

import (
	"strings"
	"time"
)

type Category struct {
	ID          int64     `db:"id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (c Category) Equal(other Category) bool {
	return c.ID == other.ID
}

func (c Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrInvalidCategoryName
	}
	return nil
}

type CategoryPatch struct {
	Name        *string
	Description *string
}

func (p CategoryPatch) Apply(c *Category) {
	if supplied(p.Name) {
		c.Name = strings.TrimSpace(*p.Name)
	}
	if supplied(p.Description) {
		c.Description = *p.Description
	}
}
