package repository

import (
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a read misses or a mutation matches zero
// rows. Handlers map it to 404.
var ErrNotFound = errors.New("record not found")

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
