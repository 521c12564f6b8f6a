package pomomo

import "time"

// ExistingRecord carries the columns every journal row gets on insert.
type ExistingRecord[T ~string] struct {
	ID        T
	CreatedAt time.Time
}

func NewExistingRecord[T ~string](id string, createdAt time.Time) ExistingRecord[T] {
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	return ExistingRecord[T]{
		ID:        T(id),
		CreatedAt: createdAt,
	}
}
