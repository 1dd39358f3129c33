package services

import "github.com/yukikurage/life-record-api/internal/dto"

// updateSet collects column assignments for a partial update.
type updateSet map[string]interface{}

// setRequired assigns a present, non-null value. Nulls are rejected before this point.
func setRequired[T any](u updateSet, column string, o dto.Optional[T]) {
	if o.Valid {
		u[column] = o.Value
	}
}

// setNullable assigns a present value, writing NULL for an explicit null.
func setNullable[T any](u updateSet, column string, o dto.Optional[T]) {
	if !o.Set {
		return
	}
	if o.Valid {
		u[column] = o.Value
	} else {
		u[column] = nil
	}
}
