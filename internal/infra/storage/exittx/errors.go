package exittx

import "errors"

var (
	// ErrNotFound возвращается, когда транзакции нет или она истекла
	ErrNotFound = errors.New("exittx.store: transaction not found")
)
