package store

import "errors"

var (
	ErrStoreNotFound     = errors.New("store not found")
	ErrInvalidTransition = errors.New("invalid store status transition")
	ErrNotConnected      = errors.New("store has no connected payout account")
)
