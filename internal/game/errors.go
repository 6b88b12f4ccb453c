package game

import "errors"

var (
	ErrUnknownItem   = errors.New("unknown item")
	ErrUnknownActor  = errors.New("unknown actor")
	ErrItemNotFound  = errors.New("item not found")
	ErrNotOwner      = errors.New("item is not held by actor")
	ErrNoInventory   = errors.New("actor has no inventory")
	ErrInteractBlock = errors.New("item refuses interaction")
	ErrActorExists   = errors.New("actor already exists")
)
