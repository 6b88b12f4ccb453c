package game

import (
	"fmt"
	"strings"
)

// ItemType controls how an item is used and picked up.
type ItemType int

const (
	ItemTypeArtifact ItemType = iota
	ItemTypeActive
	ItemTypeCoin
	ItemTypeHeart
	ItemTypeKey
	ItemTypeBomb
	ItemTypeWeapon
	ItemTypeBattery
	ItemTypeHat
	ItemTypeScourge
)

var itemTypeNames = map[ItemType]string{
	ItemTypeArtifact: "artifact",
	ItemTypeActive:   "active",
	ItemTypeCoin:     "coin",
	ItemTypeHeart:    "heart",
	ItemTypeKey:      "key",
	ItemTypeBomb:     "bomb",
	ItemTypeWeapon:   "weapon",
	ItemTypeBattery:  "battery",
	ItemTypeHat:      "hat",
	ItemTypeScourge:  "scourge",
}

func (t ItemType) String() string {
	if s, ok := itemTypeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("ItemType(%d)", int(t))
}

func (t ItemType) MarshalText() ([]byte, error) {
	s, ok := itemTypeNames[t]
	if !ok {
		return nil, fmt.Errorf("unknown item type: %d", int(t))
	}
	return []byte(s), nil
}

func (t *ItemType) UnmarshalText(text []byte) error {
	want := strings.ToLower(string(text))
	for k, v := range itemTypeNames {
		if v == want {
			*t = k
			return nil
		}
	}
	return fmt.Errorf("unknown item type: %s", text)
}

// Stackable types merge into an existing stack on pickup.
func (t ItemType) Stackable() bool {
	switch t {
	case ItemTypeCoin, ItemTypeKey, ItemTypeBomb:
		return true
	default:
		return false
	}
}
