package domain

import (
	"fmt"
	"strings"
)

// ItemKind identifies which owning module an inventory record belongs to.
type ItemKind string

const (
	ItemKindProduct  ItemKind = "product"
	ItemKindMaterial ItemKind = "material"
	ItemKindTool     ItemKind = "tool"
)

// ItemKinds lists every kind the ledger accepts.
var ItemKinds = []ItemKind{ItemKindProduct, ItemKindMaterial, ItemKindTool}

// Valid reports whether k is one of the known item kinds.
func (k ItemKind) Valid() bool {
	switch k {
	case ItemKindProduct, ItemKindMaterial, ItemKindTool:
		return true
	}
	return false
}

// ParseItemKind converts user input into an ItemKind.
func ParseItemKind(s string) (ItemKind, error) {
	k := ItemKind(strings.ToLower(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", Validation(fmt.Sprintf("unknown item kind %q", s), map[string]string{"item_kind": s})
	}
	return k, nil
}

// ItemRef names a single item across kinds.
type ItemRef struct {
	Kind ItemKind `json:"item_kind"`
	ID   string   `json:"item_id"`
}

func (r ItemRef) String() string {
	return string(r.Kind) + "#" + r.ID
}
