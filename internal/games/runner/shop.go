package runner

import (
	"errors"
	"slices"
)

// Cosmetic slots.
const (
	SlotSkin  = "skin"
	SlotTrail = "trail"
)

// ErrUnknownCosmetic is returned for an id missing from the catalog.
var ErrUnknownCosmetic = errors.New("runner: unknown cosmetic")

// Cosmetic is an item sold for shards.
type Cosmetic struct {
	ID    string
	Name  string
	Slot  string
	Price int // shards; free items are always owned
}

// Catalog lists the shop in display order. The first item of each slot is
// what an untouched profile wears.
var Catalog = []Cosmetic{
	{ID: "default", Name: "Default", Slot: SlotSkin},
	{ID: "golden", Name: "Golden", Slot: SlotSkin, Price: 100},
	{ID: "cyber", Name: "Cyber", Slot: SlotSkin, Price: 200},
	{ID: "none", Name: "None", Slot: SlotTrail},
	{ID: "sparkle", Name: "Sparkle", Slot: SlotTrail, Price: 50},
	{ID: "fire", Name: "Fire", Slot: SlotTrail, Price: 150},
}

// FindCosmetic looks id up in the catalog.
func FindCosmetic(id string) (Cosmetic, bool) {
	i := slices.IndexFunc(Catalog, func(c Cosmetic) bool { return c.ID == id })
	if i < 0 {
		return Cosmetic{}, false
	}
	return Catalog[i], true
}

func defaultFor(slot string) string {
	for _, c := range Catalog {
		if c.Slot == slot {
			return c.ID
		}
	}
	return ""
}

// ShopItem is a catalog entry as seen by one profile.
type ShopItem struct {
	Cosmetic
	Owned    bool
	Equipped bool
}

// Shop returns the catalog with the profile's ownership and equipment.
func (p *Profile) Shop() ([]ShopItem, error) {
	owned, err := p.Owned()
	if err != nil {
		return nil, err
	}
	eq, err := p.Equipped()
	if err != nil {
		return nil, err
	}

	items := make([]ShopItem, 0, len(Catalog))
	for _, c := range Catalog {
		worn := eq[c.Slot]
		if worn == "" {
			worn = defaultFor(c.Slot)
		}
		items = append(items, ShopItem{
			Cosmetic: c,
			Owned:    c.Price == 0 || owned[c.ID],
			Equipped: worn == c.ID,
		})
	}
	return items, nil
}

// BuyOrEquip equips cosmetic id, buying it first when it is not owned yet.
// It reports whether shards were spent.
func (p *Profile) BuyOrEquip(id string) (bought bool, err error) {
	c, ok := FindCosmetic(id)
	if !ok {
		return false, ErrUnknownCosmetic
	}
	if c.Price > 0 {
		owned, err := p.Owned()
		if err != nil {
			return false, err
		}
		if !owned[c.ID] {
			if err := p.Purchase(c.ID, c.Price); err != nil {
				return false, err
			}
			bought = true
		}
	}
	return bought, p.Equip(c.Slot, c.ID)
}
