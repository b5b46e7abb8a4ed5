package view

import "ownerconsole/internal/model"

// OwnerRow is one owner in the admin list. Restaurant is the assigned
// restaurant's name, or its uid when the restaurant is unknown.
type OwnerRow struct {
	model.Owner
	Restaurant string
	// approval forms are shown until the owner is approved with a restaurant
	NeedsApproval bool
}

type AdminPage struct {
	Base
	Admin       model.Identity
	Filter      string
	Counts      map[string]int
	Owners      []OwnerRow
	Restaurants []model.Restaurant
}

// NewAdminPage filters owners by approval status ("" or "all" keeps every
// owner) and counts each status over the full list.
func NewAdminPage(base Base, admin model.Identity, owners []model.Owner, restaurants []model.Restaurant, filter string) AdminPage {
	if filter == "" {
		filter = "all"
	}
	names := make(map[string]string, len(restaurants))
	for _, r := range restaurants {
		names[r.ID] = r.Name
	}

	p := AdminPage{
		Base:        base,
		Admin:       admin,
		Filter:      filter,
		Counts:      map[string]int{"all": len(owners)},
		Restaurants: restaurants,
	}
	for _, o := range owners {
		p.Counts[o.ApprovalStatus]++
		if filter != "all" && o.ApprovalStatus != filter {
			continue
		}
		row := OwnerRow{
			Owner:         o,
			NeedsApproval: o.ApprovalStatus == model.ApprovalPending || o.RestaurantUID == "",
		}
		if o.RestaurantUID != "" {
			row.Restaurant = names[o.RestaurantUID]
			if row.Restaurant == "" {
				row.Restaurant = o.RestaurantUID
			}
		}
		p.Owners = append(p.Owners, row)
	}
	return p
}
