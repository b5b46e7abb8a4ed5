package orders

import "ownerconsole/internal/model"

// ApplyDecision returns snap with the order id marked as responded with
// decision. Only that order changes; the input snapshot is not modified.
// ok is false when no order has the id.
func ApplyDecision(snap model.OrderSnapshot, id string, decision model.Decision) (model.OrderSnapshot, bool) {
	idx := -1
	for i := range snap.Individual {
		if snap.Individual[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return snap, false
	}

	individual := make([]model.CustomerOrder, len(snap.Individual))
	copy(individual, snap.Individual)
	individual[idx].OrderStatus = string(decision)
	individual[idx].Responded = true

	snap.Individual = individual
	return snap, true
}

// Summarize aggregates line-item quantities by item name, in order of first
// appearance.
func Summarize(orders []model.CustomerOrder) []model.CumulativeItem {
	index := make(map[string]int)
	var out []model.CumulativeItem
	for _, o := range orders {
		for _, it := range o.Items {
			i, ok := index[it.Name]
			if !ok {
				i = len(out)
				index[it.Name] = i
				out = append(out, model.CumulativeItem{ItemName: it.Name})
			}
			out[i].TotalQuantity += it.Quantity
		}
	}
	return out
}

func sameCumulative(a, b []model.CumulativeItem) bool {
	if len(a) != len(b) {
		return false
	}
	want := make(map[string]int, len(a))
	for _, it := range a {
		want[it.ItemName] += it.TotalQuantity
	}
	for _, it := range b {
		want[it.ItemName] -= it.TotalQuantity
	}
	for _, v := range want {
		if v != 0 {
			return false
		}
	}
	return true
}
