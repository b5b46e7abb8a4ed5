package view

import "ownerconsole/internal/model"

type CumulativeRow struct {
	ItemName      string
	TotalQuantity int
}

// CumulativeView is the read-only per-item summary of a batch.
type CumulativeView struct {
	Rows  []CumulativeRow
	Count int
	Empty bool
}

func NewCumulativeView(items []model.CumulativeItem) CumulativeView {
	v := CumulativeView{Rows: make([]CumulativeRow, 0, len(items)), Count: len(items), Empty: len(items) == 0}
	for _, it := range items {
		v.Rows = append(v.Rows, CumulativeRow{ItemName: it.ItemName, TotalQuantity: it.TotalQuantity})
	}
	return v
}
