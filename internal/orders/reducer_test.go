package orders

import (
	"testing"
	"time"

	"ownerconsole/internal/model"
)

func TestRemaining(t *testing.T) {
	tests := []struct {
		name    string
		elapsed time.Duration
		want    time.Duration
	}{
		{"fresh", 0, 30 * time.Minute},
		{"partial second truncated", 90*time.Second + 400*time.Millisecond, 28*time.Minute + 29*time.Second},
		{"exactly at window", 30 * time.Minute, 0},
		{"one second past window", 30*time.Minute + time.Second, 0},
		{"long past", 5 * time.Hour, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Remaining(batchTime, Window, batchTime.Add(tt.elapsed)); got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestSummarize_MatchesLineItems(t *testing.T) {
	orders := []model.CustomerOrder{
		order("o1", item("Samosa", 3), item("Chai", 1)),
		order("o2", item("Chai", 2)),
		order("o3", item("Samosa", 1), item("Lassi", 4)),
		order("o4"),
	}

	got := Summarize(orders)

	want := []model.CumulativeItem{
		{ItemName: "Samosa", TotalQuantity: 4},
		{ItemName: "Chai", TotalQuantity: 3},
		{ItemName: "Lassi", TotalQuantity: 4},
	}
	if len(got) != len(want) {
		t.Fatalf("Expected %d items, got %+v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Item %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}

	sums := map[string]int{}
	for _, o := range orders {
		for _, it := range o.Items {
			sums[it.Name] += it.Quantity
		}
	}
	for _, c := range got {
		if sums[c.ItemName] != c.TotalQuantity {
			t.Errorf("%s: cumulative %d != line items %d", c.ItemName, c.TotalQuantity, sums[c.ItemName])
		}
	}
}

func TestApplyDecision(t *testing.T) {
	snap := model.OrderSnapshot{
		Individual: []model.CustomerOrder{order("o1"), order("o2")},
		FetchedAt:  batchTime,
	}

	next, ok := ApplyDecision(snap, "o1", model.DecisionRejected)
	if !ok {
		t.Fatal("Expected o1 to be found")
	}
	if next.Individual[0].OrderStatus != "rejected" || !next.Individual[0].Responded {
		t.Errorf("Expected o1 rejected, got %+v", next.Individual[0])
	}
	if snap.Individual[0].Responded {
		t.Error("Expected input snapshot to stay unchanged")
	}
	if next.Individual[1].Responded || !next.FetchedAt.Equal(batchTime) {
		t.Errorf("Expected rest of snapshot untouched, got %+v", next)
	}

	if _, ok := ApplyDecision(snap, "missing", model.DecisionAccepted); ok {
		t.Error("Expected unknown id to report not found")
	}
}

func TestSameCumulative(t *testing.T) {
	a := []model.CumulativeItem{{ItemName: "Samosa", TotalQuantity: 3}, {ItemName: "Chai", TotalQuantity: 1}}
	b := []model.CumulativeItem{{ItemName: "Chai", TotalQuantity: 1}, {ItemName: "Samosa", TotalQuantity: 3}}
	if !sameCumulative(a, b) {
		t.Error("Expected order-independent match")
	}
	c := []model.CumulativeItem{{ItemName: "Samosa", TotalQuantity: 2}, {ItemName: "Chai", TotalQuantity: 1}}
	if sameCumulative(a, c) {
		t.Error("Expected quantity mismatch to be detected")
	}
}
