package view

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"ownerconsole/internal/model"
	"ownerconsole/internal/orders"
)

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		paise int64
		want  string
	}{
		{0, "₹0.00"},
		{6000, "₹60.00"},
		{12345, "₹123.45"},
		{5, "₹0.05"},
	}
	for _, tt := range tests {
		if got := FormatPrice(decimal.NewFromInt(tt.paise)); got != tt.want {
			t.Errorf("FormatPrice(%d) = %s, want %s", tt.paise, got, tt.want)
		}
	}
}

func TestFormatPhone(t *testing.T) {
	tests := map[string]string{
		"":               "N/A",
		"9876543210":     "+91-9876543210",
		"+91 9876543210": "+91 9876543210",
	}
	for in, want := range tests {
		if got := FormatPhone(in); got != want {
			t.Errorf("FormatPhone(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestNewCumulativeView(t *testing.T) {
	v := NewCumulativeView([]model.CumulativeItem{{ItemName: "Samosa", TotalQuantity: 3}})
	if v.Empty || v.Count != 1 || v.Rows[0].ItemName != "Samosa" || v.Rows[0].TotalQuantity != 3 {
		t.Errorf("Unexpected view: %+v", v)
	}

	if empty := NewCumulativeView(nil); !empty.Empty || empty.Count != 0 {
		t.Errorf("Expected empty view, got %+v", empty)
	}
}

func TestNewIndividualView(t *testing.T) {
	list := []model.CustomerOrder{
		{
			ID:            "o1",
			CustomerPhone: "9876543210",
			Items: []model.OrderLineItem{
				{Name: "Samosa", Quantity: 3, Subtotal: decimal.NewFromInt(6000), Customizations: "extra chutney"},
				{Subtotal: decimal.NewFromInt(100)},
			},
			TotalAmount: decimal.NewFromInt(6100),
			OrderStatus: "pooling",
		},
		{ID: "", CustomerName: "ghost"},
		{ID: "o2", CustomerName: "Ravi", OrderStatus: "rejected", Responded: true},
		{ID: "o3", CustomerName: "Meera", OrderStatus: "accepted", Responded: true},
	}

	v := NewIndividualView(list, map[string]bool{"o1": true})
	if v.Count != 3 || len(v.Cards) != 3 {
		t.Fatalf("Expected 3 cards, got %d", v.Count)
	}

	c := v.Cards[0]
	if c.Position != 1 || c.CustomerName != "Guest Customer" || c.Phone != "+91-9876543210" || c.CallHref != "tel:9876543210" {
		t.Errorf("Unexpected card header: %+v", c)
	}
	if !c.Actions() || !c.Processing || c.Badge != "" {
		t.Errorf("Expected actionable processing card, got %+v", c)
	}
	if c.Lines[1].Quantity != 1 || c.Lines[1].Name != "Unknown Item" || c.Total != "₹61.00" {
		t.Errorf("Unexpected lines/total: %+v %s", c.Lines, c.Total)
	}

	r := v.Cards[1]
	if r.Position != 2 || r.Actions() || r.Badge != "ORDER REJECTED" || r.Accepted {
		t.Errorf("Expected rejected terminal card, got %+v", r)
	}
	if r.Phone != "N/A" || r.CanCall() {
		t.Errorf("Expected N/A phone without call action, got %+v", r)
	}

	if a := v.Cards[2]; a.Badge != "ORDER ACCEPTED" || !a.Accepted {
		t.Errorf("Expected accepted badge, got %+v", a)
	}
}

func TestRenderOrdersPage(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("Failed to parse templates: %v", err)
	}

	fetchedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	st := orders.State{
		Active: true,
		Snapshot: model.OrderSnapshot{
			Cumulative: []model.CumulativeItem{{ItemName: "Samosa", TotalQuantity: 3}},
			Individual: []model.CustomerOrder{
				{ID: "o1", Items: []model.OrderLineItem{{Name: "Samosa", Quantity: 3}}, OrderStatus: "accepted", Responded: true},
			},
			FetchedAt: fetchedAt,
		},
		Countdown: orders.Countdown{Active: true, FetchedAt: fetchedAt, Remaining: 4*time.Minute + 5*time.Second, Urgent: true},
	}

	var buf bytes.Buffer
	page := NewOrdersPage(Base{Title: "Orders", Owner: model.Identity{ID: "owner-1", RestaurantName: "Spice Route"}}, st)
	if err := r.Render(&buf, "orders", page); err != nil {
		t.Fatalf("Failed to render: %v", err)
	}

	html := buf.String()
	for _, want := range []string{"Samosa", "4:05", "ORDER ACCEPTED", "Spice Route", "1 Orders"} {
		if !strings.Contains(html, want) {
			t.Errorf("Expected page to contain %q", want)
		}
	}
	if strings.Contains(html, `value="accepted"`) {
		t.Error("Expected no action buttons on a responded order")
	}
}

func TestRenderOrdersPage_Inactive(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("Failed to parse templates: %v", err)
	}

	var buf bytes.Buffer
	st := orders.State{Notice: &orders.Notice{Kind: orders.NoticeAdvisory, Text: "No orders found for your restaurant at this time."}}
	if err := r.Render(&buf, "orders", NewOrdersPage(Base{Title: "Orders"}, st)); err != nil {
		t.Fatalf("Failed to render: %v", err)
	}
	html := buf.String()
	if !strings.Contains(html, "Check for New Orders") || !strings.Contains(html, "No orders found") {
		t.Errorf("Expected fetch trigger and advisory, got %s", html)
	}
}

func TestNewAdminPage(t *testing.T) {
	owners := []model.Owner{
		{ID: "a", ApprovalStatus: model.ApprovalPending},
		{ID: "b", ApprovalStatus: model.ApprovalApproved, RestaurantUID: "R-1"},
		{ID: "c", ApprovalStatus: model.ApprovalApproved},
		{ID: "d", ApprovalStatus: model.ApprovalRejected, RestaurantUID: "R-9"},
	}
	restaurants := []model.Restaurant{{ID: "R-1", Name: "Dosa Point"}}

	p := NewAdminPage(Base{}, model.Identity{}, owners, restaurants, "")
	if p.Filter != "all" || len(p.Owners) != 4 {
		t.Fatalf("Expected all owners, got filter %q and %d rows", p.Filter, len(p.Owners))
	}
	if p.Counts["all"] != 4 || p.Counts["approved"] != 2 || p.Counts["pending"] != 1 || p.Counts["rejected"] != 1 {
		t.Errorf("Unexpected counts: %v", p.Counts)
	}

	byID := map[string]OwnerRow{}
	for _, row := range p.Owners {
		byID[row.ID] = row
	}
	if byID["b"].Restaurant != "Dosa Point" || byID["b"].NeedsApproval {
		t.Errorf("Unexpected approved row: %+v", byID["b"])
	}
	if !byID["c"].NeedsApproval {
		t.Error("Expected approved owner without restaurant to need approval")
	}
	if byID["d"].Restaurant != "R-9" {
		t.Errorf("Expected unknown restaurant to fall back to uid, got %q", byID["d"].Restaurant)
	}

	p = NewAdminPage(Base{}, model.Identity{}, owners, restaurants, model.ApprovalApproved)
	if len(p.Owners) != 2 || p.Counts["all"] != 4 {
		t.Errorf("Expected 2 approved rows with full counts, got %d rows and %v", len(p.Owners), p.Counts)
	}
}

func TestRenderAdminAndSignupPages(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("Failed to parse templates: %v", err)
	}

	var buf bytes.Buffer
	owners := []model.Owner{{ID: "owner-7", FullName: "Asha Rao", ApprovalStatus: model.ApprovalPending}}
	restaurants := []model.Restaurant{{ID: "R-1", Name: "Dosa Point"}}
	if err := r.Render(&buf, "admin", NewAdminPage(Base{Title: "Admin"}, model.Identity{FullName: "Root"}, owners, restaurants, "")); err != nil {
		t.Fatalf("Failed to render admin: %v", err)
	}
	html := buf.String()
	for _, want := range []string{"Asha Rao", "/admin/owners/owner-7/approve", "Dosa Point", "Pending (1)"} {
		if !strings.Contains(html, want) {
			t.Errorf("Expected admin page to contain %q", want)
		}
	}

	buf.Reset()
	form := model.SignupRequest{FullName: "Asha Rao"}
	form.UPIID = "asha@upi"
	if err := r.Render(&buf, "signup", SignupPage{Base: Base{Title: "Sign up"}, Form: form}); err != nil {
		t.Fatalf("Failed to render signup: %v", err)
	}
	if html := buf.String(); !strings.Contains(html, `value="asha@upi"`) || !strings.Contains(html, `value="Asha Rao"`) {
		t.Errorf("Expected signup form to keep entered values, got %s", html)
	}
}
