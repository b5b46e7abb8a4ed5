package view

import "ownerconsole/internal/model"

type Line struct {
	Quantity       int
	Name           string
	Customizations string
	Subtotal       string
}

// Card is one order as the owner sees it. Exactly one of Actions and Badge
// applies: Badge once the order has a response, Actions before.
type Card struct {
	Position      int
	ID            string
	CustomerName  string
	Phone         string
	CallHref      string
	PaymentStatus string
	Lines         []Line
	Total         string

	Responded  bool
	Badge      string
	Accepted   bool
	Processing bool
}

func (c Card) Actions() bool { return !c.Responded }

func (c Card) CanCall() bool { return c.CallHref != "" }

type IndividualView struct {
	Cards []Card
	Count int
	Empty bool
}

func NewIndividualView(orders []model.CustomerOrder, inFlight map[string]bool) IndividualView {
	v := IndividualView{Cards: make([]Card, 0, len(orders))}
	for _, o := range orders {
		if o.ID == "" {
			continue
		}
		v.Cards = append(v.Cards, newCard(len(v.Cards)+1, o, inFlight[o.ID]))
	}
	v.Count = len(v.Cards)
	v.Empty = v.Count == 0
	return v
}

func newCard(pos int, o model.CustomerOrder, processing bool) Card {
	c := Card{
		Position:      pos,
		ID:            o.ID,
		CustomerName:  o.CustomerName,
		Phone:         FormatPhone(o.CustomerPhone),
		PaymentStatus: o.PaymentStatus,
		Total:         FormatPrice(o.TotalAmount),
		Responded:     o.Responded,
		Processing:    processing && !o.Responded,
		Lines:         make([]Line, 0, len(o.Items)),
	}
	if c.CustomerName == "" {
		c.CustomerName = "Guest Customer"
	}
	if o.CustomerPhone != "" {
		c.CallHref = "tel:" + o.CustomerPhone
	}
	if o.Responded {
		c.Accepted = o.OrderStatus == string(model.DecisionAccepted)
		c.Badge = "ORDER REJECTED"
		if c.Accepted {
			c.Badge = "ORDER ACCEPTED"
		}
	}

	for _, it := range o.Items {
		l := Line{
			Quantity:       it.Quantity,
			Name:           it.Name,
			Customizations: it.Customizations,
			Subtotal:       FormatPrice(it.Subtotal),
		}
		if l.Quantity == 0 {
			l.Quantity = 1
		}
		if l.Name == "" {
			l.Name = "Unknown Item"
		}
		c.Lines = append(c.Lines, l)
	}
	return c
}
