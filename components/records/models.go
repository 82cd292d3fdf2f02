package records

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItem is a single product line on an order.
type LineItem struct {
	Product  string          `json:"product"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// Subtotal returns price times quantity.
func (i LineItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order is a marketplace purchase.
type Order struct {
	OrderID  string          `json:"orderId"`
	Customer string          `json:"customer"`
	Seller   string          `json:"seller"`
	SellerID string          `json:"sellerId"`
	Status   string          `json:"status"`
	Date     time.Time       `json:"date"`
	Items    []LineItem      `json:"items"`
	Total    decimal.Decimal `json:"total"`
}

// ItemCount sums quantities across line items.
func (o Order) ItemCount() int {
	n := 0
	for _, item := range o.Items {
		n += item.Quantity
	}
	return n
}

// Fields implements Fielder.
func (o Order) Fields() Record {
	return Record{
		"orderId":  o.OrderID,
		"customer": o.Customer,
		"seller":   o.Seller,
		"sellerId": o.SellerID,
		"status":   o.Status,
		"date":     o.Date,
		"items":    o.Items,
		"total":    o.Total,
	}
}

// Seller is a store operating on the marketplace.
type Seller struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Store        string            `json:"store"`
	Email        string            `json:"email"`
	Status       string            `json:"status"`
	Rating       float64           `json:"rating"`
	JoinedAt     time.Time         `json:"joinedAt"`
	MonthlySales []decimal.Decimal `json:"monthlySales"`
}

// TotalSales sums the monthly sales series.
func (s Seller) TotalSales() decimal.Decimal {
	return decimal.Sum(decimal.Zero, s.MonthlySales...)
}

// Fields implements Fielder.
func (s Seller) Fields() Record {
	return Record{
		"id":           s.ID,
		"name":         s.Name,
		"store":        s.Store,
		"email":        s.Email,
		"status":       s.Status,
		"rating":       s.Rating,
		"joinedAt":     s.JoinedAt,
		"monthlySales": s.MonthlySales,
		"totalSales":   s.TotalSales(),
	}
}

// TeamMember is a back-office staff account.
type TeamMember struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
	Status   string    `json:"status"`
	JoinedAt time.Time `json:"joinedAt"`
}

// Fields implements Fielder.
func (m TeamMember) Fields() Record {
	return Record{
		"id":       m.ID,
		"name":     m.Name,
		"email":    m.Email,
		"role":     m.Role,
		"status":   m.Status,
		"joinedAt": m.JoinedAt,
	}
}

// TransitRecord is an insured shipment.
type TransitRecord struct {
	TransitID    string          `json:"transitID"`
	OrderID      string          `json:"orderId"`
	Carrier      string          `json:"carrier"`
	Status       string          `json:"status"`
	InsuredValue decimal.Decimal `json:"insuredValue"`
	Premium      decimal.Decimal `json:"premium"`
	ShippedAt    time.Time       `json:"shippedAt"`
}

// Fields implements Fielder.
func (t TransitRecord) Fields() Record {
	return Record{
		"transitID":    t.TransitID,
		"orderId":      t.OrderID,
		"carrier":      t.Carrier,
		"status":       t.Status,
		"insuredValue": t.InsuredValue,
		"premium":      t.Premium,
		"shippedAt":    t.ShippedAt,
	}
}

// Disbursement is a payout to a seller for an order.
type Disbursement struct {
	ID       string          `json:"id"`
	SellerID string          `json:"sellerId"`
	Seller   string          `json:"seller"`
	OrderID  string          `json:"orderId"`
	Amount   decimal.Decimal `json:"amount"`
	Date     time.Time       `json:"date"`
	Status   string          `json:"status"`
}

// Fields implements Fielder.
func (d Disbursement) Fields() Record {
	return Record{
		"id":       d.ID,
		"sellerId": d.SellerID,
		"seller":   d.Seller,
		"orderId":  d.OrderID,
		"amount":   d.Amount,
		"date":     d.Date,
		"status":   d.Status,
	}
}

// PhotoSession is a product photography booking.
type PhotoSession struct {
	ID             string    `json:"id"`
	PhotographerID string    `json:"photographerId"`
	Photographer   string    `json:"photographer"`
	SellerID       string    `json:"sellerId"`
	Seller         string    `json:"seller"`
	Date           time.Time `json:"date"`
	Pieces         int       `json:"pieces"`
	Status         string    `json:"status"`
}

// Fields implements Fielder.
func (p PhotoSession) Fields() Record {
	return Record{
		"id":             p.ID,
		"photographerId": p.PhotographerID,
		"photographer":   p.Photographer,
		"sellerId":       p.SellerID,
		"seller":         p.Seller,
		"date":           p.Date,
		"pieces":         p.Pieces,
		"status":         p.Status,
	}
}
