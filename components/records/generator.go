package records

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	orderStatuses        = []string{"Pending", "Processing", "Shipped", "Delivered", "Cancelled"}
	sellerStatuses       = []string{"Active", "Active", "Active", "Suspended", "Onboarding"}
	memberStatuses       = []string{"Active", "Active", "Invited", "Disabled"}
	transitStatuses      = []string{"Insured", "In Transit", "Delivered", "Claim Filed"}
	disbursementStatuses = []string{"Pending", "Scheduled", "Paid", "Paid", "Failed"}
	sessionStatuses      = []string{"Booked", "Confirmed", "Completed", "Cancelled"}
	carriers             = []string{"FedEx", "UPS", "DHL", "USPS", "Brink's"}
	roles                = []string{"Admin", "Support", "Photographer", "Curator", "Finance"}

	firstNames = []string{
		"Amelia", "Noah", "Olivia", "Liam", "Sophia", "Mateo", "Isabella", "Lucas",
		"Mia", "Ethan", "Aria", "James", "Chloe", "Daniel", "Layla", "Henry",
	}
	lastNames = []string{
		"Garcia", "Smith", "Nguyen", "Patel", "Rossi", "Kim", "Okafor", "Silva",
		"Cohen", "Muller", "Tanaka", "Brown", "Dubois", "Haddad",
	}
	storeNames = []string{
		"Aurora Atelier", "Golden Thread", "Luna Gems", "Heirloom & Co",
		"Brilliant Cut", "Opal House", "Silver Fern", "Carat Lane",
	}
	products = []struct {
		name  string
		cents int64
	}{
		{"Diamond Solitaire Ring", 249900},
		{"Pearl Drop Earrings", 18900},
		{"Gold Tennis Bracelet", 129500},
		{"Sapphire Pendant", 64900},
		{"Emerald Cut Band", 89000},
		{"Silver Charm Necklace", 7900},
		{"Ruby Stud Earrings", 42000},
		{"Vintage Cameo Brooch", 15500},
	}
)

// Generator produces synthetic marketplace records from a seeded source.
type Generator struct {
	rng *rand.Rand
	now time.Time
}

// NewGenerator builds a generator. A zero seed is replaced by the clock so
// successive runs differ; any other seed reproduces the same dataset.
func NewGenerator(seed uint64, now time.Time) *Generator {
	if now.IsZero() {
		now = time.Now().UTC()
	}
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Generator{
		rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		now: now,
	}
}

// Orders returns the fixed first order followed by n generated ones. A
// negative n generates none.
func (g *Generator) Orders(n int, sellers []Seller) []Order {
	n = max(n, 0)
	out := make([]Order, 0, n+1)
	first := Order{
		OrderID:  "ORD-1000",
		Customer: "Amelia Garcia",
		Seller:   "Aurora Atelier",
		SellerID: "SEL-100",
		Status:   "Delivered",
		Date:     g.now.AddDate(0, -2, 0).Truncate(24 * time.Hour),
		Items: []LineItem{
			{Product: "Diamond Solitaire Ring", Quantity: 1, Price: decimal.New(249900, -2)},
			{Product: "Pearl Drop Earrings", Quantity: 2, Price: decimal.New(18900, -2)},
		},
	}
	first.Total = orderTotal(first.Items)
	out = append(out, first)
	for i := 1; i <= n; i++ {
		seller := Seller{ID: "SEL-100", Store: storeNames[0]}
		if len(sellers) > 0 {
			seller = sellers[g.rng.IntN(len(sellers))]
		}
		items := g.lineItems()
		out = append(out, Order{
			OrderID:  fmt.Sprintf("ORD-%d", 1000+i),
			Customer: g.personName(),
			Seller:   seller.Store,
			SellerID: seller.ID,
			Status:   pick(g.rng, orderStatuses),
			Date:     g.pastDate(180),
			Items:    items,
			Total:    orderTotal(items),
		})
	}
	return out
}

// Sellers returns the fixed first seller followed by n generated ones.
func (g *Generator) Sellers(n int) []Seller {
	n = max(n, 0)
	out := make([]Seller, 0, n+1)
	out = append(out, Seller{
		ID:           "SEL-100",
		Name:         "Isabella Rossi",
		Store:        storeNames[0],
		Email:        "isabella@aurora-atelier.example",
		Status:       "Active",
		Rating:       4.9,
		JoinedAt:     g.now.AddDate(-2, 0, 0).Truncate(24 * time.Hour),
		MonthlySales: g.monthlySales(),
	})
	for i := 1; i <= n; i++ {
		name := g.personName()
		store := storeNames[i%len(storeNames)]
		out = append(out, Seller{
			ID:           fmt.Sprintf("SEL-%d", 100+i),
			Name:         name,
			Store:        store,
			Email:        emailFor(name, store),
			Status:       pick(g.rng, sellerStatuses),
			Rating:       float64(30+g.rng.IntN(21)) / 10,
			JoinedAt:     g.pastDate(900),
			MonthlySales: g.monthlySales(),
		})
	}
	return out
}

// TeamMembers returns the fixed first member followed by n generated ones.
func (g *Generator) TeamMembers(n int) []TeamMember {
	n = max(n, 0)
	out := make([]TeamMember, 0, n+1)
	out = append(out, TeamMember{
		ID:       "TM-1",
		Name:     "Noah Patel",
		Email:    "noah.patel@backoffice.example",
		Role:     "Admin",
		Status:   "Active",
		JoinedAt: g.now.AddDate(-3, 0, 0).Truncate(24 * time.Hour),
	})
	for i := 1; i <= n; i++ {
		name := g.personName()
		out = append(out, TeamMember{
			ID:       fmt.Sprintf("TM-%d", i+1),
			Name:     name,
			Email:    emailFor(name, "backoffice"),
			Role:     pick(g.rng, roles),
			Status:   pick(g.rng, memberStatuses),
			JoinedAt: g.pastDate(1200),
		})
	}
	return out
}

// TransitRecords insures a shipment for every order that has left the seller.
func (g *Generator) TransitRecords(orders []Order) []TransitRecord {
	out := make([]TransitRecord, 0, len(orders))
	for _, order := range orders {
		if order.Status == "Pending" || order.Status == "Cancelled" {
			continue
		}
		premium := order.Total.Mul(decimal.New(15, -3)).Round(2)
		out = append(out, TransitRecord{
			TransitID:    g.uuid(),
			OrderID:      order.OrderID,
			Carrier:      pick(g.rng, carriers),
			Status:       pick(g.rng, transitStatuses),
			InsuredValue: order.Total,
			Premium:      premium,
			ShippedAt:    order.Date.Add(time.Duration(24+g.rng.IntN(72)) * time.Hour),
		})
	}
	return out
}

// Disbursements pays sellers their share of each non-cancelled order.
func (g *Generator) Disbursements(orders []Order) []Disbursement {
	out := make([]Disbursement, 0, len(orders))
	commission := decimal.New(88, -2)
	for i, order := range orders {
		if order.Status == "Cancelled" {
			continue
		}
		out = append(out, Disbursement{
			ID:       fmt.Sprintf("DSB-%d", 5000+i),
			SellerID: order.SellerID,
			Seller:   order.Seller,
			OrderID:  order.OrderID,
			Amount:   order.Total.Mul(commission).Round(2),
			Date:     order.Date.AddDate(0, 0, 7),
			Status:   pick(g.rng, disbursementStatuses),
		})
	}
	return out
}

// Sessions books n photo sessions between photographers and sellers.
func (g *Generator) Sessions(n int, team []TeamMember, sellers []Seller) []PhotoSession {
	n = max(n, 0)
	var photographers []TeamMember
	for _, member := range team {
		if member.Role == "Photographer" {
			photographers = append(photographers, member)
		}
	}
	if len(photographers) == 0 && len(team) > 0 {
		photographers = team[:1]
	}
	out := make([]PhotoSession, 0, n)
	if len(photographers) == 0 || len(sellers) == 0 {
		return out
	}
	for i := 0; i < n; i++ {
		photographer := photographers[g.rng.IntN(len(photographers))]
		seller := sellers[g.rng.IntN(len(sellers))]
		day := g.now.AddDate(0, 0, g.rng.IntN(60)-30).Truncate(24 * time.Hour)
		out = append(out, PhotoSession{
			ID:             fmt.Sprintf("SES-%d", 300+i),
			PhotographerID: photographer.ID,
			Photographer:   photographer.Name,
			SellerID:       seller.ID,
			Seller:         seller.Store,
			Date:           day.Add(time.Duration(9+g.rng.IntN(8)) * time.Hour),
			Pieces:         5 + g.rng.IntN(40),
			Status:         pick(g.rng, sessionStatuses),
		})
	}
	return out
}

func (g *Generator) lineItems() []LineItem {
	count := 1 + g.rng.IntN(3)
	items := make([]LineItem, count)
	for i := range items {
		product := products[g.rng.IntN(len(products))]
		items[i] = LineItem{
			Product:  product.name,
			Quantity: 1 + g.rng.IntN(2),
			Price:    decimal.New(product.cents, -2),
		}
	}
	return items
}

func (g *Generator) monthlySales() []decimal.Decimal {
	sales := make([]decimal.Decimal, 12)
	for i := range sales {
		sales[i] = decimal.New(int64(50000+g.rng.IntN(2500000)), -2)
	}
	return sales
}

func (g *Generator) personName() string {
	return pick(g.rng, firstNames) + " " + pick(g.rng, lastNames)
}

func (g *Generator) pastDate(days int) time.Time {
	return g.now.AddDate(0, 0, -g.rng.IntN(days)).Truncate(24 * time.Hour)
}

func (g *Generator) uuid() string {
	id, err := uuid.NewRandomFromReader(rngReader{g.rng})
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func orderTotal(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}

func emailFor(name, domain string) string {
	local := strings.ToLower(strings.ReplaceAll(name, " ", "."))
	host := strings.ToLower(strings.NewReplacer(" ", "-", "&", "and", "'", "").Replace(domain))
	return local + "@" + host + ".example"
}

func pick[T any](rng *rand.Rand, values []T) T {
	return values[rng.IntN(len(values))]
}

// rngReader feeds uuid generation from the seeded source.
type rngReader struct {
	rng *rand.Rand
}

func (r rngReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(r.rng.Uint32())
	}
	return len(p), nil
}

// OrderStatuses lists order statuses in lifecycle order.
func OrderStatuses() []string {
	return append([]string(nil), orderStatuses...)
}
