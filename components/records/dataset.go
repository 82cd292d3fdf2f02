package records

import "time"

// DatasetOptions sizes the generated tables. Counts exclude the fixed first record.
type DatasetOptions struct {
	Seed     uint64
	Now      time.Time
	Orders   int
	Sellers  int
	Team     int
	Sessions int
}

// Dataset holds one store per back-office table.
type Dataset struct {
	Orders        *Store[Order]
	Sellers       *Store[Seller]
	Team          *Store[TeamMember]
	Transit       *Store[TransitRecord]
	Disbursements *Store[Disbursement]
	Sessions      *Store[PhotoSession]
}

// DefaultDatasetOptions mirrors the sizes used by the dashboard during development.
func DefaultDatasetOptions() DatasetOptions {
	return DatasetOptions{
		Orders:   40,
		Sellers:  12,
		Team:     9,
		Sessions: 18,
	}
}

// NewDataset generates every table once. Related tables reference each other's keys.
func NewDataset(opts DatasetOptions) *Dataset {
	gen := NewGenerator(opts.Seed, opts.Now)
	sellers := gen.Sellers(opts.Sellers)
	team := gen.TeamMembers(opts.Team)
	orders := gen.Orders(opts.Orders, sellers)
	return &Dataset{
		Orders:        NewStore(func(o Order) string { return o.OrderID }, orders...),
		Sellers:       NewStore(func(s Seller) string { return s.ID }, sellers...),
		Team:          NewStore(func(m TeamMember) string { return m.ID }, team...),
		Transit:       NewStore(func(t TransitRecord) string { return t.TransitID }, gen.TransitRecords(orders)...),
		Disbursements: NewStore(func(d Disbursement) string { return d.ID }, gen.Disbursements(orders)...),
		Sessions:      NewStore(func(p PhotoSession) string { return p.ID }, gen.Sessions(opts.Sessions, team, sellers)...),
	}
}
