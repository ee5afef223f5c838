package hotels

import (
	"sort"
	"strings"

	"tripcraft/internal/types"
)

func eur(amount int64) types.Money { return types.Money{Amount: amount, Currency: "EUR"} }
func usd(amount int64) types.Money { return types.Money{Amount: amount, Currency: "USD"} }
func jpy(amount int64) types.Money { return types.Money{Amount: amount, Currency: "JPY"} }

// DefaultHotels is the static catalog served by the mocked booking flow.
func DefaultHotels() []Hotel {
	return []Hotel{
		{
			ID: "lis-alfama", Name: "Casa Alfama", Location: "Lisbon, Portugal",
			Address: "Rua de São Miguel 12, Lisbon", Rating: 4.6,
			Rooms: []RoomType{
				{Code: "standard", Name: "Standard Double", Nightly: eur(9500), Total: 5},
				{Code: "suite", Name: "River Suite", Nightly: eur(21000), Total: 2},
			},
		},
		{
			ID: "lis-chiado", Name: "Chiado Lofts", Location: "Lisbon, Portugal",
			Address: "Rua Garrett 40, Lisbon", Rating: 4.3,
			Rooms: []RoomType{
				{Code: "standard", Name: "Studio Loft", Nightly: eur(12000), Total: 4},
			},
		},
		{
			ID: "nyc-midtown", Name: "Midtown Grand", Location: "New York, USA",
			Address: "151 W 54th St, New York, NY", Rating: 4.2,
			Rooms: []RoomType{
				{Code: "standard", Name: "Queen Room", Nightly: usd(24900), Total: 10},
				{Code: "deluxe", Name: "Deluxe King", Nightly: usd(34900), Total: 3},
			},
		},
		{
			ID: "kyo-gion", Name: "Gion Ryokan", Location: "Kyoto, Japan",
			Address: "570-120 Gionmachi Minamigawa, Kyoto", Rating: 4.8,
			Rooms: []RoomType{
				{Code: "tatami", Name: "Tatami Room", Nightly: jpy(3200000), Total: 3},
			},
		},
		{
			ID: "bali-ubud", Name: "Ubud Forest Eco Lodge", Location: "Bali, Indonesia",
			Address: "Jalan Monkey Forest, Ubud", Rating: 4.7,
			Rooms: []RoomType{
				{Code: "bungalow", Name: "Jungle Bungalow", Nightly: usd(8900), Total: 6},
			},
		},
	}
}

// Catalog is an immutable index over hotels.
type Catalog struct {
	hotels []Hotel
	byID   map[string]Hotel
}

func NewCatalog(hotels []Hotel) *Catalog {
	c := &Catalog{hotels: append([]Hotel(nil), hotels...), byID: make(map[string]Hotel, len(hotels))}
	sort.Slice(c.hotels, func(i, j int) bool { return c.hotels[i].ID < c.hotels[j].ID })
	for _, h := range c.hotels {
		c.byID[h.ID] = h
	}
	return c
}

// List returns hotels whose location contains the query, case-insensitively.
// An empty query returns everything.
func (c *Catalog) List(location string) []Hotel {
	q := strings.ToLower(strings.TrimSpace(location))
	out := make([]Hotel, 0, len(c.hotels))
	for _, h := range c.hotels {
		if q == "" || strings.Contains(strings.ToLower(h.Location), q) {
			out = append(out, h)
		}
	}
	return out
}

func (c *Catalog) Hotel(id string) (Hotel, bool) {
	h, ok := c.byID[id]
	return h, ok
}

// Hotels returns every hotel in id order.
func (c *Catalog) Hotels() []Hotel {
	return append([]Hotel(nil), c.hotels...)
}
