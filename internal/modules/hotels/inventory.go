package hotels

import (
	"context"
	"sync"
)

// Reservation is the result of taking one room out of inventory.
type Reservation struct {
	HotelID   string
	RoomType  string
	Remaining int
}

// Inventory tracks remaining rooms per hotel and room type.
type Inventory interface {
	Reserve(ctx context.Context, hotelID, roomType string) (Reservation, error)
	Release(ctx context.Context, hotelID, roomType string) error
	Available(ctx context.Context, hotelID, roomType string) (int, error)
}

type roomKey struct {
	hotelID  string
	roomType string
}

// MemoryInventory holds counters in process memory. Check and decrement happen under one lock.
type MemoryInventory struct {
	mu    sync.Mutex
	rooms map[roomKey]int
	total map[roomKey]int
}

// NewMemoryInventory seeds every room type of the catalog with its total count.
func NewMemoryInventory(catalog *Catalog) *MemoryInventory {
	inv := &MemoryInventory{rooms: make(map[roomKey]int), total: make(map[roomKey]int)}
	for _, h := range catalog.Hotels() {
		for _, r := range h.Rooms {
			k := roomKey{h.ID, r.Code}
			inv.rooms[k] = r.Total
			inv.total[k] = r.Total
		}
	}
	return inv
}

func (m *MemoryInventory) Reserve(_ context.Context, hotelID, roomType string) (Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := roomKey{hotelID, roomType}
	left, ok := m.rooms[k]
	if !ok {
		return Reservation{}, ErrUnknownRoomType
	}
	if left <= 0 {
		return Reservation{}, ErrSoldOut
	}
	m.rooms[k] = left - 1
	return Reservation{HotelID: hotelID, RoomType: roomType, Remaining: left - 1}, nil
}

func (m *MemoryInventory) Release(_ context.Context, hotelID, roomType string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := roomKey{hotelID, roomType}
	left, ok := m.rooms[k]
	if !ok {
		return ErrUnknownRoomType
	}
	if left < m.total[k] {
		m.rooms[k] = left + 1
	}
	return nil
}

func (m *MemoryInventory) Available(_ context.Context, hotelID, roomType string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	left, ok := m.rooms[roomKey{hotelID, roomType}]
	if !ok {
		return 0, ErrUnknownRoomType
	}
	return left, nil
}
