// README: Room inventory backed by Redis counters (DECR with compensating INCR).
package hotels

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

const inventoryKeyPrefix = "hotels:inventory:%s:%s"

// releaseScript increments the counter only while it is below the room total
// (ARGV[1]). A missing counter is left alone.
var releaseScript = redis.NewScript(`
local v = redis.call('GET', KEYS[1])
if not v then
  return -1
end
v = tonumber(v)
if v < tonumber(ARGV[1]) then
  return redis.call('INCR', KEYS[1])
end
return v
`)

type RedisInventory struct {
	redis   *redis.Client
	catalog *Catalog
}

func NewRedisInventory(client *redis.Client, catalog *Catalog) *RedisInventory {
	return &RedisInventory{redis: client, catalog: catalog}
}

// Seed writes the catalog totals for counters that do not exist yet, so
// restarts keep the remaining counts.
func (s *RedisInventory) Seed(ctx context.Context) error {
	pipe := s.redis.Pipeline()
	for _, h := range s.catalog.Hotels() {
		for _, r := range h.Rooms {
			pipe.SetNX(ctx, inventoryKey(h.ID, r.Code), r.Total, 0)
		}
	}
	_, err := pipe.Exec(ctx)
	return err
}

// Reserve decrements atomically. A negative result means another booking took
// the last room; the decrement is undone and ErrSoldOut returned.
func (s *RedisInventory) Reserve(ctx context.Context, hotelID, roomType string) (Reservation, error) {
	if _, err := s.known(hotelID, roomType); err != nil {
		return Reservation{}, err
	}
	key := inventoryKey(hotelID, roomType)
	left, err := s.redis.Decr(ctx, key).Result()
	if err != nil {
		return Reservation{}, err
	}
	if left < 0 {
		if err := s.redis.Incr(ctx, key).Err(); err != nil {
			return Reservation{}, fmt.Errorf("restore oversold counter %s: %w", key, err)
		}
		return Reservation{}, ErrSoldOut
	}
	return Reservation{HotelID: hotelID, RoomType: roomType, Remaining: int(left)}, nil
}

// Release returns one room, never raising the counter above the catalog total.
func (s *RedisInventory) Release(ctx context.Context, hotelID, roomType string) error {
	room, err := s.known(hotelID, roomType)
	if err != nil {
		return err
	}
	return releaseScript.Run(ctx, s.redis, []string{inventoryKey(hotelID, roomType)}, room.Total).Err()
}

func (s *RedisInventory) Available(ctx context.Context, hotelID, roomType string) (int, error) {
	if _, err := s.known(hotelID, roomType); err != nil {
		return 0, err
	}
	val, err := s.redis.Get(ctx, inventoryKey(hotelID, roomType)).Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("parse inventory counter: %w", err)
	}
	return n, nil
}

func (s *RedisInventory) known(hotelID, roomType string) (RoomType, error) {
	h, ok := s.catalog.Hotel(hotelID)
	if !ok {
		return RoomType{}, ErrUnknownHotel
	}
	room, ok := h.Room(roomType)
	if !ok {
		return RoomType{}, ErrUnknownRoomType
	}
	return room, nil
}

func inventoryKey(hotelID, roomType string) string {
	return fmt.Sprintf(inventoryKeyPrefix, hotelID, roomType)
}
