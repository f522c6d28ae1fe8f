package mirror

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/julianstephens/waktu/internal/constants"
)

// Redis mirrors each schedule as a JSON string and indexes the dates of a
// city in a sorted set scored by day.
type Redis struct {
	rdb *redis.Client
}

// OpenRedis connects to addr and checks the connection.
func OpenRedis(ctx context.Context, addr, username, password string) (*Redis, error) {
	if addr == "" {
		return nil, errors.New("redis mirror needs an address")
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Username: username,
		Password: password,
		DB:       0,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis mirror: %w", err)
	}
	return &Redis{rdb: rdb}, nil
}

func recordKey(cityID, date string) string {
	return fmt.Sprintf("%s:%s:%s", constants.RedisKeyPrefix, cityID, date)
}

func datesKey(cityID string) string {
	return fmt.Sprintf("%s:%s:dates", constants.RedisKeyPrefix, cityID)
}

// dateScore orders YYYY-MM-DD dates numerically.
func dateScore(date string) (float64, error) {
	t, err := time.Parse(constants.DateFormat, date)
	if err != nil {
		return 0, fmt.Errorf("invalid schedule date %q: %w", date, err)
	}
	return float64(t.Unix() / 86400), nil
}

func (r *Redis) Upsert(ctx context.Context, rec Record) error {
	score, err := dateScore(rec.Date)
	if err != nil {
		return err
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	_, err = r.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, recordKey(rec.CityID, rec.Date), data, 0)
		p.ZAdd(ctx, datesKey(rec.CityID), redis.Z{Score: score, Member: rec.Date})
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to upsert schedule %s/%s: %w", rec.CityID, rec.Date, err)
	}
	return nil
}

func (r *Redis) History(ctx context.Context, cityID string, limit int) ([]Record, error) {
	if limit <= 0 {
		return nil, nil
	}
	dates, err := r.rdb.ZRevRange(ctx, datesKey(cityID), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}
	if len(dates) == 0 {
		return nil, nil
	}

	keys := make([]string, len(dates))
	for i, d := range dates {
		keys[i] = recordKey(cityID, d)
	}
	values, err := r.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	out := make([]Record, 0, len(values))
	for i, v := range values {
		s, ok := v.(string)
		if !ok {
			continue
		}
		var rec Record
		if err := json.Unmarshal([]byte(s), &rec); err != nil {
			return nil, fmt.Errorf("corrupt mirror record %s: %w", keys[i], err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func (r *Redis) Ping(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}

func (r *Redis) Close() error {
	return r.rdb.Close()
}
