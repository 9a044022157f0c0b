package calendar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

const (
	keyPrefix    = "calendar:counts:"
	genKeyPrefix = "calendar:gen:"
)

var errStaleGeneration = errors.New("calendar cache: stale generation")

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// Cache кэш помесячных счётчиков календаря в Redis.
// Источник истины - БД: ошибки Redis только логируются.
// С nil-клиентом кэш выключен и все методы ничего не делают
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	log    Logger
}

// entry формат хранения в Redis
type entry struct {
	D string `json:"d"`
	C int    `json:"c"`
}

// NewCache создает кэш календаря
func NewCache(client *redis.Client, ttl time.Duration, log Logger) *Cache {
	return &Cache{client: client, ttl: ttl, log: log}
}

// Key ключ счётчиков месяца: calendar:counts:YYYY-MM
func Key(year int, month time.Month) string {
	return fmt.Sprintf("%s%04d-%02d", keyPrefix, year, int(month))
}

// GenKey ключ поколения месяца: calendar:gen:YYYY-MM.
// Invalidate увеличивает поколение, SetCounts пишет только при совпадении
func GenKey(year int, month time.Month) string {
	return fmt.Sprintf("%s%04d-%02d", genKeyPrefix, year, int(month))
}

// Generation возвращает текущее поколение месяца; отсутствующий ключ - 0.
// Значение нужно прочитать до запроса в БД и передать в SetCounts
func (c *Cache) Generation(ctx context.Context, year int, month time.Month) int64 {
	if c.client == nil {
		return 0
	}

	gen, err := c.client.Get(ctx, GenKey(year, month)).Int64()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("calendar cache: get %s failed: %v", GenKey(year, month), err)
		}
		return 0
	}

	return gen
}

// GetCounts возвращает счётчики месяца и признак попадания в кэш
func (c *Cache) GetCounts(ctx context.Context, year int, month time.Month) ([]domain.DayCount, bool) {
	if c.client == nil {
		return nil, false
	}

	raw, err := c.client.Get(ctx, Key(year, month)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("calendar cache: get %s failed: %v", Key(year, month), err)
		}
		return nil, false
	}

	var entries []entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		c.log.Warn("calendar cache: corrupted value for %s: %v", Key(year, month), err)
		return nil, false
	}

	counts := make([]domain.DayCount, 0, len(entries))
	for _, e := range entries {
		d, err := types.ParseDate(e.D)
		if err != nil {
			c.log.Warn("calendar cache: corrupted date %q for %s", e.D, Key(year, month))
			return nil, false
		}
		counts = append(counts, domain.DayCount{Date: d, Count: e.C})
	}

	return counts, true
}

// SetCounts сохраняет счётчики месяца, если с момента чтения gen месяц не инвалидировали.
// Иначе счётчики устарели и не пишутся
func (c *Cache) SetCounts(ctx context.Context, year int, month time.Month, gen int64, counts []domain.DayCount) {
	if c.client == nil {
		return
	}

	entries := make([]entry, len(counts))
	for i, dc := range counts {
		entries[i] = entry{D: dc.Date.String(), C: dc.Count}
	}

	raw, err := json.Marshal(entries)
	if err != nil {
		c.log.Warn("calendar cache: marshal %s failed: %v", Key(year, month), err)
		return
	}

	genKey := GenKey(year, month)

	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, genKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != gen {
			return errStaleGeneration
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, Key(year, month), raw, c.ttl)
			return nil
		})
		return err
	}, genKey)

	switch {
	case err == nil:
	case errors.Is(err, errStaleGeneration), errors.Is(err, redis.TxFailedErr):
		// месяц инвалидировали, пока считали счётчики
	default:
		c.log.Warn("calendar cache: set %s failed: %v", Key(year, month), err)
	}
}

// Invalidate удаляет счётчики месяца, к которому относится дата, и увеличивает его поколение
func (c *Cache) Invalidate(ctx context.Context, date types.Date) {
	if c.client == nil || date.IsZero() {
		return
	}

	year, month := date.Year(), date.Month()
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, GenKey(year, month))
		pipe.Del(ctx, Key(year, month))
		return nil
	})
	if err != nil {
		c.log.Warn("calendar cache: invalidate %s failed: %v", Key(year, month), err)
	}
}
