package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Cache de horários livres por (tenant, dia). TTL curto: uma lista um pouco
// velha é aceitável na UI, a corrida real é resolvida na criação do
// agendamento, não na leitura.
type AvailabilityCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewAvailabilityCache(rdb *redis.Client) *AvailabilityCache {
	return &AvailabilityCache{
		rdb: rdb,
		ttl: 60 * time.Second,
	}
}

func key(tenantID uint, date time.Time) string {
	return fmt.Sprintf("availability:%d:%s", tenantID, date.Format("2006-01-02"))
}

func (c *AvailabilityCache) Get(ctx context.Context, tenantID uint, date time.Time) ([]time.Time, bool) {
	raw, err := c.rdb.Get(ctx, key(tenantID, date)).Bytes()
	if err != nil {
		return nil, false
	}

	var slots []time.Time
	if err := json.Unmarshal(raw, &slots); err != nil {
		return nil, false
	}

	return slots, true
}

func (c *AvailabilityCache) Set(ctx context.Context, tenantID uint, date time.Time, slots []time.Time) {
	raw, err := json.Marshal(slots)
	if err != nil {
		return
	}

	c.rdb.Set(ctx, key(tenantID, date), raw, c.ttl)
}

// Invalidate derruba o dia após qualquer escrita de agendamento.
func (c *AvailabilityCache) Invalidate(ctx context.Context, tenantID uint, date time.Time) {
	c.rdb.Del(ctx, key(tenantID, date))
}
