package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/scheduling"
)

const availabilityTTL = 30 * time.Second

// Availability is a cache-aside layer over the availability resolver.
// Every method is a no-op on a nil receiver, so redis stays optional.
type Availability struct {
	rdb *redis.Client
}

func NewAvailability(rdb *redis.Client) *Availability {
	if rdb == nil {
		return nil
	}
	return &Availability{rdb: rdb}
}

func key(doctorUserID, date string) string {
	return "availability:" + doctorUserID + ":" + date
}

func (a *Availability) Get(ctx context.Context, doctorUserID, date string) ([]scheduling.SlotView, bool) {
	if a == nil {
		return nil, false
	}

	raw, err := a.rdb.Get(ctx, key(doctorUserID, date)).Bytes()
	if err != nil {
		return nil, false
	}

	var views []scheduling.SlotView
	if err := json.Unmarshal(raw, &views); err != nil {
		return nil, false
	}
	return views, true
}

func (a *Availability) Set(ctx context.Context, doctorUserID, date string, views []scheduling.SlotView) {
	if a == nil {
		return
	}

	b, err := json.Marshal(views)
	if err != nil {
		return
	}
	a.rdb.Set(ctx, key(doctorUserID, date), b, availabilityTTL)
}

// Invalidate drops the cached day after any capacity-changing write.
func (a *Availability) Invalidate(ctx context.Context, doctorUserID, date string) {
	if a == nil {
		return
	}
	a.rdb.Del(ctx, key(doctorUserID, date))
}
