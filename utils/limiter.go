package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Advisory calls are the only metered external requests: at most one per
// minute and ten per hour for a given application.
func CanRequestAdvice(rdb *redis.Client, key string) (bool, string) {
	ctx := context.Background()
	minuteKey := fmt.Sprintf("advice_minute_%s", key)
	hourKey := fmt.Sprintf("advice_hour_%s", key)
	if rdb.Exists(ctx, minuteKey).Val() > 0 {
		return false, "Please wait a minute before requesting advice again"
	}
	cnt, _ := rdb.Get(ctx, hourKey).Int()
	if cnt >= 10 {
		return false, "Advice limit reached, try again in an hour"
	}
	return true, ""
}

func MarkAdviceRequested(rdb *redis.Client, key string) {
	ctx := context.Background()
	minuteKey := fmt.Sprintf("advice_minute_%s", key)
	hourKey := fmt.Sprintf("advice_hour_%s", key)
	rdb.Set(ctx, minuteKey, 1, 60*time.Second)
	rdb.Incr(ctx, hourKey)
	rdb.Expire(ctx, hourKey, time.Hour)
}
