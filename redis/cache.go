package redis

import (
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// Session cache keys. These mirror the persisted-state keys the mobile
// client uses: the server copy is a bootstrap cache only, the profile row
// stays authoritative.
const (
	sessionKeyPrefix  = "mind-haven-session:"
	progressKeyPrefix = "care-provider-progress:"
)

func SessionKey(userID string) string {
	return sessionKeyPrefix + userID
}

func ProgressKey(userID string) string {
	return progressKeyPrefix + userID
}

// SetJSON stores v as a plain JSON blob. A zero ttl keeps the key forever.
func SetJSON(key string, v interface{}, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return Client.Set(Ctx, key, data, ttl).Err()
}

// GetJSON loads a JSON blob into dest. Returns false when the key is absent.
func GetJSON(key string, dest interface{}) (bool, error) {
	data, err := Client.Get(Ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

func Delete(key string) error {
	return Client.Del(Ctx, key).Err()
}
