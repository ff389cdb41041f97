package progress

import (
	"log"

	"github.com/mindhaven/mindhaven-api/db"
	"github.com/mindhaven/mindhaven-api/models"
	"github.com/mindhaven/mindhaven-api/redis"
)

// Default is the tracker the HTTP handlers use. Built by Init once the DB
// and Redis connections exist.
var Default *Tracker

func Init() {
	Default = New(&profileStore{})
}

// profileStore keeps the profile row authoritative and mirrors the stage
// into the session cache. Cache failures are logged and swallowed.
type profileStore struct{}

func (profileStore) Save(userID string, stage Stage) error {
	err := db.DB.Model(&models.UserProfile{}).
		Where("id = ?", userID).
		Update("setup_progress", string(stage)).Error
	if err != nil {
		return err
	}
	if cacheErr := redis.SetJSON(redis.ProgressKey(userID), string(stage), 0); cacheErr != nil {
		log.Printf("Failed to cache progress for %s: %v", userID, cacheErr)
	}
	return nil
}

func (profileStore) Load(userID string) (Stage, bool, error) {
	var user models.UserProfile
	if err := db.DB.Select("setup_progress").First(&user, "id = ?", userID).Error; err != nil {
		// Fall back to the cache when the row is unreachable.
		var cached string
		if ok, cacheErr := redis.GetJSON(redis.ProgressKey(userID), &cached); cacheErr == nil && ok {
			return Stage(cached), true, nil
		}
		return "", false, err
	}
	if user.SetupProgress == "" {
		return "", false, nil
	}
	stage := Stage(user.SetupProgress)
	// Reconcile the cache with the remote value, remote winning.
	if cacheErr := redis.SetJSON(redis.ProgressKey(userID), user.SetupProgress, 0); cacheErr != nil {
		log.Printf("Failed to refresh cached progress for %s: %v", userID, cacheErr)
	}
	return stage, true, nil
}
