package cache

import (
	"context"
	"encoding/json"
	"time"

	"mebsy_store_front/internal/database"
	"mebsy_store_front/internal/gateway"
	"mebsy_store_front/internal/models"
)

const (
	ProfileCacheTTL = 5 * time.Minute
	AddressCacheTTL = 5 * time.Minute
)

// GetProfile récupère le profil depuis Redis ou le backend
func GetProfile(ctx context.Context, gw gateway.OrderGateway, userID string) (*models.Profile, error) {
	key := "profile:" + userID

	// 1. Essayer le cache Redis
	data, err := database.Redis.Get(ctx, key).Result()
	if err == nil {
		var profile models.Profile
		if json.Unmarshal([]byte(data), &profile) == nil {
			return &profile, nil
		}
	}

	// 2. Récupérer depuis le backend
	profile, err := gw.GetProfile(ctx)
	if err != nil {
		return nil, err
	}

	// 3. Mettre en cache
	jsonData, _ := json.Marshal(profile)
	database.Redis.Set(ctx, key, jsonData, ProfileCacheTTL)

	return profile, nil
}

// GetAddresses récupère les adresses depuis Redis ou le backend
func GetAddresses(ctx context.Context, gw gateway.OrderGateway, userID string) ([]models.Address, error) {
	key := "addresses:" + userID

	data, err := database.Redis.Get(ctx, key).Result()
	if err == nil {
		var addresses []models.Address
		if json.Unmarshal([]byte(data), &addresses) == nil {
			return addresses, nil
		}
	}

	addresses, err := gw.ListAddresses(ctx)
	if err != nil {
		return nil, err
	}

	jsonData, _ := json.Marshal(addresses)
	database.Redis.Set(ctx, key, jsonData, AddressCacheTTL)

	return addresses, nil
}

// InvalidateUserCache invalide le cache profil + adresses d'un utilisateur
func InvalidateUserCache(userID string) {
	ctx := context.Background()
	database.Redis.Del(ctx, "profile:"+userID, "addresses:"+userID)
}
