package domain

import "fmt"

const cacheKeyPrefix = "inventory"

// StatusCacheKey is the cache key for one record's status view.
func StatusCacheKey(key RecordKey) string {
	return fmt.Sprintf("%s:status:%s:%s:%s", cacheKeyPrefix, key.Kind, key.ItemID, key.Location)
}

// ItemCacheKey is the cache key for an item's aggregate (all locations) view.
func ItemCacheKey(item ItemRef) string {
	return fmt.Sprintf("%s:item:%s:%s", cacheKeyPrefix, item.Kind, item.ID)
}

// ItemStatusPattern matches every location status key of an item.
func ItemStatusPattern(item ItemRef) string {
	return fmt.Sprintf("%s:status:%s:%s:*", cacheKeyPrefix, item.Kind, item.ID)
}
