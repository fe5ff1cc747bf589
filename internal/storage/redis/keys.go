package redis

import (
	"fmt"

	"github.com/mcoot/yahtzee-go/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "yahtzee"

// tableKey returns the Redis key for a Table
func tableKey(id model.TableID) string {
	return fmt.Sprintf("%s:table:%s", keyPrefix, id)
}

// activeTableKey returns the Redis key holding the active table ID
func activeTableKey() string {
	return fmt.Sprintf("%s:active_table", keyPrefix)
}
