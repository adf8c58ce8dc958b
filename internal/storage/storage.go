// Package storage provides the key-value persistence port the rest of
// the application writes through. Values are opaque strings; callers
// own the encoding.
package storage

// Well-known keys.
const (
	KeyCategories           = "categories"
	KeyActivities           = "activities"
	KeyActiveActivity       = "activeActivity"
	KeyMultiSelectEnabled   = "multiSelectEnabled"
	KeyIncludeTodayCompare  = "includeTodayInComparison"
	KeyLinkedEmail          = "linkedEmail"
	KeyLastSyncTime         = "lastSyncTime"
)

// Storage is a string key-value store. Get reports ok=false for a
// missing key, which is not an error.
type Storage interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Delete(key string) error
	Close() error
}
