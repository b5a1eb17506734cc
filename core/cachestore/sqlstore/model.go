package sqlstore

import "time"

// CacheStore records that a named store exists.
type CacheStore struct {
	Name      string    `gorm:"column:name;type:varchar(64);primaryKey"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (CacheStore) TableName() string {
	return "cache_stores"
}

// CacheEntry is one cached response.
type CacheEntry struct {
	Store    string    `gorm:"column:store;type:varchar(64);primaryKey"`
	CacheKey string    `gorm:"column:cache_key;type:varchar(700);primaryKey"`
	URL      string    `gorm:"column:url;type:text"`
	Status   int       `gorm:"column:status;type:int"`
	Header   string    `gorm:"column:header;type:text"`
	Body     []byte    `gorm:"column:body"`
	StoredAt time.Time `gorm:"column:stored_at"`
}

func (CacheEntry) TableName() string {
	return "cache_entries"
}
