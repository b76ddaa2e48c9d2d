package metrics

import (
	"time"

	"gorm.io/gorm"
)

const startKey = "metrics:query_start"

// QueryTimer is a gorm plugin observing QueryDuration for raw statements.
type QueryTimer struct{}

func (QueryTimer) Name() string { return "billing:query_timer" }

func (QueryTimer) Initialize(db *gorm.DB) error {
	if err := db.Callback().Row().Before("gorm:row").Register("metrics:row_start", start); err != nil {
		return err
	}
	if err := db.Callback().Row().After("gorm:row").Register("metrics:row_end", observe("read")); err != nil {
		return err
	}
	if err := db.Callback().Raw().Before("gorm:raw").Register("metrics:raw_start", start); err != nil {
		return err
	}
	return db.Callback().Raw().After("gorm:raw").Register("metrics:raw_end", observe("write"))
}

func start(db *gorm.DB) {
	db.InstanceSet(startKey, time.Now())
}

func observe(kind string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		v, ok := db.InstanceGet(startKey)
		if !ok {
			return
		}
		if t, ok := v.(time.Time); ok {
			QueryDuration.WithLabelValues(kind).Observe(time.Since(t).Seconds())
		}
	}
}
