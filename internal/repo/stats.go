// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides a cheap aggregate over records used to
// build weak ETags for the listing endpoint.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// RecordsStats returns the record count and the newest created_at across all
// records. Both values are stable inputs for a weak ETag: any insert or
// deactivation changes at least one of them only when rows are added, so the
// tag is a best-effort freshness signal, not a strong validator.
func RecordsStats(ctx context.Context, db *gorm.DB) (count int64, maxCreatedAt *time.Time, err error) {
	type row struct {
		N   int64
		Max *time.Time
	}
	var r row
	err = db.WithContext(ctx).
		Raw("SELECT COUNT(*) AS n, MAX(created_at) AS max FROM records").
		Scan(&r).Error
	if err != nil {
		return 0, nil, err
	}
	return r.N, r.Max, nil
}
