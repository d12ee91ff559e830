package analytics

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/anyulbade/merchant-dashboard-api/internal/model"
)

const (
	Range1D  = "1D"
	Range7D  = "7D"
	Range30D = "30D"
)

// ValidRange reports whether token is one of the supported chart ranges.
func ValidRange(token string) bool {
	switch token {
	case Range1D, Range7D, Range30D:
		return true
	}
	return false
}

// Bucket keys are cut from the literal timestamp ("2025-12-01T09:15:00..."),
// never from a zone-converted time.
func hourKey(datetime string) (string, bool) {
	if len(datetime) < 13 {
		return "", false
	}
	return datetime[11:13] + ":00", true
}

func dayKey(datetime string) (string, bool) {
	if len(datetime) < 10 {
		return "", false
	}
	return datetime[:10], true
}

func bucketBy(txs []model.EnrichedTransaction, key func(string) (string, bool)) []model.Bucket {
	index := make(map[string]int)
	buckets := []model.Bucket{}

	for _, t := range txs {
		if !t.Succeeded() {
			continue
		}
		k, ok := key(t.Datetime)
		if !ok {
			continue
		}
		i, seen := index[k]
		if !seen {
			i = len(buckets)
			index[k] = i
			buckets = append(buckets, model.Bucket{Name: k, Amount: decimal.Zero})
		}
		buckets[i].Amount = buckets[i].Amount.Add(t.Amount)
	}

	// Zero-padded hour and ISO date keys sort chronologically as strings.
	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].Name < buckets[j].Name
	})
	return buckets
}

// BucketByHour sums successful transactions per hour of day ("00:00".."23:00").
// Hours without transactions are omitted.
func BucketByHour(txs []model.EnrichedTransaction) []model.Bucket {
	return bucketBy(txs, hourKey)
}

// BucketByDay sums successful transactions per calendar date, oldest first.
func BucketByDay(txs []model.EnrichedTransaction) []model.Bucket {
	return bucketBy(txs, dayKey)
}

// SeriesForRange picks the chart series for a range token: hourly buckets for
// 1D, otherwise the first 7 or 30 daily buckets.
func SeriesForRange(hourly, daily []model.Bucket, token string) ([]model.Bucket, error) {
	switch token {
	case Range1D:
		return hourly, nil
	case Range7D:
		return firstN(daily, 7), nil
	case Range30D:
		return firstN(daily, 30), nil
	}
	return nil, fmt.Errorf("unknown range %q", token)
}

func firstN(buckets []model.Bucket, n int) []model.Bucket {
	if len(buckets) <= n {
		return buckets
	}
	return buckets[:n]
}
