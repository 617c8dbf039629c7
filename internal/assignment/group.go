package assignment

import "time"

// Bucket names an assignment's due-date proximity partition.
type Bucket string

const (
	BucketOverdue  Bucket = "overdue"
	BucketToday    Bucket = "today"
	BucketTomorrow Bucket = "tomorrow"
	BucketThisWeek Bucket = "thisWeek"
	BucketLater    Bucket = "later"
)

// BucketOrder is the fixed presentation order for buckets. This is a
// rendering contract, not incidental: callers iterate groups in this order.
var BucketOrder = []Bucket{BucketOverdue, BucketToday, BucketTomorrow, BucketThisWeek, BucketLater}

// BucketLabel returns a display heading for a bucket.
func BucketLabel(b Bucket) string {
	switch b {
	case BucketOverdue:
		return "Overdue 🚨"
	case BucketToday:
		return "Due Today 🔥"
	case BucketTomorrow:
		return "Due Tomorrow 📅"
	case BucketThisWeek:
		return "Due This Week 🗓️"
	case BucketLater:
		return "Due Later 💤"
	default:
		return string(b)
	}
}

// BucketFor maps a days-until-due count onto its bucket.
func BucketFor(days int) Bucket {
	switch {
	case days < 0:
		return BucketOverdue
	case days == 0:
		return BucketToday
	case days == 1:
		return BucketTomorrow
	case days <= 7:
		return BucketThisWeek
	default:
		return BucketLater
	}
}

// Group is one non-empty bucket of assignments, sorted by descending
// priority score.
type Group struct {
	Bucket      Bucket
	Assignments []Assignment
}

// GroupByDue partitions assignments into due-date buckets and sorts each
// bucket by descending priority score. Every input assignment lands in
// exactly one bucket; empty buckets are omitted. Within a bucket, equal
// scores preserve the input's relative order.
func GroupByDue(assignments []Assignment, ref time.Time) ([]Group, error) {
	return GroupByDueWith(assignments, ref, DefaultWeights())
}

// GroupByDueWith is GroupByDue with explicit score weights.
func GroupByDueWith(assignments []Assignment, ref time.Time, w Weights) ([]Group, error) {
	buckets := make(map[Bucket][]Assignment)

	for _, a := range assignments {
		days, err := DaysUntilDue(a.DueDate, ref)
		if err != nil {
			return nil, err
		}
		b := BucketFor(days)
		buckets[b] = append(buckets[b], a)
	}

	var groups []Group
	for _, b := range BucketOrder {
		items := buckets[b]
		if len(items) == 0 {
			continue
		}
		if err := SortByScore(items, ref, w); err != nil {
			return nil, err
		}
		groups = append(groups, Group{Bucket: b, Assignments: items})
	}
	return groups, nil
}
