package forecast

import (
	"fmt"
	"time"
)

// Bucket is a discretized range of days until a trade completes.
type Bucket int

const (
	// Expired covers completion today or in the past.
	Expired Bucket = iota
	// Short is 1 to 30 days out.
	Short
	// Medium is 31 to 90 days out.
	Medium
	// Long is more than 90 days out.
	Long
)

// Buckets lists every bucket from nearest to furthest horizon.
var Buckets = []Bucket{Expired, Short, Medium, Long}

// BucketFor maps a day count onto exactly one bucket.
func BucketFor(days int) Bucket {
	switch {
	case days <= 0:
		return Expired
	case days <= 30:
		return Short
	case days <= 90:
		return Medium
	default:
		return Long
	}
}

func (b Bucket) String() string {
	switch b {
	case Expired:
		return "<=0"
	case Short:
		return "1-30"
	case Medium:
		return "31-90"
	case Long:
		return ">90"
	default:
		return fmt.Sprintf("Bucket(%d)", int(b))
	}
}

func (b Bucket) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// DaysUntil returns the number of calendar days from today to completion.
// Only the calendar date of each value is used; time of day and DST shifts
// do not change the result.
func DaysUntil(today, completion time.Time) int {
	y1, m1, d1 := today.Date()
	y2, m2, d2 := completion.Date()
	from := time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)
	to := time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}
