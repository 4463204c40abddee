package track

import "time"

// DayRecord maps a domain to accumulated active seconds within one day.
type DayRecord map[string]int64

// TimeData maps a local calendar day ("2006-01-02") to its DayRecord.
// Seconds for a (day, domain) pair only grow, except on explicit deletion.
type TimeData map[string]DayRecord

// DayKey formats t as the local calendar-day key used throughout the store.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// Add accumulates seconds for (day, domain), creating buckets as needed.
func (td TimeData) Add(day, domain string, seconds int64) {
	if seconds <= 0 {
		return
	}
	bucket, ok := td[day]
	if !ok {
		bucket = DayRecord{}
		td[day] = bucket
	}
	bucket[domain] += seconds
}

// DeleteDomain removes a domain from every day's bucket, dropping days that
// become empty.
func (td TimeData) DeleteDomain(domain string) {
	for day, bucket := range td {
		delete(bucket, domain)
		if len(bucket) == 0 {
			delete(td, day)
		}
	}
}

// Clone returns a deep copy, never nil.
func (td TimeData) Clone() TimeData {
	out := make(TimeData, len(td))
	for day, bucket := range td {
		copied := make(DayRecord, len(bucket))
		for domain, secs := range bucket {
			copied[domain] = secs
		}
		out[day] = copied
	}
	return out
}

// IdleState mirrors the host's idle detector states.
type IdleState string

const (
	IdleActive IdleState = "active"
	IdleIdle   IdleState = "idle"
	IdleLocked IdleState = "locked"
)

// ActiveSession is the tracker's in-memory notion of "what the user is on
// right now". It is never persisted; its elapsed time is flushed into
// TimeData. A zero StartedAt means the session clock is not running.
type ActiveSession struct {
	Domain    string
	URL       string
	StartedAt time.Time
}
