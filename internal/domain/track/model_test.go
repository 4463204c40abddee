package track_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/attnlabs/focusd/internal/domain/track"
)

func TestTimeDataAdd(t *testing.T) {
	td := make(track.TimeData)
	td.Add("2026-08-28", "github.com", 30)
	td.Add("2026-08-28", "github.com", 12)
	td.Add("2026-08-28", "reddit.com", 5)
	td.Add("2026-08-29", "github.com", 7)

	require.Equal(t, int64(42), td["2026-08-28"]["github.com"])
	require.Equal(t, int64(5), td["2026-08-28"]["reddit.com"])
	require.Equal(t, int64(7), td["2026-08-29"]["github.com"])
}

func TestTimeDataAddIgnoresNonPositive(t *testing.T) {
	td := make(track.TimeData)
	td.Add("2026-08-28", "github.com", 0)
	td.Add("2026-08-28", "github.com", -5)
	require.Empty(t, td)
}

func TestTimeDataDeleteDomain(t *testing.T) {
	td := track.TimeData{
		"2026-08-27": {"reddit.com": 100},
		"2026-08-28": {"reddit.com": 50, "github.com": 200},
	}

	td.DeleteDomain("reddit.com")

	_, ok := td["2026-08-27"]
	require.False(t, ok, "day left empty should be dropped")
	require.Equal(t, int64(200), td["2026-08-28"]["github.com"])
}

func TestTimeDataClone(t *testing.T) {
	td := track.TimeData{"2026-08-28": {"github.com": 10}}
	clone := td.Clone()
	clone.Add("2026-08-28", "github.com", 90)

	require.Equal(t, int64(10), td["2026-08-28"]["github.com"])
	require.Equal(t, int64(100), clone["2026-08-28"]["github.com"])
}

func TestDayKey(t *testing.T) {
	day := time.Date(2026, 8, 28, 23, 59, 59, 0, time.Local)
	require.Equal(t, "2026-08-28", track.DayKey(day))
}
