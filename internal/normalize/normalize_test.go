package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestUnit(t *testing.T) {
	cases := map[string]string{
		"  10a ":  "10A",
		"１０ａ":    "10A", // 全形折半形
		"ICU":     "ICU",
		"":        UnitUnknown,
		"   ":     UnitUnknown,
		"nan":     UnitUnknown,
		"NAN":     UnitUnknown,
		"護理之家":    "護理之家",
	}
	for raw, want := range cases {
		require.Equal(t, want, Unit(raw), "raw=%q", raw)
	}
}

func TestTimeSlot_BothBoundaryNotations(t *testing.T) {
	require.Equal(t, "00-02時", TimeSlot("00:01-02:00"))
	require.Equal(t, "00-02時", TimeSlot("00:00-02:00"))
	require.Equal(t, "22-24時", TimeSlot("22:01-24:00"))
	require.Equal(t, "08-10時", TimeSlot(" 08:01-10:00 "))
}

func TestTimeSlot_UnmappedIsEmpty(t *testing.T) {
	require.Equal(t, "", TimeSlot("大約中午"))
	require.Equal(t, "", TimeSlot(""))
}

func TestTimeSlotOrder_CoversMap(t *testing.T) {
	require.Len(t, TimeSlotOrder, 12)
	seen := map[string]bool{}
	for _, raw := range []string{"00:01-02:00", "02:01-04:00", "04:01-06:00",
		"06:01-08:00", "08:01-10:00", "10:01-12:00", "12:01-14:00",
		"14:01-16:00", "16:01-18:00", "18:01-20:00", "20:01-22:00", "22:01-24:00"} {
		seen[TimeSlot(raw)] = true
	}
	for _, b := range TimeSlotOrder {
		require.True(t, seen[b], "bucket %s unreachable", b)
	}
}

func TestPeriodKey_SortsChronologically(t *testing.T) {
	d1 := time.Date(2024, 9, 30, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC)
	d3 := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	require.Equal(t, "2024-09", PeriodKey(d1))
	require.True(t, PeriodKey(d1) < PeriodKey(d2))
	require.True(t, PeriodKey(d2) < PeriodKey(d3))
}

func TestPeriodDisplay(t *testing.T) {
	require.Equal(t, "2024/01", PeriodDisplay("2024-01"))
}
