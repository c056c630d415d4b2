package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"psi-dashboard/internal/models"
)

func mkIncident(day time.Time) models.Incident {
	return models.Incident{
		OccurredAt: day,
		Period:     day.Format("2006-01"),
	}
}

func monthOf(y int, m time.Month, n int) []models.Incident {
	out := make([]models.Incident, n)
	for i := range out {
		out[i] = mkIncident(time.Date(y, m, 1+i%28, 0, 0, 0, 0, time.UTC))
	}
	return out
}

func TestMonthlyAggregate_OrderedAndRounded(t *testing.T) {
	incidents := append(monthOf(2024, 2, 7), monthOf(2024, 1, 10)...)
	exposure := []models.Exposure{
		{Period: "2024-01", Unit: "全院", BedDays: 3000},
		{Period: "2024-02", Unit: "全院", BedDays: 2800},
		{Period: "2024-01", Unit: "10A", BedDays: 900},
	}

	got := MonthlyAggregate(incidents, exposure, "全院")
	require.Len(t, got, 2)

	// 依排序鍵遞增，與日期時間序一致
	require.Equal(t, "2024-01", got[0].Period)
	require.Equal(t, "2024/01", got[0].Display)
	require.Equal(t, 10, got[0].Count)
	require.Equal(t, 3.33, got[0].Rate) // 10/3000*1000 = 3.333…

	require.Equal(t, "2024-02", got[1].Period)
	require.Equal(t, 2.5, got[1].Rate)
}

func TestMonthlyAggregate_ZeroExposureRateIsZero(t *testing.T) {
	incidents := monthOf(2024, 3, 4)
	got := MonthlyAggregate(incidents, nil, "全院")
	require.Len(t, got, 1)
	require.Equal(t, 4, got[0].Count)
	require.Equal(t, 0.0, got[0].Rate) // 無人日數：率為 0，月份仍保留
}

func TestMonthlyAggregate_UnitScope(t *testing.T) {
	incidents := monthOf(2024, 1, 3)
	exposure := []models.Exposure{
		{Period: "2024-01", Unit: "10A", BedDays: 1000},
		{Period: "2024-01", Unit: "全院", BedDays: 4000},
	}

	unitScoped := MonthlyAggregate(incidents, exposure, "10A")
	require.Equal(t, 3.0, unitScoped[0].Rate)

	whole := MonthlyAggregate(incidents, exposure, "全院")
	require.Equal(t, 0.75, whole[0].Rate)
}

func series(rates ...float64) []models.MonthlyRate {
	out := make([]models.MonthlyRate, len(rates))
	for i, r := range rates {
		out[i] = models.MonthlyRate{Rate: r}
	}
	return out
}

func TestControlLimits_InsufficientData(t *testing.T) {
	_, ok := ControlLimits(series(1.5, 2.0))
	require.False(t, ok)

	// 零率月份不計入基線
	_, ok = ControlLimits(series(1.5, 2.0, 0, 0, 0))
	require.False(t, ok)
}

func TestControlLimits_ThreeSigmaSampleStdev(t *testing.T) {
	// 件數 [10,12,8,50]、人日數各 1000 → 率 [10,12,8,50]
	l, ok := ControlLimits(series(10, 12, 8, 50))
	require.True(t, ok)
	require.InDelta(t, 20.0, l.Center, 1e-9)
	// 樣本標準差 ≈ 20.07 → UCL ≈ 80.2
	require.InDelta(t, 80.2, l.UCL, 0.05)
	require.Equal(t, 0.0, l.LCL) // floored：20 − 3σ < 0

	marked := MarkOutliers(series(10, 12, 8, 50), l)
	// 50 < UCL：3σ 界限很寬，只有重大異常會觸發
	for _, m := range marked {
		require.False(t, m.Outlier)
	}
}

func TestControlLimits_LCLNeverNegative(t *testing.T) {
	l, ok := ControlLimits(series(1, 5, 9))
	require.True(t, ok)
	require.GreaterOrEqual(t, l.LCL, 0.0)
}

func TestMarkOutliers_ZeroRateNeverLowOutlier(t *testing.T) {
	l := Limits{Center: 10, UCL: 13, LCL: 7}
	marked := MarkOutliers(series(0, 5, 10, 14), l)
	require.False(t, marked[0].Outlier) // 0 不是低異常
	require.True(t, marked[1].Outlier)  // 0 < 5 < LCL
	require.False(t, marked[2].Outlier)
	require.True(t, marked[3].Outlier) // > UCL
}

func TestMarkOutliers_DoesNotMutateInput(t *testing.T) {
	in := series(20)
	_ = MarkOutliers(in, Limits{Center: 10, UCL: 13, LCL: 7})
	require.False(t, in[0].Outlier)
}

func TestMeanNonZeroRate(t *testing.T) {
	require.Equal(t, 0.0, MeanNonZeroRate(series(0, 0)))
	require.InDelta(t, 2.0, MeanNonZeroRate(series(0, 1, 3)), 1e-9)
}

func TestSafePct(t *testing.T) {
	require.Equal(t, 0.0, SafePct(3, 0))
	require.Equal(t, 33.3, SafePct(1, 3))
	require.Equal(t, 50.0, SafePct(2, 4))
}
