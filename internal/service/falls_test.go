package service

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"psi-dashboard/internal/filter"
	"psi-dashboard/internal/loader"
)

func fallAt(reportNo, date, narrative string) loader.RawFall {
	return loader.RawFall{ReportNo: reportNo, Date: date, Narrative: narrative}
}

// fallWorkbook 跌倒表 + 主表（供左併科別／影響程度）
func fallWorkbook() *loader.Workbook {
	wb := &loader.Workbook{}

	type row struct {
		date, narrative, dept, impact, summary string
		sedative                               bool
	}
	rows := []row{
		{"2024-01-05", "病人自行下床時滑倒", "精神科", "輕度", "有傷害", true},
		{"2024-01-08", "床邊跌坐於地", "精神科", "無傷害", "無傷害", true},
		{"2024-02-03", "於浴室滑倒", "精神科", "中度", "有傷害", false},
		{"2024-02-10", "下床時頭暈跌倒", "內科", "中度", "有傷害", true},
		{"2024-03-02", "走廊行走時跌倒", "內科", "無傷害", "無傷害", false},
		{"2024-03-15", "自輪椅滑落", "內科", "輕度", "有傷害", false},
		{"2025-01-05", "下床跌倒", "護理之家", "重度", "有傷害", false},
		{"2025-02-05", "床邊跌倒", "內科", "中度", "有傷害", false},
	}
	for i, r := range rows {
		no := fmt.Sprintf("F%03d", i)
		wb.Incidents = append(wb.Incidents, loader.RawIncident{
			ReportNo: no, Date: r.date, EventType: "跌倒事件", SAC: "3",
			Unit: "10A", Department: r.dept,
			HealthImpact: r.impact, HealthImpactSummary: r.summary,
		})
		fall := fallAt(no, r.date, r.narrative)
		if r.sedative {
			fall.CauseSedative = "1"
		}
		wb.Falls = append(wb.Falls, fall)
	}
	return wb
}

func TestDashboard_FallAnalysis(t *testing.T) {
	d, _ := newDashboard(t, fallWorkbook())

	fa, err := d.FallAnalysis(filter.Params{StartPeriod: "2024-01", EndPeriod: "2024-03"})
	require.NoError(t, err)
	require.Equal(t, 6, fa.Total)

	// 柏拉圖含全部 15 個特徵、遞減排序
	require.Len(t, fa.Pareto, 15)
	for i := 1; i < len(fa.Pareto); i++ {
		require.GreaterOrEqual(t, fa.Pareto[i-1].Count, fa.Pareto[i].Count)
	}
	// 床邊下床與滑倒各 3 件並列最高；同件數依定義順序，床邊下床在前
	require.Equal(t, "地點_床邊下床", fa.Pareto[0].Name)
	require.Equal(t, 3, fa.Pareto[0].Count)
	require.Equal(t, "機轉_滑倒", fa.Pareto[1].Name)
	require.Equal(t, 3, fa.Pareto[1].Count)
	// 佔比分母為跌倒件數（6 件），不是特徵件數合計
	require.Equal(t, 50.0, fa.Pareto[0].Share)

	// 精神科 3 件（≥3 入矩陣）：鎮靜安眠藥 2/3
	require.Len(t, fa.RiskMatrix, 2)
	require.Equal(t, "內科", fa.RiskMatrix[1].Department) // 依 riskDepts 固定順序：精神科在外科/內科之前
	var psych *DeptRisk
	for i := range fa.RiskMatrix {
		if fa.RiskMatrix[i].Department == "精神科" {
			psych = &fa.RiskMatrix[i]
		}
	}
	require.NotNil(t, psych)
	require.Equal(t, 3, psych.N)
	require.Equal(t, 66.7, psych.Rates["鎮靜安眠藥"])

	// 用藥因子件數
	require.Equal(t, "鎮靜安眠藥", fa.DrugFactors[0].Name)
	require.Equal(t, 3, fa.DrugFactors[0].Count)
}

func TestDashboard_FallAnalysis_PeriodFilter(t *testing.T) {
	d, _ := newDashboard(t, fallWorkbook())

	fa, err := d.FallAnalysis(filter.Params{StartPeriod: "2025-01", EndPeriod: "2025-12"})
	require.NoError(t, err)
	require.Equal(t, 2, fa.Total)
	require.Empty(t, fa.RiskMatrix) // 各科皆 <3 件
}

func TestDashboard_FeatureByDepartment(t *testing.T) {
	d, _ := newDashboard(t, fallWorkbook())

	got, err := d.FeatureByDepartment(
		filter.Params{StartPeriod: "2024-01", EndPeriod: "2024-03"}, "地點_床邊下床")
	require.NoError(t, err)
	require.Equal(t, []CountItem{{Name: "精神科", Count: 2}, {Name: "內科", Count: 1}}, got)
}

func TestDashboard_YearlyComparison(t *testing.T) {
	d, _ := newDashboard(t, fallWorkbook())

	yc, err := d.YearlyComparison(2024, 2025, false, 2020, 2023)
	require.NoError(t, err)

	require.Equal(t, 6, yc.A.FallCount)
	require.Equal(t, 1, yc.B.FallCount) // 護理之家已排除
	require.Equal(t, 66.7, yc.A.InjuryRate)
	require.Equal(t, 50.0, yc.A.PsychShare)
	// 內科 3 件中 1 件中度以上
	require.Equal(t, 33.3, yc.A.MidPlusRate)
	require.Empty(t, yc.BaselineYears) // 2020–2023 無資料

	// 含護理之家
	yc, err = d.YearlyComparison(2024, 2025, true, 2020, 2023)
	require.NoError(t, err)
	require.Equal(t, 2, yc.B.FallCount)
}

func TestDashboard_YearlyComparison_HarmEstimate(t *testing.T) {
	wb := &loader.Workbook{}
	// 2025 年傷害行為事件至 3 月共 6 件 → 全年外推 24 件
	for i, date := range []string{"2025-01-10", "2025-01-20", "2025-02-05", "2025-02-15", "2025-03-01", "2025-03-20"} {
		wb.Incidents = append(wb.Incidents, loader.RawIncident{
			ReportNo: fmt.Sprintf("H%d", i), Date: date, EventType: "傷害行為", SAC: "3", Unit: "10A",
		})
	}
	d, _ := newDashboard(t, wb)

	yc, err := d.YearlyComparison(2024, 2025, true, 2020, 2023)
	require.NoError(t, err)
	require.Equal(t, 0, yc.A.HarmCount)
	require.Equal(t, 6, yc.B.HarmCount)
	require.Equal(t, 24, yc.HarmFullYearEstimate)
}
