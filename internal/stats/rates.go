// Package stats 發生率彙總與管制圖統計
package stats

import (
	"math"
	"sort"

	"psi-dashboard/internal/models"
	"psi-dashboard/internal/normalize"
)

// MonthlyAggregate 以年月彙總事件件數，對照指定單位的住院人日數計算每千人日發生率。
// 回傳序列依年月排序鍵遞增；暴露量為零或查無該月人日數時 Rate 為 0（月份仍保留）。
// 傳入的 incidents 應已套用篩選；unit 通常是篩選單位或 全院。
func MonthlyAggregate(incidents []models.Incident, exposure []models.Exposure, unit string) []models.MonthlyRate {
	counts := map[string]int{}
	for _, in := range incidents {
		counts[in.Period]++
	}

	bedDays := map[string]float64{}
	for _, x := range exposure {
		if x.Unit == unit {
			bedDays[x.Period] = x.BedDays
		}
	}

	periods := make([]string, 0, len(counts))
	for p := range counts {
		periods = append(periods, p)
	}
	sort.Strings(periods)

	out := make([]models.MonthlyRate, 0, len(periods))
	for _, p := range periods {
		m := models.MonthlyRate{
			Period:  p,
			Display: normalize.PeriodDisplay(p),
			Count:   counts[p],
			BedDays: bedDays[p],
		}
		if m.BedDays > 0 {
			m.Rate = round2(float64(m.Count) / m.BedDays * 1000)
		}
		out = append(out, m)
	}
	return out
}

// Limits 管制圖界限：中心線與上下 3σ 界限（LCL 不低於 0）
type Limits struct {
	Center float64 `json:"center"`
	UCL    float64 `json:"ucl"`
	LCL    float64 `json:"lcl"`
}

// ControlLimits 對率序列計算管制界限。
// 基線只取 Rate > 0 的月份（零暴露／零率月份不污染基線）；
// 合格月份不足 3 個回傳 ok=false（資料不足，非錯誤）。
// 標準差採樣本標準差（n−1 分母），與歷史報表一致。
func ControlLimits(series []models.MonthlyRate) (Limits, bool) {
	rates := make([]float64, 0, len(series))
	for _, m := range series {
		if m.Rate > 0 {
			rates = append(rates, m.Rate)
		}
	}
	if len(rates) < 3 {
		return Limits{}, false
	}

	sum := 0.0
	for _, r := range rates {
		sum += r
	}
	center := sum / float64(len(rates))

	ss := 0.0
	for _, r := range rates {
		d := r - center
		ss += d * d
	}
	sd := math.Sqrt(ss / float64(len(rates)-1))

	return Limits{
		Center: center,
		UCL:    center + 3*sd,
		LCL:    math.Max(0, center-3*sd),
	}, true
}

// MarkOutliers 依管制界限標記各點異常：率超過 UCL，或非零但低於 LCL。
// 率恰為 0 永不標為低異常（零件數與異常偏低是兩回事）。回傳新序列，不改動輸入。
func MarkOutliers(series []models.MonthlyRate, l Limits) []models.MonthlyRate {
	out := make([]models.MonthlyRate, len(series))
	copy(out, series)
	for i := range out {
		r := out[i].Rate
		out[i].Outlier = r > l.UCL || (r > 0 && r < l.LCL)
	}
	return out
}

// MeanNonZeroRate 非零率的平均（無非零率月份回傳 0）；KPI 的平均月發生率
func MeanNonZeroRate(series []models.MonthlyRate) float64 {
	sum, n := 0.0, 0
	for _, m := range series {
		if m.Rate > 0 {
			sum += m.Rate
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// Round1 百分比顯示用（四捨五入到小數一位）
func Round1(x float64) float64 {
	return math.Round(x*10) / 10
}

// SafePct 分母為零時回傳 0 的百分比
func SafePct(num, den int) float64 {
	if den <= 0 {
		return 0
	}
	return Round1(float64(num) / float64(den) * 100)
}
