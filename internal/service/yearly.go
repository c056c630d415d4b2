package service

import (
	"math"
	"sort"

	"psi-dashboard/internal/models"
	"psi-dashboard/internal/stats"
)

// YearMetrics 單一年度的跌倒／傷害行為指標
type YearMetrics struct {
	Year         int     `json:"year"`
	FallCount    int     `json:"fall_count"`
	InjuryRate   float64 `json:"injury_rate"`   // 有傷害件數佔比 (%)
	PsychShare   float64 `json:"psych_share"`   // 精神科佔比 (%)
	MidPlusRate  float64 `json:"mid_plus_rate"` // 內外科中度以上傷害比率 (%)
	HarmCount    int     `json:"harm_count"`    // 傷害行為事件件數（全院）
	MonthlyFalls [12]int `json:"monthly_falls"`
}

// DeptYearCount 某科別兩年度的跌倒件數
type DeptYearCount struct {
	Department string `json:"department"`
	CountA     int    `json:"count_a"`
	CountB     int    `json:"count_b"`
}

// YearlyComparison 年度比較分析（固定全院層級，不受科別條件影響）
type YearlyComparison struct {
	A                    YearMetrics     `json:"a"`
	B                    YearMetrics     `json:"b"`
	HarmFullYearEstimate int             `json:"harm_full_year_estimate"` // B 年傷害行為全年外推
	DeptCounts           []DeptYearCount `json:"dept_counts"`
	BaselineMonthlyMean  [12]float64     `json:"baseline_monthly_mean"` // 基線年度區間的逐月均值
	BaselineYears        []int           `json:"baseline_years"`
}

// 中度以上傷害程度（含死亡）
var midPlusImpacts = map[string]bool{"中度": true, "重度": true, "極重度": true, "死亡": true}

// YearlyComparison 比較 yearA 與 yearB；includeLTC=false 時排除護理之家的跌倒，
// 基線為 baselineFrom–baselineTo 中資料集實際涵蓋的年度
func (d *Dashboard) YearlyComparison(yearA, yearB int, includeLTC bool, baselineFrom, baselineTo int) (*YearlyComparison, error) {
	ds, err := d.Dataset()
	if err != nil {
		return nil, err
	}

	falls := ds.Falls
	if !includeLTC {
		kept := make([]models.FallIncident, 0, len(falls))
		for _, f := range falls {
			if f.Department != DeptNursingHome {
				kept = append(kept, f)
			}
		}
		falls = kept
	}

	out := &YearlyComparison{
		A: d.yearMetrics(falls, ds.Incidents, yearA),
		B: d.yearMetrics(falls, ds.Incidents, yearB),
	}

	// B 年傷害行為全年外推：以最後一個有事件的月份線性估算
	lastMonth := 0
	for _, in := range ds.Incidents {
		if in.Year() == yearB && in.Category == models.CategoryHarm {
			if m := int(in.OccurredAt.Month()); m > lastMonth {
				lastMonth = m
			}
		}
	}
	if lastMonth > 0 {
		out.HarmFullYearEstimate = int(math.Round(float64(out.B.HarmCount) / float64(lastMonth) * 12))
	} else {
		out.HarmFullYearEstimate = out.B.HarmCount
	}

	// 各科別兩年度件數（依 B 年件數遞減）
	deptA, deptB := map[string]int{}, map[string]int{}
	for _, f := range falls {
		switch f.Year() {
		case yearA:
			deptA[f.Department]++
		case yearB:
			deptB[f.Department]++
		}
	}
	deptSet := map[string]bool{}
	for dep := range deptA {
		deptSet[dep] = true
	}
	for dep := range deptB {
		deptSet[dep] = true
	}
	for dep := range deptSet {
		if dep == "" {
			continue
		}
		out.DeptCounts = append(out.DeptCounts, DeptYearCount{
			Department: dep, CountA: deptA[dep], CountB: deptB[dep],
		})
	}
	sort.Slice(out.DeptCounts, func(i, j int) bool {
		if out.DeptCounts[i].CountB != out.DeptCounts[j].CountB {
			return out.DeptCounts[i].CountB > out.DeptCounts[j].CountB
		}
		return out.DeptCounts[i].Department < out.DeptCounts[j].Department
	})

	// 基線：區間內實際有跌倒資料的年度，逐月件數取均值
	yearSet := map[int]bool{}
	for _, f := range falls {
		yearSet[f.Year()] = true
	}
	for y := baselineFrom; y <= baselineTo; y++ {
		if yearSet[y] {
			out.BaselineYears = append(out.BaselineYears, y)
		}
	}
	if len(out.BaselineYears) > 0 {
		var sums [12]int
		for _, f := range falls {
			for _, y := range out.BaselineYears {
				if f.Year() == y {
					sums[int(f.OccurredAt.Month())-1]++
					break
				}
			}
		}
		for m := 0; m < 12; m++ {
			out.BaselineMonthlyMean[m] = math.Round(float64(sums[m])/float64(len(out.BaselineYears))*100) / 100
		}
	}

	return out, nil
}

func (d *Dashboard) yearMetrics(falls []models.FallIncident, incidents []models.Incident, year int) YearMetrics {
	m := YearMetrics{Year: year}

	injured, psych := 0, 0
	midPlus, midPlusDen := 0, 0
	for _, f := range falls {
		if f.Year() != year {
			continue
		}
		m.FallCount++
		m.MonthlyFalls[int(f.OccurredAt.Month())-1]++
		if f.HealthImpactSummary == "有傷害" {
			injured++
		}
		if f.Department == "精神科" {
			psych++
		}
		if f.Department == "內科" || f.Department == "外科" {
			midPlusDen++
			if midPlusImpacts[f.HealthImpact] {
				midPlus++
			}
		}
	}
	m.InjuryRate = stats.SafePct(injured, m.FallCount)
	m.PsychShare = stats.SafePct(psych, m.FallCount)
	m.MidPlusRate = stats.SafePct(midPlus, midPlusDen)

	for _, in := range incidents {
		if in.Year() == year && in.Category == models.CategoryHarm {
			m.HarmCount++
		}
	}
	return m
}
