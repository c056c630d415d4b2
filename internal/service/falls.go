package service

import (
	"sort"

	"psi-dashboard/internal/features"
	"psi-dashboard/internal/filter"
	"psi-dashboard/internal/models"
	"psi-dashboard/internal/stats"
)

// DeptNursingHome 年度比較可排除的護理之家科別
const DeptNursingHome = "護理之家"

// riskDepts 高風險因子矩陣固定分析的科別
var riskDepts = []string{"精神科", "外科", "內科", "復健科"}

// riskFactorNames 高風險因子固定順序
var riskFactorNames = []string{
	"鎮靜安眠藥", "執意自行下床", "步態不穩", "意識混亂", "無陪伴者", "跌倒高危群", "曾跌倒史",
}

// riskFactorHit 以結構化跌倒欄位判定各因子
func riskFactorHit(f *models.FallIncident, factor string) bool {
	switch factor {
	case "鎮靜安眠藥":
		return f.CauseSedative
	case "執意自行下床":
		return f.CauseInsistGetUp
	case "步態不穩":
		return f.CauseUnsteadyGait
	case "意識混亂":
		return f.Consciousness == "意識混亂" || f.Consciousness == "嗜睡"
	case "無陪伴者":
		return f.Accompanied == "無"
	case "跌倒高危群":
		return f.HighRiskGroup == "是"
	case "曾跌倒史":
		return f.FallHistory == "有"
	}
	return false
}

// drugFactors 用藥相關可能原因
var drugFactors = []struct {
	name string
	hit  func(*models.FallIncident) bool
}{
	{"鎮靜安眠藥", func(f *models.FallIncident) bool { return f.CauseSedative }},
	{"降壓藥", func(f *models.FallIncident) bool { return f.CauseAntihyperten }},
	{"止痛麻醉劑", func(f *models.FallIncident) bool { return f.CauseAnalgesic }},
	{"降血糖藥", func(f *models.FallIncident) bool { return f.CauseHypoglycemic }},
	{"抗癲癇藥", func(f *models.FallIncident) bool { return f.CauseAnticonvulsant }},
	{"肌肉鬆弛劑", func(f *models.FallIncident) bool { return f.CauseMuscleRelaxant }},
}

// DeptRisk 某科別各高風險因子的比率 (%)
type DeptRisk struct {
	Department string             `json:"department"`
	N          int                `json:"n"`
	Rates      map[string]float64 `json:"rates"`
}

// FallAnalysis 跌倒深度分析：特徵柏拉圖 + 高風險因子矩陣 + 用藥因子
type FallAnalysis struct {
	Total       int                `json:"total"`
	Pareto      []stats.ParetoItem `json:"pareto"`       // 事件說明特徵 80/20
	RiskMatrix  []DeptRisk         `json:"risk_matrix"`  // 各科別（n≥3）高風險因子比率
	DrugFactors []CountItem        `json:"drug_factors"` // 用藥相關可能原因件數
}

// FallAnalysis 依時間區間產生跌倒深度分析（跌倒資料僅連動時間條件）
func (d *Dashboard) FallAnalysis(p filter.Params) (*FallAnalysis, error) {
	ds, err := d.Dataset()
	if err != nil {
		return nil, err
	}
	falls := filter.Falls(ds.Falls, p.StartPeriod, p.EndPeriod)

	out := &FallAnalysis{Total: len(falls)}

	// 特徵柏拉圖（保持定義順序作為同件數時的並列序；佔比分母為跌倒件數）
	items := make([]stats.ParetoItem, 0, len(features.FallFeatures))
	for _, name := range features.FeatureNames(features.FallFeatures) {
		n := 0
		for i := range falls {
			if falls[i].Features[name] {
				n++
			}
		}
		items = append(items, stats.ParetoItem{Name: name, Count: n})
	}
	out.Pareto = stats.Pareto(items, len(falls))

	// 科別 × 高風險因子比率矩陣（件數 <3 的科別略過）
	for _, dept := range riskDepts {
		var sub []*models.FallIncident
		for i := range falls {
			if falls[i].Department == dept {
				sub = append(sub, &falls[i])
			}
		}
		if len(sub) < 3 {
			continue
		}
		rates := make(map[string]float64, len(riskFactorNames))
		for _, factor := range riskFactorNames {
			n := 0
			for _, f := range sub {
				if riskFactorHit(f, factor) {
					n++
				}
			}
			rates[factor] = stats.SafePct(n, len(sub))
		}
		out.RiskMatrix = append(out.RiskMatrix, DeptRisk{Department: dept, N: len(sub), Rates: rates})
	}

	// 用藥因子件數
	for _, df := range drugFactors {
		n := 0
		for i := range falls {
			if df.hit(&falls[i]) {
				n++
			}
		}
		out.DrugFactors = append(out.DrugFactors, CountItem{Name: df.name, Count: n})
	}

	return out, nil
}

// FeatureByDepartment 柏拉圖下鑽：某特徵在各科別的件數（RCA 用）
func (d *Dashboard) FeatureByDepartment(p filter.Params, feature string) ([]CountItem, error) {
	ds, err := d.Dataset()
	if err != nil {
		return nil, err
	}
	falls := filter.Falls(ds.Falls, p.StartPeriod, p.EndPeriod)

	counts := map[string]int{}
	for i := range falls {
		if falls[i].Features[feature] && falls[i].Department != "" {
			counts[falls[i].Department]++
		}
	}
	names := make([]string, 0, len(counts))
	for n := range counts {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})
	out := make([]CountItem, 0, len(names))
	for _, n := range names {
		out = append(out, CountItem{Name: n, Count: counts[n]})
	}
	return out, nil
}
