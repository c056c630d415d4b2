// Package filter 強化資料集上的篩選：純函數、保序、只刪不改
package filter

import (
	"psi-dashboard/internal/models"
)

// 篩選哨兵值：選「全院／全部」代表該維度不過濾
const (
	AllUnits       = models.UnitWholeHospital
	AllCategories  = "全部"
	AllDepartments = "全部科別"
)

// Params 使用者選定的篩選條件；各條件為 AND 關係、可獨立開關，
// 每次互動整組重新求值（不做增量差分）
type Params struct {
	StartPeriod string // 年月排序鍵，含端點；空字串不設下界
	EndPeriod   string // 含端點；空字串不設上界
	Unit        string // 全院 或空字串 = 不過濾
	Category    string // 全部 或空字串 = 不過濾
	SACs        []int  // 空 = 全部；SAC 缺漏的列永不被嚴重度條件排除
	Department  string // 僅作用於診斷特徵檢視，與其餘條件獨立組合
}

// Incidents 套用時間區間／單位／類別／SAC 四個主條件。
// 保留列的相對順序；輸入不被改動。科別條件另由 ByDepartment 套用。
func Incidents(in []models.Incident, p Params) []models.Incident {
	out := make([]models.Incident, 0, len(in))
	for _, r := range in {
		if !periodInRange(r.Period, p.StartPeriod, p.EndPeriod) {
			continue
		}
		if p.Unit != "" && p.Unit != AllUnits && r.Unit != p.Unit {
			continue
		}
		if p.Category != "" && p.Category != AllCategories && r.Category != p.Category {
			continue
		}
		if !sacAllowed(r.SAC, p.SACs) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// ByDepartment 科別條件（診斷特徵檢視專用），與主條件獨立組合
func ByDepartment(in []models.Incident, dept string) []models.Incident {
	if dept == "" || dept == AllDepartments {
		return in
	}
	out := make([]models.Incident, 0, len(in))
	for _, r := range in {
		if r.Department == dept {
			out = append(out, r)
		}
	}
	return out
}

// Falls 跌倒深度分析資料只連動時間區間條件
func Falls(in []models.FallIncident, startPeriod, endPeriod string) []models.FallIncident {
	out := make([]models.FallIncident, 0, len(in))
	for _, r := range in {
		if periodInRange(r.Period, startPeriod, endPeriod) {
			out = append(out, r)
		}
	}
	return out
}

// periodInRange 以排序鍵比較（絕不比較顯示格式）
func periodInRange(period, start, end string) bool {
	if start != "" && period < start {
		return false
	}
	if end != "" && period > end {
		return false
	}
	return true
}

// sacAllowed SAC 為 nil（通報未填）者一律保留——嚴重度篩選排除的是
// 其他等級，不是未知等級
func sacAllowed(sac *int, selected []int) bool {
	if len(selected) == 0 || sac == nil {
		return true
	}
	for _, s := range selected {
		if *sac == s {
			return true
		}
	}
	return false
}
