package service

import (
	"sort"

	"psi-dashboard/internal/filter"
	"psi-dashboard/internal/models"
	"psi-dashboard/internal/normalize"
	"psi-dashboard/internal/stats"
)

// CategoryOrder 事件大類固定顯示順序
var CategoryOrder = []string{
	models.CategoryFall, models.CategoryMed, models.CategoryTube,
	models.CategoryHarm, models.CategoryClinical, models.CategorySecurity,
	models.CategoryOther,
}

// CountItem 名稱＋件數的通用分佈項目
type CountItem struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// CategoryMonth 某月某事件大類的件數（堆疊長條圖資料）
type CategoryMonth struct {
	Display  string `json:"display"` // 年月顯示格式
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// Heatmap 列×欄件數矩陣（熱力圖資料），Counts[i][j] 為 Rows[i] × Cols[j] 件數
type Heatmap struct {
	Rows   []string `json:"rows"`
	Cols   []string `json:"cols"`
	Counts [][]int  `json:"counts"`
}

// DiagnosisItem 某診斷分類的件數與傷害程度彙總（Treemap 與 100% 堆疊圖資料）
type DiagnosisItem struct {
	Name         string      `json:"name"`
	Count        int         `json:"count"`
	ModPlusCount int         `json:"mod_plus_count"`     // 中度以上傷害件數（含死亡）
	ModPlusRate  float64     `json:"mod_plus_rate"`      // 中度以上傷害率 (%)
	Severity     []CountItem `json:"severity,omitempty"` // 傷害程度件數分佈，件數 ≥3 的分類才提供
}

// Distributions 分佈面板：時段、SAC、月×大類、熱力圖矩陣、診斷分類
type Distributions struct {
	TimeSlots        []CountItem     `json:"time_slots"`     // 固定 12 桶順序（未對應時段不列入）
	SAC              []CountItem     `json:"sac"`            // SAC 1–4（缺漏者不列入）
	HighSACShare     float64         `json:"high_sac_share"` // SAC 1+2 佔已填 SAC 件數 (%)
	CategoryMonthly  []CategoryMonth `json:"category_monthly"`
	CategoryTimeSlot Heatmap         `json:"category_timeslot"` // 事件大類 × 時段
	UnitMonthly      Heatmap         `json:"unit_monthly"`      // 單位 × 年月（件數前 15 單位）
	Diagnosis        []DiagnosisItem `json:"diagnosis"`         // 依件數遞減；受科別條件影響
}

var sacLabels = map[int]string{
	models.SACDeath:  "SAC 1 死亡",
	models.SACMajor:  "SAC 2 重大傷害",
	models.SACMinor:  "SAC 3 輕中度",
	models.SACNoHarm: "SAC 4 無傷害",
}

func (d *Dashboard) Distributions(p filter.Params) (*Distributions, error) {
	ds, err := d.Dataset()
	if err != nil {
		return nil, err
	}
	dff := filter.Incidents(ds.Incidents, p)

	out := &Distributions{}

	// 時段分佈：固定桶順序
	slotCounts := map[string]int{}
	for _, in := range dff {
		if in.TimeSlot != "" {
			slotCounts[in.TimeSlot]++
		}
	}
	for _, b := range normalize.TimeSlotOrder {
		out.TimeSlots = append(out.TimeSlots, CountItem{Name: b, Count: slotCounts[b]})
	}

	// SAC 分佈
	sacCounts := map[int]int{}
	sacFilled, sacHigh := 0, 0
	for _, in := range dff {
		if in.SAC == nil {
			continue
		}
		sacCounts[*in.SAC]++
		sacFilled++
		if in.HighSeverity() {
			sacHigh++
		}
	}
	for s := models.SACDeath; s <= models.SACNoHarm; s++ {
		out.SAC = append(out.SAC, CountItem{Name: sacLabels[s], Count: sacCounts[s]})
	}
	out.HighSACShare = stats.SafePct(sacHigh, sacFilled)

	// 月 × 事件大類
	type key struct{ period, cat string }
	cm := map[key]int{}
	periodSet := map[string]bool{}
	for _, in := range dff {
		cm[key{in.Period, in.Category}]++
		periodSet[in.Period] = true
	}
	periods := make([]string, 0, len(periodSet))
	for p := range periodSet {
		periods = append(periods, p)
	}
	sort.Strings(periods)
	for _, period := range periods {
		for _, cat := range CategoryOrder {
			if n := cm[key{period, cat}]; n > 0 {
				out.CategoryMonthly = append(out.CategoryMonthly, CategoryMonth{
					Display:  normalize.PeriodDisplay(period),
					Category: cat,
					Count:    n,
				})
			}
		}
	}

	// 事件大類 × 時段熱力圖
	out.CategoryTimeSlot = Heatmap{Rows: CategoryOrder, Cols: normalize.TimeSlotOrder}
	slotIdx := map[string]int{}
	for i, b := range normalize.TimeSlotOrder {
		slotIdx[b] = i
	}
	catIdx := map[string]int{}
	for i, c := range CategoryOrder {
		catIdx[c] = i
	}
	out.CategoryTimeSlot.Counts = make([][]int, len(CategoryOrder))
	for i := range out.CategoryTimeSlot.Counts {
		out.CategoryTimeSlot.Counts[i] = make([]int, len(normalize.TimeSlotOrder))
	}
	for _, in := range dff {
		if in.TimeSlot == "" {
			continue
		}
		out.CategoryTimeSlot.Counts[catIdx[in.Category]][slotIdx[in.TimeSlot]]++
	}

	// 單位 × 年月熱力圖：件數前 15 的單位
	out.UnitMonthly = unitMonthlyHeatmap(dff, periods)

	// 診斷分類分佈：主條件之外再套科別條件
	dxView := filter.ByDepartment(dff, p.Department)
	type dxAgg struct {
		count, modPlus int
		severity       map[string]int
	}
	dxCounts := map[string]*dxAgg{}
	for _, in := range dxView {
		a := dxCounts[in.DiagnosisCategory]
		if a == nil {
			a = &dxAgg{severity: map[string]int{}}
			dxCounts[in.DiagnosisCategory] = a
		}
		a.count++
		if midPlusImpacts[in.HealthImpact] {
			a.modPlus++
		}
		a.severity[in.HealthImpact]++
	}
	names := make([]string, 0, len(dxCounts))
	for n := range dxCounts {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool {
		if dxCounts[names[i]].count != dxCounts[names[j]].count {
			return dxCounts[names[i]].count > dxCounts[names[j]].count
		}
		return names[i] < names[j]
	})
	for _, n := range names {
		a := dxCounts[n]
		item := DiagnosisItem{
			Name:         n,
			Count:        a.count,
			ModPlusCount: a.modPlus,
			ModPlusRate:  stats.SafePct(a.modPlus, a.count),
		}
		if a.count >= 3 {
			for _, lv := range models.InjuryOrder {
				if c := a.severity[lv]; c > 0 {
					item.Severity = append(item.Severity, CountItem{Name: lv, Count: c})
				}
			}
		}
		out.Diagnosis = append(out.Diagnosis, item)
	}

	return out, nil
}

// heatmapTopUnits 熱力圖最多呈現的單位數
const heatmapTopUnits = 15

func unitMonthlyHeatmap(dff []models.Incident, periods []string) Heatmap {
	unitTotals := map[string]int{}
	for _, in := range dff {
		unitTotals[in.Unit]++
	}
	units := make([]string, 0, len(unitTotals))
	for u := range unitTotals {
		units = append(units, u)
	}
	sort.Slice(units, func(i, j int) bool {
		if unitTotals[units[i]] != unitTotals[units[j]] {
			return unitTotals[units[i]] > unitTotals[units[j]]
		}
		return units[i] < units[j]
	})
	if len(units) > heatmapTopUnits {
		units = units[:heatmapTopUnits]
	}

	hm := Heatmap{Rows: units}
	for _, p := range periods {
		hm.Cols = append(hm.Cols, normalize.PeriodDisplay(p))
	}
	rowIdx := map[string]int{}
	for i, u := range units {
		rowIdx[u] = i
	}
	colIdx := map[string]int{}
	for i, p := range periods {
		colIdx[p] = i
	}
	hm.Counts = make([][]int, len(units))
	for i := range hm.Counts {
		hm.Counts[i] = make([]int, len(periods))
	}
	for _, in := range dff {
		if r, ok := rowIdx[in.Unit]; ok {
			hm.Counts[r][colIdx[in.Period]]++
		}
	}
	return hm
}

// Options 側欄選項清單（由資料集推導）
type Options struct {
	Months      []string `json:"months"`     // 年月排序鍵，遞增
	Units       []string `json:"units"`      // 全院 置頂，其餘字典序（不含 未知）
	Categories  []string `json:"categories"` // 全部 置頂 + 固定大類順序
	Departments []string `json:"departments"`
	SACs        []int    `json:"sacs"`
}

func (d *Dashboard) Options() (*Options, error) {
	ds, err := d.Dataset()
	if err != nil {
		return nil, err
	}

	monthSet := map[string]bool{}
	unitSet := map[string]bool{}
	deptSet := map[string]bool{}
	for _, in := range ds.Incidents {
		monthSet[in.Period] = true
		if in.Unit != normalize.UnitUnknown {
			unitSet[in.Unit] = true
		}
		if in.Department != "" {
			deptSet[in.Department] = true
		}
	}

	o := &Options{
		Categories: append([]string{filter.AllCategories}, CategoryOrder...),
		SACs:       []int{1, 2, 3, 4},
	}
	for m := range monthSet {
		o.Months = append(o.Months, m)
	}
	sort.Strings(o.Months)

	o.Units = append(o.Units, filter.AllUnits)
	units := make([]string, 0, len(unitSet))
	for u := range unitSet {
		units = append(units, u)
	}
	sort.Strings(units)
	o.Units = append(o.Units, units...)

	o.Departments = append(o.Departments, filter.AllDepartments)
	depts := make([]string, 0, len(deptSet))
	for dep := range deptSet {
		depts = append(depts, dep)
	}
	sort.Strings(depts)
	o.Departments = append(o.Departments, depts...)

	return o, nil
}
