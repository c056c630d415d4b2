package models

import "time"

// 跌倒傷害程度（由輕到重）
var InjuryOrder = []string{"無傷害", "輕度", "中度", "重度", "極重度", "無法判定傷害嚴重程度"}

// FallIncident 跌倒工作表的一筆事件，含自主表左併入的科別／影響程度欄位
// 與事件說明特徵萃取產出的布林旗標
type FallIncident struct {
	ReportNo   string    `json:"report_no"`
	OccurredAt time.Time `json:"occurred_at"`
	Period     string    `json:"period"`
	Narrative  string    `json:"narrative"` // 事件說明（特徵萃取來源）

	// 跌倒事件發生對象
	HighRiskGroup string `json:"high_risk_group"` // 事件發生前是否為跌倒高危險群（是/否）
	Mobility      string `json:"mobility"`        // 事件發生前的獨立活動能力
	Consciousness string `json:"consciousness"`   // 當事人當時意識狀況
	Accompanied   string `json:"accompanied"`     // 事件發生時有無陪伴者（有/無）
	FallHistory   string `json:"fall_history"`    // 最近一年是否曾經跌倒（有/無）

	// 可能原因（通報表勾選，0/1）
	CauseSedative       bool `json:"cause_sedative"`       // 鎮靜安眠藥
	CauseAntihyperten   bool `json:"cause_antihyperten"`   // 降壓藥
	CauseAnalgesic      bool `json:"cause_analgesic"`      // 止痛麻醉劑
	CauseHypoglycemic   bool `json:"cause_hypoglycemic"`   // 降血糖藥
	CauseAnticonvulsant bool `json:"cause_anticonvulsant"` // 抗癲癇藥
	CauseMuscleRelaxant bool `json:"cause_muscle_relaxant"` // 肌肉鬆弛劑
	CauseUnsteadyGait   bool `json:"cause_unsteady_gait"`  // 步態不穩
	CauseInsistGetUp    bool `json:"cause_insist_get_up"`  // 高危險群病人執意自行下床或活動

	// 自主表（全部工作表）左併入：跌倒表有此案號才保留，主表無對應則欄位留空
	Department          string `json:"department"`
	HealthImpact        string `json:"health_impact"`
	HealthImpactSummary string `json:"health_impact_summary"`

	// 事件說明特徵旗標（地點／機轉／發現／傷害／病況），每筆事件全部特徵皆有值
	Features map[string]bool `json:"features"`
}

// Year 年月排序鍵的年份
func (f *FallIncident) Year() int {
	return periodYear(f.Period)
}
