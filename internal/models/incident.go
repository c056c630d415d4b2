package models

import "time"

// 事件大類（7 類，由原始事件類別正規化而來）
const (
	CategoryFall     = "跌倒"
	CategoryMed      = "藥物"
	CategoryTube     = "管路"
	CategoryHarm     = "傷害"
	CategoryClinical = "醫療"
	CategorySecurity = "治安"
	CategoryOther    = "其他"
)

// SAC 嚴重度定義：1=死亡、2=重大傷害、3=輕中度、4=無傷害（數字越小越嚴重）
const (
	SACDeath  = 1
	SACMajor  = 2
	SACMinor  = 3
	SACNoHarm = 4
)

// Incident 一筆病安通報事件（含強化管線產出的衍生欄位）
type Incident struct {
	ReportNo   string    `json:"report_no"`   // 通報案號（唯一鍵）
	OccurredAt time.Time `json:"occurred_at"` // 發生日期（無法解析者於載入時整列剔除）
	Period     string    `json:"period"`      // 年月排序鍵，如 "2024-01"

	RawEventType string `json:"raw_event_type"` // 事件類別（通報原文）
	Category     string `json:"category"`       // 事件大類（7 類之一）
	SAC          *int   `json:"sac"`            // SAC 1–4；原文非法或缺漏為 nil，不代入預設值
	Unit         string `json:"unit"`           // 通報者服務單位（已正規化，空白→未知）
	TimeSlot     string `json:"time_slot"`      // 發生時段標準桶（12 桶；未對應為空字串）

	Diagnosis         string `json:"diagnosis"`          // 發生者資料-診斷（原文）
	DiagnosisCategory string `json:"diagnosis_category"` // 診斷分類（13 類 + 其他）
	Narrative         string `json:"narrative"`          // 事件說明

	Age string `json:"age"` // 發生者年齡（通報原文直通，不做衍生）
	Sex string `json:"sex"` // 發生者性別（直通）

	Department          string `json:"department"`            // 病人/住民-所在科別
	HealthImpact        string `json:"health_impact"`         // 事件發生後對病人健康的影響程度
	HealthImpactSummary string `json:"health_impact_summary"` // 影響程度(彙總)：有傷害/無傷害
	Seniority           string `json:"seniority"`             // 通報者工作年資（直通）
}

// HighSeverity SAC 1 或 2（死亡＋重大傷害）
func (in *Incident) HighSeverity() bool {
	return in.SAC != nil && (*in.SAC == SACDeath || *in.SAC == SACMajor)
}

// Year 由年月排序鍵取出年份；鍵格式不符回傳 0
func (in *Incident) Year() int {
	return periodYear(in.Period)
}

func periodYear(period string) int {
	if len(period) < 4 {
		return 0
	}
	y := 0
	for _, c := range period[:4] {
		if c < '0' || c > '9' {
			return 0
		}
		y = y*10 + int(c-'0')
	}
	return y
}
