// Package loader 讀取病安通報匯出活頁簿（xlsx），並提供以檔案身分為鍵的載入快取
//
// loader 只負責把工作表還原成字串列，不做任何解析或衍生；
// 日期、SAC、分類等一律由 pipeline 處理。
package loader

// 活頁簿固定的三張工作表
const (
	SheetIncidents = "109-113全部"
	SheetFalls     = "109-113跌倒"
	SheetBedDays   = "住院人日數"
)

// RawIncident 全部工作表的一列（原文字串，未解析）
type RawIncident struct {
	ReportNo            string // 通報案號
	Date                string // 發生日期
	EventType           string // 事件類別
	SAC                 string // SAC
	TimeSlot            string // 發生時段
	Unit                string // 通報者資料-通報者服務單位
	Diagnosis           string // 發生者資料-診斷
	Narrative           string // 事件說明
	Age                 string // 發生者資料-年齡
	Sex                 string // 發生者資料-性別
	Department          string // 病人/住民-所在科別
	HealthImpact        string // 病人/住民-事件發生後對病人健康的影響程度
	HealthImpactSummary string // 病人/住民-事件發生後對病人健康的影響程度(彙總)
	Seniority           string // 通報者資料-工作年資
}

// RawFall 跌倒工作表的一列
type RawFall struct {
	ReportNo      string // 通報案號
	Date          string // 發生日期
	Narrative     string // 事件說明
	HighRiskGroup string // 跌倒事件發生對象-事件發生前是否為跌倒高危險群
	Mobility      string // 跌倒事件發生對象-事件發生前的獨立活動能力
	Consciousness string // 跌倒事件發生對象-當事人當時意識狀況
	Accompanied   string // 跌倒事件發生對象-事件發生時有無陪伴者
	FallHistory   string // 跌倒事件發生對象-最近一年是否曾經跌倒

	// 可能原因勾選欄（"1"/"0"）
	CauseSedative       string // 可能原因-鎮靜安眠藥
	CauseAntihyperten   string // 可能原因-降壓藥
	CauseAnalgesic      string // 可能原因-止痛麻醉劑
	CauseHypoglycemic   string // 可能原因-降血糖藥
	CauseAnticonvulsant string // 可能原因-抗癲癇藥
	CauseMuscleRelaxant string // 可能原因-肌肉鬆弛劑
	CauseUnsteadyGait   string // 可能原因-步態不穩
	CauseInsistGetUp    string // 可能原因-高危險群病人執意自行下床或活動
}

// RawExposure 住院人日數工作表的一列
type RawExposure struct {
	Period  string // 年月
	Unit    string // 單位
	BedDays string // 住院人日數
}

// Workbook 一次載入的全部原始資料
type Workbook struct {
	Incidents []RawIncident
	Falls     []RawFall
	Exposure  []RawExposure
}
