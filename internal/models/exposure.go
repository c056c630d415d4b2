package models

// UnitWholeHospital 合成的全院單位：各月份住院人日數為所有單位加總
const UnitWholeHospital = "全院"

// Exposure 某單位某年月的住院人日數（發生率分母）
type Exposure struct {
	Period  string  `json:"period"` // 年月排序鍵
	Unit    string  `json:"unit"`
	BedDays float64 `json:"bed_days"`
}

// MonthlyRate 某年月的件數、暴露量與每千住院人日發生率
// 暴露量為零或缺漏時 Rate 為 0（月份仍保留，不剔除）
type MonthlyRate struct {
	Period  string  `json:"period"`  // 排序鍵 "2024-01"
	Display string  `json:"display"` // 顯示格式 "2024/01"
	Count   int     `json:"count"`
	BedDays float64 `json:"bed_days"`
	Rate    float64 `json:"rate"`
	Outlier bool    `json:"outlier"` // 管制圖異常點（超出管制界限）
}
