// Package normalize 原始類別欄位的正規化：單位名稱、發生時段、年月鍵
package normalize

import (
	"strings"
	"time"

	"golang.org/x/text/width"
)

// UnitUnknown 單位缺漏或空白時的標準值
const UnitUnknown = "未知"

// Unit 正規化通報單位文字：全形折半形、去空白、轉大寫；
// 空白與 "NAN"（匯出檔的缺值殘留）一律為 未知
func Unit(raw string) string {
	u := width.Narrow.String(raw)
	u = strings.ToUpper(strings.TrimSpace(u))
	if u == "" || u == "NAN" {
		return UnitUnknown
	}
	return u
}

// TimeSlotOrder 12 個 2 小時時段桶（固定顯示順序）
var TimeSlotOrder = []string{
	"00-02時", "02-04時", "04-06時", "06-08時", "08-10時", "10-12時",
	"12-14時", "14-16時", "16-18時", "18-20時", "20-22時", "22-24時",
}

// timeSlotMap 發生時段原文 → 標準桶
// 來源資料同一桶有兩種邊界寫法（"00:01-02:00" 與 "00:00-02:00"），都收進同桶
var timeSlotMap = map[string]string{
	"00:01-02:00": "00-02時", "00:00-02:00": "00-02時",
	"02:01-04:00": "02-04時", "02:00-04:00": "02-04時",
	"04:01-06:00": "04-06時", "04:00-06:00": "04-06時",
	"06:01-08:00": "06-08時", "06:00-08:00": "06-08時",
	"08:01-10:00": "08-10時", "08:00-10:00": "08-10時",
	"10:01-12:00": "10-12時", "10:00-12:00": "10-12時",
	"12:01-14:00": "12-14時", "12:00-14:00": "12-14時",
	"14:01-16:00": "14-16時", "14:00-16:00": "14-16時",
	"16:01-18:00": "16-18時", "16:00-18:00": "16-18時",
	"18:01-20:00": "18-20時", "18:00-20:00": "18-20時",
	"20:01-22:00": "20-22時", "20:00-22:00": "20-22時",
	"22:01-24:00": "22-24時", "22:00-24:00": "22-24時",
}

// TimeSlot 發生時段原文對應標準桶；未對應回傳空字串（非錯誤）
func TimeSlot(raw string) string {
	return timeSlotMap[strings.TrimSpace(raw)]
}

// PeriodKey 發生日期 → 年月排序鍵（"2024-01"，字典序即時間序）
func PeriodKey(t time.Time) string {
	return t.Format("2006-01")
}

// PeriodDisplay 排序鍵 → 顯示格式（"2024-01" → "2024/01"）
// 圖表 X 軸統一用顯示格式；分組與區間比較一律用排序鍵
func PeriodDisplay(key string) string {
	return strings.ReplaceAll(key, "-", "/")
}
