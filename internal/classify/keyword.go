// Package classify 關鍵字規則分類：把自由文本對應到固定類別
//
// 規則表為「有序」的 (類別, 關鍵字集) 清單，逐條比對、第一條命中即勝出。
// 關鍵字集之間可以重疊（同一段文字可能同時含中風與失智關鍵字），
// 因此規則順序就是優先序，屬於契約的一部分，不能依賴 map 迭代順序。
package classify

import "strings"

// Rule 一條分類規則：文字含任一關鍵字（子字串比對）即判為該類別
type Rule struct {
	Category string
	Keywords []string
}

// Classify 依序比對規則，第一條命中即回傳其類別；全部未命中回傳 fallback。
// 輸入先轉小寫，空字串只會落到 fallback。永不失敗、永遠恰好回傳一個類別。
func Classify(text string, rules []Rule, fallback string) string {
	t := strings.ToLower(text)
	if t == "" {
		return fallback
	}
	for _, r := range rules {
		for _, kw := range r.Keywords {
			if strings.Contains(t, kw) {
				return r.Category
			}
		}
	}
	return fallback
}
