package stats

import "sort"

// ParetoItem 柏拉圖的一根長條
type ParetoItem struct {
	Name     string  `json:"name"`
	Count    int     `json:"count"`
	Share    float64 `json:"share"`     // 佔比 (%)
	CumShare float64 `json:"cum_share"` // 累積佔比 (%)
	Vital    bool    `json:"vital"`     // 位於 80% 累積線以內（QCC 80/20 重點項目）
}

// Pareto 遞減排序 + 累積佔比（80/20 分析）。
// 特徵可同時出現在同一筆紀錄，佔比分母取紀錄總數 total 而非特徵件數合計；
// 累積佔比與 80/20 切點仍以特徵件數合計計算。
// 件數相同者維持輸入順序；件數合計為 0 時各項佔比皆為 0 且無重點項目。
func Pareto(counts []ParetoItem, total int) []ParetoItem {
	out := make([]ParetoItem, len(counts))
	copy(out, counts)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })

	countSum := 0
	for _, it := range out {
		countSum += it.Count
	}
	if countSum == 0 || total <= 0 {
		for i := range out {
			out[i].Share, out[i].CumShare, out[i].Vital = 0, 0, false
		}
		return out
	}

	cum := 0
	cutoff := -1
	for i := range out {
		cum += out[i].Count
		out[i].Share = round2(float64(out[i].Count) / float64(total) * 100)
		out[i].CumShare = Round1(float64(cum) / float64(countSum) * 100)
		if float64(cum)/float64(countSum)*100 <= 80 {
			cutoff = i
		}
	}
	// 與歷史報表一致：累積 ≤80% 的長條、加上跨越 80% 線的那一根，都算重點項目
	for i := range out {
		out[i].Vital = i <= cutoff+1 && out[i].Count > 0
	}
	return out
}
