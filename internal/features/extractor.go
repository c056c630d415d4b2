// Package features 事件說明文字的布林特徵萃取
//
// 與 classify 的規則表不同，各特徵彼此獨立：一段說明可以同時命中
// 多個旗標（床邊下床 + 滑倒 + 頭部傷害）。定義表不排序、不互斥。
package features

import "strings"

// Feature 一個特徵旗標：文字含任一觸發關鍵字即為 true
type Feature struct {
	Name     string
	Keywords []string
}

// FallFeatures 跌倒事件說明的特徵定義表
// 分五組：地點(4)、機轉(4)、發現(2)、傷害部位(3)、病況(2)
var FallFeatures = []Feature{
	{"地點_床邊下床", []string{"下床", "床邊", "起床", "離床", "坐起"}},
	{"地點_浴廁", []string{"廁所", "洗手間", "浴室", "如廁", "洗澡"}},
	{"地點_走廊行走", []string{"走廊", "走路", "行走", "散步"}},
	{"地點_椅子輪椅", []string{"椅子", "輪椅", "便盆椅"}},
	{"機轉_滑倒", []string{"滑", "打滑", "濕"}},
	{"機轉_頭暈血壓低", []string{"頭暈", "暈", "血壓低", "姿位性"}},
	{"機轉_自行起身未告知", []string{"自行", "未按鈴", "未通知", "未叫護"}},
	{"機轉_站不穩腳軟", []string{"站不穩", "腳軟", "無力", "腿軟"}},
	{"發現_護理人員巡視", []string{"巡房", "巡視", "護士發現", "護理師發現"}},
	{"發現_聲響", []string{"聲音", "聲響", "跌倒聲"}},
	{"傷害_頭部", []string{"頭", "額頭", "頭皮"}},
	{"傷害_下肢", []string{"腳", "膝蓋", "足部", "下肢", "腳踝"}},
	{"傷害_臀髖", []string{"臀", "髖"}},
	{"病況_精神症狀", []string{"幻覺", "妄想", "躁動", "激動", "衝動"}},
	{"病況_約束相關", []string{"約束", "保護帶", "掙脫", "解開"}},
}

// FeatureNames 定義表的特徵名稱（保持定義順序，供柏拉圖等輸出使用）
func FeatureNames(defs []Feature) []string {
	names := make([]string, len(defs))
	for i, d := range defs {
		names[i] = d.Name
	}
	return names
}

// Extract 對一段文字評估所有特徵，回傳每個特徵名稱到布林值的完整映射。
// 每筆記錄只跑一次；關鍵字用 strings.Contains 逐一比對，
// 不在熱迴圈內編譯 regex（數千筆 × 15 特徵要在次秒級完成）。
func Extract(text string, defs []Feature) map[string]bool {
	out := make(map[string]bool, len(defs))
	for _, d := range defs {
		hit := false
		if text != "" {
			for _, kw := range d.Keywords {
				if strings.Contains(text, kw) {
					hit = true
					break
				}
			}
		}
		out[d.Name] = hit
	}
	return out
}
