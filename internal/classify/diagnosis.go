package classify

// DiagnosisFallback 未命中任何診斷規則時的類別
const DiagnosisFallback = "其他"

// DiagnosisRules 診斷文字分類規則表（13 類 + 其他）
//
// 順序即優先序：例如「E11.9 Type 2 DM with CKD」同時命中糖尿病與腎病
// 關鍵字，因糖尿病規則在前而判為糖尿病。關鍵字一律小寫（比對前輸入已轉小寫）。
var DiagnosisRules = []Rule{
	{"思覺失調/精神病", []string{"思覺失調", "精神病", "psycho", "schizo"}},
	{"雙相/躁症", []string{"雙相", "躁症", "bipolar", "manic"}},
	{"憂鬱症", []string{"憂鬱", "depression", "depressive"}},
	{"失智症", []string{"失智", "dementia"}},
	{"帕金森氏症", []string{"帕金森", "parkinson"}},
	{"腦血管病", []string{"腦梗", "中風", "stroke", "i63", "i64", "腦血管", "腦出血", "ich"}},
	{"骨折相關", []string{"骨折", "fr.", "fracture", " # "}},
	{"糖尿病", []string{"糖尿病", "diabetes", " dm", "dm ", "dm,", "dm."}},
	{"腎病", []string{"腎病", "ckd", "腎衰", "腎功能"}},
	{"肝病", []string{"肝病", "肝炎", "肝硬化", "肝衰"}},
	{"心臟病", []string{"心臟", "心衰", "心肌", "冠狀動脈", "心房", "心室"}},
	{"呼吸系統", []string{"肺炎", "呼吸", "copd", "氣喘", "支氣管"}},
	{"腫瘤/癌症", []string{"癌", "腫瘤", "惡性", "malignant", "carcinoma", "lymphoma"}},
}

// ClassifyDiagnosis 對診斷自由文字分類
func ClassifyDiagnosis(text string) string {
	return Classify(text, DiagnosisRules, DiagnosisFallback)
}
