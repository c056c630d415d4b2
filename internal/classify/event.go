package classify

import "psi-dashboard/internal/models"

// eventCategoryMap 原始事件類別 → 事件大類（精確比對，非關鍵字）
// 通報系統約 14 種事件類別收斂為 7 個大類；未知類別落到 其他
var eventCategoryMap = map[string]string{
	"跌倒事件":    models.CategoryFall,
	"藥物事件":    models.CategoryMed,
	"管路事件":    models.CategoryTube,
	"傷害行為":    models.CategoryHarm,
	"醫療事件":    models.CategoryClinical,
	"治安事件":    models.CategorySecurity,
	"手術事件":    models.CategoryClinical,
	"麻醉事件":    models.CategoryClinical,
	"輸血事件":    models.CategoryClinical,
	"不預期心跳停止": models.CategoryClinical,
	"檢查檢驗":    models.CategoryOther,
	"檢驗檢查":    models.CategoryOther,
	"公共意外":    models.CategoryOther,
	"其他事件":    models.CategoryOther,
}

// EventCategory 原始事件類別正規化為事件大類，未對應者回傳 其他
// 與 Classify 同樣是全函數：任何輸入都恰好得到一個大類
func EventCategory(rawType string) string {
	if c, ok := eventCategoryMap[rawType]; ok {
		return c
	}
	return models.CategoryOther
}
