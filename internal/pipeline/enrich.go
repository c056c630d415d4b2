// Package pipeline 強化管線：把 loader 的原始列轉成分類完成、可供彙總的工作資料集
//
// 步驟順序固定（後面步驟依賴前面的衍生欄位）：
// 解析日期（失敗整列剔除）→ 年月鍵 → SAC → 單位正規化 → 時段桶 →
// 事件大類 → 診斷分類 → 跌倒表左併主表欄位 + 事件說明特徵萃取。
package pipeline

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"psi-dashboard/internal/classify"
	"psi-dashboard/internal/features"
	"psi-dashboard/internal/loader"
	"psi-dashboard/internal/models"
	"psi-dashboard/internal/normalize"
)

// Dataset 強化後的資料集；載入完成後不可變，所有檢視都從它重新衍生
type Dataset struct {
	Incidents []models.Incident
	Falls     []models.FallIncident
	Exposure  []models.Exposure // 含合成的全院列

	DroppedIncidents int // 發生日期無法解析而剔除的列數
	DroppedFalls     int
}

// Enricher 強化管線
type Enricher struct {
	logger *zap.Logger
}

func NewEnricher(logger *zap.Logger) *Enricher {
	return &Enricher{logger: logger}
}

// Enrich 對整份活頁簿執行強化管線。
// 列級問題（壞日期、未知時段、未分類診斷）在地處理，不會讓載入失敗；
// 只有住院人日數表的年月或人日數無法解析才回傳錯誤（分母壞掉是致命的）。
func (e *Enricher) Enrich(wb *loader.Workbook) (*Dataset, error) {
	ds := &Dataset{}

	for _, raw := range wb.Incidents {
		occurred, ok := parseDate(raw.Date)
		if !ok {
			ds.DroppedIncidents++
			continue
		}
		ds.Incidents = append(ds.Incidents, models.Incident{
			ReportNo:            strings.TrimSpace(raw.ReportNo),
			OccurredAt:          occurred,
			Period:              normalize.PeriodKey(occurred),
			RawEventType:        strings.TrimSpace(raw.EventType),
			Category:            classify.EventCategory(strings.TrimSpace(raw.EventType)),
			SAC:                 parseSAC(raw.SAC),
			Unit:                normalize.Unit(raw.Unit),
			TimeSlot:            normalize.TimeSlot(raw.TimeSlot),
			Diagnosis:           raw.Diagnosis,
			DiagnosisCategory:   classify.ClassifyDiagnosis(raw.Diagnosis),
			Narrative:           raw.Narrative,
			Age:                 strings.TrimSpace(raw.Age),
			Sex:                 strings.TrimSpace(raw.Sex),
			Department:          strings.TrimSpace(raw.Department),
			HealthImpact:        strings.TrimSpace(raw.HealthImpact),
			HealthImpactSummary: strings.TrimSpace(raw.HealthImpactSummary),
			Seniority:           strings.TrimSpace(raw.Seniority),
		})
	}

	// 主表欄位索引（供跌倒表左併科別與影響程度）
	byReportNo := make(map[string]*models.Incident, len(ds.Incidents))
	for i := range ds.Incidents {
		byReportNo[ds.Incidents[i].ReportNo] = &ds.Incidents[i]
	}

	for _, raw := range wb.Falls {
		occurred, ok := parseDate(raw.Date)
		if !ok {
			ds.DroppedFalls++
			continue
		}
		fall := models.FallIncident{
			ReportNo:            strings.TrimSpace(raw.ReportNo),
			OccurredAt:          occurred,
			Period:              normalize.PeriodKey(occurred),
			Narrative:           raw.Narrative,
			HighRiskGroup:       strings.TrimSpace(raw.HighRiskGroup),
			Mobility:            strings.TrimSpace(raw.Mobility),
			Consciousness:       strings.TrimSpace(raw.Consciousness),
			Accompanied:         strings.TrimSpace(raw.Accompanied),
			FallHistory:         strings.TrimSpace(raw.FallHistory),
			CauseSedative:       parseFlag(raw.CauseSedative),
			CauseAntihyperten:   parseFlag(raw.CauseAntihyperten),
			CauseAnalgesic:      parseFlag(raw.CauseAnalgesic),
			CauseHypoglycemic:   parseFlag(raw.CauseHypoglycemic),
			CauseAnticonvulsant: parseFlag(raw.CauseAnticonvulsant),
			CauseMuscleRelaxant: parseFlag(raw.CauseMuscleRelaxant),
			CauseUnsteadyGait:   parseFlag(raw.CauseUnsteadyGait),
			CauseInsistGetUp:    parseFlag(raw.CauseInsistGetUp),
			Features:            features.Extract(raw.Narrative, features.FallFeatures),
		}
		// 左併：主表無對應案號時欄位留空
		if in, ok := byReportNo[fall.ReportNo]; ok {
			fall.Department = in.Department
			fall.HealthImpact = in.HealthImpact
			fall.HealthImpactSummary = in.HealthImpactSummary
		}
		ds.Falls = append(ds.Falls, fall)
	}

	exposure, err := e.buildExposure(wb.Exposure)
	if err != nil {
		return nil, err
	}
	ds.Exposure = exposure

	e.logger.Info("dataset enriched",
		zap.Int("incidents", len(ds.Incidents)),
		zap.Int("falls", len(ds.Falls)),
		zap.Int("exposure_rows", len(ds.Exposure)),
		zap.Int("dropped_incidents", ds.DroppedIncidents),
		zap.Int("dropped_falls", ds.DroppedFalls),
	)
	return ds, nil
}

// buildExposure 解析人日數表並合成全院列（各月份所有單位加總）
func (e *Enricher) buildExposure(rows []loader.RawExposure) ([]models.Exposure, error) {
	out := make([]models.Exposure, 0, len(rows))
	totals := map[string]float64{}
	for i, raw := range rows {
		occurred, ok := parseDate(raw.Period)
		if !ok {
			return nil, fmt.Errorf("exposure row %d: unparseable period %q", i+2, raw.Period)
		}
		days, err := strconv.ParseFloat(strings.TrimSpace(raw.BedDays), 64)
		if err != nil {
			return nil, fmt.Errorf("exposure row %d: unparseable bed-days %q", i+2, raw.BedDays)
		}
		period := normalize.PeriodKey(occurred)
		out = append(out, models.Exposure{
			Period:  period,
			Unit:    normalize.Unit(raw.Unit),
			BedDays: days,
		})
		totals[period] += days
	}

	periods := make([]string, 0, len(totals))
	for p := range totals {
		periods = append(periods, p)
	}
	sort.Strings(periods)
	for _, p := range periods {
		out = append(out, models.Exposure{
			Period:  p,
			Unit:    models.UnitWholeHospital,
			BedDays: totals[p],
		})
	}
	return out, nil
}

// dateLayouts 匯出檔常見的日期寫法
var dateLayouts = []string{
	"2006-01-02", "2006/01/02", "2006-1-2", "2006/1/2",
	"2006-01-02 15:04:05", "2006/01/02 15:04:05",
	"01-02-06", // excelize 預設日期顯示格式
	"2006-01", "2006/01", "2006/1", // 人日數表的年月
}

// parseDate 解析日期字串；也接受 Excel 日期序號。解析失敗回傳 false（非錯誤）
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial > 0 {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseSAC 解析 SAC 為 1–4 的序數；缺漏或非法為 nil，絕不代入預設嚴重度
func parseSAC(s string) *int {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	n := int(v)
	if float64(n) != v || n < models.SACDeath || n > models.SACNoHarm {
		return nil
	}
	return &n
}

// parseFlag 可能原因勾選欄："1"（或 true）為勾選
func parseFlag(s string) bool {
	s = strings.TrimSpace(s)
	return s == "1" || strings.EqualFold(s, "true")
}
