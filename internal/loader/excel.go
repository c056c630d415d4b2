package loader

import (
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// 載入致命錯誤：缺工作表或缺必要欄位時整個載入失敗，絕不以部分資料繼續
var (
	ErrSheetMissing  = errors.New("workbook sheet missing")
	ErrColumnMissing = errors.New("required column missing")
)

// ExcelLoader 以 excelize 讀取通報匯出檔
type ExcelLoader struct {
	logger *zap.Logger
}

func NewExcelLoader(logger *zap.Logger) *ExcelLoader {
	return &ExcelLoader{logger: logger}
}

// Load 讀取活頁簿三張工作表，回傳未解析的原始列
func (l *ExcelLoader) Load(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()

	wb := &Workbook{}
	if wb.Incidents, err = l.readIncidents(f); err != nil {
		return nil, err
	}
	if wb.Falls, err = l.readFalls(f); err != nil {
		return nil, err
	}
	if wb.Exposure, err = l.readExposure(f); err != nil {
		return nil, err
	}

	l.logger.Info("workbook loaded",
		zap.String("path", path),
		zap.Int("incident_rows", len(wb.Incidents)),
		zap.Int("fall_rows", len(wb.Falls)),
		zap.Int("exposure_rows", len(wb.Exposure)),
	)
	return wb, nil
}

// header 讀表頭列並建立欄名→索引映射
type header map[string]int

func sheetRows(f *excelize.File, sheet string) ([][]string, header, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s", ErrSheetMissing, sheet)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("%w: %s (empty sheet)", ErrSheetMissing, sheet)
	}
	h := header{}
	for i, name := range rows[0] {
		h[name] = i
	}
	return rows[1:], h, nil
}

// require 確認所有必要欄位存在，缺一即為載入致命錯誤
func (h header) require(sheet string, cols ...string) error {
	for _, c := range cols {
		if _, ok := h[c]; !ok {
			return fmt.Errorf("%w: %s!%s", ErrColumnMissing, sheet, c)
		}
	}
	return nil
}

// cell 安全取值：GetRows 會截掉列尾空儲存格
func (h header) cell(row []string, col string) string {
	i, ok := h[col]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

func (l *ExcelLoader) readIncidents(f *excelize.File) ([]RawIncident, error) {
	rows, h, err := sheetRows(f, SheetIncidents)
	if err != nil {
		return nil, err
	}
	if err := h.require(SheetIncidents,
		"通報案號", "發生日期", "事件類別", "SAC", "發生時段",
		"通報者資料-通報者服務單位", "發生者資料-診斷", "事件說明",
		"發生者資料-年齡", "發生者資料-性別",
		"病人/住民-所在科別",
		"病人/住民-事件發生後對病人健康的影響程度",
		"病人/住民-事件發生後對病人健康的影響程度(彙總)",
		"通報者資料-工作年資",
	); err != nil {
		return nil, err
	}

	out := make([]RawIncident, 0, len(rows))
	for _, row := range rows {
		out = append(out, RawIncident{
			ReportNo:            h.cell(row, "通報案號"),
			Date:                h.cell(row, "發生日期"),
			EventType:           h.cell(row, "事件類別"),
			SAC:                 h.cell(row, "SAC"),
			TimeSlot:            h.cell(row, "發生時段"),
			Unit:                h.cell(row, "通報者資料-通報者服務單位"),
			Diagnosis:           h.cell(row, "發生者資料-診斷"),
			Narrative:           h.cell(row, "事件說明"),
			Age:                 h.cell(row, "發生者資料-年齡"),
			Sex:                 h.cell(row, "發生者資料-性別"),
			Department:          h.cell(row, "病人/住民-所在科別"),
			HealthImpact:        h.cell(row, "病人/住民-事件發生後對病人健康的影響程度"),
			HealthImpactSummary: h.cell(row, "病人/住民-事件發生後對病人健康的影響程度(彙總)"),
			Seniority:           h.cell(row, "通報者資料-工作年資"),
		})
	}
	return out, nil
}

func (l *ExcelLoader) readFalls(f *excelize.File) ([]RawFall, error) {
	rows, h, err := sheetRows(f, SheetFalls)
	if err != nil {
		return nil, err
	}
	if err := h.require(SheetFalls,
		"通報案號", "發生日期", "事件說明",
		"跌倒事件發生對象-事件發生前是否為跌倒高危險群",
		"跌倒事件發生對象-事件發生前的獨立活動能力",
		"跌倒事件發生對象-當事人當時意識狀況",
		"跌倒事件發生對象-事件發生時有無陪伴者",
		"跌倒事件發生對象-最近一年是否曾經跌倒",
		"可能原因-鎮靜安眠藥", "可能原因-降壓藥", "可能原因-止痛麻醉劑",
		"可能原因-降血糖藥", "可能原因-抗癲癇藥", "可能原因-肌肉鬆弛劑",
		"可能原因-步態不穩", "可能原因-高危險群病人執意自行下床或活動",
	); err != nil {
		return nil, err
	}

	out := make([]RawFall, 0, len(rows))
	for _, row := range rows {
		out = append(out, RawFall{
			ReportNo:            h.cell(row, "通報案號"),
			Date:                h.cell(row, "發生日期"),
			Narrative:           h.cell(row, "事件說明"),
			HighRiskGroup:       h.cell(row, "跌倒事件發生對象-事件發生前是否為跌倒高危險群"),
			Mobility:            h.cell(row, "跌倒事件發生對象-事件發生前的獨立活動能力"),
			Consciousness:       h.cell(row, "跌倒事件發生對象-當事人當時意識狀況"),
			Accompanied:         h.cell(row, "跌倒事件發生對象-事件發生時有無陪伴者"),
			FallHistory:         h.cell(row, "跌倒事件發生對象-最近一年是否曾經跌倒"),
			CauseSedative:       h.cell(row, "可能原因-鎮靜安眠藥"),
			CauseAntihyperten:   h.cell(row, "可能原因-降壓藥"),
			CauseAnalgesic:      h.cell(row, "可能原因-止痛麻醉劑"),
			CauseHypoglycemic:   h.cell(row, "可能原因-降血糖藥"),
			CauseAnticonvulsant: h.cell(row, "可能原因-抗癲癇藥"),
			CauseMuscleRelaxant: h.cell(row, "可能原因-肌肉鬆弛劑"),
			CauseUnsteadyGait:   h.cell(row, "可能原因-步態不穩"),
			CauseInsistGetUp:    h.cell(row, "可能原因-高危險群病人執意自行下床或活動"),
		})
	}
	return out, nil
}

func (l *ExcelLoader) readExposure(f *excelize.File) ([]RawExposure, error) {
	rows, h, err := sheetRows(f, SheetBedDays)
	if err != nil {
		return nil, err
	}
	if err := h.require(SheetBedDays, "年月", "單位", "住院人日數"); err != nil {
		return nil, err
	}

	out := make([]RawExposure, 0, len(rows))
	for _, row := range rows {
		out = append(out, RawExposure{
			Period:  h.cell(row, "年月"),
			Unit:    h.cell(row, "單位"),
			BedDays: h.cell(row, "住院人日數"),
		})
	}
	return out, nil
}
