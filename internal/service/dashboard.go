// Package service 儀表板服務：載入（經快取）→ 強化 → 依篩選條件衍生各檢視
//
// 所有檢視都是從不可變資料集重新計算的純衍生，互動之間沒有共享可變狀態；
// 唯一的共享資源是載入快取本身。
package service

import (
	"fmt"
	"math"
	"sort"

	"go.uber.org/zap"

	"psi-dashboard/internal/filter"
	"psi-dashboard/internal/loader"
	"psi-dashboard/internal/models"
	"psi-dashboard/internal/pipeline"
	"psi-dashboard/internal/stats"
)

// Loader 活頁簿載入介面（測試時以 mock 取代 ExcelLoader）
type Loader interface {
	Load(path string) (*loader.Workbook, error)
}

// Dashboard 儀表板服務
type Dashboard struct {
	loader   Loader
	enricher *pipeline.Enricher
	cache    loader.Cache[*pipeline.Dataset]
	logger   *zap.Logger
	path     string
}

func NewDashboard(l Loader, logger *zap.Logger, path string) *Dashboard {
	return &Dashboard{
		loader:   l,
		enricher: pipeline.NewEnricher(logger),
		logger:   logger,
		path:     path,
	}
}

// Dataset 取得強化資料集：同一份來源檔只載入與強化一次，
// 檔案更新（身分鍵改變）時整份重建
func (d *Dashboard) Dataset() (*pipeline.Dataset, error) {
	key, err := loader.FileIdentity(d.path)
	if err != nil {
		return nil, fmt.Errorf("source workbook: %w", err)
	}
	return d.cache.Get(key, func() (*pipeline.Dataset, error) {
		wb, err := d.loader.Load(d.path)
		if err != nil {
			return nil, err
		}
		return d.enricher.Enrich(wb)
	})
}

// unitScope 發生率分母的單位範圍：未指定單位時用全院人日數
func unitScope(p filter.Params) string {
	if p.Unit == "" {
		return models.UnitWholeHospital
	}
	return p.Unit
}

// Summary 頁首 KPI
type Summary struct {
	Total            int     `json:"total"`              // 總發生件數
	Months           int     `json:"months"`             // 篩選區間內有事件的月份數
	AvgRate          float64 `json:"avg_rate"`           // 平均月發生率（非零率平均，‰）
	HighSAC          int     `json:"high_sac"`           // SAC 1+2 件數
	HighSACPct       float64 `json:"high_sac_pct"`       // 佔總件數 (%)
	Deaths           int     `json:"deaths"`             // SAC 1 件數
	DeathPct         float64 `json:"death_pct"`          //
	TopCategory      string  `json:"top_category"`       // 件數最多的事件大類
	TopCategoryCount int     `json:"top_category_count"` //
	Empty            bool    `json:"empty"`              // 篩選後無資料
}

func (d *Dashboard) Summary(p filter.Params) (*Summary, error) {
	ds, err := d.Dataset()
	if err != nil {
		return nil, err
	}
	dff := filter.Incidents(ds.Incidents, p)
	if len(dff) == 0 {
		return &Summary{Empty: true}, nil
	}

	mc := stats.MonthlyAggregate(dff, ds.Exposure, unitScope(p))

	s := &Summary{
		Total:   len(dff),
		Months:  len(mc),
		AvgRate: math.Round(stats.MeanNonZeroRate(mc)*100) / 100,
	}
	catCounts := map[string]int{}
	for _, in := range dff {
		if in.HighSeverity() {
			s.HighSAC++
		}
		if in.SAC != nil && *in.SAC == models.SACDeath {
			s.Deaths++
		}
		catCounts[in.Category]++
	}
	s.HighSACPct = stats.SafePct(s.HighSAC, s.Total)
	s.DeathPct = stats.SafePct(s.Deaths, s.Total)

	cats := make([]string, 0, len(catCounts))
	for c := range catCounts {
		cats = append(cats, c)
	}
	sort.Strings(cats) // 同件數時取名稱序靠前者，結果確定性
	for _, c := range cats {
		if catCounts[c] > s.TopCategoryCount {
			s.TopCategory, s.TopCategoryCount = c, catCounts[c]
		}
	}
	return s, nil
}

// Trend 月趨勢：件數 + 發生率（圖A 的資料）
func (d *Dashboard) Trend(p filter.Params) ([]models.MonthlyRate, error) {
	ds, err := d.Dataset()
	if err != nil {
		return nil, err
	}
	dff := filter.Incidents(ds.Incidents, p)
	return stats.MonthlyAggregate(dff, ds.Exposure, unitScope(p)), nil
}

// ControlChart 管制圖：率序列 + 管制界限 + 異常點標記
type ControlChart struct {
	Series     []models.MonthlyRate `json:"series"`
	Limits     stats.Limits         `json:"limits"`
	Sufficient bool                 `json:"sufficient"` // 非零率月份 ≥3 才有管制界限
}

func (d *Dashboard) ControlChart(p filter.Params) (*ControlChart, error) {
	series, err := d.Trend(p)
	if err != nil {
		return nil, err
	}
	limits, ok := stats.ControlLimits(series)
	if !ok {
		// 資料不足：回傳序列本身，界限留空，前端顯示「資料不足」而非壞圖
		return &ControlChart{Series: series}, nil
	}
	return &ControlChart{
		Series:     stats.MarkOutliers(series, limits),
		Limits:     limits,
		Sufficient: true,
	}, nil
}
