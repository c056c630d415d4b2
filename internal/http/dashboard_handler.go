package httpapi

import (
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"psi-dashboard/internal/filter"
	"psi-dashboard/internal/models"
	"psi-dashboard/internal/service"
)

// DashboardHandler 儀表板各檢視的 HTTP handler
type DashboardHandler struct {
	svc    Service
	logger *zap.Logger
}

// Service handler 依賴的服務介面（由 service.Dashboard 實作）
type Service interface {
	Summary(p filter.Params) (*service.Summary, error)
	Trend(p filter.Params) ([]models.MonthlyRate, error)
	ControlChart(p filter.Params) (*service.ControlChart, error)
	Distributions(p filter.Params) (*service.Distributions, error)
	FallAnalysis(p filter.Params) (*service.FallAnalysis, error)
	FeatureByDepartment(p filter.Params, feature string) ([]service.CountItem, error)
	YearlyComparison(yearA, yearB int, includeLTC bool, baselineFrom, baselineTo int) (*service.YearlyComparison, error)
	Options() (*service.Options, error)
}

func NewDashboardHandler(svc Service, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{svc: svc, logger: logger}
}

// parseParams 由查詢字串組出篩選條件
// start/end：年月排序鍵；unit/category/department：哨兵值表示不過濾；
// sac：逗號分隔（如 "1,2"），缺省為全部
func parseParams(req *http.Request) filter.Params {
	q := req.URL.Query()
	p := filter.Params{
		StartPeriod: q.Get("start"),
		EndPeriod:   q.Get("end"),
		Unit:        q.Get("unit"),
		Category:    q.Get("category"),
		Department:  q.Get("department"),
	}
	if raw := q.Get("sac"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
				p.SACs = append(p.SACs, n)
			}
		}
	}
	return p
}

func (h *DashboardHandler) respond(w http.ResponseWriter, v any, err error) {
	if err != nil {
		// 只有載入致命錯誤會走到這裡（缺檔、缺工作表、缺欄位）
		h.logger.Error("dashboard view failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, Fail(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, Ok(v))
}

func (h *DashboardHandler) Summary(w http.ResponseWriter, req *http.Request) {
	v, err := h.svc.Summary(parseParams(req))
	h.respond(w, v, err)
}

func (h *DashboardHandler) Trend(w http.ResponseWriter, req *http.Request) {
	v, err := h.svc.Trend(parseParams(req))
	h.respond(w, v, err)
}

func (h *DashboardHandler) ControlChart(w http.ResponseWriter, req *http.Request) {
	v, err := h.svc.ControlChart(parseParams(req))
	h.respond(w, v, err)
}

func (h *DashboardHandler) Distributions(w http.ResponseWriter, req *http.Request) {
	v, err := h.svc.Distributions(parseParams(req))
	h.respond(w, v, err)
}

func (h *DashboardHandler) FallFeatures(w http.ResponseWriter, req *http.Request) {
	v, err := h.svc.FallAnalysis(parseParams(req))
	h.respond(w, v, err)
}

func (h *DashboardHandler) FeatureDrilldown(w http.ResponseWriter, req *http.Request) {
	feature := req.URL.Query().Get("feature")
	if feature == "" {
		writeJSON(w, http.StatusBadRequest, Fail("feature is required"))
		return
	}
	v, err := h.svc.FeatureByDepartment(parseParams(req), feature)
	h.respond(w, v, err)
}

func (h *DashboardHandler) YearlyComparison(w http.ResponseWriter, req *http.Request) {
	q := req.URL.Query()
	yearA := intQuery(q.Get("year_a"), 2024)
	yearB := intQuery(q.Get("year_b"), 2025)
	includeLTC := q.Get("include_ltc") == "true"
	v, err := h.svc.YearlyComparison(yearA, yearB, includeLTC, 2020, 2023)
	h.respond(w, v, err)
}

func (h *DashboardHandler) Options(w http.ResponseWriter, req *http.Request) {
	v, err := h.svc.Options()
	h.respond(w, v, err)
}

func intQuery(s string, def int) int {
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}
