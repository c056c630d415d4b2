// Package httpapi 渲染層（前端）讀取衍生資料表的唯讀 JSON API
//
// 這一層只做參數解析與序列化，不做任何計算；所有衍生欄位對渲染層唯讀。
package httpapi

import (
	"net/http"

	"go.uber.org/zap"
)

// Router 使用標準庫 http.ServeMux（不引入第三方路由依賴）
type Router struct {
	mux    *http.ServeMux
	logger *zap.Logger
}

func NewRouter(logger *zap.Logger) *Router {
	return &Router{
		mux:    http.NewServeMux(),
		logger: logger,
	}
}

func (r *Router) Handle(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, h)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// RegisterDashboardRoutes 註冊儀表板路由（全部 GET）
func (r *Router) RegisterDashboardRoutes(h *DashboardHandler) {
	get := func(pattern string, fn http.HandlerFunc) {
		r.Handle(pattern, func(w http.ResponseWriter, req *http.Request) {
			if req.Method != http.MethodGet {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
			fn(w, req)
		})
	}

	get("/dashboard/api/v1/summary", h.Summary)
	get("/dashboard/api/v1/trend", h.Trend)
	get("/dashboard/api/v1/control-chart", h.ControlChart)
	get("/dashboard/api/v1/distributions", h.Distributions)
	get("/dashboard/api/v1/fall-features", h.FallFeatures)
	get("/dashboard/api/v1/fall-features/drilldown", h.FeatureDrilldown)
	get("/dashboard/api/v1/yearly-comparison", h.YearlyComparison)
	get("/dashboard/api/v1/options", h.Options)
}
