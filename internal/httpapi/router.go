package httpapi

import (
	"net/http"
	"time"
)

// NewMux 注册全部路由
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, map[string]any{
			"status":  "healthy",
			"version": d.Version,
			"time":    time.Now().UTC(),
		})
	})

	// 公司
	ch := CompaniesHandler{Service: d.Service}
	mux.HandleFunc("POST /api/companies/analyze", ch.Analyze)
	mux.HandleFunc("POST /api/companies/compare", ch.Compare)
	mux.HandleFunc("GET /api/companies/{name}/basic-info", ch.BasicInfo)
	mux.HandleFunc("GET /api/companies/{name}/posts", ch.Posts)
	mux.HandleFunc("GET /api/companies/{name}/jobs", ch.Jobs)
	mux.HandleFunc("GET /api/companies/{name}/export", ch.Export)

	// 洞察
	ih := InsightsHandler{Service: d.Service}
	mux.HandleFunc("GET /api/insights/{name}", ih.Get)
	mux.HandleFunc("GET /api/insights/{name}/hiring-predictions", ih.HiringPredictions)
	mux.HandleFunc("GET /api/insights/{name}/engagement", ih.Engagement)

	// 员工
	eh := EmployeesHandler{Service: d.Service}
	mux.HandleFunc("GET /api/employees/{name}", eh.List)
	mux.HandleFunc("GET /api/employees/{name}/departments", eh.Departments)
	mux.HandleFunc("GET /api/employees/{name}/skills", eh.Skills)

	// 会话
	sh := SessionsHandler{Service: d.Service}
	mux.HandleFunc("GET /api/sessions", sh.List)
	mux.HandleFunc("GET /api/sessions/{id}", sh.Get)

	return mux
}

// NewHandler 路由加上中间件
func NewHandler(d Deps, requestTimeout time.Duration) http.Handler {
	return Chain(NewMux(d), RequestID, Recover, AccessLog, Cors, Timeout(requestTimeout))
}

// NewServer 创建HTTP服务
func NewServer(addr string, d Deps, requestTimeout time.Duration) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           NewHandler(d, requestTimeout),
		ReadHeaderTimeout: 5 * time.Second,
	}
}
