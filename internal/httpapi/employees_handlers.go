package httpapi

import (
	"net/http"

	"github.com/RecoveryAshes/LinkScope/internal/insights"
)

// EmployeesHandler 员工列表与部门、技能聚合接口
type EmployeesHandler struct {
	Service Service
}

// List GET /api/employees/{name}?department=&level=&limit=50
func (h EmployeesHandler) List(w http.ResponseWriter, r *http.Request) {
	name, err := companyName(r)
	if err != nil {
		badRequest(w, r, err.Error())
		return
	}
	q := r.URL.Query()
	dept, err := parseDepartment(q.Get("department"))
	if err != nil {
		badRequest(w, r, err.Error())
		return
	}
	level, err := parseLevel(q.Get("level"))
	if err != nil {
		badRequest(w, r, err.Error())
		return
	}
	limit, err := intQuery(r, "limit", 50, 1, 200)
	if err != nil {
		badRequest(w, r, err.Error())
		return
	}

	employees, err := h.Service.Employees(r.Context(), name, dept, level, limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"company_name": name,
		"employees":    employees,
		"total":        len(employees),
		"filters": map[string]any{
			"department": dept,
			"level":      level,
			"limit":      limit,
		},
	})
}

// Departments GET /api/employees/{name}/departments
func (h EmployeesHandler) Departments(w http.ResponseWriter, r *http.Request) {
	name, err := companyName(r)
	if err != nil {
		badRequest(w, r, err.Error())
		return
	}
	employees, err := h.Service.Employees(r.Context(), name, "", "", 0)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	d := insights.Departments(employees)
	WriteJSON(w, http.StatusOK, map[string]any{
		"company_name":      name,
		"departments":       d.Departments,
		"department_counts": d.DepartmentCounts,
		"total_employees":   len(employees),
	})
}

// Skills GET /api/employees/{name}/skills?top_n=20
func (h EmployeesHandler) Skills(w http.ResponseWriter, r *http.Request) {
	name, err := companyName(r)
	if err != nil {
		badRequest(w, r, err.Error())
		return
	}
	topN, err := intQuery(r, "top_n", 20, 1, 100)
	if err != nil {
		badRequest(w, r, err.Error())
		return
	}
	employees, err := h.Service.Employees(r.Context(), name, "", "", 0)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	s := insights.Skills(employees, topN)
	WriteJSON(w, http.StatusOK, map[string]any{
		"company_name":             name,
		"top_skills":               s.TopSkills,
		"total_unique_skills":      s.TotalUniqueSkills,
		"total_employees_analyzed": s.EmployeesAnalyzed,
	})
}
