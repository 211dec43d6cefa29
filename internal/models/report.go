package models

import (
	"encoding/json"
	"time"
)

// ScrapeReport 单次抓取报告
type ScrapeReport struct {
	SessionID   string     `json:"session_id"`
	CompanyName string     `json:"company_name"`
	Provenance  Provenance `json:"provenance"`

	// 阶段信息
	FinalStage  string `json:"final_stage"`
	FailedStage string `json:"failed_stage,omitempty"`
	Error       string `json:"error,omitempty"`

	// 时间信息
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Duration  float64   `json:"duration"` // 秒

	// 统计信息
	Stats ScrapeStats `json:"stats"`

	// 配置快照
	Config ScrapeConfig `json:"config"`
}

// ScrapeStats 抓取统计
type ScrapeStats struct {
	Posts          int `json:"posts"`
	Jobs           int `json:"jobs"`
	Employees      int `json:"employees"`
	FollowerCount  int `json:"follower_count"`
	EmployeeCount  int `json:"employee_count"`
	DepartmentsHit int `json:"departments_hiring"`
}

// StatsFromBundle 从结果包统计
func StatsFromBundle(b *ResultBundle) ScrapeStats {
	depts := make(map[Department]bool)
	for _, j := range b.Jobs {
		depts[j.Department] = true
	}
	return ScrapeStats{
		Posts:          len(b.Posts),
		Jobs:           len(b.Jobs),
		Employees:      len(b.Employees),
		FollowerCount:  b.Company.FollowerCount,
		EmployeeCount:  b.Company.EmployeeCount,
		DepartmentsHit: len(depts),
	}
}

// ToJSON 序列化为JSON
func (r *ScrapeReport) ToJSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// FromJSON 从JSON反序列化
func (r *ScrapeReport) FromJSON(data []byte) error {
	return json.Unmarshal(data, r)
}
