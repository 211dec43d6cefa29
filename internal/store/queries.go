package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/RecoveryAshes/LinkScope/internal/models"
)

// ListPosts 最近的动态,按发布时间倒序
func (s *Store) ListPosts(ctx context.Context, name string, limit int) ([]models.PostRecord, error) {
	id, err := s.companyID(ctx, name)
	if err != nil {
		return nil, err
	}
	return s.queryPosts(ctx, id, limit)
}

// ListJobs 职位列表, department 为空时返回全部部门
func (s *Store) ListJobs(ctx context.Context, name string, department models.Department) ([]models.JobRecord, error) {
	id, err := s.companyID(ctx, name)
	if err != nil {
		return nil, err
	}
	return s.queryJobs(ctx, id, department, 0)
}

// ListEmployees 员工列表,部门和职级为空时不过滤
func (s *Store) ListEmployees(ctx context.Context, name string, department models.Department, level models.SeniorityLevel, limit int) ([]models.EmployeeRecord, error) {
	id, err := s.companyID(ctx, name)
	if err != nil {
		return nil, err
	}
	return s.queryEmployees(ctx, id, department, level, limit)
}

// limitClause limit <= 0 表示不限制
func limitClause(limit int) string {
	if limit <= 0 {
		return ""
	}
	return fmt.Sprintf(" LIMIT %d", limit)
}

func (s *Store) queryPosts(ctx context.Context, companyID int64, limit int) ([]models.PostRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT record_id, content, date, engagement, type, url, author
		FROM posts WHERE company_id = ?
		ORDER BY date DESC, id`+limitClause(limit), companyID)
	if err != nil {
		return nil, fmt.Errorf("查询动态失败: %w", err)
	}
	defer rows.Close()

	posts := make([]models.PostRecord, 0)
	for rows.Next() {
		var (
			p        models.PostRecord
			date     string
			postType string
		)
		if err := rows.Scan(&p.ID, &p.Content, &date, &p.Engagement, &postType, &p.URL, &p.Author); err != nil {
			return nil, err
		}
		p.Date = parseTime(date)
		p.Type = models.PostType(postType)
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func (s *Store) queryJobs(ctx context.Context, companyID int64, department models.Department, limit int) ([]models.JobRecord, error) {
	query := `
		SELECT record_id, title, location, department, date_posted, requirements,
			description, salary_range, employment_type, url
		FROM jobs WHERE company_id = ?`
	args := []any{companyID}
	if department != "" {
		query += " AND department = ?"
		args = append(args, string(department))
	}
	query += " ORDER BY date_posted DESC, id" + limitClause(limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("查询职位失败: %w", err)
	}
	defer rows.Close()

	jobs := make([]models.JobRecord, 0)
	for rows.Next() {
		var (
			j          models.JobRecord
			dept, date string
			reqs       string
		)
		if err := rows.Scan(&j.ID, &j.Title, &j.Location, &dept, &date, &reqs,
			&j.Description, &j.Salary, &j.EmploymentType, &j.URL); err != nil {
			return nil, err
		}
		j.Department = models.Department(dept)
		j.DatePosted = parseTime(date)
		j.Requirements = decodeList(reqs)
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

func (s *Store) queryEmployees(ctx context.Context, companyID int64, department models.Department, level models.SeniorityLevel, limit int) ([]models.EmployeeRecord, error) {
	var (
		where = []string{"company_id = ?"}
		args  = []any{companyID}
	)
	if department != "" {
		where = append(where, "department = ?")
		args = append(args, string(department))
	}
	if level != "" {
		where = append(where, "level = ?")
		args = append(args, string(level))
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT record_id, name, title, department, level, location, skills, tenure, education, profile_url
		FROM employees WHERE `+strings.Join(where, " AND ")+" ORDER BY id"+limitClause(limit), args...)
	if err != nil {
		return nil, fmt.Errorf("查询员工失败: %w", err)
	}
	defer rows.Close()

	employees := make([]models.EmployeeRecord, 0)
	for rows.Next() {
		var (
			e         models.EmployeeRecord
			dept, lvl string
			skills    string
		)
		if err := rows.Scan(&e.ID, &e.Name, &e.Title, &dept, &lvl, &e.Location, &skills,
			&e.Tenure, &e.Education, &e.ProfileURL); err != nil {
			return nil, err
		}
		e.Department = models.Department(dept)
		e.Level = models.SeniorityLevel(lvl)
		e.Skills = decodeList(skills)
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

// decodeList 解析JSON数组,损坏的数据返回空列表
func decodeList(raw string) []string {
	out := []string{}
	if err := json.Unmarshal([]byte(raw), &out); err != nil || out == nil {
		return []string{}
	}
	return out
}
