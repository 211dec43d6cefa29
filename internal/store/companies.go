package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/RecoveryAshes/LinkScope/internal/models"
)

// Limits 读取结果包时各列表的上限
type Limits struct {
	Posts     int
	Jobs      int
	Employees int
}

// DefaultLimits 与抓取上限一致
var DefaultLimits = Limits{Posts: 10, Jobs: 20, Employees: 50}

// SaveBundle 在一个事务中保存结果包
//   - 公司按名称 upsert
//   - 动态按内容去重,已存在的忽略
//   - 职位按标题、员工按姓名 upsert
//
// 数据来源发生变化或保存的是合成数据时,先清空该公司的旧记录,
// 保证读出的结果包不会混合真实数据和合成数据
func (s *Store) SaveBundle(ctx context.Context, b *models.ResultBundle) error {
	if err := b.Validate(); err != nil {
		return fmt.Errorf("结果包校验失败: %w", err)
	}

	return s.inTx(ctx, func(tx *sql.Tx) error {
		companyID, replace, err := upsertCompany(ctx, tx, b)
		if err != nil {
			return err
		}
		if replace {
			for _, table := range []string{"posts", "jobs", "employees"} {
				if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE company_id = ?", companyID); err != nil {
					return fmt.Errorf("清理旧记录失败: %w", err)
				}
			}
		}
		if err := insertPosts(ctx, tx, companyID, b.Posts); err != nil {
			return err
		}
		if err := upsertJobs(ctx, tx, companyID, b.Jobs); err != nil {
			return err
		}
		return upsertEmployees(ctx, tx, companyID, b.Employees)
	})
}

// upsertCompany 返回公司ID以及是否需要替换子记录
func upsertCompany(ctx context.Context, tx *sql.Tx, b *models.ResultBundle) (int64, bool, error) {
	c := b.Company
	key := NameKey(c.Name)
	now := formatTime(time.Now())

	var (
		id         int64
		provenance string
	)
	err := tx.QueryRowContext(ctx, "SELECT id, provenance FROM companies WHERE name_key = ?", key).Scan(&id, &provenance)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		res, err := tx.ExecContext(ctx, `
			INSERT INTO companies (name_key, name, industry, size, headquarters, founded, website, description,
				employee_count, follower_count, linkedin_url, provenance, scraped_at, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			key, c.Name, c.Industry, c.Size, c.Headquarters, c.Founded, c.Website, c.Description,
			c.EmployeeCount, c.FollowerCount, c.LinkedInURL, string(b.Provenance), formatTime(b.ScrapedAt), now, now)
		if err != nil {
			return 0, false, fmt.Errorf("保存公司失败: %w", err)
		}
		id, err = res.LastInsertId()
		return id, false, err
	case err != nil:
		return 0, false, fmt.Errorf("查询公司失败: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE companies SET name = ?, industry = ?, size = ?, headquarters = ?, founded = ?, website = ?,
			description = ?, employee_count = ?, follower_count = ?, linkedin_url = ?, provenance = ?,
			scraped_at = ?, updated_at = ?
		WHERE id = ?`,
		c.Name, c.Industry, c.Size, c.Headquarters, c.Founded, c.Website, c.Description,
		c.EmployeeCount, c.FollowerCount, c.LinkedInURL, string(b.Provenance), formatTime(b.ScrapedAt), now, id)
	if err != nil {
		return 0, false, fmt.Errorf("更新公司失败: %w", err)
	}

	replace := b.Provenance == models.ProvenanceFallback || provenance != string(b.Provenance)
	return id, replace, nil
}

func insertPosts(ctx context.Context, tx *sql.Tx, companyID int64, posts []models.PostRecord) error {
	for _, p := range posts {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO posts (record_id, company_id, content, date, engagement, type, url, author)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT DO NOTHING`,
			recordID(p.ID), companyID, p.Content, formatTime(p.Date), p.Engagement, string(p.Type), p.URL, p.Author)
		if err != nil {
			return fmt.Errorf("保存动态失败: %w", err)
		}
	}
	return nil
}

func upsertJobs(ctx context.Context, tx *sql.Tx, companyID int64, jobs []models.JobRecord) error {
	for _, j := range jobs {
		reqs, err := json.Marshal(j.Requirements)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO jobs (record_id, company_id, title, location, department, date_posted, requirements,
				description, salary_range, employment_type, url)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(company_id, title) DO UPDATE SET
				location = excluded.location,
				department = excluded.department,
				date_posted = excluded.date_posted,
				requirements = excluded.requirements,
				description = excluded.description,
				salary_range = excluded.salary_range,
				employment_type = excluded.employment_type,
				url = excluded.url`,
			recordID(j.ID), companyID, j.Title, j.Location, string(j.Department), formatTime(j.DatePosted), string(reqs),
			j.Description, j.Salary, j.EmploymentType, j.URL)
		if err != nil {
			return fmt.Errorf("保存职位失败: %w", err)
		}
	}
	return nil
}

func upsertEmployees(ctx context.Context, tx *sql.Tx, companyID int64, employees []models.EmployeeRecord) error {
	for _, e := range employees {
		skills, err := json.Marshal(e.Skills)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO employees (record_id, company_id, name, title, department, level, location, skills,
				tenure, education, profile_url)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(company_id, name) DO UPDATE SET
				title = excluded.title,
				department = excluded.department,
				level = excluded.level,
				location = excluded.location,
				skills = excluded.skills,
				tenure = excluded.tenure,
				education = excluded.education,
				profile_url = excluded.profile_url`,
			recordID(e.ID), companyID, e.Name, e.Title, string(e.Department), string(e.Level), e.Location, string(skills),
			e.Tenure, e.Education, e.ProfileURL)
		if err != nil {
			return fmt.Errorf("保存员工失败: %w", err)
		}
	}
	return nil
}

// LoadBundle 读取公司的结果包,公司不存在时返回 ErrNotFound
func (s *Store) LoadBundle(ctx context.Context, name string, limits Limits) (*models.ResultBundle, error) {
	companyID, company, provenance, scrapedAt, err := s.company(ctx, name)
	if err != nil {
		return nil, err
	}

	posts, err := s.queryPosts(ctx, companyID, limits.Posts)
	if err != nil {
		return nil, err
	}
	jobs, err := s.queryJobs(ctx, companyID, "", limits.Jobs)
	if err != nil {
		return nil, err
	}
	employees, err := s.queryEmployees(ctx, companyID, "", "", limits.Employees)
	if err != nil {
		return nil, err
	}

	b := models.NewResultBundle(company, posts, jobs, employees, provenance)
	b.ScrapedAt = scrapedAt
	return b, nil
}

// CompanyUpdatedAt 公司数据最近一次保存的时间
func (s *Store) CompanyUpdatedAt(ctx context.Context, name string) (time.Time, error) {
	var updated string
	err := s.db.QueryRowContext(ctx, "SELECT updated_at FROM companies WHERE name_key = ?", NameKey(name)).Scan(&updated)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, ErrNotFound
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("查询公司失败: %w", err)
	}
	return parseTime(updated), nil
}

func (s *Store) company(ctx context.Context, name string) (int64, models.CompanyRecord, models.Provenance, time.Time, error) {
	var (
		id         int64
		c          models.CompanyRecord
		provenance string
		scrapedAt  string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, industry, size, headquarters, founded, website, description,
			employee_count, follower_count, linkedin_url, provenance, scraped_at
		FROM companies WHERE name_key = ?`, NameKey(name)).Scan(
		&id, &c.Name, &c.Industry, &c.Size, &c.Headquarters, &c.Founded, &c.Website, &c.Description,
		&c.EmployeeCount, &c.FollowerCount, &c.LinkedInURL, &provenance, &scrapedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, c, "", time.Time{}, ErrNotFound
	}
	if err != nil {
		return 0, c, "", time.Time{}, fmt.Errorf("查询公司失败: %w", err)
	}
	return id, c, models.Provenance(provenance), parseTime(scrapedAt), nil
}

// companyID 按名称查公司ID
func (s *Store) companyID(ctx context.Context, name string) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, "SELECT id FROM companies WHERE name_key = ?", NameKey(name)).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("查询公司失败: %w", err)
	}
	return id, nil
}

// recordID 没有ID的记录补一个
func recordID(id string) string {
	if id == "" {
		return models.NewID()
	}
	return id
}
