package crawlers

import (
	"context"

	"github.com/RecoveryAshes/LinkScope/internal/models"
	"github.com/rs/zerolog/log"
)

// 员工字段默认值
const (
	defaultEmployeeName  = "Unknown Employee"
	defaultEmployeeTitle = "Employee"
)

// ScrapeEmployees 抓取员工档案,部门和职级由职位名称推断
func (s *Scraper) ScrapeEmployees(ctx context.Context, companyURL string) ([]models.EmployeeRecord, error) {
	if err := s.visit(ctx, subPageURL(companyURL, "people"), employeeContainer); err != nil {
		return nil, err
	}

	items := s.reveal(ctx, "employees", employeeItems, s.cfg.EmployeeLimit)
	employees := collect("employee", items, func(item Element) (models.EmployeeRecord, bool) {
		title := Extract(item, "employee.title", employeeTitleCandidates, defaultEmployeeTitle)
		return models.EmployeeRecord{
			ID:         models.NewID(),
			Name:       Extract(item, "employee.name", employeeNameCandidates, defaultEmployeeName),
			Title:      title,
			Department: ClassifyDepartment(title),
			Level:      ClassifyLevel(title),
			Location:   Extract(item, "employee.location", employeeLocationCandidates, models.UnknownValue),
			Skills:     ExtractSkills(title),
			ProfileURL: Extract(item, "employee.profile_url", employeeProfileCandidates, ""),
		}, true
	})

	log.Info().Int("count", len(employees)).Msg("👥 员工抓取完成")
	return employees, nil
}
