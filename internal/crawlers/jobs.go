package crawlers

import (
	"context"

	"github.com/RecoveryAshes/LinkScope/internal/models"
	"github.com/rs/zerolog/log"
)

// 职位字段默认值
const (
	defaultJobTitle    = "Unknown Position"
	defaultJobLocation = "Remote"
)

// ScrapeJobs 抓取在招职位
func (s *Scraper) ScrapeJobs(ctx context.Context, companyURL string) ([]models.JobRecord, error) {
	if err := s.visit(ctx, subPageURL(companyURL, "jobs"), jobsContainer); err != nil {
		return nil, err
	}

	items := s.reveal(ctx, "jobs", jobItems, s.cfg.JobLimit)
	now := s.now()
	jobs := collect("job", items, func(item Element) (models.JobRecord, bool) {
		title := Extract(item, "job.title", jobTitleCandidates, defaultJobTitle)
		description := Extract(item, "job.description", jobDescriptionCandidates, "")
		return models.JobRecord{
			ID:             models.NewID(),
			Title:          title,
			Location:       Extract(item, "job.location", jobLocationCandidates, defaultJobLocation),
			Department:     ClassifyDepartment(title),
			DatePosted:     ParseRelativeDate(Extract(item, "job.date", jobDateCandidates, ""), now),
			Requirements:   ExtractSkills(title + " " + description),
			Description:    description,
			Salary:         Extract(item, "job.salary", jobSalaryCandidates, "Not specified"),
			EmploymentType: "full-time",
			URL:            Extract(item, "job.url", jobURLCandidates, ""),
		}, true
	})

	log.Info().Int("count", len(jobs)).Msg("💼 职位抓取完成")
	return jobs, nil
}
