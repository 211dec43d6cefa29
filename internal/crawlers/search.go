package crawlers

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"
)

// SearchCompany 搜索公司并返回第一个公司主页地址
func (s *Scraper) SearchCompany(ctx context.Context, name string) (string, error) {
	log.Info().Str("company", name).Msg("🔍 搜索公司")
	if err := s.visit(ctx, CompanySearchURL(name), searchContainer); err != nil {
		return "", err
	}

	for _, sel := range searchResultLinks {
		links, err := safeFind(s.page, sel)
		if err != nil {
			continue
		}
		for _, link := range links {
			href, err := link.Attribute("href")
			if err != nil {
				continue
			}
			if companyURL, ok := normalizeCompanyURL(href); ok {
				log.Info().Str("url", companyURL).Msg("✅ 找到公司主页")
				return companyURL, nil
			}
		}
	}

	return "", fmt.Errorf("%w: %s", ErrCompanyNotFound, name)
}

// normalizeCompanyURL 只保留 /company/<slug>/ 链接,去掉查询参数并补全为绝对地址
func normalizeCompanyURL(href string) (string, bool) {
	if !strings.Contains(href, "/company/") {
		return "", false
	}
	u, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return "", false
	}
	base, _ := url.Parse(BaseURL)
	u = base.ResolveReference(u)
	u.RawQuery = ""
	u.Fragment = ""
	return strings.TrimRight(u.String(), "/"), true
}
