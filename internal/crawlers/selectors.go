package crawlers

import (
	"net/url"
	"strings"
)

// LinkedIn 地址
const (
	BaseURL   = "https://www.linkedin.com"
	LoginURL  = BaseURL + "/login"
	searchURL = BaseURL + "/search/results/companies/"
)

// CompanySearchURL 公司搜索地址
func CompanySearchURL(name string) string {
	return searchURL + "?keywords=" + url.QueryEscape(name)
}

// subPageURL 公司子页面地址,如 /posts/、/jobs/、/people/
func subPageURL(companyURL, sub string) string {
	return strings.TrimRight(companyURL, "/") + "/" + sub + "/"
}

// 页面容器,缺失即视为页面级失败
// 只列顶部卡片与列表容器: 404页、登录墙同样带有 <main>
const (
	searchContainer   = ".search-results-container, .search-result, .reusable-search__entity-result-list"
	companyContainer  = ".org-top-card, .org-top-card-summary"
	postsContainer    = ".org-updates, .org-company-updates, .scaffold-finite-scroll__content"
	jobsContainer     = ".org-jobs-container, .jobs-search__results-list, .jobs-search-results-list"
	employeeContainer = ".org-people, .org-people-profile-card"
)

// 不可用页面: 404、登录墙、访问受限
const unavailableMarkers = ".not-found, .not-found__container, .authwall, .authwall-join-form, .error-container"

// 跳转到这些路径说明目标页面不可用
var unavailablePaths = []string{"/authwall", "/404", "/uas/login", "/login", "/unavailable"}

// pageUnavailable 返回命中的不可用标记,未命中返回空字符串
func pageUnavailable(page Page) string {
	if current := page.URL(); current != "" {
		if u, err := url.Parse(current); err == nil {
			for _, p := range unavailablePaths {
				if strings.HasPrefix(u.Path, p) {
					return u.Path
				}
			}
		}
	}
	if found, err := safeFind(page, unavailableMarkers); err == nil && len(found) > 0 {
		return unavailableMarkers
	}
	return ""
}

// 搜索结果中的公司链接
var searchResultLinks = []string{
	".search-result__info a",
	".entity-result__title-text a",
	".reusable-search__result-container a",
	"a[href*='/company/']",
}

// 公司主页字段
var (
	companyNameCandidates = []Candidate{
		Text("h1.org-top-card-summary__title"),
		Text(".org-top-card-summary__title"),
		Text(".org-top-card__title"),
		Text(".org-top-card h1"),
	}
	companyIndustryCandidates = []Candidate{
		Text(".org-about-company-module__industry"),
		Text(".org-about-us-company-module__industry"),
		Text(".org-top-card-summary-info-list__info-item"),
	}
	companySizeCandidates = []Candidate{
		Text(".org-about-company-module__company-staff-count-range"),
		Text(".org-top-card-summary-info-list__info-item").Where(ContainsAny("employee", "staff", "people")),
	}
	companyHQCandidates = []Candidate{
		Text(".org-about-company-module__headquarters"),
		Text(".org-top-card-summary-info-list__info-item").Where(func(s string) bool {
			return strings.Contains(s, ",") && ContainsAny("united states", "california", "new york", "texas", "florida")(s)
		}),
	}
	companyWebsiteCandidates = []Candidate{
		Attr(".org-about-us-company-module__website", "href"),
		Attr("a[data-control-name='company_website']", "href"),
		Text(".org-about-us-company-module__website"),
	}
	companyDescriptionCandidates = []Candidate{
		Text(".org-about-us-company-module__description"),
		Text(".org-about-company-module__description"),
	}
	companyFollowerCandidates = []Candidate{
		Text(".org-top-card__followers-count"),
		Text(".org-top-card-summary-info-list__info-item").Where(ContainsAny("follower")),
	}
	companyFoundedCandidates = []Candidate{
		Text(".org-about-company-module__founded"),
		Text(".org-page-details__definition-text").Where(func(s string) bool {
			return len(strings.TrimSpace(s)) == 4
		}),
	}
)

// 动态
var (
	postItems = []string{
		".feed-shared-update-v2",
		".occludable-update",
		".update-components-text-view",
		".feed-shared-text",
		".feed-shared-update-v2__description",
	}
	postContentCandidates = []Candidate{
		Text(".update-components-text-view"),
		Text(".feed-shared-text"),
		Text(".feed-shared-update-v2__description"),
		Text("span[dir='ltr']"),
	}
	postDateCandidates = []Candidate{
		Attr("time", "datetime"),
		Text("time"),
		Text(".feed-shared-actor__sub-description"),
		Text(".update-components-actor__sub-description"),
	}
	postEngagementCandidates = []Candidate{
		Text(".social-details-social-counts"),
		Text(".feed-shared-social-counts"),
		Text(".social-details-social-counts__reactions-count"),
	}
	postURLCandidates = []Candidate{
		Attr("a[href*='/feed/update/']", "href"),
		Attr("a", "href"),
	}
	postAuthorCandidates = []Candidate{
		Text(".update-components-actor__name"),
		Text(".feed-shared-actor__name"),
	}
)

// 职位
var (
	jobItems = []string{
		".job-search-card",
		".job-card-container",
		".job-card",
		".jobs-search-results__list-item",
	}
	jobTitleCandidates = []Candidate{
		Text(".job-search-card__title"),
		Text(".job-card-list__title"),
		Text(".base-search-card__title"),
		Text("h3"),
	}
	jobLocationCandidates = []Candidate{
		Text(".job-search-card__location"),
		Text(".job-card-list__location"),
		Text(".job-card-container__metadata-item"),
	}
	jobDateCandidates = []Candidate{
		Attr("time", "datetime"),
		Text(".job-search-card__listdate"),
		Text(".job-card-list__date"),
		Text("time"),
	}
	jobDescriptionCandidates = []Candidate{
		Text(".job-search-card__snippet"),
		Text(".job-card-list__description"),
		Text(".job-card-container__description"),
	}
	jobSalaryCandidates = []Candidate{
		Text(".job-search-card__salary-info"),
		Text(".job-card-container__salary-info"),
	}
	jobURLCandidates = []Candidate{
		Attr("a.base-card__full-link", "href"),
		Attr("a", "href"),
	}
)

// 员工
var (
	employeeItems = []string{
		".org-people-profile-card",
		".org-people-profile-card__profile-info",
		".entity-result__item",
		".search-result__info",
	}
	employeeNameCandidates = []Candidate{
		Text(".org-people-profile-card__profile-title"),
		Text(".artdeco-entity-lockup__title"),
		Text(".search-result__title"),
		Text("h3"),
	}
	employeeTitleCandidates = []Candidate{
		Text(".org-people-profile-card__profile-position"),
		Text(".artdeco-entity-lockup__subtitle"),
		Text(".search-result__subtitle"),
	}
	employeeLocationCandidates = []Candidate{
		Text(".org-people-profile-card__location"),
		Text(".entity-result__secondary-subtitle"),
	}
	employeeProfileCandidates = []Candidate{
		Attr("a[href*='/in/']", "href"),
		Attr("a", "href"),
	}
)

// 加载更多按钮
const showMoreButton = "button.scaffold-finite-scroll__load-button, button.infinite-scroller__show-more-button"
