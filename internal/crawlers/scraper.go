package crawlers

import (
	"context"
	"fmt"
	"time"

	"github.com/RecoveryAshes/LinkScope/internal/models"
	"github.com/rs/zerolog/log"
)

// Scraper 已登录会话上的页面抓取器
// 页面级失败(容器缺失、导航失败)返回错误,字段级失败使用默认值
type Scraper struct {
	page  Page
	pacer *Pacer
	cfg   models.ScrapeConfig
	now   func() time.Time
}

// NewScraper 创建抓取器
func NewScraper(page Page, pacer *Pacer, cfg models.ScrapeConfig) *Scraper {
	return &Scraper{
		page:  page,
		pacer: pacer,
		cfg:   cfg,
		now:   time.Now,
	}
}

// visit 节流 → 导航 → 排除不可用页面 → 等待页面容器
func (s *Scraper) visit(ctx context.Context, url, container string) error {
	if s.pacer != nil {
		if err := s.pacer.Wait(ctx); err != nil {
			return err
		}
	}
	log.Debug().Str("url", url).Msg("访问页面")
	if err := s.page.Navigate(ctx, url); err != nil {
		return err
	}
	if marker := pageUnavailable(s.page); marker != "" {
		return fmt.Errorf("%w: 页面不可用 %s (%s)", ErrElementNotFound, url, marker)
	}
	if err := s.page.WaitFor(ctx, container, s.cfg.ElementTimeout()); err != nil {
		return fmt.Errorf("页面容器缺失 %s: %w", url, err)
	}
	return nil
}

// reveal 增量加载列表
// 条目达到上限、滚动后没有新增或轮数用尽时停止
func (s *Scraper) reveal(ctx context.Context, field string, items []string, limit int) []Element {
	if limit <= 0 {
		return nil
	}
	found := ExtractAll(s.page, field, items)
	for round := 0; len(found) < limit && round < s.cfg.MaxRevealRounds; round++ {
		if err := ctx.Err(); err != nil {
			break
		}
		if err := s.page.Scroll(ctx); err != nil {
			log.Debug().Err(err).Str("field", field).Msg("滚动失败")
			break
		}
		// 按钮不存在是常态,只在存在时点击
		if buttons, err := safeFind(s.page, showMoreButton); err == nil && len(buttons) > 0 {
			if err := s.page.Click(ctx, showMoreButton); err != nil {
				log.Debug().Err(err).Str("field", field).Msg("点击加载更多失败")
			}
		}
		if err := sleepCtx(ctx, s.cfg.Settle()); err != nil {
			break
		}

		next := ExtractAll(s.page, field, items)
		if len(next) <= len(found) {
			log.Debug().Str("field", field).Int("round", round+1).Int("count", len(found)).Msg("没有新增条目,停止加载")
			break
		}
		found = next
	}
	if len(found) > limit {
		found = found[:limit]
	}
	return found
}

// collect 逐条构建记录,单条失败或panic只跳过该条
func collect[T any](field string, items []Element, build func(Element) (T, bool)) []T {
	records := make([]T, 0, len(items))
	for i, item := range items {
		rec, ok := buildOne(field, i, item, build)
		if ok {
			records = append(records, rec)
		}
	}
	return records
}

func buildOne[T any](field string, i int, item Element, build func(Element) (T, bool)) (rec T, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Warn().Str("field", field).Int("index", i).Interface("panic", r).Msg("⚠️  记录解析失败,已跳过")
			ok = false
		}
	}()
	return build(item)
}

// ownText 读取元素自身文本,失败时返回空字符串
func ownText(el Element) string {
	text, err := el.Text()
	if err != nil {
		return ""
	}
	return cleanText(text)
}
