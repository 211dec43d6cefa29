package crawlers

import (
	"context"

	"github.com/RecoveryAshes/LinkScope/internal/models"
	"github.com/rs/zerolog/log"
)

// ScrapePosts 抓取公司最近动态,内容为空的动态被丢弃
func (s *Scraper) ScrapePosts(ctx context.Context, companyURL string) ([]models.PostRecord, error) {
	if err := s.visit(ctx, subPageURL(companyURL, "posts"), postsContainer); err != nil {
		return nil, err
	}

	items := s.reveal(ctx, "posts", postItems, s.cfg.PostLimit)
	now := s.now()
	posts := collect("post", items, func(item Element) (models.PostRecord, bool) {
		content := Extract(item, "post.content", postContentCandidates, "")
		if content == "" {
			// 条目本身就是正文节点
			content = ownText(item)
		}
		if content == "" {
			return models.PostRecord{}, false
		}
		return models.PostRecord{
			ID:         models.NewID(),
			Content:    content,
			Date:       ParseRelativeDate(Extract(item, "post.date", postDateCandidates, ""), now),
			Engagement: ExtractCount(item, "post.engagement", postEngagementCandidates),
			Type:       ClassifyPost(content),
			URL:        Extract(item, "post.url", postURLCandidates, ""),
			Author:     Extract(item, "post.author", postAuthorCandidates, "Company"),
		}, true
	})

	log.Info().Int("count", len(posts)).Msg("📰 动态抓取完成")
	return posts, nil
}
