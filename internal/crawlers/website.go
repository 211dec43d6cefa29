package crawlers

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/RecoveryAshes/LinkScope/internal/models"
	"github.com/andybalholm/brotli"
	"github.com/gocolly/colly/v2"
	"github.com/rs/zerolog/log"
)

// CollyOptions 官网抓取参数
type CollyOptions struct {
	UserAgent string
	Headers   map[string]string
	Delay     time.Duration
	Timeout   time.Duration
}

// NewCollyLoader 基于colly的静态页面加载器
// 每次调用创建独立的collector,串行访问
func NewCollyLoader(opts CollyOptions) Loader {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	return func(ctx context.Context, pageURL string) (string, error) {
		collectorOpts := []colly.CollectorOption{colly.StdlibContext(ctx)}
		if opts.UserAgent != "" {
			collectorOpts = append(collectorOpts, colly.UserAgent(opts.UserAgent))
		}
		c := colly.NewCollector(collectorOpts...)
		c.SetRequestTimeout(opts.Timeout)
		if err := c.Limit(&colly.LimitRule{
			DomainGlob:  "*",
			Parallelism: 1,
			Delay:       opts.Delay,
		}); err != nil {
			log.Warn().Err(err).Msg("设置访问限制失败")
		}

		c.OnRequest(func(r *colly.Request) {
			for name, value := range opts.Headers {
				r.Headers.Set(name, value)
			}
		})

		var body string
		var respErr error
		c.OnResponse(func(r *colly.Response) {
			data, err := decompressBody(r.Headers.Get("Content-Encoding"), r.Body)
			if err != nil {
				// 解压失败,仍然尝试使用原始body
				log.Debug().Err(err).Str("url", pageURL).Msg("解压响应失败")
				data = r.Body
			}
			body = string(data)
		})
		c.OnError(func(r *colly.Response, err error) {
			respErr = fmt.Errorf("请求失败(状态码%d): %w", r.StatusCode, err)
		})

		if err := c.Visit(pageURL); err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			return "", err
		}
		if respErr != nil {
			return "", respErr
		}
		return body, nil
	}
}

// decompressBody 根据Content-Encoding解压响应体,支持 gzip, deflate, br
func decompressBody(contentEncoding string, body []byte) ([]byte, error) {
	var reader io.Reader
	switch strings.ToLower(strings.TrimSpace(contentEncoding)) {
	case "gzip":
		gz, err := gzip.NewReader(bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("gzip解压失败: %w", err)
		}
		defer gz.Close()
		reader = gz
	case "deflate":
		fl := flate.NewReader(bytes.NewReader(body))
		defer fl.Close()
		reader = fl
	case "br":
		reader = brotli.NewReader(bytes.NewReader(body))
	case "", "identity":
		return body, nil
	default:
		log.Warn().Str("encoding", contentEncoding).Msg("未知的Content-Encoding")
		return body, nil
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%s读取失败: %w", contentEncoding, err)
	}
	return data, nil
}

// 官网简介候选
var websiteDescriptionCandidates = []Candidate{
	Attr("meta[name='description']", "content"),
	Attr("meta[property='og:description']", "content"),
	Attr("meta[name='twitter:description']", "content"),
}

// WebsiteEnricher 访问公司官网补全简介
type WebsiteEnricher struct {
	loader Loader
	pacer  *Pacer
}

// NewWebsiteEnricher 创建官网补全器
func NewWebsiteEnricher(loader Loader, pacer *Pacer) *WebsiteEnricher {
	return &WebsiteEnricher{loader: loader, pacer: pacer}
}

// Enrich 只填充仍为空的字段,失败不影响主流程
func (w *WebsiteEnricher) Enrich(ctx context.Context, rec *models.CompanyRecord) {
	if rec == nil || rec.Website == "" || rec.Description != "" {
		return
	}
	if err := models.ValidateURL(rec.Website); err != nil {
		log.Debug().Str("website", rec.Website).Msg("官网地址无效,跳过补全")
		return
	}
	if w.pacer != nil {
		if err := w.pacer.Wait(ctx); err != nil {
			return
		}
	}

	page := NewStaticPage(w.loader)
	defer page.Close()
	if err := page.Navigate(ctx, rec.Website); err != nil {
		log.Debug().Err(err).Str("website", rec.Website).Msg("官网访问失败,跳过补全")
		return
	}

	if desc := Extract(page, "website.description", websiteDescriptionCandidates, ""); desc != "" {
		rec.Description = desc
		log.Debug().Str("website", rec.Website).Msg("已从官网补全公司简介")
	}
}
