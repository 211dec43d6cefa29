package crawlers

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/RecoveryAshes/LinkScope/internal/models"
	"github.com/andybalholm/brotli"
)

const websiteFixture = `<html><head>
<meta name="description" content="Acme builds rockets for everyone.">
<meta property="og:description" content="og text">
</head><body></body></html>`

func compress(t *testing.T, encoding string, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	switch encoding {
	case "gzip":
		w := gzip.NewWriter(&buf)
		w.Write(data)
		w.Close()
	case "deflate":
		w, err := flate.NewWriter(&buf, flate.DefaultCompression)
		if err != nil {
			t.Fatal(err)
		}
		w.Write(data)
		w.Close()
	case "br":
		w := brotli.NewWriter(&buf)
		w.Write(data)
		w.Close()
	default:
		return data
	}
	return buf.Bytes()
}

// TestDecompressBody 测试按Content-Encoding解压响应体
func TestDecompressBody(t *testing.T) {
	plain := []byte(websiteFixture)

	tests := []struct {
		name     string
		encoding string
		body     []byte
		wantErr  bool
		reason   string
	}{
		{"gzip压缩", "gzip", compress(t, "gzip", plain), false, "标准gzip"},
		{"deflate压缩", "deflate", compress(t, "deflate", plain), false, "原始deflate流"},
		{"brotli压缩", "br", compress(t, "br", plain), false, "Brotli"},
		{"大小写与空白", " GZIP ", compress(t, "gzip", plain), false, "编码名不区分大小写"},
		{"未压缩", "", plain, false, "原样返回"},
		{"未知编码", "zstd", plain, false, "原样返回并记录警告"},
		{"损坏的gzip", "gzip", []byte("not gzip"), true, "头部校验失败"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decompressBody(tt.encoding, tt.body)
			if (err != nil) != tt.wantErr {
				t.Fatalf("decompressBody() error = %v, wantErr %v (%s)", err, tt.wantErr, tt.reason)
			}
			if !tt.wantErr && !bytes.Equal(got, plain) {
				t.Errorf("解压结果不一致 (%s)", tt.reason)
			}
		})
	}
}

func TestWebsiteEnricher_Enrich(t *testing.T) {
	loader := StaticLoader(map[string]string{"https://acme.example": websiteFixture})
	enricher := NewWebsiteEnricher(loader, nil)

	tests := []struct {
		name     string
		rec      models.CompanyRecord
		expected string
	}{
		{"补全空简介", models.CompanyRecord{Website: "https://acme.example"}, "Acme builds rockets for everyone."},
		{"已有简介不覆盖", models.CompanyRecord{Website: "https://acme.example", Description: "keep"}, "keep"},
		{"没有官网", models.CompanyRecord{}, ""},
		{"官网无效", models.CompanyRecord{Website: "acme"}, ""},
		{"官网无法访问", models.CompanyRecord{Website: "https://down.example"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := tt.rec
			enricher.Enrich(context.Background(), &rec)
			if rec.Description != tt.expected {
				t.Errorf("Description = %q, 期望 %q", rec.Description, tt.expected)
			}
		})
	}
}

func TestCollyLoader(t *testing.T) {
	var gotUA, gotHeader string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotHeader = r.Header.Get("X-Test")
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, websiteFixture)
	}))
	defer srv.Close()

	loader := NewCollyLoader(CollyOptions{
		UserAgent: "LinkScopeTest/1.0",
		Headers:   map[string]string{"X-Test": "yes"},
		Timeout:   5 * time.Second,
	})

	body, err := loader(context.Background(), srv.URL+"/")
	if err != nil {
		t.Fatalf("加载失败: %v", err)
	}
	if !bytes.Contains([]byte(body), []byte("Acme builds rockets")) {
		t.Errorf("页面内容不完整: %q", body)
	}
	if gotUA != "LinkScopeTest/1.0" || gotHeader != "yes" {
		t.Errorf("请求头未生效: UA=%q X-Test=%q", gotUA, gotHeader)
	}

	if _, err := loader(context.Background(), srv.URL+"/missing"); err == nil {
		t.Error("404应返回错误")
	}
}
