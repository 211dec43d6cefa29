package main

import (
	"strings"
	"testing"

	"github.com/RecoveryAshes/LinkScope/internal/insights"
)

func TestValidateBatchFlags(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		delay   int
		wantErr bool
	}{
		{"有效参数", "companies.txt", 3, false},
		{"零延迟", "companies.txt", 0, false},
		{"文件为空", "  ", 3, true},
		{"负延迟", "companies.txt", -1, true},
		{"延迟过大", "companies.txt", 3601, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBatchFlags(tt.file, tt.delay)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateBatchFlags() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateInsightsFlags(t *testing.T) {
	tests := []struct {
		name        string
		company     string
		competitors []string
		format      string
		want        insights.Format
		wantErr     bool
	}{
		{"默认JSON", "Acme", nil, "json", insights.FormatJSON, false},
		{"Markdown大写", "Acme", []string{"Globex"}, "Markdown", insights.FormatMarkdown, false},
		{"YAML", "Acme", nil, "yaml", insights.FormatYAML, false},
		{"不支持PDF", "Acme", nil, "pdf", "", true},
		{"公司为空", "", nil, "json", "", true},
		{"竞品过多", "Acme", []string{"a", "b", "c", "d", "e", "f"}, "json", "", true},
		{"竞品名称为空", "Acme", []string{" "}, "json", "", true},
		{"公司名称过长", strings.Repeat("a", 300), nil, "json", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateInsightsFlags(tt.company, tt.competitors, tt.format)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateInsightsFlags() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("格式 = %q, 期望 %q", got, tt.want)
			}
		})
	}
}

func TestValidateCompareArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{"两家公司", []string{"Acme", "Globex"}, false},
		{"五家公司", []string{"a", "b", "c", "d", "e"}, false},
		{"一家公司", []string{"Acme"}, true},
		{"六家公司", []string{"a", "b", "c", "d", "e", "f"}, true},
		{"重复公司", []string{"Acme", "acme "}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCompareArgs(tt.args)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCompareArgs() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateAddr(t *testing.T) {
	for _, addr := range []string{":8000", "127.0.0.1:9000", "localhost:0"} {
		if err := ValidateAddr(addr); err != nil {
			t.Errorf("ValidateAddr(%q) = %v", addr, err)
		}
	}
	for _, addr := range []string{"", "8000", "localhost"} {
		if err := ValidateAddr(addr); err == nil {
			t.Errorf("ValidateAddr(%q) 应返回错误", addr)
		}
	}
}
