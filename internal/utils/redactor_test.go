package utils

import (
	"net/http"
	"testing"
)

func TestHeaderRedactor_RedactHeaderValue(t *testing.T) {
	redactor := NewHeaderRedactor()

	tests := []struct {
		name     string
		header   string
		value    string
		expected string
		reason   string
	}{
		{"普通头部", "Accept-Language", "en-US", "en-US", "非敏感头部原样保留"},
		{"Bearer令牌", "Authorization", "Bearer abc.def.ghi", "Bearer ***", "只保留前缀"},
		{"长密钥", "X-Api-Key", "sk-1234567890abcd", "sk-1***abcd", "保留首尾各4位"},
		{"短密钥", "X-Secret", "short", "***", "完全隐藏"},
		{"会话Cookie", "Cookie", "li_at=AQEDAR; JSESSIONID=ajax:123", "li_at=***; JSESSIONID=***", "只保留Cookie名称"},
		{"CSRF令牌", "Csrf-Token", "ajax:1234567890", "ajax***7890", "名称包含csrf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := redactor.RedactHeaderValue(tt.header, tt.value)
			if got != tt.expected {
				t.Errorf("RedactHeaderValue() = %q, 期望 %q (%s)", got, tt.expected, tt.reason)
			}
		})
	}
}

func TestHeaderRedactor_RedactToString(t *testing.T) {
	redactor := NewHeaderRedactor()
	headers := http.Header{
		"X-Trace":       []string{"abc"},
		"Authorization": []string{"Bearer secret"},
		"Accept":        []string{"*/*"},
		"Empty":         []string{},
	}

	got := redactor.RedactToString(headers)
	expected := "Accept: */*, Authorization: Bearer ***, X-Trace: abc"
	if got != expected {
		t.Errorf("RedactToString() = %q, 期望 %q", got, expected)
	}
}
