package crawlers

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// 数字后紧跟的 k/m 才视为数量级后缀,"500 members" 中的 m 不算
var countPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)([km]\b)?`)

// ParseCount 解析带数量级后缀的人类可读数字
//
//	"1.2K followers" -> 1200
//	"3M"             -> 3000000
//	"1,234"          -> 1234
//	"no digits here" -> 0
func ParseCount(text string) int {
	text = strings.ReplaceAll(strings.ToLower(text), ",", "")
	m := countPattern.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0
	}
	switch m[2] {
	case "k":
		n *= 1_000
	case "m":
		n *= 1_000_000
	}
	return int(math.Round(n))
}

var relativePattern = regexp.MustCompile(`(\d+)\s*(mo|yr|y|w|d|h|m|s)\b`)

// ParseRelativeDate 解析发布时间
// 支持RFC3339/日期格式的datetime属性,以及 "2d"、"3w"、"5mo"、"1yr" 这类相对时间
// 无法识别时返回now
func ParseRelativeDate(text string, now time.Time) time.Time {
	text = strings.TrimSpace(text)
	if text == "" {
		return now
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, text); err == nil {
			return t
		}
	}

	lower := strings.ToLower(text)
	if strings.HasPrefix(lower, "now") || strings.HasPrefix(lower, "just now") {
		return now
	}
	m := relativePattern.FindStringSubmatch(lower)
	if m == nil {
		return now
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return now
	}
	switch m[2] {
	case "yr", "y":
		return now.AddDate(-n, 0, 0)
	case "mo":
		return now.AddDate(0, -n, 0)
	case "w":
		return now.AddDate(0, 0, -7*n)
	case "d":
		return now.AddDate(0, 0, -n)
	case "h":
		return now.Add(-time.Duration(n) * time.Hour)
	case "m":
		return now.Add(-time.Duration(n) * time.Minute)
	case "s":
		return now.Add(-time.Duration(n) * time.Second)
	}
	return now
}
