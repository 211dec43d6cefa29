package crawlers

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

// Candidate 字段的一种定位策略
type Candidate struct {
	Selector string
	Attr     string            // 为空时读取文本
	Match    func(string) bool // 可选过滤条件
}

// Text 读取元素文本的候选
func Text(selector string) Candidate {
	return Candidate{Selector: selector}
}

// Attr 读取元素属性的候选
func Attr(selector, attr string) Candidate {
	return Candidate{Selector: selector, Attr: attr}
}

// Where 附加过滤条件
func (c Candidate) Where(match func(string) bool) Candidate {
	c.Match = match
	return c
}

// ContainsAny 不区分大小写地包含任一关键字
func ContainsAny(words ...string) func(string) bool {
	return func(s string) bool {
		lower := strings.ToLower(s)
		for _, w := range words {
			if strings.Contains(lower, w) {
				return true
			}
		}
		return false
	}
}

// Extract 按顺序尝试候选,返回第一个非空值,全部失败时返回默认值
// 选择器错误和驱动panic都视为该候选失败,不会向外传播
func Extract(scope Finder, field string, candidates []Candidate, def string) string {
	for i, c := range candidates {
		value, err := c.resolve(scope)
		if err != nil {
			log.Debug().Str("field", field).Int("candidate", i).Str("selector", c.Selector).Err(err).Msg("候选选择器失败")
			continue
		}
		if value != "" {
			return value
		}
	}
	return def
}

// ExtractCount 提取数值字段,如 "1.2K followers"
func ExtractCount(scope Finder, field string, candidates []Candidate) int {
	return ParseCount(Extract(scope, field, candidates, ""))
}

// ExtractAll 收集第一个命中候选的全部元素
func ExtractAll(scope Finder, field string, selectors []string) []Element {
	for _, sel := range selectors {
		elements, err := safeFind(scope, sel)
		if err != nil {
			log.Debug().Str("field", field).Str("selector", sel).Err(err).Msg("列表选择器失败")
			continue
		}
		if len(elements) > 0 {
			return elements
		}
	}
	return nil
}

func (c Candidate) resolve(scope Finder) (value string, err error) {
	elements, err := safeFind(scope, c.Selector)
	if err != nil {
		return "", err
	}
	for _, el := range elements {
		v, err := c.read(el)
		if err != nil {
			continue
		}
		if v == "" || (c.Match != nil && !c.Match(v)) {
			continue
		}
		return v, nil
	}
	return "", nil
}

func (c Candidate) read(el Element) (v string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrBrowserCrashed, r)
		}
	}()
	if c.Attr != "" {
		v, err = el.Attribute(c.Attr)
	} else {
		v, err = el.Text()
	}
	return cleanText(v), err
}

// safeFind 查找元素并把驱动panic转换为错误
func safeFind(scope Finder, selector string) (elements []Element, err error) {
	defer func() {
		if r := recover(); r != nil {
			elements = nil
			err = fmt.Errorf("%w: %v", ErrBrowserCrashed, r)
		}
	}()
	if scope == nil {
		return nil, ErrElementNotFound
	}
	return scope.Find(selector)
}

// cleanText 合并连续空白
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
