package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/RecoveryAshes/LinkScope/internal/models"
)

// maxBodyBytes 请求体上限
const maxBodyBytes = 1 << 20

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("请求体为空")
		}
		return fmt.Errorf("请求体格式错误: %v", err)
	}
	return nil
}

// intQuery 读取整数参数, 缺省时返回 def, 超出 [lo, hi] 返回错误
func intQuery(r *http.Request, key string, def, lo, hi int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("参数 %s 必须是整数", key)
	}
	if n < lo || n > hi {
		return 0, fmt.Errorf("参数 %s 必须在 %d 到 %d 之间", key, lo, hi)
	}
	return n, nil
}

// listQuery 逗号分隔的列表参数
func listQuery(r *http.Request, key string) []string {
	var out []string
	for _, v := range r.URL.Query()[key] {
		for _, item := range strings.Split(v, ",") {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
	}
	return out
}

// parseDepartment 部门名不区分大小写, 空串表示不过滤
func parseDepartment(s string) (models.Department, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	for _, d := range models.AllDepartments {
		if strings.EqualFold(string(d), s) {
			return d, nil
		}
	}
	return "", fmt.Errorf("未知部门: %s", s)
}

// parseLevel 级别不区分大小写, 空串表示不过滤
func parseLevel(s string) (models.SeniorityLevel, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	level := models.SeniorityLevel(strings.ToLower(s))
	if !level.Valid() {
		return "", fmt.Errorf("未知级别: %s", s)
	}
	return level, nil
}

// companyName 路径中的公司名称
func companyName(r *http.Request) (string, error) {
	name := strings.TrimSpace(r.PathValue("name"))
	if err := models.ValidateCompanyName(name); err != nil {
		return "", err
	}
	return name, nil
}
