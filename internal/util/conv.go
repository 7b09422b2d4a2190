package util

import (
	"encoding/json"
	"strconv"
	"strings"
)

// MustJSON 序列化为 JSON，仅用于内部构造的、不会失败的值
func MustJSON(v interface{}) json.RawMessage {
	data, _ := json.Marshal(v)
	return data
}

// MustParseUint 将字符串转换为无符号整数，解析失败时返回 0
func MustParseUint(s string) uint {
	id, _ := strconv.ParseUint(s, 10, 32)
	return uint(id)
}

// ParsePagination 解析 page/limit 查询参数并做边界收敛
func ParsePagination(pageStr, limitStr string) (int, int) {
	page, _ := strconv.Atoi(pageStr)
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(limitStr)
	if limit < 1 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return page, limit
}

// ParseSort 将 "field,-other" 形式的排序参数转换为 SQL order 子句，
// 仅放行白名单内的字段，防止注入。
func ParseSort(sortStr string, allowed map[string]string) string {
	if sortStr == "" {
		return ""
	}

	var clauses []string
	for _, part := range strings.Split(sortStr, ",") {
		part = strings.TrimSpace(part)
		desc := strings.HasPrefix(part, "-")
		field := strings.TrimPrefix(part, "-")

		column, ok := allowed[field]
		if !ok {
			continue
		}
		if desc {
			clauses = append(clauses, column+" desc")
		} else {
			clauses = append(clauses, column+" asc")
		}
	}
	return strings.Join(clauses, ", ")
}
