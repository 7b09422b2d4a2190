package scoring

import (
	"bytes"
	"encoding/json"
	"errors"
)

var (
	// ErrInvalidAnswers 提交的答案不是有序数组
	ErrInvalidAnswers = errors.New("答案必须是有序数组")
	// ErrNoPoints 评估总分为0，无法归一化计分
	ErrNoPoints = errors.New("评估总分为0，无法计分")
	// ErrUnsupportedQuestionType 未知题型
	ErrUnsupportedQuestionType = errors.New("不支持的题型")
	// ErrRatingOutOfRange 评分超出1-5范围
	ErrRatingOutOfRange = errors.New("评分必须在1到5之间")
	// ErrScoreOutOfRange 得分超出0-100范围
	ErrScoreOutOfRange = errors.New("得分必须在0到100之间")
)

// Answer 表示一道题的作答或标准答案：单个字符串、字符串集合，或未作答。
// JSON 形式为 string、[]string 或 null，与题目顺序按下标对齐。
type Answer struct {
	Value   string
	Values  []string
	IsSet   bool // Values 有效（多选集合）
	Present bool
}

// Single 单值答案
func Single(v string) Answer {
	return Answer{Value: v, Present: true}
}

// Set 集合答案（多选）
func Set(vs ...string) Answer {
	return Answer{Values: vs, IsSet: true, Present: true}
}

// Absent 未作答
func Absent() Answer {
	return Answer{}
}

func (a *Answer) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = Absent()
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*a = Single(s)
		return nil
	}

	var vs []string
	if err := json.Unmarshal(data, &vs); err == nil {
		*a = Set(vs...)
		return nil
	}

	return ErrInvalidAnswers
}

func (a Answer) MarshalJSON() ([]byte, error) {
	if !a.Present {
		return []byte("null"), nil
	}
	if a.IsSet {
		return json.Marshal(a.Values)
	}
	return json.Marshal(a.Value)
}

// ParseAnswers 解析请求体中的答案数组。非数组或元素非法返回 ErrInvalidAnswers。
func ParseAnswers(raw json.RawMessage) ([]Answer, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, ErrInvalidAnswers
	}

	var answers []Answer
	if err := json.Unmarshal(raw, &answers); err != nil {
		return nil, ErrInvalidAnswers
	}
	if answers == nil {
		return nil, ErrInvalidAnswers
	}
	return answers, nil
}
