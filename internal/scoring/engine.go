// Package scoring 实现评估判分与增量统计。
// 纯计算、无副作用：持久化与并发控制由调用方（service 层）负责。
package scoring

import (
	"math"
	"strings"
)

// QuestionType 题型（封闭枚举，未知值判分时拒绝而非猜测）
type QuestionType string

const (
	SingleChoice QuestionType = "single-choice" // 单选题
	MultiChoice  QuestionType = "multi-choice"  // 多选题
	FillBlank    QuestionType = "fill-blank"    // 填空题
	TrueFalse    QuestionType = "true-false"    // 判断题
	ShortAnswer  QuestionType = "short-answer"  // 简答题（人工评分，引擎不自动判对）
)

// Question 判分所需的题目定义，与提交答案按下标对齐。
type Question struct {
	ID            string
	Type          QuestionType
	CorrectAnswer Answer
	Points        int
}

// QuestionResult 单题判分结果
type QuestionResult struct {
	QuestionID    string `json:"questionId"`
	UserAnswer    Answer `json:"userAnswer"`
	CorrectAnswer Answer `json:"correctAnswer"`
	IsCorrect     bool   `json:"isCorrect"`
	Points        int    `json:"points"`
	EarnedPoints  int    `json:"earnedPoints"`
}

// Result 整卷判分结果
type Result struct {
	Results []QuestionResult `json:"results"`
	Score   int              `json:"score"` // 百分制，四舍五入
	Passed  bool             `json:"passed"`
}

// Score 按题目顺序对提交答案判分。
// answers 为 nil 视为非法输入；长度不要求与题目一致，越界位置按未作答处理。
// 总分为0的评估返回 ErrNoPoints，避免除零。
func Score(questions []Question, answers []Answer, passingScore int) (*Result, error) {
	if answers == nil {
		return nil, ErrInvalidAnswers
	}

	totalPoints := 0
	earnedPoints := 0
	results := make([]QuestionResult, 0, len(questions))

	for i, q := range questions {
		ans := Absent()
		if i < len(answers) {
			ans = answers[i]
		}

		correct, err := grade(q, ans)
		if err != nil {
			return nil, err
		}

		earned := 0
		if correct {
			earned = q.Points
		}
		totalPoints += q.Points
		earnedPoints += earned

		results = append(results, QuestionResult{
			QuestionID:    q.ID,
			UserAnswer:    ans,
			CorrectAnswer: q.CorrectAnswer,
			IsCorrect:     correct,
			Points:        q.Points,
			EarnedPoints:  earned,
		})
	}

	if totalPoints == 0 {
		return nil, ErrNoPoints
	}

	score := int(math.Round(float64(earnedPoints) / float64(totalPoints) * 100))
	return &Result{
		Results: results,
		Score:   score,
		Passed:  score >= passingScore,
	}, nil
}

// grade 单题判分。未作答直接判错，不进入题型分支。
func grade(q Question, ans Answer) (bool, error) {
	if !ans.Present {
		return false, nil
	}

	switch q.Type {
	case SingleChoice, TrueFalse:
		return !ans.IsSet && ans.Value == q.CorrectAnswer.Value, nil
	case FillBlank:
		return !ans.IsSet && strings.EqualFold(ans.Value, q.CorrectAnswer.Value), nil
	case MultiChoice:
		return gradeMultiChoice(q.CorrectAnswer, ans), nil
	case ShortAnswer:
		// 简答题由教师人工评分，引擎不自动判对
		return false, nil
	default:
		return false, ErrUnsupportedQuestionType
	}
}

// gradeMultiChoice 集合相等：基数一致且标准答案的每个元素都被提交。
// 与顺序无关。
func gradeMultiChoice(correct, submitted Answer) bool {
	if !correct.IsSet || !submitted.IsSet {
		return false
	}
	if len(correct.Values) != len(submitted.Values) {
		return false
	}

	picked := make(map[string]struct{}, len(submitted.Values))
	for _, v := range submitted.Values {
		picked[v] = struct{}{}
	}
	for _, v := range correct.Values {
		if _, ok := picked[v]; !ok {
			return false
		}
	}
	return true
}
