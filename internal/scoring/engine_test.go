package scoring

import (
	"errors"
	"testing"
)

func twoQuestionPaper() []Question {
	return []Question{
		{ID: "q1", Type: SingleChoice, CorrectAnswer: Single("A"), Points: 1},
		{ID: "q2", Type: MultiChoice, CorrectAnswer: Set("B", "C"), Points: 2},
	}
}

func TestScoreAllCorrect(t *testing.T) {
	res, err := Score(twoQuestionPaper(), []Answer{Single("A"), Set("B", "C")}, 60)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Score != 100 {
		t.Errorf("expected score 100, got %d", res.Score)
	}
	if !res.Passed {
		t.Error("expected passed")
	}
	for i, r := range res.Results {
		if !r.IsCorrect {
			t.Errorf("question %d expected correct", i)
		}
		if r.EarnedPoints != r.Points {
			t.Errorf("question %d expected full points %d, got %d", i, r.Points, r.EarnedPoints)
		}
	}
}

func TestScorePartialMultiChoice(t *testing.T) {
	// q1对(1分) + q2漏选(0分) => 1/3 => 33%
	res, err := Score(twoQuestionPaper(), []Answer{Single("A"), Set("B")}, 60)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Score != 33 {
		t.Errorf("expected score 33, got %d", res.Score)
	}
	if res.Passed {
		t.Error("expected not passed")
	}
	if res.Results[1].IsCorrect {
		t.Error("subset of correct options must be wrong")
	}
	if res.Results[1].EarnedPoints != 0 {
		t.Errorf("expected 0 earned points, got %d", res.Results[1].EarnedPoints)
	}
}

func TestScoreAllAbsent(t *testing.T) {
	tests := []struct {
		name         string
		passingScore int
		wantPassed   bool
	}{
		{name: "threshold 60", passingScore: 60, wantPassed: false},
		{name: "threshold 0", passingScore: 0, wantPassed: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Score(twoQuestionPaper(), []Answer{}, tt.passingScore)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.Score != 0 {
				t.Errorf("expected score 0, got %d", res.Score)
			}
			if res.Passed != tt.wantPassed {
				t.Errorf("expected passed=%v, got %v", tt.wantPassed, res.Passed)
			}
		})
	}
}

func TestScoreNilAnswers(t *testing.T) {
	if _, err := Score(twoQuestionPaper(), nil, 60); !errors.Is(err, ErrInvalidAnswers) {
		t.Errorf("expected ErrInvalidAnswers, got %v", err)
	}
}

func TestScoreZeroPointPaper(t *testing.T) {
	questions := []Question{
		{ID: "q1", Type: SingleChoice, CorrectAnswer: Single("A"), Points: 0},
	}
	if _, err := Score(questions, []Answer{Single("A")}, 50); !errors.Is(err, ErrNoPoints) {
		t.Errorf("expected ErrNoPoints, got %v", err)
	}
}

func TestScoreNoQuestions(t *testing.T) {
	if _, err := Score(nil, []Answer{}, 50); !errors.Is(err, ErrNoPoints) {
		t.Errorf("expected ErrNoPoints, got %v", err)
	}
}

func TestScoreUnsupportedType(t *testing.T) {
	questions := []Question{
		{ID: "q1", Type: "essay", CorrectAnswer: Single("A"), Points: 1},
	}
	if _, err := Score(questions, []Answer{Single("A")}, 50); !errors.Is(err, ErrUnsupportedQuestionType) {
		t.Errorf("expected ErrUnsupportedQuestionType, got %v", err)
	}
}

func TestScoreExtraAnswersIgnored(t *testing.T) {
	// 超出题目数量的答案按位置规则忽略
	res, err := Score(twoQuestionPaper(), []Answer{Single("A"), Set("B", "C"), Single("junk")}, 60)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Score != 100 {
		t.Errorf("expected score 100, got %d", res.Score)
	}
	if len(res.Results) != 2 {
		t.Errorf("expected 2 results, got %d", len(res.Results))
	}
}

func TestGradeSingleChoice(t *testing.T) {
	q := Question{ID: "q", Type: SingleChoice, CorrectAnswer: Single("A"), Points: 1}

	tests := []struct {
		name string
		ans  Answer
		want bool
	}{
		{name: "exact match", ans: Single("A"), want: true},
		{name: "wrong option", ans: Single("B"), want: false},
		{name: "case sensitive", ans: Single("a"), want: false},
		{name: "set for single", ans: Set("A"), want: false},
		{name: "absent", ans: Absent(), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := grade(q, tt.ans)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("grade() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGradeTrueFalse(t *testing.T) {
	q := Question{ID: "q", Type: TrueFalse, CorrectAnswer: Single("true"), Points: 1}

	if got, _ := grade(q, Single("true")); !got {
		t.Error("expected correct")
	}
	if got, _ := grade(q, Single("false")); got {
		t.Error("expected wrong")
	}
}

func TestGradeFillBlank(t *testing.T) {
	q := Question{ID: "q", Type: FillBlank, CorrectAnswer: Single("paris"), Points: 1}

	tests := []struct {
		name string
		ans  Answer
		want bool
	}{
		{name: "same case", ans: Single("paris"), want: true},
		{name: "case insensitive", ans: Single("Paris"), want: true},
		{name: "all caps", ans: Single("PARIS"), want: true},
		{name: "wrong word", ans: Single("london"), want: false},
		{name: "set answer", ans: Set("paris"), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := grade(q, tt.ans)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("grade() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGradeMultiChoice(t *testing.T) {
	q := Question{ID: "q", Type: MultiChoice, CorrectAnswer: Set("B", "C"), Points: 2}

	tests := []struct {
		name string
		ans  Answer
		want bool
	}{
		{name: "exact set", ans: Set("B", "C"), want: true},
		{name: "any order", ans: Set("C", "B"), want: true},
		{name: "proper subset", ans: Set("B"), want: false},
		{name: "proper superset", ans: Set("A", "B", "C"), want: false},
		{name: "same size wrong member", ans: Set("B", "D"), want: false},
		{name: "single value for set", ans: Single("B"), want: false},
		{name: "absent", ans: Absent(), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := grade(q, tt.ans)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("grade() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGradeShortAnswerNeverAutoGraded(t *testing.T) {
	q := Question{ID: "q", Type: ShortAnswer, CorrectAnswer: Answer{}, Points: 5}

	if got, _ := grade(q, Single("任意内容")); got {
		t.Error("short answer must never be auto-graded correct")
	}
}

func TestGradeAbsentSkipsTypeRule(t *testing.T) {
	// 未作答对未知题型也直接判错，不报 ErrUnsupportedQuestionType
	q := Question{ID: "q", Type: "essay", CorrectAnswer: Single("A"), Points: 1}
	got, err := grade(q, Absent())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got {
		t.Error("absent answer must be wrong")
	}
}

func TestScoreRounding(t *testing.T) {
	// 2/3 => 66.67 => 67
	questions := []Question{
		{ID: "q1", Type: SingleChoice, CorrectAnswer: Single("A"), Points: 2},
		{ID: "q2", Type: SingleChoice, CorrectAnswer: Single("B"), Points: 1},
	}
	res, err := Score(questions, []Answer{Single("A"), Single("x")}, 67)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Score != 67 {
		t.Errorf("expected rounded score 67, got %d", res.Score)
	}
	if !res.Passed {
		t.Error("expected passed at exact threshold")
	}
}
