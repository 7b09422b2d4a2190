package service

import (
	"errors"
	"testing"

	"sical_backend/internal/util"
)

func TestBuildQuestionsDefaults(t *testing.T) {
	questions, err := buildQuestions([]QuestionRequest{
		{QuestionType: "single-choice", Content: "1+1=?"},
		{QuestionType: "fill-blank", Content: "法国的首都", Points: 5, Order: 9},
	})
	if err != nil {
		t.Fatalf("buildQuestions: %v", err)
	}

	if questions[0].Points != 1 {
		t.Errorf("默认分值 = %d, want 1", questions[0].Points)
	}
	if questions[0].Order != 1 {
		t.Errorf("默认顺序 = %d, want 1", questions[0].Order)
	}
	if questions[1].Points != 5 || questions[1].Order != 9 {
		t.Errorf("显式分值/顺序被改写: points=%d order=%d", questions[1].Points, questions[1].Order)
	}
}

func TestBuildQuestionsNegativePoints(t *testing.T) {
	_, err := buildQuestions([]QuestionRequest{
		{QuestionType: "true-false", Content: "地球是平的", Points: -3},
	})
	if !errors.Is(err, util.ErrNegativePoints) {
		t.Errorf("err = %v, want ErrNegativePoints", err)
	}
}

func TestBuildQuestionsEmpty(t *testing.T) {
	questions, err := buildQuestions(nil)
	if err != nil {
		t.Fatalf("buildQuestions(nil): %v", err)
	}
	if len(questions) != 0 {
		t.Errorf("len = %d, want 0", len(questions))
	}
}
