package scoring

import (
	"errors"
	"math"
	"testing"
)

func TestFoldRatingFirstRating(t *testing.T) {
	avg, count, err := FoldRating(0, 0, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if avg != 5.0 || count != 1 {
		t.Errorf("expected (5.0, 1), got (%v, %d)", avg, count)
	}
}

func TestFoldRatingRunningMean(t *testing.T) {
	avg, count, err := FoldRating(4.0, 3, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if avg != 3.5 || count != 4 {
		t.Errorf("expected (3.5, 4), got (%v, %d)", avg, count)
	}
}

func TestFoldRatingOutOfRange(t *testing.T) {
	for _, rating := range []int{0, 6, -1, 100} {
		if _, _, err := FoldRating(3.0, 2, rating); !errors.Is(err, ErrRatingOutOfRange) {
			t.Errorf("rating %d: expected ErrRatingOutOfRange, got %v", rating, err)
		}
	}
}

func TestFoldRatingBounds(t *testing.T) {
	// 合法输入下均值始终保持在[1,5]内
	avg, count := 0.0, 0
	var err error
	for _, r := range []int{1, 5, 3, 4, 2, 5, 1} {
		avg, count, err = FoldRating(avg, count, r)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if avg < 1 || avg > 5 {
			t.Fatalf("average %v escaped [1,5] after folding %d", avg, r)
		}
	}
	if count != 7 {
		t.Errorf("expected count 7, got %d", count)
	}
}

func TestFoldScoreFirstScore(t *testing.T) {
	avg, count, err := FoldScore(0, 0, 87)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if avg != 87.0 || count != 1 {
		t.Errorf("expected (87.0, 1), got (%v, %d)", avg, count)
	}
}

func TestFoldScoreRunningMean(t *testing.T) {
	avg, count, err := FoldScore(80.0, 4, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(avg-84.0) > 1e-9 || count != 5 {
		t.Errorf("expected (84.0, 5), got (%v, %d)", avg, count)
	}
}

func TestFoldScoreOutOfRange(t *testing.T) {
	for _, score := range []int{-1, 101, 1000} {
		if _, _, err := FoldScore(50.0, 1, score); !errors.Is(err, ErrScoreOutOfRange) {
			t.Errorf("score %d: expected ErrScoreOutOfRange, got %v", score, err)
		}
	}
	// 边界值合法
	if _, _, err := FoldScore(50.0, 1, 0); err != nil {
		t.Errorf("score 0 must be accepted: %v", err)
	}
	if _, _, err := FoldScore(50.0, 1, 100); err != nil {
		t.Errorf("score 100 must be accepted: %v", err)
	}
}

func TestFoldScoreDeterministic(t *testing.T) {
	// 折叠是累积操作而非幂等操作：相同输入必须产生相同输出（纯函数），
	// 但把输出再喂回去会继续累积。
	avg1, count1, err := FoldScore(70.0, 2, 90)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	avg2, count2, err := FoldScore(70.0, 2, 90)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if avg1 != avg2 || count1 != count2 {
		t.Errorf("same input produced different output: (%v,%d) vs (%v,%d)", avg1, count1, avg2, count2)
	}

	avg3, count3, err := FoldScore(avg1, count1, 90)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if avg3 == avg1 && count3 == count1 {
		t.Error("folding must accumulate, not no-op")
	}
}

func TestFoldNegativeCountTreatedAsZero(t *testing.T) {
	avg, count, err := FoldRating(3.0, -2, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if avg != 4.0 || count != 1 {
		t.Errorf("expected (4.0, 1), got (%v, %d)", avg, count)
	}
}
