package scoring

// 增量均值折叠：不保留历史样本，仅维护 (均值, 计数) 两个数。
// 折叠本身是纯函数；同一实体上的 读取-折叠-写回 必须由调用方串行化
// （service 层使用 SELECT ... FOR UPDATE 行锁），否则并发提交会丢失更新。

// FoldRating 将一次1-5的评分折叠进现有平均评分。
// count为0时以0为基数，首次评分结果即为评分本身。
func FoldRating(average float64, count int, rating int) (float64, int, error) {
	if rating < 1 || rating > 5 {
		return 0, 0, ErrRatingOutOfRange
	}
	newAvg, newCount := fold(average, count, float64(rating))
	return newAvg, newCount, nil
}

// FoldScore 将一次0-100的完成得分折叠进评估的平均得分。
func FoldScore(average float64, count int, score int) (float64, int, error) {
	if score < 0 || score > 100 {
		return 0, 0, ErrScoreOutOfRange
	}
	newAvg, newCount := fold(average, count, float64(score))
	return newAvg, newCount, nil
}

func fold(average float64, count int, value float64) (float64, int) {
	if count <= 0 {
		count = 0
		average = 0
	}
	newCount := count + 1
	return (average*float64(count) + value) / float64(newCount), newCount
}
