package recommend

// scoresFor 计算第 q 行与所有行的余弦相似度
// 查询行先展开为稠密向量，再逐行点积；任一范数为 0 时相似度为 0
func (m *Matrix) scoresFor(q int) []float64 {
	scores := make([]float64, m.Rows())
	qn := m.norms[q]
	if qn == 0 {
		return scores
	}

	dense := make([]float64, m.cols)
	qIdx, qVals := m.Row(q)
	for k, j := range qIdx {
		dense[j] = qVals[k]
	}

	for i := range scores {
		rn := m.norms[i]
		if rn == 0 {
			continue
		}
		idx, vals := m.Row(i)
		var dot float64
		for k, j := range idx {
			dot += dense[j] * vals[k]
		}
		scores[i] = clampScore(dot / (qn * rn))
	}
	return scores
}

// Cosine 两行之间的余弦相似度
func (m *Matrix) Cosine(a, b int) float64 {
	na, nb := m.norms[a], m.norms[b]
	if na == 0 || nb == 0 {
		return 0
	}
	ai, av := m.Row(a)
	bi, bv := m.Row(b)
	var dot float64
	for x, y := 0, 0; x < len(ai) && y < len(bi); {
		switch {
		case ai[x] == bi[y]:
			dot += av[x] * bv[y]
			x++
			y++
		case ai[x] < bi[y]:
			x++
		default:
			y++
		}
	}
	return clampScore(dot / (na * nb))
}

func clampScore(s float64) float64 {
	if s > 1 {
		return 1
	}
	if s < 0 {
		return 0
	}
	return s
}
