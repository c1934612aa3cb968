package recommend

import (
	"math"
	"sort"

	"kdrama-rec-api/internal/domain/entity"
)

// Vocabulary 特征词表，按字典序分配列号
type Vocabulary struct {
	terms []string
	index map[string]int32
	idf   []float64
}

// Size 词表大小
func (v *Vocabulary) Size() int { return len(v.terms) }

// Terms 返回按列号排列的词
func (v *Vocabulary) Terms() []string { return v.terms }

// IDF 返回词的 idf 权重，不存在时返回 0
func (v *Vocabulary) IDF(term string) float64 {
	if j, ok := v.index[term]; ok {
		return v.idf[j]
	}
	return 0
}

// Matrix 行压缩稀疏矩阵，每行对应一个条目
// 行 i 的非零项位于 indices/data 的 [indptr[i], indptr[i+1]) 区间，列号升序
type Matrix struct {
	cols    int
	indptr  []int
	indices []int32
	data    []float64
	norms   []float64
}

// Rows 行数
func (m *Matrix) Rows() int { return len(m.indptr) - 1 }

// Cols 列数
func (m *Matrix) Cols() int { return m.cols }

// Norm 行向量的 L2 范数
func (m *Matrix) Norm(i int) float64 { return m.norms[i] }

// Row 返回第 i 行的列号和权重（只读）
func (m *Matrix) Row(i int) ([]int32, []float64) {
	lo, hi := m.indptr[i], m.indptr[i+1]
	return m.indices[lo:hi], m.data[lo:hi]
}

// Weight 返回 (i, j) 处的权重
func (m *Matrix) Weight(i int, j int32) float64 {
	idx, vals := m.Row(i)
	k := sort.Search(len(idx), func(n int) bool { return idx[n] >= j })
	if k < len(idx) && idx[k] == j {
		return vals[k]
	}
	return 0
}

// buildFeatures 对每个条目的 "Genres, Styles" 文本做 TF-IDF 向量化
// idf = ln((1+n)/(1+df)) + 1，每行做 L2 归一化
func buildFeatures(items []*entity.Item) (*Vocabulary, *Matrix) {
	n := len(items)
	counts := make([]map[string]int, n)
	df := make(map[string]int)

	for i, item := range items {
		tf := make(map[string]int)
		for _, tok := range tokenize(item.FeatureText()) {
			tf[tok]++
		}
		for term := range tf {
			df[term]++
		}
		counts[i] = tf
	}

	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	vocab := &Vocabulary{
		terms: terms,
		index: make(map[string]int32, len(terms)),
		idf:   make([]float64, len(terms)),
	}
	for j, term := range terms {
		vocab.index[term] = int32(j)
		vocab.idf[j] = math.Log(float64(1+n)/float64(1+df[term])) + 1
	}

	m := &Matrix{
		cols:   len(terms),
		indptr: make([]int, 1, n+1),
		norms:  make([]float64, n),
	}
	for i, tf := range counts {
		cols := make([]int32, 0, len(tf))
		for term := range tf {
			cols = append(cols, vocab.index[term])
		}
		sort.Slice(cols, func(a, b int) bool { return cols[a] < cols[b] })

		start := len(m.data)
		var sq float64
		for _, j := range cols {
			w := float64(tf[terms[j]]) * vocab.idf[j]
			m.indices = append(m.indices, j)
			m.data = append(m.data, w)
			sq += w * w
		}
		if sq > 0 {
			norm := math.Sqrt(sq)
			sq = 0
			for k := start; k < len(m.data); k++ {
				m.data[k] /= norm
				sq += m.data[k] * m.data[k]
			}
			m.norms[i] = math.Sqrt(sq)
		}
		m.indptr = append(m.indptr, len(m.data))
	}

	return vocab, m
}
