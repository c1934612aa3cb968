package recommend

import (
	"regexp"
	"strings"
)

// tokenRe 匹配由至少两个字母/数字/下划线组成的词
var tokenRe = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// tokenize 将文本转为小写词序列，不做停用词过滤
func tokenize(text string) []string {
	return tokenRe.FindAllString(strings.ToLower(text), -1)
}

// normalizeTitle 标题查找键：去除首尾空白并转小写
func normalizeTitle(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}
