package textclean

import (
	"regexp"
	"strings"
)

// nonAlnum 匹配所有非 ASCII 字母/数字的字符段，包初始化时编译一次
// 数字刻意保留：类似 "BKR01" 的位置编码往往携带信息
var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Clean 把原始文本规范化为可向量化的词袋字符串
// 流程：转小写 -> 非字母数字替换为空格 -> 按空白切词 -> 去停用词 -> 单空格拼接
// 无副作用，对固定停用词表是确定性的
func Clean(text string) string {
	text = strings.ToLower(text)
	text = nonAlnum.ReplaceAllString(text, " ")

	var kept []string
	for _, token := range strings.Fields(text) {
		if IsStopWord(token) {
			continue
		}
		kept = append(kept, token)
	}
	return strings.Join(kept, " ")
}

// Tokens 返回清洗后的 token 列表
func Tokens(text string) []string {
	cleaned := Clean(text)
	if cleaned == "" {
		return nil
	}
	return strings.Split(cleaned, " ")
}
