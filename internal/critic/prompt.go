package critic

import (
	"fmt"
	"strings"

	"github.com/yinterview/forum-agent/internal/models"
	"github.com/yinterview/forum-agent/internal/search"
)

const ragCriticSystemPrompt = `你是一位专业的 RAG Critic，负责基于历史面经数据评价用户的面试回答。

## 你的职责
1. 从历史面经中检索相似的面试问题和标准答案
2. 对比用户回答与标准答案，识别遗漏点和错误点
3. 基于历史数据给出客观、专业的评价
4. 提供具体、可操作的改进建议

## 评价维度
1. **完整性（Completeness）**：回答是否覆盖了所有关键知识点
   评分标准：覆盖90%以上关键点=9-10分，70-90%=7-8分，50-70%=5-6分，<50%=0-4分
2. **准确性（Accuracy）**：技术描述是否准确无误
   评分标准：完全准确=9-10分，有1-2个小错误=7-8分，有明显错误=5-6分，错误很多=0-4分
3. **深度（Depth）**：回答是否深入到原理层面，是否包含实践经验
   评分标准：深入原理+实践案例=9-10分，有原理或案例=7-8分，仅表面描述=5-6分，过于浅显=0-4分
4. **综合评分（Overall）**：(完整性 × 0.4 + 准确性 × 0.4 + 深度 × 0.2)

## 评价原则
1. 客观公正：基于历史数据和标准答案，不掺杂主观偏见
2. 具体明确：指出具体的遗漏点、错误点，不要泛泛而谈
3. 建设性：给出可操作的改进建议
4. 对比分析：将用户回答与优秀案例对比，说明差距在哪里`

const ragCommentPromptTemplate = `请基于检索到的历史面经案例，评价用户的面试回答：

## 面试问题
%s

## 用户回答
%s

## 相似历史案例
%s

## 评价要求
1. 从历史案例中提取标准答案的关键点
2. 对比用户回答，找出遗漏的关键点（missing_points）和错误的表述（incorrect_points）
3. 按评价维度打分（0-10），overall_score = completeness_score × 0.4 + accuracy_score × 0.4 + depth_score × 0.2
4. 总结回答的亮点（strengths）并给出改进建议（suggestions）

只返回如下格式的 JSON 对象，不要有解释或额外文本：
{"completeness_score": 0, "accuracy_score": 0, "depth_score": 0, "overall_score": 0, "missing_points": [], "incorrect_points": [], "strengths": [], "suggestions": []}`

const webCriticSystemPrompt = `你是一位专业的 Web Critic，负责基于最新的网络资料评价用户的面试回答。

## 你的职责
1. 根据网络搜索结果了解该问题的最新行业实践
2. 对比用户回答与当前业界趋势，识别过时的技术观点
3. 给出基于最新趋势的评价和建议

## 评价维度
1. **相关性（Relevance）**：回答内容与当前行业实践的契合程度（0-10）
2. **时效性（Timeliness）**：回答是否反映了最新的技术趋势，有无过时内容（0-10）
3. **实用性（Practicality）**：回答中的方案在当前生产环境中是否可行（0-10）
4. **综合评分（Overall）**：relevance_score × 0.35 + timeliness_score × 0.35 + practicality_score × 0.30

## 评价原则
1. 每个论断都必须能追溯到具体的搜索结果来源，不要凭空断言
2. 识别行业趋势（industry_trends）、最佳实践（best_practices）和过时观点（outdated_points）
3. 建议要具体可操作`

const webCommentPromptTemplate = `请基于网络搜索结果，评价用户的面试回答：

## 面试问题
%s

## 用户回答
%s

## 网络搜索结果
%s

## 评价要求
1. 从搜索结果中总结该问题的行业趋势和最佳实践
2. 指出用户回答中过时或不符合当前实践的内容
3. 按评价维度打分（0-10），overall_score = relevance_score × 0.35 + timeliness_score × 0.35 + practicality_score × 0.30（保留一位小数）
4. 总结亮点并给出改进建议，每条都注明依据的来源

只返回如下格式的 JSON 对象，不要有解释或额外文本：
{"relevance_score": 0, "timeliness_score": 0, "practicality_score": 0, "overall_score": 0, "industry_trends": [], "best_practices": [], "outdated_points": [], "strengths": [], "suggestions": []}`

func buildRAGCommentPrompt(question, userAnswer string, cases []models.EpisodicCase) string {
	return fmt.Sprintf(ragCommentPromptTemplate, question, userAnswer, formatSimilarCases(cases))
}

func buildWebCommentPrompt(question, userAnswer, formattedResults string) string {
	return fmt.Sprintf(webCommentPromptTemplate, question, userAnswer, formattedResults)
}

func formatSimilarCases(cases []models.EpisodicCase) string {
	if len(cases) == 0 {
		return "未找到相似案例"
	}

	formatted := make([]string, 0, len(cases))
	for i, c := range cases {
		formatted = append(formatted, strings.TrimSpace(fmt.Sprintf(`### 案例 %d
- **问题**：%s
- **标准答案**：%s
- **关键点**：%s
- **公司**：%s
- **难度**：%s
- **质量评分**：%d/10`,
			i+1, c.Question, c.Answer, strings.Join(c.KeyPoints, "、"), orNA(c.Company), orNA(c.Difficulty), c.QualityScore)))
	}

	return strings.Join(formatted, "\n\n")
}

func formatSearchResults(results []search.Result, searchErr error) string {
	if searchErr != nil {
		return fmt.Sprintf("搜索失败：%s", searchErr)
	}
	if len(results) == 0 {
		return "未找到相关搜索结果"
	}

	formatted := make([]string, 0, len(results))
	for i, r := range results {
		formatted = append(formatted, strings.TrimSpace(fmt.Sprintf(`### 搜索结果 %d
- **标题**：%s
- **内容**：%s
- **来源**：%s
- **相关性评分**：%.2f
- **发布日期**：%s`,
			i+1, orNA(r.Title), orNA(r.Content), orNA(r.URL), r.Score, orNA(r.PublishedDate))))
	}

	return strings.Join(formatted, "\n\n")
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
