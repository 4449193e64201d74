package moderator

import (
	"encoding/json"
	"fmt"

	"github.com/yinterview/forum-agent/internal/models"
)

const moderatorSystemPrompt = `你是一位专业的 Moderator（主持人），负责协调 RAG Critic 和 Web Critic 两位评论家，并生成最终评价。

## 你的职责
1. 汇总 RAG Critic 和 Web Critic 的评论
2. 决定是否继续下一轮讨论
3. 生成综合性的最终评价
4. 管理讨论流程和轮次控制

## 决策原则
### 何时继续讨论（should_continue = true）
1. 当前轮次未达上限：current_round < max_rounds
2. 两位 Critic 意见分歧较大：综合评分差异超过 3 分，或一个认为回答过时、另一个认为符合标准答案
3. 需要进一步澄清：发现用户回答有疑点，但需要更多维度的评价

### 何时结束讨论（should_continue = false）
1. 已达最大轮次：current_round >= max_rounds
2. 两位 Critic 意见基本一致：评分差异小于 2 分，对用户回答的评价基本相同
3. 评价已足够全面：已经从历史数据和最新实践两个维度充分评价

## 最终评价原则
1. 维度评分转换：将 0-10 分转换为 0-100 分（乘以 10）
2. overall_score = (completeness + accuracy + depth + relevance + timeliness + practicality) / 6，四舍五入到整数
3. strengths：合并两位 Critic 指出的所有亮点，去重，优先保留有论据支撑的优势
4. improvements：按优先级排序——准确性问题 > 完整性问题 > 时效性问题 > 深度问题，确保建议具体可操作
5. summary：100-200 字的综合评价，包含总体水平、主要优势、主要不足和改进方向`

const decisionPromptTemplate = `请根据当前讨论情况，决定下一步动作：

## 当前讨论状态
- **当前轮次**：%d/%d
- **评分差异**：%.1f

## RAG Critic 的评论
%s

## Web Critic 的评论
%s

## 决策要求
- 如果 current_round >= max_rounds → should_continue = false，next_step = "moderator_summarize"
- 如果 current_round < max_rounds：
  - 评分差异 >= 3 分 → should_continue = true，next_step = "rag_critic"
  - 评分差异 < 2 分且观点一致 → should_continue = false，next_step = "moderator_summarize"
  - 否则 → 根据信息完整性判断

只返回如下格式的 JSON 对象，不要有解释或额外文本：
{"should_continue": false, "next_step": "moderator_summarize", "reason": "", "current_speaker": "moderator"}`

const finalEvaluationPromptTemplate = `请综合 RAG Critic 和 Web Critic 的评论，生成最终评价：

## 面试问题
%s

## 用户回答
%s

## RAG Critic 的评论
%s

## Web Critic 的评论
%s

## 讨论历史（所有轮次）
%s

## 评价要求
1. 将两位 Critic 的评分（0-10）转换为百分制填入 dimensions（completeness/accuracy/depth 来自 RAG Critic，relevance/timeliness/practicality 来自 Web Critic）
2. overall_score = 六个维度的平均值，四舍五入到整数
3. strengths：合并两位 Critic 指出的亮点并去重
4. improvements：按优先级排序——准确性问题 > 完整性问题 > 时效性问题 > 深度问题
5. summary：100-200 字，包含总体水平（90-100优秀/75-89良好/60-74一般/<60较差）、主要优势、主要不足和改进方向

只返回如下格式的 JSON 对象，不要有解释或额外文本：
{"overall_score": 0, "dimensions": {"completeness": 0, "accuracy": 0, "depth": 0, "relevance": 0, "timeliness": 0, "practicality": 0}, "strengths": [], "improvements": [], "summary": ""}`

const overallEvaluationPromptTemplate = `你是一位资深的技术面试官，现在需要对候选人的整场面试表现进行总体评价。

## 面试信息
- 总问题数：%d
- 平均得分：%.1f/10
- 表现趋势（已计算）：%s
- 面试上下文：%s

## 每个问题的评价
%s

## 任务要求
综合分析候选人的整体表现，生成总体评价报告：
1. overall_score（0-10）：不是简单平均分，综合考虑得分分布、表现趋势、关键问题表现和知识广度深度
2. strengths / weaknesses：跨问题的共性优势与劣势（各 3-5 条）
3. knowledge_gaps：明显薄弱的技术领域
4. performance_trend：使用上方已计算的趋势值
5. trend_analysis：说明前后半段表现变化的可能原因
6. topic_analysis：按技术主题分组，每个主题给出 score（0-10）和 comment
7. improvement_suggestions：按 high/medium/low 优先级排序，具体可操作
8. summary：100-200 字综合评价，含录用建议

只返回如下格式的 JSON 对象，不要有解释或额外文本：
{"overall_score": 0, "strengths": [], "weaknesses": [], "knowledge_gaps": [], "performance_trend": "stable", "trend_analysis": "", "topic_analysis": {}, "improvement_suggestions": [{"priority": "high", "suggestion": ""}], "summary": ""}`

func buildDecisionPrompt(state *models.DiscussionState, divergence float64) string {
	return fmt.Sprintf(decisionPromptTemplate,
		state.CurrentRound, state.MaxRounds, divergence,
		toJSON(state.RAGComment), toJSON(state.WebComment))
}

func buildFinalEvaluationPrompt(question, userAnswer string, state *models.DiscussionState) string {
	return fmt.Sprintf(finalEvaluationPromptTemplate,
		orMissing(question, "未提取到问题"), orMissing(userAnswer, "未提取到回答"),
		toJSON(state.RAGComment), toJSON(state.WebComment), toJSON(state.DiscussionHistory))
}

func buildOverallEvaluationPrompt(
	qaEvaluations []models.QAEvaluation,
	interviewContext map[string]string,
	averageScore float64,
	trend models.PerformanceTrend,
) string {
	return fmt.Sprintf(overallEvaluationPromptTemplate,
		len(qaEvaluations), averageScore, trend, toJSON(interviewContext), toJSON(qaEvaluations))
}

func toJSON(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "null"
	}
	return string(data)
}

func orMissing(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
