package critic

import (
	"strings"
)

// ErrUnparsableTranscript is the error tag set on a critique when the
// transcript yields no question/answer pair. Kept verbatim so stored records
// stay comparable across services.
const ErrUnparsableTranscript = "无法解析问题和用户回答"

// ParseTranscript extracts the last interviewer question and the last
// candidate answer from a serialized transcript. Lines are tagged with
// "面试官：" / "AI：" for questions and "用户：" / "候选人：" for answers;
// anything else is ignored.
func ParseTranscript(message string) (question, answer string) {
	for _, line := range strings.Split(strings.TrimSpace(message), "\n") {
		line = strings.TrimSpace(line)

		switch {
		case hasSpeakerPrefix(line, "面试官"), hasSpeakerPrefix(line, "AI"):
			question = speakerContent(line)
		case hasSpeakerPrefix(line, "用户"), hasSpeakerPrefix(line, "候选人"):
			answer = speakerContent(line)
		}
	}
	return question, answer
}

// FormatTranscript builds the canonical single-QA transcript form.
func FormatTranscript(question, answer string) string {
	return "面试官：" + question + "\n用户：" + answer
}

func hasSpeakerPrefix(line, speaker string) bool {
	return strings.HasPrefix(line, speaker+"：")
}

func speakerContent(line string) string {
	_, content, _ := strings.Cut(line, "：")
	return strings.TrimSpace(content)
}
