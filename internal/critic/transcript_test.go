package critic

import "testing"

func TestParseTranscript_SinglePair(t *testing.T) {
	question, answer := ParseTranscript("面试官：什么是 goroutine？\n用户：goroutine 是 Go 的轻量级线程。")

	if question != "什么是 goroutine？" {
		t.Errorf("Unexpected question: %q", question)
	}
	if answer != "goroutine 是 Go 的轻量级线程。" {
		t.Errorf("Unexpected answer: %q", answer)
	}
}

func TestParseTranscript_KeepsLastPair(t *testing.T) {
	message := "面试官：第一个问题\n用户：第一个回答\n面试官：第二个问题\n用户：第二个回答"

	question, answer := ParseTranscript(message)
	if question != "第二个问题" {
		t.Errorf("Expected the last question, got %q", question)
	}
	if answer != "第二个回答" {
		t.Errorf("Expected the last answer, got %q", answer)
	}
}

func TestParseTranscript_AlternatePrefixes(t *testing.T) {
	question, answer := ParseTranscript("AI：请介绍一下自己\n候选人：我是一名后端工程师")

	if question != "请介绍一下自己" {
		t.Errorf("Unexpected question: %q", question)
	}
	if answer != "我是一名后端工程师" {
		t.Errorf("Unexpected answer: %q", answer)
	}
}

func TestParseTranscript_IgnoresUnknownSpeakers(t *testing.T) {
	message := "旁白：无关内容\n面试官：问题\n用户：回答"

	question, answer := ParseTranscript(message)
	if question != "问题" || answer != "回答" {
		t.Errorf("Unexpected pair: %q / %q", question, answer)
	}
}

func TestParseTranscript_Unparsable(t *testing.T) {
	question, answer := ParseTranscript("这是一段没有说话人标记的文本")

	if question != "" || answer != "" {
		t.Errorf("Expected empty pair, got %q / %q", question, answer)
	}
}

func TestFormatTranscript_RoundTrips(t *testing.T) {
	message := FormatTranscript("什么是接口？", "接口定义行为契约。")

	question, answer := ParseTranscript(message)
	if question != "什么是接口？" {
		t.Errorf("Unexpected question: %q", question)
	}
	if answer != "接口定义行为契约。" {
		t.Errorf("Unexpected answer: %q", answer)
	}
}
