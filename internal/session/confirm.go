package session

import "strings"

type answer int

const (
	answerInvalid answer = iota
	answerConfirm
	answerCancel
)

// parseExitAnswer interprets a reply to the exit prompt. bypass, when
// non-empty, is an extra token that confirms exit. Both sides are trimmed,
// then matched exactly.
func parseExitAnswer(reply, bypass string) answer {
	reply = strings.TrimSpace(reply)
	if bypass = strings.TrimSpace(bypass); bypass != "" && reply == bypass {
		return answerConfirm
	}

	switch strings.ToLower(reply) {
	case "y", "yes":
		return answerConfirm
	case "n", "no":
		return answerCancel
	}
	return answerInvalid
}
