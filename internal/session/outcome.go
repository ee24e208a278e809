package session

import "fmt"

// Kind classifies the result of a single command.
type Kind int

const (
	// KindExecuted means the command ran, remotely or locally, and succeeded.
	KindExecuted Kind = iota
	// KindRejected means a local precondition failed. No remote call was made.
	KindRejected
	// KindRemoteFailure means a remote call was attempted and failed.
	KindRemoteFailure
)

func (k Kind) String() string {
	switch k {
	case KindExecuted:
		return "executed"
	case KindRejected:
		return "rejected"
	case KindRemoteFailure:
		return "remote failure"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Outcome is the result of dispatching one command.
type Outcome struct {
	Kind Kind

	// Message is the success message for Executed and the reason for Rejected.
	Message string

	// Action and Cause describe a RemoteFailure.
	Action string
	Cause  error

	// Exit is set when the user confirmed exit.
	Exit bool
}

// Executed returns a successful outcome.
func Executed(message string) Outcome {
	return Outcome{Kind: KindExecuted, Message: message}
}

// Rejected returns an outcome for a failed local precondition.
func Rejected(reason string) Outcome {
	return Outcome{Kind: KindRejected, Message: reason}
}

// RemoteFailure returns an outcome for a failed remote call.
func RemoteFailure(action string, cause error) Outcome {
	return Outcome{Kind: KindRemoteFailure, Action: action, Cause: cause}
}

func (o Outcome) String() string {
	if o.Kind == KindRemoteFailure {
		return fmt.Sprintf("%s: %v", o.Action, o.Cause)
	}
	return o.Message
}
