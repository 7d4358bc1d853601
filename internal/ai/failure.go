package ai

// FailureKind categorizes why an enhancement produced no value
type FailureKind string

const (
	FailureRateLimited    FailureKind = "rate_limited"
	FailureQuotaExhausted FailureKind = "quota_exhausted"
	FailureInvalidInput   FailureKind = "invalid_input"
	FailureDisabled       FailureKind = "disabled"
	FailureGeneric        FailureKind = "generic"
)

// Notice texts shown to the user
const (
	NoticeRateLimited    = "Rate limit exceeded. Please try again in a moment."
	NoticeQuotaExhausted = "AI credits exhausted. Please add credits to continue."
	NoticeDisabled       = "AI enhancement is disabled"
	NoticeRetry          = "Please try again"
	NoticeNoContent      = "No content generated"

	NoticeMissingName            = "Please enter your name first"
	NoticeMissingPositionCompany = "Please fill in position and company first"
)

// Notice is a user-visible message
type Notice struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Failure describes an enhancement that did not produce a value
type Failure struct {
	Kind      FailureKind `json:"kind"`
	Operation Kind        `json:"operation"`
	// Detail is shown verbatim for invalid input; other kinds use fixed texts
	Detail string `json:"detail,omitempty"`
	Cause  error  `json:"-"`
}

func (f *Failure) Error() string {
	msg := string(f.Operation) + " enhancement failed (" + string(f.Kind) + ")"
	if f.Detail != "" {
		msg += ": " + f.Detail
	}
	if f.Cause != nil {
		msg += ": " + f.Cause.Error()
	}
	return msg
}

func (f *Failure) Unwrap() error {
	return f.Cause
}

// Notice returns the message the user sees for this failure
func (f *Failure) Notice() Notice {
	if f.Kind == FailureInvalidInput {
		return Notice{Title: "Missing information", Description: f.Detail}
	}

	title := "Enhancement failed"
	if f.Operation == KindSummary {
		title = "Generation failed"
	}

	switch f.Kind {
	case FailureRateLimited:
		return Notice{Title: title, Description: NoticeRateLimited}
	case FailureQuotaExhausted:
		return Notice{Title: title, Description: NoticeQuotaExhausted}
	case FailureDisabled:
		return Notice{Title: title, Description: NoticeDisabled}
	default:
		return Notice{Title: title, Description: NoticeRetry}
	}
}

// SuccessNotice returns the message shown after an enhancement is applied
func SuccessNotice(kind Kind) Notice {
	if kind == KindSummary {
		return Notice{Title: "Summary generated!", Description: "AI has created a professional summary for you"}
	}
	return Notice{Title: "Content enhanced!", Description: "AI has improved your experience description"}
}
