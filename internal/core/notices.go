package core

import "fmt"

// LimitExceededNotice is shown when a selection change would exceed limit.
func LimitExceededNotice(limit int) Notice {
	return Notice{
		Kind:    NoticeBlocking,
		Code:    CodeLimitExceeded,
		Message: fmt.Sprintf("You can select only up to %d rows.", limit),
	}
}

// NotExactNotice is shown when Submit is attempted with the wrong count.
func NotExactNotice(limit int) Notice {
	return Notice{
		Kind:    NoticeBlocking,
		Code:    CodeNotExact,
		Message: fmt.Sprintf("Please select exactly %d rows before submitting.", limit),
	}
}

// SubmittedNotice is shown after a successful Submit.
func SubmittedNotice() Notice {
	return Notice{
		Kind:    NoticeSuccess,
		Code:    CodeSubmitted,
		Message: "Rows submitted successfully!",
	}
}
