package port

import "errors"

// Sentinel errors used across ports. Handlers map these to HTTP statuses.
var (
	ErrUserNotFound   = errors.New("user not found")
	ErrRepoNotFound   = errors.New("repository not found")
	ErrReportNotFound = errors.New("analysis report not found")
	ErrEmailTaken     = errors.New("email already registered")
	ErrNoStoredCode   = errors.New("report has no stored code, re-run the analysis")
)
