package util

import "errors"

var (
	ErrEmailRegistered      = errors.New("该邮箱已被注册")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrQuizNotFound         = errors.New("quiz not found")
	ErrResultNotFound       = errors.New("result not found")
	ErrTimeLimitExceeded    = errors.New("time limit exceeded")
	ErrCertificateNotPassed = errors.New("certificate can only be generated for passed quizzes")
)
