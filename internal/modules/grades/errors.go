package grades

import "errors"

var (
	ErrGradeNotFound     = errors.New("grade not found")
	ErrStudentNotFound   = errors.New("student not found")
	ErrSubjectNotFound   = errors.New("subject not found")
	ErrGradeOutOfRange   = errors.New("grade out of range")
	ErrSubjectNotAllowed = errors.New("subject outside caller's classes")
)
