package utils

import (
	"errors"
	"fmt"
)

// ErrorKind разделяет ошибки движка по способу обработки
type ErrorKind int

const (
	KindNotFound ErrorKind = iota // course, lecture, quiz or progress record absent
	KindValidation
	KindConflict // quiz definition internally invalid
	KindInternal
)

// AppError несёт вид ошибки вместе с сообщением для клиента
type AppError struct {
	Kind    ErrorKind
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

func NewNotFound(format string, args ...interface{}) *AppError {
	return &AppError{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func NewValidation(format string, args ...interface{}) *AppError {
	return &AppError{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func NewConflict(format string, args ...interface{}) *AppError {
	return &AppError{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func NewInternal(format string, args ...interface{}) *AppError {
	return &AppError{Kind: KindInternal, Message: fmt.Sprintf(format, args...)}
}

// AsAppError возвращает AppError, если err им является
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func IsNotFound(err error) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Kind == KindNotFound
}

func IsValidation(err error) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Kind == KindValidation
}

func IsConflict(err error) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Kind == KindConflict
}
