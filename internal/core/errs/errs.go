// Package errs 定义业务层统一错误，HTTP 层按 Code 映射状态码。
package errs

import (
	"errors"
	"net/http"
)

type AppError struct {
	Code int
	Msg  string
	Err  error
}

func (e *AppError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e *AppError) Unwrap() error { return e.Err }

func BadRequest(msg string) error   { return &AppError{Code: http.StatusBadRequest, Msg: msg} }
func Unauthorized(msg string) error { return &AppError{Code: http.StatusUnauthorized, Msg: msg} }
func Forbidden(msg string) error    { return &AppError{Code: http.StatusForbidden, Msg: msg} }
func NotFound(msg string) error     { return &AppError{Code: http.StatusNotFound, Msg: msg} }
func Conflict(msg string) error     { return &AppError{Code: http.StatusConflict, Msg: msg} }

// Internal 的 err 只用于日志，不返回给调用方
func Internal(msg string, err error) error {
	return &AppError{Code: http.StatusInternalServerError, Msg: msg, Err: err}
}

// CodeOf 非 AppError 一律视为 500
func CodeOf(err error) int {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Code
	}
	return http.StatusInternalServerError
}

func Is(err error, code int) bool {
	return err != nil && CodeOf(err) == code
}

// Public 返回可以给客户端看的消息；非 AppError 或没有 Msg 时为空串
func Public(err error) string {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Msg
	}
	return ""
}
