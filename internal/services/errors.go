package services

import "errors"

var (
	// ErrNotFound 记录不存在（或对调用方组织不可见）
	ErrNotFound = errors.New("record not found")
	// ErrInvalidToken bearer token 无法解析、签名错误或已过期
	ErrInvalidToken = errors.New("invalid token")
)
