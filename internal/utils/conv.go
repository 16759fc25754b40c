package utils

import (
	"strconv"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// StringToUint converts a decimal string to uint, returns 0 if empty or invalid
func StringToUint(s string) uint {
	if s == "" {
		return 0
	}
	i, err := strconv.ParseUint(s, 10, 63)
	if err != nil {
		return 0
	}
	return uint(i)
}

// LimitAndOffset 规范分页参数：limit 缺省(0)为 10，超过 100 截断为 100；offset 缺省为 0
func LimitAndOffset(limit, offset int) (int, int) {
	switch {
	case limit <= 0:
		limit = DefaultLimit
	case limit > MaxLimit:
		limit = MaxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
