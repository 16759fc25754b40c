package utils

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var policy = bluemonday.StrictPolicy()

// 实体编码可以嵌套多层，超过该层数仍未稳定时按转义后的文本保存
const maxSanitizePasses = 8

// SanitizeText strips all markup from user supplied free text (recognition
// text, Hi5 comments) and trims surrounding whitespace. Entities are decoded
// only while the decoded value still passes the policy unchanged, so encoded
// markup like "&lt;script&gt;" never comes back as a live tag.
func SanitizeText(source string) string {
	current := source
	for i := 0; i < maxSanitizePasses; i++ {
		sanitized := policy.Sanitize(current)
		decoded := html.UnescapeString(sanitized)
		if decoded == current {
			return strings.TrimSpace(decoded)
		}
		current = decoded
	}
	return strings.TrimSpace(policy.Sanitize(current))
}
