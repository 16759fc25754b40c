package middleware

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	VersionKey     = "api_version"
	VersionHeader  = "X-API-Version"
	DefaultVersion = "v1"
)

// APIVersion 解析 Accept: application/vnd.<app>.<version>
// 未携带或版本不受支持时回落到 v1
func APIVersion(appName string, supported ...string) gin.HandlerFunc {
	if len(supported) == 0 {
		supported = []string{DefaultVersion}
	}
	prefix := fmt.Sprintf("application/vnd.%s.", appName)

	return func(c *gin.Context) {
		version := DefaultVersion
		for _, part := range strings.Split(c.GetHeader("Accept"), ",") {
			mediaType := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
			requested, ok := strings.CutPrefix(mediaType, prefix)
			if !ok {
				continue
			}
			requested = strings.TrimSuffix(requested, "+json")
			if contains(supported, requested) {
				version = requested
				break
			}
		}

		c.Set(VersionKey, version)
		c.Header(VersionHeader, version)
		c.Next()
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
