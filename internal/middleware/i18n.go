// internal/middleware/i18n.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/shaivyah/storefront-backend/internal/i18n"
	"github.com/shaivyah/storefront-backend/internal/utils"
)

// I18nMiddleware picks the first supported language from Accept-Language,
// falling back to defaultLang.
func I18nMiddleware(defaultLang string) gin.HandlerFunc {
	if !i18n.IsSupported(defaultLang) {
		defaultLang = i18n.DefaultLanguage
	}

	return func(c *gin.Context) {
		c.Set(utils.ContextLang, parseAcceptLanguage(c.GetHeader("Accept-Language"), defaultLang))
		c.Next()
	}
}

// parseAcceptLanguage handles values like "hi-IN,hi;q=0.9,en;q=0.8".
// Entries are taken in header order; q weights are not compared.
func parseAcceptLanguage(header, fallback string) string {
	for _, part := range strings.Split(header, ",") {
		tag := strings.TrimSpace(strings.Split(part, ";")[0])
		if tag == "" {
			continue
		}
		subtags := strings.FieldsFunc(tag, func(r rune) bool { return r == '-' || r == '_' })
		if len(subtags) == 0 {
			continue
		}
		if base := strings.ToLower(subtags[0]); i18n.IsSupported(base) {
			return base
		}
	}
	return fallback
}
