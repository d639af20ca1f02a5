package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/lingochat/memories-backend/pkg/i18n"
)

const (
	localeKey = "locale"
	bundleKey = "i18n_bundle"
)

var fallbackBundle = i18n.NewDefaultBundle()

// I18n middleware detects the client's preferred language from Accept-Language header
// and stores it in the gin context for later use.
func I18n(bundle *i18n.Bundle) gin.HandlerFunc {
	if bundle == nil {
		bundle = fallbackBundle
	}
	return func(c *gin.Context) {
		header := c.GetHeader("Accept-Language")
		locale := i18n.ParseAcceptLanguage(header)
		c.Set(localeKey, locale)
		c.Set(bundleKey, bundle)
		c.Header("Content-Language", string(locale))
		c.Next()
	}
}

// GetLocale returns the locale from the gin context (set by I18n middleware)
func GetLocale(c *gin.Context) i18n.Locale {
	if v, exists := c.Get(localeKey); exists {
		if locale, ok := v.(i18n.Locale); ok {
			return locale
		}
	}
	return i18n.LocaleEn
}

// T translates key for the request's locale
func T(c *gin.Context, key string, args ...interface{}) string {
	bundle := fallbackBundle
	if v, exists := c.Get(bundleKey); exists {
		if b, ok := v.(*i18n.Bundle); ok {
			bundle = b
		}
	}
	return bundle.T(GetLocale(c), key, args...)
}
