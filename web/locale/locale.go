// Package locale provides localized page and flash message strings for the
// web interface. Translations live in embedded TOML files; the shop ships
// English and Russian.
package locale

import (
	"embed"
	"io/fs"
	"strings"

	"market/logger"

	"github.com/gin-gonic/gin"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

var (
	i18nBundle       *i18n.Bundle
	defaultLocalizer *i18n.Localizer
)

func InitLocalizer(i18nFS embed.FS) error {
	// set default bundle to english
	i18nBundle = i18n.NewBundle(language.MustParse("en-US"))
	i18nBundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	if err := parseTranslationFiles(i18nFS, i18nBundle); err != nil {
		return err
	}
	defaultLocalizer = i18n.NewLocalizer(i18nBundle)
	return nil
}

func createTemplateData(params []string, seperator ...string) map[string]any {
	var sep string = "=="
	if len(seperator) > 0 {
		sep = seperator[0]
	}

	templateData := make(map[string]any)
	for _, param := range params {
		parts := strings.SplitN(param, sep, 2)
		templateData[parts[0]] = parts[1]
	}

	return templateData
}

// localize resolves a message key against the given localizer. Params are
// "name==value" pairs fed to the message template.
func localize(localizer *i18n.Localizer, key string, params ...string) string {
	if localizer == nil {
		// Localizer not ready; the key is better than a blank page.
		return key
	}

	templateData := createTemplateData(params)

	msg, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: templateData,
	})
	if err != nil {
		logger.Errorf("Failed to localize message: %v", err)
		return key
	}

	return msg
}

// I18n resolves a message key against the default language. Request handlers
// localize through the per-request func installed by LocalizerMiddleware.
func I18n(key string, params ...string) string {
	return localize(defaultLocalizer, key, params...)
}

// LocalizerMiddleware picks the request language from the "lang" cookie or
// the Accept-Language header and exposes a localize func to handlers. Each
// request gets its own localizer so concurrent requests cannot bleed each
// other's language.
func LocalizerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		var lang string

		if cookie, err := c.Request.Cookie("lang"); err == nil {
			lang = cookie.Value
		} else {
			lang = c.GetHeader("Accept-Language")
		}

		localizer := i18n.NewLocalizer(i18nBundle, lang)

		c.Set("localizer", localizer)
		c.Set("I18n", func(key string, params ...string) string {
			return localize(localizer, key, params...)
		})
		c.Next()
	}
}

func parseTranslationFiles(i18nFS embed.FS, i18nBundle *i18n.Bundle) error {
	return fs.WalkDir(i18nFS, "translation",
		func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.IsDir() {
				return nil
			}

			data, err := i18nFS.ReadFile(path)
			if err != nil {
				return err
			}

			_, err = i18nBundle.ParseMessageFileBytes(data, path)
			return err
		})
}
