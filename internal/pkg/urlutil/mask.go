// Package urlutil скрывает секреты в URL перед записью в лог.
package urlutil

import (
	"net/url"
	"strings"
)

// MaskURL оставляет только scheme и host: "https://host/***".
// Используется для служебных endpoint-ов (Pushgateway, OTLP), где path
// и query могут содержать credentials.
func MaskURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "***invalid-url***"
	}
	return u.Scheme + "://" + u.Host + "/***"
}

// sensitiveParams - подстроки имён query параметров, значения которых скрываются.
var sensitiveParams = []string{"token", "key", "sig", "auth", "pass", "secret"}

// RedactMediaURL сохраняет host и path медиа-ссылки, но убирает userinfo
// и значения подозрительных query параметров. Строка, которая не разбирается
// как абсолютный URL, возвращается как есть: это ввод пользователя.
func RedactMediaURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return rawURL
	}
	u.User = nil
	if u.RawQuery != "" {
		q := u.Query()
		for name := range q {
			if isSensitive(name) {
				q.Set(name, "***")
			}
		}
		u.RawQuery = q.Encode()
	}
	return u.String()
}

func isSensitive(name string) bool {
	lower := strings.ToLower(name)
	for _, s := range sensitiveParams {
		if strings.Contains(lower, s) {
			return true
		}
	}
	return false
}
