package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
)

const signKey = "sign"

// Sign считает lowercase hex HMAC-SHA256 по параметрам, отсортированным по ключу
// и склеенным как k=v через &. Поле sign в подписываемую строку не входит.
func Sign(secret []byte, params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		if k == signKey {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(params[k])
	}

	h := hmac.New(sha256.New, secret)
	h.Write([]byte(b.String()))
	return hex.EncodeToString(h.Sum(nil))
}
