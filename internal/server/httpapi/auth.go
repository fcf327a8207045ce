package httpapi

import (
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/pitwall/paddockpress/internal/common"
)

// requestKey extracts the shared key from wherever this particular call
// carries it: the X-Api-Key header (uploads), the key query/form parameter
// (file operations), or the base64 auth token (database operations).
func requestKey(r *http.Request) string {
	if key := r.Header.Get(common.KeyHeaderName); key != "" {
		return key
	}
	if key := r.URL.Query().Get("key"); key != "" {
		return key
	}
	if key := r.PostFormValue("key"); key != "" {
		return key
	}
	if token := r.URL.Query().Get("auth"); token != "" {
		return keyFromToken(token)
	}
	return ""
}

// keyFromToken decodes the auth query value: base64 of a JSON payload whose
// "key" field is the shared secret.
func keyFromToken(token string) string {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return ""
	}
	var payload struct {
		Key string `json:"key"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return ""
	}
	return payload.Key
}

// requireKey rejects any request not presenting the shared key. No sessions:
// every single request authenticates itself.
func (s *Server) requireKey(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := requestKey(r)
		if subtle.ConstantTimeCompare([]byte(key), []byte(s.apiKey)) != 1 {
			writeError(w, http.StatusForbidden, "forbidden")
			return
		}
		next(w, r)
	}
}
