// Package middleware 提供 HTTP 中介層。核心本身不做身份驗證，
// 只從這裡取得已驗證的使用者 ID。
package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

// ContextUserID 是已驗證使用者 ID 在 request context 中的鍵
const ContextUserID contextKey = "userID"

// Auth 結構負責驗證 Bearer JWT 並把使用者 ID 放進 request context
type Auth struct {
	secret []byte
}

// NewAuth 建立 Auth 中介層實例
func NewAuth(jwtSecret string) (*Auth, error) {
	if jwtSecret == "" {
		return nil, fmt.Errorf("Auth：JWT 簽章密鑰不得為空")
	}
	return &Auth{secret: []byte(jwtSecret)}, nil
}

// RequireAuth 驗證 Authorization: Bearer <token>。
// 驗證通過時把 token 的 sub（使用者 ID）放進 context；
// 失敗一律回 401，不區分失敗原因。
func (m *Auth) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := extractBearerToken(r)
		if tokenString == "" {
			writeUnauthorized(w, "缺少身份驗證憑證")
			return
		}

		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("非預期的簽章方法: %v", t.Header["alg"])
			}
			return m.secret, nil
		})
		if err != nil || !token.Valid {
			log.Printf("警告：[Auth] JWT 驗證失敗: %v\n", err)
			writeUnauthorized(w, "無效的身份驗證憑證")
			return
		}

		userID, err := token.Claims.GetSubject()
		if err != nil || userID == "" {
			log.Printf("警告：[Auth] JWT 缺少 sub claim: %v\n", err)
			writeUnauthorized(w, "無效的身份驗證憑證")
			return
		}

		ctx := context.WithValue(r.Context(), ContextUserID, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserIDFromContext 從 request context 取出已驗證的使用者 ID。
// 未經過 RequireAuth 的請求回傳空字串。
func UserIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(ContextUserID).(string); ok {
		return v
	}
	return ""
}

func extractBearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}

func writeUnauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
