package middleware

import (
	"context"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
)

// HeaderTenantID заголовок с идентификатором тенанта
const HeaderTenantID = "X-Tenant-ID"

const msgMissingTenantID = "отсутствует идентификатор тенанта"

type contextKey string

const tenantIDKey contextKey = "tenantID"

// TenantAuth извлекает идентификатор тенанта из заголовка и кладёт его
// в контекст запроса. Запросы без тенанта отклоняются.
func TenantAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tenantID := r.Header.Get(HeaderTenantID)
		if tenantID == "" {
			handlers.RespondUnauthorized(w, msgMissingTenantID)
			return
		}

		ctx := context.WithValue(r.Context(), tenantIDKey, tenantID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetTenantID извлекает идентификатор тенанта из контекста
func GetTenantID(ctx context.Context) (string, bool) {
	tenantID, ok := ctx.Value(tenantIDKey).(string)
	return tenantID, ok
}
