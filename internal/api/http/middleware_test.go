package http

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Alceujrab/sisloc-sub000/internal/security"
)

const testSecret = "unit-test-secret-with-enough-length"

func TestAuthMiddleware(t *testing.T) {
	tokens := security.NewTokenManager(testSecret)
	var seen *security.UserClaims
	handler := AuthMiddleware(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = claimsFrom(r)
		w.WriteHeader(http.StatusNoContent)
	}))

	t.Run("Valid Token Reaches Handler", func(t *testing.T) {
		seen = nil
		token, err := tokens.GenerateAccessToken(42, "user@example.com", []string{"customer"})
		assert.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/reservations", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		if assert.NotNil(t, seen) {
			assert.Equal(t, int32(42), seen.UserID)
		}
	})

	t.Run("Missing Header", func(t *testing.T) {
		seen = nil
		req := httptest.NewRequest(http.MethodGet, "/api/v1/reservations", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Nil(t, seen)
	})

	t.Run("Garbage Token", func(t *testing.T) {
		seen = nil
		req := httptest.NewRequest(http.MethodGet, "/api/v1/reservations", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Nil(t, seen)
	})
}

func TestAdminOnly(t *testing.T) {
	tokens := security.NewTokenManager(testSecret)
	handler := AuthMiddleware(tokens)(AdminOnly(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	request := func(roles []string) *httptest.ResponseRecorder {
		token, err := tokens.GenerateAccessToken(1, "ops@example.com", roles)
		assert.NoError(t, err)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations/3/checkin", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	t.Run("Admin Passes", func(t *testing.T) {
		assert.Equal(t, http.StatusNoContent, request([]string{"admin"}).Code)
	})

	t.Run("Customer Forbidden", func(t *testing.T) {
		assert.Equal(t, http.StatusForbidden, request([]string{"customer"}).Code)
	})
}

func TestPagination(t *testing.T) {
	get := func(query string) (int32, int32) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/reservations"+query, nil)
		return pagination(req)
	}

	t.Run("Defaults", func(t *testing.T) {
		page, pageSize := get("")
		assert.Equal(t, int32(1), page)
		assert.Equal(t, int32(20), pageSize)
	})

	t.Run("Explicit Values", func(t *testing.T) {
		page, pageSize := get("?page=3&page_size=50")
		assert.Equal(t, int32(3), page)
		assert.Equal(t, int32(50), pageSize)
	})

	t.Run("Page Capped", func(t *testing.T) {
		page, _ := get("?page=" + strconv.FormatInt(int64(1)<<40, 10))
		assert.Equal(t, int32(maxPage), page)
		// The repository OFFSET must stay positive.
		assert.GreaterOrEqual(t, (page-1)*100, int32(0))
	})

	t.Run("Oversized Page Size Ignored", func(t *testing.T) {
		_, pageSize := get("?page_size=5000")
		assert.Equal(t, int32(20), pageSize)
	})

	t.Run("Garbage Ignored", func(t *testing.T) {
		page, pageSize := get("?page=abc&page_size=-1")
		assert.Equal(t, int32(1), page)
		assert.Equal(t, int32(20), pageSize)
	})
}
