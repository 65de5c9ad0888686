package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"giftly-be/internal/user"
	"giftly-be/internal/utils"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func invoke(t *testing.T, mw echo.MiddlewareFunc, req *http.Request, next echo.HandlerFunc) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	err := mw(next)(c)
	return rec, err
}

func okHandler(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func TestAuth(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "testsecret")

	t.Run("MissingTokenPassesAnonymous", func(t *testing.T) {
		var sawUser bool
		req := httptest.NewRequest(http.MethodGet, "/products", nil)

		_, err := invoke(t, Auth(), req, func(c echo.Context) error {
			_, sawUser = utils.GetUserIDFromContext(c.Request().Context())
			return c.NoContent(http.StatusOK)
		})

		require.NoError(t, err)
		assert.False(t, sawUser)
	})

	t.Run("ValidTokenSetsIdentity", func(t *testing.T) {
		storeID := "st-1"
		token, err := user.GenerateJWT("u-1", "vendor", "vendor@example.com", &storeID)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/vendor/store", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		var gotID, gotRole, gotStore string
		_, err = invoke(t, Auth(), req, func(c echo.Context) error {
			ctx := c.Request().Context()
			gotID, _ = utils.GetUserIDFromContext(ctx)
			gotRole = utils.GetUserRoleFromContext(ctx)
			gotStore, _ = utils.GetStoreIDFromContext(ctx)
			return c.NoContent(http.StatusOK)
		})

		require.NoError(t, err)
		assert.Equal(t, "u-1", gotID)
		assert.Equal(t, "vendor", gotRole)
		assert.Equal(t, "st-1", gotStore)
	})

	t.Run("GarbageTokenPassesAnonymous", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/products", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")

		var sawUser bool
		_, err := invoke(t, Auth(), req, func(c echo.Context) error {
			_, sawUser = utils.GetUserIDFromContext(c.Request().Context())
			return c.NoContent(http.StatusOK)
		})

		require.NoError(t, err)
		assert.False(t, sawUser)
	})
}

func TestRequireAuth(t *testing.T) {
	t.Run("Anonymous", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/cart", nil)

		_, err := invoke(t, RequireAuth(), req, okHandler)

		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
	})

	t.Run("Authenticated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/cart", nil)
		ctx := utils.SetUserContext(req.Context(), "u-1", "user@example.com", "user", nil)
		req = req.WithContext(ctx)

		_, err := invoke(t, RequireAuth(), req, okHandler)
		assert.NoError(t, err)
	})
}

func TestRequireRole(t *testing.T) {
	withRole := func(role string) *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/admin/stores/st-1/approve", nil)
		ctx := utils.SetUserContext(req.Context(), "u-1", "user@example.com", role, nil)
		return req.WithContext(ctx)
	}

	t.Run("Allowed", func(t *testing.T) {
		_, err := invoke(t, RequireRole("admin"), withRole("admin"), okHandler)
		assert.NoError(t, err)
	})

	t.Run("WrongRole", func(t *testing.T) {
		_, err := invoke(t, RequireRole("admin"), withRole("user"), okHandler)

		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusForbidden, httpErr.Code)
	})

	t.Run("Anonymous", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/admin/stores/st-1/approve", nil)

		_, err := invoke(t, RequireRole("admin"), req, okHandler)

		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
	})

	t.Run("MultipleRoles", func(t *testing.T) {
		_, err := invoke(t, RequireRole("vendor", "admin"), withRole("vendor"), okHandler)
		assert.NoError(t, err)
	})
}
