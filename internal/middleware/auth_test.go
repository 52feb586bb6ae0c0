package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", RequireAuth(), func(c *gin.Context) {
		id := CurrentIdentity(c)
		c.JSON(http.StatusOK, gin.H{"id": id.ID, "username": id.Username, "role": id.Role})
	})
	return r
}

func doRequest(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth_ValidToken(t *testing.T) {
	r := newAuthRouter()

	token, err := SignToken("user-1", "jdoe", "staff")
	require.NoError(t, err)

	w := doRequest(r, "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"jdoe"`)
	assert.Contains(t, w.Body.String(), `"role":"staff"`)
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	w := doRequest(newAuthRouter(), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_WrongScheme(t *testing.T) {
	token, err := SignToken("user-1", "jdoe", "staff")
	require.NoError(t, err)

	w := doRequest(newAuthRouter(), "Basic "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_TamperedToken(t *testing.T) {
	r := newAuthRouter()

	token, err := SignToken("user-1", "jdoe", "staff")
	require.NoError(t, err)

	// Flipping any single character must invalidate the token.
	for _, i := range []int{0, len(token) / 2, len(token) - 1} {
		mutated := []byte(token)
		if mutated[i] == 'a' {
			mutated[i] = 'b'
		} else {
			mutated[i] = 'a'
		}
		w := doRequest(r, "Bearer "+string(mutated))
		assert.Equal(t, http.StatusUnauthorized, w.Code, "mutation at index %d", i)
	}
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	now := time.Now()
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      "user-1",
		"username": "jdoe",
		"role":     "staff",
		"iat":      now.Add(-48 * time.Hour).Unix(),
		"exp":      now.Add(-24 * time.Hour).Unix(),
	})
	tokenString, err := expired.SignedString(GetJWTSecret())
	require.NoError(t, err)

	w := doRequest(newAuthRouter(), "Bearer "+tokenString)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_UnsignedToken(t *testing.T) {
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub":  "user-1",
		"role": "admin",
	})
	tokenString, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	w := doRequest(newAuthRouter(), "Bearer "+tokenString)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSignTokenRoundTrip(t *testing.T) {
	token, err := SignToken("user-42", "maria", "manager")
	require.NoError(t, err)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", claims["sub"])
	assert.Equal(t, "maria", claims["username"])
	assert.Equal(t, "manager", claims["role"])

	exp, ok := claims["exp"].(float64)
	require.True(t, ok)
	assert.InDelta(t, time.Now().Add(TokenExpiry).Unix(), int64(exp), 5)
}
