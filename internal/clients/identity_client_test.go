package clients_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/illmade-knight/place-map/internal/clients"
)

func TestIdentityClient(t *testing.T) {
	const testEmail = "ada@example.com"
	const testPassword = "correct-horse"
	ctx := context.Background()

	var revokedToken string

	// Arrange: Create a mock HTTP server to act as the identity provider
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/signin", "/v1/signup":
			var creds struct {
				Email    string `json:"email"`
				Password string `json:"password"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
			if creds.Password != testPassword {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]string{
				"userId": "user-123",
				"email":  creds.Email,
				"token":  "session-token-abc",
			})
		case "/v1/signout":
			revokedToken = r.Header.Get("Authorization")
			w.WriteHeader(http.StatusNoContent)
		default:
			http.NotFound(w, r)
		}
	}))
	defer mockServer.Close()

	client := clients.NewIdentityClient(mockServer.URL, zerolog.Nop())

	t.Run("SignIn - Success", func(t *testing.T) {
		user, err := client.SignIn(ctx, testEmail, testPassword)

		require.NoError(t, err)
		assert.Equal(t, "user-123", user.ID)
		assert.Equal(t, testEmail, user.Email)
	})

	t.Run("SignIn - Bad Credentials", func(t *testing.T) {
		_, err := client.SignIn(ctx, testEmail, "wrong")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "credentials rejected")
	})

	t.Run("SignUp - Success", func(t *testing.T) {
		user, err := client.SignUp(ctx, "new@example.com", testPassword)

		require.NoError(t, err)
		assert.Equal(t, "new@example.com", user.Email)
	})

	t.Run("SignOut - Revokes Held Token", func(t *testing.T) {
		_, err := client.SignIn(ctx, testEmail, testPassword)
		require.NoError(t, err)

		require.NoError(t, client.SignOut(ctx))
		assert.Equal(t, "Bearer session-token-abc", revokedToken)

		// A second sign-out with no token is a no-op.
		revokedToken = ""
		require.NoError(t, client.SignOut(ctx))
		assert.Empty(t, revokedToken)
	})
}
