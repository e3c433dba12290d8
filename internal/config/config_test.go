package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SECRET_KEY", "secret-dev")
	opts, err := Load([]string{}, filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, 3001, opts.Port)
	assert.Equal(t, 12, opts.BcryptCost)
	assert.Equal(t, time.Duration(0), opts.TokenTTL)
	assert.Equal(t, []string{"*"}, opts.CORSOrigins)
	assert.Equal(t, 10, opts.DB.MaxOpenConns)
	assert.False(t, opts.Migrate)
}

func TestLoad_EnvFileAndFlags(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("SECRET_KEY=from-env-file\nBCRYPT_COST=4\nTOKEN_TTL=1h\n"), 0o600))
	t.Cleanup(func() {
		for _, k := range []string{"SECRET_KEY", "BCRYPT_COST", "TOKEN_TTL"} {
			_ = os.Unsetenv(k)
		}
	})

	opts, err := Load([]string{"--port=8080", "--migrate", "--cors-origin=http://a.com", "--cors-origin=http://b.com"}, envFile)
	require.NoError(t, err)
	assert.Equal(t, "from-env-file", opts.Secret)
	assert.Equal(t, 4, opts.BcryptCost)
	assert.Equal(t, time.Hour, opts.TokenTTL)
	assert.Equal(t, 8080, opts.Port)
	assert.True(t, opts.Migrate)
	assert.Equal(t, []string{"http://a.com", "http://b.com"}, opts.CORSOrigins)
}

func TestValidate(t *testing.T) {
	opts := Options{Secret: "short", Port: 0, BcryptCost: 40, DatabaseURL: "postgres://x"}
	err := opts.Validate()
	require.Error(t, err)
	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	assert.Len(t, merr.Errors, 3)

	opts = Options{Port: 3001, BcryptCost: 12, DatabaseURL: "postgres://x"}
	err = opts.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "secret is required")

	opts = Options{Secret: "long-enough", Port: 3001, BcryptCost: 12, DatabaseURL: "postgres://x"}
	assert.NoError(t, opts.Validate())
}
