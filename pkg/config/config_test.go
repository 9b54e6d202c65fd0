package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapConfigGetters(t *testing.T) {
	c := NewMapConfig(map[string]string{
		"MHS_PORT":      "9000",
		"MHS_LOG_LEVEL": "debug",
		"NOT_AN_INT":    "abc",
	})

	assert.Equal(t, "debug", c.GetKey("MHS_LOG_LEVEL"))
	assert.Equal(t, "", c.GetKey("MISSING"))
	assert.Equal(t, "memory", c.GetKeyWithDefault("MHS_STORE", "memory"))
	assert.Equal(t, 9000, c.GetIntKey("MHS_PORT"))
	assert.Equal(t, 0, c.GetIntKey("NOT_AN_INT"))
	assert.Equal(t, 3, c.GetIntKeyWithDefault("NOT_AN_INT", 3))
	assert.Equal(t, 9000, c.MustGetIntKey("MHS_PORT"))

	c.Set("MHS_STORE", "sqlite")
	assert.Equal(t, "sqlite", c.GetKeyWithDefault("MHS_STORE", "memory"))
	assert.Error(t, c.LoadFromPath("/does/not/matter"))
}

func TestDotenvConfigLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("MHS_TEST_DOTENV_PORT=8123\n"), 0600))
	t.Cleanup(func() { _ = os.Unsetenv("MHS_TEST_DOTENV_PORT") })

	c := NewDotenvConfig(path)
	require.NoError(t, c.Load())
	assert.Equal(t, 8123, c.GetIntKey("MHS_TEST_DOTENV_PORT"))
	assert.Equal(t, "8123", c.MustGetKey("MHS_TEST_DOTENV_PORT"))
}

func TestDotenvConfigBlankPathUsesEnvironment(t *testing.T) {
	t.Setenv("MHS_TEST_ENV_ONLY", "yes")

	c := NewDotenvConfig("")
	require.NoError(t, c.Load())
	assert.Equal(t, "yes", c.GetKey("MHS_TEST_ENV_ONLY"))
}

func TestDotenvConfigMissingFile(t *testing.T) {
	c := NewDotenvConfig(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, c.Load())
}

func TestViperConfigLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mhsactd.yaml")
	require.NoError(t, os.WriteFile(path, []byte("MHS_STORE: sqlite\nMHS_PORT: 8200\n"), 0600))

	c := NewViperConfig(path)
	require.NoError(t, c.Load())
	assert.Equal(t, "sqlite", c.GetKey("MHS_STORE"))
	assert.Equal(t, 8200, c.GetIntKey("MHS_PORT"))
	assert.Equal(t, "static", c.GetKeyWithDefault("MHS_STATIC_DIR", "static"))

	t.Setenv("MHS_PORT", "8300")
	assert.Equal(t, 8300, c.GetIntKey("MHS_PORT"))
}

func TestPackageLevelConfig(t *testing.T) {
	orig := GetConfig()
	t.Cleanup(func() { SetConfig(orig) })

	SetConfig(NewMapConfig(map[string]string{"MHS_TX_RETRY": "5"}))
	assert.Equal(t, 5, GetIntKeyWithDefault("MHS_TX_RETRY", 3))
	assert.Equal(t, "x", GetKeyWithDefault("MHS_MISSING", "x"))
}
