package config

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	t.Run("set variable wins over fallback", func(t *testing.T) {
		t.Setenv("TEST_CONFIG_KEY", "from-env")
		assert.Equal(t, "from-env", getEnv("TEST_CONFIG_KEY", "fallback"))
	})

	t.Run("fallback when unset", func(t *testing.T) {
		assert.Equal(t, "fallback", getEnv("TEST_CONFIG_MISSING", "fallback"))
	})

	t.Run("warns when no env file and no fallback", func(t *testing.T) {
		prev := envLoaded
		envLoaded = false
		defer func() { envLoaded = prev }()

		var buf bytes.Buffer
		orig := log.Writer()
		log.SetOutput(&buf)
		defer log.SetOutput(orig)

		assert.Equal(t, "", getEnv("TEST_CONFIG_MISSING", ""))
		assert.Contains(t, buf.String(), "TEST_CONFIG_MISSING not found")
	})

	t.Run("no warning when env file was loaded", func(t *testing.T) {
		prev := envLoaded
		envLoaded = true
		defer func() { envLoaded = prev }()

		var buf bytes.Buffer
		orig := log.Writer()
		log.SetOutput(&buf)
		defer log.SetOutput(orig)

		assert.Equal(t, "", getEnv("TEST_CONFIG_MISSING", ""))
		assert.Empty(t, buf.String())
	})
}

func TestGetEnvAsInt(t *testing.T) {
	t.Setenv("TEST_CONFIG_INT", "42")
	assert.Equal(t, 42, getEnvAsInt("TEST_CONFIG_INT", 7))

	t.Setenv("TEST_CONFIG_INT", "not-a-number")
	assert.Equal(t, 7, getEnvAsInt("TEST_CONFIG_INT", 7))

	assert.Equal(t, 7, getEnvAsInt("TEST_CONFIG_INT_MISSING", 7))
}

func TestMaskPassword(t *testing.T) {
	masked := maskPassword("host=localhost password=hunter2 dbname=app")
	assert.Equal(t, "host=localhost password=***** dbname=app", masked)

	masked = maskPassword("host=localhost password=hunter2")
	assert.Equal(t, "host=localhost password=*****", masked)

	assert.Equal(t, "host=localhost", maskPassword("host=localhost"))
}
