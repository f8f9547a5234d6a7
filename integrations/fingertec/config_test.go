package fingertec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("FINGERTEC_MODE", "")
	t.Setenv("FINGERTEC_IN_CODES", "")
	t.Setenv("FINGERTEC_OUT_CODES", "")

	cfg := FromEnv()
	assert.Equal(t, ModeDB, cfg.Mode)
	assert.Equal(t, "IN,I,0", cfg.InCodes)
	assert.Equal(t, "OUT,O,1", cfg.OutCodes)
}

func TestFromEnvReadsValues(t *testing.T) {
	t.Setenv("FINGERTEC_MODE", "sdk")
	t.Setenv("FINGERTEC_HOST", "10.1.2.3")
	t.Setenv("FINGERTEC_PORT", "4370")
	t.Setenv("FINGERTEC_DB_URL", "user:pass@tcp(device-db:3306)/punches")
	t.Setenv("FINGERTEC_IN_CODES", "ENTRY,E")
	t.Setenv("FINGERTEC_OUT_CODES", "EXIT,X")

	cfg := FromEnv()
	assert.Equal(t, ModeSDK, cfg.Mode)
	assert.Equal(t, "10.1.2.3", cfg.Host)
	assert.Equal(t, 4370, cfg.Port)
	assert.Equal(t, "user:pass@tcp(device-db:3306)/punches", cfg.DBURL)

	dirs := cfg.Directions()
	assert.Equal(t, DirectionIn, dirs.Resolve("entry"))
	assert.Equal(t, DirectionOut, dirs.Resolve("x"))
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, (&Config{Mode: "db"}).Validate())
	assert.NoError(t, (&Config{Mode: "sdk", Host: "h", Port: 4370}).Validate())
	assert.NoError(t, (&Config{}).Validate()) // defaults fill mode

	assert.Error(t, (&Config{Mode: "ftp"}).Validate())
	assert.Error(t, (&Config{Mode: "sdk", Port: 99999}).Validate())
}

func TestSplitCodes(t *testing.T) {
	assert.Equal(t, []string{"IN", "I", "0"}, splitCodes("IN, I ,0"))
	assert.Empty(t, splitCodes(" , ,"))
}
