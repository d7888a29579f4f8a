package env

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	URL      string        `env:"BRAIN_URL"`
	Interval time.Duration `env:"BRAIN_STATUS_INTERVAL"`
	Enabled  bool          `env:"ENABLE_TELEGRAM"`
	Owner    int64         `env:"TELEGRAM_OWNER_ID,required"`
	Note     string        `env:"NOTE"`
	Skipped  string
	hidden   string `env:"HIDDEN"`
}

func TestMarshalEnv(t *testing.T) {
	out, err := MarshalEnv(&sample{
		URL:      "http://127.0.0.1:5000",
		Interval: 10 * time.Second,
		Enabled:  true,
		Owner:    12345,
		Note:     "two words",
		Skipped:  "ignored",
		hidden:   "ignored",
	})
	require.NoError(t, err)

	assert.Equal(t, "BRAIN_URL=http://127.0.0.1:5000\n"+
		"BRAIN_STATUS_INTERVAL=10s\n"+
		"ENABLE_TELEGRAM=true\n"+
		"TELEGRAM_OWNER_ID=12345\n"+
		"NOTE=\"two words\"\n", out)
}

func TestMarshalEnv_SkipsZeroValues(t *testing.T) {
	out, err := MarshalEnv(&sample{URL: "http://brain"})
	require.NoError(t, err)
	assert.Equal(t, "BRAIN_URL=http://brain\n", out)
}

func TestMarshalEnv_RejectsNonStruct(t *testing.T) {
	_, err := MarshalEnv(sample{})
	assert.Error(t, err)

	n := 3
	_, err = MarshalEnv(&n)
	assert.Error(t, err)
}
