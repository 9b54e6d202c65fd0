package config

import (
	"testing"

	"github.com/mergington/activities/pkg/config"
	"github.com/stretchr/testify/assert"
)

func TestGetTxRetry(t *testing.T) {
	orig := config.GetConfig()
	t.Cleanup(func() { config.SetConfig(orig) })

	tests := []struct {
		value string
		want  int
	}{
		{value: "", want: 3},
		{value: "1", want: 3},
		{value: "7", want: 7},
		{value: "abc", want: 3},
	}

	for _, test := range tests {
		config.SetConfig(config.NewMapConfig(map[string]string{"MHS_TX_RETRY": test.value}))
		assert.Equalf(t, test.want, GetTxRetry(), "MHS_TX_RETRY=%q", test.value)
	}
}
