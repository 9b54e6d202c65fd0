package config

import (
	"github.com/mergington/activities/pkg/config"
)

const minTxRetry = 3

// GetTxRetry returns MHS_TX_RETRY, never less than minTxRetry.
func GetTxRetry() int {
	txRetry := config.GetIntKeyWithDefault("MHS_TX_RETRY", minTxRetry)
	if txRetry < minTxRetry {
		return minTxRetry
	}

	return txRetry
}
