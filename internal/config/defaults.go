// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"runtime"
	"strings"
	"time"
)

const (
	DefaultTokenIssuer    = "file-vault-api"
	DefaultTokenDuration  = 24 * time.Hour
	DefaultQuotaBytes     = int64(100) << 30 // 100 GiB
	DefaultMaxUploadBytes = int64(512) << 20 // 512 MiB
	DefaultRequestTimeout = time.Minute
	DefaultVersion        = "N/A"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// setDefaults fills the fields no source has set.
func (cfg *StructuredConfig) setDefaults() {
	if cfg.App.TokenIssuer == "" {
		cfg.App.TokenIssuer = DefaultTokenIssuer
	}
	if cfg.App.TokenDuration == 0 {
		cfg.App.TokenDuration = DefaultTokenDuration
	}
	if cfg.App.KDFConcurrency == 0 {
		cfg.App.KDFConcurrency = runtime.NumCPU()
	}
	if cfg.App.Version == "" {
		cfg.App.Version = DefaultVersion
	}

	if cfg.Storage.QuotaBytes == 0 {
		cfg.Storage.QuotaBytes = DefaultQuotaBytes
	}
	if cfg.Storage.DB.Driver == "" {
		cfg.Storage.DB.Driver = detectDriver(cfg.Storage.DB.DSN)
	}

	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Server.MaxUploadBytes == 0 {
		cfg.Server.MaxUploadBytes = DefaultMaxUploadBytes
	}
}

// detectDriver guesses the database backend from the DSN.
func detectDriver(dsn string) string {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") ||
		strings.Contains(dsn, "host=") {
		return DriverPostgres
	}
	if dsn == "" {
		return ""
	}
	return DriverSQLite
}
