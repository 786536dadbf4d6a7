// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// The server refuses to start without a signing secret, without at least
// one transport address, without a database and without a blob backend.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.TokenSignKey == "" {
		return fmt.Errorf("%w: token sign key is required", ErrInvalidAppConfigs)
	}
	if cfg.App.TokenDuration <= 0 {
		return fmt.Errorf("%w: token duration must be positive", ErrInvalidAppConfigs)
	}
	if cfg.App.KDFConcurrency < 1 {
		return fmt.Errorf("%w: kdf concurrency must be positive", ErrInvalidAppConfigs)
	}

	if cfg.Server.HTTPAddress == "" && cfg.Server.GRPCAddress == "" {
		return fmt.Errorf("%w: http or grpc address is required", ErrInvalidServerConfigs)
	}

	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: database DSN is required", ErrInvalidStorageConfigs)
	}
	if cfg.Storage.DB.Driver != DriverPostgres && cfg.Storage.DB.Driver != DriverSQLite {
		return fmt.Errorf("%w: unknown database driver %q", ErrInvalidStorageConfigs, cfg.Storage.DB.Driver)
	}
	if cfg.Storage.Files.BinaryDataDir == "" && cfg.Storage.S3.Bucket == "" {
		return fmt.Errorf("%w: blob directory or S3 bucket is required", ErrInvalidStorageConfigs)
	}
	if cfg.Storage.QuotaBytes < 0 {
		return fmt.Errorf("%w: quota must be positive", ErrInvalidStorageConfigs)
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.ServerURL == "" || cfg.RequestTimeout <= 0 {
		return fmt.Errorf("%w: server url and request timeout are required", ErrInvalidClientConfigs)
	}
	if cfg.TokenFile == "" {
		return fmt.Errorf("%w: token file is required", ErrInvalidClientConfigs)
	}

	return nil
}
