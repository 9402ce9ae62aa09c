/*
 * Copyright 2025 eino-oracle23ai Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package oraclevs

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	go_ora "github.com/sijms/go-ora/v2"
)

// ConnectionConfig describes how to reach an Oracle database, including
// wallet-based Autonomous Database connections.
type ConnectionConfig struct {
	// User is the database user, e.g. "ADMIN".
	User string
	// Password is the database user's password.
	Password string

	// Host is the database listener host.
	Host string
	// Port is the listener port, e.g. 1521 or 1522.
	Port int
	// Service is the database service name, e.g. "myatp_high".
	Service string

	// WalletLocation is the directory holding the unzipped ADB wallet.
	// Optional; when set, the connection uses TLS with the wallet.
	WalletLocation string
	// WalletPassword is the wallet's password.
	// Optional.
	WalletPassword string
	// SSLVerify controls server certificate verification.
	// Optional. Default false (ADB wallets pin their own certificates).
	SSLVerify bool
}

// BuildDSN renders a go-ora connection URL from the configuration.
func BuildDSN(config *ConnectionConfig) string {
	options := map[string]string{}
	if config.WalletLocation != "" {
		options["SSL"] = "enable"
		options["SSL VERIFY"] = strconv.FormatBool(config.SSLVerify)
		options["WALLET"] = config.WalletLocation
		if config.WalletPassword != "" {
			options["WALLET PASSWORD"] = config.WalletPassword
		}
	}

	return go_ora.BuildUrl(config.Host, config.Port, config.Service, config.User, config.Password, options)
}

// Connect opens a database handle with the go-ora driver and verifies
// connectivity. The caller owns the returned handle.
func Connect(ctx context.Context, config *ConnectionConfig) (*sql.DB, error) {
	db, err := sql.Open("oracle", BuildDSN(config))
	if err != nil {
		return nil, fmt.Errorf("[Connect] failed to open database: %w", err)
	}

	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("[Connect] failed to ping database: %w", err)
	}

	return db, nil
}
