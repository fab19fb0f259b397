// ToyVerse - Toy Store Recommendation Service
// Copyright 2026 Armaghan195
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Armaghan195/ToyVerse

/*
Package config loads ToyVerse configuration with Koanf v2.

Sources, lowest priority first:

  - Built-in defaults (defaultConfig)
  - YAML file: CONFIG_PATH, else config.yaml / config.yml / /etc/toyverse/config.yaml
  - Environment variables, through an explicit mapping table

Commonly used environment variables:

	HTTP_PORT                 server.port (default 8000)
	DUCKDB_PATH               database.path
	SEED_CATALOG              database.seed_catalog
	AUTH_MODE                 security.auth_mode (jwt | none)
	JWT_SECRET                security.jwt_secret (32+ chars in jwt mode)
	CORS_ORIGINS              security.cors_origins (comma-separated)
	LOG_LEVEL, LOG_FORMAT     logging.level, logging.format
	RECOMMEND_HISTORY_LIMIT   recommend.history_limit (default 50)
	NATS_URL                  events.nats_url (requires -tags nats)

Example config.yaml:

	server:
	  port: 8000
	database:
	  path: /data/toyverse.duckdb
	security:
	  auth_mode: jwt
	  cors_origins: ["https://toyverse.example"]
	recommend:
	  default_limit: 20
*/
package config
