// Package config handles configuration loading, parsing, and validation
// from environment variables and an optional config file. It provides
// type-safe access to the settings needed by the server, the database
// layer, the auth middleware, and the Gemini integration.
package config
