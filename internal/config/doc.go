// Package config provides configuration loading, merging, and validation
// facilities for the application.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Built-in defaults
//  2. A .env file in the working directory (exported into the environment)
//  3. JSON config file
//  4. Environment variables prefixed with PTS_
//  5. Command-line flags
//
// The main entry point is [GetStructuredConfig].
package config
