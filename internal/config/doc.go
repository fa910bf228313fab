// Package config provides configuration loading, merging, and validation
// facilities for ironlog.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources fill gaps left by earlier ones):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//
// The main entry points are [GetClientConfig] for the client binary and
// [GetServerConfig] for the development remote backend.
package config
