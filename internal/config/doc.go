// Package config provides configuration loading, merging, and validation
// facilities for the loopp client.
//
// Configuration is assembled from multiple sources in the following priority
// order (earlier sources win over later ones for non-zero fields):
//  1. Command-line flags
//  2. Environment variables (a .env file is loaded first when present)
//  3. JSON config file
//  4. Built-in defaults
//
// The main entry points are [GetStructuredConfig] for the raw merged
// configuration and [GetClientConfig] for the validated client view.
package config
