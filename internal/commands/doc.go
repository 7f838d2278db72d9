// Package commands provides the command-line interface for the aesctr tool.
//
// It implements commands for:
//   - encryption
//   - decryption
//   - key and IV generation
//   - cipher self-tests
//
// The package handles command-line parsing, configuration validation,
// and environment variable binding through cobra and viper.
package commands
