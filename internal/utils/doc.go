// Package utils exposes the configuration and logging helpers shared by the
// pom-audit commands.
//
// ConfigurationLoader layers embedded defaults, configuration files and
// environment variables through Viper; LoggerFactory builds zap loggers that
// write to standard error.
package utils
