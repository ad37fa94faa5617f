// Package config loads environment-based configuration into tagged structs.
//
// It combines github.com/caarlos0/env for struct parsing with
// github.com/joho/godotenv for optional .env files, so every package in this
// module can declare its own Config struct and hydrate it with a single call.
package config
