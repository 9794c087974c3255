package config

import _ "embed"

// defaultConfig holds the built-in defaults, loaded before any user
// configuration so every key has a value.
//
//go:embed dotstow.toml
var defaultConfig []byte
