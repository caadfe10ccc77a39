package daylog

import "embed"

// EmbeddedAssets contains the default stylesheet served at
// /public/style.css and copied into static exports.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
