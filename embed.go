package pagedesk

import "embed"

// EmbeddedAssets contains static assets shipped with the framework. The
// default stylesheet is served at /public/styles.css unless the static dir
// provides its own.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
