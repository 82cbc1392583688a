// Package models embeds the reference artifact set for the Palmer penguins.
package models

import "embed"

// FS holds every reference artifact document at its default storage key.
//
//go:embed *.json
var FS embed.FS
