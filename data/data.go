// Package data embeds the bank and branch source snapshot that the generated
// lookup tables are built from. The layout is the one internal/source reads:
// banks.json plus one branches/<bankCode>.json per bank.
package data

import "embed"

// FS holds banks.json and the branches directory.
//
//go:embed banks.json branches/*.json
var FS embed.FS
