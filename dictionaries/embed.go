// Package dictionaries embeds the default coding taxonomy shipped with the
// binary. The es/ directory holds the Spanish securitization dictionary set,
// one YAML file per group, numbered for reporting order.
package dictionaries

import "embed"

//go:embed es/*.yaml
var FS embed.FS
