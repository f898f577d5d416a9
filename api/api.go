// Package api embeds the OpenAPI document that describes the HTTP interface.
package api

import _ "embed"

//go:embed openapi.yaml
var OpenAPI []byte
