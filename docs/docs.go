// Package docs holds the OpenAPI document and the Swagger UI page served
// under /swagger.
package docs

import _ "embed"

//go:embed swagger.json
var SwaggerJSON []byte

//go:embed index.html
var IndexHTML []byte
