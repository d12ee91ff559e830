package seeddata

import _ "embed"

//go:embed users.json
var UsersJSON []byte
