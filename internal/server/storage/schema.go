package storage

import (
	_ "embed"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed params.schema.json
var paramsSchemaJSON string

var paramsSchema = jsonschema.MustCompileString("https://voxel-world.local/schemas/params.schema.json", paramsSchemaJSON)
