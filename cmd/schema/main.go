// Command schema writes the JSON schema of the civicfeed config file, used by editors and by config verification
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/invopop/jsonschema"

	"github.com/umputun/civicfeed/pkg/config"
)

func main() {
	outputPath := "pkg/config/schema.json"
	if len(os.Args) > 1 {
		outputPath = os.Args[1]
	}

	// property names follow the yaml keys users write in civicfeed.yml
	reflector := jsonschema.Reflector{FieldNameTag: "yaml"}
	schema := reflector.Reflect(&config.Config{})
	schema.Title = "civicfeed configuration"
	schema.Description = "Server, discovery, collection and sync settings with calendar sources registered on startup"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		log.Fatalf("failed to marshal schema: %v", err)
	}

	if err := os.WriteFile(outputPath, append(data, '\n'), 0o600); err != nil { //nolint:gosec // schema file is not sensitive
		log.Fatalf("failed to write schema file: %v", err)
	}

	fmt.Printf("config schema written to %s\n", outputPath)
}
