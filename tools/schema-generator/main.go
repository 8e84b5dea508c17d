package main

import (
	"encoding/json"
	"log"
	"os"

	"github.com/invopop/jsonschema"

	"autotranscription/internal/transcript"
)

// Regenerates transcription-result.schema.json, the machine-checkable form of
// the output document contract.
func main() {
	r := &jsonschema.Reflector{
		ExpandedStruct: true,
	}

	schema := r.Reflect(&transcript.Result{})
	schema.Title = "Transcription Result"
	schema.Description = "Word-level timestamped transcription with confidence scores."

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		log.Fatalf("Error marshaling schema: %v", err)
	}

	if err := os.WriteFile("transcription-result.schema.json", data, 0o644); err != nil {
		log.Fatalf("Error writing schema file: %v", err)
	}

	log.Printf("Successfully generated transcription-result.schema.json")
}
