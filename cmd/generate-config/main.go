package main

import (
	"fmt"
	"os"

	"github.com/debemdeboas/inkwell/internal/config"
	"gopkg.in/yaml.v3"
)

const header = `# inkwell configuration example
# Copy this file to config.yaml and customize as needed.
# Secrets (ADMIN_PASSWORD, JWT_SECRET, S3_ACCESS_KEY_ID, S3_SECRET_ACCESS_KEY) are read from the
# environment only.

`

func main() {
	out, err := render()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating YAML: %v\n", err)
		os.Exit(1)
	}

	outputFile := "config.example.yaml"
	if len(os.Args) > 1 {
		outputFile = os.Args[1]
	}

	if outputFile == "-" {
		fmt.Print(string(out))
		return
	}

	if err := os.WriteFile(outputFile, out, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generated example config: %s\n", outputFile)
}

func render() ([]byte, error) {
	yamlData, err := yaml.Marshal(config.Default())
	if err != nil {
		return nil, err
	}
	return append([]byte(header), yamlData...), nil
}
