// Command pitching-report generates a multi-start pitching report document
// from a YAML configuration file.
package main

import (
	"flag"
	"log"

	"github.com/banshee-data/pitching.report/internal/builder"
)

var configPath = flag.String("config", "config/report_config.yaml", "Path to the report configuration YAML file")

func main() {
	flag.Parse()

	if err := builder.Run(*configPath); err != nil {
		log.Fatalf("pitching-report: %v", err)
	}
}
