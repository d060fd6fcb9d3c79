// Command genmodels writes the four demo model files the server loads at
// startup. The parameters are fixed; nothing is trained.
package main

import (
	"flag"
	"fmt"
	"log"

	"nodeguard/config"
	"nodeguard/ml"
)

func main() {
	configArg := flag.String("config", "", "path to config.yaml (model dir and file names)")
	outDir := flag.String("out", "", "output directory, overrides the configured model dir")
	flag.Parse()

	cfg := config.Default()
	if path := config.FindConfigFile(*configArg); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
		cfg = loaded
	}
	dir := cfg.Models.Dir
	if *outDir != "" {
		dir = *outDir
	}

	specs := cfg.Models.Specs()
	if err := ml.WriteDemoModels(dir, specs); err != nil {
		log.Fatalf("failed to write models: %v", err)
	}
	for _, spec := range specs {
		fmt.Printf("%s (%s) saved to %s/%s\n", spec.Name, spec.Kind, dir, spec.File)
	}
}
