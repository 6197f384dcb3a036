// Command compare runs one comparison from the command line: it extracts a
// graph from an e-contract text file and a Solidity file, compares them and
// writes the report to stdout.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/lexbridge/lexbridge/internal/config"
	"github.com/lexbridge/lexbridge/internal/core"
	"github.com/lexbridge/lexbridge/internal/export"
	"github.com/lexbridge/lexbridge/internal/extract"
	"github.com/lexbridge/lexbridge/internal/platform/logger"
)

func main() {
	var (
		contractPath = flag.String("econtract", "", "path to the e-contract text file")
		solidityPath = flag.String("solidity", "", "path to the Solidity source file")
		configPath   = flag.String("config", "", "optional path to a TOML config file")
		format       = flag.String("format", "json", "output format: json or csv")
	)
	flag.Parse()

	if *contractPath == "" || *solidityPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}

	lg, err := logger.New("release")
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer lg.Sync()

	contractText, err := os.ReadFile(*contractPath)
	if err != nil {
		lg.Fatal("failed to read e-contract file", "path", *contractPath, "error", err)
	}
	solidityCode, err := os.ReadFile(*solidityPath)
	if err != nil {
		lg.Fatal("failed to read Solidity file", "path", *solidityPath, "error", err)
	}

	source, err := extract.NewEContractExtractor().Extract(string(contractText))
	if err != nil {
		lg.Fatal("e-contract extraction failed", "error", err)
	}
	target, err := extract.NewSolidityExtractor().Extract(string(solidityCode))
	if err != nil {
		lg.Fatal("Solidity extraction failed", "error", err)
	}

	source = extract.Dedupe(source)
	target = extract.Dedupe(target)

	report, err := core.NewComparator(cfg, lg).Compare(source, target)
	if err != nil {
		lg.Fatal("comparison failed", "error", err)
	}

	switch *format {
	case "json":
		err = export.WriteJSON(os.Stdout, report)
	case "csv":
		err = export.WriteCSV(os.Stdout, report)
	default:
		lg.Fatal("unknown output format", "format", *format)
	}
	if err != nil {
		lg.Fatal("failed to write report", "error", err)
	}
}
