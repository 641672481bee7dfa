package main

import (
	"context"
	"fmt"
	"os"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	flag "github.com/spf13/pflag"

	"github.com/hoyle1974/openings"
	"github.com/hoyle1974/openings/config"
	"github.com/hoyle1974/openings/storage"
	"github.com/hoyle1974/openings/telemetry"
)

func main() {
	configPath := flag.StringP("config", "c", "", "Optional yaml config file")
	source := flag.StringP("source", "s", "", "Where the log lives: disk or s3")
	uri := flag.StringP("uri", "u", ".", "Base directory (disk) or bucket (s3)")
	key := flag.StringP("key", "k", "", "Key of the openings log")
	hive := flag.IntP("hive", "n", 0, "Hive number to query")
	from := flag.String("from", "", "Window start (RFC3339)")
	to := flag.String("to", "", "Window end (RFC3339)")
	at := flag.String("at", "", "Single timestamp to check (RFC3339)")
	recovery := flag.Int("recovery", 0, "Recovery minutes after an opening")
	strict := flag.Bool("strict", false, "Fail on malformed log lines")
	verbose := flag.BoolP("verbose", "v", false, "Log loader activity to stderr")

	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	}
	if *source != "" {
		cfg.Source = *source
	}
	if *key != "" {
		cfg.OpeningsLogPath = *key
	}
	if *recovery != 0 {
		cfg.RecoveryMinutes = *recovery
	}
	if *strict {
		cfg.Strict = true
	}

	var store storage.System
	switch cfg.Source {
	case "disk":
		store = storage.NewDiskStorage(*uri)
	case "s3":
		awscfg, err := awsconfig.LoadDefaultConfig(context.Background(),
			awsconfig.WithRegion(cfg.S3.Region))
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		bucket := cfg.S3.Bucket
		if bucket == "" {
			bucket = *uri
		}
		store = storage.NewS3Storage(s3.NewFromConfig(awscfg), bucket)
	default:
		fmt.Printf("unsupported storage source: %s\n", cfg.Source)
		os.Exit(1)
	}

	loc, err := cfg.Location()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	loader := openings.NewLoader(store)
	loader.Location = loc
	loader.Strict = cfg.Strict
	if *verbose {
		loader.Logger = telemetry.StderrLogger{}
	}

	table, err := loader.Load(context.Background(), cfg.OpeningsLogPath)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Loaded %d openings for hives %v\n", table.Len(), table.Hives())

	if *at != "" {
		ts, err := time.Parse(time.RFC3339, *at)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		ok, err := table.IsValid(ts, *hive, cfg.Recovery())
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		if ok {
			fmt.Printf("%v is valid for hive %d\n", ts, *hive)
		} else {
			fmt.Printf("%v is invalid for hive %d\n", ts, *hive)
		}
		return
	}

	if *from != "" && *to != "" {
		start, err := time.Parse(time.RFC3339, *from)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		end, err := time.Parse(time.RFC3339, *to)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		intervals, err := table.InvalidIntervals(start, end, *hive, cfg.Recovery())
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Invalid intervals for hive %d from %v to %v:\n", *hive, start, end)
		for _, iv := range intervals {
			fmt.Printf("	%v - %v\n", iv.Start, iv.End)
		}
		return
	}
}
