package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"gridio/config"
	"gridio/logger"
	"gridio/pipeline"
)

const usage = `usage: gridio [-config path] <command> [arguments]

commands:
  production  <day>              fetch one day of production volumes
  consumption <day>              fetch one day of consumption volumes
  prices      <day>              fetch one day of price components
  frequency   [-input path] [-output-root path]
                                 split the combined frequency export by day
  all         <start_day> [end_day]
                                 run all three domains over a day range

days are yyyy-mm-dd, interpreted in Europe/Stockholm.
`

func main() {
	log := logger.GetLogger()

	// Load environment variables from .env if present
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.WithError(err).Warn("Error loading .env file")
	}

	configPath := flag.String("config", "config/gridio.yml", "Path to configuration file")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.WithError(err).Error("Failed to load configuration")
		os.Exit(1)
	}

	if err := log.Configure(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output, cfg.Logging.MaxAge); err != nil {
		log.WithError(err).Error("Failed to configure logger")
		os.Exit(1)
	}

	if cfg.Metrics.CloudWatch.Enabled {
		logger.InitCloudWatch(cfg.Metrics.CloudWatch.Region, cfg.Metrics.CloudWatch.Namespace)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.WithFields(logger.Fields{
		"service": cfg.Gridio.Name,
		"version": cfg.Gridio.Version,
		"command": args[0],
	}).Info("starting gridio")

	if err := dispatch(ctx, cfg, args); err != nil {
		log.WithError(err).Error("run failed")
		os.Exit(1)
	}
}

func dispatch(ctx context.Context, cfg *config.Config, args []string) error {
	switch args[0] {
	case "production":
		day, err := dayArg(args)
		if err != nil {
			return err
		}
		return pipeline.RunProduction(ctx, cfg, day)

	case "consumption":
		day, err := dayArg(args)
		if err != nil {
			return err
		}
		return pipeline.RunConsumption(ctx, cfg, day)

	case "prices":
		day, err := dayArg(args)
		if err != nil {
			return err
		}
		return pipeline.RunPrices(ctx, cfg, day)

	case "frequency":
		fs := flag.NewFlagSet("frequency", flag.ExitOnError)
		input := fs.String("input", cfg.Frequency.Input, "Input CSV path")
		outputRoot := fs.String("output-root", cfg.Frequency.OutputRoot, "Output root directory")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		cfg.Frequency.Input = *input
		cfg.Frequency.OutputRoot = *outputRoot
		return pipeline.RunFrequency(cfg)

	case "all":
		if len(args) < 2 {
			return fmt.Errorf("all requires a start_day argument")
		}
		endDay := ""
		if len(args) > 2 {
			endDay = args[2]
		}
		return pipeline.RunAll(ctx, cfg, args[1], endDay)

	default:
		return fmt.Errorf("unknown command: %s", args[0])
	}
}

func dayArg(args []string) (string, error) {
	if len(args) < 2 {
		return "", fmt.Errorf("%s requires a day argument (yyyy-mm-dd)", args[0])
	}
	return args[1], nil
}
