package main

import (
	"context"
	"log"
	"os"

	"github.com/ahmetk3436/Daiyly-sub000/internal/buildinfo"
	"github.com/ahmetk3436/Daiyly-sub000/internal/client/cli"
	"github.com/ahmetk3436/Daiyly-sub000/internal/client/config"
	"github.com/ahmetk3436/Daiyly-sub000/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewDefaultLogger()

	app, err := cli.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)
}
