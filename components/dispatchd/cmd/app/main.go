package main

import (
	"context"

	"github.com/LerianStudio/mdispatch/common"
	chttp "github.com/LerianStudio/mdispatch/common/net/http"
	"github.com/LerianStudio/mdispatch/common/mzap"
	"github.com/LerianStudio/mdispatch/components/dispatchd/internal/bootstrap"
)

func main() {
	common.InitLocalEnvConfig()

	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		panic(err)
	}

	if err := chttp.ValidateStruct(cfg); err != nil {
		panic(err)
	}

	logger := mzap.InitializeLogger()
	defer func() {
		if err := logger.Sync(); err != nil {
			logger.Errorf("failed to sync logger: %v", err)
		}
	}()

	ctx := common.ContextWithLogger(context.Background(), logger)

	ms, gateway, err := bootstrap.BuildMessageSystem(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("failed to build message system: %v", err)
	}

	server := bootstrap.NewServer(cfg, logger, ms, gateway)

	common.NewLauncher(
		common.WithLogger(logger),
		common.RunApp("HTTP Gateway", server),
	).Run()
}
