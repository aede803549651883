package cli

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/stakelab-io/staking-pool-engine/internal/api"
	"github.com/stakelab-io/staking-pool-engine/internal/clients/authclient"
	"github.com/stakelab-io/staking-pool-engine/internal/clients/tokenclient"
	"github.com/stakelab-io/staking-pool-engine/internal/config"
	"github.com/stakelab-io/staking-pool-engine/internal/db"
	dbmodel "github.com/stakelab-io/staking-pool-engine/internal/db/model"
	"github.com/stakelab-io/staking-pool-engine/internal/observability/metrics"
	"github.com/stakelab-io/staking-pool-engine/internal/observability/tracing"
	"github.com/stakelab-io/staking-pool-engine/internal/queue"
	"github.com/stakelab-io/staking-pool-engine/internal/services"
)

func StartServerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start-server",
		Short: "Starts the staking pool engine server",
		Args:  cobra.ExactArgs(0),
		RunE:  startServer,
	}

	return cmd
}

func startServer(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	ctx = tracing.InjectTraceID(ctx)
	log := log.Ctx(ctx)

	// load config
	cfgPath := GetConfigPath()
	cfg, err := config.New(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg(fmt.Sprintf("error while loading config file: %s", cfgPath))
	}

	err = dbmodel.Setup(ctx, &cfg.Db)
	if err != nil {
		log.Fatal().Err(err).Msg("error while setting up staking db model")
	}

	// create new db client
	var dbClient db.DbInterface
	dbClient, err = db.New(ctx, cfg.Db)
	if err != nil {
		log.Fatal().Err(err).Msg("error while creating db client")
	}
	dbClient = db.NewDbWithMetrics(dbClient)

	qm, err := queue.NewQueueManager(&cfg.Queue)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize queue manager")
	}
	defer qm.Shutdown()

	var tokenClient tokenclient.TokenInterface
	tokenClient = tokenclient.NewTokenClient(&cfg.Token)
	tokenClient = tokenclient.NewTokenClientWithMetrics(tokenClient)

	authClient := authclient.NewClient(&cfg.Auth)

	service := services.NewService(cfg, dbClient, tokenClient, authClient, qm)

	// initialize metrics with the metrics port from config
	metricsPort := cfg.Metrics.GetMetricsPort()
	metrics.Init(metricsPort)

	server := api.New(&cfg.Server, service)
	return server.Start()
}
