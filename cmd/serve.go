package cmd

import (
	"context"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/hh-advisor/internal/logger"
	"github.com/spigell/hh-advisor/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the recommendation API over HTTP",
	Run: func(_ *cobra.Command, _ []string) {
		serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntP("port", "p", 0, "port to listen on (default is 8080)")

	viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
}

func serve() {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the hh-advisor", zap.String("version", version))

	chain, store, limits, err := buildAdvisor(ctx, logger, config)
	if err != nil {
		logger.Fatal("building the recommendation chain", zap.Error(err))
	}
	defer store.Stop()

	serverCfg := server.Config{}
	if config.Server != nil {
		serverCfg = *config.Server
	}
	if port := viper.GetInt("server.port"); port > 0 {
		serverCfg.Port = port
	}

	srv := server.New(logger, chain, store, limits, serverCfg)
	if err := srv.Start(); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}
