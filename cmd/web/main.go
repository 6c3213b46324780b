package main

import (
	"fmt"
	"net"
	"os"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/de-tools/aml-scan/pkg/server"
	"github.com/de-tools/aml-scan/pkg/services/credentials"
	"github.com/de-tools/aml-scan/pkg/services/discovery"
	"github.com/de-tools/aml-scan/pkg/services/scan"
	"github.com/de-tools/aml-scan/pkg/store/azureml"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for the ML deprecation scanner",
		RunE:  runServer,
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	scanner := scan.NewService(
		credentials.NewInteractiveProvider(),
		discovery.NewExplorer,
		func(cred azcore.TokenCredential) (scan.Connector, error) {
			client, err := azureml.NewClient(cred, nil)
			if err != nil {
				return nil, err
			}
			return scan.NewARMConnector(client), nil
		},
		1,
	)

	host := os.Getenv("SERVER_HOST")
	port := os.Getenv("SERVER_PORT")

	if host == "" || port == "" {
		logger.Error().Msgf("Missing server configuration from .env file")
		os.Exit(1)
	}

	api := server.NewWebAPI(server.Config{
		Addr: net.JoinHostPort(host, port),
		Dependencies: server.Dependencies{
			Scanner: scanner,
			Logger:  logger,
		},
	})

	return api.Start()
}
