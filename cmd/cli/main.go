package main

import (
	"fmt"
	"os"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"

	"github.com/de-tools/aml-scan/pkg/runtime/terminal"
	"github.com/de-tools/aml-scan/pkg/runtime/terminal/commands"
	"github.com/de-tools/aml-scan/pkg/services/credentials"
	"github.com/de-tools/aml-scan/pkg/services/discovery"
	"github.com/de-tools/aml-scan/pkg/services/scan"
	"github.com/de-tools/aml-scan/pkg/store/azureml"
)

func main() {
	cli := terminal.NewCLI(terminal.Options{
		Deps: commands.Deps{
			Credentials: credentials.NewInteractiveProvider(),
			NewExplorer: discovery.NewExplorer,
			NewConnector: func(cred azcore.TokenCredential) (scan.Connector, error) {
				client, err := azureml.NewClient(cred, nil)
				if err != nil {
					return nil, err
				}
				return scan.NewARMConnector(client), nil
			},
		},
		Output: os.Stdout,
	})

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
