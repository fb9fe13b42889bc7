// Command medrag is a retrieval-augmented question answering tool for
// medical documents.
package main

import (
	"os"

	"github.com/custodia-labs/medrag-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/medrag-cli/internal/logger"
)

func main() {
	if err := cli.Execute(); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
}
