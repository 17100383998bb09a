// shellhook - Stream command output to chat webhooks

package main

import (
	"os"

	"github.com/ariel-frischer/shellhook/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
