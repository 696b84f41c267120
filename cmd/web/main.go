package main

import (
	"fmt"
	"os"

	"dgrhcli/internal/app"
)

func main() {
	application, err := app.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "dgrh-web: %v\n", err)
		os.Exit(1)
	}
	if err := application.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "dgrh-web: %v\n", err)
		os.Exit(1)
	}
}
