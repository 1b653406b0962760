package main

import (
	"os"

	"github.com/securestarter/role-recommender/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
