package main

import (
	"github.com/rs/zerolog/log"
	_ "go.uber.org/automaxprocs"

	"github.com/dfryer1193/blogify/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		log.Fatal().Err(err).Msg("blogify failed")
	}
}
