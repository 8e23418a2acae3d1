package main

import (
	"hotel/config"
	"hotel/helper"
	"hotel/shared/logger"
	"os"

	"github.com/rs/zerolog/log"
)

const argLength = 2

func main() {
	logger.InitLogger()

	if len(os.Args) < argLength || !helper.IsAction(os.Args[1]) {
		log.Fatal().Strs("actions", helper.Actions()).Msg("Usage: migrate <action>")
	}

	if err := helper.Run(config.Get(), os.Args[1]); err != nil {
		log.Fatal().Err(err).Msg("Migration failed")
	}
}
