package main

import (
	"backend/config"
	"backend/routes"

	"github.com/rs/zerolog/log"
)

func main() {
	config.InitLogger()
	config.InitDB()
	r := routes.SetupRouter()
	if err := r.Run(":8080"); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
