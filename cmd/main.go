package main

import (
	"flag"

	"carelink-backend/cmd/bootstrap"

	"github.com/sirupsen/logrus"
)

func main() {
	configPath := flag.String("config", ".env", "path to the env config file")
	flag.Parse()

	app, err := bootstrap.New(*configPath)
	if err != nil {
		logrus.Fatalf("Failed to initialize application: %v", err)
	}

	app.Run()
}
