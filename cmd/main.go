package main

import (
	"os"

	"fxconvert/internal/app"

	"github.com/sirupsen/logrus"
)

// @title fxconvert API
// @version 1.0
// @description Currency conversion backed by a TTL rate cache.
// @BasePath /api/v1
func main() {
	if err := app.Run(os.Args[1:]); err != nil {
		logrus.WithError(err).Error("fxconvert failed")
		os.Exit(1)
	}
}
