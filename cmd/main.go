package main

import (
	"os"

	"fxconvert/internal/app"

	"github.com/sirupsen/logrus"
)

// @title fxconvert API
// @version 1.0
// @description Currency converter: rates for a base currency, a persisted selection and converted amounts.
// @BasePath /api/v1
func main() {
	if err := app.Run(); err != nil {
		logrus.WithError(err).Error("Application stopped")
		os.Exit(1)
	}
}
