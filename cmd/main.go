package main

import (
	"github.com/wareline/shipping-svc/internal/app"
	"github.com/wareline/shipping-svc/internal/config"
)

func main() {
	config.MustInit()
	app.MustNewApp().Run()
}
