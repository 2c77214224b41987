//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/devbook-dev/devbook/frontend/internal/apiclient"
	"github.com/devbook-dev/devbook/frontend/internal/signup"
	"github.com/devbook-dev/devbook/frontend/internal/signup/dom"
	"github.com/devbook-dev/devbook/shared/logger"
)

func main() {
	logger.Initialize("info", false)

	window := js.Global()
	origin := window.Get("location").Get("origin").String()

	h := signup.New(apiclient.New(origin), dom.Alerter{Window: window})
	if _, err := dom.Bind(window.Get("document"), h); err != nil {
		logger.Log.Error("signup form binding failed", "error", err)
		return
	}
	logger.Log.Info("signup form bound")

	select {}
}
