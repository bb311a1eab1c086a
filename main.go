package main

import (
	"github.com/taskward/taskward/app"
	_ "github.com/taskward/taskward/docs"
)

// @title Taskward API
// @version 1.0
// @description Task tracking API with JWT authentication and per-user task ownership.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// setup and run app
	err := app.SetupAndRunApp()
	if err != nil {
		panic(err)
	}
}
