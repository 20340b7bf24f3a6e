package main

//go:generate swag init -g cmd/server/main.go -o docs

// @title           Sportsbook Records API
// @version         0.1.0
// @description     Sports, events, and selections with cascading activity upkeep.
// @host            localhost:8080
// @BasePath        /
// @schemes         http
