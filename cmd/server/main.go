package main

import (
	"github.com/wkalinowski/huddle/internal/server"
)

func main() {
	srv := server.NewServer()
	srv.Run()
}
