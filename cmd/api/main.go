package main

import (
	"log"

	"github.com/MayoCodes/Robbery/internal/server"
)

func main() {
	srv := server.NewServer()

	log.Printf("ROBBERY game server listening on %s", srv.Addr)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
