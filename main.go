package main

import (
	"log"

	"taskplanner/connection"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	gin.SetMode(gin.ReleaseMode)
	connection.StartServer()
}
