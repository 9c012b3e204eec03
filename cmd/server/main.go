package main

import (
	"flag"
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/miklz/enrust/internal/controller"
	"github.com/miklz/enrust/internal/service"
	"github.com/miklz/enrust/internal/storage"
)

func main() {
	addr := flag.String("addr", envOr("ENRUST_ADDR", ":3000"), "Listen address")
	dbDir := flag.String("db", os.Getenv("ENRUST_DB"), "BadgerDB directory for game persistence (empty = in-memory only)")
	origins := flag.String("origins", "*", "Allowed CORS origins")
	flag.Parse()

	var store *storage.Storage
	if *dbDir != "" {
		var err error
		store, err = storage.Open(*dbDir)
		if err != nil {
			log.Fatalf("opening database: %v", err)
		}
		defer store.Close()
	}

	gameService := service.NewGameService(store)
	gameController := controller.NewGameController(gameService)
	wsController := controller.NewWebSocketController(gameService)

	app := fiber.New()
	app.Use(cors.New(cors.Config{
		AllowOrigins: *origins,
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, OPTIONS",
	}))

	app.Get("/ws/game/:gameId", websocket.New(func(c *websocket.Conn) {
		wsController.HandleConnection(c)
	}, websocket.Config{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}))

	api := app.Group("/api")
	gameRoutes := api.Group("/game")
	gameRoutes.Post("/create", gameController.CreateGame)
	gameRoutes.Get("/:gameId", gameController.GetGameState)
	gameRoutes.Post("/:gameId/move", gameController.PlayMove)
	gameRoutes.Post("/:gameId/undo", gameController.UndoMove)
	gameRoutes.Get("/:gameId/bestmove", gameController.BestMove)
	gameRoutes.Get("/:gameId/perft", gameController.Perft)

	log.Fatal(app.Listen(*addr))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
