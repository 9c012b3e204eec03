package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/miklz/enrust/internal/service"
)

// GameController exposes the game service over REST.
type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	var body struct {
		FEN string `json:"fen"`
	}
	// An empty body means a game from the start position.
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "malformed request body",
			})
		}
	}
	gameID, err := gc.gameService.CreateGame(body.FEN)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	state, err := gc.gameService.GetState(c.Params("gameId"))
	if err != nil {
		return errorStatus(c, err)
	}
	return c.JSON(state)
}

func (gc *GameController) PlayMove(c *fiber.Ctx) error {
	var body struct {
		Move string `json:"move"`
	}
	if err := c.BodyParser(&body); err != nil || body.Move == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "move is required",
		})
	}
	state, err := gc.gameService.ApplyMove(c.Params("gameId"), body.Move)
	if err != nil {
		return errorStatus(c, err)
	}
	return c.JSON(state)
}

func (gc *GameController) UndoMove(c *fiber.Ctx) error {
	state, err := gc.gameService.UndoMove(c.Params("gameId"))
	if err != nil {
		return errorStatus(c, err)
	}
	return c.JSON(state)
}

func (gc *GameController) BestMove(c *fiber.Ctx) error {
	depth := c.QueryInt("depth")
	moveTime := c.QueryInt("movetime")
	result, err := gc.gameService.BestMove(c.Params("gameId"), depth, moveTime)
	if err != nil {
		return errorStatus(c, err)
	}
	return c.JSON(result)
}

func (gc *GameController) Perft(c *fiber.Ctx) error {
	depth := c.QueryInt("depth", 1)
	nodes, err := gc.gameService.Perft(c.Params("gameId"), depth)
	if err != nil {
		return errorStatus(c, err)
	}
	return c.JSON(fiber.Map{
		"depth": depth,
		"nodes": nodes,
	})
}

func errorStatus(c *fiber.Ctx, err error) error {
	status := fiber.StatusBadRequest
	if errors.Is(err, service.ErrGameNotFound) {
		status = fiber.StatusNotFound
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}
