package main

import (
	"os"

	"github.com/artem-pershin/checkers/internal/config"
	"github.com/artem-pershin/checkers/internal/controller"
	"github.com/artem-pershin/checkers/internal/logging"
	"github.com/artem-pershin/checkers/internal/middleware"
	"github.com/artem-pershin/checkers/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func main() {
	// A missing .env is fine, flags and the environment still apply.
	_ = godotenv.Load()

	defaults := config.Default()
	app := &cli.App{
		Name:  "checkers-server",
		Usage: "Play checkers against a random robot over HTTP and WebSocket",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "port to listen on",
				Value:   defaults.Port,
				EnvVars: []string{"CHECKERS_PORT"},
			},
			&cli.StringFlag{
				Name:    "allow-origins",
				Usage:   "comma separated list of allowed CORS and WebSocket origins",
				Value:   defaults.AllowOrigins,
				EnvVars: []string{"CHECKERS_ALLOW_ORIGINS"},
			},
			&cli.IntFlag{
				Name:    "board-size",
				Usage:   "number of rows and columns of the board",
				Value:   defaults.BoardSize,
				EnvVars: []string{"CHECKERS_BOARD_SIZE"},
			},
			&cli.BoolFlag{
				Name:    "robot-white",
				Usage:   "let the robot play white and move first",
				EnvVars: []string{"CHECKERS_ROBOT_WHITE"},
			},
			&cli.StringFlag{
				Name:    "placement",
				Aliases: []string{"f"},
				Usage:   "initial placement file: white men on line 1, black men on line 2, as row,col tokens",
				EnvVars: []string{"CHECKERS_PLACEMENT"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   defaults.LogLevel,
				EnvVars: []string{"CHECKERS_LOG_LEVEL"},
			},
			&cli.BoolFlag{
				Name:    "pretty",
				Usage:   "human readable console logs",
				EnvVars: []string{"CHECKERS_PRETTY_LOGS"},
			},
		},
		Action: func(cCtx *cli.Context) error {
			cfg := config.Config{
				Port:          cCtx.Int("port"),
				AllowOrigins:  cCtx.String("allow-origins"),
				BoardSize:     cCtx.Int("board-size"),
				RobotWhite:    cCtx.Bool("robot-white"),
				PlacementFile: cCtx.String("placement"),
				LogLevel:      cCtx.String("log-level"),
				PrettyLogs:    cCtx.Bool("pretty"),
			}
			return serve(cfg)
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func serve(cfg config.Config) error {
	logging.Configure(cfg.LogLevel, cfg.PrettyLogs)
	if err := cfg.Validate(); err != nil {
		return err
	}
	// Fail at startup rather than on the first game.
	if _, err := cfg.Placement(); err != nil {
		return err
	}

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, X-Player-ID",
		AllowMethods:     "GET, POST, OPTIONS",
		AllowCredentials: true,
	}))
	app.Use(middleware.RequestLogger())

	gameManager := service.NewGameManager(cfg.Settings)
	gameService := service.NewGameService(gameManager)
	controller.Register(app, gameService, cfg.Origins())

	log.Info().Str("addr", cfg.Addr()).Int("boardSize", cfg.BoardSize).Bool("robotWhite", cfg.RobotWhite).Msg("listening")
	return app.Listen(cfg.Addr())
}
