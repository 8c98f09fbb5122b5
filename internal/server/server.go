package server

import (
	"bytes"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/sellerkit/sellerkit/internal/pipeline"
	"github.com/sellerkit/sellerkit/internal/tabular"
	"github.com/sellerkit/sellerkit/internal/version"
)

const maxUploadBytes = 20 * 1024 * 1024

type HTTPServerDependencies struct {
	Pipeline *pipeline.Pipeline
}

// NewHTTPServer builds the thin front door: health, version, and one
// enrichment endpoint that accepts an uploaded workbook and streams the
// enriched workbook back.
func NewHTTPServer(deps HTTPServerDependencies) *fiber.App {
	router := fiber.New(fiber.Config{
		AppName:   "sellerkit",
		BodyLimit: maxUploadBytes,
	})

	router.Use(cors.New())
	router.Use(logger.New())

	router.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":    "healthy",
			"service":   "sellerkit",
			"version":   version.GetVersion(),
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	router.Get("/version", func(c *fiber.Ctx) error {
		return c.JSON(version.Get())
	})

	router.Post("/enrichments", func(c *fiber.Ctx) error {
		runID := uuid.NewString()

		fileHeader, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "missing file upload")
		}

		f, err := fileHeader.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "unreadable file upload")
		}
		defer f.Close()

		rows, err := tabular.ReadSeedRowsFrom(f)
		if err != nil {
			return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
		}

		log.Info().Str("run_id", runID).Int("rows", len(rows)).Str("file", fileHeader.Filename).Msg("enrichment upload accepted")

		enriched, counts, err := deps.Pipeline.Process(c.UserContext(), rows)
		if err != nil {
			log.Error().Str("run_id", runID).Err(err).Msg("enrichment run failed")
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		var buf bytes.Buffer
		if err := tabular.WriteEnrichedTo(&buf, enriched); err != nil {
			log.Error().Str("run_id", runID).Err(err).Msg("failed to serialize enriched workbook")
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}

		log.Info().
			Str("run_id", runID).
			Int("succeeded", counts.Succeeded).
			Int("failed", counts.Failed).
			Msg("enrichment run served")

		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="enriched.xlsx"`)
		return c.Send(buf.Bytes())
	})

	return router
}
