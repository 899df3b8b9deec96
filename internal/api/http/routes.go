package httpapi

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/csiess85/deckenhoehe/internal/history"
	"github.com/csiess85/deckenhoehe/internal/snapshot"
	"github.com/csiess85/deckenhoehe/internal/wx"
)

var validate = validator.New()

// Deps are the collaborators the handlers need.
type Deps struct {
	Store         *snapshot.Store
	Engine        wx.Engine
	Reconstructor *history.Reconstructor
	HistoryStep   time.Duration
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, deps Deps) {
	v1 := app.Group("/api/v1")

	v1.Get("/stations/:icao/current", func(c *fiber.Ctx) error {
		icao, err := parseStation(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		row, err := deps.Store.LatestMetar(icao)
		if err != nil {
			if errors.Is(err, snapshot.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no observation for requested station")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to read observation")
		}

		return c.JSON(row)
	})

	v1.Get("/stations/:icao/outlook", func(c *fiber.Ctx) error {
		icao, err := parseStation(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		row, err := deps.Store.LatestTaf(icao)
		if err != nil {
			if errors.Is(err, snapshot.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no forecast for requested station")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to read forecast")
		}

		doc, err := row.ParsedDocument()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "stored forecast is unreadable")
		}

		// Evaluated at request time, not fetch time: the stored
		// outlook ages, this one does not.
		now := time.Now().UTC()
		return c.JSON(fiber.Map{
			"icaoId":     icao,
			"fetchTime":  row.FetchTime,
			"validFrom":  row.ValidFrom,
			"validTo":    row.ValidTo,
			"evaluated":  now,
			"categories": deps.Engine.OutlookAt(doc, now),
		})
	})

	v1.Get("/stations/:icao/history", func(c *fiber.Ctx) error {
		icao, err := parseStation(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		var req historyQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		var series interface{}
		switch req.Kind {
		case "metar":
			series, err = deps.Reconstructor.MetarSeries(icao, req.From, req.To)
		case "taf":
			step := deps.HistoryStep
			if req.Step > 0 {
				step = req.Step
			}
			series, err = deps.Reconstructor.TafSeries(icao, req.From, req.To, step)
		}
		if err != nil {
			if errors.Is(err, snapshot.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no history for requested range")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to reconstruct history")
		}

		return c.JSON(fiber.Map{
			"icaoId": icao,
			"kind":   req.Kind,
			"from":   req.From,
			"to":     req.To,
			"series": series,
		})
	})
}

func parseStation(c *fiber.Ctx) (string, error) {
	icao := strings.ToUpper(strings.TrimSpace(c.Params("icao")))
	if len(icao) != 4 {
		return "", errors.New("station must be a 4-letter ICAO code")
	}
	return icao, nil
}

// historyQuery holds query parameters for the history endpoint.
type historyQuery struct {
	Kind string    `validate:"required,oneof=metar taf"`
	From time.Time `validate:"required"`
	To   time.Time `validate:"required,gtefield=From"`
	Step time.Duration
}

func (h *historyQuery) bind(c *fiber.Ctx) error {
	h.Kind = c.Query("kind", "metar")

	fromStr := c.Query("from")
	toStr := c.Query("to")
	if fromStr == "" || toStr == "" {
		return errors.New("from and to query parameters are required")
	}

	from, err := parseTime(fromStr)
	if err != nil {
		return err
	}
	to, err := parseTime(toStr)
	if err != nil {
		return err
	}
	h.From = from
	h.To = to

	if stepStr := c.Query("step"); stepStr != "" {
		step, err := time.ParseDuration(stepStr)
		if err != nil || step <= 0 {
			return errors.New("invalid step duration")
		}
		h.Step = step
	}

	return nil
}

// parseTime tries to parse either RFC3339 or Unix seconds.
func parseTime(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	if unix, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(unix, 0).UTC(), nil
	}
	return time.Time{}, errors.New("invalid time format; use RFC3339 or unix seconds")
}
