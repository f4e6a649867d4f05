package main

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mxwllalpha/kodepos-worker/pkg/geocode"
	"github.com/mxwllalpha/kodepos-worker/pkg/history"
	"github.com/mxwllalpha/kodepos-worker/pkg/kodepos"
)

func searchController(client kodepos.Client, lookups history.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		envelope, err := client.SearchByText(ctx, c.Query("q"))
		if err != nil {
			status := statusFromError(err)
			c.JSON(status, gin.H{"statusCode": status, "error": err.Error()})
			return
		}

		if lookups != nil {
			if err := lookups.RecordSearch(ctx, c.Query("q"), len(envelope.Records)); err != nil {
				slog.ErrorContext(ctx, "record search", "error", err.Error())
			}
		}

		c.JSON(envelope.StatusCode, gin.H{
			"statusCode": envelope.StatusCode,
			"data":       envelope.Records,
			"error":      omitEmpty(envelope.Error),
		})
	}
}

func detectController(client kodepos.Client, lookups history.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		lat, latErr := strconv.ParseFloat(c.Query("latitude"), 64)
		lng, lngErr := strconv.ParseFloat(c.Query("longitude"), 64)
		if latErr != nil || lngErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"statusCode": http.StatusBadRequest,
				"error":      "latitude and longitude must be numbers",
			})
			return
		}

		envelope, err := client.DetectByCoordinates(ctx, lat, lng)
		if err != nil {
			status := statusFromError(err)
			c.JSON(status, gin.H{"statusCode": status, "error": err.Error()})
			return
		}

		if lookups != nil {
			if err := lookups.RecordDetection(ctx, lat, lng, len(envelope.Records)); err != nil {
				slog.ErrorContext(ctx, "record detection", "error", err.Error())
			}
		}

		c.JSON(envelope.StatusCode, gin.H{
			"statusCode": envelope.StatusCode,
			"data":       firstOrNil(envelope.Records),
			"error":      omitEmpty(envelope.Error),
		})
	}
}

func locateController(geocoder geocode.Client, client kodepos.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		place := c.Query("place")
		if place == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"statusCode": http.StatusBadRequest,
				"error":      "missing place query parameter",
			})
			return
		}

		location, err := geocoder.Geocode(place)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{
				"statusCode": http.StatusBadGateway,
				"error":      "unable to resolve place: " + err.Error(),
			})
			return
		}

		envelope, err := client.DetectByCoordinates(ctx, location.Latitude, location.Longitude)
		if err != nil {
			status := statusFromError(err)
			c.JSON(status, gin.H{"statusCode": status, "error": err.Error()})
			return
		}

		c.JSON(envelope.StatusCode, gin.H{
			"statusCode": envelope.StatusCode,
			"place":      place,
			"latitude":   location.Latitude,
			"longitude":  location.Longitude,
			"data":       firstOrNil(envelope.Records),
			"error":      omitEmpty(envelope.Error),
		})
	}
}

func historyController(lookups history.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		recent, err := lookups.ListRecent(ctx, 20)
		if err != nil {
			slog.ErrorContext(ctx, "list recent lookups", "error", err.Error())
			c.JSON(http.StatusInternalServerError, gin.H{
				"statusCode": http.StatusInternalServerError,
				"error":      "unable to list lookups",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{"statusCode": http.StatusOK, "data": recent})
	}
}

// statusFromError maps a lookup failure to the relay's own response status:
// bad input is the caller's fault, everything else is a gateway problem.
func statusFromError(err error) int {
	switch kodepos.KindOf(err) {
	case kodepos.KindValidation:
		return http.StatusBadRequest
	case kodepos.KindTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

func firstOrNil(records []kodepos.PostalRecord) interface{} {
	if len(records) == 0 {
		return nil
	}

	return records[0]
}

func omitEmpty(s string) interface{} {
	if s == "" {
		return nil
	}

	return s
}
