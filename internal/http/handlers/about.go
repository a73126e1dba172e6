package handlers

import (
	"errors"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
	"gorm.io/gorm"

	dbpkg "portfolio/internal/db"
)

func defaultAbout() dbpkg.About {
	return dbpkg.About{
		Bio: "A passionate developer creating innovative solutions.",
	}
}

// GetAbout returns the bio section, creating it with defaults on first read.
func GetAbout(db *gorm.DB, log zerolog.Logger) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		var about dbpkg.About
		err := db.First(&about).Error
		if errors.Is(err, dbpkg.ErrNotFound) {
			about = defaultAbout()
			err = db.Create(&about).Error
		}
		if err != nil {
			log.Error().Err(err).Msg("failed to fetch about")
			errResponse(ctx, fasthttp.StatusInternalServerError, "failed to fetch about data")
			return
		}
		jsonResponse(ctx, fasthttp.StatusOK, about)
	}
}

// UpdateAbout replaces the bio document with the submitted one.
func UpdateAbout(db *gorm.DB, log zerolog.Logger) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		var payload dbpkg.About
		if !decodeBody(ctx, &payload) {
			return
		}
		if err := validate.Struct(&payload); err != nil {
			errResponse(ctx, fasthttp.StatusBadRequest, "missing required fields")
			return
		}

		var existing dbpkg.About
		err := db.First(&existing).Error
		switch {
		case errors.Is(err, dbpkg.ErrNotFound):
			err = db.Create(&payload).Error
		case err == nil:
			payload.ID = existing.ID
			payload.CreatedAt = existing.CreatedAt
			err = db.Save(&payload).Error
		}
		if err != nil {
			log.Error().Err(err).Msg("failed to update about")
			errResponse(ctx, fasthttp.StatusInternalServerError, "failed to update about data")
			return
		}
		jsonResponse(ctx, fasthttp.StatusOK, payload)
	}
}
