package handlers

import (
	"errors"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
	"gorm.io/gorm"

	dbpkg "portfolio/internal/db"
)

func defaultContact() dbpkg.Contact {
	return dbpkg.Contact{Email: "hello@example.com"}
}

// GetContact returns the contact info, creating it with defaults on first read.
func GetContact(db *gorm.DB, log zerolog.Logger) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		var contact dbpkg.Contact
		err := db.First(&contact).Error
		if errors.Is(err, dbpkg.ErrNotFound) {
			contact = defaultContact()
			err = db.Create(&contact).Error
		}
		if err != nil {
			log.Error().Err(err).Msg("failed to fetch contact")
			errResponse(ctx, fasthttp.StatusInternalServerError, "failed to fetch contact data")
			return
		}
		jsonResponse(ctx, fasthttp.StatusOK, contact)
	}
}

// UpdateContact replaces the contact document with the submitted one.
func UpdateContact(db *gorm.DB, log zerolog.Logger) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		var payload dbpkg.Contact
		if !decodeBody(ctx, &payload) {
			return
		}
		if err := validate.Struct(&payload); err != nil {
			errResponse(ctx, fasthttp.StatusBadRequest, "missing required fields")
			return
		}

		var existing dbpkg.Contact
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
			log.Error().Err(err).Msg("failed to update contact")
			errResponse(ctx, fasthttp.StatusInternalServerError, "failed to update contact data")
			return
		}
		jsonResponse(ctx, fasthttp.StatusOK, payload)
	}
}
