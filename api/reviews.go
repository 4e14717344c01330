package api

import (
	"net/http"
	"time"

	"lightbridge/application"
)

const (
	reviewAuthorMaxLen = 255
	reviewTextMaxLen   = 2000
	reviewRatingMin    = 1
	reviewRatingMax    = 5
)

type reviewResponse struct {
	ID     string `json:"id"`
	Author string `json:"author"`
	Text   string `json:"text"`
	Rating int    `json:"rating"`
	Date   string `json:"date"`
}

func (s *Server) handleListReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := s.params.Reviews.List(r.Context())
	if err != nil {
		s.log.Error().Err(err).Str("request_id", requestID(r)).Msg("list reviews failed")
		writeError(w, http.StatusInternalServerError, "could not load reviews")
		return
	}

	out := make([]reviewResponse, 0, len(reviews))
	for _, review := range reviews {
		out = append(out, reviewResponse{
			ID:     review.ID,
			Author: review.Author,
			Text:   review.Text,
			Rating: review.Rating,
			Date:   review.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateReview(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Author string `json:"author"`
		Text   string `json:"text"`
		Rating int    `json:"rating"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if body.Author == "" || len(body.Author) > reviewAuthorMaxLen {
		writeError(w, http.StatusBadRequest, "author must be 1 to 255 characters")
		return
	}
	if body.Text == "" || len(body.Text) > reviewTextMaxLen {
		writeError(w, http.StatusBadRequest, "text must be 1 to 2000 characters")
		return
	}
	if body.Rating < reviewRatingMin || body.Rating > reviewRatingMax {
		writeError(w, http.StatusBadRequest, "rating must be between 1 and 5")
		return
	}

	review := application.Review{Author: body.Author, Text: body.Text, Rating: body.Rating}
	if err := s.params.Reviews.Create(r.Context(), &review); err != nil {
		s.log.Error().Err(err).Str("request_id", requestID(r)).Msg("create review failed")
		writeError(w, http.StatusInternalServerError, "could not save review")
		return
	}

	writeJSON(w, http.StatusCreated, reviewResponse{
		ID:     review.ID,
		Author: review.Author,
		Text:   review.Text,
		Rating: review.Rating,
		Date:   review.CreatedAt.UTC().Format(time.RFC3339),
	})
}
