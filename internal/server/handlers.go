package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/shpitdev/air-assist/internal/recommend"
	"github.com/shpitdev/air-assist/internal/server/respond"
	"github.com/shpitdev/air-assist/internal/version"
)

type handlers struct {
	rec Recommender
}

func (h *handlers) health(c *gin.Context) {
	respond.OK(c, gin.H{"status": "ok", "version": version.Current})
}

// recommendFromQuery treats every query parameter as an answer, the way the
// questionnaire form submits them.
func (h *handlers) recommendFromQuery(c *gin.Context) {
	answers := recommend.Answers{}
	for k, vals := range c.Request.URL.Query() {
		if len(vals) == 0 {
			continue
		}
		v := strings.TrimSpace(vals[0])
		if k == recommend.KeyWillingToTravelFar {
			if b, err := strconv.ParseBool(v); err == nil {
				answers[k] = b
				continue
			}
		}
		answers[k] = v
	}
	h.recommend(c, answers)
}

func (h *handlers) recommendFromBody(c *gin.Context) {
	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "Request body must be a JSON object of answers.", nil)
		return
	}
	if raw == nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "Request body must be a JSON object of answers.", nil)
		return
	}
	for k, v := range raw {
		switch v.(type) {
		case string, bool:
		default:
			respond.Error(c, http.StatusBadRequest, "invalid_request",
				fmt.Sprintf("Answer %q must be a string or a boolean.", k), nil)
			return
		}
	}
	h.recommend(c, recommend.Answers(raw))
}

func (h *handlers) recommend(c *gin.Context, answers recommend.Answers) {
	set, err := h.rec.Run(c.Request.Context(), answers)
	if err != nil {
		var perr *recommend.Error
		if errors.As(err, &perr) {
			respond.Error(c, http.StatusBadGateway, string(perr.Kind), perr.Message, nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal", "Unexpected server error", nil)
		return
	}
	respond.OK(c, set)
}
