package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/proposalarchitect/speakerscout/models"
)

// ScoreRequest is the single dispatch envelope callers post. Action selects
// the pipeline stage; the remaining fields are read per action.
type ScoreRequest struct {
	Action           string   `json:"action"`
	SessionID        string   `json:"session_id,omitempty"`
	ProfileText      string   `json:"profile_text,omitempty"`
	Preferences      string   `json:"preferences,omitempty"`
	Opportunities    string   `json:"opportunities,omitempty"`
	Keywords         []string `json:"keywords,omitempty"`
	OpportunityTypes []string `json:"opportunity_types,omitempty"`
	OpportunityID    string   `json:"opportunity_id,omitempty"`
	TopN             int      `json:"top_n,omitempty"`
	Query            string   `json:"query,omitempty"`
	DocType          string   `json:"doc_type,omitempty"`
}

type scoreResponse struct {
	Success bool        `json:"success"`
	Error   string      `json:"error,omitempty"`
	Result  interface{} `json:"result,omitempty"`
}

// ScoreHandler exposes the pipeline over one action-dispatch endpoint plus a
// session delete route.
type ScoreHandler struct {
	Service *Service
}

func (h *ScoreHandler) Register(g *echo.Group) {
	g.POST("/score", h.score)
	g.DELETE("/sessions/:id", h.deleteSession)
}

func (h *ScoreHandler) score(c echo.Context) error {
	var req ScoreRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Action == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "action required")
	}

	ctx := c.Request().Context()
	start := time.Now()
	var (
		result interface{}
		err    error
	)

	switch req.Action {
	case "health":
		result = map[string]string{"status": "ok"}
	case "upload":
		result, err = h.Service.Upload(ctx, req.SessionID, req.Opportunities, req.ProfileText, req.Preferences, req.Keywords)
	case "discover":
		result, err = h.Service.Discover(ctx, req.SessionID, req.Keywords, req.OpportunityTypes)
	case "rank":
		result, err = h.Service.Rank(ctx, req.SessionID)
	case "generate_proposal":
		result, err = h.Service.GenerateProposal(ctx, req.SessionID, req.OpportunityID)
	case "generate_all_proposals":
		result, err = h.Service.GenerateAllProposals(ctx, req.SessionID, req.TopN)
	case "search":
		result, err = h.Service.Search(ctx, req.SessionID, req.Query, req.DocType, req.TopN)
	default:
		observeAction(req.Action, "bad_request", time.Since(start))
		return echo.NewHTTPError(http.StatusBadRequest, "unknown action: "+req.Action)
	}

	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, models.ErrSessionNotFound) {
			status = http.StatusNotFound
		}
		observeAction(req.Action, "error", time.Since(start))
		return c.JSON(status, scoreResponse{Success: false, Error: err.Error()})
	}
	observeAction(req.Action, "ok", time.Since(start))
	return c.JSON(http.StatusOK, scoreResponse{Success: true, Result: result})
}

func (h *ScoreHandler) deleteSession(c echo.Context) error {
	if err := h.Service.DeleteSession(c.Request().Context(), c.Param("id")); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, scoreResponse{Success: true})
}
