package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/apiarylab/swarmtrack/internal/models"
	"github.com/apiarylab/swarmtrack/internal/services/alerting"
	"github.com/apiarylab/swarmtrack/internal/services/introduction"
	"github.com/apiarylab/swarmtrack/internal/services/registry"
	"github.com/apiarylab/swarmtrack/internal/services/session"
	"github.com/apiarylab/swarmtrack/internal/services/stats"
)

// dateLayout is the wire format for field dates; introductions and checks are
// day-grained
const dateLayout = "2006-01-02"

func operatorID(r *http.Request) string {
	return r.Header.Get(operatorHeader)
}

func decode(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

// parseDate accepts an empty string as the zero time, which services treat
// as "now"
func parseDate(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, true
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

type openSessionRequest struct {
	Label string `json:"label"`
}

func (s *Server) handleOpenSession(w http.ResponseWriter, r *http.Request) {
	var req openSessionRequest
	if err := decode(r, &req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	output, err := s.sessions.OpenSession(r.Context(), &session.OpenSessionInput{
		SiteID:  r.PathValue("siteID"),
		OwnerID: operatorID(r),
		Label:   req.Label,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]*models.Session{"session": output.Session})
}

func (s *Server) handleActiveSession(w http.ResponseWriter, r *http.Request) {
	output, err := s.sessions.GetActiveSession(r.Context(), &session.GetActiveSessionInput{
		SiteID:  r.PathValue("siteID"),
		OwnerID: operatorID(r),
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	if output.Session == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{
			Error: "no active session on this site",
			Kind:  "not_found",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]*models.Session{"session": output.Session})
}

func (s *Server) handleCloseSession(w http.ResponseWriter, r *http.Request) {
	output, err := s.sessions.CloseSession(r.Context(), &session.CloseSessionInput{
		SessionID: r.PathValue("sessionID"),
		OwnerID:   operatorID(r),
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]*models.Session{"session": output.Session})
}

type registerColonyRequest struct {
	HiveID    string `json:"hive_id,omitempty"`
	HiveToken string `json:"hive_token,omitempty"`
}

func (s *Server) handleRegisterColony(w http.ResponseWriter, r *http.Request) {
	var req registerColonyRequest
	if err := decode(r, &req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	output, err := s.registry.RegisterColony(r.Context(), &registry.RegisterColonyInput{
		SessionID: r.PathValue("sessionID"),
		OwnerID:   operatorID(r),
		HiveID:    req.HiveID,
		HiveToken: req.HiveToken,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]*models.Colony{"colony": output.Colony})
}

type introduceRequest struct {
	Method    string `json:"method"`
	DelayDays int    `json:"delay_days"`
	Date      string `json:"date,omitempty"`
}

type introducedColonyResponse struct {
	Colony *models.Colony `json:"colony"`
	Alert  *models.Alert  `json:"alert"`
}

type introduceResponse struct {
	Introduced []*introducedColonyResponse `json:"introduced"`
	Skipped    int                         `json:"skipped"`
}

func (s *Server) handleIntroduce(w http.ResponseWriter, r *http.Request) {
	var req introduceRequest
	if err := decode(r, &req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	date, ok := parseDate(req.Date)
	if !ok {
		writeBadRequest(w, "date must be formatted YYYY-MM-DD")
		return
	}

	output, err := s.introductions.Introduce(r.Context(), &introduction.IntroduceInput{
		SessionID: r.PathValue("sessionID"),
		OwnerID:   operatorID(r),
		Method:    models.IntroMethod(req.Method),
		DelayDays: req.DelayDays,
		Date:      date,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	resp := introduceResponse{
		Introduced: make([]*introducedColonyResponse, 0, len(output.Introduced)),
		Skipped:    output.Skipped,
	}
	for _, ic := range output.Introduced {
		resp.Introduced = append(resp.Introduced, &introducedColonyResponse{
			Colony: ic.Colony,
			Alert:  ic.Alert,
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

type outcomeRequest struct {
	Status string `json:"status"`
}

type outcomeResponse struct {
	Colony         *models.Colony `json:"colony"`
	ResolvedAlerts int            `json:"resolved_alerts"`
}

func (s *Server) handleRecordOutcome(w http.ResponseWriter, r *http.Request) {
	var req outcomeRequest
	if err := decode(r, &req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	output, err := s.introductions.RecordOutcome(r.Context(), &introduction.RecordOutcomeInput{
		ColonyID: r.PathValue("colonyID"),
		OwnerID:  operatorID(r),
		Status:   models.ColonyStatus(req.Status),
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, outcomeResponse{
		Colony:         output.Colony,
		ResolvedAlerts: output.ResolvedAlerts,
	})
}

func (s *Server) handleReintroduce(w http.ResponseWriter, r *http.Request) {
	var req introduceRequest
	if err := decode(r, &req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	date, ok := parseDate(req.Date)
	if !ok {
		writeBadRequest(w, "date must be formatted YYYY-MM-DD")
		return
	}

	output, err := s.introductions.Reintroduce(r.Context(), &introduction.ReintroduceInput{
		ColonyID:  r.PathValue("colonyID"),
		OwnerID:   operatorID(r),
		Method:    models.IntroMethod(req.Method),
		DelayDays: req.DelayDays,
		Date:      date,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, introducedColonyResponse{
		Colony: output.Colony,
		Alert:  output.Alert,
	})
}

func (s *Server) handleColonyEvents(w http.ResponseWriter, r *http.Request) {
	output, err := s.registry.ListColonyEvents(r.Context(), &registry.ListColonyEventsInput{
		ColonyID: r.PathValue("colonyID"),
		OwnerID:  operatorID(r),
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string][]*models.Event{"events": output.Events})
}

func (s *Server) handleColonyAlerts(w http.ResponseWriter, r *http.Request) {
	// Ownership rides on the events lookup; the alert history itself is
	// keyed only by colony
	if _, err := s.registry.ListColonyEvents(r.Context(), &registry.ListColonyEventsInput{
		ColonyID: r.PathValue("colonyID"),
		OwnerID:  operatorID(r),
	}); err != nil {
		s.writeError(w, err)
		return
	}

	output, err := s.alerts.ColonyHistory(r.Context(), &alerting.ColonyHistoryInput{
		ColonyID: r.PathValue("colonyID"),
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string][]*models.Alert{"alerts": output.Alerts})
}

func (s *Server) handleUpcomingAlerts(w http.ResponseWriter, r *http.Request) {
	daysAhead, ok := parseIntParam(r, "days_ahead")
	if !ok {
		writeBadRequest(w, "days_ahead must be an integer")
		return
	}
	graceDays, ok := parseIntParam(r, "grace_days")
	if !ok {
		writeBadRequest(w, "grace_days must be an integer")
		return
	}

	output, err := s.alerts.Upcoming(r.Context(), &alerting.UpcomingInput{
		OwnerID:   operatorID(r),
		DaysAhead: daysAhead,
		GraceDays: graceDays,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string][]*models.Alert{"alerts": output.Alerts})
}

func (s *Server) handleSessionStats(w http.ResponseWriter, r *http.Request) {
	output, err := s.stats.SessionStats(r.Context(), &stats.SessionStatsInput{
		SessionID: r.PathValue("sessionID"),
		OwnerID:   operatorID(r),
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"session": output.Session,
		"stats":   output.Stats,
	})
}

type overviewResponse struct {
	Sessions int                                     `json:"sessions"`
	Stats    *stats.StatusCounts                     `json:"stats"`
	ByMethod map[models.IntroMethod]*stats.MethodStats `json:"by_method"`
	BySite   map[string]*stats.StatusCounts          `json:"by_site,omitempty"`
}

func (s *Server) handleOverviewStats(w http.ResponseWriter, r *http.Request) {
	from, ok := parseDate(r.URL.Query().Get("from"))
	if !ok || from.IsZero() {
		writeBadRequest(w, "from must be formatted YYYY-MM-DD")
		return
	}
	to, ok := parseDate(r.URL.Query().Get("to"))
	if !ok || to.IsZero() {
		writeBadRequest(w, "to must be formatted YYYY-MM-DD")
		return
	}

	output, err := s.stats.OverviewStats(r.Context(), &stats.OverviewStatsInput{
		OwnerID: operatorID(r),
		From:    from,
		To:      to,
		SiteID:  r.URL.Query().Get("site_id"),
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, overviewResponse{
		Sessions: output.Sessions,
		Stats:    output.Stats,
		ByMethod: output.ByMethod,
		BySite:   output.BySite,
	})
}

// parseIntParam reads an optional integer query parameter, 0 when absent
func parseIntParam(r *http.Request, name string) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
