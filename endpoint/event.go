package endpoint

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/eppranavaudupa/smartBliendStick/config"
	"github.com/eppranavaudupa/smartBliendStick/model"
	"github.com/eppranavaudupa/smartBliendStick/notify"
	"github.com/eppranavaudupa/smartBliendStick/util"
	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SubmitEvent godoc
// @Summary      Ingest a device safety event
// @Description  Validate, location-resolve and persist a device report;
// @Description  a critical "fall" event additionally triggers an SMS alert
// @Tags         Events
// @Accept       json
// @Produce      json
// @Param        x-api-key header string false "Ingestion API key"
// @Success      200 {object} map[string]string "status ok"
// @Failure      400 {object} map[string]string "Malformed payload"
// @Failure      401 {object} map[string]string "Unauthorized"
// @Router       /event [post]
func SubmitEvent(cfg *config.Config, db *gorm.DB, dispatcher *notify.Dispatcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.APIKey != "" && c.GetHeader("x-api-key") != cfg.APIKey {
			util.LogAuditEvent(util.AuditEvent{
				EventType: util.EventIngestRejected,
				IP:        c.ClientIP(),
				Message:   "Event rejected: API key mismatch",
			})
			util.RespondError(c, http.StatusUnauthorized, "unauthorized")
			return
		}

		payload := map[string]interface{}{}
		if c.Request.ContentLength != 0 {
			if err := c.ShouldBindJSON(&payload); err != nil {
				util.RespondError(c, http.StatusBadRequest, "invalid payload")
				return
			}
		}

		ev := normalizeEvent(cfg, payload)
		if err := db.Create(&ev).Error; err != nil {
			util.RespondError(c, http.StatusInternalServerError, "failed to store event")
			return
		}

		if ev.IsFall() {
			dispatcher.DispatchAsync(ev)
		}

		util.RespondStatus(c, "ok")
	}
}

// ListEvents godoc
// @Summary      List stored events
// @Description  Return the full ordered event sequence, oldest first
// @Tags         Events
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} model.Event
// @Failure      401 {object} map[string]string "Missing or invalid token"
// @Router       /events [get]
func ListEvents(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		events := []model.Event{}
		if err := db.Order("id ASC").Find(&events).Error; err != nil {
			// A read failure yields an empty sequence; it is logged, never
			// surfaced to the caller.
			log.Printf("failed to read events: %v", err)
			events = []model.Event{}
		}
		c.JSON(http.StatusOK, events)
	}
}

// normalizeEvent turns a raw client payload into a persisted event record:
// it stamps the server receive time, resolves the location, and keeps the
// full payload so arbitrary client keys survive.
func normalizeEvent(cfg *config.Config, payload map[string]interface{}) model.Event {
	ev := model.Event{
		DeviceID:   stringField(payload, "deviceId"),
		EventType:  stringField(payload, "event"),
		DeviceTime: stringField(payload, "timestamp"),
		ReceivedAt: time.Now().UTC(),
	}

	lat, latOK := coordinate(payload, "latitude")
	lng, lngOK := coordinate(payload, "longitude")
	if !latOK || !lngOK {
		ev.Latitude = cfg.ServerLat
		ev.Longitude = cfg.ServerLng
		ev.LocationSource = model.LocationSourceServerDefault
	} else {
		ev.Latitude = lat
		ev.Longitude = lng
		ev.LocationSource = model.LocationSourceDevice
	}

	if len(payload) > 0 {
		if raw, err := json.Marshal(payload); err == nil {
			ev.Payload = datatypes.JSON(raw)
		}
	}

	return ev
}

// coordinate extracts a coordinate value from the payload. Absent, null,
// empty, unparseable, and numeric-zero values all count as missing; a
// device-supplied 0 is indistinguishable from "missing" under this policy
// and falls back to the server default. A string "0" still parses as a
// device value.
func coordinate(payload map[string]interface{}, key string) (float64, bool) {
	v, ok := payload[key]
	if !ok || v == nil {
		return 0, false
	}

	switch t := v.(type) {
	case float64:
		if t == 0 {
			return 0, false
		}
		return t, true
	case json.Number:
		f, err := t.Float64()
		if err != nil || f == 0 {
			return 0, false
		}
		return f, true
	case string:
		if t == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// stringField reads a payload value as a string, formatting numbers the way
// devices commonly send epoch timestamps.
func stringField(payload map[string]interface{}, key string) string {
	v, ok := payload[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	}
	return ""
}
