package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"phishhook/internal/model"
	"phishhook/internal/service"
)

func (h *Handler) initUpgrader() {
	h.WSUpgrader = websocket.Upgrader{
		CheckOrigin: h.checkOrigin,
	}
}

// checkOrigin accepts same-host connections, the forwarded host when running
// behind a trusted proxy, and the configured allowed domain plus subdomains.
func (h *Handler) checkOrigin(r *http.Request) bool {
	if h.AppConfig != nil && h.AppConfig.SkipOriginCheck {
		return true
	}

	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	originHost := u.Hostname()

	if hostOnly(r.Host) == originHost {
		return true
	}
	if h.AppConfig != nil && h.AppConfig.TrustProxy {
		if fwd := r.Header.Get("X-Forwarded-Host"); fwd != "" && hostOnly(fwd) == originHost {
			return true
		}
	}
	if h.AppConfig != nil && h.AppConfig.AllowedDomain != "" {
		if originHost == h.AppConfig.AllowedDomain ||
			strings.HasSuffix(originHost, "."+h.AppConfig.AllowedDomain) {
			return true
		}
	}
	return originHost == "localhost" || originHost == "127.0.0.1"
}

func hostOnly(hostport string) string {
	if i := strings.LastIndexByte(hostport, ':'); i >= 0 && !strings.HasSuffix(hostport, "]") {
		if !strings.Contains(hostport[i:], "]") {
			return hostport[:i]
		}
	}
	return hostport
}

// HandleWS upgrades the connection, attaches it to the hub (which replays the
// history snapshot), then serves client-originated scan requests until the
// connection goes away.
func (h *Handler) HandleWS(c echo.Context) error {
	ws, err := h.WSUpgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	sub := h.Hub.Subscribe(ws)
	defer h.Hub.Unsubscribe(sub)

	for {
		_, msg, err := ws.ReadMessage()
		if err != nil {
			break
		}
		h.handleClientMessage(c.Request().Context(), sub, msg)
	}
	return nil
}

// handleClientMessage dispatches one inbound message. Malformed or
// unrecognized messages get a private error event; the connection stays open.
func (h *Handler) handleClientMessage(ctx context.Context, sub *service.Subscriber, msg []byte) {
	var cm model.ClientMessage
	if err := json.Unmarshal(msg, &cm); err != nil {
		h.Hub.SendTo(sub, model.ErrorEvent("Malformed message"))
		return
	}

	switch cm.Type {
	case model.EventScan:
		if cm.URL == "" {
			h.Hub.SendTo(sub, model.ErrorEvent("URL is required"))
			return
		}
		record, _, err := h.Scanner.Scan(ctx, cm.URL)
		if err != nil {
			h.Hub.SendTo(sub, model.ErrorEvent("Invalid URL format"))
			return
		}
		// Everyone already got the new-scan broadcast; the requester also
		// gets a private scan-result.
		h.Hub.SendTo(sub, model.ScanResultEvent(record))
	default:
		h.Hub.SendTo(sub, model.ErrorEvent("Unknown message type: "+cm.Type))
	}
}
