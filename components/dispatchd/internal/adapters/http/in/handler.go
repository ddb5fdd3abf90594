// Package in implements the demo HTTP gateway: a WebSocket-free stand-in
// transport that parses requests into mdispatch.Message, calls the
// target Subsystem's accept, and serializes the result back. Per the
// dispatch core's transport contract, this package is an external
// collaborator — it consumes only the MessageSystem's host-facing API
// and never reaches into a Subsystem's facets directly.
package in

import (
	"encoding/json"
	"strings"

	chttp "github.com/LerianStudio/mdispatch/common/net/http"
	"github.com/LerianStudio/mdispatch/pkg/mdispatch"
	"github.com/LerianStudio/mdispatch/pkg/msubsystem"
	"github.com/LerianStudio/mdispatch/pkg/msystem"
	"github.com/gofiber/fiber/v2"
	"github.com/vmihailenco/msgpack/v5"
)

const msgpackContentType = "application/msgpack"

// messageRequest is the wire shape accepted on both the JSON and
// msgpack encodings.
type messageRequest struct {
	Path          string          `json:"path" msgpack:"path"`
	Body          json.RawMessage `json:"body" msgpack:"body"`
	CorrelationID string          `json:"correlationId,omitempty" msgpack:"correlationId,omitempty"`
	IsQuery       bool            `json:"isQuery,omitempty" msgpack:"isQuery,omitempty"`
}

// DispatchHandler adapts fiber requests into calls against a
// MessageSystem and a specific target Subsystem it was registered
// under.
type DispatchHandler struct {
	ms     *msystem.MessageSystem
	target *msubsystem.Subsystem
}

// NewDispatchHandler builds a DispatchHandler that forwards accepted
// messages to target.
func NewDispatchHandler(ms *msystem.MessageSystem, target *msubsystem.Subsystem) *DispatchHandler {
	return &DispatchHandler{ms: ms, target: target}
}

// Register mounts the handler's routes on app under prefix.
func (h *DispatchHandler) Register(app fiber.Router, prefix string) {
	app.Post(prefix+"/messages", h.postMessage)
	app.Get(prefix+"/stats", h.getStats)
}

func (h *DispatchHandler) decodeRequest(c *fiber.Ctx) (messageRequest, error) {
	var req messageRequest

	if strings.Contains(c.Get(fiber.HeaderContentType), msgpackContentType) {
		if err := msgpack.Unmarshal(c.Body(), &req); err != nil {
			return req, err
		}

		return req, nil
	}

	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return req, err
	}

	return req, nil
}

func (h *DispatchHandler) encodeResponse(c *fiber.Ctx, v any) error {
	if strings.Contains(c.Get(fiber.HeaderAccept), msgpackContentType) {
		b, err := msgpack.Marshal(v)
		if err != nil {
			return chttp.InternalServerError(c, "ENCODING_FAILED", "Encoding Failed", err.Error())
		}

		c.Set(fiber.HeaderContentType, msgpackContentType)

		return c.Send(b)
	}

	return c.JSON(v)
}

func (h *DispatchHandler) postMessage(c *fiber.Ctx) error {
	req, err := h.decodeRequest(c)
	if err != nil {
		return chttp.BadRequest(c, fiber.Map{"error": err.Error()})
	}

	if req.Path == "" {
		return chttp.BadRequest(c, fiber.Map{"error": "path is required"})
	}

	msg := mdispatch.NewMessage(req.Path, req.Body)
	msg.IsQuery = req.IsQuery

	if req.CorrelationID != "" {
		msg.CorrelationID = req.CorrelationID
	}

	if cid := c.Get("X-Correlation-ID"); cid != "" {
		msg.RuntimeMeta["correlationHeader"] = cid
	}

	accepted, err := h.ms.SendProtectedTo(h.target, msg, nil)
	if err != nil {
		return chttp.UnprocessableEntity(c, "DISPATCH_FAILED", "Dispatch Failed", err.Error())
	}

	resp := fiber.Map{
		"accepted":      accepted,
		"correlationId": msg.CorrelationID,
	}

	if msg.IsQuery {
		resp["result"] = msg.QueryResult
	} else if msg.SyncResult != nil {
		resp["result"] = msg.SyncResult
	}

	return h.encodeResponse(c, resp)
}

func (h *DispatchHandler) getStats(c *fiber.Ctx) error {
	type statser interface {
		Statistics() mdispatch.Snapshot
	}

	proc, ok := h.target.CoreProcessor().(statser)
	if !ok {
		return chttp.NotFound(c, "NO_PROCESSOR", "No Processor", "target subsystem has no statistics-bearing processor")
	}

	return c.JSON(proc.Statistics())
}
