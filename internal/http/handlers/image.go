package handlers

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/Complexlity/paywithglide/internal/frame"
	"github.com/Complexlity/paywithglide/internal/model"
	"github.com/Complexlity/paywithglide/internal/render"
	"go.uber.org/zap"
)

const (
	msgImageUserNotFound = "User not found!"
	msgImageFailed       = "Failed to render image."

	failedColor  = "#E5484D"
	successColor = "#30A46C"
)

// ImageHandler renders the SVG images referenced by cards
type ImageHandler struct {
	users       UserResolver
	renderer    *render.Renderer
	destination model.Chain
	logger      *zap.Logger
}

// NewImageHandler creates a new image handler
func NewImageHandler(users UserResolver, renderer *render.Renderer, destination model.Chain, logger *zap.Logger) *ImageHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImageHandler{
		users:       users,
		renderer:    renderer,
		destination: destination,
		logger:      logger,
	}
}

func (h *ImageHandler) write(w http.ResponseWriter, draw func(*bytes.Buffer) error) {
	var buf bytes.Buffer
	if err := draw(&buf); err != nil {
		h.logger.Error("failed to render image", zap.Error(err))
		frame.WriteError(w, http.StatusInternalServerError, msgImageFailed)
		return
	}
	w.Header().Set("Content-Type", render.ContentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (h *ImageHandler) userError(w http.ResponseWriter, err error) {
	if errors.Is(err, model.ErrNotFound) {
		frame.WriteError(w, http.StatusNotFound, msgImageUserNotFound)
		return
	}
	h.logger.Error("image user lookup failed", zap.Error(err))
	frame.WriteError(w, http.StatusBadGateway, msgSearchFailed)
}

func profileOf(u model.UserRecord) render.Profile {
	return render.Profile{
		AvatarURL: u.AvatarURL,
		Name:      u.DisplayName,
		Handle:    u.Handle,
		Bio:       u.Bio,
		Followers: render.FormatFollowers(u.FollowerCount),
	}
}

// HandleInitial handles GET /initial-image
func (h *ImageHandler) HandleInitial(w http.ResponseWriter, r *http.Request) {
	h.write(w, func(buf *bytes.Buffer) error {
		return h.renderer.Initial(buf)
	})
}

// HandleReview handles GET /review-image/{toId}
func (h *ImageHandler) HandleReview(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.ResolveByID(r.Context(), pathParam(r, "toId"))
	if err != nil {
		h.userError(w, err)
		return
	}

	p := profileOf(user)
	p.Subtitle = "Receives ETH on " + h.destination.DisplayName
	h.write(w, func(buf *bytes.Buffer) error {
		return h.renderer.Profile(buf, p)
	})
}

// HandleSend handles GET /send-image/{toId}/{amount}/{received}/{chain}/{currency}
func (h *ImageHandler) HandleSend(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.ResolveByID(r.Context(), pathParam(r, "toId"))
	if err != nil {
		h.userError(w, err)
		return
	}

	p := profileOf(user)
	p.Summary = &render.SendSummary{
		Amount:   pathParam(r, "amount"),
		Currency: pathParam(r, "currency"),
		Chain:    pathParam(r, "chain"),
		Received: pathParam(r, "received"),
	}
	h.write(w, func(buf *bytes.Buffer) error {
		return h.renderer.Profile(buf, p)
	})
}

// HandleProcessing handles GET /tx-processing/{fromId}/{toId}/{received}
func (h *ImageHandler) HandleProcessing(w http.ResponseWriter, r *http.Request) {
	h.status(w, r, "In progress", "")
}

// HandleSuccess handles GET /tx-success/{fromId}/{toId}/{received}
func (h *ImageHandler) HandleSuccess(w http.ResponseWriter, r *http.Request) {
	h.status(w, r, "Success", successColor)
}

// HandleFailed handles GET /tx-failed/{fromId}/{toId}/{received}
func (h *ImageHandler) HandleFailed(w http.ResponseWriter, r *http.Request) {
	h.status(w, r, "Settlement is taking too long", failedColor)
}

// status draws the two-party card. Both users are fetched concurrently.
func (h *ImageHandler) status(w http.ResponseWriter, r *http.Request, label, color string) {
	users, err := h.users.ResolveMany(r.Context(), pathParam(r, "fromId"), pathParam(r, "toId"))
	if err != nil {
		h.userError(w, err)
		return
	}
	from, to := users[0], users[1]

	s := render.Status{
		FromAvatar: from.AvatarURL,
		FromName:   from.DisplayName,
		ToAvatar:   to.AvatarURL,
		ToName:     to.DisplayName,
		Received:   pathParam(r, "received"),
		Label:      label,
		Color:      color,
	}
	h.write(w, func(buf *bytes.Buffer) error {
		return h.renderer.Status(buf, s)
	})
}
