package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/Anuragt1104/solmentor/internal/app"
	"github.com/Anuragt1104/solmentor/internal/domain"
	"github.com/gorilla/websocket"
)

// WSHandler exposes the ledger operations over a websocket. The connection
// carries a single caller identity, established before the socket reaches
// this handler; every operation on the connection runs as that identity.
type WSHandler struct {
	ledger   *app.Ledger
	upgrader websocket.Upgrader
}

func NewWSHandler(ledger *app.Ledger) *WSHandler {
	return &WSHandler{
		ledger: ledger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type createProfilePayload struct {
	Name string `json:"name"`
}

type submitQuizPayload struct {
	QuizID         string `json:"quizId"`
	Score          int    `json:"score"`
	TotalQuestions int    `json:"totalQuestions"`
}

type awardAchievementPayload struct {
	AchievementID string `json:"achievementId"`
	Name          string `json:"name"`
	Tier          string `json:"tier"`
}

type quizResultPayload struct {
	Result  domain.QuizResult `json:"result"`
	Profile domain.Profile    `json:"profile"`
}

type achievementPayload struct {
	Achievement domain.Achievement `json:"achievement"`
	Profile     domain.Profile     `json:"profile"`
}

type recordIDPayload struct {
	QuizID        string `json:"quizId,omitempty"`
	AchievementID string `json:"achievementId,omitempty"`
}

type errorPayload struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// ServeWS upgrades the request and processes ledger operations one at a time.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	owner := r.URL.Query().Get("owner")
	if owner == "" {
		http.Error(w, "missing owner", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			return
		}
		h.dispatch(conn, r, owner, inbound)
	}
}

func (h *WSHandler) dispatch(conn *websocket.Conn, r *http.Request, owner string, inbound inboundMessage) {
	ctx := r.Context()
	switch inbound.Type {
	case "createProfile":
		var payload createProfilePayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			h.writeError(conn, errors.New("invalid createProfile payload"))
			return
		}
		profile, err := h.ledger.CreateProfile(ctx, owner, payload.Name)
		if err != nil {
			h.writeError(conn, err)
			return
		}
		h.write(conn, "profile", profile)

	case "submitQuiz":
		var payload submitQuizPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			h.writeError(conn, errors.New("invalid submitQuiz payload"))
			return
		}
		score, total, err := quizCounts(payload.Score, payload.TotalQuestions)
		if err != nil {
			h.writeError(conn, err)
			return
		}
		profile, result, err := h.ledger.SubmitQuiz(ctx, owner, payload.QuizID, score, total)
		if err != nil {
			h.writeError(conn, err)
			return
		}
		h.write(conn, "quizResult", quizResultPayload{Result: result, Profile: profile})

	case "awardAchievement":
		var payload awardAchievementPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			h.writeError(conn, errors.New("invalid awardAchievement payload"))
			return
		}
		tier, err := domain.ParseTier(payload.Tier)
		if err != nil {
			h.writeError(conn, err)
			return
		}
		profile, achievement, err := h.ledger.AwardAchievement(ctx, owner, payload.AchievementID, payload.Name, tier)
		if err != nil {
			h.writeError(conn, err)
			return
		}
		h.write(conn, "achievement", achievementPayload{Achievement: achievement, Profile: profile})

	case "streakCheckIn":
		profile, err := h.ledger.StreakCheckIn(ctx, owner)
		if err != nil {
			h.writeError(conn, err)
			return
		}
		h.write(conn, "profile", profile)

	case "getProfile":
		profile, err := h.ledger.GetProfile(ctx, owner)
		if err != nil {
			h.writeError(conn, err)
			return
		}
		h.write(conn, "profile", profile)

	case "getQuizResult":
		var payload recordIDPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			h.writeError(conn, errors.New("invalid getQuizResult payload"))
			return
		}
		result, err := h.ledger.GetQuizResult(ctx, owner, payload.QuizID)
		if err != nil {
			h.writeError(conn, err)
			return
		}
		h.write(conn, "quizResultRecord", result)

	case "getAchievement":
		var payload recordIDPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			h.writeError(conn, errors.New("invalid getAchievement payload"))
			return
		}
		achievement, err := h.ledger.GetAchievement(ctx, owner, payload.AchievementID)
		if err != nil {
			h.writeError(conn, err)
			return
		}
		h.write(conn, "achievementRecord", achievement)

	default:
		h.writeError(conn, errors.New("unsupported message type"))
	}
}

func (h *WSHandler) write(conn *websocket.Conn, typ string, payload any) {
	if err := conn.WriteJSON(outboundMessage[any]{Type: typ, Payload: payload}); err != nil {
		log.Printf("ws write error: %v", err)
	}
}

func (h *WSHandler) writeError(conn *websocket.Conn, err error) {
	h.write(conn, "error", errorPayload{Kind: errorKind(err), Message: err.Error()})
}

func quizCounts(score, total int) (uint8, uint8, error) {
	if score < 0 || score > 255 || total < 0 || total > 255 {
		return 0, 0, domain.ErrInvalidArgument
	}
	return uint8(score), uint8(total), nil
}

// errorKind maps ledger failures to the stable kind strings clients match on.
func errorKind(err error) string {
	switch {
	case errors.Is(err, domain.ErrAlreadyExists):
		return "alreadyExists"
	case errors.Is(err, domain.ErrNotFound):
		return "notFound"
	case errors.Is(err, domain.ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, domain.ErrInvalidScore):
		return "invalidScore"
	case errors.Is(err, domain.ErrInvalidArgument):
		return "invalidArgument"
	default:
		return "internal"
	}
}
