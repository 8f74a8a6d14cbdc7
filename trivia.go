// Triviagrid
//
// Two players face a Jeopardy-style grid of category/point cards. The active
// player picks a card, which fetches a multiple-choice question from the
// Open Trivia Database; a correct answer banks the card's points, and either
// way the turn passes to the other player. The game ends when every card has
// been used, and the higher score wins.
//
// Features:
// - WebSockets per game ID: /path/:gameid and /path/:gameid/ws
// - Two seats per game; the first joiner takes the first turn
// - Fixed grid of categories x point values, each card single-use
// - Question difficulty derived from the card's point value
// - Cards are marked used before the question fetch, so a card can never
//   be opened twice even while the fetch is outstanding
// - Only the active player receives the question; everyone sees the card gray out
// - A failed fetch leaves the card permanently used and worth nothing
// - Full session reset when a seated player disconnects
// - Players identified by cookie (playerID)
// - Games auto-reaped after configurable idle timeout
// - Random 8-char game IDs via crypto/rand, with server-side collision check
// - In-browser QR button to share the current session, backed by go-qrcode

package main

import (
	"crypto/rand"
	_ "embed"
	"encoding/hex"
	"log"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"
)

// The grid is the Cartesian product of these two lists. Card IDs are
// "<category>-<points>", identical on server and client.
var (
	gridCategories = []string{"animals", "geo", "history", "science"}
	gridPoints     = []int{100, 200, 300, 400, 500}
)

func totalCards() int {
	return len(gridCategories) * len(gridPoints)
}

func cardID(category string, points int) string {
	return category + "-" + strconv.Itoa(points)
}

// parseCardID splits a card ID and rejects anything not in the grid.
func parseCardID(id string) (category string, points int, ok bool) {
	i := strings.LastIndexByte(id, '-')
	if i <= 0 || i == len(id)-1 {
		return "", 0, false
	}

	category = id[:i]
	points, err := strconv.Atoi(id[i+1:])
	if err != nil {
		return "", 0, false
	}

	validCategory := false
	for _, c := range gridCategories {
		if c == category {
			validCategory = true
			break
		}
	}
	validPoints := false
	for _, p := range gridPoints {
		if p == points {
			validPoints = true
			break
		}
	}
	if !validCategory || !validPoints {
		return "", 0, false
	}

	return category, points, true
}

// Seat holds the data we store server-side for one player.
type Seat struct {
	PlayerID string `json:"id"`
	Name     string `json:"name"`
	Score    int    `json:"score"`
}

// Session status values.
const (
	statusWaiting    = "waiting"
	statusInProgress = "in_progress"
	statusFinished   = "finished"
)

// Messages coming from clients
type ClientMessage struct {
	Type   string `json:"type"`              // "join", "select_card", "submit_answer"
	Name   string `json:"name,omitempty"`    // join
	CardID string `json:"card_id,omitempty"` // select_card / submit_answer
	Answer string `json:"answer,omitempty"`  // submit_answer
}

// SessionInfoMessage is sent immediately on connect so the client knows
// the session status and whether this cookie already holds a seat.
type SessionInfoMessage struct {
	Type     string `json:"type"`   // "session_info"
	Status   string `json:"status"` // waiting / in_progress / finished
	IsSeated bool   `json:"is_seated"`
	Name     string `json:"name,omitempty"`
}

// SimpleMessage is for generic notifications ("waiting", "game_full",
// "player_disconnected", "error").
type SimpleMessage struct {
	Type    string `json:"type"`
	Message string `json:"message,omitempty"`
}

// PlayersUpdatedMessage carries the current seat list with scores.
type PlayersUpdatedMessage struct {
	Type    string `json:"type"` // "players_updated"
	Players []Seat `json:"players"`
}

// GameStartedMessage carries everything a client needs to render the grid.
type GameStartedMessage struct {
	Type          string   `json:"type"` // "game_started"
	Categories    []string `json:"categories"`
	Points        []int    `json:"points"`
	Players       []Seat   `json:"players"`
	CurrentTurnID string   `json:"current_turn_id"`
}

// CardUsedMessage grays a card out on every client.
type CardUsedMessage struct {
	Type   string `json:"type"` // "card_used"
	CardID string `json:"card_id"`
}

// QuestionReadyMessage goes to the active player only.
type QuestionReadyMessage struct {
	Type     string   `json:"type"` // "question_ready"
	CardID   string   `json:"card_id"`
	Question string   `json:"question"`
	Answers  []string `json:"answers"`
	Correct  string   `json:"correct"`
}

// ScoreUpdatedMessage reports the outcome of an answer to everyone.
type ScoreUpdatedMessage struct {
	Type     string `json:"type"` // "score_updated"
	PlayerID string `json:"player_id"`
	NewScore int    `json:"new_score"`
	Correct  bool   `json:"correct"`
	Points   int    `json:"points"`
}

// TurnChangedMessage announces the new active player.
type TurnChangedMessage struct {
	Type          string `json:"type"` // "turn_changed"
	CurrentTurnID string `json:"current_turn_id"`
}

// GameOverMessage carries the winner's name (or "Draw") and the final
// standings, sorted by score descending.
type GameOverMessage struct {
	Type        string `json:"type"` // "game_over"
	Winner      string `json:"winner"`
	Leaderboard []Seat `json:"leaderboard"`
}

type Client struct {
	conn     *websocket.Conn
	send     chan any
	playerID string
}

type actionRequest struct {
	client *Client
	msg    ClientMessage
}

// questionResult carries a finished provider fetch back into the hub loop.
// generation identifies the game the fetch was started for.
type questionResult struct {
	playerID   string
	cardID     string
	points     int
	generation int
	question   Question
	err        error
}

type pendingQuestion struct {
	correct string
	points  int
}

type Hub struct {
	id       string
	clients  map[*Client]bool
	provider questionProvider

	register  chan *Client
	unreg     chan *Client
	actions   chan actionRequest
	questions chan questionResult

	mu sync.RWMutex

	createdAt  time.Time
	lastActive time.Time

	status         string
	seats          []Seat // 0..2, in join order
	activePlayerID string // seat holding the turn while in progress
	fetchingCard   string // card with a question fetch outstanding, if any
	generation     int    // bumped on every reset and start; stamps fetches
	usedCards      map[string]bool
	pending        map[string]pendingQuestion // cardID -> stored answer
}

func newHub(gameID string, provider questionProvider) *Hub {
	now := time.Now()
	return &Hub{
		id:         gameID,
		clients:    make(map[*Client]bool),
		provider:   provider,
		register:   make(chan *Client),
		unreg:      make(chan *Client),
		actions:    make(chan actionRequest),
		questions:  make(chan questionResult),
		createdAt:  now,
		lastActive: now,
		status:     statusWaiting,
		usedCards:  make(map[string]bool),
		pending:    make(map[string]pendingQuestion),
	}
}

// run serializes every state mutation for this game in one goroutine.
// Provider fetches happen on the side and re-enter through h.questions.
func (h *Hub) run(cfg *Config) {
	for {
		select {
		case c := <-h.register:
			h.handleRegister(c)

		case c := <-h.unreg:
			h.handleUnregister(cfg, c)

		case ar := <-h.actions:
			switch ar.msg.Type {
			case "join":
				h.handleJoin(cfg, ar.client, ar.msg)
			case "select_card":
				h.handleSelectCard(cfg, ar.client, ar.msg)
			case "submit_answer":
				h.handleSubmitAnswer(cfg, ar.client, ar.msg)
			}

		case qr := <-h.questions:
			h.handleQuestionResult(cfg, qr)
		}
	}
}

func (h *Hub) seatIndexLocked(playerID string) int {
	for i := range h.seats {
		if h.seats[i].PlayerID == playerID {
			return i
		}
	}
	return -1
}

// sendLocked delivers to one client, dropping it if its buffer is full.
func (h *Hub) sendLocked(c *Client, msg any) {
	select {
	case c.send <- msg:
	default:
		delete(h.clients, c)
		close(c.send)
	}
}

// sendToPlayerLocked delivers to every connection held by one cookie.
func (h *Hub) sendToPlayerLocked(playerID string, msg any) {
	for c := range h.clients {
		if c.playerID == playerID {
			h.sendLocked(c, msg)
		}
	}
}

func (h *Hub) broadcastLocked(msg any) {
	for c := range h.clients {
		h.sendLocked(c, msg)
	}
}

func (h *Hub) broadcastSeatsLocked() {
	h.broadcastLocked(PlayersUpdatedMessage{
		Type:    "players_updated",
		Players: append([]Seat(nil), h.seats...),
	})
}

// resetGameLocked returns the session to a fresh grid, scoreboard and turn.
// Seats that remain keep their names but start over at zero.
func (h *Hub) resetGameLocked() {
	h.status = statusWaiting
	h.activePlayerID = ""
	h.fetchingCard = ""
	h.generation++
	h.usedCards = make(map[string]bool)
	h.pending = make(map[string]pendingQuestion)
	for i := range h.seats {
		h.seats[i].Score = 0
	}
}

// startGameLocked begins a fresh game with the two seated players.
// The first joiner takes the first turn.
func (h *Hub) startGameLocked(cfg *Config) {
	h.usedCards = make(map[string]bool)
	h.pending = make(map[string]pendingQuestion)
	h.fetchingCard = ""
	h.generation++
	for i := range h.seats {
		h.seats[i].Score = 0
	}
	h.status = statusInProgress
	h.activePlayerID = h.seats[0].PlayerID

	logf(cfg, "GAMES: Game %s started with %q and %q", h.id, h.seats[0].Name, h.seats[1].Name)

	h.broadcastLocked(GameStartedMessage{
		Type:          "game_started",
		Categories:    gridCategories,
		Points:        gridPoints,
		Players:       append([]Seat(nil), h.seats...),
		CurrentTurnID: h.activePlayerID,
	})
}

func (h *Hub) handleRegister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.lastActive = time.Now()
	h.clients[c] = true

	idx := h.seatIndexLocked(c.playerID)
	info := SessionInfoMessage{
		Type:     "session_info",
		Status:   h.status,
		IsSeated: idx >= 0,
	}
	if idx >= 0 {
		info.Name = h.seats[idx].Name
	}

	h.sendLocked(c, info)
	h.sendLocked(c, PlayersUpdatedMessage{
		Type:    "players_updated",
		Players: append([]Seat(nil), h.seats...),
	})
}

// handleUnregister drops the connection; if it was the last connection for a
// seated cookie, the seat is removed and the whole session resets, whether or
// not the game had started.
func (h *Hub) handleUnregister(cfg *Config, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.lastActive = time.Now()

	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}

	idx := h.seatIndexLocked(c.playerID)
	if idx < 0 {
		return
	}

	// Closing one tab of several, or the dead socket of a player who already
	// reconnected, must not count as a disconnect.
	for other := range h.clients {
		if other.playerID == c.playerID {
			return
		}
	}

	logf(cfg, "GAMES: Player %q left %s", h.seats[idx].Name, h.id)

	h.seats = append(h.seats[:idx], h.seats[idx+1:]...)
	h.resetGameLocked()

	h.broadcastSeatsLocked()
	h.broadcastLocked(SimpleMessage{Type: "player_disconnected"})
}

// handleJoin processes "join" messages.
func (h *Hub) handleJoin(cfg *Config, c *Client, msg ClientMessage) {
	name := strings.TrimSpace(msg.Name)

	h.mu.Lock()
	defer h.mu.Unlock()

	h.lastActive = time.Now()

	if name == "" {
		h.sendLocked(c, SimpleMessage{
			Type:    "error",
			Message: "You must enter a name.",
		})
		return
	}

	// A cookie that already holds a seat may change its name, nothing else.
	if idx := h.seatIndexLocked(c.playerID); idx >= 0 {
		h.seats[idx].Name = name
		h.broadcastSeatsLocked()
		return
	}

	if len(h.seats) >= 2 {
		h.sendLocked(c, SimpleMessage{
			Type:    "game_full",
			Message: "This game already has two players.",
		})
		return
	}

	h.seats = append(h.seats, Seat{
		PlayerID: c.playerID,
		Name:     name,
		Score:    0,
	})
	logf(cfg, "GAMES: Player %q joined %s", name, h.id)

	if len(h.seats) == 1 {
		h.sendLocked(c, SimpleMessage{
			Type:    "waiting",
			Message: "Waiting for a second player...",
		})
	}

	h.broadcastSeatsLocked()

	if len(h.seats) == 2 {
		h.startGameLocked(cfg)
	}
}

// handleSelectCard processes a card pick by the active player. The card is
// marked used and announced before the question fetch starts, so the
// outstanding fetch is never a window in which the card can be reopened.
func (h *Hub) handleSelectCard(cfg *Config, c *Client, msg ClientMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.lastActive = time.Now()

	if h.status != statusInProgress || c.playerID != h.activePlayerID {
		return
	}

	// One card at a time: the open question (or the fetch for one) must be
	// resolved before another card may be picked.
	if h.fetchingCard != "" || len(h.pending) > 0 {
		return
	}

	category, points, ok := parseCardID(msg.CardID)
	if !ok || h.usedCards[msg.CardID] {
		return
	}

	h.fetchingCard = msg.CardID
	h.usedCards[msg.CardID] = true
	h.broadcastLocked(CardUsedMessage{
		Type:   "card_used",
		CardID: msg.CardID,
	})

	logf(cfg, "GAMES: %q opened card %q in %s", c.playerID, msg.CardID, h.id)

	go h.fetchQuestion(c.playerID, msg.CardID, category, points, h.generation)
}

// fetchQuestion runs outside the hub loop; the result re-enters through
// h.questions so state mutations stay serialized.
func (h *Hub) fetchQuestion(playerID, card, category string, points, generation int) {
	question, err := h.provider.FetchQuestion(category, difficultyFor(points))

	h.questions <- questionResult{
		playerID:   playerID,
		cardID:     card,
		points:     points,
		generation: generation,
		question:   question,
		err:        err,
	}
}

// handleQuestionResult stores the fetched answer and delivers the question
// to the active player, or reports a dead card on provider failure.
func (h *Hub) handleQuestionResult(cfg *Config, res questionResult) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.lastActive = time.Now()

	// The session may have reset (and restarted) while the fetch was in
	// flight; a result from an earlier game belongs to a grid that no longer
	// exists and must not clear state or reach a client.
	if res.generation != h.generation {
		return
	}

	if res.cardID == h.fetchingCard {
		h.fetchingCard = ""
	}

	if res.err != nil {
		logf(cfg, "GAMES: Question fetch for %q in %s failed: %v", res.cardID, h.id, res.err)
		h.sendToPlayerLocked(res.playerID, SimpleMessage{
			Type:    "error",
			Message: "Could not load a question. The card is spent.",
		})
		return
	}

	if h.status != statusInProgress || h.activePlayerID != res.playerID || !h.usedCards[res.cardID] {
		return
	}

	h.pending[res.cardID] = pendingQuestion{
		correct: res.question.Correct,
		points:  res.points,
	}

	h.sendToPlayerLocked(res.playerID, QuestionReadyMessage{
		Type:     "question_ready",
		CardID:   res.cardID,
		Question: res.question.Text,
		Answers:  shuffledAnswers(res.question),
		Correct:  res.question.Correct,
	})
}

// handleSubmitAnswer resolves the pending question for a card: scores a
// correct answer, flips the turn, and ends the game once the grid is spent.
func (h *Hub) handleSubmitAnswer(cfg *Config, c *Client, msg ClientMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.lastActive = time.Now()

	if h.status != statusInProgress || c.playerID != h.activePlayerID {
		return
	}

	pq, ok := h.pending[msg.CardID]
	if !ok {
		return
	}

	idx := h.seatIndexLocked(c.playerID)
	if idx < 0 {
		return
	}

	correct := msg.Answer == pq.correct
	if correct {
		h.seats[idx].Score += pq.points
	}
	delete(h.pending, msg.CardID)

	logf(cfg, "GAMES: %q answered %q (correct=%t) in %s", h.seats[idx].Name, msg.CardID, correct, h.id)

	// Strict alternation between the two seats, keyed by identity.
	for i := range h.seats {
		if h.seats[i].PlayerID != c.playerID {
			h.activePlayerID = h.seats[i].PlayerID
			break
		}
	}

	h.broadcastLocked(ScoreUpdatedMessage{
		Type:     "score_updated",
		PlayerID: c.playerID,
		NewScore: h.seats[idx].Score,
		Correct:  correct,
		Points:   pq.points,
	})
	h.broadcastLocked(TurnChangedMessage{
		Type:          "turn_changed",
		CurrentTurnID: h.activePlayerID,
	})

	if len(h.usedCards) == totalCards() {
		h.finishGameLocked(cfg)
	}
}

func (h *Hub) finishGameLocked(cfg *Config) {
	h.status = statusFinished

	leaderboard := append([]Seat(nil), h.seats...)
	sort.SliceStable(leaderboard, func(i, j int) bool {
		return leaderboard[i].Score > leaderboard[j].Score
	})

	winner := "Draw"
	if len(leaderboard) == 2 && leaderboard[0].Score != leaderboard[1].Score {
		winner = leaderboard[0].Name
	}

	logf(cfg, "GAMES: Game %s over after %s, winner %q",
		h.id, time.Since(h.createdAt).Round(time.Second), winner)

	h.broadcastLocked(GameOverMessage{
		Type:        "game_over",
		Winner:      winner,
		Leaderboard: leaderboard,
	})
}

// shuffledAnswers mixes the correct answer in with the distractors.
// Fisher-Yates using crypto/rand; the order just needs to vary.
func shuffledAnswers(q Question) []string {
	answers := make([]string, 0, len(q.Distractors)+1)
	answers = append(answers, q.Distractors...)
	answers = append(answers, q.Correct)

	for i := len(answers) - 1; i > 0; i-- {
		var b [1]byte
		if _, err := rand.Read(b[:]); err != nil {
			continue
		}
		j := int(b[0]) % (i + 1)
		answers[i], answers[j] = answers[j], answers[i]
	}

	return answers
}

// closeAll disconnects all clients of this hub (used by reaper).
func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		close(c.send)
		_ = c.conn.Close()
		delete(h.clients, c)
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

const playerCookieName = "triviagrid_id"

func getOrSetPlayerID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(playerCookieName); err == nil && c.Value != "" {
		return c.Value
	}

	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		log.Println("rand.Read error:", err)
		return ""
	}
	id := hex.EncodeToString(buf)

	http.SetCookie(w, &http.Cookie{
		Name:     playerCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return id
}

// GameManager holds a set of hubs keyed by game ID, so each $path/$gameid
// is its own isolated session.
type GameManager struct {
	mu          sync.Mutex
	hubs        map[string]*Hub
	idleTimeout time.Duration
	provider    questionProvider
}

func newGameManager(idleTimeout time.Duration, provider questionProvider) *GameManager {
	gm := &GameManager{
		hubs:        make(map[string]*Hub),
		idleTimeout: idleTimeout,
		provider:    provider,
	}
	if idleTimeout > 0 {
		go gm.reaperLoop()
	}
	return gm
}

func (gm *GameManager) getHub(cfg *Config, gameID string) *Hub {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if hub, ok := gm.hubs[gameID]; ok {
		return hub
	}

	hub := newHub(gameID, gm.provider)
	gm.hubs[gameID] = hub
	go hub.run(cfg)
	return hub
}

// newGameID generates a crypto-random game ID and ensures it doesn't
// collide with existing games.
func (gm *GameManager) newGameID() string {
	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	for {
		buf := make([]byte, 8)
		if _, err := rand.Read(buf); err != nil {
			panic("crypto/rand failure: " + err.Error())
		}
		out := make([]byte, 8)
		for i := range out {
			out[i] = letters[int(buf[i])%len(letters)]
		}
		id := string(out)

		gm.mu.Lock()
		_, exists := gm.hubs[id]
		gm.mu.Unlock()

		if !exists {
			return id
		}
	}
}

// reaperLoop periodically removes hubs that have been idle longer than idleTimeout.
func (gm *GameManager) reaperLoop() {
	ticker := time.NewTicker(gm.idleTimeout / 2)
	for range ticker.C {
		cutoff := time.Now().Add(-gm.idleTimeout)

		gm.mu.Lock()
		for id, hub := range gm.hubs {
			hub.mu.RLock()
			last := hub.lastActive
			hub.mu.RUnlock()

			if last.Before(cutoff) {
				delete(gm.hubs, id)
				go hub.closeAll()
			}
		}
		gm.mu.Unlock()
	}
}

// WebSocket handler that picks the hub based on :gameid
func serveWSForManager(cfg *Config, gm *GameManager) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		gameID := ps.ByName("gameid")
		if gameID == "" {
			http.Error(w, "missing game id", http.StatusBadRequest)
			return
		}

		playerID := getOrSetPlayerID(w, r)
		if playerID == "" {
			http.Error(w, "unable to assign player id", http.StatusInternalServerError)
			return
		}

		hub := gm.getHub(cfg, gameID)

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("upgrade error:", err)
			return
		}

		client := &Client{
			conn:     conn,
			send:     make(chan any, 8),
			playerID: playerID,
		}

		hub.register <- client

		go client.writePump()
		client.readPump(hub)
	}
}

func (c *Client) readPump(h *Hub) {
	defer func() {
		h.unreg <- c
		_ = c.conn.Close()
	}()

	for {
		var msg ClientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}

		switch msg.Type {
		case "join", "select_card", "submit_answer":
			h.actions <- actionRequest{
				client: c,
				msg:    msg,
			}
		default:
			// ignore unknown types
		}
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()

	for msg := range c.send {
		if err := c.conn.WriteJSON(msg); err != nil {
			return
		}
	}
}

// QR handler: generates a PNG QR code for the current game URL using go-qrcode.
func qrHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	gameID := ps.ByName("gameid")
	if gameID == "" {
		http.Error(w, "missing game id", http.StatusBadRequest)
		return
	}

	// Derive scheme (respecting TLS and X-Forwarded-Proto if present).
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}

	// We are at /.../:gameid/qr; strip trailing "/qr" to get the game URL.
	path := strings.TrimSuffix(r.URL.Path, "/qr")

	url := scheme + "://" + r.Host + path

	const qrSize = 320 // mobile-friendly size
	png, err := qrcode.Encode(url, qrcode.Medium, qrSize)
	if err != nil {
		http.Error(w, "qr generation failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}

// ---- Static file paths ----

//go:embed trivia/index.html
var indexHTML []byte

//go:embed trivia/app.css
var triviagridCSS []byte

//go:embed trivia/app.js
var triviagridJS []byte

func getIndexHandler(cfg *Config) func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.Header().Set("Expires", time.Now().Add(time.Hour).UTC().Format(http.TimeFormat))
		securityHeaders(cfg, w)

		_ = getOrSetPlayerID(w, r)

		_, _ = w.Write(indexHTML)
	}
}

func getCssHandler(cfg *Config) func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", "text/css; charset=utf-8")
		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.Header().Set("Expires", time.Now().Add(time.Hour).UTC().Format(http.TimeFormat))
		securityHeaders(cfg, w)

		_, _ = w.Write(triviagridCSS)
	}
}

func getJsHandler(cfg *Config) func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.Header().Set("Expires", time.Now().Add(time.Hour).UTC().Format(http.TimeFormat))
		securityHeaders(cfg, w)

		_, _ = w.Write(triviagridJS)
	}
}

// redirectNewGame handles GET /path by generating a new random game ID
// (with server-side collision detection) and redirecting to /path/:gameid.
func redirectNewGame(cfg *Config, path string, gm *GameManager) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		gameID := gm.newGameID()
		logf(cfg, "GAMES: Created game %s/%s", path, gameID)
		http.Redirect(w, r, path+"/"+gameID, http.StatusTemporaryRedirect)
	}
}

// registerTriviaGame sets up routes so that:
//   - $path                  → redirects to new random game (8-char ID)
//   - $path/:gameid          → HTML client
//   - $path/:gameid/ws       → WebSocket for that game
//   - $path/:gameid/qr       → PNG QR code for that game URL
func registerTriviaGame(cfg *Config, path string, mux *httprouter.Router) {
	provider := newOpenTDBProvider(cfg.triviaEndpoint, cfg.triviaTimeout)
	gm := newGameManager(cfg.sessionTimeout, provider)

	// Root path → redirect to new random game
	mux.GET(path, redirectNewGame(cfg, path, gm))

	// Per-game client view (HTML)
	mux.GET(cfg.prefix+path+"/:gameid", getIndexHandler(cfg))

	// Shared assets (no gameid in route)
	mux.GET(cfg.prefix+"/assets/trivia/app.css", getCssHandler(cfg))
	mux.GET(cfg.prefix+"/assets/trivia/app.js", getJsHandler(cfg))

	// Per-game websocket
	mux.GET(cfg.prefix+path+"/:gameid/ws", serveWSForManager(cfg, gm))

	// Per-game QR code
	mux.GET(cfg.prefix+path+"/:gameid/qr", qrHandler)
}
