package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/pitchside/internal/models"
)

// ResultHandler is called for each finished match received on the stream.
type ResultHandler func(models.MatchRecord) error

// ReconnectConfig controls reconnection behavior for the results stream.
type ReconnectConfig struct {
	MaxRetries        int
	InitialBackoff    time.Duration
	MaxBackoff        time.Duration
	BackoffMultiplier float64
}

// DefaultReconnectConfig returns default reconnection configuration
func DefaultReconnectConfig() ReconnectConfig {
	return ReconnectConfig{
		MaxRetries:        10,
		InitialBackoff:    1 * time.Second,
		MaxBackoff:        30 * time.Second,
		BackoffMultiplier: 1.5,
	}
}

// resultMessage is the wire format of one finished-match event.
type resultMessage struct {
	Op       string             `json:"op"`
	League   string             `json:"league,omitempty"`
	Date     string             `json:"date,omitempty"`
	HomeTeam string             `json:"home_team,omitempty"`
	AwayTeam string             `json:"away_team,omitempty"`
	Stats    map[string]float64 `json:"stats,omitempty"`
}

// ResultsStream maintains a WebSocket subscription to a live results feed
// and dispatches each completed match to registered handlers.
type ResultsStream struct {
	url             string
	apiKey          string
	reconnectConfig ReconnectConfig
	logger          *logrus.Logger

	mu              sync.RWMutex
	conn            *websocket.Conn
	isConnected     bool
	handlers        []ResultHandler
	lastMessageTime time.Time
}

// NewResultsStream creates a stream client for the given endpoint.
func NewResultsStream(url, apiKey string, logger *logrus.Logger) *ResultsStream {
	if logger == nil {
		logger = logrus.New()
	}
	return &ResultsStream{
		url:             url,
		apiKey:          apiKey,
		reconnectConfig: DefaultReconnectConfig(),
		logger:          logger,
	}
}

// AddHandler registers a handler for finished matches.
func (s *ResultsStream) AddHandler(h ResultHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers = append(s.handlers, h)
}

// Connect dials the feed and starts the read loop.
func (s *ResultsStream) Connect(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isConnected {
		return fmt.Errorf("already connected")
	}

	s.logger.WithField("url", s.url).Info("Connecting to results stream")

	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.DialContext(ctx, s.url, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to results stream: %w", err)
	}

	s.conn = conn
	s.isConnected = true
	s.lastMessageTime = time.Now()

	if s.apiKey != "" {
		auth := map[string]interface{}{"op": "auth", "api_key": s.apiKey}
		if err := conn.WriteJSON(auth); err != nil {
			conn.Close()
			s.isConnected = false
			return fmt.Errorf("failed to authenticate stream: %w", err)
		}
	}

	go s.readLoop(ctx)
	return nil
}

// Run connects and keeps reconnecting with exponential backoff until the
// context is cancelled or the retry budget runs out.
func (s *ResultsStream) Run(ctx context.Context) error {
	backoff := s.reconnectConfig.InitialBackoff
	retries := 0

	for {
		if err := s.Connect(ctx); err != nil {
			retries++
			if retries > s.reconnectConfig.MaxRetries {
				return fmt.Errorf("results stream gave up after %d retries: %w", retries-1, err)
			}
			s.logger.WithFields(logrus.Fields{
				"attempt": retries,
				"backoff": backoff.String(),
			}).Warn("Results stream connection failed, retrying")

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			backoff = time.Duration(float64(backoff) * s.reconnectConfig.BackoffMultiplier)
			if backoff > s.reconnectConfig.MaxBackoff {
				backoff = s.reconnectConfig.MaxBackoff
			}
			continue
		}

		retries = 0
		backoff = s.reconnectConfig.InitialBackoff

		// Block until the read loop drops the connection.
		ticker := time.NewTicker(time.Second)
	waiting:
		for {
			select {
			case <-ctx.Done():
				ticker.Stop()
				return s.Close()
			case <-ticker.C:
				if !s.IsConnected() {
					ticker.Stop()
					break waiting
				}
			}
		}
	}
}

func (s *ResultsStream) readLoop(ctx context.Context) {
	for {
		var raw json.RawMessage
		if err := s.conn.ReadJSON(&raw); err != nil {
			if ctx.Err() == nil {
				s.logger.WithError(err).Warn("Results stream read error")
			}
			s.mu.Lock()
			s.isConnected = false
			s.mu.Unlock()
			return
		}

		s.mu.Lock()
		s.lastMessageTime = time.Now()
		handlers := s.handlers
		s.mu.Unlock()

		var msg resultMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			s.logger.WithError(err).Warn("Discarding malformed stream message")
			continue
		}
		if msg.Op != "result" {
			continue
		}

		record, err := msg.toRecord()
		if err != nil {
			s.logger.WithError(err).Warn("Discarding invalid result message")
			continue
		}
		for _, h := range handlers {
			if err := h(record); err != nil {
				s.logger.WithError(err).Warn("Result handler error")
			}
		}
	}
}

func (m resultMessage) toRecord() (models.MatchRecord, error) {
	if m.HomeTeam == "" || m.AwayTeam == "" {
		return models.MatchRecord{}, fmt.Errorf("%w: missing team names", ErrInvalidData)
	}
	date, err := parseMatchDate(m.Date)
	if err != nil {
		return models.MatchRecord{}, fmt.Errorf("%w: %v", ErrInvalidData, err)
	}
	stats := m.Stats
	if stats == nil {
		stats = map[string]float64{}
	}
	return models.MatchRecord{
		League:   m.League,
		Date:     date,
		HomeTeam: m.HomeTeam,
		AwayTeam: m.AwayTeam,
		Stats:    stats,
	}, nil
}

// IsConnected returns whether the stream is connected
func (s *ResultsStream) IsConnected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isConnected
}

// LastMessageTime returns the time of the last received message
func (s *ResultsStream) LastMessageTime() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastMessageTime
}

// Close closes the stream connection
func (s *ResultsStream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == nil {
		return nil
	}
	s.isConnected = false
	return s.conn.Close()
}
