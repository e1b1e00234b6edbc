package web

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/edu-arcade/internal/bridge"
)

// HostConfig holds configuration for the host loop.
type HostConfig struct {
	TickInterval  time.Duration // How often bridge time is advanced
	InboundBuffer int           // Pending connection messages before senders block
	EventBuffer   int           // Buffered events before the oldest are dropped
	Bridge        bridge.Config
}

// DefaultHostConfig returns sensible defaults.
func DefaultHostConfig() HostConfig {
	return HostConfig{
		TickInterval:  50 * time.Millisecond,
		InboundBuffer: 256,
		EventBuffer:   64,
		Bridge:        bridge.DefaultConfig(),
	}
}

// hostMessage is a message from a connection handler to the host loop.
type hostMessage interface {
	hostMessage()
}

type attachMsg struct {
	ch *bridge.QueueChannel
}

type frameMsg struct {
	src  bridge.ChannelID
	data []byte
}

type disconnectMsg struct {
	id bridge.ChannelID
}

func (attachMsg) hostMessage()     {}
func (frameMsg) hostMessage()      {}
func (disconnectMsg) hostMessage() {}

// Host owns one Bridge and serialises all traffic to it through a single loop.
// Connection handlers never touch the Bridge directly.
type Host struct {
	config HostConfig
	bridge *bridge.Bridge
	logger *log.Logger
	saver  bridge.ResultSaver // Optional, can be nil

	contentID string
	trusted   *bridge.QueueChannel // Owned by the loop

	msgChan chan hostMessage
	events  chan bridge.Event
	done    chan struct{}
	saves   sync.WaitGroup // Pending result saves
}

// NewHost creates a host for the given game payload. A nil payload is allowed:
// the runtime then never receives configuration.
func NewHost(cfg HostConfig, data *bridge.GameData, logger *log.Logger) *Host {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = DefaultHostConfig().TickInterval
	}
	if cfg.EventBuffer < 1 {
		cfg.EventBuffer = 64
	}

	h := &Host{
		config:  cfg,
		logger:  logger,
		msgChan: make(chan hostMessage, max(1, cfg.InboundBuffer)),
		events:  make(chan bridge.Event, cfg.EventBuffer),
		done:    make(chan struct{}),
	}
	if data != nil {
		h.contentID = data.ID
	}

	h.bridge = bridge.New(
		bridge.WithConfig(cfg.Bridge),
		bridge.WithLogger(logger),
		bridge.WithListener(h.onEvent),
	)
	h.bridge.SetGameData(data)
	return h
}

// SetResultSaver sets the optional result saver. Must be called before Run.
func (h *Host) SetResultSaver(saver bridge.ResultSaver) {
	h.saver = saver
}

// Events returns bridge events for the presentation layer. When nobody reads,
// the oldest events are dropped.
func (h *Host) Events() <-chan bridge.Event {
	return h.events
}

// Done returns a channel that closes when Run returns.
func (h *Host) Done() <-chan struct{} {
	return h.done
}

// Run processes connection traffic and advances bridge time until ctx is done.
func (h *Host) Run(ctx context.Context) error {
	defer close(h.done)
	defer h.shutdown()

	ticker := time.NewTicker(h.config.TickInterval)
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg := <-h.msgChan:
			h.handleMessage(msg)
		case now := <-ticker.C:
			h.bridge.Advance(now.Sub(last))
			last = now
		}
	}
}

func (h *Host) handleMessage(msg hostMessage) {
	switch m := msg.(type) {
	case attachMsg:
		if h.trusted != nil {
			h.logger.Info("replacing runtime connection", "old", h.trusted.ID(), "new", m.ch.ID())
			h.trusted.Close()
		}
		h.trusted = m.ch
		h.bridge.Attach(m.ch)
	case frameMsg:
		h.bridge.Deliver(m.src, m.data)
	case disconnectMsg:
		if h.trusted == nil || h.trusted.ID() != m.id {
			return
		}
		h.bridge.Detach()
		h.trusted = nil
	}
}

func (h *Host) shutdown() {
	h.bridge.Close()
	if h.trusted != nil {
		h.trusted.Close()
		h.trusted = nil
	}
	h.saves.Wait()
}

// onEvent runs on the loop as the bridge listener.
func (h *Host) onEvent(e bridge.Event) {
	switch e := e.(type) {
	case bridge.ScoreEvent:
		h.pushScore(e.Score)
	case bridge.CompletedEvent:
		h.pushScore(e.Score)
		h.save(e)
	}
	h.publish(e)
}

// save persists a completed game off the loop. shutdown waits for pending saves.
func (h *Host) save(done bridge.CompletedEvent) {
	if h.saver == nil {
		return
	}
	result := bridge.Result{
		ContentID:    h.contentID,
		RuntimeScore: done.RuntimeScore,
		BridgeScore:  done.Score,
	}
	h.saves.Add(1)
	go func() {
		defer h.saves.Done()
		if err := h.saver.SaveMazeResult(result); err != nil {
			h.logger.Warn("could not save maze result", "error", err)
		}
	}()
}

// pageFrame is consumed by the host page and never reaches the runtime.
type pageFrame struct {
	Type string    `json:"type"`
	Data scoreData `json:"data"`
}

type scoreData struct {
	Score int `json:"score"`
}

// HostScoreType tags the frame carrying the tallied score to the host page.
const HostScoreType = "HOST_SCORE"

// pushScore sends the tallied score to the page header.
func (h *Host) pushScore(score int) {
	if h.trusted == nil {
		return
	}
	raw, err := json.Marshal(pageFrame{Type: HostScoreType, Data: scoreData{Score: score}})
	if err != nil {
		h.logger.Error("encode score frame", "error", err)
		return
	}
	h.trusted.Send(raw)
}

// publish drops the oldest event when the buffer is full.
func (h *Host) publish(e bridge.Event) {
	select {
	case h.events <- e:
		return
	default:
	}
	select {
	case <-h.events:
	default:
	}
	select {
	case h.events <- e:
	default:
	}
}

// send queues a message for the loop. Returns false once the loop has stopped.
func (h *Host) send(msg hostMessage) bool {
	select {
	case h.msgChan <- msg:
		return true
	case <-h.done:
		return false
	}
}

func (h *Host) attach(ch *bridge.QueueChannel) bool {
	return h.send(attachMsg{ch: ch})
}

func (h *Host) deliver(src bridge.ChannelID, data []byte) bool {
	return h.send(frameMsg{src: src, data: data})
}

func (h *Host) disconnect(id bridge.ChannelID) {
	h.send(disconnectMsg{id: id})
}
