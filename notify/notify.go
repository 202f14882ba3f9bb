// Package notify turns game events into messages for connected clients.
package notify

import (
	"github.com/battlesnakeio/arena/rules"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

// Message types sent to clients.
const (
	TypeKill            = "kill"
	TypeSuicide         = "suicide"
	TypeKilledEachOther = "killedEachOther"
	TypeRanIntoWall     = "ranIntoWall"
	TypeYouDied         = "youDied"
	TypeYouMadeAKill    = "youMadeAKill"
	TypeFoodCollected   = "foodCollected"
	TypeNotification    = "notification"
	TypeState           = "state"
)

// Message is one event delivered to a client.
type Message struct {
	Type    string      `json:"type" msgpack:"type"`
	Payload interface{} `json:"payload,omitempty" msgpack:"payload,omitempty"`
}

// Broadcaster delivers messages. SendTo reports false when nobody with that
// id is connected, which is not an error.
type Broadcaster interface {
	Broadcast(msg Message)
	SendTo(id string, msg Message) bool
}

// Kill is the payload of a kill.
type Kill struct {
	KillerName  string `json:"killerName" msgpack:"killerName"`
	VictimName  string `json:"victimName" msgpack:"victimName"`
	KillerColor string `json:"killerColor" msgpack:"killerColor"`
	VictimColor string `json:"victimColor" msgpack:"victimColor"`
	NewLength   int    `json:"newLength" msgpack:"newLength"`
}

// Victim is the payload of a suicide or a wall collision.
type Victim struct {
	Name  string `json:"name" msgpack:"name"`
	Color string `json:"color" msgpack:"color"`
}

// FoodCollected is the payload sent to a player that ate.
type FoodCollected struct {
	Text       string           `json:"text" msgpack:"text"`
	Coordinate rules.Coordinate `json:"coordinate" msgpack:"coordinate"`
	Color      string           `json:"color" msgpack:"color"`
	IsSwap     bool             `json:"isSwap" msgpack:"isSwap"`
}

// Notification is a free text announcement.
type Notification struct {
	Text  string `json:"text" msgpack:"text"`
	Color string `json:"color" msgpack:"color"`
}

var events = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "arena",
		Subsystem: "notify",
		Name:      "events_total",
		Help:      "Game events dispatched to clients.",
	},
	[]string{"type"},
)

func init() {
	prometheus.MustRegister(events)
}

// Dispatcher is a rules.Notifier over a Broadcaster.
type Dispatcher struct {
	b Broadcaster
}

// NewDispatcher returns a dispatcher sending through b.
func NewDispatcher(b Broadcaster) *Dispatcher {
	return &Dispatcher{b: b}
}

func (d *Dispatcher) broadcast(msg Message, fields log.Fields) {
	defer d.recover(msg.Type)
	events.WithLabelValues(msg.Type).Inc()
	log.WithFields(fields).Debug(msg.Type)
	d.b.Broadcast(msg)
}

func (d *Dispatcher) sendTo(id string, msg Message) {
	defer d.recover(msg.Type)
	events.WithLabelValues(msg.Type).Inc()
	if !d.b.SendTo(id, msg) {
		log.WithFields(log.Fields{"PlayerID": id, "Type": msg.Type}).Debug("no connection for player")
	}
}

// recover keeps a failing transport from taking down the game loop.
func (d *Dispatcher) recover(kind string) {
	if r := recover(); r != nil {
		log.WithField("Type", kind).Errorf("notification panicked: %v", r)
	}
}

// BroadcastKill announces that killer ran victim down.
func (d *Dispatcher) BroadcastKill(killerName, victimName, killerColor, victimColor string, newLength int) {
	d.broadcast(Message{Type: TypeKill, Payload: Kill{
		KillerName:  killerName,
		VictimName:  victimName,
		KillerColor: killerColor,
		VictimColor: victimColor,
		NewLength:   newLength,
	}}, log.Fields{"Killer": killerName, "Victim": victimName})
}

// BroadcastSuicide announces a player that ran into itself.
func (d *Dispatcher) BroadcastSuicide(name, color string) {
	d.broadcast(Message{Type: TypeSuicide, Payload: Victim{Name: name, Color: color}}, log.Fields{"Victim": name})
}

// BroadcastKillEachOther announces a head to head collision.
func (d *Dispatcher) BroadcastKillEachOther(victims []rules.VictimSummary) {
	d.broadcast(Message{Type: TypeKilledEachOther, Payload: victims}, log.Fields{"Victims": len(victims)})
}

// BroadcastRanIntoWall announces a player that left the board.
func (d *Dispatcher) BroadcastRanIntoWall(name, color string) {
	d.broadcast(Message{Type: TypeRanIntoWall, Payload: Victim{Name: name, Color: color}}, log.Fields{"Victim": name})
}

// NotifyPlayerDied tells a player it died.
func (d *Dispatcher) NotifyPlayerDied(id string) {
	d.sendTo(id, Message{Type: TypeYouDied})
}

// NotifyPlayerMadeAKill tells a player it killed somebody.
func (d *Dispatcher) NotifyPlayerMadeAKill(id string) {
	d.sendTo(id, Message{Type: TypeYouMadeAKill})
}

// NotifyPlayerFoodCollected tells a player it ate.
func (d *Dispatcher) NotifyPlayerFoodCollected(id, text string, at rules.Coordinate, color string, isSwap bool) {
	d.sendTo(id, Message{Type: TypeFoodCollected, Payload: FoodCollected{
		Text:       text,
		Coordinate: at,
		Color:      color,
		IsSwap:     isSwap,
	}})
}

// BroadcastNotification sends a free text announcement to everybody.
func (d *Dispatcher) BroadcastNotification(text, color string) {
	d.broadcast(Message{Type: TypeNotification, Payload: Notification{Text: text, Color: color}}, log.Fields{"Text": text})
}

// BroadcastGameState sends the snapshot of a tick to everybody.
func (d *Dispatcher) BroadcastGameState(state *rules.GameState) {
	defer d.recover(TypeState)
	events.WithLabelValues(TypeState).Inc()
	d.b.Broadcast(Message{Type: TypeState, Payload: state})
}
